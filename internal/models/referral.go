package models

// Referral is one row of the national-ID to reference-code lookup table.
// Rows are insert-only; uniqueness is left to the table schema.
type Referral struct {
	ID            int64  `gorm:"primaryKey" json:"-"`
	NationalID    string `gorm:"column:tc_kimlik;size:20;not null" json:"tc_kimlik"`
	ReferenceCode string `gorm:"column:referans_kodu;size:50;not null" json:"referans_kodu"`
}

func (Referral) TableName() string {
	return "tc_referans"
}
