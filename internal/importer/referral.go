package importer

import (
	"errors"
	"strings"

	"github.com/P3chys/content-tools/internal/models"
	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// Column layout of the referral export: name;national-ID;password;reference-code.
const (
	colNationalID    = 1
	colReferenceCode = 3
	minFields        = 4
)

var ErrTooFewFields = errors.New("row has fewer than 4 fields")

type referralRow struct {
	NationalID    string
	ReferenceCode string
}

func (r referralRow) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.NationalID, validation.Required.Error("national ID is empty")),
		validation.Field(&r.ReferenceCode, validation.Required.Error("reference code is empty")),
	)
}

// ParseReferral validates one CSV row. Only the national-ID and
// reference-code columns are read; the name and password are ignored.
func ParseReferral(fields []string) (models.Referral, error) {
	if len(fields) < minFields {
		return models.Referral{}, ErrTooFewFields
	}

	row := referralRow{
		NationalID:    strings.TrimSpace(fields[colNationalID]),
		ReferenceCode: strings.TrimSpace(fields[colReferenceCode]),
	}
	if err := row.Validate(); err != nil {
		return models.Referral{}, err
	}

	return models.Referral{NationalID: row.NationalID, ReferenceCode: row.ReferenceCode}, nil
}
