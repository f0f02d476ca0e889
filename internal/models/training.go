package models

import (
	"time"
)

type Topic string

const (
	TopicJustice       Topic = "Adalet"
	TopicFamily        Topic = "Aile"
	TopicForeignPolicy Topic = "Dış Politika"
	TopicEconomy       Topic = "Ekonomi"
	TopicEducation     Topic = "Eğitim"
	TopicYouth         Topic = "Gençlik"
	TopicHealth        Topic = "Sağlık"
	TopicAgriculture   Topic = "Tarım"
	TopicTechnology    Topic = "Teknoloji"
	TopicUrbanism      Topic = "Şehircilik"
	TopicD8            Topic = "D-8"
)

var Topics = []Topic{
	TopicJustice, TopicFamily, TopicForeignPolicy, TopicEconomy, TopicEducation,
	TopicYouth, TopicHealth, TopicAgriculture, TopicTechnology, TopicUrbanism, TopicD8,
}

func (t Topic) Valid() bool {
	for _, known := range Topics {
		if t == known {
			return true
		}
	}
	return false
}

// Training is a content record. Title is the natural key used by updates.
type Training struct {
	ID          int64      `gorm:"primaryKey" json:"id,omitempty"`
	Title       string     `gorm:"size:500;not null;index" json:"title"`
	Topic       Topic      `gorm:"size:100;not null;index" json:"topic"`
	Description string     `gorm:"type:text" json:"description"`
	MediaURL    *string    `gorm:"type:text" json:"media_url"`
	ImageURL    *string    `gorm:"type:text" json:"image_url"`
	IsActive    bool       `gorm:"default:true" json:"is_active"`
	CreatedAt   *time.Time `gorm:"autoCreateTime" json:"created_at,omitempty"`
}

func (Training) TableName() string {
	return "trainings"
}
