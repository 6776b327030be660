package models

import "gorm.io/gorm"

// Item status values. Status is a closed set, not free text.
const (
	StatusPending = "pending"
	StatusDone    = "done"
)

// ValidStatus reports whether s is one of the allowed item statuses.
func ValidStatus(s string) bool {
	return s == StatusPending || s == StatusDone
}

type Item struct {
	gorm.Model

	Title  string `gorm:"not null"`
	Status string `gorm:"not null;default:pending"`
	ListID uint   `gorm:"not null;index"`

	// Relationships
	List List `gorm:"foreignKey:ListID;constraint:OnUpdate:Cascade,OnDelete:CASCADE"`
}
