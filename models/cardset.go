package models

import (
	"gorm.io/gorm"
)

// CardSet represents a user-defined grouping of cards (typically one per
// booster set being graded)
type CardSet struct {
	gorm.Model
	Name     string `gorm:"not null;size:100"`
	UserID   uint   `gorm:"not null"`
	PublicID string `gorm:"size:100;uniqueIndex"`
	User     User   `gorm:"foreignKey:UserID" json:"-"`

	Cards []Card `gorm:"foreignKey:SetID"`
}
