package models

import "gorm.io/gorm"

// CustomAttribute is a user-defined tag cards can carry ("sideboard card",
// "wheel pick", ...). Uniqueness of names is not enforced.
type CustomAttribute struct {
	gorm.Model
	PublicID string `gorm:"size:100;uniqueIndex"`
	Name     string `gorm:"not null;size:100"`
	UserID   uint   `gorm:"not null;index"`
	User     User   `gorm:"foreignKey:UserID" json:"-"`
}
