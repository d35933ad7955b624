package models

import (
	"gorm.io/gorm"
)

// Primary colors a card can carry. A card with more than one is multicolor.
const (
	ColorWhite     = "White"
	ColorBlue      = "Blue"
	ColorBlack     = "Black"
	ColorRed       = "Red"
	ColorGreen     = "Green"
	ColorColorless = "Colorless"
)

var Colors = []string{ColorWhite, ColorBlue, ColorBlack, ColorRed, ColorGreen, ColorColorless}

var Rarities = []string{"Common", "Uncommon", "Rare", "MythicRare"}

var CardTypes = []string{"Creature", "Instant", "Sorcery", "Enchantment", "Artifact", "Planeswalker", "Land"}

// Card represents a single uploaded card image with its grading data
type Card struct {
	gorm.Model
	PublicID string `gorm:"size:100;uniqueIndex"`
	Name     string `gorm:"not null;size:200"`

	Colors StringList `gorm:"type:text"`
	Rarity string     `gorm:"size:20"` // empty = unset
	Type   string     `gorm:"size:40"` // empty = unset

	Rating   *float64 `gorm:"default:null"`
	ManaCost *int     `gorm:"default:null"`
	IsBomb   bool     `gorm:"default:false"`

	IsDoubleFaced bool   `gorm:"default:false"`
	ImageURL      string `gorm:"size:500"`
	BackImageURL  string `gorm:"size:500"` // only meaningful when IsDoubleFaced

	// Public IDs of CustomAttributes tagged onto this card
	AttributeIDs StringList `gorm:"type:text"`

	Comment string `gorm:"size:1000"`

	SetID   uint    `gorm:"not null;index"`
	CardSet CardSet `gorm:"foreignKey:SetID" json:"-"`
}

func ValidColor(c string) bool {
	for _, v := range Colors {
		if v == c {
			return true
		}
	}
	return false
}

func ValidRarity(r string) bool {
	for _, v := range Rarities {
		if v == r {
			return true
		}
	}
	return false
}

func ValidCardType(t string) bool {
	for _, v := range CardTypes {
		if v == t {
			return true
		}
	}
	return false
}
