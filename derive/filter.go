package derive

import (
	"slices"
	"strings"

	"github.com/draftdex/draftdex-api/models"
)

// Multicolor is the pseudo-color token the color filter accepts alongside the
// real colors.
const Multicolor = "Multicolor"

// Filters mirrors the criteria panel. Every field is optional; an empty field
// never excludes anything, so the zero value is the identity filter.
type Filters struct {
	Colors       []string
	Rarities     []string
	Types        []string
	BombOnly     bool
	AttributeIDs []string
	Search       string
}

// Matches reports whether card passes every active criterion. activeSetID of
// zero means no set is selected and the set gate is skipped.
//
// The color gate is an OR of two sub-checks: a card passes if it satisfies
// either the Multicolor request (more than one color) or intersects the
// specific colors requested. Custom attributes are AND semantics: the card
// must carry every requested attribute.
func Matches(card *models.Card, f Filters, activeSetID uint) bool {
	if activeSetID != 0 && card.SetID != activeSetID {
		return false
	}

	if len(f.Colors) > 0 {
		wantsMulti := slices.Contains(f.Colors, Multicolor)
		specific := make([]string, 0, len(f.Colors))
		for _, c := range f.Colors {
			if c != Multicolor {
				specific = append(specific, c)
			}
		}

		multiOK := wantsMulti && len(card.Colors) > 1
		specificOK := false
		if len(specific) > 0 {
			for _, c := range card.Colors {
				if slices.Contains(specific, c) {
					specificOK = true
					break
				}
			}
		}
		if !multiOK && !specificOK {
			return false
		}
	}

	if len(f.Rarities) > 0 && !slices.Contains(f.Rarities, card.Rarity) {
		return false
	}

	if len(f.Types) > 0 && !slices.Contains(f.Types, card.Type) {
		return false
	}

	if f.BombOnly && !card.IsBomb {
		return false
	}

	for _, id := range f.AttributeIDs {
		if !card.AttributeIDs.Contains(id) {
			return false
		}
	}

	if f.Search != "" {
		term := strings.ToLower(f.Search)
		if !strings.Contains(strings.ToLower(card.Name), term) &&
			!strings.Contains(strings.ToLower(card.Comment), term) {
			return false
		}
	}

	return true
}

// FilterCards applies Matches over a snapshot and returns the survivors in
// their original order.
func FilterCards(cards []models.Card, f Filters, activeSetID uint) []models.Card {
	out := make([]models.Card, 0, len(cards))
	for i := range cards {
		if Matches(&cards[i], f, activeSetID) {
			out = append(out, cards[i])
		}
	}
	return out
}
