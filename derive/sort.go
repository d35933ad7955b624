package derive

import (
	"cmp"
	"math"
	"sort"
	"sync"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/draftdex/draftdex-api/models"
)

// Sort keys accepted by Compare and SortCards. Anything else falls back to
// the default chain.
const (
	SortDefault      = "default"
	SortRatingDesc   = "rating-desc"
	SortRatingAsc    = "rating-asc"
	SortManaCostAsc  = "manaCost-asc"
	SortManaCostDesc = "manaCost-desc"
	SortNameAsc      = "name-asc"
	SortNameDesc     = "name-desc"
)

// unsetManaCost ranks an absent mana cost behind every real value, in both
// sort directions.
const unsetManaCost = math.MaxInt

var (
	// collate.Collator reuses an internal buffer and is not safe for
	// concurrent use.
	nameCollator   = collate.New(language.English, collate.Loose)
	nameCollatorMu sync.Mutex
)

func compareNames(a, b string) int {
	nameCollatorMu.Lock()
	defer nameCollatorMu.Unlock()
	return nameCollator.CompareString(a, b)
}

func manaCostOf(c *models.Card) int {
	if c.ManaCost == nil {
		return unsetManaCost
	}
	return *c.ManaCost
}

// ratingOf substitutes -1 for an absent rating so unrated cards rank below
// every rated one, including cards rated 0.0.
func ratingOf(c *models.Card) float64 {
	if c.Rating == nil {
		return -1
	}
	return *c.Rating
}

// Compare is a total ordering over cards: the requested key is the primary
// criterion, and any tie falls through to the default chain (mana cost
// ascending with unset last, then rating descending, then color count
// ascending).
func Compare(a, b *models.Card, key string) int {
	switch key {
	case SortRatingDesc:
		if c := cmp.Compare(ratingOf(b), ratingOf(a)); c != 0 {
			return c
		}
	case SortRatingAsc:
		if c := cmp.Compare(ratingOf(a), ratingOf(b)); c != 0 {
			return c
		}
	case SortManaCostAsc:
		if c := cmp.Compare(manaCostOf(a), manaCostOf(b)); c != 0 {
			return c
		}
	case SortManaCostDesc:
		ca, cb := manaCostOf(a), manaCostOf(b)
		if ca != cb {
			// unset stays last even though the direction flips
			if ca == unsetManaCost {
				return 1
			}
			if cb == unsetManaCost {
				return -1
			}
			return cmp.Compare(cb, ca)
		}
	case SortNameAsc:
		if c := compareNames(a.Name, b.Name); c != 0 {
			return c
		}
	case SortNameDesc:
		if c := compareNames(b.Name, a.Name); c != 0 {
			return c
		}
	}
	return compareDefault(a, b)
}

func compareDefault(a, b *models.Card) int {
	if c := cmp.Compare(manaCostOf(a), manaCostOf(b)); c != 0 {
		return c
	}
	if c := cmp.Compare(ratingOf(b), ratingOf(a)); c != 0 {
		return c
	}
	return cmp.Compare(len(a.Colors), len(b.Colors))
}

// SortCards sorts in place under the given key.
func SortCards(cards []models.Card, key string) {
	sort.SliceStable(cards, func(i, j int) bool {
		return Compare(&cards[i], &cards[j], key) < 0
	})
}
