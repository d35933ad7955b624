package derive

import (
	"math"
	"sort"
	"strconv"

	"github.com/draftdex/draftdex-api/models"
)

// TierLabels in display order, highest tier first.
var TierLabels = []string{"5", "4", "3", "2", "1", "0"}

// TierGroups maps a tier label ("0".."5") to the cards in that band. All six
// keys are always present; rendering skips the empty ones.
type TierGroups map[string][]models.Card

// GroupTiers buckets cards by the integer part of their rating. Ratings
// outside the 0-5 display range land in tier "0" instead of being dropped.
// Each bucket is re-sorted by raw rating ascending, regardless of the sort
// that produced the input order.
func GroupTiers(cards []models.Card) TierGroups {
	groups := make(TierGroups, len(TierLabels))
	for _, label := range TierLabels {
		groups[label] = []models.Card{}
	}

	for i := range cards {
		label := tierLabel(ratingOrZero(&cards[i]))
		groups[label] = append(groups[label], cards[i])
	}

	for _, label := range TierLabels {
		bucket := groups[label]
		sort.SliceStable(bucket, func(i, j int) bool {
			return ratingOrZero(&bucket[i]) < ratingOrZero(&bucket[j])
		})
	}

	return groups
}

func ratingOrZero(c *models.Card) float64 {
	if c.Rating == nil {
		return 0
	}
	return *c.Rating
}

func tierLabel(rating float64) string {
	// Range-check the raw rating: 5.2 is out of range even though it floors
	// to a valid label, while 5.0 exactly still belongs in tier "5".
	if rating < RatingMin || rating > RatingMax {
		return "0"
	}
	return strconv.Itoa(int(math.Floor(rating)))
}
