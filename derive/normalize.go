package derive

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"

	"github.com/draftdex/draftdex-api/models"
)

// Rating bounds. Out-of-range input is clamped, never rejected.
const (
	RatingMin = 0.0
	RatingMax = 5.0
)

// ClampRating forces a rating into [RatingMin, RatingMax] and rounds it to
// one decimal place.
func ClampRating(r float64) float64 {
	if math.IsNaN(r) || r < RatingMin {
		r = RatingMin
	}
	if r > RatingMax {
		r = RatingMax
	}
	return math.Round(r*10) / 10
}

// ParseManaCost interprets a raw JSON value from the edit form. Anything that
// is not a non-negative number is coerced to unset rather than an error.
// Numeric strings from older clients are tolerated.
func ParseManaCost(raw json.RawMessage) *int {
	s := strings.TrimSpace(string(raw))
	if s == "" || s == "null" {
		return nil
	}

	var n float64
	if err := json.Unmarshal(raw, &n); err != nil {
		var str string
		if err := json.Unmarshal(raw, &str); err != nil {
			return nil
		}
		parsed, err := strconv.ParseFloat(strings.TrimSpace(str), 64)
		if err != nil {
			return nil
		}
		n = parsed
	}

	if math.IsNaN(n) || n < 0 {
		return nil
	}
	v := int(n)
	return &v
}

// NormalizeCard applies the default-substitution rules once per record at
// snapshot load, so the filter, sort, and tier stages can assume populated
// fields (colors and attribute IDs always a list, never nil).
func NormalizeCard(c *models.Card) {
	if c.Colors == nil {
		c.Colors = models.StringList{}
	}
	if c.AttributeIDs == nil {
		c.AttributeIDs = models.StringList{}
	}
}

// NormalizeCards runs NormalizeCard over a whole snapshot.
func NormalizeCards(cards []models.Card) {
	for i := range cards {
		NormalizeCard(&cards[i])
	}
}
