package derive

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/draftdex/draftdex-api/models"
)

func TestGroupTiersFloorsRatings(t *testing.T) {
	cards := []models.Card{
		ratedCard("Solid", fp(3.7), ip(2)),
		ratedCard("Filler", fp(1.0), ip(1)),
		ratedCard("Bomb", fp(5.0), ip(6)),
	}

	groups := GroupTiers(cards)

	assert.Equal(t, []string{"Solid"}, names(groups["3"]))
	assert.Equal(t, []string{"Filler"}, names(groups["1"]))
	assert.Equal(t, []string{"Bomb"}, names(groups["5"]))
}

func TestGroupTiersOutOfRangeLandsInTierZero(t *testing.T) {
	cards := []models.Card{
		ratedCard("Overrated", fp(5.2), ip(3)),
		ratedCard("WayOver", fp(6.8), ip(3)),
		ratedCard("Perfect", fp(5.0), ip(3)),
	}

	groups := GroupTiers(cards)

	assert.Equal(t, []string{"Perfect"}, names(groups["5"]), "exactly 5.0 is still in range")
	assert.Equal(t, []string{"Overrated", "WayOver"}, names(groups["0"]),
		"out-of-range ratings are kept, not dropped")
}

func TestGroupTiersUnratedLandsInTierZero(t *testing.T) {
	cards := []models.Card{
		ratedCard("Fresh", nil, ip(2)),
	}

	groups := GroupTiers(cards)

	assert.Equal(t, []string{"Fresh"}, names(groups["0"]))
}

func TestGroupTiersAllKeysPresent(t *testing.T) {
	groups := GroupTiers(nil)

	require.Len(t, groups, 6)
	for _, label := range TierLabels {
		bucket, ok := groups[label]
		assert.True(t, ok, "tier %s missing", label)
		assert.NotNil(t, bucket)
		assert.Empty(t, bucket)
	}
}

func TestGroupTiersResortsByRatingAscending(t *testing.T) {
	// Input arrives in rating-descending order; inside a tier the display is
	// always raw rating ascending.
	cards := []models.Card{
		ratedCard("High", fp(3.9), ip(1)),
		ratedCard("Mid", fp(3.5), ip(1)),
		ratedCard("Low", fp(3.1), ip(1)),
	}

	groups := GroupTiers(cards)

	assert.Equal(t, []string{"Low", "Mid", "High"}, names(groups["3"]))
}

func TestTierLabelsDisplayOrder(t *testing.T) {
	assert.Equal(t, []string{"5", "4", "3", "2", "1", "0"}, TierLabels)
}
