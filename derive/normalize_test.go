package derive

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/draftdex/draftdex-api/models"
)

func TestClampRating(t *testing.T) {
	tests := []struct {
		in   float64
		want float64
	}{
		{3.0, 3.0},
		{5.7, 5.0},
		{-1.0, 0.0},
		{3.14159, 3.1},
		{4.25, 4.3},
		{0.0, 0.0},
		{5.0, 5.0},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, ClampRating(tt.in), "ClampRating(%v)", tt.in)
	}
}

func TestParseManaCost(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want *int
	}{
		{"integer", "3", ip(3)},
		{"zero", "0", ip(0)},
		{"null", "null", nil},
		{"negative", "-2", nil},
		{"fraction truncates", "2.9", ip(2)},
		{"numeric string", `"4"`, ip(4)},
		{"garbage string", `"abc"`, nil},
		{"empty", "", nil},
		{"object", `{}`, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ParseManaCost(json.RawMessage(tt.raw))
			if tt.want == nil {
				assert.Nil(t, got)
				return
			}
			require.NotNil(t, got)
			assert.Equal(t, *tt.want, *got)
		})
	}
}

func TestNormalizeCard(t *testing.T) {
	card := models.Card{Name: "Legacy Row"}
	NormalizeCard(&card)

	assert.NotNil(t, card.Colors)
	assert.NotNil(t, card.AttributeIDs)
	assert.Empty(t, card.Colors)
}
