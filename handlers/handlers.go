package handlers

import (
	"net/url"
	"strings"

	"github.com/draftdex/draftdex-api/derive"
	"github.com/draftdex/draftdex-api/storage"
	"gorm.io/gorm"
)

type DBHandler struct {
	*gorm.DB
	Images storage.ImageStore
}

// listParam reads a repeatable query parameter that may also arrive as a
// single comma-separated value
func listParam(q url.Values, name string) []string {
	var out []string
	for _, raw := range q[name] {
		for _, v := range strings.Split(raw, ",") {
			v = strings.TrimSpace(v)
			if v != "" {
				out = append(out, v)
			}
		}
	}
	return out
}

// parseFilters builds the pipeline criteria from request query parameters
func parseFilters(q url.Values) derive.Filters {
	return derive.Filters{
		Colors:       listParam(q, "color"),
		Rarities:     listParam(q, "rarity"),
		Types:        listParam(q, "type"),
		BombOnly:     q.Get("bomb") == "true",
		AttributeIDs: listParam(q, "attribute"),
		Search:       q.Get("search"),
	}
}
