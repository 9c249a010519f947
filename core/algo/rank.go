package algo

import (
	"sort"
	"strings"

	"github.com/huangsam/satscout/schema"
)

// RankSchools sorts schools by name (then DBN for ties) and returns the first 'limit'
// schools. A limit of 0 or one larger than the number of schools returns all of them.
// The input slice is left untouched.
func RankSchools(schools []schema.School, limit int) []schema.School {
	ranked := make([]schema.School, len(schools))
	copy(ranked, schools)
	sort.SliceStable(ranked, func(i, j int) bool {
		a, b := strings.ToLower(ranked[i].Name), strings.ToLower(ranked[j].Name)
		if a != b {
			return a < b
		}
		return ranked[i].DBN < ranked[j].DBN
	})
	if limit > 0 && len(ranked) > limit {
		return ranked[:limit]
	}
	return ranked
}
