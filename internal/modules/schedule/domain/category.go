package domain

// Canonical categories shared by every provider.
const (
	CategoryFilm   = "Film"
	CategoryTVShow = "TV Show"
)

var categoryAliases = map[string]string{
	"Film":     CategoryFilm,
	"Serie TV": CategoryTVShow,
	"SerieTV":  CategoryTVShow,
	"Fiction":  CategoryTVShow,
}

// NormalizeCategory maps provider categories onto the canonical vocabulary.
// Matching is exact and case-sensitive; unknown values pass through and nil becomes "".
func NormalizeCategory(raw *string) string {
	if raw == nil {
		return ""
	}
	if canonical, ok := categoryAliases[*raw]; ok {
		return canonical
	}
	return *raw
}
