package normalization

import "strings"

const (
	ProviderRai      = "rai"
	ProviderMediaset = "mediaset"
)

// providerAliases maps the spellings used by routes and upstream rows to a provider key.
var providerAliases = map[string]string{
	"rai":          ProviderRai,
	"rai-tv":       ProviderRai,
	"raiplay":      ProviderRai,
	"mediaset":     ProviderMediaset,
	"mediasetplay": ProviderMediaset,
	"mediaset-tv":  ProviderMediaset,
}

// companyNames holds the broadcaster group name exposed on channels.
var companyNames = map[string]string{
	ProviderRai:      "Rai",
	ProviderMediaset: "Mediaset",
}

// NormalizeProvider converts provider spellings to their canonical key.
//
// Example:
//
//	NormalizeProvider(" RAI ") => "rai"
//	NormalizeProvider("Mediaset_Play") => "mediaset"
func NormalizeProvider(raw string) string {
	trimmed := strings.ToLower(strings.TrimSpace(raw))
	normalized := strings.ReplaceAll(trimmed, "_", "")
	if canonical, found := providerAliases[normalized]; found {
		return canonical
	}
	if canonical, found := providerAliases[trimmed]; found {
		return canonical
	}
	return normalized
}

// IsKnownProvider reports whether raw resolves to a supported broadcaster.
func IsKnownProvider(raw string) bool {
	_, ok := companyNames[NormalizeProvider(raw)]
	return ok
}

// CompanyName returns the broadcaster group for a provider, or "" when unknown.
func CompanyName(provider string) string {
	return companyNames[NormalizeProvider(provider)]
}
