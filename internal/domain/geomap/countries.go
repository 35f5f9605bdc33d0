package geomap

import "strings"

// BoundaryID identifies a country to the boundary service: an ISO 3166-1
// alpha-2 code and the English name used as the search query.
type BoundaryID struct {
	Code  string `json:"code"`
	Query string `json:"query"`
}

// countries is the closed set of display names that can be highlighted.
// Respondents write country names freely, so several spellings map to the
// same boundary.
var countries = map[string]BoundaryID{ //nolint:gochecknoglobals // fixed lookup table
	"kazakhstan":               {"KZ", "Kazakhstan"},
	"қазақстан":                {"KZ", "Kazakhstan"},
	"казахстан":                {"KZ", "Kazakhstan"},
	"kyrgyzstan":               {"KG", "Kyrgyzstan"},
	"uzbekistan":               {"UZ", "Uzbekistan"},
	"russia":                   {"RU", "Russia"},
	"russian federation":       {"RU", "Russia"},
	"china":                    {"CN", "China"},
	"hong kong":                {"HK", "Hong Kong"},
	"japan":                    {"JP", "Japan"},
	"south korea":              {"KR", "South Korea"},
	"korea":                    {"KR", "South Korea"},
	"republic of korea":        {"KR", "South Korea"},
	"malaysia":                 {"MY", "Malaysia"},
	"singapore":                {"SG", "Singapore"},
	"india":                    {"IN", "India"},
	"turkey":                   {"TR", "Turkey"},
	"türkiye":                  {"TR", "Turkey"},
	"turkiye":                  {"TR", "Turkey"},
	"georgia":                  {"GE", "Georgia"},
	"united arab emirates":     {"AE", "United Arab Emirates"},
	"uae":                      {"AE", "United Arab Emirates"},
	"qatar":                    {"QA", "Qatar"},
	"saudi arabia":             {"SA", "Saudi Arabia"},
	"egypt":                    {"EG", "Egypt"},
	"germany":                  {"DE", "Germany"},
	"france":                   {"FR", "France"},
	"italy":                    {"IT", "Italy"},
	"spain":                    {"ES", "Spain"},
	"portugal":                 {"PT", "Portugal"},
	"netherlands":              {"NL", "Netherlands"},
	"the netherlands":          {"NL", "Netherlands"},
	"belgium":                  {"BE", "Belgium"},
	"switzerland":              {"CH", "Switzerland"},
	"austria":                  {"AT", "Austria"},
	"czech republic":           {"CZ", "Czech Republic"},
	"czechia":                  {"CZ", "Czech Republic"},
	"poland":                   {"PL", "Poland"},
	"hungary":                  {"HU", "Hungary"},
	"latvia":                   {"LV", "Latvia"},
	"lithuania":                {"LT", "Lithuania"},
	"estonia":                  {"EE", "Estonia"},
	"finland":                  {"FI", "Finland"},
	"sweden":                   {"SE", "Sweden"},
	"norway":                   {"NO", "Norway"},
	"denmark":                  {"DK", "Denmark"},
	"ireland":                  {"IE", "Ireland"},
	"united kingdom":           {"GB", "United Kingdom"},
	"uk":                       {"GB", "United Kingdom"},
	"great britain":            {"GB", "United Kingdom"},
	"england":                  {"GB", "United Kingdom"},
	"scotland":                 {"GB", "United Kingdom"},
	"united states":            {"US", "United States"},
	"united states of america": {"US", "United States"},
	"usa":                      {"US", "United States"},
	"us":                       {"US", "United States"},
	"canada":                   {"CA", "Canada"},
	"australia":                {"AU", "Australia"},
	"new zealand":              {"NZ", "New Zealand"},
}

// Lookup resolves a free-text country name. Matching ignores case and extra
// whitespace; names outside the table report false.
func Lookup(country string) (BoundaryID, bool) {
	id, ok := countries[normalizeCountry(country)]
	return id, ok
}

// Supported returns the number of recognised spellings.
func Supported() int { return len(countries) }

func normalizeCountry(s string) string {
	return strings.ToLower(strings.Join(strings.Fields(s), " "))
}
