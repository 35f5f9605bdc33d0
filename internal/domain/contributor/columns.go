package contributor

import "strings"

// Field identifies one semantic spreadsheet field.
type Field int

// Semantic fields, in form order.
const (
	FieldTimestamp Field = iota
	FieldName
	FieldAge
	FieldRegion
	FieldCountry
	FieldCity
	FieldStatus
	FieldInstitution
	FieldDegree
	FieldSpecialization
	FieldYear
	FieldMotivation
	FieldAchievement
	FieldActivities
	FieldUniqueness
	FieldChallenges
	FieldOvercome
	FieldAdvice
	FieldCultureMessage
	FieldPersonalChange
	FieldFinancing
	FieldSatisfaction
	FieldReturnPlan
	FieldPreferredRegion
	FieldPhoto
	FieldSocial
	FieldLatitude
	FieldLongitude
	FieldConsent
)

var fieldNames = [...]string{
	FieldTimestamp:       "timestamp",
	FieldName:            "name",
	FieldAge:             "age",
	FieldRegion:          "region",
	FieldCountry:         "country",
	FieldCity:            "city",
	FieldStatus:          "status",
	FieldInstitution:     "institution",
	FieldDegree:          "degree",
	FieldSpecialization:  "specialization",
	FieldYear:            "year",
	FieldMotivation:      "motivation",
	FieldAchievement:     "achievement",
	FieldActivities:      "activities",
	FieldUniqueness:      "uniqueness",
	FieldChallenges:      "challenges",
	FieldOvercome:        "overcome",
	FieldAdvice:          "advice",
	FieldCultureMessage:  "culture_message",
	FieldPersonalChange:  "personal_change",
	FieldFinancing:       "financing",
	FieldSatisfaction:    "satisfaction",
	FieldReturnPlan:      "return_plan",
	FieldPreferredRegion: "preferred_region",
	FieldPhoto:           "photo",
	FieldSocial:          "social",
	FieldLatitude:        "latitude",
	FieldLongitude:       "longitude",
	FieldConsent:         "consent",
}

func (f Field) String() string {
	if f < 0 || int(f) >= len(fieldNames) {
		return "unknown"
	}
	return fieldNames[f]
}

// columns lists every column label the form has used for a field, newest
// revision first. Questions were renumbered twice and some exports carry a
// trailing space or an entity-encoded ampersand, so rows from older revisions
// only resolve through the later entries. Extend a list when the form
// changes; never collapse it.
var columns = map[Field][]string{
	FieldTimestamp: {"Timestamp", "Отметка времени"},
	FieldName:      {"1. Full name ", "1. Full name", "Full name ", "Full name", "Name"},
	FieldAge:       {"2. Age", "Age"},
	FieldRegion: {
		"3. Which region of Kazakhstan are you from?",
		"3. Region of origin",
		"Region",
	},
	FieldCountry: {
		"4. Country where you currently live",
		"4. Current country",
		"Country",
	},
	FieldCity: {"5. City", "5. Current city", "City"},
	FieldStatus: {
		"6. Are you studying or working?",
		"6. Study or work",
		"Status",
	},
	FieldInstitution: {
		"7. University / Company",
		"7. University or company",
		"Institution",
	},
	FieldDegree: {"8. Degree / Position", "8. Degree", "Degree"},
	FieldSpecialization: {
		"9. Specialization / Major",
		"9. Major",
		"Specialization",
	},
	FieldYear: {"10. Year of study / Career stage", "10. Year of study", "Year"},
	FieldMotivation: {
		"11. What motivated you to go abroad?",
		"11. Motivation",
		"Motivation",
	},
	FieldAchievement: {
		"12. What are you most proud of?",
		"12. Proudest achievement",
	},
	FieldActivities: {
		"13. What do you do besides study or work?",
		"13. Activities",
	},
	FieldUniqueness: {
		"14. What makes your experience unique?",
		"14. Uniqueness",
	},
	FieldChallenges: {
		"15. What challenges did you face?",
		"15. Challenges",
	},
	FieldOvercome: {
		"16. How did you overcome them?",
		"16. How did you overcome them? ",
	},
	FieldAdvice: {
		"17. Advice for students who want to go abroad",
		"17. Advice",
		"Advice",
	},
	FieldCultureMessage: {
		"18. A message about Kazakh culture",
		"18. Culture message",
	},
	FieldPersonalChange: {
		"19. How has living abroad changed you?",
		"19. Personal change",
	},
	FieldFinancing: {
		"20. How do you finance your studies?",
		"20. Financing",
	},
	FieldSatisfaction: {
		"21. How satisfied are you with your choice?",
		"21. Satisfaction",
	},
	FieldReturnPlan: {
		"22. Do you plan to return to Kazakhstan?",
		"22. Return plans",
	},
	FieldPreferredRegion: {
		"23. Which country or region would you recommend?",
		"23. Preferred region",
	},
	FieldPhoto:     {"24. Photo", "24. Photo link", "Photo"},
	FieldSocial:    {"25. Instagram / LinkedIn", "25. Social media", "Social"},
	FieldLatitude:  {"Latitude", "latitude", "Lat"},
	FieldLongitude: {"Longitude", "longitude", "Lng", "Lon"},
	FieldConsent: {
		"28. I agree that Roots & Roads may publish my story",
		"28. I agree that Roots &amp; Roads may publish my story",
		"27. I agree that Roots & Roads may publish my story",
		"27. I agree that Roots &amp; Roads may publish my story",
		"26. I agree that Roots & Roads may publish my story",
		"26. I agree that Roots &amp; Roads may publish my story",
		"I agree that Roots & Roads may publish my story",
		"I agree that Roots &amp; Roads may publish my story",
	},
}

// Columns returns the known labels for f, newest first.
func Columns(f Field) []string {
	labels := columns[f]
	out := make([]string, len(labels))
	copy(out, labels)
	return out
}

// Lookup resolves f against row by probing its label variants in order. The
// first trimmed, non-empty value wins; a field with no match is "".
func Lookup(row Row, f Field) string {
	for _, label := range columns[f] {
		if v := strings.TrimSpace(row[label]); v != "" {
			return v
		}
	}
	return ""
}
