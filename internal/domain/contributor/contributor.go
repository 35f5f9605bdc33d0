// Package contributor turns raw survey spreadsheet rows into typed,
// consent-checked Contributor records.
package contributor

import (
	"errors"
	"math"
	"regexp"
	"strconv"
	"strings"
)

// Rejection signals returned by Accept. A rejected row is skipped, not failed.
var (
	ErrNoConsent   = errors.New("row did not consent to publication")
	ErrMissingName = errors.New("row has no name")
)

// AnonymousName replaces a name that is still empty after normalization.
const AnonymousName = "Anonymous"

// Row is one spreadsheet row keyed by its raw column label.
type Row map[string]string

// Contributor is one consenting respondent. Values are trimmed text and are
// never absent: a missing field is "". Lat and Lng use 0 for "no coordinate".
type Contributor struct {
	Name   string `json:"name"`
	Age    string `json:"age"`
	Region string `json:"region"`

	Country string `json:"country"`
	City    string `json:"city"`

	Status         string `json:"status"`
	Institution    string `json:"institution"`
	Degree         string `json:"degree"`
	Specialization string `json:"specialization"`
	Year           string `json:"year"`

	Motivation      string `json:"motivation"`
	Achievement     string `json:"achievement"`
	Activities      string `json:"activities"`
	Uniqueness      string `json:"uniqueness"`
	Challenges      string `json:"challenges"`
	Overcome        string `json:"overcome"`
	Advice          string `json:"advice"`
	CultureMessage  string `json:"cultureMessage"`
	PersonalChange  string `json:"personalChange"`
	Financing       string `json:"financing"`
	Satisfaction    string `json:"satisfaction"`
	ReturnPlan      string `json:"returnPlan"`
	PreferredRegion string `json:"preferredRegion"`
	Photo           string `json:"photo"`
	Social          string `json:"social"`

	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`

	Timestamp string `json:"timestamp"`
}

// Geolocated reports whether both coordinates are present. An exact 0 is the
// missing-value sentinel, so a real point on the equator or the prime
// meridian is indistinguishable from a missing one.
func (c Contributor) Geolocated() bool {
	return present(c.Lat) && present(c.Lng)
}

func present(v float64) bool {
	return v != 0 && !math.IsNaN(v) && !math.IsInf(v, 0)
}

// Consented applies the consent gate. A row passes when a known consent
// column answers yes ("yes" anywhere, case-insensitive, or exactly "y").
// Otherwise the row passes only when no header mentions "consent" at all;
// those are ungated rows from before the question existed.
func Consented(row Row) bool {
	if answer := Lookup(row, FieldConsent); answer != "" {
		a := strings.ToLower(answer)
		return strings.Contains(a, "yes") || a == "y"
	}
	return !hasConsentColumn(row)
}

func hasConsentColumn(row Row) bool {
	for label := range row {
		if strings.Contains(strings.ToLower(label), "consent") {
			return true
		}
	}
	return false
}

// Accept runs the consent gate and then the name gate.
func Accept(row Row) error {
	if !Consented(row) {
		return ErrNoConsent
	}
	if Lookup(row, FieldName) == "" {
		return ErrMissingName
	}
	return nil
}

// Normalize maps row to a Contributor without gating it.
func Normalize(row Row) Contributor {
	name := Lookup(row, FieldName)
	if name == "" {
		name = AnonymousName
	}
	return Contributor{
		Name:            name,
		Age:             Lookup(row, FieldAge),
		Region:          Lookup(row, FieldRegion),
		Country:         Lookup(row, FieldCountry),
		City:            Lookup(row, FieldCity),
		Status:          Lookup(row, FieldStatus),
		Institution:     Lookup(row, FieldInstitution),
		Degree:          Lookup(row, FieldDegree),
		Specialization:  Lookup(row, FieldSpecialization),
		Year:            Lookup(row, FieldYear),
		Motivation:      Lookup(row, FieldMotivation),
		Achievement:     Lookup(row, FieldAchievement),
		Activities:      Lookup(row, FieldActivities),
		Uniqueness:      Lookup(row, FieldUniqueness),
		Challenges:      Lookup(row, FieldChallenges),
		Overcome:        Lookup(row, FieldOvercome),
		Advice:          Lookup(row, FieldAdvice),
		CultureMessage:  Lookup(row, FieldCultureMessage),
		PersonalChange:  Lookup(row, FieldPersonalChange),
		Financing:       Lookup(row, FieldFinancing),
		Satisfaction:    Lookup(row, FieldSatisfaction),
		ReturnPlan:      Lookup(row, FieldReturnPlan),
		PreferredRegion: Lookup(row, FieldPreferredRegion),
		Photo:           Lookup(row, FieldPhoto),
		Social:          Lookup(row, FieldSocial),
		Lat:             ParseCoordinate(Lookup(row, FieldLatitude)),
		Lng:             ParseCoordinate(Lookup(row, FieldLongitude)),
		Timestamp:       Lookup(row, FieldTimestamp),
	}
}

// Parse gates and normalizes row.
func Parse(row Row) (Contributor, error) {
	if err := Accept(row); err != nil {
		return Contributor{}, err
	}
	return Normalize(row), nil
}

var leadingNumber = regexp.MustCompile(`^[+-]?(\d+\.?\d*|\.\d+)([eE][+-]?\d+)?`)

// ParseCoordinate reads a degree value the way the sheet's web clients
// always have: the longest leading decimal wins ("43.2 N" is 43.2). Empty,
// unparsable and out-of-range input collapse to the 0 sentinel. Only plain
// decimals count: hex floats, digit separators and "Inf" are not numbers here.
func ParseCoordinate(text string) float64 {
	s := strings.TrimSpace(text)
	if s == "" {
		return 0
	}
	m := leadingNumber.FindString(s)
	if m == "" {
		return 0
	}
	// Out-of-range exponents fail with ErrRange.
	v, err := strconv.ParseFloat(m, 64)
	if err != nil {
		return 0
	}
	return v
}
