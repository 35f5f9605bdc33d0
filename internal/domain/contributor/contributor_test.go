package contributor_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/okian/rootsroads/internal/domain/contributor"
	. "github.com/smartystreets/goconvey/convey"
)

const consentLabel = "28. I agree that Roots & Roads may publish my story"

func TestLookup(t *testing.T) {
	Convey("Given a row using historical column labels", t, func() {
		row := contributor.Row{
			"1. Full name":       "  Aigerim  ",
			"4. Current country": "Germany",
			"City":               "",
			"5. Current city":    "Berlin",
			"Name":               "Ignored",
		}

		Convey("Then the first non-empty variant wins, trimmed", func() {
			So(contributor.Lookup(row, contributor.FieldName), ShouldEqual, "Aigerim")
			So(contributor.Lookup(row, contributor.FieldCountry), ShouldEqual, "Germany")
			So(contributor.Lookup(row, contributor.FieldCity), ShouldEqual, "Berlin")
		})

		Convey("And an unmatched field is empty text", func() {
			So(contributor.Lookup(row, contributor.FieldAdvice), ShouldEqual, "")
		})
	})

	Convey("Given the name column exported with a trailing space", t, func() {
		row := contributor.Row{"1. Full name ": "Dana", "1. Full name": ""}

		Convey("Then the trailing-space variant resolves", func() {
			So(contributor.Lookup(row, contributor.FieldName), ShouldEqual, "Dana")
		})
	})

	Convey("Given the consent question with an entity-encoded ampersand", t, func() {
		row := contributor.Row{"27. I agree that Roots &amp; Roads may publish my story": "Yes"}

		Convey("Then the consent answer resolves", func() {
			So(contributor.Lookup(row, contributor.FieldConsent), ShouldEqual, "Yes")
		})
	})

	Convey("Given the column table", t, func() {
		Convey("Then every field has at least one label and Columns returns a copy", func() {
			for f := contributor.FieldTimestamp; f <= contributor.FieldConsent; f++ {
				So(len(contributor.Columns(f)), ShouldBeGreaterThan, 0)
				So(f.String(), ShouldNotEqual, "unknown")
			}
			cols := contributor.Columns(contributor.FieldName)
			cols[0] = "mutated"
			So(contributor.Columns(contributor.FieldName)[0], ShouldEqual, "1. Full name ")
		})
	})
}

func TestConsented(t *testing.T) {
	Convey("Given rows with a consent column", t, func() {
		cases := map[string]bool{
			"Yes":                 true,
			"yes, I agree":        true,
			"YES":                 true,
			"y":                   true,
			"Y":                   true,
			"No":                  false,
			"Not now":             false,
			"":                    false,
			"n":                   false,
			"I do not want to be": false,
		}
		for answer, want := range cases {
			row := contributor.Row{consentLabel: answer, "1. Full name": "Aigerim", "Consent timestamp": ""}
			So(contributor.Consented(row), ShouldEqual, want)
		}
	})

	Convey("Given a row whose header set never mentions consent", t, func() {
		row := contributor.Row{"1. Full name": "Nurlan", "Country": "Japan"}

		Convey("Then it is presumed consented", func() {
			So(contributor.Consented(row), ShouldBeTrue)
		})
	})

	Convey("Given a header mentioning consent but no recognised answer", t, func() {
		row := contributor.Row{"Consent (new wording)": "Yes", "1. Full name": "Nurlan"}

		Convey("Then it is rejected", func() {
			So(contributor.Consented(row), ShouldBeFalse)
		})
	})
}

func TestAccept(t *testing.T) {
	Convey("Given the gates", t, func() {
		Convey("When consent is given and the name is present", func() {
			So(contributor.Accept(contributor.Row{consentLabel: "Yes", "1. Full name ": "Aigerim"}), ShouldBeNil)
		})

		Convey("When consent is refused with a populated name", func() {
			err := contributor.Accept(contributor.Row{consentLabel: "No", "1. Full name": "Aigerim"})
			So(err, ShouldEqual, contributor.ErrNoConsent)
		})

		Convey("When the name is blank after trimming", func() {
			err := contributor.Accept(contributor.Row{consentLabel: "Yes", "1. Full name": "   "})
			So(err, ShouldEqual, contributor.ErrMissingName)
		})
	})
}

func TestNormalize(t *testing.T) {
	Convey("Given a complete row", t, func() {
		row := contributor.Row{
			"Timestamp":                            "3/14/2024 10:00:00",
			"1. Full name":                         "Aigerim Bekova",
			"2. Age":                               "22",
			"3. Region of origin":                  "Almaty",
			"4. Country where you currently live": "Germany",
			"5. City":                              "Munich",
			"7. University / Company":              "TUM",
			"11. What motivated you to go abroad?": "Curiosity",
			"17. Advice":                           "Start early",
			"Latitude":                             "48.137",
			"Longitude":                            "11.575",
		}

		c := contributor.Normalize(row)

		Convey("Then every field is resolved", func() {
			want := contributor.Contributor{
				Name:        "Aigerim Bekova",
				Age:         "22",
				Region:      "Almaty",
				Country:     "Germany",
				City:        "Munich",
				Institution: "TUM",
				Motivation:  "Curiosity",
				Advice:      "Start early",
				Lat:         48.137,
				Lng:         11.575,
				Timestamp:   "3/14/2024 10:00:00",
			}
			So(cmp.Diff(want, c), ShouldBeEmpty)
			So(c.Geolocated(), ShouldBeTrue)
		})
	})

	Convey("Given a row without a name", t, func() {
		c := contributor.Normalize(contributor.Row{"Country": "Japan"})

		Convey("Then the placeholder name is used", func() {
			So(c.Name, ShouldEqual, contributor.AnonymousName)
		})
	})

	Convey("Given boundary coordinates", t, func() {
		c := contributor.Normalize(contributor.Row{"Name": "Pole", "Latitude": "-90", "Longitude": "180"})

		Convey("Then they round-trip without clamping", func() {
			So(c.Lat, ShouldEqual, -90.0)
			So(c.Lng, ShouldEqual, 180.0)
			So(c.Geolocated(), ShouldBeTrue)
		})
	})

	Convey("Given an empty or non-numeric latitude", t, func() {
		for _, lat := range []string{"", "n/a", "NaN", "Inf"} {
			c := contributor.Normalize(contributor.Row{"Name": "X", "Latitude": lat, "Longitude": "10"})
			So(c.Lat, ShouldEqual, 0.0)
			So(c.Geolocated(), ShouldBeFalse)
		}
	})
}

func TestParse(t *testing.T) {
	Convey("Given Parse", t, func() {
		Convey("When the row is rejected", func() {
			c, err := contributor.Parse(contributor.Row{consentLabel: "No", "Name": "A"})
			So(err, ShouldEqual, contributor.ErrNoConsent)
			So(c, ShouldResemble, contributor.Contributor{})
		})

		Convey("When the row is accepted", func() {
			c, err := contributor.Parse(contributor.Row{consentLabel: "y", "Name": "A", "Country": "Italy"})
			So(err, ShouldBeNil)
			So(c.Name, ShouldEqual, "A")
			So(c.Country, ShouldEqual, "Italy")
		})
	})
}

func TestParseCoordinate(t *testing.T) {
	Convey("Given coordinate text", t, func() {
		cases := map[string]float64{
			"43.25":    43.25,
			" -79.38 ": -79.38,
			"+12":      12,
			"43.2 N":   43.2,
			".5":       0.5,
			"1e2":      100,
			"abc":      0,
			"":         0,
			"-":        0,
			"0":        0,
			"0x1p4":    0,
			"1_0":      1,
			"43,2":     43,
			"Inf":      0,
			"NaN":      0,
			"1e999":    0,
			"12.5e":    12.5,
		}
		for in, want := range cases {
			So(contributor.ParseCoordinate(in), ShouldEqual, want)
		}
	})
}
