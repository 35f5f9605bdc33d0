package dataset_test

import (
	"testing"
	"time"

	"github.com/okian/rootsroads/internal/domain/contributor"
	"github.com/okian/rootsroads/internal/domain/dataset"
	. "github.com/smartystreets/goconvey/convey"
)

func TestDatasetTotals(t *testing.T) {
	Convey("Given N contributors of which K have distinct non-empty countries", t, func() {
		people := []contributor.Contributor{
			{Name: "A", Country: "Germany"},
			{Name: "B", Country: "Japan"},
			{Name: "C", Country: "Germany"},
			{Name: "D", Country: ""},
			{Name: "E", Country: "USA"},
		}
		ds := dataset.New(people, dataset.WithID("load-1"), dataset.WithLoadedAt(time.Unix(100, 0)))

		Convey("Then totals count stories, distinct countries and students", func() {
			So(ds.Totals(), ShouldResemble, dataset.Totals{Students: 5, Countries: 3, Stories: 5})
			So(ds.Len(), ShouldEqual, 5)
			So(ds.ID(), ShouldEqual, "load-1")
			So(ds.LoadedAt().Unix(), ShouldEqual, int64(100))
		})

		Convey("And the breakdown is ordered by count then name", func() {
			So(ds.CountryBreakdown(), ShouldResemble, []dataset.CountryCount{
				{Country: "Germany", Count: 2},
				{Country: "Japan", Count: 1},
				{Country: "USA", Count: 1},
			})
		})

		Convey("And mutating inputs or outputs does not change the dataset", func() {
			people[0].Name = "changed"
			out := ds.Contributors()
			out[1].Name = "changed"
			first, ok := ds.At(0)
			So(ok, ShouldBeTrue)
			So(first.Name, ShouldEqual, "A")
			second, _ := ds.At(1)
			So(second.Name, ShouldEqual, "B")
			_, ok = ds.At(5)
			So(ok, ShouldBeFalse)
		})
	})

	Convey("Given an empty dataset", t, func() {
		ds := dataset.New(nil)

		Convey("Then every total is zero", func() {
			So(ds.Totals(), ShouldResemble, dataset.Totals{})
			So(ds.Geolocated(), ShouldBeEmpty)
			So(ds.CountryBreakdown(), ShouldBeEmpty)
		})
	})
}

func TestDatasetGeolocated(t *testing.T) {
	Convey("Given contributors with and without coordinates", t, func() {
		ds := dataset.New([]contributor.Contributor{
			{Name: "A", Lat: 51.5, Lng: -0.12},
			{Name: "B"},
			{Name: "C", Lat: 10, Lng: 0},
			{Name: "D", Lat: -33.86, Lng: 151.2},
		})

		Convey("Then only both-present records are returned with their source index", func() {
			got := ds.Geolocated()
			So(len(got), ShouldEqual, 2)
			So(got[0].Index, ShouldEqual, 0)
			So(got[0].Contributor.Name, ShouldEqual, "A")
			So(got[1].Index, ShouldEqual, 3)
			So(got[1].Contributor.Name, ShouldEqual, "D")
		})
	})
}
