package repository

import (
	"context"
	"errors"
	"testing"

	"github.com/okian/rootsroads/internal/domain/contributor"
	"github.com/okian/rootsroads/internal/domain/dataset"
	. "github.com/smartystreets/goconvey/convey"
)

func TestMemoryStore(t *testing.T) {
	Convey("Given an empty memory store", t, func() {
		ctx := context.Background()
		s := NewMemoryStore(ctx)

		Convey("Then Current reports not loaded", func() {
			ds, err := s.Current(ctx)
			So(ds, ShouldBeNil)
			So(errors.Is(err, ErrNotLoaded), ShouldBeTrue)
			So(s.Count(ctx), ShouldEqual, 0)
		})

		Convey("When a nil dataset is published", func() {
			err := s.Replace(ctx, nil)

			Convey("Then it is refused", func() {
				So(errors.Is(err, ErrNilData), ShouldBeTrue)
			})
		})

		Convey("When datasets are published", func() {
			first := dataset.New([]contributor.Contributor{{Name: "A"}})
			second := dataset.New([]contributor.Contributor{{Name: "A"}, {Name: "B", Country: "Japan", Lat: 35.6, Lng: 139.7}})
			So(s.Replace(ctx, first), ShouldBeNil)
			So(s.Replace(ctx, second), ShouldBeNil)

			Convey("Then the latest one is current", func() {
				ds, err := s.Current(ctx)
				So(err, ShouldBeNil)
				So(ds, ShouldEqual, second)
				So(s.Count(ctx), ShouldEqual, 2)
			})
		})
	})
}
