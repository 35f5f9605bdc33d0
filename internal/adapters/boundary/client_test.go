package boundary_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/okian/rootsroads/internal/adapters/boundary"
	"github.com/okian/rootsroads/internal/domain/geomap"
	. "github.com/smartystreets/goconvey/convey"
)

const kazakhstan = `[{"display_name":"Kazakhstan","boundingbox":["40.5686476","55.4421701","46.4932179","87.3156316"],` +
	`"geojson":{"type":"Polygon","coordinates":[[[46.5,40.6],[87.3,40.6],[87.3,55.4],[46.5,40.6]]]}}]`

func TestClientLookup(t *testing.T) {
	ctx := context.Background()
	kz := geomap.BoundaryID{Code: "KZ", Query: "Kazakhstan"}

	Convey("Given a Nominatim-compatible service", t, func() {
		var hits atomic.Int32
		var status = http.StatusOK
		var body = kazakhstan
		var gotQuery, gotUA string
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			hits.Add(1)
			gotQuery = r.URL.RawQuery
			gotUA = r.Header.Get("User-Agent")
			if r.URL.Path != "/search" {
				w.WriteHeader(http.StatusNotFound)
				return
			}
			w.WriteHeader(status)
			_, _ = w.Write([]byte(body))
		}))
		defer srv.Close()

		c, err := boundary.New(srv.URL+"/", boundary.WithUserAgent("test-agent"), boundary.WithCacheSize(2))
		So(err, ShouldBeNil)

		Convey("When a country is looked up", func() {
			b, err := c.Lookup(ctx, kz)

			Convey("Then geometry and bounds are decoded", func() {
				So(err, ShouldBeNil)
				So(b.ID, ShouldResemble, kz)
				So(b.Name, ShouldEqual, "Kazakhstan")
				So(b.Bounds.South, ShouldAlmostEqual, 40.5686476)
				So(b.Bounds.North, ShouldAlmostEqual, 55.4421701)
				So(b.Bounds.West, ShouldAlmostEqual, 46.4932179)
				So(b.Bounds.East, ShouldAlmostEqual, 87.3156316)
				So(string(b.Geometry), ShouldStartWith, `{"type":"Polygon"`)
				So(gotUA, ShouldEqual, "test-agent")
				So(gotQuery, ShouldContainSubstring, "polygon_geojson=1")
				So(gotQuery, ShouldContainSubstring, "country=Kazakhstan")
				So(gotQuery, ShouldContainSubstring, "format=json")
			})

			Convey("And a repeat lookup is served from cache", func() {
				_, err := c.Lookup(ctx, kz)
				So(err, ShouldBeNil)
				So(hits.Load(), ShouldEqual, int32(1))
				So(c.Cached(), ShouldEqual, 1)
			})
		})

		Convey("When the service has no match", func() {
			body = "[]"
			_, err := c.Lookup(ctx, kz)
			So(errors.Is(err, boundary.ErrNotFound), ShouldBeTrue)
			So(c.Cached(), ShouldEqual, 0)
		})

		Convey("When the service errors", func() {
			status = http.StatusServiceUnavailable
			_, err := c.Lookup(ctx, kz)
			So(errors.Is(err, boundary.ErrRequest), ShouldBeTrue)
		})

		Convey("When the body is not a search result", func() {
			body = `{"error":"nope"}`
			_, err := c.Lookup(ctx, kz)
			So(errors.Is(err, boundary.ErrDecode), ShouldBeTrue)
		})

		Convey("When the bounding box is malformed", func() {
			body = `[{"boundingbox":["a","b"],"geojson":{"type":"Point","coordinates":[0,0]}}]`
			_, err := c.Lookup(ctx, kz)
			So(errors.Is(err, boundary.ErrDecode), ShouldBeTrue)
		})
	})

	Convey("Given a service slower than the timeout", t, func() {
		release := make(chan struct{})
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			select {
			case <-release:
			case <-r.Context().Done():
			}
		}))
		defer srv.Close()
		defer close(release)

		c, err := boundary.New(srv.URL, boundary.WithTimeout(50*time.Millisecond))
		So(err, ShouldBeNil)

		Convey("Then the lookup fails as a request error", func() {
			_, err := c.Lookup(ctx, kz)
			So(errors.Is(err, boundary.ErrRequest), ShouldBeTrue)
		})
	})

	Convey("Given the client behind the map highlighter", t, func() {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			_, _ = w.Write([]byte(kazakhstan))
		}))
		defer srv.Close()

		c, err := boundary.New(srv.URL)
		So(err, ShouldBeNil)

		Convey("Then display names resolve through the lookup table", func() {
			b, err := geomap.Resolve(ctx, c, "Kazakhstan")
			So(err, ShouldBeNil)
			So(b.ID.Code, ShouldEqual, "KZ")
		})
	})

	Convey("Given an empty base URL", t, func() {
		_, err := boundary.New("")
		So(err, ShouldNotBeNil)
	})
}
