package site

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	. "github.com/smartystreets/goconvey/convey"
)

func TestSiteHandler(t *testing.T) {
	Convey("Given the site mounted on a router with an API route", t, func() {
		r := chi.NewRouter()
		r.Get("/api/status", func(w http.ResponseWriter, _ *http.Request) { w.WriteHeader(http.StatusTeapot) })
		Register(context.Background(), r)

		get := func(path string) *httptest.ResponseRecorder {
			w := httptest.NewRecorder()
			r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, http.NoBody))
			return w
		}

		Convey("Then / serves the page shell", func() {
			w := get("/")
			So(w.Code, ShouldEqual, http.StatusOK)
			So(w.Header().Get("Content-Type"), ShouldContainSubstring, "text/html")
			So(w.Body.String(), ShouldContainSubstring, "Roots &amp; Roads")
			So(w.Body.String(), ShouldContainSubstring, `id="retry"`)
		})

		Convey("Then assets are served", func() {
			So(get("/app.js").Code, ShouldEqual, http.StatusOK)
			So(get("/app.css").Code, ShouldEqual, http.StatusOK)
		})

		Convey("Then the globe renderer reads the scene payload", func() {
			js := get("/app.js").Body.String()
			for _, field := range []string{
				"scene.texture", "scene.markers", "m.position", "m.contributor.name",
				"pulse.curve", "pulse.periodMs", "scene.pulse",
				"spec.dragSensitivity", "spec.autoRotateStep", "spec.maxTilt",
				"scene.camera.fov", "scene.camera.distance",
			} {
				So(js, ShouldContainSubstring, field)
			}
			So(get("/").Body.String(), ShouldContainSubstring, "three.min.js")
		})

		Convey("Then the loader starts an idle server and tolerates a failed reload", func() {
			js := get("/app.js").Body.String()
			So(js, ShouldContainSubstring, "st.phase === 'idle'")
			So(js, ShouldContainSubstring, "getJSON('/api/reload', { method: 'POST' })")
			So(js, ShouldContainSubstring, "await datasetPublished()")
			So(js, ShouldContainSubstring, "fetch('/api/stats')")
		})

		Convey("Then API routes are not shadowed", func() {
			So(get("/api/status").Code, ShouldEqual, http.StatusTeapot)
		})

		Convey("Then unknown assets are 404", func() {
			So(get("/missing.png").Code, ShouldEqual, http.StatusNotFound)
		})
	})
}

func TestRegisterNilRouter(t *testing.T) {
	Convey("Given a nil router", t, func() {
		So(func() { Register(context.Background(), nil) }, ShouldPanic)
	})
}
