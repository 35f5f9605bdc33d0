package main

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/okian/rootsroads/internal/adapters/sheet"
	app "github.com/okian/rootsroads/internal/app"
	"github.com/okian/rootsroads/internal/config"
	"github.com/okian/rootsroads/pkg/logger"

	"github.com/smartystreets/goconvey/convey"
)

const surveyCSV = "Timestamp,1. Full name ,Country,City,Latitude,Longitude,28. I agree that Roots & Roads may publish my story\n" +
	"1/1/2024,Aigerim,Germany,Berlin,52.52,13.40,Yes\n" +
	"1/2/2024,Nurlan,Japan,Tokyo,35.68,139.69,No\n"

func TestConfigFromEnvironment(t *testing.T) {
	convey.Convey("Given ROOTS_ environment variables", t, func() {
		vars := map[string]string{
			"ROOTS_ADDR":             ":8080",
			"ROOTS_FETCH_TIMEOUT_MS": "5000",
			"ROOTS_LOAD_ON_START":    "false",
		}
		for k, v := range vars {
			_ = os.Setenv(k, v)
		}
		defer func() {
			for k := range vars {
				_ = os.Unsetenv(k)
			}
		}()

		convey.Convey("Then they override the defaults", func() {
			cfg, err := config.Load(context.Background())
			convey.So(err, convey.ShouldBeNil)
			convey.So(cfg.Addr, convey.ShouldEqual, ":8080")
			convey.So(cfg.FetchTimeoutMS, convey.ShouldEqual, 5000)
			convey.So(cfg.LoadOnStart, convey.ShouldBeFalse)
			convey.So(cfg.CounterSteps, convey.ShouldEqual, 50)
		})
	})
}

func TestRouter(t *testing.T) {
	convey.Convey("Given a router over a loaded dataset", t, func() {
		sheetSrv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			_, _ = io.WriteString(w, surveyCSV)
		}))
		defer sheetSrv.Close()

		ctx := context.Background()
		cfg := config.New()
		cfg.BoundaryURL = "http://127.0.0.1:0"

		svc := app.New(sheet.NewFetcher(sheetSrv.URL), app.WithLogger(logger.Nop()))
		_, err := svc.Load(ctx)
		convey.So(err, convey.ShouldBeNil)

		h, err := newRouter(ctx, cfg, svc, logger.Nop())
		convey.So(err, convey.ShouldBeNil)

		get := func(path string) *httptest.ResponseRecorder {
			rec := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodGet, path, http.NoBody)
			req.RemoteAddr = "192.0.2.1:1234"
			h.ServeHTTP(rec, req)
			return rec
		}

		convey.Convey("Then the API, docs and site are all served", func() {
			convey.So(get("/api/status").Code, convey.ShouldEqual, http.StatusOK)
			convey.So(get("/api/contributors").Body.String(), convey.ShouldContainSubstring, "Aigerim")
			convey.So(get("/api/articles").Code, convey.ShouldEqual, http.StatusOK)
			convey.So(get("/openapi.yaml").Code, convey.ShouldEqual, http.StatusOK)
			convey.So(get("/healthz").Code, convey.ShouldEqual, http.StatusOK)
			convey.So(get("/").Code, convey.ShouldEqual, http.StatusOK)
		})

		convey.Convey("And a missing boundary country is rejected", func() {
			convey.So(get("/api/boundary").Code, convey.ShouldEqual, http.StatusBadRequest)
		})
	})

	convey.Convey("Given an unusable boundary URL", t, func() {
		cfg := config.New()
		cfg.BoundaryURL = ""

		convey.Convey("Then the router is not built", func() {
			svc := app.New(sheet.NewFetcher("http://127.0.0.1:0"))
			_, err := newRouter(context.Background(), cfg, svc, logger.Nop())
			convey.So(err, convey.ShouldNotBeNil)
		})
	})
}

func TestSystemMetrics(t *testing.T) {
	convey.Convey("Given the system metrics updater", t, func() {
		convey.Convey("Then a single update does not panic", func() {
			convey.So(updateSystemMetrics, convey.ShouldNotPanic)
		})

		convey.Convey("And the updater returns when the context ends", func() {
			ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
			defer cancel()
			done := make(chan struct{})
			go func() {
				startSystemMetricsUpdater(ctx)
				close(done)
			}()
			select {
			case <-done:
			case <-time.After(time.Second):
				convey.So("updater still running", convey.ShouldBeEmpty)
			}
		})
	})
}
