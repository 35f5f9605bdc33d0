package config_test

import (
	"context"
	"errors"
	"os"
	"testing"

	"github.com/okian/rootsroads/internal/config"
	"github.com/smartystreets/goconvey/convey"
)

func TestConfigLoader(t *testing.T) {
	convey.Convey("Given a config loader", t, func() {
		ctx := context.Background()
		clearConfigEnvVars()
		defer clearConfigEnvVars()

		convey.Convey("When loading config with defaults only", func() {
			cfg, err := config.Load(ctx)

			convey.Convey("Then it should load successfully with defaults", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg.Addr, convey.ShouldEqual, ":9080")
				convey.So(cfg.SheetURL, convey.ShouldEqual, config.DefaultSheetURL)
				convey.So(cfg.BoundaryCacheSize, convey.ShouldEqual, 256)
				convey.So(cfg.CORSAllowedOrigins, convey.ShouldResemble, []string{"*"})
			})
		})

		convey.Convey("When loading config with environment variables", func() {
			_ = os.Setenv("ROOTS_ADDR", ":8080")
			_ = os.Setenv("ROOTS_SHEET_URL", "http://sheet.local/export.csv")
			_ = os.Setenv("ROOTS_FETCH_TIMEOUT_MS", "2500")
			_ = os.Setenv("ROOTS_LOAD_ON_START", "false")
			_ = os.Setenv("ROOTS_MAP_CENTER_LAT", "51.5")

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should override defaults with env vars", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg.Addr, convey.ShouldEqual, ":8080")
				convey.So(cfg.SheetURL, convey.ShouldEqual, "http://sheet.local/export.csv")
				convey.So(cfg.FetchTimeoutMS, convey.ShouldEqual, 2500)
				convey.So(cfg.LoadOnStart, convey.ShouldBeFalse)
				convey.So(cfg.MapCenterLat, convey.ShouldEqual, 51.5)
			})
		})

		convey.Convey("When loading config with a YAML file and env overrides", func() {
			tmpFile := createTempConfigFile(`
# comments are fine
addr: ":9090"
counter_steps: 20
counter_duration_ms: 1000
cors_allowed_origins:
  - https://rootsroads.kz
  - https://www.rootsroads.kz
`)
			defer func() { _ = os.Remove(tmpFile) }()
			_ = os.Setenv("ROOTS_CONFIG", tmpFile)
			_ = os.Setenv("ROOTS_COUNTER_STEPS", "40")

			cfg, err := config.Load(ctx)

			convey.Convey("Then env wins over the file and the file over defaults", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg.Addr, convey.ShouldEqual, ":9090")
				convey.So(cfg.CounterSteps, convey.ShouldEqual, 40)
				convey.So(cfg.CounterDurationMS, convey.ShouldEqual, 1000)
				convey.So(cfg.CORSAllowedOrigins, convey.ShouldResemble, []string{"https://rootsroads.kz", "https://www.rootsroads.kz"})
				convey.So(cfg.FetchTimeoutMS, convey.ShouldEqual, 15_000)
			})
		})

		convey.Convey("When loading config with invalid YAML file", func() {
			tmpFile := createTempConfigFile(`invalid: yaml: content: [`)
			defer func() { _ = os.Remove(tmpFile) }()
			_ = os.Setenv("ROOTS_CONFIG", tmpFile)

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should return a load error", func() {
				convey.So(errors.Is(err, config.ErrLoadConfig), convey.ShouldBeTrue)
				convey.So(cfg, convey.ShouldBeNil)
			})
		})

		convey.Convey("When loading config with non-existent file", func() {
			_ = os.Setenv("ROOTS_CONFIG", "/non/existent/file.yaml")

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should return an error", func() {
				convey.So(err, convey.ShouldNotBeNil)
				convey.So(cfg, convey.ShouldBeNil)
			})
		})

		convey.Convey("When loading config with empty addr", func() {
			_ = os.Setenv("ROOTS_ADDR", "")

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should return a validation error", func() {
				convey.So(errors.Is(err, config.ErrInvalidConfig), convey.ShouldBeTrue)
				convey.So(err.Error(), convey.ShouldContainSubstring, "addr must not be empty")
				convey.So(cfg, convey.ShouldBeNil)
			})
		})

		convey.Convey("When loading config with invalid numeric environment variables", func() {
			_ = os.Setenv("ROOTS_COUNTER_STEPS", "not_a_number")

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should return an error", func() {
				convey.So(err, convey.ShouldNotBeNil)
				convey.So(cfg, convey.ShouldBeNil)
			})
		})
	})
}

func TestConfigValidate(t *testing.T) {
	convey.Convey("Given a valid config", t, func() {
		cases := map[string]func(*config.Config){
			"sheet_url":           func(c *config.Config) { c.SheetURL = " " },
			"fetch_timeout_ms":    func(c *config.Config) { c.FetchTimeoutMS = 0 },
			"boundary_timeout_ms": func(c *config.Config) { c.BoundaryTimeoutMS = -1 },
			"counter_steps":       func(c *config.Config) { c.CounterSteps = 0 },
			"counter_duration_ms": func(c *config.Config) { c.CounterDurationMS = -5 },
			"map_center_lat":      func(c *config.Config) { c.MapCenterLat = 91 },
			"map_center_lng":      func(c *config.Config) { c.MapCenterLng = -181 },
		}
		for key, mutate := range cases {
			cfg := config.New()
			mutate(cfg)
			err := cfg.Validate()
			convey.So(errors.Is(err, config.ErrInvalidConfig), convey.ShouldBeTrue)
			convey.So(err.Error(), convey.ShouldContainSubstring, key)
		}
	})
}

// Helper functions.

func clearConfigEnvVars() {
	for _, envVar := range []string{
		"ROOTS_CONFIG",
		"ROOTS_ADDR",
		"ROOTS_SHEET_URL",
		"ROOTS_FETCH_TIMEOUT_MS",
		"ROOTS_LOAD_ON_START",
		"ROOTS_MAP_CENTER_LAT",
		"ROOTS_COUNTER_STEPS",
	} {
		_ = os.Unsetenv(envVar)
	}
}

func createTempConfigFile(content string) string {
	tmpFile, err := os.CreateTemp("", "roots-config-*.yaml")
	if err != nil {
		panic(err)
	}
	if _, err := tmpFile.WriteString(content); err != nil {
		panic(err)
	}
	if err := tmpFile.Close(); err != nil {
		panic(err)
	}
	return tmpFile.Name()
}
