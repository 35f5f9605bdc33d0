// Package config defines service configuration and its loading.
//
// Values are layered: defaults from New, then an optional YAML file named by
// ROOTS_CONFIG, then ROOTS_* environment variables.
package config

// DefaultSheetURL is the published CSV export of the survey responses.
const DefaultSheetURL = "https://docs.google.com/spreadsheets/d/e/2PACX-1vRootsAndRoadsSurveyResponses/pub?gid=0&single=true&output=csv"

// Config contains process configuration.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`
	// LogFormat selects text or json log output.
	LogFormat string `koanf:"log_format"`

	// Addr configures the HTTP listen address, e.g. ":8080".
	Addr string `koanf:"addr"`

	// SheetURL is the published-CSV endpoint the dataset is loaded from.
	SheetURL string `koanf:"sheet_url"`
	// FetchTimeoutMS bounds the dataset request.
	FetchTimeoutMS int `koanf:"fetch_timeout_ms"`
	// LoadOnStart loads the dataset before the server starts listening.
	LoadOnStart bool `koanf:"load_on_start"`

	// BoundaryURL is the base URL of the place-search/boundary service.
	BoundaryURL string `koanf:"boundary_url"`
	// BoundaryTimeoutMS bounds one boundary request.
	BoundaryTimeoutMS int `koanf:"boundary_timeout_ms"`
	// BoundaryUserAgent identifies this service to the boundary service.
	BoundaryUserAgent string `koanf:"boundary_user_agent"`
	// BoundaryCacheSize caps cached country geometries.
	BoundaryCacheSize int `koanf:"boundary_cache_size"`

	// Map view defaults.
	MapCenterLat       float64 `koanf:"map_center_lat"`
	MapCenterLng       float64 `koanf:"map_center_lng"`
	MapZoom            int     `koanf:"map_zoom"`
	HighlightPaddingPX int     `koanf:"highlight_padding_px"`

	// GlobeTextureURL is the equirectangular world texture.
	GlobeTextureURL string `koanf:"globe_texture_url"`

	// Dashboard counter animation.
	CounterDurationMS int `koanf:"counter_duration_ms"`
	CounterSteps      int `koanf:"counter_steps"`

	// RateLimitPerMinute caps requests per client IP.
	RateLimitPerMinute int `koanf:"rate_limit_per_minute"`
	// CORSAllowedOrigins lists origins allowed to call the API.
	CORSAllowedOrigins []string `koanf:"cors_allowed_origins"`
}

// New returns a Config populated with defaults.
func New() *Config {
	return &Config{
		LogLevel:           "info",
		LogFormat:          "text",
		Addr:               ":9080",
		SheetURL:           DefaultSheetURL,
		FetchTimeoutMS:     15_000,
		LoadOnStart:        true,
		BoundaryURL:        "https://nominatim.openstreetmap.org",
		BoundaryTimeoutMS:  8_000,
		BoundaryUserAgent:  "rootsroads/1.0 (+https://rootsroads.kz)",
		BoundaryCacheSize:  256,
		MapCenterLat:       48.0,
		MapCenterLng:       68.0,
		MapZoom:            3,
		HighlightPaddingPX: 20,
		GlobeTextureURL:    "https://unpkg.com/three-globe/example/img/earth-blue-marble.jpg",
		CounterDurationMS:  2_000,
		CounterSteps:       50,
		RateLimitPerMinute: 600,
		CORSAllowedOrigins: []string{"*"},
	}
}
