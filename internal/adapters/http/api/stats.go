package api

import (
	"encoding/json"
	"fmt"
	"net/http"
	"sync"

	"github.com/okian/rootsroads/internal/domain/dataset"
	"github.com/okian/rootsroads/internal/domain/stats"
	"github.com/okian/rootsroads/pkg/metrics"

	"github.com/go-chi/render"
)

// StatsProvider defines the interface for getting service statistics.
type StatsProvider interface {
	GetStats() map[string]any
}

// StatsHandler serves dashboard totals, plain and animated.
type StatsHandler struct {
	current       currentFunc
	statsProvider StatsProvider
	counterOpts   []stats.Option
}

// NewStatsHandler creates a new stats handler.
func NewStatsHandler(current currentFunc, statsProvider StatsProvider, opts ...stats.Option) *StatsHandler {
	return &StatsHandler{current: current, statsProvider: statsProvider, counterOpts: opts}
}

type statsResponse struct {
	Students  int                    `json:"students"`
	Countries int                    `json:"countries"`
	Stories   int                    `json:"stories"`
	Breakdown []dataset.CountryCount `json:"breakdown"`
	Loader    map[string]any         `json:"loader"`
}

// HandleStats handles GET /api/stats.
func (h *StatsHandler) HandleStats(w http.ResponseWriter, r *http.Request) {
	ds, ok := h.current(w, r)
	if !ok {
		return
	}
	t := ds.Totals()
	writeJSON(w, r, http.StatusOK, statsResponse{
		Students:  t.Students,
		Countries: t.Countries,
		Stories:   t.Stories,
		Breakdown: ds.CountryBreakdown(),
		Loader:    h.statsProvider.GetStats(),
	})
}

type counterFrame struct {
	Counter string `json:"counter"`
	Value   int    `json:"value"`
}

// sseDisplay writes each counter value as a server-sent event.
type sseDisplay struct {
	mu      sync.Mutex
	w       http.ResponseWriter
	flusher http.Flusher
	err     error
}

func (d *sseDisplay) Show(counter string, value int) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.err != nil {
		return
	}
	d.err = d.event("counter", counterFrame{Counter: counter, Value: value})
	metrics.RecordStatsStreamFrame()
}

func (d *sseDisplay) event(name string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return err
	}
	if _, err := fmt.Fprintf(d.w, "event: %s\ndata: %s\n\n", name, data); err != nil {
		return err
	}
	d.flusher.Flush()
	return nil
}

// HandleStream handles GET /api/stats/stream: the three dashboard counters
// animate from zero to the dataset totals as a server-sent event stream,
// followed by a final "done" event carrying the totals.
func (h *StatsHandler) HandleStream(w http.ResponseWriter, r *http.Request) {
	ds, ok := h.current(w, r)
	if !ok {
		return
	}
	flusher, ok := w.(http.Flusher)
	if !ok {
		_ = render.Render(w, r, errInternal(fmt.Errorf("api.stats_stream: streaming unsupported")))
		return
	}

	metrics.IncStatsStreams()
	defer metrics.DecStatsStreams()

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.WriteHeader(http.StatusOK)
	flusher.Flush()

	t := ds.Totals()
	targets := stats.Targets{Students: t.Students, Countries: t.Countries, Stories: t.Stories}
	display := &sseDisplay{w: w, flusher: flusher}
	if err := stats.NewDashboard(h.counterOpts...).Animate(r.Context(), targets, display); err != nil {
		return
	}

	display.mu.Lock()
	defer display.mu.Unlock()
	if display.err == nil {
		_ = display.event("done", targets)
	}
}
