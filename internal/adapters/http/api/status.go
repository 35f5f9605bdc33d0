package api

import (
	"net/http"

	service "github.com/okian/rootsroads/internal/app"
	"github.com/okian/rootsroads/pkg/logger"

	"github.com/go-chi/render"
)

// StatusHandler reports loader progress and runs manual reloads.
type StatusHandler struct {
	deps Dependencies
	log  logger.Logger
}

// NewStatusHandler creates a new status handler.
func NewStatusHandler(deps Dependencies, log logger.Logger) *StatusHandler {
	return &StatusHandler{deps: deps, log: log}
}

// HandleStatus handles GET /api/status.
func (h *StatusHandler) HandleStatus(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, r, http.StatusOK, h.deps.Status())
}

type reloadResponse struct {
	Status service.Status `json:"status"`
	Count  int            `json:"count"`
}

// HandleReload handles POST /api/reload. The reload runs with the request's
// context, so a client that goes away cancels it.
func (h *StatusHandler) HandleReload(w http.ResponseWriter, r *http.Request) {
	ds, err := h.deps.Reload(r.Context())
	if err != nil {
		st := h.deps.Status()
		h.log.Warn(r.Context(), "manual reload failed", logger.String("kind", string(st.ErrorKind)), logger.Error(err))
		_ = render.Render(w, r, errUnavailable(string(st.ErrorKind), st.Message))
		return
	}
	writeJSON(w, r, http.StatusOK, reloadResponse{Status: h.deps.Status(), Count: ds.Len()})
}
