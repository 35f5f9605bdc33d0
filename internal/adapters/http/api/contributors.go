package api

import (
	"net/http"

	"github.com/okian/rootsroads/internal/domain/contributor"
)

// ContributorsHandler serves the accepted contributors.
type ContributorsHandler struct {
	current currentFunc
}

// NewContributorsHandler creates a new contributors handler.
func NewContributorsHandler(current currentFunc) *ContributorsHandler {
	return &ContributorsHandler{current: current}
}

type contributorsResponse struct {
	LoadID       string                    `json:"loadId"`
	Count        int                       `json:"count"`
	Contributors []contributor.Contributor `json:"contributors"`
}

// HandleList handles GET /api/contributors. Order follows the sheet.
func (h *ContributorsHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	ds, ok := h.current(w, r)
	if !ok {
		return
	}
	writeJSON(w, r, http.StatusOK, contributorsResponse{
		LoadID:       ds.ID(),
		Count:        ds.Len(),
		Contributors: ds.Contributors(),
	})
}
