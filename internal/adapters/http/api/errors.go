package api

import (
	"errors"
	"net/http"

	"github.com/go-chi/render"
)

// Sentinel kinds for API errors.
var (
	ErrBadRequest  = errors.New("bad request")
	ErrNotFound    = errors.New("not found")
	ErrUnavailable = errors.New("dataset unavailable")
)

// ErrResponse is the JSON error body of every failed request.
type ErrResponse struct {
	Err            error  `json:"-"`
	HTTPStatusCode int    `json:"-"`
	Code           string `json:"code"`
	Message        string `json:"message"`
	Kind           string `json:"kind,omitempty"`
	Retry          string `json:"retry,omitempty"`
}

// Render implements render.Renderer.
func (e *ErrResponse) Render(_ http.ResponseWriter, r *http.Request) error {
	render.Status(r, e.HTTPStatusCode)
	return nil
}

func errBadRequest(err error) render.Renderer {
	return &ErrResponse{Err: err, HTTPStatusCode: http.StatusBadRequest, Code: "bad_request", Message: err.Error()}
}

func errNotFound(err error) render.Renderer {
	return &ErrResponse{Err: err, HTTPStatusCode: http.StatusNotFound, Code: "not_found", Message: err.Error()}
}

func errInternal(err error) render.Renderer {
	return &ErrResponse{
		Err:            err,
		HTTPStatusCode: http.StatusInternalServerError,
		Code:           "internal_error",
		Message:        http.StatusText(http.StatusInternalServerError),
	}
}

// errUnavailable is the blocking error surface: the dataset could not be
// loaded and the client should offer a manual retry.
func errUnavailable(kind, message string) render.Renderer {
	return &ErrResponse{
		Err:            ErrUnavailable,
		HTTPStatusCode: http.StatusServiceUnavailable,
		Code:           "dataset_unavailable",
		Message:        message,
		Kind:           kind,
		Retry:          "POST " + reloadPath,
	}
}
