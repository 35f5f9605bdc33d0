package service

import (
	"context"
	"errors"

	"github.com/okian/rootsroads/internal/adapters/sheet"
)

// ErrorKind names a dataset load failure in status reports and metrics.
type ErrorKind string

// Load failure kinds.
const (
	KindNone         ErrorKind = ""
	KindNetwork      ErrorKind = "NetworkError"
	KindEmptyPayload ErrorKind = "EmptyPayloadError"
	KindParse        ErrorKind = "ParseError"
	KindCanceled     ErrorKind = "Canceled"
	KindUnknown      ErrorKind = "UnknownError"
)

// ErrNoSource is returned by Load when the service has no dataset source.
var ErrNoSource = errors.New("no dataset source configured")

// Kind classifies a load error.
func Kind(err error) ErrorKind {
	switch {
	case err == nil:
		return KindNone
	case errors.Is(err, sheet.ErrEmptyPayload):
		return KindEmptyPayload
	case errors.Is(err, sheet.ErrParse):
		return KindParse
	case errors.Is(err, sheet.ErrNetwork):
		return KindNetwork
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return KindCanceled
	default:
		return KindUnknown
	}
}

// userMessage is what the blocking error surface shows for each kind.
func userMessage(k ErrorKind) string {
	switch k {
	case KindNetwork:
		return "Could not reach the survey spreadsheet. Check your connection and reload."
	case KindEmptyPayload:
		return "The survey spreadsheet returned no data. Please reload later."
	case KindParse:
		return "The survey spreadsheet could not be read. Please reload later."
	case KindCanceled:
		return "Loading was interrupted. Please reload."
	default:
		return "Something went wrong while loading stories. Please reload."
	}
}
