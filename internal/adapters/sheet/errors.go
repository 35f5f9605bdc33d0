package sheet

import "errors"

// Sentinel kinds for dataset retrieval. Callers match them with errors.Is.
var (
	ErrNetwork      = errors.New("sheet request failed")
	ErrEmptyPayload = errors.New("sheet returned an empty payload")
	ErrParse        = errors.New("sheet could not be parsed")
)
