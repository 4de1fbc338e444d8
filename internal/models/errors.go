package models

import "errors"

var (
	ErrUnsupportedFormat = errors.New("unsupported format")
	ErrOversizeFile      = errors.New("file too large")
	ErrExtractionFailure = errors.New("extraction failed")
	ErrDetectionFailure  = errors.New("detection failed")
)
