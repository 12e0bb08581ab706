package domain

import "errors"

// Error taxonomy shared across the pipeline. Callers match with errors.Is;
// implementations wrap these with fmt.Errorf("%w: ...") to add detail.
var (
	// ErrConfiguration marks caller-fixable parameter errors, raised
	// before any I/O is attempted.
	ErrConfiguration = errors.New("invalid configuration")

	// ErrNotFound marks a missing source document.
	ErrNotFound = errors.New("not found")

	// ErrExtraction marks a failure of the text extractor.
	ErrExtraction = errors.New("extraction failed")

	// ErrStore marks a failure of the similarity store.
	ErrStore = errors.New("store error")

	// ErrGeneration marks a failure of the answer generator.
	ErrGeneration = errors.New("generation failed")
)
