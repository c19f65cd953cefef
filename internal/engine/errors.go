package engine

import "errors"

// Error kinds for the extraction pipeline. All are terminal for the
// single record being built; retries for transient network conditions
// belong to the fetch layer, not here. Callers classify with errors.Is
// and surface kind + message per data source independently.
var (
	// ErrUnsupportedFormat: the declared document kind is not pdf/docx.
	ErrUnsupportedFormat = errors.New("unsupported file format")

	// ErrInvalidInput: size guard violated before decode was attempted.
	ErrInvalidInput = errors.New("invalid input")

	// ErrDecode: the byte stream cannot be parsed as the declared kind.
	ErrDecode = errors.New("malformed document")

	// ErrInsufficientContent: decoded text below the minimum meaningful length.
	ErrInsufficientContent = errors.New("insufficient content")

	// ErrNoMeaningfulData: every identity/skill/education/experience
	// field came out empty after extraction.
	ErrNoMeaningfulData = errors.New("no meaningful data extracted")
)
