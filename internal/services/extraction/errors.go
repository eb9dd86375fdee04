package extraction

import "errors"

var (
	// ErrUnsupportedFormat is returned for extensions with no extraction strategy
	ErrUnsupportedFormat = errors.New("unsupported file extension")

	// ErrExtractionFailed wraps any format-specific read, parse or decode failure
	ErrExtractionFailed = errors.New("extraction failed")
)

// failure tags err as an extraction failure while keeping the underlying cause in the message
func failure(format string, err error) error {
	return &extractionError{format: format, err: err}
}

type extractionError struct {
	format string
	err    error
}

func (e *extractionError) Error() string {
	return "Error extracting text from " + e.format + ": " + e.err.Error()
}

func (e *extractionError) Unwrap() []error {
	return []error{ErrExtractionFailed, e.err}
}
