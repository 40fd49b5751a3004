package hfstol

import "errors"

// Sentinel errors returned by this package. Callers should use errors.Is
// rather than comparing strings, since all of them are usually wrapped with
// extra detail via fmt.Errorf's %w.
var (
	// ErrNotFound means the transducer file could not be opened.
	ErrNotFound = errors.New("hfstol: transducer file not found")
	// ErrBadHeader means the file is not a recognizable optimized-lookup
	// binary, or its header is internally inconsistent.
	ErrBadHeader = errors.New("hfstol: malformed transducer header")
	// ErrUnsupportedFeature means the file asks for a lookup configuration
	// this package does not implement. No current code path returns it;
	// the sentinel is part of the API for callers that already check it.
	ErrUnsupportedFeature = errors.New("hfstol: unsupported transducer feature")
	// ErrTokenizationFailed means the input string could not be split into
	// known symbols at some position.
	ErrTokenizationFailed = errors.New("hfstol: could not tokenize input")
)
