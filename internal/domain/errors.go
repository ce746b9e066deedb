package domain

import "errors"

var (
	// ErrDataUnavailable signals that the corpus is not loaded.
	ErrDataUnavailable = errors.New("corpus data unavailable")
	// ErrVectorizationUnavailable signals that no usable vocabulary could be built.
	ErrVectorizationUnavailable = errors.New("vectorization unavailable")
	// ErrInvalidReference signals a reference article id outside the corpus.
	ErrInvalidReference = errors.New("invalid article reference")
	// ErrMalformedFilter signals an inconsistent filter predicate.
	ErrMalformedFilter = errors.New("malformed filter")
	// ErrArticleNotFound signals a missing article in the submission store.
	ErrArticleNotFound = errors.New("article not found")
	// ErrInvalidSubmission signals a submission payload that failed validation.
	ErrInvalidSubmission = errors.New("invalid submission")
)
