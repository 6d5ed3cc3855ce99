package apperr

import "errors"

var (
	// ErrInvalid marks a malformed or empty request.
	ErrInvalid = errors.New("invalid request")

	// ErrDocumentRead marks a missing or unreadable source file.
	// Ingestion treats it as non-fatal and skips the file.
	ErrDocumentRead = errors.New("document read failed")

	// ErrEmbedding marks a failed call to the remote embedding service.
	ErrEmbedding = errors.New("embedding service failed")

	// ErrCompletion marks a failed call to the remote completion service.
	ErrCompletion = errors.New("completion service failed")

	// ErrPersistence marks a datastore failure or rejected write.
	ErrPersistence = errors.New("persistence failed")
)

func IsInvalid(err error) bool {
	return errors.Is(err, ErrInvalid)
}

func IsDocumentRead(err error) bool {
	return errors.Is(err, ErrDocumentRead)
}
