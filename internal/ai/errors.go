package ai

import "errors"

// ErrUnavailable means the provider has no credential configured.
var ErrUnavailable = errors.New("ai provider not configured")
