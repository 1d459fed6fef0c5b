package db

import (
	"strings"

	"github.com/pkg/errors"
	"go.mongodb.org/mongo-driver/mongo"
)

// ErrNoResponse is returned when the database closed a response stream
// that should have carried exactly one item.
var ErrNoResponse = errors.New("received no response from database")

func IsDuplicateKey(err error) bool {
	if err == nil {
		return false
	}

	if mongo.IsDuplicateKeyError(errors.Cause(err)) {
		return true
	}

	return strings.Contains(errors.Cause(err).Error(), "duplicate key")
}

func IsDocumentLimit(err error) bool {
	if err == nil {
		return false
	}
	return strings.Contains(errors.Cause(err).Error(), "an inserted document is too large")
}

// writeStatusFromError converts a server-reported write failure into a
// WriteStatus. It returns false for any other kind of error (e.g. network
// failures), which callers should propagate instead.
func writeStatusFromError(err error) (WriteStatus, bool) {
	var we mongo.WriteException
	if !errors.As(err, &we) {
		return WriteStatus{}, false
	}

	status := WriteStatus{Errors: len(we.WriteErrors)}
	for _, writeErr := range we.WriteErrors {
		if status.FirstError == "" {
			status.FirstError = writeErr.Message
		}
	}
	if we.WriteConcernError != nil {
		status.Errors++
		if status.FirstError == "" {
			status.FirstError = we.WriteConcernError.Message
		}
	}
	if status.Errors == 0 {
		// A write exception with no detail is still a failed write.
		status.Errors = 1
		status.FirstError = we.Error()
	}

	return status, true
}
