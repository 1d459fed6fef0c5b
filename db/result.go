package db

import (
	"encoding/json"
	"fmt"
)

// ResultKind identifies which of the three outcomes a database operation
// produced.
type ResultKind int

const (
	// Expected means the database answered with a document of the
	// requested shape.
	Expected ResultKind = iota
	// Unexpected means the database answered, but the payload could not
	// be interpreted as the requested shape.
	Unexpected
	// Empty means the response stream closed without producing an item.
	Empty
)

func (k ResultKind) String() string {
	switch k {
	case Expected:
		return "expected"
	case Unexpected:
		return "unexpected"
	case Empty:
		return "empty"
	default:
		return fmt.Sprintf("ResultKind(%d)", int(k))
	}
}

// Result is the outcome of a single database operation. Value is only
// meaningful when Kind is Expected, and Raw only when Kind is Unexpected.
type Result[T any] struct {
	Kind  ResultKind
	Value T
	Raw   string
}

func ExpectedResult[T any](value T) Result[T] {
	return Result[T]{Kind: Expected, Value: value}
}

func UnexpectedResult[T any](raw string) Result[T] {
	return Result[T]{Kind: Unexpected, Raw: raw}
}

func EmptyResult[T any]() Result[T] {
	return Result[T]{Kind: Empty}
}

// WriteStatus summarizes a write operation: how many documents each
// operation touched, how many errors occurred, and which keys the database
// generated.
type WriteStatus struct {
	Inserted      int      `json:"inserted"`
	Replaced      int      `json:"replaced"`
	Unchanged     int      `json:"unchanged"`
	Skipped       int      `json:"skipped"`
	Deleted       int      `json:"deleted"`
	Errors        int      `json:"errors"`
	FirstError    string   `json:"first_error,omitempty"`
	GeneratedKeys []string `json:"generated_keys,omitempty"`
}

// Matched reports whether the write found at least one document to act on.
func (s WriteStatus) Matched() bool {
	return s.Inserted+s.Replaced+s.Unchanged+s.Deleted > 0
}

func (s WriteStatus) String() string {
	out, err := json.Marshal(s)
	if err != nil {
		return fmt.Sprintf("%+v", map[string]any{"errors": s.Errors, "first_error": s.FirstError})
	}
	return string(out)
}
