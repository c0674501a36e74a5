package domain

import "errors"

// Sentinel errors for graph operations. Callers check these with
// errors.Is; the api layer maps them to response codes.
var (
	// ErrDuplicateID indicates an asset or event id is already present
	// in the graph.
	ErrDuplicateID = errors.New("duplicate id")

	// ErrNotFound indicates the referenced id does not exist in the graph.
	ErrNotFound = errors.New("not found")

	// ErrInvalidAttribute indicates an asset or event failed its
	// class-specific validation.
	ErrInvalidAttribute = errors.New("invalid attribute")

	// ErrInvalidRelationship indicates a relationship with an
	// out-of-range weight, a self-loop, or a missing endpoint.
	ErrInvalidRelationship = errors.New("invalid relationship")
)
