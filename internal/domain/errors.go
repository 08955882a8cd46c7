package domain

import "errors"

// Sentinel errors for domain operations
var (
	// ErrItemNotFound indicates the requested catalog record does not exist
	ErrItemNotFound = errors.New("catalog item not found")

	// ErrServerOffline indicates the catalog service is unreachable
	ErrServerOffline = errors.New("catalog service is unreachable")

	// ErrAuthFailed indicates the API credential was rejected
	ErrAuthFailed = errors.New("catalog credential is invalid")

	// ErrUnexpectedStatus indicates a non-success HTTP status that is not retried
	ErrUnexpectedStatus = errors.New("unexpected catalog response status")

	// ErrUnknownCollection indicates an annotation collection name that does not exist
	ErrUnknownCollection = errors.New("unknown annotation collection")

	// ErrInvalidID indicates an item id that is not a positive integer
	ErrInvalidID = errors.New("invalid item id")
)
