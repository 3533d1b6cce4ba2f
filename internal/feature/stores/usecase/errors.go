package usecase

import "errors"

var (
	// ErrStoreNotFound is returned when a store does not exist or is not owned by the caller.
	ErrStoreNotFound = errors.New("store not found")

	// ErrOwnerNotFound is returned when the owner referenced by a new store does not exist.
	ErrOwnerNotFound = errors.New("owner not found")

	// ErrInvalidOwner is returned when the referenced owner does not have role "store".
	ErrInvalidOwner = errors.New("owner must have role store")

	// ErrInvalidStore is returned when a new store has a blank name.
	ErrInvalidStore = errors.New("store name is required")
)
