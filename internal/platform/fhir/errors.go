package fhir

import (
	"errors"
	"fmt"
	"strings"
)

// NotFoundError reports an operation on a code or id absent from the store
// or from a fetched collection.
type NotFoundError struct {
	Resource string
	Key      string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %q not found", e.Resource, e.Key)
}

// IsNotFound reports whether err is (or wraps) a NotFoundError.
func IsNotFound(err error) bool {
	var nf *NotFoundError
	return errors.As(err, &nf)
}

// DuplicateCodeError reports a create with an already-used natural key.
type DuplicateCodeError struct {
	Code string
}

func (e *DuplicateCodeError) Error() string {
	return fmt.Sprintf("code %q already exists", e.Code)
}

// IsDuplicateCode reports whether err is (or wraps) a DuplicateCodeError.
func IsDuplicateCode(err error) bool {
	var d *DuplicateCodeError
	return errors.As(err, &d)
}

// VersionConflictError reports a stale whole-document write rejected by the
// server's version check.
type VersionConflictError struct {
	Resource string
	ID       string
}

func (e *VersionConflictError) Error() string {
	return fmt.Sprintf("%s/%s was modified by another writer", e.Resource, e.ID)
}

// IsVersionConflict reports whether err is (or wraps) a VersionConflictError.
func IsVersionConflict(err error) bool {
	var v *VersionConflictError
	return errors.As(err, &v)
}

// NetworkError wraps any rejected resource-server call, including
// validation failures the server returns.
type NetworkError struct {
	Op     string
	Status int
	Err    error
}

func (e *NetworkError) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("%s: resource server returned %d", e.Op, e.Status)
	}
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *NetworkError) Unwrap() error { return e.Err }

// PartialSaveError reports a multi-resource save that failed partway.
// Committed lists writes that stuck, RolledBack lists the compensating
// deletes that succeeded.
type PartialSaveError struct {
	Committed  []string
	RolledBack []string
	Err        error
}

func (e *PartialSaveError) Error() string {
	return fmt.Sprintf("partial save: committed [%s], rolled back [%s]: %v",
		strings.Join(e.Committed, ", "), strings.Join(e.RolledBack, ", "), e.Err)
}

func (e *PartialSaveError) Unwrap() error { return e.Err }
