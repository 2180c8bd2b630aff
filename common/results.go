// Package common holds the result shapes shared by all engines: Validation
// for caller input, Check for hierarchy predicates and Find for lookups.
package common

import (
	"errors"
	"fmt"
)

// Validation is the result of checking caller supplied input (ids, keys, raw
// values) against catalogs. Either Valid is set and Value carries the
// normalized input, or Message explains what is wrong.
type Validation[T any] struct {
	Valid   bool
	Value   T
	Message string
}

// Valid returns successful validation result.
func Valid[T any](v T) Validation[T] {
	return Validation[T]{Valid: true, Value: v}
}

// Invalid returns failed validation result with formatted message.
func Invalid[T any](format string, args ...any) Validation[T] {
	return Validation[T]{Message: fmt.Sprintf(format, args...)}
}

// Err converts failed validation into an error, returns nil otherwise.
func (v Validation[T]) Err() error {
	if v.Valid {
		return nil
	}
	return errors.New(v.Message)
}

// Check is the result of a hierarchy predicate. When Success is true Passed
// tells whether the rule holds. When Success is false the snapshot is
// inconsistent (unresolvable ancestor, cycle) and Err says why - this must be
// propagated and never treated as "rule violated".
type Check struct {
	Success bool
	Passed  bool
	Err     error
}

// Pass and Fail are successful checks with the rule holding or violated.
var (
	Pass = Check{Success: true, Passed: true}
	Fail = Check{Success: true, Passed: false}
)

// Checked converts boolean rule outcome into successful check.
func Checked(passed bool) Check {
	return Check{Success: true, Passed: passed}
}

// CheckError returns unsuccessful check.
func CheckError(err error) Check {
	return Check{Err: err}
}

// Ok reports whether check succeeded and the rule holds.
func (c Check) Ok() bool {
	return c.Success && c.Passed
}

// String is used in debug output.
func (c Check) String() string {
	switch {
	case !c.Success:
		return fmt.Sprintf("error(%v)", c.Err)
	case c.Passed:
		return "passed"
	default:
		return "failed"
	}
}

//go:generate go tool go-enum --names

// FindStatus tells the outcome of a lookup.
// ENUM(found, not-found, error)
type FindStatus int

// Find is the result of index and sibling lookups. NotFound is frequently a
// legitimate no-op signal (node is already where it was asked to go) and is
// distinct from Error.
type Find[T any] struct {
	Status FindStatus
	Data   T
	Err    error
}

// Found returns successful lookup.
func Found[T any](data T) Find[T] {
	return Find[T]{Status: FindStatusFound, Data: data}
}

// NotFound returns lookup which produced nothing.
func NotFound[T any]() Find[T] {
	return Find[T]{Status: FindStatusNotFound}
}

// FindFailed returns lookup which failed.
func FindFailed[T any](err error) Find[T] {
	return Find[T]{Status: FindStatusError, Err: err}
}
