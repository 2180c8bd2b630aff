// Package command is the surface a UI drives. Every command validates its
// input against the current snapshot and either fails with a structured
// result or returns the minimal patch the host applies to its store.
// Commands never modify the snapshot they are given.
package command

import (
	"errors"
	"fmt"

	"blox/hierarchy"
	"blox/model"
	"blox/tree"
)

//go:generate go tool go-enum --marshal --names

// Status classifies command outcome:
//
//	ok       command succeeded, Patch may still be empty for queries
//	no-op    requested state is already in place
//	invalid  input failed validation
//	rejected hierarchy rules do not allow the change
//	failed   snapshot is inconsistent or a collaborator failed
//
// ENUM(ok, no-op, invalid, rejected, failed)
type Status int

// Result is the outcome of a command.
type Result struct {
	Status  Status
	Patch   model.Patch
	Message string
	Err     error

	Node     string        // created or duplicated node
	Value    string        // style value for queries
	Removal  *tree.Removal // first phase of delete, pass to FinalizeDelete
	Selected string        // selection after FinalizeDelete
}

// Ok reports whether command succeeded.
func (r Result) Ok() bool {
	return r.Status == StatusOk
}

// Error implements error-like reporting for failures, returns empty string
// on success.
func (r Result) Error() string {
	switch {
	case r.Status == StatusOk || r.Status == StatusNoOp:
		return ""
	case r.Err != nil:
		return fmt.Sprintf("%s: %v", r.Status, r.Err)
	default:
		return fmt.Sprintf("%s: %s", r.Status, r.Message)
	}
}

func done(p model.Patch) Result {
	return Result{Status: StatusOk, Patch: p}
}

func noop() Result {
	return Result{Status: StatusNoOp, Patch: model.Patch{}}
}

func invalid(format string, args ...any) Result {
	return Result{Status: StatusInvalid, Message: fmt.Sprintf(format, args...)}
}

func rejected(err error) Result {
	return Result{Status: StatusRejected, Message: err.Error(), Err: err}
}

func failed(err error) Result {
	return Result{Status: StatusFailed, Message: err.Error(), Err: err}
}

// classify maps engine error to result status. Broken snapshots are
// failures, everything else is a bad request.
func classify(err error) Result {
	switch {
	case errors.Is(err, tree.ErrRejected):
		return rejected(err)
	case errors.Is(err, hierarchy.ErrCycle), errors.Is(err, hierarchy.ErrDangling):
		return failed(err)
	case errors.Is(err, tree.ErrSameNode), errors.Is(err, tree.ErrNotFound),
		errors.Is(err, tree.ErrAttached), errors.Is(err, tree.ErrIntoSelf):
		return Result{Status: StatusInvalid, Message: err.Error(), Err: err}
	default:
		return failed(err)
	}
}
