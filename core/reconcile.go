package core

import (
	"fmt"
	"strings"
)

// Action is the store operation chosen for a single cell write.
type Action int

const (
	ActionNone Action = iota
	ActionCreate
	ActionUpdate
	ActionDelete
)

var actionNames = [...]string{"none", "create", "update", "delete"}

func (a Action) String() string {
	if a < 0 || int(a) >= len(actionNames) {
		return fmt.Sprintf("Action(%d)", int(a))
	}
	return actionNames[a]
}

// Reconcile decides which store call turns the current cell into the desired one.
//
//	exists  clear  changed  -> action
//	false   true   -        -> none
//	false   false  -        -> create
//	true    true   -        -> delete
//	true    false  true     -> update
//	true    false  false    -> none
func Reconcile(exists, clear, changed bool) Action {
	switch {
	case !exists && clear:
		return ActionNone
	case !exists:
		return ActionCreate
	case clear:
		return ActionDelete
	case changed:
		return ActionUpdate
	default:
		return ActionNone
	}
}

// ItemFailure is one failed item of a batch.
type ItemFailure struct {
	ID  int
	Err error
}

// BatchResult summarises a best-effort batch: every item is attempted even when some fail.
type BatchResult struct {
	Created   int
	Updated   int
	Deleted   int
	Unchanged int
	Failures  []ItemFailure
}

func (r *BatchResult) Record(a Action) {
	switch a {
	case ActionCreate:
		r.Created++
	case ActionUpdate:
		r.Updated++
	case ActionDelete:
		r.Deleted++
	default:
		r.Unchanged++
	}
}

func (r *BatchResult) Fail(id int, err error) {
	r.Failures = append(r.Failures, ItemFailure{ID: id, Err: err})
}

func (r BatchResult) Processed() int {
	return r.Created + r.Updated + r.Deleted + r.Unchanged + len(r.Failures)
}

// Succeeded reports whether every item of the batch went through.
func (r BatchResult) Succeeded() bool { return len(r.Failures) == 0 }

// Err returns nil when the batch fully succeeded, an aggregate error otherwise.
func (r BatchResult) Err() error {
	if r.Succeeded() {
		return nil
	}
	msgs := make([]string, 0, len(r.Failures))
	for _, f := range r.Failures {
		msgs = append(msgs, fmt.Sprintf("%d: %v", f.ID, f.Err))
	}
	return fmt.Errorf("%d of %d items failed (%s)", len(r.Failures), r.Processed(), strings.Join(msgs, "; "))
}
