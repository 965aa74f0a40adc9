package workflow

import "errors"

var (
	// ErrNoActiveDispatch means commit was requested for an incident that
	// has no dispatch record to modify. No request is sent.
	ErrNoActiveDispatch = errors.New("no active dispatch for this incident")

	// ErrCommitInProgress suppresses a second commit while one is in
	// flight. No duplicate request is sent.
	ErrCommitInProgress = errors.New("a dispatch commit is already in flight")

	// ErrDispatchGone means the active dispatch vanished backend-side
	// between opening the workflow and committing.
	ErrDispatchGone = errors.New("active dispatch no longer exists")

	// ErrNotOpen means the workflow has no incident open.
	ErrNotOpen = errors.New("no dispatch workflow open")

	// ErrBusy rejects Open while a commit is running.
	ErrBusy = errors.New("workflow busy committing")
)
