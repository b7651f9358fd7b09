package dispatcher

import (
	"errors"

	"github.com/petasbytes/gudang-bot/commands"
)

// ErrSchemaRefresh marks a failed redeclaration of the command schemas.
var ErrSchemaRefresh = errors.New("schema refresh failed")

// Outcome classifies how an invocation ended.
type Outcome int

const (
	OutcomeOK Outcome = iota
	// OutcomeRejected is a validation failure the user can correct.
	OutcomeRejected
	// OutcomePartial means the data changed but the schema refresh failed.
	OutcomePartial
	// OutcomeFailed is an infrastructure failure; nothing changed.
	OutcomeFailed
	// OutcomeThrottled means the user sent commands too quickly.
	OutcomeThrottled
)

func (o Outcome) String() string {
	switch o {
	case OutcomeOK:
		return "ok"
	case OutcomeRejected:
		return "rejected"
	case OutcomePartial:
		return "partial"
	case OutcomeFailed:
		return "failed"
	case OutcomeThrottled:
		return "throttled"
	}
	return "unknown"
}

// RefreshStatus reports the schema refresh a command required.
type RefreshStatus int

const (
	RefreshNotRequired RefreshStatus = iota
	RefreshSucceeded
	RefreshFailed
)

func (r RefreshStatus) String() string {
	switch r {
	case RefreshNotRequired:
		return "not_required"
	case RefreshSucceeded:
		return "succeeded"
	case RefreshFailed:
		return "failed"
	}
	return "unknown"
}

// Invocation is one command sent by a user.
type Invocation struct {
	ID      string // platform interaction id, for correlation only
	UserID  string // throttling key
	Command commands.Command
}

// Reply is the single text answer to an Invocation plus what happened.
type Reply struct {
	Text    string
	Outcome Outcome
	Refresh RefreshStatus
	// Err is the underlying error for every outcome except OutcomeOK.
	Err error
}
