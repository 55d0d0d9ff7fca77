package domain

// Action is the operation requested for one invocation. Exactly one action
// is active per invocation; mixing actions is a usage error caught by the
// command interpreter.
type Action int

const (
	// ActionNone means no action has been resolved yet.
	ActionNone Action = iota
	// ActionAdd installs a service into one or more runlevels.
	ActionAdd
	// ActionDelete removes a service from one or more runlevels.
	ActionDelete
	// ActionShow renders the service/runlevel membership table.
	ActionShow
)

func (a Action) String() string {
	switch a {
	case ActionAdd:
		return "add"
	case ActionDelete:
		return "delete"
	case ActionShow:
		return "show"
	default:
		return "none"
	}
}
