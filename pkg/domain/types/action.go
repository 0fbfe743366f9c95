package types

import "fmt"

// Action identifies the kind of routing step recorded in a transition
type Action string

const (
	ActionCreate   Action = "CREATE"
	ActionTransfer Action = "TRANSFER"
	ActionAccept   Action = "ACCEPT"
	ActionReject   Action = "REJECT"
	ActionRetake   Action = "RETAKE"
	ActionReturn   Action = "RETURN"
	ActionComplete Action = "COMPLETE"
)

// AllActions returns all valid actions
func AllActions() []Action {
	return []Action{
		ActionCreate,
		ActionTransfer,
		ActionAccept,
		ActionReject,
		ActionRetake,
		ActionReturn,
		ActionComplete,
	}
}

// IsValid checks if the action is valid
func (a Action) IsValid() bool {
	switch a {
	case ActionCreate,
		ActionTransfer,
		ActionAccept,
		ActionReject,
		ActionRetake,
		ActionReturn,
		ActionComplete:
		return true
	default:
		return false
	}
}

// String returns the string representation of the action
func (a Action) String() string {
	return string(a)
}

// ParseAction parses a string into an Action
func ParseAction(s string) (Action, error) {
	a := Action(s)
	if !a.IsValid() {
		return "", fmt.Errorf("invalid action: %s", s)
	}
	return a, nil
}
