package types

import (
	"github.com/google/uuid"
	"github.com/m-mizutani/goerr/v2"
)

// CaseID identifies a document case under workflow control
type CaseID string

// NewCaseID generates a new random case ID
func NewCaseID() CaseID {
	return CaseID(uuid.New().String())
}

// String returns the string representation of the case ID
func (x CaseID) String() string {
	return string(x)
}

// Validate checks if the case ID is non-empty
func (x CaseID) Validate() error {
	if x == "" {
		return goerr.New("case ID is empty")
	}
	return nil
}

// UserID identifies an organizational actor
type UserID string

// String returns the string representation of the user ID
func (x UserID) String() string {
	return string(x)
}

// Validate checks if the user ID is non-empty
func (x UserID) Validate() error {
	if x == "" {
		return goerr.New("user ID is empty")
	}
	return nil
}

// NodeID identifies a position in the routing graph
type NodeID string

// String returns the string representation of the node ID
func (x NodeID) String() string {
	return string(x)
}

// Validate checks if the node ID is non-empty
func (x NodeID) Validate() error {
	if x == "" {
		return goerr.New("node ID is empty")
	}
	return nil
}

// DelegationID identifies a delegation record
type DelegationID string

// NewDelegationID generates a new random delegation ID
func NewDelegationID() DelegationID {
	return DelegationID(uuid.New().String())
}

// String returns the string representation of the delegation ID
func (x DelegationID) String() string {
	return string(x)
}

// TransitionID identifies a ledger entry
type TransitionID string

// NewTransitionID generates a new random transition ID
func NewTransitionID() TransitionID {
	return TransitionID(uuid.New().String())
}

// String returns the string representation of the transition ID
func (x TransitionID) String() string {
	return string(x)
}

// AttachmentRef is an opaque reference to a stored blob. The engine only
// carries references; blob bytes live behind the AttachmentStore.
type AttachmentRef string

// NewAttachmentRef generates a new random attachment reference
func NewAttachmentRef() AttachmentRef {
	return AttachmentRef(uuid.New().String())
}

// String returns the string representation of the attachment reference
func (x AttachmentRef) String() string {
	return string(x)
}
