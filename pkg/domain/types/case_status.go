package types

import "fmt"

// CaseStatus represents the lifecycle status of a document case.
// It is derived jointly with the current routing node.
type CaseStatus string

const (
	CaseStatusDraft           CaseStatus = "DRAFT"
	CaseStatusPendingApproval CaseStatus = "PENDING_APPROVAL"
	CaseStatusInProgress      CaseStatus = "IN_PROGRESS"
	CaseStatusReturned        CaseStatus = "RETURNED"
	CaseStatusCompleted       CaseStatus = "COMPLETED"
	CaseStatusRecalled        CaseStatus = "RECALLED"
	CaseStatusRejected        CaseStatus = "REJECTED"
)

// AllCaseStatuses returns all valid case statuses
func AllCaseStatuses() []CaseStatus {
	return []CaseStatus{
		CaseStatusDraft,
		CaseStatusPendingApproval,
		CaseStatusInProgress,
		CaseStatusReturned,
		CaseStatusCompleted,
		CaseStatusRecalled,
		CaseStatusRejected,
	}
}

// IsValid checks if the case status is valid
func (s CaseStatus) IsValid() bool {
	switch s {
	case CaseStatusDraft,
		CaseStatusPendingApproval,
		CaseStatusInProgress,
		CaseStatusReturned,
		CaseStatusCompleted,
		CaseStatusRecalled,
		CaseStatusRejected:
		return true
	default:
		return false
	}
}

// IsTerminal reports whether no further transitions are allowed.
func (s CaseStatus) IsTerminal() bool {
	switch s {
	case CaseStatusCompleted, CaseStatusRecalled, CaseStatusRejected:
		return true
	default:
		return false
	}
}

// String returns the string representation of the case status
func (s CaseStatus) String() string {
	return string(s)
}

// ParseCaseStatus parses a string into a CaseStatus
func ParseCaseStatus(s string) (CaseStatus, error) {
	status := CaseStatus(s)
	if !status.IsValid() {
		return "", fmt.Errorf("invalid case status: %s", s)
	}
	return status, nil
}
