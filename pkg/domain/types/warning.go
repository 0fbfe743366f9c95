package types

// WarningCategory is a derived deadline label used purely for display
// prioritization in list views. It never drives state transitions.
type WarningCategory string

const (
	WarningNone       WarningCategory = "NONE"
	WarningOnTrack    WarningCategory = "ON_TRACK"
	WarningNearDue    WarningCategory = "NEAR_DUE"
	WarningOverdue    WarningCategory = "OVERDUE"
	WarningInProgress WarningCategory = "IN_PROGRESS"
	WarningReturned   WarningCategory = "RETURNED"
)

// AllWarningCategories returns all warning categories
func AllWarningCategories() []WarningCategory {
	return []WarningCategory{
		WarningNone,
		WarningOnTrack,
		WarningNearDue,
		WarningOverdue,
		WarningInProgress,
		WarningReturned,
	}
}

// String returns the string representation of the warning category
func (w WarningCategory) String() string {
	return string(w)
}
