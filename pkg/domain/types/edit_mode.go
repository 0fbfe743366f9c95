package types

// EditMode governs field-level permissions on a delegation record.
// A delegation that has already taken effect must not have its starting
// terms rewritten, only extended or supplied more evidence.
type EditMode string

const (
	// EditModeFull: the delegation has not started yet, everything may change
	EditModeFull EditMode = "FULLY_EDITABLE"
	// EditModeEndDateAndAttachments: the delegation is in force, identity
	// and start date are frozen
	EditModeEndDateAndAttachments EditMode = "END_DATE_AND_ATTACHMENTS_ONLY"
	// EditModeReadOnly: the window has fully elapsed, historical record
	EditModeReadOnly EditMode = "READ_ONLY"
)

// String returns the string representation of the edit mode
func (m EditMode) String() string {
	return string(m)
}
