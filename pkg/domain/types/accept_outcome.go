package types

// AcceptOutcome discriminates the two business meanings of Accept.
// The state transition is identical; only the caller's confirmation
// message differs.
type AcceptOutcome string

const (
	// AcceptOutcomeOpinion: the node gave an ordinary processing opinion
	AcceptOutcomeOpinion AcceptOutcome = "OPINION"
	// AcceptOutcomeSigned: the node carries signing authority and the
	// acceptance is a binding signature
	AcceptOutcomeSigned AcceptOutcome = "SIGNED"
)

// String returns the string representation of the accept outcome
func (o AcceptOutcome) String() string {
	return string(o)
}
