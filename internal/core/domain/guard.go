package domain

// GuardOutcome is what a guarded route should do for the current session.
type GuardOutcome int

const (
	GuardAllow GuardOutcome = iota
	GuardLoading
	// GuardRedirectToEntry sends an anonymous visitor to the entry page and
	// remembers where they were going.
	GuardRedirectToEntry
	// GuardRedirectAway sends a logged-in user without the required role away
	// without a return location.
	GuardRedirectAway
)

func (o GuardOutcome) String() string {
	switch o {
	case GuardAllow:
		return "allow"
	case GuardLoading:
		return "loading"
	case GuardRedirectToEntry:
		return "redirect_to_entry"
	case GuardRedirectAway:
		return "redirect_away"
	default:
		return "unknown"
	}
}

// GuardDecision is the outcome plus the location to come back to, set only
// for GuardRedirectToEntry.
type GuardDecision struct {
	Outcome GuardOutcome
	From    string
}
