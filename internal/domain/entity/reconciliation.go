package entity

// Reconciliation is the outcome of applying one run's compliance decisions to
// the member directory.
type Reconciliation struct {
	AllTimeHigh        int
	AllTimeHighMembers []Member

	HighestStreak        int
	HighestStreakMembers []Member

	RecordBreakers []Member
	Missed         []Member

	// Failed lists members whose mutation failed while mutation errors were
	// tolerated. It is always empty in fail-fast mode.
	Failed []Member

	Compliant int
}
