package entity

// Streak is the consecutive-compliance counter the member directory keeps for
// a member. A negative Current counts consecutive misses.
type Streak struct {
	Current int
	Max     int
}

// Member is the run-local copy of a directory member. It is mutated with the
// values the directory returns and never written back directly.
type Member struct {
	ID       int
	Name     string
	AuthorID string
	GroupID  int
	Streak   *Streak
}

// CurrentStreak returns zero for members the directory has no streak for yet.
func (m *Member) CurrentStreak() int {
	if m.Streak == nil {
		return 0
	}
	return m.Streak.Current
}
