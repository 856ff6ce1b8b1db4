package entity

import "time"

// Message is a chat message as seen by the update collector.
type Message struct {
	ID        string
	ChannelID string
	AuthorID  string
	Content   string
	Timestamp time.Time
}

// HistoryQuery asks for one page of channel history.
// An empty After means "most recent messages".
type HistoryQuery struct {
	ChannelID string
	After     string
	Cursor    string
	Limit     int
}

// HistoryPage is one page of channel history. NextCursor is empty on the
// last page.
type HistoryPage struct {
	Messages   []Message
	NextCursor string
}
