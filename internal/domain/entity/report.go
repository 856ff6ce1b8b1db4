package entity

import "time"

// Report is the rendered status update report, independent of how the chat
// platform displays it.
type Report struct {
	Title      string
	URL        string
	AuthorName string
	AuthorURL  string
	AuthorIcon string
	Color      string
	Body       string
	ImageURL   string
	Timestamp  time.Time
}
