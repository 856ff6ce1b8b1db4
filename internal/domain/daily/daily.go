// Package daily computes fixed wall-clock anchors in a time zone: the next
// run of a daily job and the compliance window of a status update run.
package daily

import (
	"fmt"
	"time"

	"github.com/netresearch/go-cron"

	"github.com/diegoclair/status-update-bot/internal/domain/entity"
)

// WindowLength is the length of the compliance window.
const WindowLength = 12 * time.Hour

// At is a fixed daily hour:minute in a location. It satisfies cron.Schedule.
type At struct {
	Hour     int
	Minute   int
	Location *time.Location
}

var _ cron.Schedule = At{}

// NewAt validates hour and minute and returns the anchor.
func NewAt(hour, minute int, loc *time.Location) (At, error) {
	if hour < 0 || hour > 23 {
		return At{}, fmt.Errorf("invalid hour %d: must be 0-23", hour)
	}
	if minute < 0 || minute > 59 {
		return At{}, fmt.Errorf("invalid minute %d: must be 0-59", minute)
	}
	if loc == nil {
		loc = time.UTC
	}
	return At{Hour: hour, Minute: minute, Location: loc}, nil
}

// Next returns today's occurrence when it is strictly after now, otherwise
// tomorrow's.
func (a At) Next(now time.Time) time.Time {
	loc := a.location()
	local := now.In(loc)

	today := resolve(local.Year(), local.Month(), local.Day(), a.Hour, a.Minute, loc)
	if today.After(now) {
		return today
	}
	return resolve(local.Year(), local.Month(), local.Day()+1, a.Hour, a.Minute, loc)
}

func (a At) location() *time.Location {
	if a.Location == nil {
		return time.UTC
	}
	return a.Location
}

// Until returns how long to wait from now until the schedule's next run.
// Clock skew can make the difference negative; it is clamped to zero.
func Until(s cron.Schedule, now time.Time) time.Duration {
	d := s.Next(now).Sub(now)
	if d < 0 {
		return 0
	}
	return d
}

// ComplianceWindow returns [anchor-12h, anchor) where anchor is the most
// recent cutoffHour:00 in loc that is not after now.
func ComplianceWindow(now time.Time, loc *time.Location, cutoffHour int) entity.Window {
	if loc == nil {
		loc = time.UTC
	}
	local := now.In(loc)
	end := resolve(local.Year(), local.Month(), local.Day(), cutoffHour, 0, loc)
	if now.Before(end) {
		end = resolve(local.Year(), local.Month(), local.Day()-1, cutoffHour, 0, loc)
	}
	return entity.Window{Start: end.Add(-WindowLength), End: end}
}

// resolve builds the instant for a local wall-clock time. When the wall clock
// occurs twice (DST fall-back) the earliest instant wins. When it does not
// occur at all (DST gap) the transition instant that opens the gap wins, so
// 02:30 on a spring-forward night resolves to 03:00 of the new offset.
func resolve(year int, month time.Month, day, hour, minute int, loc *time.Location) time.Time {
	wall := time.Date(year, month, day, hour, minute, 0, 0, time.UTC)
	guess := time.Date(year, month, day, hour, minute, 0, 0, loc)

	var exact, after []time.Time
	seen := make(map[int]bool, 3)
	for _, sample := range []time.Time{guess.Add(-12 * time.Hour), guess, guess.Add(12 * time.Hour)} {
		_, offset := sample.Zone()
		if seen[offset] {
			continue
		}
		seen[offset] = true

		candidate := wall.Add(-time.Duration(offset) * time.Second).In(loc)
		localWall := time.Date(candidate.Year(), candidate.Month(), candidate.Day(),
			candidate.Hour(), candidate.Minute(), 0, 0, time.UTC)
		switch {
		case localWall.Equal(wall):
			exact = append(exact, candidate)
		case localWall.After(wall):
			after = append(after, candidate)
		}
	}

	if t, ok := earliest(exact); ok {
		return t
	}
	if t, ok := earliest(after); ok {
		if start, _ := t.ZoneBounds(); !start.IsZero() && !start.After(t) {
			return start
		}
		return t
	}
	return guess
}

func earliest(ts []time.Time) (time.Time, bool) {
	if len(ts) == 0 {
		return time.Time{}, false
	}
	first := ts[0]
	for _, t := range ts[1:] {
		if t.Before(first) {
			first = t
		}
	}
	return first, true
}
