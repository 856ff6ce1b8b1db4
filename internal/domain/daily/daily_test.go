package daily

import (
	"testing"
	"time"
	_ "time/tzdata"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var kolkata = time.FixedZone("IST", 5*3600+1800)

func TestNewAt(t *testing.T) {
	tests := []struct {
		name    string
		hour    int
		minute  int
		wantErr bool
	}{
		{name: "Should accept midnight", hour: 0, minute: 0},
		{name: "Should accept last minute of the day", hour: 23, minute: 59},
		{name: "Should reject hour 24", hour: 24, minute: 0, wantErr: true},
		{name: "Should reject negative hour", hour: -1, minute: 0, wantErr: true},
		{name: "Should reject minute 60", hour: 5, minute: 60, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			at, err := NewAt(tt.hour, tt.minute, kolkata)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.hour, at.Hour)
			assert.Equal(t, tt.minute, at.Minute)
		})
	}
}

func TestAt_Next(t *testing.T) {
	at := At{Hour: 5, Minute: 0, Location: kolkata}

	tests := []struct {
		name string
		now  time.Time
		want time.Time
	}{
		{
			name: "Should return today if time hasn't passed",
			now:  time.Date(2024, 1, 1, 4, 59, 0, 0, kolkata),
			want: time.Date(2024, 1, 1, 5, 0, 0, 0, kolkata),
		},
		{
			name: "Should return tomorrow if time has passed",
			now:  time.Date(2024, 1, 1, 10, 0, 0, 0, kolkata),
			want: time.Date(2024, 1, 2, 5, 0, 0, 0, kolkata),
		},
		{
			name: "Should return tomorrow when now is exactly the anchor",
			now:  time.Date(2024, 1, 1, 5, 0, 0, 0, kolkata),
			want: time.Date(2024, 1, 2, 5, 0, 0, 0, kolkata),
		},
		{
			name: "Should roll over month and year boundaries",
			now:  time.Date(2023, 12, 31, 23, 0, 0, 0, kolkata),
			want: time.Date(2024, 1, 1, 5, 0, 0, 0, kolkata),
		},
		{
			name: "Should use the anchor's zone rather than the zone of now",
			now:  time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), // 05:30 IST
			want: time.Date(2024, 1, 2, 5, 0, 0, 0, kolkata),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := at.Next(tt.now)
			assert.True(t, tt.want.Equal(got), "want %v, got %v", tt.want, got)
		})
	}
}

func TestAt_Next_Bounds(t *testing.T) {
	start := time.Date(2024, 2, 28, 0, 0, 0, 0, kolkata)

	for hour := 0; hour < 24; hour += 5 {
		for minute := 0; minute < 60; minute += 17 {
			at := At{Hour: hour, Minute: minute, Location: kolkata}
			for step := time.Duration(0); step < 48*time.Hour; step += 37 * time.Minute {
				now := start.Add(step)
				next := at.Next(now)

				require.False(t, next.Before(now), "next %v before now %v", next, now)
				require.True(t, next.Before(now.Add(24*time.Hour)), "next %v not within 24h of %v", next, now)
				require.GreaterOrEqual(t, Until(at, now), time.Duration(0))
			}
		}
	}
}

func TestAt_Next_DST(t *testing.T) {
	berlin, err := time.LoadLocation("Europe/Berlin")
	require.NoError(t, err)

	t.Run("Should pick the earliest instant for an ambiguous wall clock", func(t *testing.T) {
		at := At{Hour: 2, Minute: 30, Location: berlin}
		now := time.Date(2024, 10, 26, 12, 0, 0, 0, berlin)

		got := at.Next(now)

		assert.True(t, time.Date(2024, 10, 27, 0, 30, 0, 0, time.UTC).Equal(got), "got %v", got.UTC())
	})

	t.Run("Should resolve a missing wall clock to the spring-forward transition", func(t *testing.T) {
		at := At{Hour: 2, Minute: 30, Location: berlin}
		now := time.Date(2024, 3, 30, 12, 0, 0, 0, berlin)

		got := at.Next(now)

		assert.True(t, time.Date(2024, 3, 31, 1, 0, 0, 0, time.UTC).Equal(got), "got %v", got.UTC())
		local := got.In(berlin)
		assert.Equal(t, 3, local.Hour())
		assert.Equal(t, 0, local.Minute())
		name, offset := local.Zone()
		assert.Equal(t, "CEST", name)
		assert.Equal(t, 2*60*60, offset)
	})

	t.Run("Should run the day after a gap at the usual wall clock", func(t *testing.T) {
		at := At{Hour: 2, Minute: 30, Location: berlin}
		now := time.Date(2024, 3, 31, 3, 0, 0, 0, berlin)

		got := at.Next(now)

		assert.True(t, time.Date(2024, 4, 1, 2, 30, 0, 0, berlin).Equal(got), "got %v", got)
	})
}

type skewedSchedule struct{ next time.Time }

func (s skewedSchedule) Next(time.Time) time.Time { return s.next }

func TestUntil(t *testing.T) {
	now := time.Date(2024, 1, 1, 4, 0, 0, 0, kolkata)

	assert.Equal(t, time.Hour, Until(At{Hour: 5, Location: kolkata}, now))
	assert.Equal(t, time.Duration(0), Until(skewedSchedule{next: now.Add(-time.Minute)}, now))
}

func TestComplianceWindow(t *testing.T) {
	tests := []struct {
		name      string
		now       time.Time
		wantStart time.Time
		wantEnd   time.Time
	}{
		{
			name:      "Should anchor on today's cutoff when run at the cutoff",
			now:       time.Date(2024, 1, 2, 5, 0, 0, 0, kolkata),
			wantStart: time.Date(2024, 1, 1, 17, 0, 0, 0, kolkata),
			wantEnd:   time.Date(2024, 1, 2, 5, 0, 0, 0, kolkata),
		},
		{
			name:      "Should anchor on today's cutoff later in the day",
			now:       time.Date(2024, 1, 2, 22, 15, 0, 0, kolkata),
			wantStart: time.Date(2024, 1, 1, 17, 0, 0, 0, kolkata),
			wantEnd:   time.Date(2024, 1, 2, 5, 0, 0, 0, kolkata),
		},
		{
			name:      "Should anchor on yesterday's cutoff before the cutoff",
			now:       time.Date(2024, 1, 2, 4, 59, 59, 0, kolkata),
			wantStart: time.Date(2023, 12, 31, 17, 0, 0, 0, kolkata),
			wantEnd:   time.Date(2024, 1, 1, 5, 0, 0, 0, kolkata),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := ComplianceWindow(tt.now, kolkata, 5)

			assert.True(t, tt.wantStart.Equal(w.Start), "start: want %v, got %v", tt.wantStart, w.Start)
			assert.True(t, tt.wantEnd.Equal(w.End), "end: want %v, got %v", tt.wantEnd, w.End)
		})
	}
}

func TestComplianceWindow_Properties(t *testing.T) {
	start := time.Date(2024, 3, 1, 0, 0, 0, 0, kolkata)

	for step := time.Duration(0); step < 72*time.Hour; step += 23 * time.Minute {
		now := start.Add(step)
		w := ComplianceWindow(now, kolkata, 5)

		require.Equal(t, WindowLength, w.Duration())
		require.False(t, w.End.After(now), "end %v after now %v", w.End, now)
		require.True(t, w.Contains(w.Start))
		require.False(t, w.Contains(w.End))
	}
}
