package service

import (
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/diegoclair/status-update-bot/internal/config"
	"github.com/diegoclair/status-update-bot/internal/domain/entity"
)

func withStreak(m entity.Member, current, best int) entity.Member {
	m.Streak = &entity.Streak{Current: current, Max: best}
	return m
}

func holders(n int) []entity.Member {
	var out []entity.Member
	for i := 1; i <= n; i++ {
		out = append(out, withStreak(member(i, fmt.Sprintf("member%d", i), ""), 4, 4))
	}
	return out
}

func Test_BuildReport(t *testing.T) {
	style := config.DefaultBot().Report
	generatedAt := time.Date(2024, 1, 1, 23, 45, 0, 0, time.UTC)

	t.Run("Should render leaderboard sections and tiered misses", func(t *testing.T) {
		ada := withStreak(member(1, "ada", "U1"), 7, 7)
		result := &entity.Reconciliation{
			AllTimeHigh:          9,
			AllTimeHighMembers:   []entity.Member{withStreak(member(2, "bob", "U2"), 3, 9)},
			HighestStreak:        7,
			HighestStreakMembers: []entity.Member{ada},
			RecordBreakers:       []entity.Member{ada},
			Missed: []entity.Member{
				withStreak(member(3, "cy", "U3"), 0, 5),
				withStreak(member(4, "dee", "U4"), -1, 2),
				withStreak(member(5, "eve", "U5"), -3, 1),
			},
			Compliant: 2,
		}

		report := BuildReport(style, result, generatedAt, ist)

		want := "*Leaderboard Updates*\n" +
			"*All Time High - 9*\n" +
			"• bob\n" +
			"*Current Highest Streak - 7*\n" +
			"• ada\n" +
			"*New Personal Records*\n" +
			"• ada - 7\n" +
			"*Missed Updates*\n" +
			"• cy | :x:\n" +
			"• dee | :x::x:\n" +
			"• eve | :headstone:\n"
		assert.Equal(t, want, report.Body)

		// 23:45 UTC is already the next day in IST
		assert.Equal(t, "Status Update Report - 2024-01-02", report.Title)
		assert.Equal(t, style.TitleURL, report.URL)
		assert.Equal(t, style.AuthorName, report.AuthorName)
		assert.Equal(t, style.Color, report.Color)
		assert.Equal(t, generatedAt, report.Timestamp)
		assert.Empty(t, report.ImageURL)
	})

	t.Run("Should list five holders and summarize six", func(t *testing.T) {
		five := BuildReport(style, &entity.Reconciliation{
			AllTimeHigh:          4,
			AllTimeHighMembers:   holders(5),
			HighestStreak:        4,
			HighestStreakMembers: holders(5),
		}, generatedAt, ist)
		assert.Contains(t, five.Body, "• member5\n")
		assert.NotContains(t, five.Body, "More than five")

		six := BuildReport(style, &entity.Reconciliation{
			AllTimeHigh:          4,
			AllTimeHighMembers:   holders(6),
			HighestStreak:        4,
			HighestStreakMembers: holders(6),
		}, generatedAt, ist)
		assert.Contains(t, six.Body, "More than five members hold the all time high record!\n")
		assert.Contains(t, six.Body, "More than five members have the current highest streak!\n")
		assert.NotContains(t, six.Body, "• member1\n")
	})

	t.Run("Should celebrate when nobody missed", func(t *testing.T) {
		report := BuildReport(style, &entity.Reconciliation{Compliant: 3}, generatedAt, ist)

		assert.True(t, strings.HasSuffix(report.Body, "*Missed Updates*\nEveryone sent their update yesterday!\n"))
		assert.Equal(t, style.CelebrationImage, report.ImageURL)
		assert.NotContains(t, report.Body, "New Personal Records")
	})

	t.Run("Should list members whose streak was not updated", func(t *testing.T) {
		report := BuildReport(style, &entity.Reconciliation{
			Failed: []entity.Member{member(8, "hal", "U8")},
			Missed: []entity.Member{withStreak(member(9, "ivy", "U9"), 2, 4)},
		}, generatedAt, ist)

		assert.Contains(t, report.Body, "*Streak Not Updated*\n• hal\n")
		assert.Contains(t, report.Body, "• ivy\n")
		assert.NotContains(t, report.Body, "ivy |")
	})

	t.Run("Should produce the same report for the same input", func(t *testing.T) {
		result := &entity.Reconciliation{
			AllTimeHigh:        2,
			AllTimeHighMembers: holders(2),
			Missed:             []entity.Member{withStreak(member(3, "cy", "U3"), 0, 2)},
		}

		first := BuildReport(style, result, generatedAt, ist)
		second := BuildReport(style, result, generatedAt, ist)
		require.Equal(t, first, second)
	})

	t.Run("Should default to UTC without a location", func(t *testing.T) {
		report := BuildReport(style, &entity.Reconciliation{}, generatedAt, nil)
		assert.Equal(t, "Status Update Report - 2024-01-01", report.Title)
	})
}

func Test_missTier(t *testing.T) {
	tests := []struct {
		current int
		want    string
	}{
		{current: 3, want: ""},
		{current: 1, want: ""},
		{current: 0, want: ":x:"},
		{current: -1, want: ":x::x:"},
		{current: -2, want: ":headstone:"},
		{current: -40, want: ":headstone:"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, missTier(tt.current), "current=%d", tt.current)
	}
}
