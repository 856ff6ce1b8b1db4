package service

import (
	"fmt"
	"strings"
	"time"

	"github.com/diegoclair/status-update-bot/internal/config"
	"github.com/diegoclair/status-update-bot/internal/domain"
	"github.com/diegoclair/status-update-bot/internal/domain/entity"
)

// maxListedMembers is the largest category the report enumerates by name.
const maxListedMembers = 5

const (
	tierFirstMiss  = ":x:"
	tierSecondMiss = ":x::x:"
	tierGone       = ":headstone:"
)

// BuildReport renders the reconciliation output. It is a pure function of its
// arguments.
func BuildReport(style config.Report, result *entity.Reconciliation, generatedAt time.Time, loc *time.Location) *entity.Report {
	if loc == nil {
		loc = time.UTC
	}

	var b strings.Builder
	b.WriteString("*Leaderboard Updates*\n")

	fmt.Fprintf(&b, "*All Time High - %d*\n", result.AllTimeHigh)
	if len(result.AllTimeHighMembers) > maxListedMembers {
		b.WriteString("More than five members hold the all time high record!\n")
	} else {
		writeNames(&b, result.AllTimeHighMembers)
	}

	fmt.Fprintf(&b, "*Current Highest Streak - %d*\n", result.HighestStreak)
	if len(result.HighestStreakMembers) > maxListedMembers {
		b.WriteString("More than five members have the current highest streak!\n")
	} else {
		writeNames(&b, result.HighestStreakMembers)
	}

	if len(result.RecordBreakers) > 0 {
		b.WriteString("*New Personal Records*\n")
		for _, member := range result.RecordBreakers {
			fmt.Fprintf(&b, "• %s - %d\n", member.Name, member.CurrentStreak())
		}
	}

	if len(result.Failed) > 0 {
		b.WriteString("*Streak Not Updated*\n")
		writeNames(&b, result.Failed)
	}

	report := &entity.Report{
		Title:      fmt.Sprintf("Status Update Report - %s", generatedAt.In(loc).Format(domain.DateLayout)),
		URL:        style.TitleURL,
		AuthorName: style.AuthorName,
		AuthorURL:  style.AuthorURL,
		AuthorIcon: style.AuthorIcon,
		Color:      style.Color,
		Timestamp:  generatedAt,
	}

	b.WriteString("*Missed Updates*\n")
	if len(result.Missed) == 0 {
		b.WriteString("Everyone sent their update yesterday!\n")
		report.ImageURL = style.CelebrationImage
	} else {
		for _, member := range result.Missed {
			if tier := missTier(member.CurrentStreak()); tier != "" {
				fmt.Fprintf(&b, "• %s | %s\n", member.Name, tier)
			} else {
				fmt.Fprintf(&b, "• %s\n", member.Name)
			}
		}
	}

	report.Body = b.String()
	return report
}

// missTier maps the streak the directory returned after a reset to its
// marker. Every value at or below -2 shares the last tier.
func missTier(current int) string {
	switch {
	case current == 0:
		return tierFirstMiss
	case current == -1:
		return tierSecondMiss
	case current <= -2:
		return tierGone
	default:
		return ""
	}
}

func writeNames(b *strings.Builder, members []entity.Member) {
	for _, member := range members {
		fmt.Fprintf(b, "• %s\n", member.Name)
	}
}
