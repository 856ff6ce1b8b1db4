package service

import (
	"context"
	"fmt"
	"strconv"

	"github.com/rs/zerolog"

	"github.com/diegoclair/status-update-bot/internal/config"
	"github.com/diegoclair/status-update-bot/internal/domain/contract"
	"github.com/diegoclair/status-update-bot/internal/domain/entity"
)

type reconciler struct {
	directory contract.DirectoryClient
	excluded  map[string]bool
	tolerate  bool
	log       zerolog.Logger
}

func newReconciler(cfg *config.Config, directory contract.DirectoryClient, log zerolog.Logger) *reconciler {
	excluded := make(map[string]bool, len(cfg.Bot.ExcludedMembers))
	for _, name := range cfg.Bot.ExcludedMembers {
		excluded[name] = true
	}

	return &reconciler{
		directory: directory,
		excluded:  excluded,
		tolerate:  cfg.Bot.TolerateMutationErrors,
		log:       log,
	}
}

// Reconcile pushes one compliance decision per member to the directory and
// accumulates the leaderboard categories. The directory's answer to each
// mutation replaces the local streak.
//
// By default the first failed mutation aborts the whole run; members already
// mutated stay mutated.
func (r *reconciler) Reconcile(ctx context.Context, members []entity.Member, updates []entity.Message) (*entity.Reconciliation, error) {
	authors := make(map[string]bool, len(updates))
	for _, msg := range updates {
		if msg.AuthorID != "" {
			authors[msg.AuthorID] = true
		}
	}

	result := &entity.Reconciliation{}

	for _, member := range members {
		if r.isExcluded(member) {
			continue
		}

		compliant := member.AuthorID != "" && authors[member.AuthorID]

		var (
			streak entity.Streak
			err    error
		)
		if compliant {
			streak, err = r.directory.IncrementStreak(ctx, member.ID)
		} else {
			streak, err = r.directory.ResetStreak(ctx, member.ID)
		}
		if err != nil {
			if !r.tolerate {
				return nil, fmt.Errorf("failed to update streak of member %d (%s): %w", member.ID, member.Name, err)
			}
			r.log.Warn().Err(err).Int("member_id", member.ID).Str("member", member.Name).Msg("streak update failed, skipping member")
			result.Failed = append(result.Failed, member)
			continue
		}

		member.Streak = &streak

		if !compliant {
			result.Missed = append(result.Missed, member)
			continue
		}

		result.Compliant++
		r.track(result, member)
	}

	return result, nil
}

// track updates the running maxima. A strictly higher value replaces the
// holders, an equal value joins them in encounter order.
func (r *reconciler) track(result *entity.Reconciliation, member entity.Member) {
	current, best := member.Streak.Current, member.Streak.Max

	switch {
	case len(result.HighestStreakMembers) == 0 || current > result.HighestStreak:
		result.HighestStreak = current
		result.HighestStreakMembers = []entity.Member{member}
	case current == result.HighestStreak:
		result.HighestStreakMembers = append(result.HighestStreakMembers, member)
	}

	switch {
	case len(result.AllTimeHighMembers) == 0 || best > result.AllTimeHigh:
		result.AllTimeHigh = best
		result.AllTimeHighMembers = []entity.Member{member}
	case best == result.AllTimeHigh:
		result.AllTimeHighMembers = append(result.AllTimeHighMembers, member)
	}

	if current == best {
		result.RecordBreakers = append(result.RecordBreakers, member)
	}
}

func (r *reconciler) isExcluded(member entity.Member) bool {
	return r.excluded[member.Name] || r.excluded[strconv.Itoa(member.ID)]
}
