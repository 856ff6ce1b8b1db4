// Package directory talks to the member directory service, a GraphQL API
// that owns members and their streaks.
package directory

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	graphql "github.com/hasura/go-graphql-client"

	"github.com/diegoclair/status-update-bot/internal/domain/contract"
	"github.com/diegoclair/status-update-bot/internal/domain/entity"
)

// ErrMalformedResponse is returned when the directory answers with a shape
// the client does not expect.
var ErrMalformedResponse = errors.New("malformed directory response")

const (
	membersQuery = `{
  members {
    memberId
    name
    slackId
    groupId
    streak {
      currentStreak
      maxStreak
    }
  }
}`

	incrementStreakMutation = `mutation IncrementStreak($memberId: Int!) {
  incrementStreak(input: { memberId: $memberId }) {
    currentStreak
    maxStreak
  }
}`

	resetStreakMutation = `mutation ResetStreak($memberId: Int!) {
  resetStreak(input: { memberId: $memberId }) {
    currentStreak
    maxStreak
  }
}`
)

type memberPayload struct {
	MemberID *int            `json:"memberId"`
	Name     string          `json:"name"`
	SlackID  string          `json:"slackId"`
	GroupID  int             `json:"groupId"`
	Streak   []streakPayload `json:"streak"`
}

type streakPayload struct {
	CurrentStreak *int `json:"currentStreak"`
	MaxStreak     *int `json:"maxStreak"`
}

type client struct {
	gql *graphql.Client
}

// New returns a directory client for the GraphQL endpoint at url.
// A nil httpClient gets a client with a 30 second timeout.
func New(httpClient *http.Client, url string) contract.DirectoryClient {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 30 * time.Second}
	}
	return &client{gql: graphql.NewClient(url, httpClient)}
}

func (c *client) FetchMembers(ctx context.Context) ([]entity.Member, error) {
	var data struct {
		Members *[]memberPayload `json:"members"`
	}
	if err := c.do(ctx, membersQuery, nil, &data); err != nil {
		return nil, fmt.Errorf("failed to fetch members: %w", err)
	}
	if data.Members == nil {
		return nil, fmt.Errorf("failed to fetch members: %w: 'members' field missing", ErrMalformedResponse)
	}

	members := make([]entity.Member, 0, len(*data.Members))
	for _, p := range *data.Members {
		if p.MemberID == nil {
			return nil, fmt.Errorf("failed to fetch members: %w: member %q has no memberId", ErrMalformedResponse, p.Name)
		}
		member := entity.Member{
			ID:       *p.MemberID,
			Name:     p.Name,
			AuthorID: p.SlackID,
			GroupID:  p.GroupID,
		}
		if len(p.Streak) > 0 {
			streak, err := p.Streak[0].toEntity()
			if err != nil {
				return nil, fmt.Errorf("failed to fetch members: member %d: %w", member.ID, err)
			}
			member.Streak = &streak
		}
		members = append(members, member)
	}

	return members, nil
}

func (c *client) IncrementStreak(ctx context.Context, memberID int) (entity.Streak, error) {
	var data struct {
		Streak *streakPayload `json:"incrementStreak"`
	}
	if err := c.do(ctx, incrementStreakMutation, map[string]any{"memberId": memberID}, &data); err != nil {
		return entity.Streak{}, fmt.Errorf("failed to increment streak of member %d: %w", memberID, err)
	}
	if data.Streak == nil {
		return entity.Streak{}, fmt.Errorf("failed to increment streak of member %d: %w: 'incrementStreak' field missing", memberID, ErrMalformedResponse)
	}
	streak, err := data.Streak.toEntity()
	if err != nil {
		return entity.Streak{}, fmt.Errorf("failed to increment streak of member %d: %w", memberID, err)
	}
	return streak, nil
}

func (c *client) ResetStreak(ctx context.Context, memberID int) (entity.Streak, error) {
	var data struct {
		Streak *streakPayload `json:"resetStreak"`
	}
	if err := c.do(ctx, resetStreakMutation, map[string]any{"memberId": memberID}, &data); err != nil {
		return entity.Streak{}, fmt.Errorf("failed to reset streak of member %d: %w", memberID, err)
	}
	if data.Streak == nil {
		return entity.Streak{}, fmt.Errorf("failed to reset streak of member %d: %w: 'resetStreak' field missing", memberID, ErrMalformedResponse)
	}
	streak, err := data.Streak.toEntity()
	if err != nil {
		return entity.Streak{}, fmt.Errorf("failed to reset streak of member %d: %w", memberID, err)
	}
	return streak, nil
}

func (p streakPayload) toEntity() (entity.Streak, error) {
	if p.CurrentStreak == nil || p.MaxStreak == nil {
		return entity.Streak{}, fmt.Errorf("%w: streak without currentStreak or maxStreak", ErrMalformedResponse)
	}
	return entity.Streak{Current: *p.CurrentStreak, Max: *p.MaxStreak}, nil
}

// do runs a raw query and decodes its data field into out. Transport,
// status and GraphQL errors come back from the client as graphql.Errors.
func (c *client) do(ctx context.Context, query string, variables map[string]any, out any) error {
	data, err := c.gql.ExecRaw(ctx, query, variables)
	if err != nil {
		return fmt.Errorf("directory request failed: %w", err)
	}
	if len(data) == 0 || string(data) == "null" {
		return fmt.Errorf("%w: 'data' field missing", ErrMalformedResponse)
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("%w: decoding data: %v", ErrMalformedResponse, err)
	}
	return nil
}
