// Package slack adapts the slack-go client to the chat operations the
// status-update job needs.
package slack

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/slack-go/slack"
	"golang.org/x/time/rate"

	"github.com/diegoclair/status-update-bot/internal/domain/contract"
	"github.com/diegoclair/status-update-bot/internal/domain/entity"
)

// Slack allows roughly 50 conversations.history calls per minute (tier 3).
const (
	defaultRate  = rate.Limit(50.0 / 60.0)
	defaultBurst = 5
)

// api is the subset of *slack.Client used here.
type api interface {
	GetConversationHistoryContext(ctx context.Context, params *slack.GetConversationHistoryParameters) (*slack.GetConversationHistoryResponse, error)
	PostMessageContext(ctx context.Context, channelID string, options ...slack.MsgOption) (string, string, error)
}

type client struct {
	api     api
	limiter *rate.Limiter
}

// New wraps a Slack API client. A nil limiter gets Slack's tier-3 budget.
func New(api *slack.Client, limiter *rate.Limiter) contract.ChatClient {
	return newClient(api, limiter)
}

func newClient(api api, limiter *rate.Limiter) *client {
	if limiter == nil {
		limiter = rate.NewLimiter(defaultRate, defaultBurst)
	}
	return &client{api: api, limiter: limiter}
}

func (c *client) History(ctx context.Context, query entity.HistoryQuery) (*entity.HistoryPage, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	resp, err := c.api.GetConversationHistoryContext(ctx, &slack.GetConversationHistoryParameters{
		ChannelID: query.ChannelID,
		Oldest:    query.After,
		Inclusive: false,
		Cursor:    query.Cursor,
		Limit:     query.Limit,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to get history of channel %s: %w", query.ChannelID, err)
	}

	page := &entity.HistoryPage{Messages: make([]entity.Message, 0, len(resp.Messages))}
	for _, m := range resp.Messages {
		ts, err := ParseTimestamp(m.Timestamp)
		if err != nil {
			return nil, fmt.Errorf("failed to parse message in channel %s: %w", query.ChannelID, err)
		}
		author := m.User
		if author == "" {
			author = m.BotID
		}
		page.Messages = append(page.Messages, entity.Message{
			ID:        m.Timestamp,
			ChannelID: query.ChannelID,
			AuthorID:  author,
			Content:   m.Text,
			Timestamp: ts,
		})
	}
	if resp.HasMore {
		page.NextCursor = resp.ResponseMetaData.NextCursor
	}

	return page, nil
}

func (c *client) PostText(ctx context.Context, channelID, text string) (string, error) {
	return c.post(ctx, channelID,
		slack.MsgOptionText(text, false),
		slack.MsgOptionAsUser(false),
	)
}

func (c *client) PostReport(ctx context.Context, channelID string, report *entity.Report) (string, error) {
	return c.post(ctx, channelID,
		slack.MsgOptionText(report.Title, false),
		slack.MsgOptionAttachments(Attachment(report)),
		slack.MsgOptionAsUser(false),
	)
}

func (c *client) post(ctx context.Context, channelID string, options ...slack.MsgOption) (string, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return "", err
	}

	_, ts, err := c.api.PostMessageContext(ctx, channelID, options...)
	if err != nil {
		return "", fmt.Errorf("failed to send Slack message to %s: %w", channelID, err)
	}
	return ts, nil
}

// Attachment renders a report the way Slack shows rich cards: colour bar,
// author line, linked title, mrkdwn body and an optional image.
func Attachment(report *entity.Report) slack.Attachment {
	return slack.Attachment{
		Color:      report.Color,
		Fallback:   report.Title,
		AuthorName: report.AuthorName,
		AuthorLink: report.AuthorURL,
		AuthorIcon: report.AuthorIcon,
		Title:      report.Title,
		TitleLink:  report.URL,
		Text:       report.Body,
		ImageURL:   report.ImageURL,
		MarkdownIn: []string{"text"},
		Ts:         json.Number(strconv.FormatInt(report.Timestamp.Unix(), 10)),
	}
}

// ParseTimestamp converts a Slack message ts ("1712345678.123456") to a time.
func ParseTimestamp(ts string) (time.Time, error) {
	secPart, fracPart, _ := strings.Cut(ts, ".")
	sec, err := strconv.ParseInt(secPart, 10, 64)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid message timestamp %q: %w", ts, err)
	}

	var nsec int64
	if fracPart != "" {
		if len(fracPart) > 9 {
			fracPart = fracPart[:9]
		}
		frac, err := strconv.ParseInt(fracPart, 10, 64)
		if err != nil {
			return time.Time{}, fmt.Errorf("invalid message timestamp %q: %w", ts, err)
		}
		for i := len(fracPart); i < 9; i++ {
			frac *= 10
		}
		nsec = frac
	}

	return time.Unix(sec, nsec), nil
}
