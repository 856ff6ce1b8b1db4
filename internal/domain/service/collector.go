package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"github.com/diegoclair/status-update-bot/internal/config"
	"github.com/diegoclair/status-update-bot/internal/domain/contract"
	"github.com/diegoclair/status-update-bot/internal/domain/entity"
)

// updateFilter is the content rule a message must satisfy to count as a
// status update: every keyword, or the privileged keyword when a privileged
// author wrote it.
type updateFilter struct {
	keywords          []string
	privilegedAuthors map[string]bool
	privilegedKeyword string
}

func newUpdateFilter(p config.Predicate) updateFilter {
	f := updateFilter{
		privilegedAuthors: make(map[string]bool, len(p.PrivilegedAuthors)),
		privilegedKeyword: strings.ToLower(p.PrivilegedKeyword),
	}
	for _, keyword := range p.Keywords {
		f.keywords = append(f.keywords, strings.ToLower(keyword))
	}
	for _, author := range p.PrivilegedAuthors {
		if author != "" {
			f.privilegedAuthors[author] = true
		}
	}
	return f
}

func (f updateFilter) Matches(msg entity.Message) bool {
	content := strings.ToLower(msg.Content)

	if len(f.keywords) > 0 && containsAll(content, f.keywords) {
		return true
	}

	if f.privilegedKeyword == "" {
		return false
	}
	return f.privilegedAuthors[msg.AuthorID] && strings.Contains(content, f.privilegedKeyword)
}

func containsAll(content string, keywords []string) bool {
	for _, keyword := range keywords {
		if !strings.Contains(content, keyword) {
			return false
		}
	}
	return true
}

type collector struct {
	chat       contract.ChatClient
	filter     updateFilter
	pageSize   int
	maxPages   int
	markerText string
	log        zerolog.Logger
}

func newCollector(cfg *config.Config, chat contract.ChatClient, log zerolog.Logger) *collector {
	return &collector{
		chat:       chat,
		filter:     newUpdateFilter(cfg.Bot.Predicate),
		pageSize:   cfg.Bot.PageSize,
		maxPages:   cfg.Bot.MaxPages,
		markerText: cfg.Bot.Report.MarkerText,
		log:        log,
	}
}

// Collect returns the qualifying messages of every channel, in channel order.
// A channel with a watermark is read in full after it; a channel without one
// falls back to its most recent page.
func (c *collector) Collect(ctx context.Context, channels []string, cp entity.Checkpoint, window entity.Window) ([]entity.Message, error) {
	var updates []entity.Message
	seen := make(map[string]bool)

	for i, channelID := range channels {
		watermark := cp.Watermark(i)

		messages, err := c.fetch(ctx, channelID, watermark)
		if err != nil {
			return nil, err
		}

		qualifying := 0
		for _, msg := range messages {
			key := channelID + "/" + msg.ID
			if seen[key] {
				continue
			}
			seen[key] = true

			if watermark != "" && !idAfter(msg.ID, watermark) {
				continue
			}
			if !window.Contains(msg.Timestamp) || !c.filter.Matches(msg) {
				continue
			}
			updates = append(updates, msg)
			qualifying++
		}

		c.log.Debug().
			Str("channel", channelID).
			Str("watermark", watermark).
			Int("fetched", len(messages)).
			Int("qualifying", qualifying).
			Msg("collected channel updates")
	}

	return updates, nil
}

func (c *collector) fetch(ctx context.Context, channelID, watermark string) ([]entity.Message, error) {
	query := entity.HistoryQuery{ChannelID: channelID, After: watermark, Limit: c.pageSize}

	if watermark == "" {
		page, err := c.chat.History(ctx, query)
		if err != nil {
			return nil, fmt.Errorf("failed to get messages from channel %s: %w", channelID, err)
		}
		return page.Messages, nil
	}

	var messages []entity.Message
	for pages := 0; ; pages++ {
		if pages == c.maxPages {
			c.log.Warn().
				Str("channel", channelID).
				Int("max_pages", c.maxPages).
				Msg("history page limit reached, older messages after the watermark are skipped")
			break
		}

		page, err := c.chat.History(ctx, query)
		if err != nil {
			return nil, fmt.Errorf("failed to get messages from channel %s: %w", channelID, err)
		}
		messages = append(messages, page.Messages...)

		if page.NextCursor == "" {
			break
		}
		query.Cursor = page.NextCursor
	}

	return messages, nil
}

// PostMarkers posts one marker message per channel and returns the
// checkpoint made of their ids. It must only run once collection for the
// current run has finished.
func (c *collector) PostMarkers(ctx context.Context, channels []string) (entity.Checkpoint, error) {
	cp := entity.NewCheckpoint(len(channels))

	for i, channelID := range channels {
		id, err := c.chat.PostText(ctx, channelID, c.markerText)
		if err != nil {
			return nil, fmt.Errorf("failed to send limiting message in channel %s: %w", channelID, err)
		}
		cp[i] = id
	}

	return cp, nil
}

// idAfter compares two decimal message ids ("1712345678.000100" or
// "1225098248293716008") numerically and reports whether a > b.
func idAfter(a, b string) bool {
	aInt, aFrac, _ := strings.Cut(a, ".")
	bInt, bFrac, _ := strings.Cut(b, ".")

	aInt = strings.TrimLeft(aInt, "0")
	bInt = strings.TrimLeft(bInt, "0")
	if len(aInt) != len(bInt) {
		return len(aInt) > len(bInt)
	}
	if aInt != bInt {
		return aInt > bInt
	}

	for len(aFrac) < len(bFrac) {
		aFrac += "0"
	}
	for len(bFrac) < len(aFrac) {
		bFrac += "0"
	}
	return aFrac > bFrac
}
