package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"
	"time"
	_ "time/tzdata"

	"gopkg.in/yaml.v3"
)

const (
	CheckpointDriverFile   = "file"
	CheckpointDriverSqlite = "sqlite"
)

// Config is loaded once at startup and shared read-only by every component.
type Config struct {
	SlackBotToken      string
	SlackSigningSecret string
	RootURL            string
	CheckpointFile     string
	CheckpointDriver   string
	DatabasePath       string
	Port               string
	LogLevel           string
	BotConfigPath      string

	Bot Bot

	// Derived from Bot by Load.
	Location *time.Location
	RunHour  int
	RunMin   int
}

// Bot is the YAML bot file: the monitored channels and the status-update
// rules.
type Bot struct {
	Timezone      string   `yaml:"timezone"`
	RunAt         string   `yaml:"run_at"`
	CutoffHour    int      `yaml:"cutoff_hour"`
	GroupChannels []string `yaml:"group_channels"`
	ReportChannel string   `yaml:"report_channel"`

	// ExcludedMembers matches member names or member ids.
	ExcludedMembers []string `yaml:"excluded_members"`

	Predicate Predicate `yaml:"predicate"`
	Report    Report    `yaml:"report"`

	PageSize               int  `yaml:"page_size"`
	MaxPages               int  `yaml:"max_pages"`
	TolerateMutationErrors bool `yaml:"tolerate_mutation_errors"`
}

// Predicate decides which messages count as a status update.
type Predicate struct {
	// Keywords must all appear in the lowercased message.
	Keywords []string `yaml:"keywords"`

	// PrivilegedAuthors are Slack user or bot ids that only need PrivilegedKeyword.
	PrivilegedAuthors []string `yaml:"privileged_authors"`
	PrivilegedKeyword string   `yaml:"privileged_keyword"`
}

// Report holds the presentation constants of the status update report.
type Report struct {
	AuthorName       string `yaml:"author_name"`
	AuthorURL        string `yaml:"author_url"`
	AuthorIcon       string `yaml:"author_icon"`
	TitleURL         string `yaml:"title_url"`
	Color            string `yaml:"color"`
	CelebrationImage string `yaml:"celebration_image"`
	MarkerText       string `yaml:"marker_text"`
}

// DefaultBot mirrors the settings the bot originally shipped with.
func DefaultBot() Bot {
	return Bot{
		Timezone:   "Asia/Kolkata",
		RunAt:      "05:00",
		CutoffHour: 5,
		Predicate: Predicate{
			Keywords:          []string{"namah shivaya", "regards"},
			PrivilegedKeyword: "regards",
		},
		Report: Report{
			AuthorName:       "amD",
			AuthorURL:        "https://github.com/amfoss/amd",
			TitleURL:         "https://www.youtube.com/watch?v=epnuvyNj0FM",
			Color:            "#eab308",
			CelebrationImage: "https://media1.tenor.com/m/zAHCPvoyjNIAAAAd/yay-kitty.gif",
			MarkerText:       "Collecting messages for status update report. Please do not delete this message.",
		},
		PageSize: 100,
		MaxPages: 50,
	}
}

func Load() (*Config, error) {
	cfg := &Config{
		SlackBotToken:      getEnv("SLACK_BOT_TOKEN", ""),
		SlackSigningSecret: getEnv("SLACK_SIGNING_SECRET", ""),
		RootURL:            getEnv("ROOT_URL", ""),
		CheckpointFile:     getEnv("CHECKPOINT_FILE", getEnv("CONFIG_FILE_NAME", "./checkpoints.txt")),
		CheckpointDriver:   getEnv("CHECKPOINT_DRIVER", CheckpointDriverFile),
		DatabasePath:       getEnv("DATABASE_PATH", "./status.db"),
		Port:               getEnv("PORT", "3000"),
		LogLevel:           getEnv("LOG_LEVEL", "info"),
		BotConfigPath:      getEnv("BOT_CONFIG_PATH", "./bot.yaml"),
		Bot:                DefaultBot(),
	}

	if err := cfg.loadBotFile(); err != nil {
		return nil, err
	}

	// Environment wins over the bot file for deployments without one.
	if channels := getEnv("GROUP_CHANNELS", ""); channels != "" {
		cfg.Bot.GroupChannels = splitList(channels)
	}
	if channel := getEnv("REPORT_CHANNEL", ""); channel != "" {
		cfg.Bot.ReportChannel = channel
	}

	if err := cfg.resolve(); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) loadBotFile() error {
	content, err := os.ReadFile(c.BotConfigPath)
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to read bot config %s: %w", c.BotConfigPath, err)
	}

	if err := yaml.Unmarshal(content, &c.Bot); err != nil {
		return fmt.Errorf("failed to parse bot config %s: %w", c.BotConfigPath, err)
	}
	return nil
}

// resolve fills the derived fields.
func (c *Config) resolve() error {
	loc, err := time.LoadLocation(c.Bot.Timezone)
	if err != nil {
		return fmt.Errorf("invalid timezone %q: %w", c.Bot.Timezone, err)
	}
	c.Location = loc

	hour, minute, err := ParseClock(c.Bot.RunAt)
	if err != nil {
		return err
	}
	c.RunHour, c.RunMin = hour, minute

	for i, keyword := range c.Bot.Predicate.Keywords {
		c.Bot.Predicate.Keywords[i] = strings.ToLower(keyword)
	}
	c.Bot.Predicate.PrivilegedKeyword = strings.ToLower(c.Bot.Predicate.PrivilegedKeyword)

	return nil
}

func (c *Config) Validate() error {
	var errs []error

	if c.Bot.CutoffHour < 0 || c.Bot.CutoffHour > 23 {
		errs = append(errs, fmt.Errorf("cutoff_hour %d must be 0-23", c.Bot.CutoffHour))
	}
	if len(c.Bot.GroupChannels) == 0 {
		errs = append(errs, errors.New("at least one group channel is required"))
	}
	if c.Bot.ReportChannel == "" {
		errs = append(errs, errors.New("report channel is required"))
	}
	if len(c.Bot.Predicate.Keywords) == 0 {
		errs = append(errs, errors.New("predicate needs at least one keyword"))
	}
	if c.Bot.PageSize < 1 || c.Bot.PageSize > 1000 {
		errs = append(errs, fmt.Errorf("page_size %d must be 1-1000", c.Bot.PageSize))
	}
	if c.Bot.MaxPages < 1 {
		errs = append(errs, fmt.Errorf("max_pages %d must be positive", c.Bot.MaxPages))
	}
	switch c.CheckpointDriver {
	case CheckpointDriverFile, CheckpointDriverSqlite:
	default:
		errs = append(errs, fmt.Errorf("unknown checkpoint driver %q", c.CheckpointDriver))
	}

	if len(errs) > 0 {
		return fmt.Errorf("invalid configuration: %w", errors.Join(errs...))
	}
	return nil
}

// ParseClock extracts hour and minute from HH:MM format.
func ParseClock(s string) (int, int, error) {
	t, err := time.Parse("15:04", strings.TrimSpace(s))
	if err != nil {
		return 0, 0, fmt.Errorf("invalid time format %q: must be HH:MM", s)
	}
	return t.Hour(), t.Minute(), nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
