package handlers

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/slack-go/slack"

	"github.com/diegoclair/status-update-bot/internal/domain"
	"github.com/diegoclair/status-update-bot/internal/domain/contract"
	slackcmd "github.com/diegoclair/status-update-bot/internal/domain/slack"
)

type SlackHandler struct {
	statusService contract.StatusService
	location      *time.Location
	signingSecret string
	now           func() time.Time
	log           zerolog.Logger
}

func New(statusService contract.StatusService, location *time.Location, signingSecret string, log zerolog.Logger) *SlackHandler {
	if location == nil {
		location = time.UTC
	}
	return &SlackHandler{
		statusService: statusService,
		location:      location,
		signingSecret: signingSecret,
		now:           time.Now,
		log:           log,
	}
}

func (h *SlackHandler) HandleSlashCommand(w http.ResponseWriter, r *http.Request) {
	// Verify request from Slack
	body, err := io.ReadAll(r.Body)
	if err != nil {
		w.WriteHeader(http.StatusBadRequest)
		return
	}
	r.Body = io.NopCloser(bytes.NewBuffer(body))

	// Verify Slack signature
	verifier, err := slack.NewSecretsVerifier(r.Header, h.signingSecret)
	if err != nil {
		h.log.Warn().Err(err).Msg("slash command without valid signature headers")
		w.WriteHeader(http.StatusUnauthorized)
		return
	}

	if _, err := verifier.Write(body); err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	if err := verifier.Ensure(); err != nil {
		h.log.Warn().Err(err).Msg("slash command signature mismatch")
		w.WriteHeader(http.StatusUnauthorized)
		return
	}

	s, err := slack.SlashCommandParse(r)
	if err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	cmd, err := slackcmd.ParseCommand(s.Text)
	if err != nil {
		h.respondWithError(w, err.Error())
		return
	}

	h.log.Debug().
		Str("command", string(cmd.Type)).
		Str("user", s.UserID).
		Str("channel", s.ChannelID).
		Msg("handling slash command")

	h.respond(w, h.handleCommand(cmd))
}

// HandleHealth answers liveness probes.
func (h *SlackHandler) HandleHealth(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	fmt.Fprint(w, "OK")
}

func (h *SlackHandler) handleCommand(cmd *slackcmd.Command) *slack.Msg {
	switch cmd.Type {
	case slackcmd.CmdPing:
		return h.handlePing()
	case slackcmd.CmdLast:
		return h.handleLast()
	case slackcmd.CmdNext:
		return h.handleNext()
	case slackcmd.CmdHelp:
		return h.handleHelp()
	default:
		return h.createErrorResponse("Unknown command")
	}
}

func (h *SlackHandler) handlePing() *slack.Msg {
	return &slack.Msg{
		ResponseType: slack.ResponseTypeEphemeral,
		Text:         "The status update bot is up and running.",
	}
}

func (h *SlackHandler) handleLast() *slack.Msg {
	run, err := h.statusService.LastRun()
	if err != nil {
		h.log.Error().Err(err).Msg("failed to read run history")
		return h.createErrorResponse("Failed to read run history")
	}

	if run == nil {
		return &slack.Msg{
			ResponseType: slack.ResponseTypeEphemeral,
			Text:         "No status update run has been recorded yet.",
		}
	}

	var text strings.Builder
	text.WriteString("*Last status update run*\n")
	fmt.Fprintf(&text, "%s *Status:* %s\n", domain.RunStatusEmoji[string(run.Status)], run.Status)
	fmt.Fprintf(&text, "*Started:* %s\n", run.StartedAt.In(h.location).Format(domain.DateTimeLayout))
	if run.FinishedAt != nil {
		fmt.Fprintf(&text, "*Duration:* %s\n", run.FinishedAt.Sub(run.StartedAt).Round(time.Second))
	}
	fmt.Fprintf(&text, "*Compliant:* %d | *Missed:* %d", run.Compliant, run.Missed)
	if run.Error != "" {
		fmt.Fprintf(&text, "\n*Error:* %s", run.Error)
	}

	return &slack.Msg{
		ResponseType: slack.ResponseTypeEphemeral,
		Text:         text.String(),
	}
}

func (h *SlackHandler) handleNext() *slack.Msg {
	now := h.now()
	next := h.statusService.NextRun(now)

	return &slack.Msg{
		ResponseType: slack.ResponseTypeEphemeral,
		Text: fmt.Sprintf("Next status update report: %s (in %s)",
			next.In(h.location).Format(domain.DateTimeLayout),
			next.Sub(now).Round(time.Minute)),
	}
}

func (h *SlackHandler) handleHelp() *slack.Msg {
	return &slack.Msg{
		ResponseType: slack.ResponseTypeEphemeral,
		Text:         slackcmd.GetHelpText(),
	}
}

func (h *SlackHandler) createErrorResponse(message string) *slack.Msg {
	return &slack.Msg{
		ResponseType: slack.ResponseTypeEphemeral,
		Text:         fmt.Sprintf("❌ %s", message),
	}
}

func (h *SlackHandler) respondWithError(w http.ResponseWriter, message string) {
	h.respond(w, h.createErrorResponse(message))
}

func (h *SlackHandler) respond(w http.ResponseWriter, msg *slack.Msg) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(msg); err != nil {
		h.log.Error().Err(err).Msg("failed to encode slash command response")
	}
}
