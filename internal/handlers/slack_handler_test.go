package handlers_test

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/slack-go/slack"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/diegoclair/status-update-bot/internal/domain/entity"
	"github.com/diegoclair/status-update-bot/internal/handlers/test"
)

func decode(t *testing.T, resp *httptest.ResponseRecorder) slack.Msg {
	t.Helper()

	require.Equal(t, http.StatusOK, resp.Code)

	var response slack.Msg
	err := json.Unmarshal(resp.Body.Bytes(), &response)
	require.NoError(t, err)
	return response
}

func TestSlackHandler_HandleSlashCommand(t *testing.T) {
	startedAt := time.Date(2024, 1, 2, 5, 0, 0, 0, test.Location)
	finishedAt := startedAt.Add(42 * time.Second)

	type args struct {
		text string
	}

	tests := []struct {
		name          string
		args          args
		buildMocks    func(m test.ServiceMocks)
		checkResponse func(t *testing.T, resp *httptest.ResponseRecorder)
	}{
		{
			name: "Should answer ping",
			args: args{text: "ping"},
			checkResponse: func(t *testing.T, resp *httptest.ResponseRecorder) {
				response := decode(t, resp)
				assert.Equal(t, slack.ResponseTypeEphemeral, response.ResponseType)
				assert.Equal(t, "The status update bot is up and running.", response.Text)
			},
		},
		{
			name: "Should show help on empty text",
			args: args{text: ""},
			checkResponse: func(t *testing.T, resp *httptest.ResponseRecorder) {
				response := decode(t, resp)
				assert.Contains(t, response.Text, "*Available Commands:*")
				assert.Contains(t, response.Text, "/statusbot last")
			},
		},
		{
			name: "Should describe the last successful run",
			args: args{text: "last"},
			buildMocks: func(m test.ServiceMocks) {
				m.StatusServiceMock.EXPECT().LastRun().Return(&entity.Run{
					ID:         4,
					Task:       "status-update",
					Status:     entity.RunStatusSucceeded,
					StartedAt:  startedAt,
					FinishedAt: &finishedAt,
					Compliant:  12,
					Missed:     3,
					ReportTS:   "1704155400.000300",
				}, nil).Times(1)
			},
			checkResponse: func(t *testing.T, resp *httptest.ResponseRecorder) {
				response := decode(t, resp)
				assert.Contains(t, response.Text, "✅ *Status:* succeeded")
				assert.Contains(t, response.Text, "*Started:* Tue, 02 Jan 2024 05:00 IST")
				assert.Contains(t, response.Text, "*Duration:* 42s")
				assert.Contains(t, response.Text, "*Compliant:* 12 | *Missed:* 3")
				assert.NotContains(t, response.Text, "*Error:*")
			},
		},
		{
			name: "Should include the error of a failed run",
			args: args{text: "last"},
			buildMocks: func(m test.ServiceMocks) {
				m.StatusServiceMock.EXPECT().LastRun().Return(&entity.Run{
					Status:    entity.RunStatusFailed,
					StartedAt: startedAt,
					Error:     "failed to fetch members from directory: connection refused",
				}, nil).Times(1)
			},
			checkResponse: func(t *testing.T, resp *httptest.ResponseRecorder) {
				response := decode(t, resp)
				assert.Contains(t, response.Text, "❌ *Status:* failed")
				assert.Contains(t, response.Text, "*Error:* failed to fetch members from directory: connection refused")
				assert.NotContains(t, response.Text, "*Duration:*")
			},
		},
		{
			name: "Should say when no run was recorded yet",
			args: args{text: "last"},
			buildMocks: func(m test.ServiceMocks) {
				m.StatusServiceMock.EXPECT().LastRun().Return(nil, nil).Times(1)
			},
			checkResponse: func(t *testing.T, resp *httptest.ResponseRecorder) {
				response := decode(t, resp)
				assert.Equal(t, "No status update run has been recorded yet.", response.Text)
			},
		},
		{
			name: "Should return error when run history is unavailable",
			args: args{text: "last"},
			buildMocks: func(m test.ServiceMocks) {
				m.StatusServiceMock.EXPECT().LastRun().Return(nil, errors.New("database is locked")).Times(1)
			},
			checkResponse: func(t *testing.T, resp *httptest.ResponseRecorder) {
				response := decode(t, resp)
				assert.Equal(t, slack.ResponseTypeEphemeral, response.ResponseType)
				assert.Equal(t, "❌ Failed to read run history", response.Text)
			},
		},
		{
			name: "Should show the next scheduled run",
			args: args{text: "next"},
			buildMocks: func(m test.ServiceMocks) {
				m.StatusServiceMock.EXPECT().NextRun(gomock.Any()).DoAndReturn(func(now time.Time) time.Time {
					return now.Add(3*time.Hour + 20*time.Minute)
				}).Times(1)
			},
			checkResponse: func(t *testing.T, resp *httptest.ResponseRecorder) {
				response := decode(t, resp)
				assert.Contains(t, response.Text, "Next status update report: ")
				assert.Contains(t, response.Text, "IST (in 3h20m0s)")
			},
		},
		{
			name: "Should reject unknown commands",
			args: args{text: "add <@U123456789>"},
			checkResponse: func(t *testing.T, resp *httptest.ResponseRecorder) {
				response := decode(t, resp)
				assert.Equal(t, slack.ResponseTypeEphemeral, response.ResponseType)
				assert.Equal(t, "❌ unknown command: add", response.Text)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, handler, ctrl := test.GetHandlerTest(t)
			defer ctrl.Finish()

			if tt.buildMocks != nil {
				tt.buildMocks(m)
			}

			recorder := test.CreateTestRecorder()
			req := test.CreateSlackRequest(t, "/statusbot", tt.args.text, "C123456789", "U987654321", test.SigningSecret)

			handler.HandleSlashCommand(recorder, req)

			if tt.checkResponse != nil {
				tt.checkResponse(t, recorder)
			}
		})
	}
}

func TestSlackHandler_HandleSlashCommand_Signature(t *testing.T) {
	t.Run("Should reject a request signed with another secret", func(t *testing.T) {
		_, handler, ctrl := test.GetHandlerTest(t)
		defer ctrl.Finish()

		recorder := test.CreateTestRecorder()
		req := test.CreateSlackRequest(t, "/statusbot", "ping", "C123456789", "U987654321", "wrong-secret")

		handler.HandleSlashCommand(recorder, req)

		assert.Equal(t, http.StatusUnauthorized, recorder.Code)
	})

	t.Run("Should reject a request without signature headers", func(t *testing.T) {
		_, handler, ctrl := test.GetHandlerTest(t)
		defer ctrl.Finish()

		recorder := test.CreateTestRecorder()
		req := test.CreateSlackRequest(t, "/statusbot", "ping", "C123456789", "U987654321", test.SigningSecret)
		req.Header.Del("X-Slack-Signature")

		handler.HandleSlashCommand(recorder, req)

		assert.Equal(t, http.StatusUnauthorized, recorder.Code)
	})
}

func TestSlackHandler_HandleHealth(t *testing.T) {
	_, handler, ctrl := test.GetHandlerTest(t)
	defer ctrl.Finish()

	recorder := test.CreateTestRecorder()
	handler.HandleHealth(recorder, httptest.NewRequest(http.MethodGet, "/health", nil))

	assert.Equal(t, http.StatusOK, recorder.Code)
	assert.Equal(t, "OK", recorder.Body.String())
}
