package service

import (
	"io"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/diegoclair/status-update-bot/internal/config"
	"github.com/diegoclair/status-update-bot/mocks"
)

var ist = time.FixedZone("IST", 5*3600+1800)

type allMocks struct {
	mockDataManager *mocks.MockDataManager
	mockRunRepo     *mocks.MockRunRepo
	mockChat        *mocks.MockChatClient
	mockDirectory   *mocks.MockDirectoryClient
	mockStore       *mocks.MockCheckpointStore
}

func newServiceTestMock(t *testing.T) (m allMocks, ctrl *gomock.Controller) {
	t.Helper()

	ctrl = gomock.NewController(t)

	dm := mocks.NewMockDataManager(ctrl)

	runRepo := mocks.NewMockRunRepo(ctrl)
	dm.EXPECT().Run().Return(runRepo).AnyTimes()

	m = allMocks{
		mockDataManager: dm,
		mockRunRepo:     runRepo,
		mockChat:        mocks.NewMockChatClient(ctrl),
		mockDirectory:   mocks.NewMockDirectoryClient(ctrl),
		mockStore:       mocks.NewMockCheckpointStore(ctrl),
	}

	// validate service creation
	instance := NewInstance(testConfig(), dm, m.mockChat, m.mockDirectory, m.mockStore, nopLogger())
	require.NotNil(t, instance.StatusUpdate)
	require.Len(t, instance.Tasks(), 1)

	return
}

func testConfig() *config.Config {
	bot := config.DefaultBot()
	bot.GroupChannels = []string{"C1", "C2"}
	bot.ReportChannel = "C9"
	bot.Predicate.PrivilegedAuthors = []string{"U_ADMIN"}
	bot.MaxPages = 3

	return &config.Config{
		Bot:      bot,
		Location: ist,
		RunHour:  5,
		RunMin:   0,
	}
}

func nopLogger() zerolog.Logger {
	return zerolog.New(io.Discard)
}
