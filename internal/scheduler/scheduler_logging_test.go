package scheduler_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/jonesrussell/north-cloud/news-crawler/internal/scheduler"
	loggermocks "github.com/jonesrussell/north-cloud/news-crawler/internal/testutils/mocks/logger"
)

func TestRunOnce_LogsCompletion(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	mockLog := loggermocks.NewMockInterface(ctrl)
	mockLog.EXPECT().WithComponent("scheduler").Return(mockLog)
	mockLog.EXPECT().Info("Scheduled crawl starting", "window", "2024-03-01..2024-03-01")
	mockLog.EXPECT().Info("Scheduled crawl completed",
		"window", "2024-03-01..2024-03-01",
		"persisted", 3,
		"skipped", 0,
	)

	s, err := scheduler.New(&fakeRunner{}, "0 3 * * *", 1, mockLog,
		fixedClock(time.Date(2024, 3, 2, 3, 0, 0, 0, time.UTC)))
	require.NoError(t, err)

	_, err = s.RunOnce(context.Background())
	require.NoError(t, err)
}

func TestRunOnce_LogsFailure(t *testing.T) {
	t.Parallel()

	runErr := errors.New("root unavailable")

	ctrl := gomock.NewController(t)
	mockLog := loggermocks.NewMockInterface(ctrl)
	mockLog.EXPECT().WithComponent("scheduler").Return(mockLog)
	mockLog.EXPECT().Info("Scheduled crawl starting", gomock.Any(), gomock.Any())
	mockLog.EXPECT().Error("Scheduled crawl failed", "window", gomock.Any(), "error", runErr)

	s, err := scheduler.New(&fakeRunner{err: runErr}, "@daily", 1, mockLog,
		fixedClock(time.Date(2024, 3, 2, 3, 0, 0, 0, time.UTC)))
	require.NoError(t, err)

	_, err = s.RunOnce(context.Background())
	require.ErrorIs(t, err, runErr)
}
