package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/NeuralTrust/TMSHarness/pkg/domain/record"
	"github.com/go-redis/redismock/v8"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func sampleRecord(i int) record.TestRecord {
	return record.New(time.Now(), "pacs.008", 200, float64(i), true, fmt.Sprintf("msg-%d", i))
}

func TestMemoryHistoryRepository(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryHistoryRepository()

	for i := 0; i < 25; i++ {
		require.NoError(t, repo.Append(ctx, sampleRecord(i)))
	}

	count, err := repo.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 25, count)

	last, err := repo.List(ctx, 20)
	require.NoError(t, err)
	require.Len(t, last, 20)
	assert.Equal(t, "msg-5", last[0].MessageID)
	assert.Equal(t, "msg-24", last[19].MessageID)

	all, err := repo.List(ctx, 0)
	require.NoError(t, err)
	assert.Len(t, all, 25)

	require.NoError(t, repo.Clear(ctx))
	count, err = repo.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0, count)
}

func TestMemoryHistoryRepository_ConcurrentAppend(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryHistoryRepository()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_ = repo.Append(ctx, sampleRecord(i))
		}(i)
	}
	wg.Wait()

	count, err := repo.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 50, count)
}

func TestRedisHistoryRepository_Append(t *testing.T) {
	db, redisMock := redismock.NewClientMock()
	repo := NewRedisHistoryRepository(db, "test:history")

	rec := sampleRecord(1)
	data, err := json.Marshal(rec)
	require.NoError(t, err)
	redisMock.ExpectRPush("test:history", string(data)).SetVal(1)

	require.NoError(t, repo.Append(context.Background(), rec))
	assert.NoError(t, redisMock.ExpectationsWereMet())
}

func TestRedisHistoryRepository_List(t *testing.T) {
	db, redisMock := redismock.NewClientMock()
	repo := NewRedisHistoryRepository(db, "")

	first, _ := json.Marshal(sampleRecord(1))  //nolint:errcheck
	second, _ := json.Marshal(sampleRecord(2)) //nolint:errcheck
	redisMock.ExpectLRange(DefaultHistoryKey, -20, -1).SetVal([]string{string(first), "not-json", string(second)})

	records, err := repo.List(context.Background(), 20)
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, "msg-1", records[0].MessageID)
	assert.Equal(t, "msg-2", records[1].MessageID)
	assert.NoError(t, redisMock.ExpectationsWereMet())
}

func TestRedisHistoryRepository_CountAndClear(t *testing.T) {
	db, redisMock := redismock.NewClientMock()
	repo := NewRedisHistoryRepository(db, "h")

	redisMock.ExpectLLen("h").SetVal(7)
	redisMock.ExpectDel("h").SetVal(1)

	count, err := repo.Count(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 7, count)
	require.NoError(t, repo.Clear(context.Background()))
	assert.NoError(t, redisMock.ExpectationsWereMet())
}

func TestRedisHistoryRepository_Error(t *testing.T) {
	db, redisMock := redismock.NewClientMock()
	repo := NewRedisHistoryRepository(db, "h")

	redisMock.ExpectLLen("h").SetErr(errors.New("connection refused"))

	_, err := repo.Count(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "connection refused")
}

type exporterMock struct {
	mock.Mock
}

func (m *exporterMock) Export(ctx context.Context, rec record.TestRecord) error {
	args := m.Called(ctx, rec)
	return args.Error(0)
}

func TestExportingHistoryRepository(t *testing.T) {
	logger := logrus.New()
	logger.SetLevel(logrus.ErrorLevel)
	inner := NewMemoryHistoryRepository()
	exporter := new(exporterMock)
	repo := NewExportingHistoryRepository(inner, exporter, logger)

	ok := sampleRecord(1)
	failing := sampleRecord(2)
	exporter.On("Export", mock.Anything, ok).Return(nil).Once()
	exporter.On("Export", mock.Anything, failing).Return(errors.New("broker down")).Once()

	require.NoError(t, repo.Append(context.Background(), ok))
	require.NoError(t, repo.Append(context.Background(), failing))

	count, err := repo.Count(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, count)
	exporter.AssertExpectations(t)
}
