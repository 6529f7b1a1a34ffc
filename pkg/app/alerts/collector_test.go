package alerts

import (
	"context"
	"errors"
	"io"
	"sync"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fetcherStub struct {
	mu    sync.Mutex
	logs  map[string]string
	errs  map[string]error
	calls []string
	since time.Duration
}

func (f *fetcherStub) Logs(_ context.Context, container string, _ int, since time.Duration) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, container)
	f.since = since
	if err := f.errs[container]; err != nil {
		return "", err
	}
	return f.logs[container], nil
}

func TestCollector_Collect(t *testing.T) {
	logger := logrus.New()
	logger.SetOutput(io.Discard)

	fetcher := &fetcherStub{
		logs: map[string]string{
			"tazama-rule-901-1": "rule 901 triggered\nok",
			"tazama-rule-006-1": "structuring alert",
		},
		errs: map[string]error{
			"tazama-rule-902-1": errors.New("No such container"),
		},
	}
	c := NewCollector(logger, fetcher, NewParser(testCatalog()), false)

	got := c.Collect(context.Background(), Query{
		Containers: []string{"tazama-rule-901-1", "tazama-rule-902-1", "tazama-rule-006-1", "tazama-rule-018-1"},
		Tail:       10,
		Since:      5 * time.Second,
	})

	require.Len(t, got, 2)
	assert.Equal(t, "901", got[0].RuleID)
	assert.Equal(t, "006", got[1].RuleID)
	assert.Len(t, fetcher.calls, 4)
	assert.Equal(t, 5*time.Second, fetcher.since)
}
