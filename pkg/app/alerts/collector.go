package alerts

import (
	"context"
	"time"

	"github.com/NeuralTrust/TMSHarness/pkg/domain/alert"
	"github.com/NeuralTrust/TMSHarness/pkg/infra/prometheus"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
)

type LogFetcher interface {
	Logs(ctx context.Context, container string, tail int, since time.Duration) (string, error)
}

// Collector reads recent log lines from rule processor containers and
// extracts fraud alerts from them.
type Collector struct {
	logger  *logrus.Logger
	fetcher LogFetcher
	parser  *Parser
	metrics bool
}

func NewCollector(logger *logrus.Logger, fetcher LogFetcher, parser *Parser, metrics bool) *Collector {
	return &Collector{
		logger:  logger,
		fetcher: fetcher,
		parser:  parser,
		metrics: metrics,
	}
}

type Query struct {
	Containers []string
	Tail       int
	Since      time.Duration
	Request    *alert.RequestContext
}

// Collect fetches every container concurrently. A container that cannot be
// read contributes no alerts. Results keep the container order.
func (c *Collector) Collect(ctx context.Context, q Query) []alert.FraudAlert {
	perContainer := make([][]alert.FraudAlert, len(q.Containers))

	g, gctx := errgroup.WithContext(ctx)
	for i, container := range q.Containers {
		i, container := i, container
		g.Go(func() error {
			logs, err := c.fetcher.Logs(gctx, container, q.Tail, q.Since)
			if err != nil {
				c.logger.WithError(err).WithField("container", container).Debug("skipping container logs")
				return nil
			}
			found := c.parser.Parse(container, logs, q.Request)
			if c.metrics && len(found) > 0 {
				prometheus.FraudAlertsTotal.WithLabelValues(container).Add(float64(len(found)))
			}
			perContainer[i] = found
			return nil
		})
	}
	_ = g.Wait()

	out := make([]alert.FraudAlert, 0)
	for _, found := range perContainer {
		out = append(out, found...)
	}
	return out
}
