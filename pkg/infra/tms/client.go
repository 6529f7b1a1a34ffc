package tms

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/NeuralTrust/TMSHarness/pkg/common"
	"github.com/NeuralTrust/TMSHarness/pkg/config"
	"github.com/NeuralTrust/TMSHarness/pkg/infra/httpx"
	"github.com/NeuralTrust/TMSHarness/pkg/infra/prometheus"
	"github.com/NeuralTrust/TMSHarness/pkg/iso20022"
	"github.com/sirupsen/logrus"
	"github.com/sony/gobreaker"
)

const (
	HealthPath  = "/"
	Pain001Path = "/v1/evaluate/iso20022/pain.001.001.11"
	Pain013Path = "/v1/evaluate/iso20022/pain.013.001.09"
	Pacs008Path = "/v1/evaluate/iso20022/pacs.008.001.10"
	Pacs002Path = "/v1/evaluate/iso20022/pacs.002.001.12"
)

// Result is the outcome of one evaluation call. Body holds the decoded JSON
// on 200, the raw text on any other status, and the error text when the TMS
// could not be reached (StatusCode 0).
type Result struct {
	StatusCode int         `json:"status_code"`
	ElapsedMs  float64     `json:"response_time_ms"`
	Body       interface{} `json:"body"`
}

func (r Result) OK() bool {
	return r.StatusCode == http.StatusOK
}

func (r Result) NotFound() bool {
	return r.StatusCode == http.StatusNotFound
}

func (r Result) ConnectionFailed() bool {
	return r.StatusCode == common.StatusConnectionFailed
}

// ContainerChecker is consulted when the TMS HTTP endpoint is unreachable.
type ContainerChecker interface {
	IsRunning(ctx context.Context, filter string) (bool, string)
}

//go:generate mockery --name=Client --dir=. --output=./mocks --filename=tms_client_mock.go --case=underscore --with-expecter
type Client interface {
	SendPacs008(ctx context.Context, payload *iso20022.Pacs008) Result
	SendPacs002(ctx context.Context, payload *iso20022.Pacs002) Result
	SendPain001(ctx context.Context, payload *iso20022.Pain001) Result
	SendPain013(ctx context.Context, payload *iso20022.Pain013) Result
	CheckHealth(ctx context.Context) HealthReport
	BaseURL() string
}

type client struct {
	logger    *logrus.Logger
	http      httpx.Client
	breaker   httpx.CircuitBreaker
	checker   ContainerChecker
	baseURL   string
	tenantID  string
	timeout   time.Duration
	healthTTL time.Duration
	container string
	metrics   bool
}

type Option func(*client)

func WithCircuitBreaker(cb httpx.CircuitBreaker) Option {
	return func(c *client) {
		c.breaker = cb
	}
}

func WithContainerChecker(checker ContainerChecker) Option {
	return func(c *client) {
		c.checker = checker
	}
}

func WithMetrics(enabled bool) Option {
	return func(c *client) {
		c.metrics = enabled
	}
}

func NewClient(logger *logrus.Logger, httpClient httpx.Client, cfg config.TMSConfig, opts ...Option) Client {
	c := &client{
		logger:    logger,
		http:      httpClient,
		baseURL:   cfg.BaseURL,
		tenantID:  cfg.TenantID,
		timeout:   cfg.Timeout,
		healthTTL: cfg.HealthTimeout,
		container: cfg.Container,
	}
	if cfg.CircuitBreaker.Enabled {
		c.breaker = httpx.NewCircuitBreaker(
			"tms",
			cfg.CircuitBreaker.Timeout,
			cfg.CircuitBreaker.MaxFailures,
			httpx.OnStateChange(c.breakerStateChanged),
		)
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *client) breakerStateChanged(name string, from, to gobreaker.State) {
	c.logger.WithFields(logrus.Fields{
		"breaker": name,
		"from":    from.String(),
		"to":      to.String(),
	}).Warn("tms circuit breaker changed state")
	if c.metrics {
		prometheus.TMSCircuitBreakerState.Set(float64(to))
	}
}

func (c *client) BaseURL() string {
	return c.baseURL
}

func (c *client) SendPacs008(ctx context.Context, payload *iso20022.Pacs008) Result {
	return c.post(ctx, iso20022.MessageTypePacs008, Pacs008Path, payload)
}

func (c *client) SendPacs002(ctx context.Context, payload *iso20022.Pacs002) Result {
	return c.post(ctx, iso20022.MessageTypePacs002, Pacs002Path, payload)
}

func (c *client) SendPain001(ctx context.Context, payload *iso20022.Pain001) Result {
	return c.post(ctx, iso20022.MessageTypePain001, Pain001Path, payload)
}

func (c *client) SendPain013(ctx context.Context, payload *iso20022.Pain013) Result {
	return c.post(ctx, iso20022.MessageTypePain013, Pain013Path, payload)
}

func (c *client) post(ctx context.Context, messageType, path string, payload interface{}) Result {
	start := time.Now()
	result := c.doPost(ctx, path, payload)
	result.ElapsedMs = float64(time.Since(start).Microseconds()) / 1000

	fields := logrus.Fields{
		"message_type":     messageType,
		"status":           result.StatusCode,
		"response_time_ms": result.ElapsedMs,
	}
	if result.ConnectionFailed() {
		c.logger.WithFields(fields).WithField("error", result.Body).Warn("tms request failed")
	} else {
		c.logger.WithFields(fields).Debug("tms request completed")
	}

	if c.metrics {
		prometheus.TMSRequestTotal.WithLabelValues(messageType, strconv.Itoa(result.StatusCode)).Inc()
		prometheus.TMSRequestLatency.WithLabelValues(messageType).Observe(result.ElapsedMs)
	}
	return result
}

func (c *client) doPost(ctx context.Context, path string, payload interface{}) Result {
	body, err := json.Marshal(payload)
	if err != nil {
		return Result{StatusCode: common.StatusConnectionFailed, Body: fmt.Sprintf("failed to encode payload: %v", err)}
	}

	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	var result Result
	call := func() error {
		req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(body))
		if err != nil {
			return err
		}
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set(common.TenantHeader, c.tenantID)

		resp, err := c.http.Do(req)
		if err != nil {
			return err
		}
		defer resp.Body.Close()

		result, err = readResult(resp)
		if err != nil {
			return err
		}
		if resp.StatusCode >= http.StatusInternalServerError {
			return fmt.Errorf("tms returned %d", resp.StatusCode)
		}
		return nil
	}

	if c.breaker != nil {
		err = c.breaker.Execute(call)
	} else {
		err = call()
	}
	// a 5xx counts against the breaker but is still an HTTP answer
	if err != nil && result.StatusCode == 0 {
		return Result{StatusCode: common.StatusConnectionFailed, Body: err.Error()}
	}
	return result
}

func readResult(resp *http.Response) (Result, error) {
	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return Result{}, fmt.Errorf("failed to read tms response: %w", err)
	}
	result := Result{StatusCode: resp.StatusCode, Body: string(raw)}
	if resp.StatusCode == http.StatusOK {
		var decoded interface{}
		if err := json.Unmarshal(raw, &decoded); err != nil {
			// 200 with a non-JSON body is surfaced as text
			return result, nil
		}
		result.Body = decoded
	}
	return result, nil
}

// HealthReport mirrors the /api/health response shape.
type HealthReport struct {
	Status          string      `json:"status"`
	TMSStatus       interface{} `json:"tms_status,omitempty"`
	ResponseTimeMs  float64     `json:"response_time_ms,omitempty"`
	HTTPCode        int         `json:"http_code,omitempty"`
	Message         string      `json:"message,omitempty"`
	ContainerStatus string      `json:"container_status,omitempty"`
	TMSURL          string      `json:"tms_url,omitempty"`
	Note            string      `json:"note,omitempty"`
}

func (h HealthReport) Healthy() bool {
	return h.Status == "success"
}

const unreachableMessage = "Cannot connect to TMS service. Is it running?"

func (c *client) CheckHealth(ctx context.Context) HealthReport {
	timeout := c.healthTTL
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	start := time.Now()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+HealthPath, nil)
	if err != nil {
		return HealthReport{Status: "error", Message: err.Error()}
	}

	resp, err := c.http.Do(req)
	if err != nil {
		c.logger.WithError(err).Warn("tms health endpoint unreachable")
		return c.containerFallback(ctx)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return HealthReport{Status: "error", Message: err.Error()}
	}
	var status interface{}
	if err := json.Unmarshal(raw, &status); err != nil {
		status = string(raw)
	}
	return HealthReport{
		Status:         "success",
		TMSStatus:      status,
		ResponseTimeMs: float64(time.Since(start).Microseconds()) / 1000,
		HTTPCode:       resp.StatusCode,
	}
}

func (c *client) containerFallback(ctx context.Context) HealthReport {
	if c.checker != nil && c.container != "" {
		// the health deadline may already be spent on the HTTP attempt
		checkCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 5*time.Second)
		defer cancel()
		if up, status := c.checker.IsRunning(checkCtx, c.container); up {
			return HealthReport{
				Status:          "success",
				Message:         "TMS container is running (HTTP endpoint may be internal only)",
				ContainerStatus: status,
				TMSURL:          c.baseURL,
				Note:            "TMS listens on 127.0.0.1 inside the container",
			}
		}
	}
	return HealthReport{
		Status:  "error",
		Message: unreachableMessage,
		TMSURL:  c.baseURL,
	}
}
