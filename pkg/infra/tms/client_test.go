package tms_test

import (
	"context"
	"errors"
	"io"
	"net/http"
	"testing"
	"time"

	"github.com/NeuralTrust/TMSHarness/pkg/app/payload"
	"github.com/NeuralTrust/TMSHarness/pkg/config"
	"github.com/NeuralTrust/TMSHarness/pkg/infra/httpx"
	httpmocks "github.com/NeuralTrust/TMSHarness/pkg/infra/httpx/mocks"
	"github.com/NeuralTrust/TMSHarness/pkg/infra/tms"
	"github.com/NeuralTrust/TMSHarness/pkg/iso20022"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func quietLogger() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}

func testConfig() config.TMSConfig {
	return config.TMSConfig{
		BaseURL:       "http://tms.test",
		TenantID:      "TENANT_A",
		Timeout:       time.Second,
		HealthTimeout: time.Second,
		Container:     "tazama-tms",
	}
}

type checkerStub struct {
	up     bool
	status string
	called bool
}

func (c *checkerStub) IsRunning(_ context.Context, _ string) (bool, string) {
	c.called = true
	return c.up, c.status
}

func TestClient_SendPacs008_OK(t *testing.T) {
	httpClient := new(httpmocks.MockHTTPClient)
	httpClient.On("Do", mock.MatchedBy(func(req *http.Request) bool {
		return req.Method == http.MethodPost &&
			req.URL.String() == "http://tms.test"+tms.Pacs008Path &&
			req.Header.Get("SourceTenantId") == "TENANT_A" &&
			req.Header.Get("Content-Type") == "application/json"
	})).Return(httpmocks.JSONResponse(http.StatusOK, `{"status":"ACTC","reason":"Passed Validation"}`), nil).Once()

	c := tms.NewClient(quietLogger(), httpClient, testConfig())
	res := c.SendPacs008(context.Background(), payload.NewGenerator().Pacs008(payload.Parties{}))

	assert.True(t, res.OK())
	assert.Equal(t, map[string]interface{}{"status": "ACTC", "reason": "Passed Validation"}, res.Body)
	assert.GreaterOrEqual(t, res.ElapsedMs, 0.0)
	httpClient.AssertExpectations(t)
}

func TestClient_NonOKStatusKeepsRawBody(t *testing.T) {
	tests := []struct {
		name   string
		path   string
		status int
		body   string
		send   func(tms.Client) tms.Result
	}{
		{
			name:   "pain001 not found",
			path:   tms.Pain001Path,
			status: http.StatusNotFound,
			body:   `{"message":"Route POST:/v1/evaluate/iso20022/pain.001.001.11 not found"}`,
			send: func(c tms.Client) tms.Result {
				return c.SendPain001(context.Background(), payload.NewGenerator().Pain001(payload.Parties{}))
			},
		},
		{
			name:   "pain013 bad request",
			path:   tms.Pain013Path,
			status: http.StatusBadRequest,
			body:   "invalid payload",
			send: func(c tms.Client) tms.Result {
				return c.SendPain013(context.Background(), payload.NewGenerator().Pain013(payload.Parties{}))
			},
		},
		{
			name:   "pacs002 server error",
			path:   tms.Pacs002Path,
			status: http.StatusInternalServerError,
			body:   "boom",
			send: func(c tms.Client) tms.Result {
				return c.SendPacs002(context.Background(), payload.NewGenerator().Pacs002("m", "e", iso20022.StatusAccepted))
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			httpClient := new(httpmocks.MockHTTPClient)
			httpClient.OnPost("http://tms.test"+tt.path, tt.status, tt.body)

			res := tt.send(tms.NewClient(quietLogger(), httpClient, testConfig()))

			assert.Equal(t, tt.status, res.StatusCode)
			assert.Equal(t, tt.body, res.Body)
			httpClient.AssertExpectations(t)
		})
	}
}

func TestClient_ConnectionFailure(t *testing.T) {
	httpClient := new(httpmocks.MockHTTPClient)
	httpClient.On("Do", mock.Anything).Return(nil, errors.New("dial tcp 127.0.0.1:5001: connect: connection refused")).Once()

	res := tms.NewClient(quietLogger(), httpClient, testConfig()).
		SendPacs008(context.Background(), payload.NewGenerator().Pacs008(payload.Parties{}))

	assert.Equal(t, 0, res.StatusCode)
	assert.True(t, res.ConnectionFailed())
	assert.Contains(t, res.Body, "connection refused")
}

func TestClient_CircuitBreakerOpen(t *testing.T) {
	httpClient := new(httpmocks.MockHTTPClient)
	httpClient.On("Do", mock.Anything).Return(nil, errors.New("connection refused")).Once()

	breaker := httpx.NewCircuitBreaker("tms", time.Minute, 1)
	c := tms.NewClient(quietLogger(), httpClient, testConfig(), tms.WithCircuitBreaker(breaker))
	msg := payload.NewGenerator().Pacs008(payload.Parties{})

	first := c.SendPacs008(context.Background(), msg)
	second := c.SendPacs008(context.Background(), msg)

	assert.True(t, first.ConnectionFailed())
	assert.True(t, second.ConnectionFailed())
	assert.Contains(t, second.Body, "circuit breaker is open")
	httpClient.AssertNumberOfCalls(t, "Do", 1)
}

func TestClient_CheckHealth(t *testing.T) {
	httpClient := new(httpmocks.MockHTTPClient)
	httpClient.On("Do", mock.MatchedBy(func(req *http.Request) bool {
		return req.Method == http.MethodGet && req.URL.String() == "http://tms.test/"
	})).Return(httpmocks.JSONResponse(http.StatusOK, `{"status":"UP"}`), nil).Once()

	report := tms.NewClient(quietLogger(), httpClient, testConfig()).CheckHealth(context.Background())

	require.True(t, report.Healthy())
	assert.Equal(t, http.StatusOK, report.HTTPCode)
	assert.Equal(t, map[string]interface{}{"status": "UP"}, report.TMSStatus)
}

func TestClient_CheckHealth_ContainerFallback(t *testing.T) {
	tests := []struct {
		name        string
		up          bool
		wantHealthy bool
	}{
		{name: "container up", up: true, wantHealthy: true},
		{name: "container down", up: false, wantHealthy: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			httpClient := new(httpmocks.MockHTTPClient)
			httpClient.On("Do", mock.Anything).Return(nil, errors.New("connection refused")).Once()
			checker := &checkerStub{up: tt.up, status: "Up 2 minutes"}

			report := tms.NewClient(quietLogger(), httpClient, testConfig(), tms.WithContainerChecker(checker)).
				CheckHealth(context.Background())

			assert.True(t, checker.called)
			assert.Equal(t, tt.wantHealthy, report.Healthy())
			assert.Equal(t, "http://tms.test", report.TMSURL)
			if !tt.wantHealthy {
				assert.Equal(t, "Cannot connect to TMS service. Is it running?", report.Message)
			}
		})
	}
}
