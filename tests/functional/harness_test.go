package functional_test

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMockTMS(t *testing.T) {
	t.Run("it should report itself up", func(t *testing.T) {
		status, response := sendRequest(t, http.MethodGet, MockUrl+"/", nil)
		assert.Equal(t, http.StatusOK, status)
		assert.Equal(t, "UP", response["status"])
	})

	t.Run("it should reject a malformed pacs.008", func(t *testing.T) {
		status, _ := sendRequest(t, http.MethodPost, MockUrl+"/v1/evaluate/iso20022/pacs.008.001.10", map[string]interface{}{})
		assert.Equal(t, http.StatusBadRequest, status)
	})
}

func TestPacs008AgainstMock(t *testing.T) {
	clearHistory(t)

	status, response := sendRequest(t, http.MethodPost, ClientUrl+"/api/test/pacs008", map[string]interface{}{
		"debtor_account": "FUNC_DEBTOR_001",
		"amount":         1500,
	})
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, float64(http.StatusOK), response["http_code"])

	tmsResponse, ok := response["tms_response"].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "ACTC", tmsResponse["status"])
	assert.Equal(t, "Passed Validation", tmsResponse["reason"])

	status, stats := sendRequest(t, http.MethodGet, ClientUrl+"/api/stats", nil)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, float64(1), stats["total_tests"])
}

func TestPainAgainstMock(t *testing.T) {
	status, response := sendRequest(t, http.MethodPost, ClientUrl+"/api/test/pain001", map[string]interface{}{})
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, float64(http.StatusNotFound), response["http_code"])
}

func TestE2EFlowAgainstMock(t *testing.T) {
	status, response := sendRequest(t, http.MethodPost, ClientUrl+"/api/test/e2e-flow", map[string]interface{}{
		"final_status": "ACCC",
	})
	require.Equal(t, http.StatusOK, status)

	// The mock serves pacs.008 only: both pain steps are skipped and the
	// flow stops at pacs.002.
	assert.Equal(t, "failed_at_pacs002", response["overall_status"])
	steps, ok := response["steps"].([]interface{})
	require.True(t, ok)
	require.Len(t, steps, 4)
	for i, skipped := range []bool{true, true, false, false} {
		step := steps[i].(map[string]interface{})
		assert.Equal(t, skipped, step["skipped"], "step %d", i+1)
	}
}

func TestQuickStatusValidation(t *testing.T) {
	status, response := sendRequest(t, http.MethodPost, ClientUrl+"/api/test/quick-status", map[string]interface{}{
		"status_code": "XXXX",
	})
	assert.Equal(t, http.StatusBadRequest, status)
	assert.NotEmpty(t, response["error"])
}

func TestBatchAgainstMock(t *testing.T) {
	status, response := sendRequest(t, http.MethodPost, ClientUrl+"/api/test/batch", map[string]interface{}{
		"scenarios": "quick_accc, not_a_scenario",
	})
	require.Equal(t, http.StatusOK, status)

	results, ok := response["results"].([]interface{})
	require.True(t, ok)
	require.Len(t, results, 2)
	assert.Equal(t, "quick_accc", results[0].(map[string]interface{})["scenario"])
	assert.Equal(t, "error", results[1].(map[string]interface{})["status"])
}

func TestHistoryAndHealth(t *testing.T) {
	status, response := sendRequest(t, http.MethodGet, ClientUrl+"/api/health", nil)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "success", response["status"])

	clearHistory(t)
	status, response = sendRequest(t, http.MethodGet, ClientUrl+"/api/history", nil)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, float64(0), response["total_tests"])
}
