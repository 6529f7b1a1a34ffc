package functional_test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sendRequest(t *testing.T, method, url string, body interface{}) (int, map[string]interface{}) {
	var reqBody io.Reader
	if body != nil {
		bodyBytes, err := json.Marshal(body)
		require.NoError(t, err)
		reqBody = bytes.NewReader(bodyBytes)
	}

	req, err := http.NewRequest(method, url, reqBody)
	require.NoError(t, err)

	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	respBytes, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	var respData map[string]interface{}
	err = json.Unmarshal(respBytes, &respData)
	assert.NoError(t, err, string(respBytes))

	return resp.StatusCode, respData
}

func clearHistory(t *testing.T) {
	status, _ := sendRequest(t, http.MethodDelete, ClientUrl+"/api/history", nil)
	require.Equal(t, http.StatusOK, status)
}
