package platform

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"time"
)

const testMessage = "这是一条测试消息 (connection test)"

type TestResult struct {
	Success    bool   `json:"success"`
	Message    string `json:"message"`
	HTTPStatus int    `json:"httpStatus,omitempty"`
}

var testClient = &http.Client{Timeout: 10 * time.Second}

// TestConnection sends one real test message through the adapter. Delivery
// problems come back as a failed result, never as an error; the error return
// is reserved for an unknown platform or a broken config.
func TestConnection(ctx context.Context, platform, url string, config map[string]string) (*TestResult, error) {
	adapter, err := Get(platform)
	if err != nil {
		return nil, err
	}

	body, err := adapter.FormatMessage(testMessage, config)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return &TestResult{Success: false, Message: "invalid URL: " + err.Error()}, nil
	}
	req.Header.Set("Content-Type", "application/json")
	ApplyCustomHeaders(req, platform, config)

	resp, err := testClient.Do(req)
	if err != nil {
		return &TestResult{Success: false, Message: "request failed: " + err.Error()}, nil
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return &TestResult{
			Success:    true,
			Message:    "connection test succeeded",
			HTTPStatus: resp.StatusCode,
		}, nil
	}
	return &TestResult{
		Success:    false,
		Message:    fmt.Sprintf("webhook returned status %d", resp.StatusCode),
		HTTPStatus: resp.StatusCode,
	}, nil
}
