package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/op/go-logging"
)

var log = logging.MustGetLogger("statuspage-geckoboard")

const apiScheme = "https://"

// RequestError is a non-2xx response from an upstream API.
type RequestError struct {
	Method     string
	URL        string
	StatusCode int
	Body       string
	Reason     string
}

func (e *RequestError) Error() string {
	msg := fmt.Sprintf("%s %s returned %d", e.Method, e.URL, e.StatusCode)
	if e.Reason != "" {
		msg += ": " + e.Reason
	}
	if e.Body != "" {
		msg += ": " + e.Body
	}
	return msg
}

// doJSON sends body (if any) as JSON and decodes a 2xx response into result.
// Non-2xx responses are logged and returned as *RequestError.
func doJSON(ctx context.Context, client *http.Client, method, url string, header http.Header, body, result interface{}) error {
	var reqBody io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode request: %w", err)
		}
		reqBody = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, reqBody)
	if err != nil {
		return fmt.Errorf("failed to create HTTP request: %w", err)
	}
	for k, v := range header {
		req.Header[k] = append([]string(nil), v...)
	}

	resp, err := client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to send HTTP request: %w", err)
	}
	defer resp.Body.Close()

	text, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response body: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		reqErr := &RequestError{
			Method:     method,
			URL:        url,
			StatusCode: resp.StatusCode,
			Body:       strings.TrimSpace(string(text)),
		}
		log.Errorf("%s %s returned %s: %s", method, url, resp.Status, reqErr.Body)
		return reqErr
	}

	if result != nil && len(bytes.TrimSpace(text)) > 0 {
		if err := json.Unmarshal(text, result); err != nil {
			return fmt.Errorf("failed to decode response from %s: %w", url, err)
		}
	}
	return nil
}

func jsonHeader() http.Header {
	h := make(http.Header)
	h.Set("Accept", "application/json")
	h.Set("Content-Type", "application/json")
	return h
}
