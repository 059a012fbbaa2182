//go:build integration_test

package test

import (
	"context"
	"io"
	"net/http"
	"strings"
)

func doRequest(ctx context.Context, client *http.Client, method, url, body string) (*http.Response, []byte, error) {
	var reqBody io.Reader
	if body != "" {
		reqBody = strings.NewReader(body)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, reqBody)
	if err != nil {
		return nil, nil, err
	}
	req.Header.Set("User-Agent", "liftlog-integration-test")
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := client.Do(req)
	if err != nil {
		return nil, nil, err
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, nil, err
	}
	return resp, respBody, nil
}
