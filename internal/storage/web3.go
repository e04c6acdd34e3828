package storage

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

const maxErrorBody = 4 << 10

// Web3Store uploads through the web3.storage HTTP API.
type Web3Store struct {
	baseURL string
	token   string
	client  *http.Client
}

// NewWeb3Store returns a client for baseURL. A nil client gets a default with
// a one-minute timeout.
func NewWeb3Store(baseURL, token string, client *http.Client) *Web3Store {
	if client == nil {
		client = &http.Client{Timeout: time.Minute}
	}
	return &Web3Store{
		baseURL: strings.TrimRight(baseURL, "/"),
		token:   token,
		client:  client,
	}
}

type web3UploadResponse struct {
	CID string `json:"cid"`
}

type web3ErrorResponse struct {
	Name    string `json:"name"`
	Message string `json:"message"`
}

func (s *Web3Store) Put(ctx context.Context, name string, content []byte) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.baseURL+"/upload", bytes.NewReader(content))
	if err != nil {
		return "", fmt.Errorf("building upload request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+s.token)
	req.Header.Set("X-Name", name)
	req.Header.Set("Content-Type", "application/octet-stream")

	resp, err := s.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("uploading to web3.storage: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		var apiErr web3ErrorResponse
		if json.Unmarshal(body, &apiErr) == nil && apiErr.Message != "" {
			return "", fmt.Errorf("web3.storage upload failed: %s: %s", resp.Status, apiErr.Message)
		}
		return "", fmt.Errorf("web3.storage upload failed: %s", resp.Status)
	}

	var out web3UploadResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", fmt.Errorf("decoding web3.storage response: %w", err)
	}
	if out.CID == "" {
		return "", ErrMissingCID
	}
	return out.CID, nil
}
