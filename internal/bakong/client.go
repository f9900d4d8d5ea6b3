// Package bakong is a client for the Bakong open API: transaction status
// lookups by MD5 hash and deeplink generation for issued QR payloads.
package bakong

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

// Settlement statuses reported by CheckTransaction.
const (
	StatusPaid   = "PAID"
	StatusUnpaid = "UNPAID"
)

const defaultTimeout = 15 * time.Second

// Client talks to the Bakong open API with a merchant bearer token.
type Client struct {
	baseURL    string
	token      string
	httpClient *http.Client
}

// NewClient creates a Bakong API client.
func NewClient(baseURL, token string) *Client {
	return &Client{
		baseURL:    baseURL,
		token:      token,
		httpClient: &http.Client{Timeout: defaultTimeout},
	}
}

type apiResponse struct {
	ResponseCode    int             `json:"responseCode"`
	ResponseMessage string          `json:"responseMessage"`
	ErrorCode       *int            `json:"errorCode"`
	Data            json.RawMessage `json:"data"`
}

// SourceInfo brands the deeplink shown inside banking apps.
type SourceInfo struct {
	AppIconURL          string `json:"appIconUrl"`
	AppName             string `json:"appName"`
	AppDeepLinkCallback string `json:"appDeepLinkCallback"`
}

// CheckTransaction returns the settlement status for a payload hash.
// Bakong answers responseCode 0 once the transaction has settled;
// anything else means it is still unpaid.
func (c *Client) CheckTransaction(ctx context.Context, md5Hash string) (string, error) {
	resp, err := c.post(ctx, "/v1/check_transaction_by_md5", map[string]string{"md5": md5Hash})
	if err != nil {
		return "", err
	}
	if resp.ResponseCode == 0 {
		return StatusPaid, nil
	}
	return StatusUnpaid, nil
}

// GetTransaction returns the raw transaction detail for a payload hash.
func (c *Client) GetTransaction(ctx context.Context, md5Hash string) (map[string]interface{}, error) {
	resp, err := c.post(ctx, "/v1/check_transaction_by_md5", map[string]string{"md5": md5Hash})
	if err != nil {
		return nil, err
	}
	if len(resp.Data) == 0 {
		return nil, nil
	}
	var detail map[string]interface{}
	if err := json.Unmarshal(resp.Data, &detail); err != nil {
		return nil, fmt.Errorf("failed to decode transaction detail: %w", err)
	}
	return detail, nil
}

// GenerateDeeplink exchanges a QR payload for a short link that opens the
// user's banking app.
func (c *Client) GenerateDeeplink(ctx context.Context, qr string, src SourceInfo) (string, error) {
	resp, err := c.post(ctx, "/v1/generate_deeplink_by_qr", map[string]interface{}{
		"qr":         qr,
		"sourceInfo": src,
	})
	if err != nil {
		return "", err
	}
	if resp.ResponseCode != 0 {
		return "", fmt.Errorf("deeplink generation failed: %s", resp.ResponseMessage)
	}
	var data struct {
		ShortLink string `json:"shortLink"`
	}
	if err := json.Unmarshal(resp.Data, &data); err != nil {
		return "", fmt.Errorf("failed to decode deeplink response: %w", err)
	}
	return data.ShortLink, nil
}

func (c *Client) post(ctx context.Context, path string, body interface{}) (*apiResponse, error) {
	payload, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.token)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("bakong request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusUnauthorized {
		return nil, fmt.Errorf("bakong token rejected")
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("bakong returned status %d", resp.StatusCode)
	}

	var out apiResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("failed to decode bakong response: %w", err)
	}
	return &out, nil
}
