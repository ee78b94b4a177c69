// Package httpwallet talks to a wallet daemon over its local HTTP API.
package httpwallet

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	slogctx "github.com/veqryn/slog-context"

	"github.com/openkcm/report-wallet/internal/provider"
	"github.com/openkcm/report-wallet/internal/wallet"
)

const sessionHeader = "X-Wallet-Session"

// Client is the activation capability of one wallet daemon.
type Client struct {
	endpoint   *url.URL
	httpClient *http.Client
}

var _ provider.Connector = (*Client)(nil)

func NewClient(endpoint string, httpClient *http.Client) (*Client, error) {
	u, err := url.Parse(endpoint)
	if err != nil {
		return nil, fmt.Errorf("parsing wallet endpoint: %w", err)
	}
	if u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("wallet endpoint must be absolute: %q", endpoint)
	}
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &Client{endpoint: u, httpClient: httpClient}, nil
}

// Descriptor builds the provider descriptor for this daemon.
func (c *Client) Descriptor(name, apiVersion, icon, rdns string) provider.Descriptor {
	return provider.Descriptor{
		Name:       name,
		APIVersion: apiVersion,
		Icon:       icon,
		RDNS:       rdns,
		Connector:  c,
	}
}

// Connect asks the daemon to open a session on networkID.
// The user may decline, which surfaces as a *wallet.Error with the rejection code.
// A daemon answering without a session id opened nothing, so no session is returned.
func (c *Client) Connect(ctx context.Context, networkID string) (wallet.Session, error) {
	var resp struct {
		SessionID string `json:"sessionId"`
	}
	if err := c.do(ctx, http.MethodPost, "", "/connect", map[string]string{"networkId": networkID}, &resp); err != nil {
		return nil, err
	}
	if resp.SessionID == "" {
		slogctx.Warn(ctx, "Wallet returned no session", "endpoint", c.endpoint.String(), "network_id", networkID)
		return nil, nil
	}

	slogctx.Debug(ctx, "Opened wallet session", "endpoint", c.endpoint.String(), "network_id", networkID)

	return &Session{client: c, id: resp.SessionID}, nil
}

// do calls the daemon at path, which must already be escaped.
func (c *Client) do(ctx context.Context, method, sessionID, path string, body, into any) error {
	u, err := c.endpoint.Parse(strings.TrimSuffix(c.endpoint.EscapedPath(), "/") + path)
	if err != nil {
		return fmt.Errorf("building request url: %w", err)
	}

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encoding request: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, u.String(), reader)
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")
	if sessionID != "" {
		req.Header.Set(sessionHeader, sessionID)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("executing request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return decodeError(resp)
	}

	if into == nil || resp.StatusCode == http.StatusNoContent {
		return nil
	}

	decoder := json.NewDecoder(resp.Body)
	decoder.UseNumber()
	if err := decoder.Decode(into); err != nil && !errors.Is(err, io.EOF) {
		return fmt.Errorf("decoding response: %w", err)
	}

	return nil
}

func decodeError(resp *http.Response) error {
	var walletErr wallet.Error
	if err := json.NewDecoder(resp.Body).Decode(&walletErr); err != nil || walletErr.Code == 0 {
		return fmt.Errorf("wallet responded with status: %d", resp.StatusCode)
	}
	return &walletErr
}
