package auth

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

const defaultExchangeEndpoint = "https://identitytoolkit.googleapis.com/v1/accounts:signInWithCustomToken"

type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

// TokenExchanger trades a custom token for a client-usable ID token via the
// provider's signInWithCustomToken endpoint.
type TokenExchanger struct {
	client   HTTPClient
	endpoint string
	apiKey   string
}

func NewTokenExchanger(apiKey string) *TokenExchanger {
	return &TokenExchanger{
		client:   &http.Client{Timeout: 30 * time.Second},
		endpoint: defaultExchangeEndpoint,
		apiKey:   apiKey,
	}
}

// NewTokenExchangerWithClient is used by tests to substitute the HTTP client
// and endpoint.
func NewTokenExchangerWithClient(client HTTPClient, endpoint, apiKey string) *TokenExchanger {
	return &TokenExchanger{client: client, endpoint: endpoint, apiKey: apiKey}
}

func (e *TokenExchanger) Exchange(ctx context.Context, customToken string) (string, error) {
	payload, err := json.Marshal(map[string]interface{}{
		"token":             customToken,
		"returnSecureToken": true,
	})
	if err != nil {
		return "", fmt.Errorf("marshal exchange request: %w", err)
	}

	url := e.endpoint + "?key=" + e.apiKey
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("build exchange request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := e.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("token exchange call failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(resp.Body)
		return "", fmt.Errorf("token exchange returned status %d: %s", resp.StatusCode, string(body))
	}

	var result struct {
		IDToken string `json:"idToken"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return "", fmt.Errorf("decode exchange response: %w", err)
	}
	if result.IDToken == "" {
		return "", fmt.Errorf("token exchange response contained no idToken")
	}
	return result.IDToken, nil
}
