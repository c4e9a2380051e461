package walletgw

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/Nisith-Naman/Health/internal/platform/httpclient"
)

var (
	ErrNotConfigured = errors.New("wallet gateway client not configured")
	ErrUnauthorized  = errors.New("wallet gateway unauthorized")
	ErrUpstream      = errors.New("wallet gateway upstream error")
)

// Config del cliente del wallet gateway (el servicio que verifica la
// firma de la sesión de wallet y devuelve la address del caller).
type Config struct {
	BaseURL string
	APIKey  string

	// Opcional: header de la API key. Default "X-Api-Key".
	APIKeyHeader string

	Timeout time.Duration
}

type Client struct {
	apiKey       string
	apiKeyHeader string
	http         *httpclient.Client
}

func NewClient(cfg Config) (*Client, error) {
	h := strings.TrimSpace(cfg.APIKeyHeader)
	if h == "" {
		h = "X-Api-Key"
	}

	hc, err := httpclient.NewWithBaseURL(cfg.BaseURL, cfg.Timeout)
	if err != nil {
		return nil, err
	}

	return &Client{
		apiKey:       strings.TrimSpace(cfg.APIKey),
		apiKeyHeader: h,
		http:         hc,
	}, nil
}

func (c *Client) IsConfigured() bool {
	return c != nil && c.http != nil && c.http.BaseURL != "" && c.apiKey != ""
}

// VerifySession verifica un token de sesión contra el gateway y trae
// la address firmante. El core nunca re-verifica firmas: confía en la
// address que devuelve esta frontera.
func (c *Client) VerifySession(ctx context.Context, token string) (string, error) {
	if !c.IsConfigured() {
		return "", ErrNotConfigured
	}
	token = strings.TrimSpace(token)
	if token == "" {
		return "", ErrUnauthorized
	}

	const verifyPath = "/v1/sessions/verify"

	var out struct {
		Address string `json:"address"`
	}

	err := c.http.DoJSON(ctx, http.MethodPost, verifyPath,
		map[string]string{
			c.apiKeyHeader:  c.apiKey,
			"Authorization": "Bearer " + token,
		},
		map[string]string{"token": token},
		&out,
	)
	if err != nil {
		var httpErr *httpclient.HTTPError
		if errors.As(err, &httpErr) {
			if httpErr.StatusCode == http.StatusUnauthorized || httpErr.StatusCode == http.StatusForbidden {
				return "", ErrUnauthorized
			}
			return "", fmt.Errorf("%w: status=%d", ErrUpstream, httpErr.StatusCode)
		}
		return "", fmt.Errorf("%w: %v", ErrUpstream, err)
	}

	address := strings.ToLower(strings.TrimSpace(out.Address))
	if address == "" {
		return "", errors.New("wallet gateway response missing address")
	}
	return address, nil
}
