package pinata

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"strings"
	"time"
)

var (
	ErrNotConfigured = errors.New("pinata client not configured")
	ErrUnauthorized  = errors.New("pinata unauthorized")
	ErrUpstream      = errors.New("pinata upstream error")
)

// Config del cliente del pinning service.
// BaseURL y JWT normalmente vienen de env vars en quien lo instancia.
type Config struct {
	BaseURL string
	JWT     string

	// Timeout HTTP. Uploads pueden ser lentos; default generoso.
	Timeout time.Duration
}

type Client struct {
	baseURL    string
	jwt        string
	httpClient *http.Client
}

func NewClient(cfg Config) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 60 * time.Second
	}

	return &Client{
		baseURL: strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/"),
		jwt:     strings.TrimSpace(cfg.JWT),
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

func (c *Client) IsConfigured() bool {
	return c != nil && c.baseURL != "" && c.jwt != ""
}

// Store sube el blob al pinning service y devuelve el CID.
// El store es public-read: acá no hay control de acceso ni cifrado,
// el CID resultante es el único handle que el core persiste.
func (c *Client) Store(ctx context.Context, data []byte, mimeType string) (string, error) {
	if !c.IsConfigured() {
		return "", ErrNotConfigured
	}
	if len(data) == 0 {
		return "", fmt.Errorf("%w: empty content", ErrUpstream)
	}

	const pinPath = "/pinning/pinFileToIPFS"

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)

	hdr := make(textproto.MIMEHeader)
	hdr.Set("Content-Disposition", `form-data; name="file"; filename="record"`)
	if strings.TrimSpace(mimeType) != "" {
		hdr.Set("Content-Type", mimeType)
	}

	part, err := mw.CreatePart(hdr)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrUpstream, err)
	}
	if _, err := part.Write(data); err != nil {
		return "", fmt.Errorf("%w: %v", ErrUpstream, err)
	}
	if err := mw.Close(); err != nil {
		return "", fmt.Errorf("%w: %v", ErrUpstream, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+pinPath, &buf)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrUpstream, err)
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())
	req.Header.Set("Authorization", "Bearer "+c.jwt)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrUpstream, err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
		// ok
	case http.StatusUnauthorized, http.StatusForbidden:
		return "", ErrUnauthorized
	default:
		return "", fmt.Errorf("%w: status=%d", ErrUpstream, resp.StatusCode)
	}

	var out struct {
		IpfsHash string `json:"IpfsHash"`
	}
	if err := json.NewDecoder(io.LimitReader(resp.Body, 1<<20)).Decode(&out); err != nil {
		return "", fmt.Errorf("%w: invalid json: %v", ErrUpstream, err)
	}

	cid := strings.TrimSpace(out.IpfsHash)
	if cid == "" {
		return "", fmt.Errorf("%w: response missing IpfsHash", ErrUpstream)
	}
	return cid, nil
}
