package backend

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

const defaultBaseURL = "http://127.0.0.1:7843"

// Client talks to the optibridge daemon over localhost HTTP. All image
// work (decoding, resizing, provider uploads, history persistence)
// happens daemon-side; the client only moves small JSON records.
type Client struct {
	baseURL string
	http    *http.Client
}

// New creates a Client for the daemon at baseURL. If baseURL is empty,
// the default local address is used.
func New(baseURL string, timeout time.Duration) *Client {
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	baseURL = strings.TrimRight(baseURL, "/")
	if timeout <= 0 {
		timeout = 2 * time.Minute // generous for large uploads
	}
	return &Client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: timeout},
	}
}

// Ping checks that the daemon is up. Called once at startup; a failure
// here means every later call would fail too.
func (c *Client) Ping() error {
	return c.doJSON(http.MethodGet, c.url("v1", "ping"), nil, nil)
}

// ProcessFromPath asks the daemon to read, resize, and re-encode the
// image at path, returning a preview and a temp id for a later upload.
func (c *Client) ProcessFromPath(path string) (*ProcessedImage, error) {
	var out ProcessedImage
	body := map[string]string{"path": path}
	if err := c.doJSON(http.MethodPost, c.url("v1", "process", "file"), body, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// ProcessFromClipboard asks the daemon to read the current clipboard
// image. The image bytes never pass through the client.
func (c *Client) ProcessFromClipboard() (*ProcessedImage, error) {
	var out ProcessedImage
	if err := c.doJSON(http.MethodPost, c.url("v1", "process", "clipboard"), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Upload sends the processed image identified by tempID to the given
// provider and returns its public URL.
func (c *Client) Upload(tempID string, provider Provider) (*UploadResult, error) {
	var out UploadResult
	body := map[string]string{
		"temp_id":  tempID,
		"provider": string(provider),
	}
	if err := c.doJSON(http.MethodPost, c.url("v1", "upload"), body, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// History fetches the full upload history, newest first.
func (c *Client) History() ([]HistoryItem, error) {
	var out []HistoryItem
	if err := c.doJSON(http.MethodGet, c.url("v1", "history"), nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// DeleteHistoryItem removes one history entry. URL and provider are
// passed along so the daemon can release the provider-side object.
func (c *Client) DeleteHistoryItem(id, url string, provider Provider) error {
	body := map[string]string{
		"id":       id,
		"url":      url,
		"provider": string(provider),
	}
	return c.doJSON(http.MethodPost, c.url("v1", "history", "delete"), body, nil)
}

// GetConfig fetches the daemon's configuration record.
func (c *Client) GetConfig() (*Config, error) {
	var out Config
	if err := c.doJSON(http.MethodGet, c.url("v1", "config"), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// SaveConfig writes the daemon's configuration record.
func (c *Client) SaveConfig(cfg *Config) error {
	return c.doJSON(http.MethodPut, c.url("v1", "config"), cfg, nil)
}

// doJSON sends a request and decodes the JSON response into out.
func (c *Client) doJSON(method, url string, body, out interface{}) error {
	var bodyReader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return err
		}
		bodyReader = bytes.NewReader(b)
	}
	req, err := http.NewRequest(method, url, bodyReader)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")
	if req.Body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer func() { _ = resp.Body.Close() }()
	if err := checkStatus(resp); err != nil {
		return err
	}
	if out != nil {
		return json.NewDecoder(resp.Body).Decode(out)
	}
	return nil
}

// url builds a daemon URL from path segments.
func (c *Client) url(parts ...string) string {
	return c.baseURL + "/" + strings.Join(parts, "/")
}

// checkStatus returns a typed error for non-2xx responses. The daemon
// reports failures as a JSON {"error": "..."} body.
func checkStatus(resp *http.Response) error {
	switch resp.StatusCode {
	case http.StatusOK, http.StatusCreated, http.StatusNoContent:
		return nil
	}

	msg := strings.TrimSpace(readError(resp.Body))
	switch resp.StatusCode {
	case http.StatusNotFound:
		if msg == "" {
			return ErrNotFound
		}
		return fmt.Errorf("%w: %s", ErrNotFound, msg)
	case http.StatusBadRequest, http.StatusUnprocessableEntity:
		if msg == "" {
			return ErrBadRequest
		}
		return fmt.Errorf("%w: %s", ErrBadRequest, msg)
	default:
		if msg == "" {
			msg = resp.Status
		}
		return fmt.Errorf("daemon error %d: %s", resp.StatusCode, msg)
	}
}

func readError(r io.Reader) string {
	body, _ := io.ReadAll(io.LimitReader(r, 4096))
	var e struct {
		Error string `json:"error"`
	}
	if json.Unmarshal(body, &e) == nil && e.Error != "" {
		return e.Error
	}
	return string(body)
}
