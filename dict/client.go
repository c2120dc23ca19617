package dict

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const (
	apiURL         = "https://api.dictionaryapi.dev/api/v2/entries/en/"
	defaultTimeout = 15 * time.Second
)

// Client is a dictionary API client.
type Client struct {
	httpClient *http.Client
	baseURL    string
	userAgent  string
	online     func() bool
}

// NewClient creates a new dictionary client with the default timeout.
func NewClient() *Client {
	return &Client{
		httpClient: &http.Client{Timeout: defaultTimeout},
		baseURL:    apiURL,
	}
}

// SetTimeout overrides the request deadline.
func (c *Client) SetTimeout(d time.Duration) {
	if d > 0 {
		c.httpClient.Timeout = d
	}
}

// SetUserAgent sets the User-Agent header sent with lookups.
func (c *Client) SetUserAgent(ua string) {
	c.userAgent = ua
}

// SetOnlineCheck installs a connectivity probe consulted before each
// lookup. A nil check means lookups always go to the network.
func (c *Client) SetOnlineCheck(online func() bool) {
	c.online = online
}

// SetBaseURL sets the API base URL (for testing).
func (c *Client) SetBaseURL(base string) {
	c.baseURL = base
}

// Define looks up a word and returns its entries in API order. Failures
// are one of ErrNoConnection, ErrTimeout, *APIError, or
// ErrMalformedResponse; no retries are attempted.
func (c *Client) Define(word string) ([]Entry, error) {
	if c.online != nil && !c.online() {
		return nil, ErrNoConnection
	}

	req, err := http.NewRequest("GET", c.baseURL+url.PathEscape(word), nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	if c.userAgent != "" {
		req.Header.Set("User-Agent", c.userAgent)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, classifyTransport(err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, classifyTransport(err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, apiError(resp.StatusCode, body)
	}

	return decodeEntries(body)
}

// classifyTransport maps a transport-level failure onto the closed error
// set: deadline problems become ErrTimeout, everything else is treated as
// having no network path.
func classifyTransport(err error) error {
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return fmt.Errorf("%w: %v", ErrTimeout, err)
	}
	return fmt.Errorf("%w: %v", ErrNoConnection, err)
}

// apiError composes the display message for a non-success response. The
// API's error body optionally carries title/message/resolution strings.
func apiError(status int, body []byte) *APIError {
	fallback := &APIError{
		Status:  status,
		Message: fmt.Sprintf("Error %d: Unable to fetch definition.", status),
	}

	var obj map[string]any
	if err := json.Unmarshal(body, &obj); err != nil {
		return fallback
	}

	title := requiredString(obj, "title")
	message := requiredString(obj, "message")
	resolution := requiredString(obj, "resolution")
	if title == "" && message == "" && resolution == "" {
		return fallback
	}

	composed := strings.TrimSpace(fmt.Sprintf("%s: %s %s", title, message, resolution))
	return &APIError{Status: status, Message: composed}
}

// decodeEntries decodes a success body. The body must be a JSON array of
// objects; list-level malformation fails the whole call since a partial
// dictionary result is not meaningful to show. Field-level problems within
// an object are absorbed by DecodeEntry.
func decodeEntries(body []byte) ([]Entry, error) {
	var raw any
	if err := json.Unmarshal(body, &raw); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}
	list, ok := raw.([]any)
	if !ok {
		return nil, fmt.Errorf("%w: body is not a list", ErrMalformedResponse)
	}

	entries := make([]Entry, 0, len(list))
	for _, el := range list {
		obj, ok := el.(map[string]any)
		if !ok {
			return nil, fmt.Errorf("%w: list element is not an object", ErrMalformedResponse)
		}
		entries = append(entries, DecodeEntry(obj))
	}
	return entries, nil
}
