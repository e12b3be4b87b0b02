package barkcli

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const defaultBaseURL = "https://data.nsldata.com/webAPI.php"

const maxClientResponseBodyBytes = 1 << 20

// Client talks to the vendor telemetry endpoint. Every remote method is
// a GET against one URL with `email`, `apiKey`, `method`, and a
// JSON-serialized `params` object in the query string.
type Client struct {
	BaseURL string
	Email   string
	APIKey  string
	HTTP    *http.Client

	// LastURL holds the most recently built request URL for -v output.
	LastURL string
}

func NewClient(cfg Config) *Client {
	return &Client{
		BaseURL: defaultBaseURL,
		Email:   strings.TrimSpace(cfg.User.Email),
		APIKey:  strings.TrimSpace(cfg.User.APIKey),
		HTTP: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// LastRequestURL returns the URL of the most recent API call.
func (c *Client) LastRequestURL() string {
	return c.LastURL
}

// RequestError is a non-2xx HTTP response from the vendor endpoint.
type RequestError struct {
	StatusCode int
	Detail     string
}

func (e *RequestError) Error() string {
	if e == nil {
		return "request failed"
	}
	if strings.TrimSpace(e.Detail) == "" {
		return fmt.Sprintf("request failed (%d)", e.StatusCode)
	}
	return fmt.Sprintf("request failed (%d): %s", e.StatusCode, e.Detail)
}

func (e *RequestError) HTTPStatusCode() int {
	if e == nil {
		return 0
	}
	return e.StatusCode
}

// ResponseDecodeError is a response body that could not be decoded as
// the vendor envelope.
type ResponseDecodeError struct {
	StatusCode int
	Detail     string
}

func (e *ResponseDecodeError) Error() string {
	if e == nil {
		return "invalid response"
	}
	if strings.TrimSpace(e.Detail) == "" {
		return fmt.Sprintf("invalid response (%d)", e.StatusCode)
	}
	return fmt.Sprintf("invalid response (%d): %s", e.StatusCode, e.Detail)
}

func (e *ResponseDecodeError) HTTPStatusCode() int {
	if e == nil {
		return 0
	}
	return e.StatusCode
}

// HTTPStatusCode returns the HTTP status carried by typed client errors.
func HTTPStatusCode(err error) (int, bool) {
	var statusErr interface {
		HTTPStatusCode() int
	}
	if !errors.As(err, &statusErr) {
		return 0, false
	}
	status := statusErr.HTTPStatusCode()
	if status <= 0 {
		return 0, false
	}
	return status, true
}

// APIError is a `success:false` envelope from the vendor API.
type APIError struct {
	ErrorCode   json.RawMessage
	Description string
	Return      json.RawMessage
}

func (e *APIError) Error() string {
	if e == nil {
		return "API error"
	}
	parts := []string{"API error"}
	if code := rawMessageText(e.ErrorCode); code != "" {
		parts[0] = "API error " + code
	}
	if desc := strings.TrimSpace(e.Description); desc != "" {
		parts = append(parts, desc)
	}
	if ret := rawMessageText(e.Return); ret != "" {
		parts = append(parts, "return: "+ret)
	}
	return strings.Join(parts, ": ")
}

func rawMessageText(raw json.RawMessage) string {
	trimmed := strings.TrimSpace(string(raw))
	if trimmed == "" || trimmed == "null" {
		return ""
	}
	return strings.Trim(trimmed, `"`)
}

type envelope struct {
	Success     bool            `json:"success"`
	Return      json.RawMessage `json:"return"`
	ErrorCode   json.RawMessage `json:"errorCode"`
	Description string          `json:"description"`
}

func (c *Client) requireCreds() error {
	if c.Email == "" {
		return errors.New("missing email; run `bark config --email <you@example.com>`")
	}
	if c.APIKey == "" {
		return errors.New("missing api key; run `bark config --api-key <your-api-key>`")
	}
	return nil
}

func (c *Client) buildURL(method string, params any) (string, error) {
	base := strings.TrimSpace(c.BaseURL)
	if base == "" {
		return "", errors.New("missing API base URL")
	}
	payload, err := json.Marshal(params)
	if err != nil {
		return "", fmt.Errorf("encode params: %w", err)
	}
	q := url.Values{}
	q.Set("email", c.Email)
	q.Set("apiKey", c.APIKey)
	q.Set("method", method)
	q.Set("params", string(payload))
	return base + "?" + q.Encode(), nil
}

// Call invokes a remote method and returns the envelope's `return`
// payload. A `success:false` envelope comes back as *APIError.
func (c *Client) Call(method string, params any) (json.RawMessage, error) {
	if err := c.requireCreds(); err != nil {
		return nil, err
	}
	method = strings.TrimSpace(method)
	if method == "" {
		return nil, errors.New("method is required")
	}
	if params == nil {
		params = map[string]any{}
	}

	endpoint, err := c.buildURL(method, params)
	if err != nil {
		return nil, err
	}
	c.LastURL = endpoint

	req, err := http.NewRequest(http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")

	httpClient := c.HTTP
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 30 * time.Second}
	}
	resp, err := httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	payload, readErr := io.ReadAll(io.LimitReader(resp.Body, maxClientResponseBodyBytes))
	if readErr != nil {
		return nil, readErr
	}

	if resp.StatusCode >= 400 {
		return nil, &RequestError{
			StatusCode: resp.StatusCode,
			Detail:     summarizeResponseBody(resp.Header.Get("Content-Type"), payload),
		}
	}

	trimmed := strings.TrimSpace(string(payload))
	if trimmed == "" {
		return nil, &ResponseDecodeError{StatusCode: resp.StatusCode, Detail: "empty response body"}
	}
	var env envelope
	if err := json.Unmarshal(payload, &env); err != nil {
		detail := "invalid JSON envelope: " + err.Error()
		if isLikelyHTMLResponse(resp.Header.Get("Content-Type"), trimmed) {
			detail = "expected JSON envelope but received HTML"
		}
		return nil, &ResponseDecodeError{StatusCode: resp.StatusCode, Detail: detail}
	}

	if !env.Success {
		return nil, &APIError{
			ErrorCode:   env.ErrorCode,
			Description: env.Description,
			Return:      env.Return,
		}
	}
	return env.Return, nil
}

func summarizeResponseBody(contentType string, payload []byte) string {
	trimmed := strings.TrimSpace(string(payload))
	if trimmed == "" {
		return ""
	}
	if isLikelyHTMLResponse(contentType, trimmed) {
		return "html response body omitted"
	}
	return truncateResponseText(trimmed, 200)
}

func isLikelyHTMLResponse(contentType, body string) bool {
	ct := strings.ToLower(contentType)
	if strings.Contains(ct, "text/html") || strings.Contains(ct, "application/xhtml+xml") {
		return true
	}
	lowerBody := strings.ToLower(strings.TrimSpace(body))
	return strings.HasPrefix(lowerBody, "<!doctype html") || strings.HasPrefix(lowerBody, "<html")
}

func truncateResponseText(value string, max int) string {
	collapsed := strings.Join(strings.Fields(value), " ")
	if len(collapsed) <= max {
		return collapsed
	}
	if max <= 3 {
		return collapsed[:max]
	}
	return collapsed[:max-3] + "..."
}
