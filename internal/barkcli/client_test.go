package barkcli

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func testClient(srv *httptest.Server) *Client {
	return &Client{
		BaseURL: srv.URL + "/webAPI.php",
		Email:   "ops@example.com",
		APIKey:  "nsl_key_abc",
		HTTP:    srv.Client(),
	}
}

func TestClientCallReturnsReturnPayload(t *testing.T) {
	var gotMethod string
	var gotQuery map[string]string

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotMethod = r.Method
		q := r.URL.Query()
		gotQuery = map[string]string{
			"email":  q.Get("email"),
			"apiKey": q.Get("apiKey"),
			"method": q.Get("method"),
			"params": q.Get("params"),
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"success":true,"return":{"missionName":"TestSat-1"}}`))
	}))
	defer srv.Close()

	client := testClient(srv)
	raw, err := client.Call("getMissionDetails", map[string]any{"missionID": "77"})
	if err != nil {
		t.Fatalf("Call() error = %v", err)
	}
	if string(raw) != `{"missionName":"TestSat-1"}` {
		t.Fatalf("Call() return payload = %s", raw)
	}
	if gotMethod != http.MethodGet {
		t.Fatalf("method = %s, want GET", gotMethod)
	}
	if gotQuery["email"] != "ops@example.com" || gotQuery["apiKey"] != "nsl_key_abc" {
		t.Fatalf("credentials not sent: %#v", gotQuery)
	}
	if gotQuery["method"] != "getMissionDetails" {
		t.Fatalf("method param = %q", gotQuery["method"])
	}
	if gotQuery["params"] != `{"missionID":"77"}` {
		t.Fatalf("params = %q", gotQuery["params"])
	}
	if client.LastRequestURL() == "" || !strings.Contains(client.LastRequestURL(), "method=getMissionDetails") {
		t.Fatalf("LastRequestURL not recorded: %q", client.LastRequestURL())
	}
}

func TestClientCallEscapesReservedCharacters(t *testing.T) {
	var gotEmail, gotParams string

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		gotEmail = q.Get("email")
		gotParams = q.Get("params")
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"success":true,"return":null}`))
	}))
	defer srv.Close()

	client := testClient(srv)
	client.Email = "ops+sat&ops@example.com"
	if _, err := client.Call("getMissionDetails", map[string]any{"note": "a&b=c d"}); err != nil {
		t.Fatalf("Call() error = %v", err)
	}
	if gotEmail != "ops+sat&ops@example.com" {
		t.Fatalf("email did not survive encoding round-trip: %q", gotEmail)
	}
	if gotParams != `{"note":"a&b=c d"}` {
		t.Fatalf("params did not survive encoding round-trip: %q", gotParams)
	}
}

func TestClientCallAPIErrorEnvelope(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"success":false,"errorCode":102,"description":"invalid API key","return":"denied"}`))
	}))
	defer srv.Close()

	client := testClient(srv)
	_, err := client.Call("getMissionDetails", nil)
	if err == nil {
		t.Fatalf("expected API error")
	}
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("error type = %T, want *APIError", err)
	}
	msg := apiErr.Error()
	for _, want := range []string{"102", "invalid API key", "denied"} {
		if !strings.Contains(msg, want) {
			t.Fatalf("APIError message %q missing %q", msg, want)
		}
	}
}

func TestClientCallRequiresCredentials(t *testing.T) {
	client := &Client{BaseURL: defaultBaseURL}
	if _, err := client.Call("getMissionDetails", nil); err == nil || !strings.Contains(err.Error(), "missing email") {
		t.Fatalf("expected missing email error, got %v", err)
	}

	client.Email = "ops@example.com"
	if _, err := client.Call("getMissionDetails", nil); err == nil || !strings.Contains(err.Error(), "missing api key") {
		t.Fatalf("expected missing api key error, got %v", err)
	}
}

func TestClientCallHTTPErrorSanitizesHTMLBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		w.WriteHeader(http.StatusBadGateway)
		_, _ = w.Write([]byte("<!DOCTYPE html><html><body><h1>Bad Gateway</h1></body></html>"))
	}))
	defer srv.Close()

	client := testClient(srv)
	_, err := client.Call("getMissionDetails", nil)
	if err == nil {
		t.Fatalf("expected Call() error")
	}
	if !strings.Contains(err.Error(), "request failed (502)") {
		t.Fatalf("Call() error = %v, want request failed (502)", err)
	}
	if strings.Contains(strings.ToLower(err.Error()), "<html") {
		t.Fatalf("Call() error leaked raw HTML: %v", err)
	}
	status, ok := HTTPStatusCode(err)
	if !ok || status != http.StatusBadGateway {
		t.Fatalf("HTTPStatusCode() = (%d, %v), want (502, true)", status, ok)
	}
}

func TestClientCallInvalidEnvelope(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		_, _ = w.Write([]byte("<html><body>maintenance</body></html>"))
	}))
	defer srv.Close()

	client := testClient(srv)
	_, err := client.Call("getMissionDetails", nil)
	if err == nil {
		t.Fatalf("expected Call() error")
	}
	var decodeErr *ResponseDecodeError
	if !errors.As(err, &decodeErr) {
		t.Fatalf("error type = %T, want *ResponseDecodeError", err)
	}
	if !strings.Contains(err.Error(), "invalid response (200)") {
		t.Fatalf("Call() error = %v, want invalid response (200)", err)
	}
	if !strings.Contains(strings.ToLower(err.Error()), "html") {
		t.Fatalf("Call() error = %v, want html classification", err)
	}
}

func TestClientCallEmptyBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	client := testClient(srv)
	_, err := client.Call("getMissionDetails", nil)
	if err == nil || !strings.Contains(err.Error(), "empty response body") {
		t.Fatalf("Call() error = %v, want empty response body", err)
	}
}

func TestAPIErrorOmitsNullReturn(t *testing.T) {
	apiErr := &APIError{
		ErrorCode:   json.RawMessage(`101`),
		Description: "unknown method",
		Return:      json.RawMessage(`null`),
	}
	if strings.Contains(apiErr.Error(), "return:") {
		t.Fatalf("APIError message should omit null return: %q", apiErr.Error())
	}
}
