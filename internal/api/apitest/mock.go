// Package apitest provides a scriptable tls_client.HttpClient for tests of
// code built on the funland transport.
package apitest

import (
	"io"
	"net/url"
	"strings"
	"sync"

	fhttp "github.com/bogdanfinn/fhttp"
	"github.com/bogdanfinn/tls-client/bandwidth"
)

// MockHTTPClient is a mock implementation of tls_client.HttpClient.
// Every request is recorded together with its body.
type MockHTTPClient struct {
	DoFunc func(req *fhttp.Request) (*fhttp.Response, error)

	mu       sync.Mutex
	requests []*fhttp.Request
	bodies   []string
	closed   int
}

// NewMockHTTPClient returns a client answering every request with status and body
func NewMockHTTPClient(status int, body string) *MockHTTPClient {
	return &MockHTTPClient{
		DoFunc: func(req *fhttp.Request) (*fhttp.Response, error) {
			return NewResponse(status, body), nil
		},
	}
}

// NewMockHTTPClientWithError returns a client failing every request with err
func NewMockHTTPClientWithError(err error) *MockHTTPClient {
	return &MockHTTPClient{
		DoFunc: func(req *fhttp.Request) (*fhttp.Response, error) {
			return nil, err
		},
	}
}

// NewResponse builds a response with a JSON content type
func NewResponse(status int, body string) *fhttp.Response {
	header := make(fhttp.Header)
	header.Set("Content-Type", "application/json")
	return &fhttp.Response{
		StatusCode: status,
		Body:       io.NopCloser(strings.NewReader(body)),
		Header:     header,
	}
}

// LastRequest returns the most recent request and its body
func (m *MockHTTPClient) LastRequest() (*fhttp.Request, string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.requests) == 0 {
		return nil, ""
	}
	return m.requests[len(m.requests)-1], m.bodies[len(m.bodies)-1]
}

// RequestCount returns how many requests were made
func (m *MockHTTPClient) RequestCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.requests)
}

// CloseCount returns how many times CloseIdleConnections was called
func (m *MockHTTPClient) CloseCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.closed
}

// Do implements the tls_client.HttpClient interface
func (m *MockHTTPClient) Do(req *fhttp.Request) (*fhttp.Response, error) {
	var body string
	if req.Body != nil {
		data, _ := io.ReadAll(req.Body)
		body = string(data)
	}

	m.mu.Lock()
	m.requests = append(m.requests, req)
	m.bodies = append(m.bodies, body)
	m.mu.Unlock()

	if m.DoFunc == nil {
		return NewResponse(fhttp.StatusOK, "{}"), nil
	}
	return m.DoFunc(req)
}

// GetCookies implements the tls_client.HttpClient interface
func (m *MockHTTPClient) GetCookies(u *url.URL) []*fhttp.Cookie {
	return nil
}

// SetCookies implements the tls_client.HttpClient interface
func (m *MockHTTPClient) SetCookies(u *url.URL, cookies []*fhttp.Cookie) {}

// SetCookieJar implements the tls_client.HttpClient interface
func (m *MockHTTPClient) SetCookieJar(jar fhttp.CookieJar) {}

// GetCookieJar implements the tls_client.HttpClient interface
func (m *MockHTTPClient) GetCookieJar() fhttp.CookieJar {
	return nil
}

// SetProxy implements the tls_client.HttpClient interface
func (m *MockHTTPClient) SetProxy(proxyUrl string) error {
	return nil
}

// GetProxy implements the tls_client.HttpClient interface
func (m *MockHTTPClient) GetProxy() string {
	return ""
}

// SetFollowRedirect implements the tls_client.HttpClient interface
func (m *MockHTTPClient) SetFollowRedirect(followRedirect bool) {}

// GetFollowRedirect implements the tls_client.HttpClient interface
func (m *MockHTTPClient) GetFollowRedirect() bool {
	return false
}

// CloseIdleConnections implements the tls_client.HttpClient interface
func (m *MockHTTPClient) CloseIdleConnections() {
	m.mu.Lock()
	m.closed++
	m.mu.Unlock()
}

// Get implements the tls_client.HttpClient interface
func (m *MockHTTPClient) Get(url string) (*fhttp.Response, error) {
	req, err := fhttp.NewRequest(fhttp.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	return m.Do(req)
}

// Head implements the tls_client.HttpClient interface
func (m *MockHTTPClient) Head(url string) (*fhttp.Response, error) {
	req, err := fhttp.NewRequest(fhttp.MethodHead, url, nil)
	if err != nil {
		return nil, err
	}
	return m.Do(req)
}

// Post implements the tls_client.HttpClient interface
func (m *MockHTTPClient) Post(url, contentType string, body io.Reader) (*fhttp.Response, error) {
	req, err := fhttp.NewRequest(fhttp.MethodPost, url, body)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", contentType)
	return m.Do(req)
}

// GetBandwidthTracker implements the tls_client.HttpClient interface
func (m *MockHTTPClient) GetBandwidthTracker() bandwidth.BandwidthTracker {
	return nil
}
