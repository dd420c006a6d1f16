package http

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/ValentinKolb/cbench/rpc/common"
	"github.com/ValentinKolb/cbench/rpc/transport"
)

// NewHttpClientTransport creates a client transport that posts every request to /rpc/{method}
func NewHttpClientTransport() transport.IRPCClientTransport {
	return &httpClientTransport{}
}

type httpClientTransport struct {
	baseURL string
	client  *http.Client
}

// --------------------------------------------------------------------------
// Interface Methods (docu see transport.IRPCClientTransport)
// --------------------------------------------------------------------------

func (t *httpClientTransport) Connect(config common.ClientConfig) error {
	if config.Endpoint == "" {
		return fmt.Errorf("%w: no endpoint provided", common.ErrTransport)
	}

	// The endpoint may be given as host:port or as a full url
	baseURL := strings.TrimSuffix(config.Endpoint, "/")
	if !strings.HasPrefix(baseURL, "http://") && !strings.HasPrefix(baseURL, "https://") {
		baseURL = "http://" + baseURL
	}

	t.baseURL = baseURL
	t.client = &http.Client{
		// zero means no timeout
		Timeout: time.Duration(max(0, config.TimeoutSecond)) * time.Second,
		Transport: &http.Transport{
			MaxIdleConns:        100,
			MaxIdleConnsPerHost: 10,
			IdleConnTimeout:     90 * time.Second,
		},
	}
	return nil
}

func (t *httpClientTransport) Send(ctx context.Context, method uint32, req []byte) ([]byte, error) {
	if t.client == nil {
		return nil, fmt.Errorf("%w: http transport not initialized", common.ErrTransport)
	}

	requestURL := t.baseURL + RoutePrefix + common.MethodID(method).String()
	httpRequest, err := http.NewRequestWithContext(ctx, http.MethodPost, requestURL, bytes.NewReader(req))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrTransport, err)
	}
	httpRequest.Header.Set("Content-Type", "application/octet-stream")

	// Exactly one attempt
	httpResponse, err := t.client.Do(httpRequest)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", common.ErrTransport, err)
	}
	defer func() {
		if err := httpResponse.Body.Close(); err != nil {
			Logger.Errorf("Failed to close response body: %v", err)
		}
	}()

	body, err := io.ReadAll(httpResponse.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to read response: %v", common.ErrTransport, err)
	}

	if httpResponse.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: %w: %s: %s", common.ErrTransport, common.ErrRemote,
			httpResponse.Status, strings.TrimSpace(string(body)))
	}

	return body, nil
}

func (t *httpClientTransport) Close() error {
	if t.client != nil {
		t.client.CloseIdleConnections()
	}
	t.client = nil
	return nil
}
