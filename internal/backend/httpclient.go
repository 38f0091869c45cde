package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	apperrors "chatty/cli/internal/errors"
	"chatty/cli/internal/httperrors"
	"chatty/cli/internal/logging"

	"github.com/google/uuid"
)

// HTTP implements API over the service's GraphQL endpoint.
type HTTP struct {
	// baseURL is the base URL for all HTTP requests (e.g., "https://api.chatty.app")
	baseURL string
	// client is the underlying HTTP client with configured timeout
	client *http.Client
	log    *slog.Logger
}

// NewHTTP creates a GraphQL client rooted at baseURL.
// A nil client gets a 10-second timeout.
func NewHTTP(baseURL string, client *http.Client, log *slog.Logger) *HTTP {
	if client == nil {
		client = &http.Client{Timeout: 10 * time.Second}
	}
	return &HTTP{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  client,
		log:     logging.OrDiscard(log),
	}
}

// setStandardHeaders applies headers shared by every request and returns the
// request id used for correlation in logs.
func (h *HTTP) setStandardHeaders(req *http.Request) string {
	id := uuid.NewString()
	req.Header.Set("User-Agent", "chatty-cli/1.0")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-ID", id)
	return id
}

// GetVersion calls GET /version and returns the version string when available.
// No authentication required. This can be used to check connectivity to the backend service.
func (h *HTTP) GetVersion(ctx context.Context) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, h.baseURL+"/version", nil)
	if err != nil {
		return "", err
	}
	h.setStandardHeaders(req)
	resp, err := h.client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return "unknown", nil
	}
	var out struct {
		Version string `json:"version"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", err
	}
	if out.Version == "" {
		return "unknown", nil
	}
	return out.Version, nil
}

type gqlRequest struct {
	OperationName string         `json:"operationName"`
	Query         string         `json:"query"`
	Variables     map[string]any `json:"variables,omitempty"`
}

type gqlError struct {
	Message string `json:"message"`
}

type gqlResponse struct {
	Data   json.RawMessage `json:"data"`
	Errors []gqlError      `json:"errors"`
}

// graphql posts one operation to /graphql and decodes data into out.
//
// Transport failures come back as TransportFailed, GraphQL errors as
// RequestRejected carrying the first error message. The response headers are
// returned so callers can look for a token there.
func (h *HTTP) graphql(ctx context.Context, op, query string, vars map[string]any, token string, out any) (http.Header, error) {
	body, err := json.Marshal(gqlRequest{OperationName: op, Query: query, Variables: vars})
	if err != nil {
		return nil, err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, h.baseURL+"/graphql", bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	reqID := h.setStandardHeaders(req)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	start := time.Now()
	resp, err := h.client.Do(req)
	if err != nil {
		h.log.Debug("graphql request failed", "op", op, "request_id", reqID, "error", logging.Mask(err.Error()))
		return nil, apperrors.Wrap(apperrors.TransportFailed, httperrors.Reason(err), err)
	}
	defer resp.Body.Close()
	h.log.Debug("graphql request completed", "op", op, "request_id", reqID, "status", resp.StatusCode, "latency_ms", time.Since(start).Milliseconds())

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.TransportFailed, httperrors.Reason(err), err)
	}

	var gr gqlResponse
	decodeErr := json.Unmarshal(raw, &gr)
	if decodeErr == nil && len(gr.Errors) > 0 {
		msg := strings.TrimSpace(gr.Errors[0].Message)
		if msg == "" {
			msg = "The request was rejected"
		}
		return resp.Header, apperrors.New(apperrors.RequestRejected, msg)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		statusErr := fmt.Errorf("graphql %s: %d %s", op, resp.StatusCode, http.StatusText(resp.StatusCode))
		if resp.StatusCode >= 500 {
			return resp.Header, apperrors.Wrap(apperrors.TransportFailed, httperrors.Reason(statusErr), statusErr)
		}
		return resp.Header, apperrors.Wrap(apperrors.RequestRejected, fmt.Sprintf("Request failed with status %d", resp.StatusCode), statusErr)
	}
	if decodeErr != nil {
		return resp.Header, apperrors.Wrap(apperrors.TransportFailed, "The server sent an unreadable response", decodeErr)
	}
	if out != nil && len(gr.Data) > 0 {
		if err := json.Unmarshal(gr.Data, out); err != nil {
			return resp.Header, apperrors.Wrap(apperrors.TransportFailed, "The server sent an unreadable response", err)
		}
	}
	return resp.Header, nil
}
