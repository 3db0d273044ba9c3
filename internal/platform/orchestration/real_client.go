package orchestration

import (
	"bytes"
	"context"
	"crypto/tls"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/go-logr/logr"
	"github.com/google/uuid"
)

const apiBasePath = "/api/v1"

// Options configures a RealClient.
type Options struct {
	BaseURL string
	Token   string
	// Domain scopes every request to an orchestration domain.
	Domain             string
	Timeout            time.Duration
	InsecureSkipVerify bool
	// HTTPClient overrides the client built from Timeout and InsecureSkipVerify.
	HTTPClient *http.Client
	Logger     logr.Logger
}

// RealClient implements API over the orchestration server's JSON HTTP API.
type RealClient struct {
	baseURL string
	token   string
	domain  string
	http    *http.Client
	log     logr.Logger
}

// NewRealClient creates a new orchestration API client.
func NewRealClient(opts Options) *RealClient {
	httpClient := opts.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: opts.Timeout}
		if opts.InsecureSkipVerify {
			httpClient.Transport = &http.Transport{
				// #nosec G402 -- opt-in for lab servers with self-signed certificates
				TLSClientConfig: &tls.Config{InsecureSkipVerify: true},
			}
		}
	}

	return &RealClient{
		baseURL: strings.TrimSuffix(opts.BaseURL, "/"),
		token:   opts.Token,
		domain:  opts.Domain,
		http:    httpClient,
		log:     opts.Logger,
	}
}

type messageRequest struct {
	Message string `json:"message"`
}

type disconnectRoutesRequest struct {
	Endpoints []string `json:"endpoints"`
}

type connectedCommandRequest struct {
	CommandName string `json:"commandName"`
	CommandTag  string `json:"commandTag,omitempty"`
}

type removeResourcesRequest struct {
	Resources []string `json:"resources"`
}

type errorResponse struct {
	ErrorCode json.RawMessage `json:"errorCode"`
	Message   string          `json:"message"`
}

// GetReservationDetails fetches the reservation description.
func (c *RealClient) GetReservationDetails(ctx context.Context, reservationID string) (*ReservationDetails, error) {
	var details ReservationDetails
	path := "/reservations/" + url.PathEscape(reservationID)
	if err := c.do(ctx, "get_reservation_details", http.MethodGet, path, nil, &details); err != nil {
		return nil, fmt.Errorf("failed to get reservation %s: %w", reservationID, err)
	}
	return &details, nil
}

// WriteMessageToReservationOutput appends a line to the reservation output.
func (c *RealClient) WriteMessageToReservationOutput(ctx context.Context, reservationID, message string) error {
	path := "/reservations/" + url.PathEscape(reservationID) + "/output"
	if err := c.do(ctx, "write_output", http.MethodPost, path, messageRequest{Message: message}, nil); err != nil {
		return fmt.Errorf("failed to write reservation output: %w", err)
	}
	return nil
}

// DisconnectRoutesInReservation disconnects the routes joining endpoints.
func (c *RealClient) DisconnectRoutesInReservation(ctx context.Context, reservationID string, endpoints []string) error {
	path := "/reservations/" + url.PathEscape(reservationID) + "/routes/disconnect"
	if err := c.do(ctx, "disconnect_routes", http.MethodPost, path, disconnectRoutesRequest{Endpoints: endpoints}, nil); err != nil {
		return fmt.Errorf("failed to disconnect routes: %w", err)
	}
	return nil
}

// GetResourceDetails fetches the detail record of a resource.
func (c *RealClient) GetResourceDetails(ctx context.Context, resourceName string) (*ResourceInfo, error) {
	var info ResourceInfo
	path := "/resources/" + url.PathEscape(resourceName)
	if err := c.do(ctx, "get_resource_details", http.MethodGet, path, nil, &info); err != nil {
		return nil, fmt.Errorf("failed to get resource %s: %w", resourceName, err)
	}
	return &info, nil
}

// ExecuteResourceConnectedCommand runs a connected command on a resource.
func (c *RealClient) ExecuteResourceConnectedCommand(ctx context.Context, reservationID, resourceName, commandName, commandTag string) error {
	path := "/reservations/" + url.PathEscape(reservationID) +
		"/resources/" + url.PathEscape(resourceName) + "/connected-commands"
	body := connectedCommandRequest{CommandName: commandName, CommandTag: commandTag}
	if err := c.do(ctx, "execute_connected_command", http.MethodPost, path, body, nil); err != nil {
		return fmt.Errorf("failed to execute %s on %s: %w", commandName, resourceName, err)
	}
	return nil
}

// RemoveResourcesFromReservation removes resources from the reservation in bulk.
func (c *RealClient) RemoveResourcesFromReservation(ctx context.Context, reservationID string, resourceNames []string) error {
	path := "/reservations/" + url.PathEscape(reservationID) + "/resources/remove"
	if err := c.do(ctx, "remove_resources", http.MethodPost, path, removeResourcesRequest{Resources: resourceNames}, nil); err != nil {
		return fmt.Errorf("failed to remove resources from reservation: %w", err)
	}
	return nil
}

// CleanupSandboxConnectivity releases reservation-level connectivity.
func (c *RealClient) CleanupSandboxConnectivity(ctx context.Context, reservationID string) error {
	path := "/reservations/" + url.PathEscape(reservationID) + "/connectivity/cleanup"
	if err := c.do(ctx, "cleanup_connectivity", http.MethodPost, path, nil, nil); err != nil {
		return fmt.Errorf("failed to cleanup connectivity: %w", err)
	}
	return nil
}

// do sends one request and decodes the response into dest when dest is not nil.
// Non-2xx responses are returned as *APIError.
func (c *RealClient) do(ctx context.Context, operation, method, path string, body, dest any) (err error) {
	start := time.Now()
	defer func() { recordAPICall(operation, err, time.Since(start)) }()

	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to marshal request: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+apiBasePath+path, reader)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	requestID := uuid.NewString()
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-Id", requestID)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}
	if c.domain != "" {
		req.Header.Set("X-Domain", c.domain)
	}

	c.log.V(1).Info("api request", "operation", operation, "method", method, "path", path, "requestID", requestID)

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return decodeError(resp)
	}

	if dest == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}

	if err := json.NewDecoder(resp.Body).Decode(dest); err != nil {
		return fmt.Errorf("failed to decode %s response: %w", operation, err)
	}
	return nil
}

// decodeError turns a non-2xx response into an *APIError. The error code may
// be sent as a JSON string or number.
func decodeError(resp *http.Response) error {
	data, err := io.ReadAll(resp.Body)
	if err != nil || len(bytes.TrimSpace(data)) == 0 {
		return newStatusError(resp.StatusCode)
	}

	var body errorResponse
	if err := json.Unmarshal(data, &body); err != nil {
		return newStatusError(resp.StatusCode)
	}

	code := parseErrorCode(body.ErrorCode)
	if code == "" {
		apiErr := newStatusError(resp.StatusCode)
		if body.Message != "" {
			apiErr.Message = body.Message
		}
		return apiErr
	}

	return &APIError{
		StatusCode: resp.StatusCode,
		Code:       code,
		Message:    body.Message,
	}
}

func parseErrorCode(raw json.RawMessage) ErrorCode {
	if len(raw) == 0 || string(raw) == "null" {
		return ""
	}

	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return ErrorCode(s)
	}

	var n json.Number
	if err := json.Unmarshal(raw, &n); err == nil {
		return ErrorCode(n.String())
	}
	return ""
}

// compile-time check
var _ API = (*RealClient)(nil)
