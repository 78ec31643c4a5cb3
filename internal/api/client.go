// Package api is the client for the local matrix service.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"matrixdesk/internal/matrix"
)

// DefaultEndpoint is where the service listens unless configured otherwise.
const DefaultEndpoint = "http://127.0.0.1:11459"

const (
	inputPath  = "/api/matrix/input"
	getPath    = "/api/matrix/get/"
	healthPath = "/health"
)

// SubmitRequest is the JSON body of a matrix submission.
type SubmitRequest struct {
	ID   int     `json:"id"`
	Name string  `json:"name"`
	Rows int     `json:"rows"`
	Cols int     `json:"cols"`
	Data [][]int `json:"data"`
}

// Response is the envelope every service endpoint answers with.
type Response struct {
	Success bool           `json:"success"`
	Message string         `json:"message,omitempty"`
	Error   string         `json:"error,omitempty"`
	Matrix  *matrix.Record `json:"matrix,omitempty"`
}

// ServiceError is an answer with success=false.
type ServiceError struct {
	Message string
}

func (e *ServiceError) Error() string {
	if e.Message == "" {
		return "unknown error"
	}
	return e.Message
}

// NetworkError is a failure to reach the service or to read its answer.
type NetworkError struct {
	Op  string
	Err error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *NetworkError) Unwrap() error {
	return e.Err
}

// Client talks to the service over HTTP.
type Client struct {
	baseURL string
	http    *http.Client
}

// NewClient creates a client for endpoint. The http.Client carries no
// timeout of its own: a submission runs to completion or failure even
// after the caller's timeout warning has fired.
func NewClient(endpoint string) *Client {
	if endpoint == "" {
		endpoint = DefaultEndpoint
	}
	return &Client{
		baseURL: strings.TrimRight(endpoint, "/"),
		http:    &http.Client{},
	}
}

// Endpoint returns the base URL.
func (c *Client) Endpoint() string {
	return c.baseURL
}

// Submit posts a matrix. A success=false answer is returned as *ServiceError,
// transport and decoding failures as *NetworkError.
func (c *Client) Submit(ctx context.Context, req SubmitRequest) (Response, error) {
	body, err := json.Marshal(req)
	if err != nil {
		return Response{}, fmt.Errorf("encode submission: %w", err)
	}
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+inputPath, bytes.NewReader(body))
	if err != nil {
		return Response{}, &NetworkError{Op: "build request", Err: err}
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.do(httpReq)
	if err != nil {
		return Response{}, err
	}
	if !resp.Success {
		return resp, &ServiceError{Message: resp.Error}
	}
	return resp, nil
}

// GetMatrix fetches the record stored in slot id.
func (c *Client) GetMatrix(ctx context.Context, id string) (matrix.Record, error) {
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+getPath+url.PathEscape(id), nil)
	if err != nil {
		return matrix.Record{}, &NetworkError{Op: "build request", Err: err}
	}
	resp, err := c.do(httpReq)
	if err != nil {
		return matrix.Record{}, err
	}
	if !resp.Success {
		return matrix.Record{}, &ServiceError{Message: resp.Error}
	}
	if resp.Matrix == nil {
		return matrix.Record{}, &ServiceError{Message: "response carried no matrix"}
	}
	rec := *resp.Matrix
	if err := rec.Validate(); err != nil {
		return matrix.Record{}, fmt.Errorf("matrix %s: %w", id, err)
	}
	return rec, nil
}

// Health probes the service with a short deadline.
func (c *Client) Health(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+healthPath, nil)
	if err != nil {
		return &NetworkError{Op: "build request", Err: err}
	}
	res, err := c.http.Do(httpReq)
	if err != nil {
		return &NetworkError{Op: "health", Err: err}
	}
	defer res.Body.Close()
	io.Copy(io.Discard, res.Body)
	if res.StatusCode != http.StatusOK {
		return &ServiceError{Message: fmt.Sprintf("health check returned %s", res.Status)}
	}
	return nil
}

// do sends the request and decodes the envelope. Non-2xx statuses still
// carry a JSON envelope, so the body is decoded regardless of status.
func (c *Client) do(req *http.Request) (Response, error) {
	res, err := c.http.Do(req)
	if err != nil {
		return Response{}, &NetworkError{Op: "send", Err: err}
	}
	defer res.Body.Close()

	var out Response
	if err := json.NewDecoder(res.Body).Decode(&out); err != nil {
		return Response{}, &NetworkError{Op: "decode response", Err: fmt.Errorf("%s: %w", res.Status, err)}
	}
	return out, nil
}
