// Package client provides an HTTP client for the visitor-log REST API.
package client

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/evcraddock/visitor-log/internal/visitor"
)

// Client is an HTTP client for the visitor API.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// New creates a new API client.
func New(baseURL string) *Client {
	return &Client{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
}

// ListResponse is the response from GET /api/visitors.
type ListResponse struct {
	Query    string             `json:"query,omitempty"`
	Total    int64              `json:"total"`
	Visitors []*visitor.Visitor `json:"visitors"`
}

// ListVisitors returns one page of visitors, newest first.
func (c *Client) ListVisitors(limit, offset int) (*ListResponse, error) {
	path := "/api/visitors"
	if limit > 0 {
		path += fmt.Sprintf("?limit=%d&offset=%d", limit, offset)
	}

	var resp ListResponse
	if err := c.get(path, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// GetVisitor returns one visitor by ID.
func (c *Client) GetVisitor(id int64) (*visitor.Visitor, error) {
	var v visitor.Visitor
	if err := c.get(fmt.Sprintf("/api/visitors/%d", id), &v); err != nil {
		return nil, err
	}
	return &v, nil
}

// CreateVisitor records a check-in on the server, which triggers the
// admin notification.
func (c *Client) CreateVisitor(req visitor.CreateVisitorRequest) (*visitor.Visitor, error) {
	var v visitor.Visitor
	if err := c.post("/api/visitors", req, &v); err != nil {
		return nil, err
	}
	return &v, nil
}

// DeleteVisitor removes a visitor record.
func (c *Client) DeleteVisitor(id int64) error {
	return c.doDelete(fmt.Sprintf("/api/visitors/%d", id))
}

// SearchVisitors returns visitors matching the query.
func (c *Client) SearchVisitors(query string) (*ListResponse, error) {
	var resp ListResponse
	if err := c.get("/api/visitors/search/"+url.PathEscape(query), &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// GetStats returns the aggregate visitor statistics.
func (c *Client) GetStats() (*visitor.Stats, error) {
	var stats visitor.Stats
	if err := c.get("/api/stats", &stats); err != nil {
		return nil, err
	}
	return &stats, nil
}

// get performs a GET request and decodes the response.
func (c *Client) get(path string, result interface{}) error {
	req, err := http.NewRequest("GET", c.baseURL+path, nil)
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}
	return c.do(req, result)
}

// post performs a POST request with a JSON body and decodes the response.
func (c *Client) post(path string, body interface{}, result interface{}) error {
	data, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("marshaling request: %w", err)
	}

	req, err := http.NewRequest("POST", c.baseURL+path, bytes.NewReader(data))
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	return c.do(req, result)
}

// doDelete performs a DELETE request.
func (c *Client) doDelete(path string) error {
	req, err := http.NewRequest("DELETE", c.baseURL+path, nil)
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}
	return c.do(req, nil)
}

// do executes an HTTP request and handles error responses.
func (c *Client) do(req *http.Request, result interface{}) error {
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer func() {
		if cerr := resp.Body.Close(); cerr != nil {
			fmt.Printf("warning: closing response body: %v\n", cerr)
		}
	}()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("reading response: %w", err)
	}

	if resp.StatusCode >= 400 {
		var errResp struct {
			Error string `json:"error"`
		}
		if json.Unmarshal(respBody, &errResp) == nil && errResp.Error != "" {
			return fmt.Errorf("%s", errResp.Error)
		}
		return fmt.Errorf("server error: %s", http.StatusText(resp.StatusCode))
	}

	if result != nil && len(respBody) > 0 {
		if err := json.Unmarshal(respBody, result); err != nil {
			return fmt.Errorf("decoding response: %w", err)
		}
	}

	return nil
}
