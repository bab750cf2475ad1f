// Package client is a small HTTP client for the feedesk API, used by feedeskctl.
package client

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

	"feedesk/internal/audit"
	"feedesk/internal/models"
)

type Client struct {
	BaseURL string
	Token   string
	HTTP    *http.Client
}

func New(baseURL, token string) *Client {
	return &Client{
		BaseURL: strings.TrimRight(baseURL, "/"),
		Token:   token,
		HTTP:    &http.Client{Timeout: 15 * time.Second},
	}
}

// APIError is a non-2xx response decoded from the error envelope.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("status %d: %s", e.StatusCode, e.Message)
}

type envelope struct {
	Status     string          `json:"status"`
	StatusCode int             `json:"statusCode"`
	Message    string          `json:"message"`
	Data       json.RawMessage `json:"data"`
	Warnings   []string        `json:"warnings"`
}

// Result carries the envelope message and warnings of a successful call.
type Result struct {
	Message  string
	Warnings []string
}

func (c *Client) do(ctx context.Context, method, path string, payload, out interface{}) (*Result, error) {
	var body io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return nil, err
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.BaseURL+path, body)
	if err != nil {
		return nil, err
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.Token != "" {
		req.Header.Set("Authorization", "Bearer "+c.Token)
	}

	httpClient := c.HTTP
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	resp, err := httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	var env envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		if resp.StatusCode >= http.StatusBadRequest {
			return nil, &APIError{StatusCode: resp.StatusCode, Message: strings.TrimSpace(string(raw))}
		}
		return nil, fmt.Errorf("decode response: %w", err)
	}
	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return nil, &APIError{StatusCode: resp.StatusCode, Message: env.Message}
	}

	if out != nil && len(env.Data) > 0 {
		if err := json.Unmarshal(env.Data, out); err != nil {
			return nil, fmt.Errorf("decode data: %w", err)
		}
	}
	return &Result{Message: env.Message, Warnings: env.Warnings}, nil
}

type LoginResult struct {
	Token string       `json:"token"`
	User  *models.User `json:"user"`
}

// Login exchanges credentials for a token and keeps it on c.
func (c *Client) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	var out LoginResult
	_, err := c.do(ctx, http.MethodPost, "/api/auth/login", map[string]string{
		"email":    email,
		"password": password,
	}, &out)
	if err != nil {
		return nil, err
	}
	if out.Token == "" {
		return nil, fmt.Errorf("login succeeded but no token returned")
	}
	c.Token = out.Token
	return &out, nil
}

func (c *Client) ListAudit(ctx context.Context, filter string) ([]models.AuditLog, error) {
	path := "/api/audit"
	if filter != "" {
		path += "?q=" + url.QueryEscape(filter)
	}
	var out []models.AuditLog
	if _, err := c.do(ctx, http.MethodGet, path, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// AuditDetail is an entry together with its expanded field rows.
type AuditDetail struct {
	models.AuditLog
	Fields []audit.FieldRow `json:"fields"`
}

func (c *Client) GetAudit(ctx context.Context, id string) (*AuditDetail, error) {
	var out AuditDetail
	if _, err := c.do(ctx, http.MethodGet, "/api/audit/"+url.PathEscape(id), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) DeleteAudit(ctx context.Context, id string) (*models.AuditLog, error) {
	var out models.AuditLog
	if _, err := c.do(ctx, http.MethodDelete, "/api/audit/"+url.PathEscape(id), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) ListPayments(ctx context.Context) ([]models.Payment, error) {
	var out []models.Payment
	if _, err := c.do(ctx, http.MethodGet, "/api/payments", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// UpdatePayment sends a partial update. The returned Result carries any
// audit warnings the server attached.
func (c *Client) UpdatePayment(ctx context.Context, id string, fields map[string]interface{}) (*models.Payment, *Result, error) {
	var out models.Payment
	res, err := c.do(ctx, http.MethodPatch, "/api/payments/"+url.PathEscape(id), fields, &out)
	if err != nil {
		return nil, nil, err
	}
	return &out, res, nil
}

func (c *Client) DeletePayment(ctx context.Context, id string) (*Result, error) {
	return c.do(ctx, http.MethodDelete, "/api/payments/"+url.PathEscape(id), nil, nil)
}
