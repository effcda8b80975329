// Package client is a Go client for the mentor directory HTTP API.
//
// A Client holds at most one admin session token. Login and Refresh replace
// it; Logout only forgets it, the token stays valid until it expires.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/sikhmentors/directory-api/internal/models"
	apperrors "github.com/sikhmentors/directory-api/pkg/errors"
	"github.com/sikhmentors/directory-api/pkg/httpclient"
)

// APIError is a non-2xx response from the API
type APIError struct {
	StatusCode int
	Message    string
	Details    json.RawMessage
}

func (e *APIError) Error() string {
	if len(e.Details) > 0 {
		return fmt.Sprintf("api error %d: %s: %s", e.StatusCode, e.Message, e.Details)
	}
	return fmt.Sprintf("api error %d: %s", e.StatusCode, e.Message)
}

// Client calls the directory API
type Client struct {
	baseURL string
	http    httpclient.Client

	mu    sync.RWMutex
	token string
}

// Option configures a Client
type Option func(*Client)

// WithHTTPClient replaces the default 30s-timeout HTTP client
func WithHTTPClient(hc httpclient.Client) Option {
	return func(c *Client) { c.http = hc }
}

// WithToken starts the client with an existing session token
func WithToken(token string) Option {
	return func(c *Client) { c.token = token }
}

// New creates a client for the API rooted at baseURL (e.g. http://localhost:8080)
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    httpclient.New(30 * time.Second),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Token returns the current session token, if any
func (c *Client) Token() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.token
}

func (c *Client) setToken(token string) {
	c.mu.Lock()
	c.token = token
	c.mu.Unlock()
}

// Logout discards the session token locally
func (c *Client) Logout() {
	c.setToken("")
}

// Login exchanges admin credentials for a session token and keeps it
func (c *Client) Login(ctx context.Context, email, password string) (*models.TokenResponse, error) {
	var resp models.TokenResponse
	err := c.doJSON(ctx, http.MethodPost, "/api/admin/login", nil, models.LoginRequest{Email: email, Password: password}, &resp)
	if err != nil {
		return nil, err
	}
	c.setToken(resp.Token)
	return &resp, nil
}

// Refresh swaps the current token for one with a fresh expiry
func (c *Client) Refresh(ctx context.Context) (*models.TokenResponse, error) {
	var resp models.TokenResponse
	if err := c.doJSON(ctx, http.MethodPost, "/api/admin/refresh", nil, nil, &resp); err != nil {
		return nil, err
	}
	c.setToken(resp.Token)
	return &resp, nil
}

// Session returns the claims of the current token as seen by the server
func (c *Client) Session(ctx context.Context) (*models.AdminSession, error) {
	var resp models.SessionResponse
	if err := c.doJSON(ctx, http.MethodGet, "/api/admin/session", nil, nil, &resp); err != nil {
		return nil, err
	}
	return resp.Session, nil
}

// ListMentors returns the public listing
func (c *Client) ListMentors(ctx context.Context, filter models.MentorFilter) ([]models.PublicMentor, error) {
	var mentors []models.PublicMentor
	if err := c.doJSON(ctx, http.MethodGet, "/api/mentors", filter.Query(), nil, &mentors); err != nil {
		return nil, err
	}
	return mentors, nil
}

// ListMentorsAdmin returns full records, including email. Requires a session.
func (c *Client) ListMentorsAdmin(ctx context.Context, filter models.MentorFilter) ([]models.Mentor, error) {
	var mentors []models.Mentor
	if err := c.doJSON(ctx, http.MethodGet, "/api/admin/mentors", filter.Query(), nil, &mentors); err != nil {
		return nil, err
	}
	return mentors, nil
}

// GetMentor finds one mentor in the public listing. The API has no
// fetch-by-id route, so this downloads the whole directory.
func (c *Client) GetMentor(ctx context.Context, id int64) (*models.PublicMentor, error) {
	mentors, err := c.ListMentors(ctx, models.MentorFilter{})
	if err != nil {
		return nil, err
	}
	for i := range mentors {
		if mentors[i].ID == id {
			return &mentors[i], nil
		}
	}
	return nil, fmt.Errorf("mentor %d: %w", id, apperrors.ErrNotFound)
}

// CreateMentor inserts a mentor and returns its id
func (c *Client) CreateMentor(ctx context.Context, in *models.MentorInput) (int64, error) {
	var resp models.MessageResponse
	if err := c.doJSON(ctx, http.MethodPost, "/api/mentors", nil, in, &resp); err != nil {
		return 0, err
	}
	if resp.ID == nil {
		return 0, nil
	}
	return *resp.ID, nil
}

// UpdateMentor replaces every field of mentor id
func (c *Client) UpdateMentor(ctx context.Context, id int64, in *models.MentorInput) error {
	return c.doJSON(ctx, http.MethodPut, mentorPath(id), nil, in, nil)
}

// DeleteMentor removes mentor id
func (c *Client) DeleteMentor(ctx context.Context, id int64) error {
	return c.doJSON(ctx, http.MethodDelete, mentorPath(id), nil, nil, nil)
}

// Contact relays a visitor message to mentor id
func (c *Client) Contact(ctx context.Context, id int64, msg *models.ContactMessage) error {
	return c.doJSON(ctx, http.MethodPost, mentorPath(id)+"/contact", nil, msg, nil)
}

// UploadImage sends an image and returns the URL to store as photo_url
func (c *Client) UploadImage(ctx context.Context, filename string, image io.Reader) (string, error) {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	part, err := mw.CreateFormFile("image", filename)
	if err != nil {
		return "", fmt.Errorf("failed to build upload form: %w", err)
	}
	if _, err := io.Copy(part, image); err != nil {
		return "", fmt.Errorf("failed to read image: %w", err)
	}
	if err := mw.Close(); err != nil {
		return "", fmt.Errorf("failed to build upload form: %w", err)
	}

	req, err := c.newRequest(ctx, http.MethodPost, "/api/upload", nil, &buf)
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())

	var resp models.UploadResponse
	if err := c.do(req, &resp); err != nil {
		return "", err
	}
	return resp.ImageURL, nil
}

func mentorPath(id int64) string {
	return "/api/mentors/" + strconv.FormatInt(id, 10)
}

func (c *Client) newRequest(ctx context.Context, method, path string, query url.Values, body io.Reader) (*http.Request, error) {
	target := c.baseURL + path
	if len(query) > 0 {
		target += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, method, target, body)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if token := c.Token(); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	return req, nil
}

func (c *Client) doJSON(ctx context.Context, method, path string, query url.Values, in, out any) error {
	var body io.Reader
	if in != nil {
		data, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("failed to encode request: %w", err)
		}
		body = bytes.NewReader(data)
	}

	req, err := c.newRequest(ctx, method, path, query, body)
	if err != nil {
		return err
	}
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	return c.do(req, out)
}

func (c *Client) do(req *http.Request, out any) error {
	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", req.Method, req.URL.Path, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return decodeAPIError(resp.StatusCode, data)
	}

	if out == nil || len(data) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}

func decodeAPIError(status int, data []byte) error {
	apiErr := &APIError{StatusCode: status}

	var body struct {
		Error   string          `json:"error"`
		Details json.RawMessage `json:"details"`
	}
	if err := json.Unmarshal(data, &body); err == nil && body.Error != "" {
		apiErr.Message = body.Error
		apiErr.Details = body.Details
		return apiErr
	}

	apiErr.Message = strings.TrimSpace(string(data))
	if apiErr.Message == "" {
		apiErr.Message = http.StatusText(status)
	}
	return apiErr
}
