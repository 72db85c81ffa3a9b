package api

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/google/uuid"

	"github.com/quillbox/quill-cli/internal/models"
)

// DefaultBaseURL points at a locally running Quillbox API.
const DefaultBaseURL = "http://127.0.0.1:5000/api"

// Client is a thin typed wrapper over the Quillbox REST API.
type Client struct {
	BaseURL    string
	HTTPClient *http.Client
	Token      string
}

// NewClient creates a new API client. An empty baseURL selects the default.
func NewClient(baseURL string) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}

	return &Client{
		BaseURL: baseURL,
		HTTPClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// SetToken sets the bearer token used on all subsequent requests.
func (c *Client) SetToken(token string) {
	c.Token = token
}

// makeRequest makes an HTTP request, decodes a JSON response into out when
// out is non-nil, and maps any non-2xx response to an *Error.
func (c *Client) makeRequest(method, endpoint string, body, out interface{}) error {
	url := c.BaseURL + endpoint

	var reqBody io.Reader
	if body != nil {
		jsonBody, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to marshal request body: %w", err)
		}
		reqBody = bytes.NewBuffer(jsonBody)
	}

	req, err := http.NewRequest(method, url, reqBody)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("X-Request-ID", uuid.NewString())

	if c.Token != "" {
		req.Header.Set("Authorization", "Bearer "+c.Token)
	}

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response body: %w", err)
	}

	if resp.StatusCode >= 400 {
		return newError(resp.StatusCode, respBody)
	}

	if out != nil {
		if err := json.Unmarshal(respBody, out); err != nil {
			return fmt.Errorf("failed to unmarshal response: %w", err)
		}
	}

	return nil
}

// AuthResponse is the payload returned by login and register.
type AuthResponse struct {
	Token string      `json:"token"`
	User  models.User `json:"user"`
}

// Login exchanges credentials for a token and the user record.
func (c *Client) Login(email, password string) (*AuthResponse, error) {
	reqBody := map[string]string{
		"email":    email,
		"password": password,
	}

	var resp AuthResponse
	if err := c.makeRequest("POST", "/auth/login", reqBody, &resp); err != nil {
		return nil, err
	}

	return &resp, nil
}

// Register creates an account and returns a token and the user record.
func (c *Client) Register(name, email, password string) (*AuthResponse, error) {
	reqBody := map[string]string{
		"name":     name,
		"email":    email,
		"password": password,
	}

	var resp AuthResponse
	if err := c.makeRequest("POST", "/auth/register", reqBody, &resp); err != nil {
		return nil, err
	}

	return &resp, nil
}

// Me resolves the user behind the current token.
func (c *Client) Me() (*models.User, error) {
	var resp struct {
		User models.User `json:"user"`
	}
	if err := c.makeRequest("GET", "/auth/me", nil, &resp); err != nil {
		return nil, err
	}

	return &resp.User, nil
}

// ListNotesOptions are the server-side list parameters. The zero value lists
// everything in the server's default order.
type ListNotesOptions struct {
	SortBy string // created_date, last_modified or title
	Order  string // asc or desc
}

// ListNotes fetches all notes for the current user, tags embedded.
func (c *Client) ListNotes(opts ListNotesOptions) ([]models.Note, error) {
	endpoint := "/notes"
	params := url.Values{}
	if opts.SortBy != "" {
		params.Add("sort_by", opts.SortBy)
	}
	if opts.Order != "" {
		params.Add("order", opts.Order)
	}
	if len(params) > 0 {
		endpoint += "?" + params.Encode()
	}

	var resp struct {
		Notes []models.Note `json:"notes"`
	}
	if err := c.makeRequest("GET", endpoint, nil, &resp); err != nil {
		return nil, err
	}

	return resp.Notes, nil
}

// GetNote fetches a single note by ID.
func (c *Client) GetNote(id int64) (*models.Note, error) {
	var resp struct {
		Note models.Note `json:"note"`
	}
	if err := c.makeRequest("GET", "/notes/"+strconv.FormatInt(id, 10), nil, &resp); err != nil {
		return nil, err
	}

	return &resp.Note, nil
}

// CreateNote creates a note and returns the server's view of it.
func (c *Client) CreateNote(title, content string, tagIDs []int64) (*models.Note, error) {
	reqBody := map[string]interface{}{
		"title":   title,
		"content": content,
		"tag_ids": tagIDs,
	}

	var resp struct {
		Note models.Note `json:"note"`
	}
	if err := c.makeRequest("POST", "/notes", reqBody, &resp); err != nil {
		return nil, err
	}

	return &resp.Note, nil
}

// UpdateNote replaces a note's title, content and tag set.
func (c *Client) UpdateNote(id int64, title, content string, tagIDs []int64) (*models.Note, error) {
	reqBody := map[string]interface{}{
		"title":   title,
		"content": content,
		"tag_ids": tagIDs,
	}

	var resp struct {
		Note models.Note `json:"note"`
	}
	if err := c.makeRequest("PUT", "/notes/"+strconv.FormatInt(id, 10), reqBody, &resp); err != nil {
		return nil, err
	}

	return &resp.Note, nil
}

// UpdateNoteStatus issues a partial update of only the status field.
func (c *Client) UpdateNoteStatus(id int64, status models.Status) error {
	reqBody := map[string]string{
		"status": string(status),
	}

	return c.makeRequest("PATCH", "/notes/"+strconv.FormatInt(id, 10)+"/status", reqBody, nil)
}

// DeleteNote permanently deletes a note.
func (c *Client) DeleteNote(id int64) error {
	return c.makeRequest("DELETE", "/notes/"+strconv.FormatInt(id, 10), nil, nil)
}

// ListTags fetches the flat tag catalog.
func (c *Client) ListTags() ([]models.Tag, error) {
	var resp struct {
		Tags []models.Tag `json:"tags"`
	}
	if err := c.makeRequest("GET", "/tags", nil, &resp); err != nil {
		return nil, err
	}

	return resp.Tags, nil
}

// GetStats fetches the aggregate note/tag counters for a user.
func (c *Client) GetStats(userID int64) (*models.UserStats, error) {
	var resp struct {
		Stats models.UserStats `json:"stats"`
	}
	endpoint := "/users/" + strconv.FormatInt(userID, 10) + "/stats"
	if err := c.makeRequest("GET", endpoint, nil, &resp); err != nil {
		return nil, err
	}

	return &resp.Stats, nil
}

// GetUser fetches a user's profile. Only the current user is authorized.
func (c *Client) GetUser(id int64) (*models.User, error) {
	var resp struct {
		User models.User `json:"user"`
	}
	if err := c.makeRequest("GET", "/users/"+strconv.FormatInt(id, 10), nil, &resp); err != nil {
		return nil, err
	}

	return &resp.User, nil
}

// UpdateUser updates the given profile fields (name, email, password).
func (c *Client) UpdateUser(id int64, fields map[string]interface{}) (*models.User, error) {
	var resp struct {
		User models.User `json:"user"`
	}
	if err := c.makeRequest("PUT", "/users/"+strconv.FormatInt(id, 10), fields, &resp); err != nil {
		return nil, err
	}

	return &resp.User, nil
}

// DeleteUser permanently deletes the account and everything under it.
func (c *Client) DeleteUser(id int64) error {
	return c.makeRequest("DELETE", "/users/"+strconv.FormatInt(id, 10), nil, nil)
}
