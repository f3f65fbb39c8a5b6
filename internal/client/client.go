// Package client is a thin JSON client for the pulseboard API, used by
// tooling and tests. Calls take a context and make exactly one attempt; there
// is no retry or backoff.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"sync/atomic"
	"time"
)

var (
	// ErrSessionExpired is returned on any 401. The stored token has already
	// been cleared when the caller sees it.
	ErrSessionExpired = errors.New("session expired")

	// ErrStaleResponse marks a status response that was superseded by a
	// newer request before it resolved. The caller should discard it.
	ErrStaleResponse = errors.New("stale response superseded by a newer request")
)

// APIError carries a non-2xx response's status and server message.
type APIError struct {
	StatusCode int
	Message    string
}

func (apiErr *APIError) Error() string {
	return fmt.Sprintf("api error %d: %s", apiErr.StatusCode, apiErr.Message)
}

type Client struct {
	baseURL    string
	httpClient *http.Client
	session    SessionStore

	// statusSeq tags every status fetch; statusApplied records the newest
	// sequence whose response has been accepted. Responses arriving for an
	// older sequence are rejected so rapid date changes cannot apply
	// out-of-order data.
	statusSeq     atomic.Uint64
	statusApplied atomic.Uint64
}

func New(baseURL string, session SessionStore) *Client {
	if session == nil {
		session = NewMemorySessionStore()
	}
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: 30 * time.Second},
		session:    session,
	}
}

type LoginResult struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

// Login authenticates and stores the returned token in the session store.
func (c *Client) Login(ctx context.Context, username string, password string, rememberMe bool) (LoginResult, error) {
	payload := map[string]any{
		"username":    username,
		"password":    password,
		"remember_me": rememberMe,
	}
	result := LoginResult{}
	if err := c.doJSON(ctx, http.MethodPost, "/api/auth/login", nil, payload, &result); err != nil {
		return LoginResult{}, err
	}
	c.session.SetToken(result.AccessToken)
	return result, nil
}

// Logout tells the server and clears the local session either way.
func (c *Client) Logout(ctx context.Context) error {
	err := c.doJSON(ctx, http.MethodPost, "/api/auth/logout", nil, nil, nil)
	c.session.Clear()
	if errors.Is(err, ErrSessionExpired) {
		return nil
	}
	return err
}

func (c *Client) CheckUser(ctx context.Context, username string) (bool, error) {
	payload := map[string]any{"username": username}
	err := c.doJSON(ctx, http.MethodPost, "/api/auth/check-user", nil, payload, nil)
	var apiErr *APIError
	if errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusNotFound {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

func (c *Client) ResetPassword(ctx context.Context, username string, newPassword string) error {
	payload := map[string]any{"username": username, "new_password": newPassword}
	return c.doJSON(ctx, http.MethodPost, "/api/auth/reset-password", nil, payload, nil)
}

// FetchPasswordRequirements returns the policy lines shown on the signup and
// reset forms. The endpoint is public.
func (c *Client) FetchPasswordRequirements(ctx context.Context) ([]string, error) {
	result := struct {
		Requirements []string `json:"requirements"`
	}{}
	if err := c.doJSON(ctx, http.MethodGet, "/api/auth/password-requirements", nil, nil, &result); err != nil {
		return nil, err
	}
	return result.Requirements, nil
}

type Profile struct {
	ID       uint   `json:"id"`
	Email    string `json:"email"`
	FullName string `json:"full_name"`
	Nickname string `json:"nickname"`
	Role     string `json:"role"`
}

func (c *Client) Profile(ctx context.Context) (Profile, error) {
	profile := Profile{}
	err := c.doJSON(ctx, http.MethodGet, "/api/auth/profile", nil, nil, &profile)
	return profile, err
}

func (c *Client) UpdateProfile(ctx context.Context, fullName string, nickname string) (Profile, error) {
	payload := map[string]any{"full_name": fullName, "nickname": nickname}
	profile := Profile{}
	err := c.doJSON(ctx, http.MethodPut, "/api/auth/profile", nil, payload, &profile)
	return profile, err
}

func (c *Client) ChangePassword(ctx context.Context, currentPassword string, newPassword string) error {
	payload := map[string]any{
		"current_password": currentPassword,
		"new_password":     newPassword,
	}
	return c.doJSON(ctx, http.MethodPut, "/api/auth/profile/password", nil, payload, nil)
}

type StatusPage struct {
	Date       string                       `json:"date"`
	Data       []map[string]json.RawMessage `json:"data"`
	Columns    []string                     `json:"columns"`
	TotalUsers int                          `json:"total_users"`
	TotalPages int                          `json:"total_pages"`
	Page       int                          `json:"page"`
	PageSize   int                          `json:"page_size"`
}

type StatusQuery struct {
	Date     string
	Status   string
	Search   string
	Page     int
	PageSize int
}

func (query StatusQuery) values() url.Values {
	values := url.Values{}
	if query.Date != "" {
		values.Set("date", query.Date)
	}
	if query.Status != "" {
		values.Set("status", query.Status)
	}
	if query.Search != "" {
		values.Set("search", query.Search)
	}
	if query.Page > 0 {
		values.Set("page", strconv.Itoa(query.Page))
	}
	if query.PageSize > 0 {
		values.Set("page_size", strconv.Itoa(query.PageSize))
	}
	return values
}

// FetchSyncStatus fetches a sync-status page. When several fetches race, only
// the most recently issued one's response is accepted; superseded calls
// return ErrStaleResponse.
func (c *Client) FetchSyncStatus(ctx context.Context, query StatusQuery) (StatusPage, error) {
	return c.fetchStatusPage(ctx, "/api/sync-status", query)
}

// FetchUserVitals behaves like FetchSyncStatus for the vitals table.
func (c *Client) FetchUserVitals(ctx context.Context, query StatusQuery) (StatusPage, error) {
	return c.fetchStatusPage(ctx, "/api/user-vitals", query)
}

func (c *Client) fetchStatusPage(ctx context.Context, path string, query StatusQuery) (StatusPage, error) {
	seq := c.statusSeq.Add(1)

	page := StatusPage{}
	if err := c.doJSON(ctx, http.MethodGet, path, query.values(), nil, &page); err != nil {
		return StatusPage{}, err
	}
	if !c.claimStatusSequence(seq) {
		return StatusPage{}, ErrStaleResponse
	}
	return page, nil
}

// claimStatusSequence accepts seq only while no newer sequence has already
// been applied.
func (c *Client) claimStatusSequence(seq uint64) bool {
	for {
		applied := c.statusApplied.Load()
		if seq <= applied {
			return false
		}
		if c.statusApplied.CompareAndSwap(applied, seq) {
			return true
		}
	}
}

type DailySummary struct {
	Date                 string `json:"date"`
	TotalUsers           int    `json:"total_users"`
	SuccessfulIngestions int    `json:"successful_ingestions"`
	MissingIngestions    int    `json:"missing_ingestions"`
}

type RangeSummary struct {
	Mode                 string         `json:"mode"`
	StartDate            string         `json:"start_date"`
	EndDate              string         `json:"end_date"`
	Days                 []DailySummary `json:"days"`
	TotalUsers           int            `json:"total_users"`
	SuccessfulIngestions int            `json:"successful_ingestions"`
	MissingIngestions    int            `json:"missing_ingestions"`
	HighlightDates       []string       `json:"highlight_dates"`
}

func (c *Client) FetchSummary(ctx context.Context, date string) (DailySummary, error) {
	values := url.Values{}
	if date != "" {
		values.Set("date", date)
	}
	summary := DailySummary{}
	err := c.doJSON(ctx, http.MethodGet, "/api/summary", values, nil, &summary)
	return summary, err
}

func (c *Client) FetchWeeklySummary(ctx context.Context, date string) (RangeSummary, error) {
	return c.fetchRangeSummary(ctx, "/api/summary/weekly", date)
}

func (c *Client) FetchMonthlySummary(ctx context.Context, date string) (RangeSummary, error) {
	return c.fetchRangeSummary(ctx, "/api/summary/monthly", date)
}

func (c *Client) fetchRangeSummary(ctx context.Context, path string, date string) (RangeSummary, error) {
	values := url.Values{}
	if date != "" {
		values.Set("date", date)
	}
	summary := RangeSummary{}
	err := c.doJSON(ctx, http.MethodGet, path, values, nil, &summary)
	return summary, err
}

// ExportSummary downloads the per-day summary CSV for the view (day, week,
// or month) around the date.
func (c *Client) ExportSummary(ctx context.Context, date string, view string) ([]byte, error) {
	values := url.Values{}
	if date != "" {
		values.Set("date", date)
	}
	if view != "" {
		values.Set("view", view)
	}
	return c.doRaw(ctx, http.MethodGet, "/api/summary/export", values)
}

type Settings struct {
	UserCountLogic  string `json:"user_count_logic"`
	CustomUserCount *int   `json:"custom_user_count"`
	Theme           string `json:"theme"`
}

func (c *Client) FetchSettings(ctx context.Context) (Settings, error) {
	settings := Settings{}
	err := c.doJSON(ctx, http.MethodGet, "/api/user-settings", nil, nil, &settings)
	return settings, err
}

func (c *Client) SaveSettings(ctx context.Context, settings Settings) (Settings, error) {
	saved := Settings{}
	err := c.doJSON(ctx, http.MethodPost, "/api/user-settings", nil, settings, &saved)
	return saved, err
}

// doJSON performs one request. The bearer token, when present, is attached
// to every call; a 401 clears the session before returning ErrSessionExpired.
func (c *Client) doJSON(ctx context.Context, method string, path string, query url.Values, payload any, out any) error {
	endpoint := c.baseURL + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	var body io.Reader
	if payload != nil {
		encoded, err := json.Marshal(payload)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		body = bytes.NewReader(encoded)
	}

	request, err := http.NewRequestWithContext(ctx, method, endpoint, body)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	request.Header.Set("Accept", "application/json")
	if payload != nil {
		request.Header.Set("Content-Type", "application/json")
	}
	if token, ok := c.session.Token(); ok {
		request.Header.Set("Authorization", "Bearer "+token)
	}

	response, err := c.httpClient.Do(request)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer response.Body.Close()

	if response.StatusCode == http.StatusUnauthorized {
		c.session.Clear()
		return ErrSessionExpired
	}
	if response.StatusCode < 200 || response.StatusCode > 299 {
		return &APIError{StatusCode: response.StatusCode, Message: readErrorMessage(response.Body)}
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(response.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

// doRaw is doJSON for non-JSON downloads: same token attachment and error
// semantics, body returned as-is.
func (c *Client) doRaw(ctx context.Context, method string, path string, query url.Values) ([]byte, error) {
	endpoint := c.baseURL + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	request, err := http.NewRequestWithContext(ctx, method, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	if token, ok := c.session.Token(); ok {
		request.Header.Set("Authorization", "Bearer "+token)
	}

	response, err := c.httpClient.Do(request)
	if err != nil {
		return nil, fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer response.Body.Close()

	if response.StatusCode == http.StatusUnauthorized {
		c.session.Clear()
		return nil, ErrSessionExpired
	}
	if response.StatusCode < 200 || response.StatusCode > 299 {
		return nil, &APIError{StatusCode: response.StatusCode, Message: readErrorMessage(response.Body)}
	}
	return io.ReadAll(response.Body)
}

func readErrorMessage(body io.Reader) string {
	raw, err := io.ReadAll(io.LimitReader(body, 64*1024))
	if err != nil {
		return "request failed"
	}

	envelope := struct {
		Error string `json:"error"`
	}{}
	if json.Unmarshal(raw, &envelope) == nil && envelope.Error != "" {
		return envelope.Error
	}

	message := strings.TrimSpace(string(raw))
	if message == "" {
		return "request failed"
	}
	return message
}
