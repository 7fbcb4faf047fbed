package toggl

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"toggl-entry/internal/domain"
)

const (
	DefaultBaseURL = "https://api.track.toggl.com"

	APIv9 = "v9"
	APIv8 = "v8"

	// Toggl expects the token as username and this literal as password.
	basicAuthPassword = "api_token"
	maxErrorBody      = 4096
)

// StatusError is returned when Toggl answers with anything but 200.
type StatusError struct {
	Code int
	Body string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("toggl: unexpected status %d: %s", e.Code, e.Body)
}

// Client implements ports.TogglClient against the Toggl Track API.
type Client struct {
	baseURL    string
	apiToken   string
	apiVersion string
	http       *http.Client
	workspace  uint64
	log        *slog.Logger
}

// Options configures a Client. Zero values fall back to defaults.
type Options struct {
	BaseURL     string
	APIToken    string
	APIVersion  string
	WorkspaceID uint64 // scopes ListProjects
	Timeout     time.Duration
}

func NewClient(opts Options, log *slog.Logger) *Client {
	if opts.BaseURL == "" {
		opts.BaseURL = DefaultBaseURL
	}
	if opts.APIVersion == "" {
		opts.APIVersion = APIv9
	}
	if opts.Timeout <= 0 {
		opts.Timeout = 30 * time.Second
	}
	return &Client{
		baseURL:    opts.BaseURL,
		apiToken:   opts.APIToken,
		apiVersion: opts.APIVersion,
		workspace:  opts.WorkspaceID,
		http: &http.Client{
			Timeout: opts.Timeout,
		},
		log: log,
	}
}

// CreateTimeEntry posts a single entry.
// v9: POST /api/v9/workspaces/{wid}/time_entries
// v8: POST /api/v8/time_entries with a {"time_entry": ...} envelope
func (c *Client) CreateTimeEntry(ctx context.Context, e domain.TimeEntry) (domain.CreatedEntry, error) {
	if c.apiToken == "" {
		return domain.CreatedEntry{}, errors.New("missing api token")
	}
	path, body, err := c.encodeEntry(e)
	if err != nil {
		return domain.CreatedEntry{}, err
	}
	u, err := c.endpoint(path)
	if err != nil {
		return domain.CreatedEntry{}, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, u, bytes.NewReader(body))
	if err != nil {
		return domain.CreatedEntry{}, err
	}
	c.authorize(req)
	req.Header.Set("Content-Type", "application/json")

	c.log.Debug("creating time entry", slog.String("url", u), slog.String("body", string(body)))
	resp, err := c.http.Do(req)
	if err != nil {
		return domain.CreatedEntry{}, fmt.Errorf("toggl: posting time entry: %w", err)
	}
	defer resp.Body.Close()
	if err := checkStatus(resp); err != nil {
		return domain.CreatedEntry{}, err
	}

	created := domain.CreatedEntry{APIVersion: c.apiVersion, Entry: e}
	// The id is informational; a 200 with an odd body still counts as created.
	raw, _ := io.ReadAll(resp.Body)
	created.ID = decodeCreatedID(c.apiVersion, raw)
	return created, nil
}

// EncodeEntry returns the request body CreateTimeEntry would send.
func (c *Client) EncodeEntry(e domain.TimeEntry) ([]byte, error) {
	_, body, err := c.encodeEntry(e)
	return body, err
}

func (c *Client) encodeEntry(e domain.TimeEntry) (string, []byte, error) {
	switch c.apiVersion {
	case APIv9:
		body, err := json.Marshal(rawCreateV9{
			Description: e.Description,
			CreatedWith: e.CreatedWith,
			Start:       e.Start.Format(time.RFC3339),
			Duration:    e.DurationSec,
			WorkspaceID: e.WorkspaceID,
			ProjectID:   e.ProjectID,
		})
		return fmt.Sprintf("/api/v9/workspaces/%d/time_entries", e.WorkspaceID), body, err
	case APIv8:
		body, err := json.Marshal(rawCreateV8{TimeEntry: rawEntryV8{
			Description: e.Description,
			CreatedWith: e.CreatedWith,
			Start:       e.Start.Format(time.RFC3339),
			Duration:    e.DurationSec,
			Wid:         e.WorkspaceID,
			Pid:         e.ProjectID,
		}})
		return "/api/v8/time_entries", body, err
	default:
		return "", nil, fmt.Errorf("toggl: unsupported api version %q", c.apiVersion)
	}
}

// ListTimeEntries fetches entries in [from, to].
// Toggl v9: GET /api/v9/me/time_entries?start_date=...&end_date=...
func (c *Client) ListTimeEntries(ctx context.Context, from, to time.Time) ([]domain.ListedEntry, error) {
	if c.apiToken == "" {
		return nil, errors.New("missing api token")
	}
	u, err := url.Parse(c.baseURL)
	if err != nil {
		return nil, err
	}
	u.Path = "/api/v9/me/time_entries"
	q := u.Query()
	q.Set("start_date", from.Format(time.RFC3339))
	q.Set("end_date", to.Format(time.RFC3339))
	u.RawQuery = q.Encode()

	var raw []rawTimeEntry
	if err := c.getJSON(ctx, u.String(), &raw); err != nil {
		return nil, err
	}
	out := make([]domain.ListedEntry, 0, len(raw))
	for _, r := range raw {
		out = append(out, domain.ListedEntry{
			ID:          r.ID,
			Description: r.Description,
			ProjectID:   r.ProjectID,
			WorkspaceID: r.WorkspaceID,
			Tags:        r.Tags,
			Start:       r.Start,
			Stop:        r.Stop,
			DurationSec: r.Duration,
		})
	}
	return out, nil
}

// ListProjects fetches projects accessible to the configured token.
// If a workspace ID is configured, it scopes the request to that workspace.
func (c *Client) ListProjects(ctx context.Context) ([]domain.Project, error) {
	if c.apiToken == "" {
		return nil, errors.New("missing api token")
	}
	path := "/api/v9/me/projects"
	if c.workspace != 0 {
		path = fmt.Sprintf("/api/v9/workspaces/%d/projects", c.workspace)
	}
	u, err := c.endpoint(path)
	if err != nil {
		return nil, err
	}

	var raw []rawProject
	if err := c.getJSON(ctx, u, &raw); err != nil {
		return nil, err
	}
	out := make([]domain.Project, 0, len(raw))
	for _, p := range raw {
		out = append(out, domain.Project{
			ID:          p.ID,
			WorkspaceID: p.WorkspaceID,
			Name:        p.Name,
			Active:      p.Active,
			Private:     p.Private,
			Color:       p.Color,
			ClientID:    p.ClientID,
			At:          p.At,
		})
	}
	return out, nil
}

func (c *Client) getJSON(ctx context.Context, u string, dst any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return err
	}
	c.authorize(req)

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("toggl: GET %s: %w", u, err)
	}
	defer resp.Body.Close()
	if err := checkStatus(resp); err != nil {
		return err
	}
	return json.NewDecoder(resp.Body).Decode(dst)
}

func (c *Client) endpoint(path string) (string, error) {
	u, err := url.Parse(c.baseURL)
	if err != nil {
		return "", fmt.Errorf("toggl: invalid base url %q: %w", c.baseURL, err)
	}
	u.Path = path
	return u.String(), nil
}

func (c *Client) authorize(req *http.Request) {
	// Basic auth: token:api_token
	auth := base64.StdEncoding.EncodeToString([]byte(fmt.Sprintf("%s:%s", c.apiToken, basicAuthPassword)))
	req.Header.Set("Authorization", "Basic "+auth)
	req.Header.Set("Accept", "application/json")
}

func checkStatus(resp *http.Response) error {
	if resp.StatusCode == http.StatusOK {
		return nil
	}
	body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
	return &StatusError{Code: resp.StatusCode, Body: string(body)}
}

func decodeCreatedID(version string, raw []byte) int64 {
	if version == APIv8 {
		var env struct {
			Data struct {
				ID int64 `json:"id"`
			} `json:"data"`
		}
		if json.Unmarshal(raw, &env) == nil {
			return env.Data.ID
		}
		return 0
	}
	var r struct {
		ID int64 `json:"id"`
	}
	if json.Unmarshal(raw, &r) == nil {
		return r.ID
	}
	return 0
}

type rawCreateV9 struct {
	Description string `json:"description"`
	CreatedWith string `json:"created_with"`
	Start       string `json:"start"`
	Duration    int64  `json:"duration"`
	WorkspaceID uint64 `json:"workspace_id"`
	ProjectID   uint64 `json:"project_id"`
}

type rawCreateV8 struct {
	TimeEntry rawEntryV8 `json:"time_entry"`
}

type rawEntryV8 struct {
	Description string `json:"description"`
	CreatedWith string `json:"created_with"`
	Start       string `json:"start"`
	Duration    int64  `json:"duration"`
	Wid         uint64 `json:"wid"`
	Pid         uint64 `json:"pid"`
}

// rawTimeEntry mirrors the JSON from Toggl v9.
type rawTimeEntry struct {
	ID          int64      `json:"id"`
	Description string     `json:"description"`
	ProjectID   *int64     `json:"project_id"`
	WorkspaceID *int64     `json:"workspace_id"`
	Tags        []string   `json:"tags"`
	Start       time.Time  `json:"start"`
	Stop        *time.Time `json:"stop"`
	Duration    int64      `json:"duration"`
}

type rawProject struct {
	ID          int64     `json:"id"`
	WorkspaceID int64     `json:"workspace_id"`
	Name        string    `json:"name"`
	Active      bool      `json:"active"`
	Private     bool      `json:"is_private"`
	Color       string    `json:"color"`
	ClientID    *int64    `json:"client_id"`
	At          time.Time `json:"at"`
}
