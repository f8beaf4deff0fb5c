// Package client is a typed REST client for the portfolio API. With
// WithFallback each resource switches to a process-local store when the
// backend cannot be reached, and reports the switch.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/yoockh/folio/internal/lock"
	"github.com/yoockh/folio/internal/logger"
	"github.com/yoockh/folio/internal/models"
	"github.com/yoockh/folio/internal/repositories/memory"
	"github.com/yoockh/folio/internal/services"
	"github.com/yoockh/folio/internal/utils"
)

var (
	ErrNotFound    = errors.New("not found")
	ErrUnavailable = errors.New("backend unavailable")
)

// APIError is a non-2xx answer, or an error from the offline store shaped
// like one.
type APIError struct {
	Status  int
	Code    string
	Message string
	// routeMissing is a 404 without the API error body, i.e. no such route.
	routeMissing bool
}

func (e *APIError) Error() string {
	if e.Code != "" {
		return fmt.Sprintf("%d %s: %s", e.Status, e.Code, e.Message)
	}
	return fmt.Sprintf("%d: %s", e.Status, e.Message)
}

func (e *APIError) Is(target error) bool {
	switch target {
	case ErrNotFound:
		return e.Status == http.StatusNotFound && !e.routeMissing
	case ErrUnavailable:
		return e.routeMissing ||
			e.Status == http.StatusBadGateway ||
			e.Status == http.StatusServiceUnavailable ||
			e.Status == http.StatusGatewayTimeout
	}
	return false
}

type Client struct {
	base     string
	token    string
	http     *http.Client
	timeout  time.Duration
	log      *logrus.Logger
	fallback bool
	onMode   func(resource string, m Mode)

	About    *AboutAPI
	Profile  *ProfileAPI
	Projects *Resource[models.Project, models.Project, models.ProjectPatch]
}

type Option func(*Client)

func WithToken(token string) Option { return func(c *Client) { c.token = token } }

func WithHTTPClient(h *http.Client) Option { return func(c *Client) { c.http = h } }

// WithTimeout sets the request timeout on the client's own copy of the
// http.Client, so a client passed to WithHTTPClient is never modified.
func WithTimeout(d time.Duration) Option { return func(c *Client) { c.timeout = d } }

func WithLogger(l *logrus.Logger) Option { return func(c *Client) { c.log = l } }

// WithFallback enables the offline store. Without it failures are returned.
func WithFallback() Option { return func(c *Client) { c.fallback = true } }

// OnModeChange is called once per resource when it goes offline or back online.
func OnModeChange(fn func(resource string, m Mode)) Option {
	return func(c *Client) { c.onMode = fn }
}

func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		base: strings.TrimRight(baseURL, "/"),
		http: &http.Client{Timeout: 15 * time.Second},
		log:  logger.Discard(),
	}
	for _, o := range opts {
		o(c)
	}
	if c.timeout > 0 {
		hc := *c.http
		hc.Timeout = c.timeout
		c.http = &hc
	}

	// the offline side runs the same services over in-memory stores
	log := c.log
	locker := lock.NewLocal()
	aboutSvc := services.NewAboutService(memory.New[models.About](), locker, log)
	profileSvc := services.NewProfileService(memory.New[models.Profile](), locker, log)
	projectSvc := services.NewProjectService(memory.New[models.Project]())

	c.About = newAboutAPI(c, aboutSvc)
	c.Profile = newProfileAPI(c, profileSvc)
	c.Projects = newResource(c, "/projects", offlineOps[models.Project, models.Project, models.ProjectPatch]{
		list:   projectSvc.List,
		page:   projectSvc.Page,
		get:    projectSvc.Get,
		create: func(ctx context.Context, in models.Project) (*models.Project, error) { return projectSvc.Create(ctx, &in) },
		update: projectSvc.Update,
		delete: projectSvc.Delete,
	})
	return c
}

func (c *Client) SetToken(token string) { c.token = token }

func (c *Client) Token() string { return c.token }

// Login exchanges credentials for a token and keeps it for later calls.
// It is never served offline.
func (c *Client) Login(ctx context.Context, email, password string) (*services.Session, error) {
	var sess services.Session
	err := c.do(ctx, http.MethodPost, "/auth/login", services.LoginInput{Email: email, Password: password}, &sess)
	if err != nil {
		return nil, err
	}
	c.token = sess.AccessToken
	return &sess, nil
}

type envelope struct {
	StatusCode int             `json:"statusCode"`
	Data       json.RawMessage `json:"data"`
}

type errorBody struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var rdr io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return err
		}
		rdr = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.base+path, rdr)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, 16<<20))
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}

	if resp.StatusCode >= 400 {
		return apiError(resp.StatusCode, data)
	}
	if out == nil {
		return nil
	}

	var env envelope
	if err := json.Unmarshal(data, &env); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	if len(env.Data) == 0 || string(env.Data) == "null" {
		return nil
	}
	return json.Unmarshal(env.Data, out)
}

func apiError(status int, body []byte) *APIError {
	var eb errorBody
	if err := json.Unmarshal(body, &eb); err == nil && eb.Error != "" {
		return &APIError{Status: status, Code: eb.Code, Message: eb.Error}
	}
	return &APIError{
		Status:       status,
		Message:      http.StatusText(status),
		routeMissing: status == http.StatusNotFound,
	}
}

// offlineErr gives offline failures the same shape as API failures.
func offlineErr(err error) error {
	if err == nil {
		return nil
	}
	var ae *utils.AppError
	if errors.As(err, &ae) {
		return &APIError{Status: utils.StatusFor(ae.Code), Code: string(ae.Code), Message: ae.Message}
	}
	return err
}
