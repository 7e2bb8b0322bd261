package aarogyam

import (
	"net/http"
	"sync"
	"time"
)

const (
	// DefaultBaseURL is the default Aarogyam API origin. The origin is a
	// single configuration value; nothing else in the package hardcodes it.
	DefaultBaseURL = "http://localhost:3500"
	// DefaultTimeout is the default HTTP client timeout.
	DefaultTimeout = 30 * time.Second
)

// Client is the Aarogyam API client.
//
// Use NewClient to create one, then attach a session token with SetToken
// (or the WithToken option) before calling authenticated operations:
//
//	client := aarogyam.NewClient(aarogyam.WithBaseURL("https://api.example.org"))
//	creds, err := client.Auth.SignIn(ctx, "a@b.com", "secret")
//	if err == nil {
//		client.SetToken(creds.Token)
//	}
type Client struct {
	mu         sync.RWMutex
	token      string
	baseURL    string
	httpClient *http.Client

	// Services
	Auth          *AuthService
	Hospitals     *HospitalsService
	Records       *RecordsService
	Resources     *ResourcesService
	Appointments  *AppointmentsService
	Practitioners *PractitionersService
}

// Option configures the client.
type Option func(*Client)

// WithBaseURL sets a custom API base URL.
func WithBaseURL(url string) Option {
	return func(c *Client) {
		c.baseURL = url
	}
}

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(httpClient *http.Client) Option {
	return func(c *Client) {
		c.httpClient = httpClient
	}
}

// WithTimeout sets the HTTP client timeout.
func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		if c.httpClient == nil {
			c.httpClient = &http.Client{}
		}
		c.httpClient.Timeout = timeout
	}
}

// WithToken sets the session token attached to authenticated requests.
func WithToken(token string) Option {
	return func(c *Client) {
		c.token = token
	}
}

// NewClient creates a new Aarogyam API client.
func NewClient(opts ...Option) *Client {
	c := &Client{
		baseURL: DefaultBaseURL,
		httpClient: &http.Client{
			Timeout: DefaultTimeout,
		},
	}

	for _, opt := range opts {
		opt(c)
	}

	// Initialize services
	c.Auth = &AuthService{client: c}
	c.Hospitals = &HospitalsService{client: c}
	c.Records = &RecordsService{client: c}
	c.Resources = &ResourcesService{client: c}
	c.Appointments = &AppointmentsService{client: c}
	c.Practitioners = &PractitionersService{client: c}

	return c
}

// SetToken replaces the session token used for subsequent requests.
// An empty token reverts the client to unauthenticated calls.
func (c *Client) SetToken(token string) {
	c.mu.Lock()
	c.token = token
	c.mu.Unlock()
}

// Token returns the current session token.
func (c *Client) Token() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.token
}

// BaseURL returns the current base URL.
func (c *Client) BaseURL() string {
	return c.baseURL
}
