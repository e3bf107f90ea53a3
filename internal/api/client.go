// Package api is the HTTP client for the language-exchange backend. It only
// knows how to fetch the signed-in user's friends.
package api

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/hashicorp/go-retryablehttp"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"

	"lingofriends/internal/friend"
	"lingofriends/internal/jsonutil"
)

const (
	friendsPath = "/api/users/friends"
	// AuthCookie is the cookie the web app authenticates with.
	AuthCookie = "jwt"

	tracerName = "lingofriends/internal/api"
	spanFetch  = "friends.fetch"

	// AttrFriendsCount is set on the fetch span after a successful decode.
	AttrFriendsCount = attribute.Key("lingofriends.friends.count")
	AttrStatusCode   = attribute.Key("http.status_code")

	maxBodyBytes  = 8 << 20
	maxErrorBytes = 512

	DefaultTimeout    = 10 * time.Second
	DefaultMaxRetries = 2
)

var (
	// ErrUnauthorized is wrapped by StatusError for 401 and 403 responses.
	ErrUnauthorized = errors.New("not signed in")
	// ErrDecode is wrapped when the response body is not a friends payload.
	ErrDecode = errors.New("invalid friends payload")
)

// StatusError is returned for non-2xx responses.
type StatusError struct {
	Code int
	Body string
}

func (e *StatusError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("friends api: %d %s", e.Code, http.StatusText(e.Code))
	}
	return fmt.Sprintf("friends api: %d %s: %s", e.Code, http.StatusText(e.Code), e.Body)
}

func (e *StatusError) Unwrap() error {
	if e.Code == http.StatusUnauthorized || e.Code == http.StatusForbidden {
		return ErrUnauthorized
	}
	return nil
}

// Client fetches friends from the backend.
type Client struct {
	endpoint string
	token    string
	http     *retryablehttp.Client
	tracer   trace.Tracer
	logger   *slog.Logger
}

type options struct {
	token        string
	tp           trace.TracerProvider
	logger       *slog.Logger
	maxRetries   int
	timeout      time.Duration
	retryWaitMin time.Duration
	retryWaitMax time.Duration
}

// Option configures a Client.
type Option func(*options)

// WithToken sets the session token sent as a bearer token and auth cookie.
func WithToken(token string) Option {
	return func(o *options) { o.token = token }
}

// WithTracerProvider sets the provider used for fetch spans.
func WithTracerProvider(tp trace.TracerProvider) Option {
	return func(o *options) { o.tp = tp }
}

// WithLogger routes retry logging to logger.
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) { o.logger = logger }
}

// WithMaxRetries sets how many times a failed request is retried.
func WithMaxRetries(n int) Option {
	return func(o *options) { o.maxRetries = n }
}

// WithTimeout bounds a single HTTP attempt.
func WithTimeout(d time.Duration) Option {
	return func(o *options) { o.timeout = d }
}

// WithRetryWait sets the backoff bounds between retries.
func WithRetryWait(minWait, maxWait time.Duration) Option {
	return func(o *options) {
		o.retryWaitMin = minWait
		o.retryWaitMax = maxWait
	}
}

// New returns a client for the backend at baseURL.
func New(baseURL string, opts ...Option) (*Client, error) {
	base, err := url.Parse(strings.TrimRight(baseURL, "/"))
	if err != nil {
		return nil, fmt.Errorf("parse api url: %w", err)
	}
	if base.Scheme == "" || base.Host == "" {
		return nil, fmt.Errorf("api url %q must include scheme and host", baseURL)
	}

	o := options{
		maxRetries:   DefaultMaxRetries,
		timeout:      DefaultTimeout,
		retryWaitMin: 200 * time.Millisecond,
		retryWaitMax: 2 * time.Second,
	}
	for _, opt := range opts {
		opt(&o)
	}
	if o.tp == nil {
		o.tp = noop.NewTracerProvider()
	}

	rc := retryablehttp.NewClient()
	rc.RetryMax = o.maxRetries
	rc.RetryWaitMin = o.retryWaitMin
	rc.RetryWaitMax = o.retryWaitMax
	rc.HTTPClient.Timeout = o.timeout
	// Hand the final response back so non-2xx statuses map to StatusError.
	rc.ErrorHandler = retryablehttp.PassthroughErrorHandler
	// The default logger writes to stderr, which the TUI owns.
	rc.Logger = nil
	if o.logger != nil {
		rc.Logger = o.logger
	}

	return &Client{
		endpoint: base.String() + friendsPath,
		token:    o.token,
		http:     rc,
		tracer:   o.tp.Tracer(tracerName),
		logger:   o.logger,
	}, nil
}

// Endpoint returns the friends URL this client requests.
func (c *Client) Endpoint() string {
	return c.endpoint
}

// FetchFriends returns the current user's friends in server order.
func (c *Client) FetchFriends(ctx context.Context) ([]friend.Friend, error) {
	ctx, span := c.tracer.Start(ctx, spanFetch,
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(attribute.String("http.url", c.endpoint)),
	)
	defer span.End()

	friends, err := c.fetch(ctx, span)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}
	span.SetAttributes(AttrFriendsCount.Int(len(friends)))
	return friends, nil
}

func (c *Client) fetch(ctx context.Context, span trace.Span) ([]friend.Friend, error) {
	req, err := retryablehttp.NewRequestWithContext(ctx, http.MethodGet, c.endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("build friends request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
		req.AddCookie(&http.Cookie{Name: AuthCookie, Value: c.token})
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch friends: %w", err)
	}
	defer resp.Body.Close()
	span.SetAttributes(AttrStatusCode.Int(resp.StatusCode))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBytes))
		return nil, &StatusError{Code: resp.StatusCode, Body: strings.TrimSpace(string(body))}
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return nil, fmt.Errorf("read friends response: %w", err)
	}
	friends, err := jsonutil.UnmarshalList[friend.Friend](data, "friends", "decode friends")
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrDecode, err)
	}
	if c.logger != nil {
		c.logger.Debug("fetched friends", "count", len(friends), "status", resp.StatusCode)
	}
	return friends, nil
}
