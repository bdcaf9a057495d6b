package transport

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/okian/sideline/internal/domain/binding"
	"github.com/okian/sideline/pkg/logger"
	"github.com/okian/sideline/pkg/metrics"
	"github.com/pkg/errors"
	"golang.org/x/oauth2"
)

// Header names set on every request.
const (
	HeaderRequestID   = "X-Request-Id"
	headerContentType = "Content-Type"
	headerAccept      = "Accept"
	mimeJSON          = "application/json"
)

const defaultTimeout = 10 * time.Second

// Client is the HTTP Requester. It is safe for concurrent use.
type Client struct {
	baseURL     string
	profile     Profile
	timeout     time.Duration
	tokenSource oauth2.TokenSource
	logoutCodes map[string]struct{}
	httpClient  *http.Client
	logger      logger.Logger
	metrics     *metrics.Manager
}

var _ Requester = (*Client)(nil)

// New builds a Client. Without options it targets the demo profile on
// localhost.
func New(opts ...Option) *Client {
	c := &Client{
		baseURL:     "http://localhost:9528",
		profile:     ProfileDemo,
		timeout:     defaultTimeout,
		logoutCodes: map[string]struct{}{},
		httpClient:  http.DefaultClient,
		logger:      logger.Nop(),
		metrics:     metrics.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}

	hc := *c.httpClient
	hc.Timeout = c.timeout
	if c.tokenSource != nil {
		base := hc.Transport
		if base == nil {
			base = http.DefaultTransport
		}
		hc.Transport = &oauth2.Transport{Source: c.tokenSource, Base: base}
	}
	c.httpClient = &hc
	c.logger = c.logger.Named("transport").With(logger.String("profile", c.profile.Name))
	return c
}

// Profile returns the active profile.
func (c *Client) Profile() Profile { return c.profile }

// URL resolves the absolute URL of b, without query string.
func (c *Client) URL(b binding.Binding) string {
	return c.baseURL + c.profile.PathPrefix + b.Path
}

// Request performs one round trip for inv and decodes the envelope data
// into out.
func (c *Client) Request(ctx context.Context, inv binding.Invocation, out any) (err error) {
	b := inv.Binding
	target := c.URL(b)
	if len(inv.Params) > 0 {
		target += "?" + inv.Params.Encode()
	}
	reqID := uuid.NewString()
	start := time.Now()
	status := 0

	c.metrics.IncInFlight()
	defer func() {
		c.metrics.DecInFlight()
		c.observe(ctx, b, target, reqID, status, time.Since(start), err)
	}()

	fail := func(kind Kind, cause error) *Error {
		return &Error{Kind: kind, Binding: b.Name, Method: b.Method, URL: target, Status: status, Err: cause}
	}

	var body io.Reader
	if inv.Data != nil {
		raw, mErr := json.Marshal(inv.Data)
		if mErr != nil {
			return fail(KindEncode, errors.Wrap(mErr, "encode body"))
		}
		body = bytes.NewReader(raw)
	}

	req, rErr := http.NewRequestWithContext(ctx, b.Method, target, body)
	if rErr != nil {
		return fail(KindEncode, errors.Wrap(rErr, "build request"))
	}
	req.Header.Set(headerAccept, mimeJSON)
	req.Header.Set(HeaderRequestID, reqID)
	if body != nil {
		req.Header.Set(headerContentType, mimeJSON)
	}

	resp, dErr := c.httpClient.Do(req)
	if dErr != nil {
		return fail(KindNetwork, errors.Wrap(dErr, "send request"))
	}
	defer func() { _ = resp.Body.Close() }()
	status = resp.StatusCode

	raw, readErr := io.ReadAll(resp.Body)
	if readErr != nil {
		return fail(KindNetwork, errors.Wrap(readErr, "read response body"))
	}

	env := c.profile.Envelope
	if status < http.StatusOK || status >= http.StatusMultipleChoices {
		e := fail(KindStatus, nil)
		e.Message = env.message(raw)
		return e
	}

	rep, pErr := env.parse(raw)
	if pErr != nil {
		return fail(KindDecode, pErr)
	}
	if rep.code != env.SuccessCode {
		kind := KindBackend
		if _, ok := c.logoutCodes[rep.code]; ok {
			kind = KindLoggedOut
		}
		e := fail(kind, nil)
		e.Code = rep.code
		e.Message = rep.message
		return e
	}
	if decErr := rep.decodeData(out); decErr != nil {
		return fail(KindDecode, decErr)
	}
	return nil
}

func (c *Client) observe(ctx context.Context, b binding.Binding, target, reqID string, status int, elapsed time.Duration, err error) {
	c.metrics.RecordRequestDuration(b.Name, b.Method, float64(elapsed.Milliseconds()))

	fields := []logger.Field{
		logger.String("binding", b.Name),
		logger.String("method", b.Method),
		logger.String("url", target),
		logger.String("request_id", reqID),
		logger.Int("status", status),
		logger.Duration("elapsed", elapsed),
	}
	if err == nil {
		c.metrics.RecordRequest(b.Name, b.Method, metrics.OutcomeSuccess)
		c.logger.Debug(ctx, "request completed", fields...)
		return
	}

	kind := KindOf(err)
	c.metrics.RecordRequest(b.Name, b.Method, metrics.OutcomeFailure)
	c.metrics.RecordRequestError(b.Name, string(kind))
	c.logger.Warn(ctx, "request failed", append(fields, logger.String("kind", string(kind)), logger.Error(err))...)
}
