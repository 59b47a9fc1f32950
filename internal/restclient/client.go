package restclient

import (
	"context"
	"net/http"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/guonaihong/gout"
	"github.com/guonaihong/gout/dataflow"
	jsoniter "github.com/json-iterator/go"
	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/rushikulya/marketkit/internal/apperrs"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// CredentialSource supplies the Authorization header for gated endpoints.
// It is re-read on every call: a logout between read and use of a stale
// in-flight request surfaces as an auth error from the collaborator.
type CredentialSource interface {
	AuthHeader() (string, bool)
}

// Client talks JSON to the catalog API collaborator. Every response status
// is mapped into the error taxonomy; the client never retries.
type Client struct {
	base    string
	timeout time.Duration
	creds   CredentialSource
	node    *snowflake.Node
}

func New(baseURL string, timeout time.Duration, creds CredentialSource) *Client {
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	node, err := snowflake.NewNode(1)
	if err != nil {
		zap.S().Warnf("snowflake node init failed: %v", err)
	}
	return &Client{base: baseURL, timeout: timeout, creds: creds, node: node}
}

// Option adjusts a single call.
type Option func(*callOpts)

type callOpts struct {
	auth string
}

// WithAuth overrides the credential source for one call, used while a login
// is still being verified and nothing is persisted yet.
func WithAuth(header string) Option {
	return func(o *callOpts) { o.auth = header }
}

func (c *Client) Get(ctx context.Context, path string, query gout.H, out interface{}, opts ...Option) error {
	return c.do(ctx, http.MethodGet, path, query, nil, out, opts...)
}

func (c *Client) Post(ctx context.Context, path string, body, out interface{}, opts ...Option) error {
	return c.do(ctx, http.MethodPost, path, nil, body, out, opts...)
}

func (c *Client) Put(ctx context.Context, path string, body, out interface{}, opts ...Option) error {
	return c.do(ctx, http.MethodPut, path, nil, body, out, opts...)
}

func (c *Client) Delete(ctx context.Context, path string, opts ...Option) error {
	return c.do(ctx, http.MethodDelete, path, nil, nil, nil, opts...)
}

// Upload posts data as a multipart file field and decodes the response.
// MIME and size gating happen in the caller before any network traffic.
func (c *Client) Upload(ctx context.Context, path, field string, data []byte, out interface{}, opts ...Option) error {
	df := gout.POST(c.base + path).
		SetForm(gout.H{field: gout.FormMem(data)})
	return c.run(ctx, df, nil, out, opts...)
}

func (c *Client) do(ctx context.Context, method, path string, query gout.H, body, out interface{}, opts ...Option) error {
	var df *dataflow.DataFlow
	url := c.base + path
	switch method {
	case http.MethodPost:
		df = gout.POST(url)
	case http.MethodPut:
		df = gout.PUT(url)
	case http.MethodDelete:
		df = gout.DELETE(url)
	default:
		df = gout.GET(url)
	}
	if query != nil {
		df = df.SetQuery(query)
	}
	if body != nil {
		df = df.SetJSON(body)
	}
	return c.run(ctx, df, query, out, opts...)
}

func (c *Client) run(ctx context.Context, df *dataflow.DataFlow, query gout.H, out interface{}, opts ...Option) error {
	var o callOpts
	for _, opt := range opts {
		opt(&o)
	}

	headers := gout.H{}
	if c.node != nil {
		headers["X-Request-Id"] = c.node.Generate().String()
	}
	switch {
	case o.auth != "":
		headers["Authorization"] = o.auth
	case c.creds != nil:
		if h, ok := c.creds.AuthHeader(); ok {
			headers["Authorization"] = h
		}
	}

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	var (
		code int
		raw  []byte
	)
	err := df.WithContext(ctx).
		SetHeader(headers).
		BindBody(&raw).
		Code(&code).
		Do()
	if err != nil {
		return apperrs.Network("The server could not be reached. Please try again.", errors.Wrap(err, "request failed"))
	}
	if code >= 200 && code < 300 {
		if out != nil && len(raw) > 0 {
			if err := json.Unmarshal(raw, out); err != nil {
				return apperrs.Network("Unexpected response from server.", errors.Wrap(err, "decode response"))
			}
		}
		return nil
	}
	return statusError(code, raw)
}

func statusError(code int, raw []byte) error {
	msg := serverMessage(raw)
	switch {
	case code == http.StatusUnauthorized || code == http.StatusForbidden:
		if msg == "" {
			msg = "Authentication required."
		}
		return apperrs.Auth(msg)
	case code == http.StatusNotFound:
		if msg == "" {
			msg = "Not found"
		}
		return apperrs.NotFound(msg)
	default:
		if msg == "" {
			msg = "Request failed. Please try again."
		}
		return apperrs.Network(msg, errors.Errorf("status %d", code))
	}
}

func serverMessage(raw []byte) string {
	if len(raw) == 0 {
		return ""
	}
	var body struct {
		Error   string `json:"error"`
		Message string `json:"message"`
	}
	if err := json.Unmarshal(raw, &body); err != nil {
		return ""
	}
	if body.Message != "" {
		return body.Message
	}
	return body.Error
}
