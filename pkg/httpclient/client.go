package httpclient

import (
	"context"
	"crypto/tls"
	"time"

	"github.com/go-resty/resty/v2"
)

// Client wraps resty for calls to the payment gateway. Headers set via
// WithHeader are bound once at construction time and never mutated
// afterwards, so one client is safe to share across goroutines. It
// deliberately does no retrying: replaying a payment POST is the
// caller's decision, not the transport's.
type Client struct {
	r *resty.Client
}

// New creates a client with a 30 second default timeout.
func New() *Client {
	r := resty.New().SetTimeout(30 * time.Second)
	return &Client{r: r}
}

// WithTimeout sets a custom timeout.
func (c *Client) WithTimeout(d time.Duration) *Client {
	c.r.SetTimeout(d)
	return c
}

// WithHeader sets a header sent on every request.
func (c *Client) WithHeader(key, value string) *Client {
	c.r.SetHeader(key, value)
	return c
}

// WithInsecureSkipVerify disables TLS verification.
func (c *Client) WithInsecureSkipVerify() *Client {
	c.r.SetTLSClientConfig(&tls.Config{InsecureSkipVerify: true})
	return c
}

// Post sends a JSON POST and returns the response status code and raw
// body. Network-level failures (DNS, TLS, timeout) come back as the
// error resty reported, untouched.
func (c *Client) Post(ctx context.Context, url string, body interface{}) (int, []byte, error) {
	req := c.r.R().SetContext(ctx).SetHeader("Content-Type", "application/json")
	if body != nil {
		req.SetBody(body)
	}
	resp, err := req.Post(url)
	if err != nil {
		return 0, nil, err
	}
	return resp.StatusCode(), resp.Body(), nil
}
