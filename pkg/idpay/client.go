// Package idpay is a client for the IDPay payment gateway. It validates
// requests against the gateway contract before anything touches the
// wire, speaks the gateway's JSON protocol for the four payment
// endpoints, and classifies rejections into typed errors the caller
// can act on.
package idpay

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"

	"idpay/pkg/httpclient"
)

// DefaultBaseURL is the production API root.
const DefaultBaseURL = "https://api.idpay.ir/v1.1"

const (
	pathPayment = "/payment"
	pathVerify  = "/payment/verify"
	pathInquiry = "/payment/inquiry"
	pathList    = "/payment/transactions"
)

// Transport performs a single JSON POST and reports the response
// status code and raw body. The default implementation is
// pkg/httpclient; tests inject fakes.
type Transport interface {
	Post(ctx context.Context, url string, body interface{}) (int, []byte, error)
}

// Client talks to the gateway. All configuration is fixed at
// construction; a single client is safe for concurrent use.
type Client struct {
	baseURL string
	http    Transport
	log     *zap.Logger
}

type options struct {
	baseURL   string
	timeout   time.Duration
	transport Transport
	log       *zap.Logger
}

// Option customizes a Client at construction time.
type Option func(*options)

// WithBaseURL overrides the API root, e.g. for a mock server.
func WithBaseURL(u string) Option {
	return func(o *options) { o.baseURL = u }
}

// WithTimeout sets the default transport's timeout. Ignored when a
// custom transport is injected.
func WithTimeout(d time.Duration) Option {
	return func(o *options) { o.timeout = d }
}

// WithTransport injects a custom transport. The caller then owns the
// authentication headers.
func WithTransport(t Transport) Option {
	return func(o *options) { o.transport = t }
}

// WithLogger attaches a logger; without one the client stays silent.
func WithLogger(l *zap.Logger) Option {
	return func(o *options) { o.log = l }
}

// NewClient builds a gateway client. The API key and, in sandbox mode,
// the X-SANDBOX marker are bound onto the transport once here and
// never mutated afterwards.
func NewClient(apiKey string, sandbox bool, opts ...Option) *Client {
	o := options{
		baseURL: DefaultBaseURL,
		timeout: 30 * time.Second,
		log:     zap.NewNop(),
	}
	for _, opt := range opts {
		opt(&o)
	}
	if o.transport == nil {
		hc := httpclient.New().
			WithTimeout(o.timeout).
			WithHeader("X-API-Key", apiKey)
		if sandbox {
			hc = hc.WithHeader("X-SANDBOX", "1")
		}
		o.transport = hc
	}
	return &Client{
		baseURL: strings.TrimRight(o.baseURL, "/"),
		http:    o.transport,
		log:     o.log,
	}
}

// RequestPayment creates a payment and returns the redirect link. The
// gateway signals creation with status 201 only; any other status is
// routed through the classifier.
func (c *Client) RequestPayment(ctx context.Context, req PaymentRequest) (*CreateResult, error) {
	v, err := req.Validate()
	if err != nil {
		return nil, err
	}
	c.log.Debug("idpay: requesting payment",
		zap.String("order_id", v.OrderID),
		zap.Int64("amount", int64(v.Amount)))

	status, raw, err := c.http.Post(ctx, c.baseURL+pathPayment, encodeCreate(v))
	if err != nil {
		return nil, fmt.Errorf("idpay: request payment: %w", err)
	}
	if status != http.StatusCreated {
		return nil, c.gatewayError(status, raw)
	}
	return decodeCreateResult(status, raw)
}

// VerifyTransaction confirms a paid transaction. Without verification
// the gateway refunds the payer.
func (c *Client) VerifyTransaction(ctx context.Context, q TransactionQuery) (*Transaction, error) {
	v, err := q.Validate()
	if err != nil {
		return nil, err
	}
	c.log.Debug("idpay: verifying transaction",
		zap.String("id", v.ID),
		zap.String("order_id", v.OrderID))

	status, raw, err := c.http.Post(ctx, c.baseURL+pathVerify, encodeRef(v))
	if err != nil {
		return nil, fmt.Errorf("idpay: verify transaction: %w", err)
	}
	if status/100 != 2 {
		return nil, c.gatewayError(status, raw)
	}
	return decodeTransaction(raw)
}

// InquireTransaction fetches the current state of a transaction.
func (c *Client) InquireTransaction(ctx context.Context, q TransactionQuery) (*Transaction, error) {
	v, err := q.Validate()
	if err != nil {
		return nil, err
	}
	c.log.Debug("idpay: inquiring transaction",
		zap.String("id", v.ID),
		zap.String("order_id", v.OrderID))

	status, raw, err := c.http.Post(ctx, c.baseURL+pathInquiry, encodeRef(v))
	if err != nil {
		return nil, fmt.Errorf("idpay: inquire transaction: %w", err)
	}
	if status/100 != 2 {
		return nil, c.gatewayError(status, raw)
	}
	return decodeTransaction(raw)
}

// ListTransactions pages through the merchant's transactions with
// optional filters.
func (c *Client) ListTransactions(ctx context.Context, q TransactionListQuery) (*TransactionList, error) {
	v, err := q.Validate()
	if err != nil {
		return nil, err
	}
	c.log.Debug("idpay: listing transactions",
		zap.Int("page", v.Page),
		zap.Int("page_size", v.PageSize))

	status, raw, err := c.http.Post(ctx, c.baseURL+pathList, encodeList(v))
	if err != nil {
		return nil, fmt.Errorf("idpay: list transactions: %w", err)
	}
	if status/100 != 2 {
		return nil, c.gatewayError(status, raw)
	}
	return decodeTransactionList(raw)
}

func (c *Client) gatewayError(status int, raw []byte) error {
	code, msg, err := decodeErrorBody(raw)
	if err != nil {
		return err
	}
	cerr := Classify(status, code, msg)
	c.log.Warn("idpay: gateway rejected request",
		zap.Int("status", status),
		zap.Int("code", code),
		zap.String("message", msg))
	return cerr
}
