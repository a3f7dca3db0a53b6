package idpay

import (
	"errors"
	"fmt"
	"net/http"
	"regexp"
	"strconv"
)

// ErrorKind is the specific reason the gateway rejected a request.
type ErrorKind int

const (
	ErrUnexpected ErrorKind = iota
	ErrAmountLessThanMinimum
	ErrAmountExceedsMaximum
	ErrAmountExceedsLimit
	ErrCallbackDomainMismatch
	ErrInvalidCallbackAddress
	ErrUserBlocked
	ErrAPIKeyNotFound
	ErrIPMismatch
	ErrWebServiceNotApproved
	ErrBankAccountNotApproved
	ErrBankAccountInactive
	ErrTransactionNotCreated
)

func (k ErrorKind) String() string {
	switch k {
	case ErrAmountLessThanMinimum:
		return "amount less than minimum"
	case ErrAmountExceedsMaximum:
		return "amount exceeds maximum"
	case ErrAmountExceedsLimit:
		return "amount exceeds limit"
	case ErrCallbackDomainMismatch:
		return "callback domain mismatch"
	case ErrInvalidCallbackAddress:
		return "invalid callback address"
	case ErrUserBlocked:
		return "user blocked"
	case ErrAPIKeyNotFound:
		return "api key not found"
	case ErrIPMismatch:
		return "ip mismatch"
	case ErrWebServiceNotApproved:
		return "web service not approved"
	case ErrBankAccountNotApproved:
		return "bank account not approved"
	case ErrBankAccountInactive:
		return "bank account inactive"
	case ErrTransactionNotCreated:
		return "transaction not created"
	default:
		return "unexpected gateway error"
	}
}

// GatewayError is a rejection the gateway reported, classified into a
// specific kind. MinAmount, MaxAmount and IP are filled only for the
// kinds that carry them.
type GatewayError struct {
	Kind       ErrorKind
	HTTPStatus int
	Code       int
	Message    string

	MinAmount Amount
	MaxAmount Amount
	IP        string
}

func (e *GatewayError) Error() string {
	return fmt.Sprintf("idpay: %s (status %d, code %d): %s", e.Kind, e.HTTPStatus, e.Code, e.Message)
}

// ErrNoEmbeddedValue marks a gateway message that should carry an
// embedded value (minimum amount, IP address) but does not. It is a
// classification failure, distinct from every GatewayError.
var ErrNoEmbeddedValue = errors.New("idpay: gateway message is missing the expected embedded value")

var (
	digitRunRe = regexp.MustCompile(`[0-9]+`)
	ipv4Re     = regexp.MustCompile(`[0-9]{1,3}\.[0-9]{1,3}\.[0-9]{1,3}\.[0-9]{1,3}`)
)

// Classify maps a non-success gateway reply onto its error kind. The
// transport status selects the code table, the body's error code
// selects the kind; anything off the table degrades to ErrUnexpected.
// The returned error is a *GatewayError unless an embedded value is
// missing, in which case it wraps ErrNoEmbeddedValue.
func Classify(status, code int, message string) error {
	e := &GatewayError{Kind: ErrUnexpected, HTTPStatus: status, Code: code, Message: message}

	switch status {
	case http.StatusNotAcceptable:
		switch code {
		case 34:
			n, err := firstInt(message)
			if err != nil {
				return fmt.Errorf("idpay: classify status %d code %d: %w", status, code, err)
			}
			e.Kind = ErrAmountLessThanMinimum
			e.MinAmount = Amount(n)
		case 35:
			n, err := firstInt(message)
			if err != nil {
				return fmt.Errorf("idpay: classify status %d code %d: %w", status, code, err)
			}
			e.Kind = ErrAmountExceedsMaximum
			e.MaxAmount = Amount(n)
		case 36:
			e.Kind = ErrAmountExceedsLimit
		case 38:
			e.Kind = ErrCallbackDomainMismatch
		case 39:
			e.Kind = ErrInvalidCallbackAddress
		}
	case http.StatusForbidden:
		switch code {
		case 11:
			e.Kind = ErrUserBlocked
		case 12:
			e.Kind = ErrAPIKeyNotFound
		case 13:
			ip := ipv4Re.FindString(message)
			if ip == "" {
				return fmt.Errorf("idpay: classify status %d code %d: %w", status, code, ErrNoEmbeddedValue)
			}
			e.Kind = ErrIPMismatch
			e.IP = ip
		case 14:
			e.Kind = ErrWebServiceNotApproved
		case 21:
			e.Kind = ErrBankAccountNotApproved
		case 24:
			e.Kind = ErrBankAccountInactive
		}
	case http.StatusMethodNotAllowed:
		e.Kind = ErrTransactionNotCreated
	}
	return e
}

func firstInt(message string) (int64, error) {
	m := digitRunRe.FindString(message)
	if m == "" {
		return 0, ErrNoEmbeddedValue
	}
	n, err := strconv.ParseInt(m, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrNoEmbeddedValue, err)
	}
	return n, nil
}
