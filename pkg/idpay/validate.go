package idpay

import (
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"
)

// Gateway contract limits. Out-of-bound values fail validation, they
// are never truncated.
const (
	MinAmount Amount = 1000
	MaxAmount Amount = 500000000

	maxIDLen       = 50
	maxTextLen     = 255
	maxPhoneLen    = 11
	maxCallbackLen = 2048
)

var (
	emailRe  = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)
	mobileRe = regexp.MustCompile(`^(?:0|\+98)?[ -]?9[1-4][0-9]{8}$`)
)

// ValidationError reports a request field that violates the gateway
// contract. It is raised before anything is sent on the wire.
type ValidationError struct {
	Field      string
	Constraint string
	Value      string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("idpay: field %q %s (got %q)", e.Field, e.Constraint, e.Value)
}

func trimMax(field, value string, max int) (string, error) {
	v := strings.TrimSpace(value)
	if utf8.RuneCountInString(v) > max {
		return "", &ValidationError{Field: field, Constraint: fmt.Sprintf("must be at most %d characters", max), Value: v}
	}
	return v, nil
}

func requireField(field, value string) error {
	if value == "" {
		return &ValidationError{Field: field, Constraint: "is required"}
	}
	return nil
}

func checkAmount(field string, v Amount) error {
	if v < MinAmount || v > MaxAmount {
		return &ValidationError{
			Field:      field,
			Constraint: fmt.Sprintf("must be between %d and %d rials", MinAmount, MaxAmount),
			Value:      fmt.Sprintf("%d", v),
		}
	}
	return nil
}

// Validate returns a normalized copy of the request or the first
// contract violation. Normalization trims every string field; an
// optional email or phone that does not match its pattern degrades to
// empty instead of failing. Validating an already-validated request is
// a no-op.
func (r PaymentRequest) Validate() (PaymentRequest, error) {
	out := r
	var err error

	if out.OrderID, err = trimMax("order_id", r.OrderID, maxIDLen); err != nil {
		return PaymentRequest{}, err
	}
	if err = requireField("order_id", out.OrderID); err != nil {
		return PaymentRequest{}, err
	}
	if err = checkAmount("amount", r.Amount); err != nil {
		return PaymentRequest{}, err
	}
	if out.Name, err = trimMax("name", r.Name, maxTextLen); err != nil {
		return PaymentRequest{}, err
	}
	if out.Phone, err = trimMax("phone", r.Phone, maxPhoneLen); err != nil {
		return PaymentRequest{}, err
	}
	if !mobileRe.MatchString(out.Phone) {
		out.Phone = ""
	}
	if out.Email, err = trimMax("mail", r.Email, maxTextLen); err != nil {
		return PaymentRequest{}, err
	}
	if !emailRe.MatchString(out.Email) {
		out.Email = ""
	}
	if out.Description, err = trimMax("desc", r.Description, maxTextLen); err != nil {
		return PaymentRequest{}, err
	}
	if out.Callback, err = trimMax("callback", r.Callback, maxCallbackLen); err != nil {
		return PaymentRequest{}, err
	}
	if err = requireField("callback", out.Callback); err != nil {
		return PaymentRequest{}, err
	}
	return out, nil
}

// Validate trims both identifiers and requires them to be present.
func (q TransactionQuery) Validate() (TransactionQuery, error) {
	out := q
	var err error

	if out.ID, err = trimMax("id", q.ID, maxIDLen); err != nil {
		return TransactionQuery{}, err
	}
	if err = requireField("id", out.ID); err != nil {
		return TransactionQuery{}, err
	}
	if out.OrderID, err = trimMax("order_id", q.OrderID, maxIDLen); err != nil {
		return TransactionQuery{}, err
	}
	if err = requireField("order_id", out.OrderID); err != nil {
		return TransactionQuery{}, err
	}
	return out, nil
}

// Validate normalizes the pagination and filter fields. Unset filters
// (zero values) pass through untouched.
func (q TransactionListQuery) Validate() (TransactionListQuery, error) {
	out := q
	var err error

	if q.Page < 0 {
		return TransactionListQuery{}, &ValidationError{Field: "page", Constraint: "must not be negative", Value: fmt.Sprintf("%d", q.Page)}
	}
	if q.PageSize <= 0 {
		return TransactionListQuery{}, &ValidationError{Field: "page_size", Constraint: "must be positive", Value: fmt.Sprintf("%d", q.PageSize)}
	}
	if out.ID, err = trimMax("id", q.ID, maxIDLen); err != nil {
		return TransactionListQuery{}, err
	}
	if out.OrderID, err = trimMax("order_id", q.OrderID, maxIDLen); err != nil {
		return TransactionListQuery{}, err
	}
	if q.Amount != 0 {
		if err = checkAmount("amount", q.Amount); err != nil {
			return TransactionListQuery{}, err
		}
	}
	if out.TrackID, err = trimMax("track_id", q.TrackID, maxIDLen); err != nil {
		return TransactionListQuery{}, err
	}
	out.CardNo = strings.TrimSpace(q.CardNo)
	out.HashedCardNo = strings.TrimSpace(q.HashedCardNo)
	return out, nil
}
