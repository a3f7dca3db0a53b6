package idpay

import (
	"bytes"
	"fmt"
	"strconv"
)

// Amount is a payment amount in Rial minor units. The gateway echoes
// amounts back as quoted numbers in some responses, so it decodes from
// both forms. Fractional wire values are rejected, never rounded.
type Amount int64

func (a *Amount) UnmarshalJSON(data []byte) error {
	n, err := wireInt(data)
	if err != nil {
		return fmt.Errorf("amount: %w", err)
	}
	*a = Amount(n)
	return nil
}

// Epoch is a point in time as Unix seconds, decoded the same tolerant
// way as Amount.
type Epoch int64

func (e *Epoch) UnmarshalJSON(data []byte) error {
	n, err := wireInt(data)
	if err != nil {
		return fmt.Errorf("epoch: %w", err)
	}
	*e = Epoch(n)
	return nil
}

func wireInt(data []byte) (int64, error) {
	s := string(bytes.Trim(bytes.TrimSpace(data), `"`))
	if s == "" || s == "null" {
		return 0, nil
	}
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("not an integer: %q", s)
	}
	return n, nil
}

// Status is the gateway's transaction state code.
type Status int

const (
	StatusNotPaid         Status = 1
	StatusFailed          Status = 2
	StatusError           Status = 3
	StatusBlocked         Status = 4
	StatusRefunded        Status = 5
	StatusReversed        Status = 6
	StatusCancelled       Status = 7
	StatusRedirected      Status = 8
	StatusPendingVerify   Status = 10
	StatusVerified        Status = 100
	StatusAlreadyVerified Status = 101
	StatusSettled         Status = 200
)

func (s Status) String() string {
	switch s {
	case StatusNotPaid:
		return "payment not made"
	case StatusFailed:
		return "payment failed"
	case StatusError:
		return "payment error"
	case StatusBlocked:
		return "transaction blocked"
	case StatusRefunded:
		return "refunded to payer"
	case StatusReversed:
		return "reversed by system"
	case StatusCancelled:
		return "cancelled by payer"
	case StatusRedirected:
		return "redirected to gateway"
	case StatusPendingVerify:
		return "awaiting verification"
	case StatusVerified:
		return "verified"
	case StatusAlreadyVerified:
		return "already verified"
	case StatusSettled:
		return "settled"
	default:
		return fmt.Sprintf("unknown status %d", int(s))
	}
}

// PaymentRequest describes a new payment to be created. OrderID, Amount
// and Callback are required; the rest is optional payer metadata.
type PaymentRequest struct {
	OrderID     string
	Amount      Amount
	Name        string
	Phone       string
	Email       string
	Description string
	Callback    string
}

// TransactionQuery addresses one transaction by the gateway's id and
// the merchant's order id. Both are required for verify and inquiry.
type TransactionQuery struct {
	ID      string
	OrderID string
}

// DateRange filters on an inclusive [Min, Max] window of Unix seconds.
type DateRange struct {
	Min Epoch `json:"min"`
	Max Epoch `json:"max"`
}

// TransactionListQuery pages through transactions. Zero-valued filters
// are not sent to the gateway.
type TransactionListQuery struct {
	Page     int
	PageSize int

	ID             string
	OrderID        string
	Amount         Amount
	Statuses       []Status
	TrackID        string
	CardNo         string
	HashedCardNo   string
	PaymentDate    *DateRange
	SettlementDate *DateRange
}

// CreateResult is the outcome of a payment-creation call. Success comes
// from the transport status, never from the body.
type CreateResult struct {
	Success      bool
	ID           string
	Link         string
	ErrorCode    int
	ErrorMessage string
}

// PaymentDetail is the card-level record attached to a transaction.
type PaymentDetail struct {
	TrackID      int64  `json:"track_id"`
	Amount       Amount `json:"amount"`
	CardNo       string `json:"card_no"`
	HashedCardNo string `json:"hashed_card_no"`
	Date         Epoch  `json:"date"`
}

// PayerDetail carries the payer metadata the merchant sent on creation.
type PayerDetail struct {
	Name        string `json:"name"`
	Phone       string `json:"phone"`
	Email       string `json:"mail"`
	Description string `json:"desc"`
}

// WageDetail describes the gateway fee for a transaction.
type WageDetail struct {
	By     string `json:"by"`
	Type   string `json:"type"`
	Amount Amount `json:"amount"`
}

// VerifyDetail records when the merchant verified the transaction.
type VerifyDetail struct {
	Date Epoch `json:"date"`
}

// SettlementDetail records the payout to the merchant account.
type SettlementDetail struct {
	TrackID int64  `json:"track_id"`
	Amount  Amount `json:"amount"`
	Date    Epoch  `json:"date"`
}

// Transaction is the gateway's record of one payment, as returned by
// verify, inquiry and list. Sub-records the gateway did not include
// stay nil.
type Transaction struct {
	Status     Status            `json:"status"`
	TrackID    int64             `json:"track_id"`
	ID         string            `json:"id"`
	OrderID    string            `json:"order_id"`
	Amount     Amount            `json:"amount"`
	Date       Epoch             `json:"date"`
	Payment    PaymentDetail     `json:"payment"`
	Payer      *PayerDetail      `json:"payer"`
	Wage       *WageDetail       `json:"wage"`
	Verify     *VerifyDetail     `json:"verify"`
	Settlement *SettlementDetail `json:"settlement"`
}

// TransactionList is one page of transactions.
type TransactionList struct {
	Total    int64         `json:"total"`
	Page     int           `json:"page"`
	PageSize int           `json:"page_size"`
	Records  []Transaction `json:"records"`
}
