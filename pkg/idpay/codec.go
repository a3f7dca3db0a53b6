package idpay

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
)

// Wire bodies for the four POST endpoints. The gateway wants the
// optional payer fields of the create body present as empty strings,
// so none of them carries omitempty.

type createBody struct {
	OrderID  string `json:"order_id"`
	Amount   Amount `json:"amount"`
	Name     string `json:"name"`
	Phone    string `json:"phone"`
	Mail     string `json:"mail"`
	Desc     string `json:"desc"`
	Callback string `json:"callback"`
}

type transactionRefBody struct {
	ID      string `json:"id"`
	OrderID string `json:"order_id"`
}

type listBody struct {
	Page           int        `json:"page"`
	PageSize       int        `json:"page_size"`
	ID             string     `json:"id,omitempty"`
	OrderID        string     `json:"order_id,omitempty"`
	Amount         Amount     `json:"amount,omitempty"`
	Statuses       []Status   `json:"status,omitempty"`
	TrackID        string     `json:"track_id,omitempty"`
	CardNo         string     `json:"payment_card_no,omitempty"`
	HashedCardNo   string     `json:"payment_hashed_card_no,omitempty"`
	PaymentDate    *DateRange `json:"payment_date,omitempty"`
	SettlementDate *DateRange `json:"settlement_date,omitempty"`
}

func encodeCreate(r PaymentRequest) createBody {
	return createBody{
		OrderID:  r.OrderID,
		Amount:   r.Amount,
		Name:     r.Name,
		Phone:    r.Phone,
		Mail:     r.Email,
		Desc:     r.Description,
		Callback: r.Callback,
	}
}

func encodeRef(q TransactionQuery) transactionRefBody {
	return transactionRefBody{ID: q.ID, OrderID: q.OrderID}
}

func encodeList(q TransactionListQuery) listBody {
	return listBody{
		Page:           q.Page,
		PageSize:       q.PageSize,
		ID:             q.ID,
		OrderID:        q.OrderID,
		Amount:         q.Amount,
		Statuses:       q.Statuses,
		TrackID:        q.TrackID,
		CardNo:         q.CardNo,
		HashedCardNo:   q.HashedCardNo,
		PaymentDate:    q.PaymentDate,
		SettlementDate: q.SettlementDate,
	}
}

type createResponse struct {
	ID           string `json:"id"`
	Link         string `json:"link"`
	ErrorCode    int    `json:"error_code"`
	ErrorMessage string `json:"error_message"`
}

type errorBody struct {
	Code    int    `json:"error_code"`
	Message string `json:"error_message"`
}

// decodeCreateResult builds the creation outcome. The success flag is
// derived from the transport status alone; a well-formed body with a
// non-201 status is still a failure.
func decodeCreateResult(status int, raw []byte) (*CreateResult, error) {
	var w createResponse
	if err := json.Unmarshal(raw, &w); err != nil {
		return nil, fmt.Errorf("idpay: decode create response: %w", err)
	}
	return &CreateResult{
		Success:      status == http.StatusCreated,
		ID:           w.ID,
		Link:         strings.TrimSpace(w.Link),
		ErrorCode:    w.ErrorCode,
		ErrorMessage: w.ErrorMessage,
	}, nil
}

func decodeTransaction(raw []byte) (*Transaction, error) {
	var t Transaction
	if err := json.Unmarshal(raw, &t); err != nil {
		return nil, fmt.Errorf("idpay: decode transaction: %w", err)
	}
	return &t, nil
}

func decodeTransactionList(raw []byte) (*TransactionList, error) {
	var l TransactionList
	if err := json.Unmarshal(raw, &l); err != nil {
		return nil, fmt.Errorf("idpay: decode transaction list: %w", err)
	}
	return &l, nil
}

func decodeErrorBody(raw []byte) (int, string, error) {
	var b errorBody
	if err := json.Unmarshal(raw, &b); err != nil {
		return 0, "", fmt.Errorf("idpay: decode error response: %w", err)
	}
	return b.Code, b.Message, nil
}
