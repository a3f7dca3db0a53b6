package main

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"time"

	"go.uber.org/zap"

	"idpay/internal/config"
	"idpay/internal/pkg/utils"
	"idpay/pkg/idpay"
)

func main() {
	// --- Logger ---
	logger, err := zap.NewProduction()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to create logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	// --- Config ---
	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("Failed to load config", zap.Error(err))
	}

	client := idpay.NewClient(cfg.IDPay.APIKey, cfg.IDPay.Sandbox,
		idpay.WithBaseURL(cfg.IDPay.BaseURL),
		idpay.WithTimeout(cfg.IDPay.Timeout),
		idpay.WithLogger(logger),
	)

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	if len(os.Args) < 2 {
		usage()
	}

	switch os.Args[1] {
	case "pay":
		runPay(ctx, logger, cfg, client)
	case "verify":
		runRef(ctx, logger, client.VerifyTransaction, "Transaction verified")
	case "inquiry":
		runRef(ctx, logger, client.InquireTransaction, "Transaction state")
	case "list":
		runList(ctx, logger, client)
	default:
		usage()
	}
}

func usage() {
	fmt.Fprintln(os.Stderr, `usage:
  idpay pay <amount> [order-id]
  idpay verify <id> <order-id>
  idpay inquiry <id> <order-id>
  idpay list [page [page-size]]`)
	os.Exit(2)
}

func runPay(ctx context.Context, logger *zap.Logger, cfg *config.Config, client *idpay.Client) {
	if len(os.Args) < 3 {
		usage()
	}
	amount, err := strconv.ParseInt(os.Args[2], 10, 64)
	if err != nil {
		logger.Fatal("Invalid amount", zap.String("amount", os.Args[2]))
	}
	orderID := utils.GenerateOrderID()
	if len(os.Args) > 3 {
		orderID = os.Args[3]
	}

	res, err := client.RequestPayment(ctx, idpay.PaymentRequest{
		OrderID:  orderID,
		Amount:   idpay.Amount(amount),
		Callback: cfg.IDPay.Callback,
	})
	if err != nil {
		logger.Fatal("Payment request failed", zap.Error(err))
	}
	logger.Info("Payment created",
		zap.String("order_id", orderID),
		zap.String("id", res.ID),
		zap.String("link", res.Link),
		zap.String("amount", utils.FormatRial(amount)))
}

func runRef(
	ctx context.Context,
	logger *zap.Logger,
	op func(context.Context, idpay.TransactionQuery) (*idpay.Transaction, error),
	okMsg string,
) {
	if len(os.Args) < 4 {
		usage()
	}
	tx, err := op(ctx, idpay.TransactionQuery{ID: os.Args[2], OrderID: os.Args[3]})
	if err != nil {
		logger.Fatal("Gateway call failed", zap.Error(err))
	}
	logger.Info(okMsg,
		zap.String("id", tx.ID),
		zap.String("order_id", tx.OrderID),
		zap.Int64("track_id", tx.TrackID),
		zap.String("status", tx.Status.String()),
		zap.String("amount", utils.FormatRial(int64(tx.Amount))),
		zap.String("card_no", tx.Payment.CardNo))
}

func runList(ctx context.Context, logger *zap.Logger, client *idpay.Client) {
	page, pageSize := 0, 25
	if len(os.Args) > 2 {
		page, _ = strconv.Atoi(os.Args[2])
	}
	if len(os.Args) > 3 {
		pageSize, _ = strconv.Atoi(os.Args[3])
	}

	list, err := client.ListTransactions(ctx, idpay.TransactionListQuery{Page: page, PageSize: pageSize})
	if err != nil {
		logger.Fatal("Listing transactions failed", zap.Error(err))
	}
	logger.Info("Transactions",
		zap.Int64("total", list.Total),
		zap.Int("page", list.Page),
		zap.Int("returned", len(list.Records)))
	for _, tx := range list.Records {
		logger.Info("Transaction",
			zap.String("id", tx.ID),
			zap.String("order_id", tx.OrderID),
			zap.String("status", tx.Status.String()),
			zap.String("amount", utils.FormatRial(int64(tx.Amount))))
	}
}
