// Package notifier forwards batch payment outcomes to the customer-facing
// notification channel. Delivery itself lives outside this service.
package notifier

import (
	"context"

	reconciledomain "github.com/ArbeitEmployee/ARBEIT-CRM-sub001/internal/reconcile/domain"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

type Notifier interface {
	// BatchCompleted is invoked after a batch when the caller requested
	// email confirmations. Errors are advisory; reconciliation has already
	// been persisted.
	BatchCompleted(ctx context.Context, req reconciledomain.PaymentBatchRequest, report reconciledomain.BatchReport) error
}

// LogNotifier records the notification intent in the service log. It stands
// in for the mail collaborator in local and test deployments.
type LogNotifier struct {
	log *zap.Logger
}

func NewLogNotifier(log *zap.Logger) Notifier {
	return &LogNotifier{log: log.Named("notifier")}
}

func (n *LogNotifier) BatchCompleted(ctx context.Context, req reconciledomain.PaymentBatchRequest, report reconciledomain.BatchReport) error {
	invoiceIDs := make([]string, 0, len(report.Applied))
	for _, applied := range report.Applied {
		invoiceIDs = append(invoiceIDs, applied.Invoice.ID.String())
	}
	n.log.Info("payment confirmation requested",
		zap.Strings("invoice_ids", invoiceIDs),
		zap.String("payment_mode", req.PaymentMode),
		zap.Int64("total_applied", report.TotalApplied),
	)
	return nil
}

var Module = fx.Module("notifier",
	fx.Provide(NewLogNotifier),
)
