package server

import (
	"net/http"
	"strings"
	"time"

	reconciledomain "github.com/ArbeitEmployee/ARBEIT-CRM-sub001/internal/reconcile/domain"
	"github.com/bwmarrin/snowflake"
	"github.com/gin-gonic/gin"
)

type batchPaymentsRequest struct {
	PaymentDate   string           `json:"payment_date"`
	PaymentMode   string           `json:"payment_mode"`
	TransactionID string           `json:"transaction_id"`
	SendEmail     bool             `json:"send_email"`
	Amounts       map[string]int64 `json:"amounts"`
}

// @Summary      Batch Payments
// @Description  Apply one payment across multiple outstanding invoices
// @Tags         invoices
// @Accept       json
// @Produce      json
// @Security     ApiKeyAuth
// @Param        request body batchPaymentsRequest true "Batch Payments Request"
// @Success      200  {object}  reconciledomain.BatchReport
// @Router       /invoices/batch-payments [post]
func (s *Server) BatchPayments(c *gin.Context) {
	if !s.batchLimiter.Allow(c.ClientIP()) {
		AbortWithError(c, ErrRateLimited)
		return
	}

	var req batchPaymentsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	paymentDate, err := parsePaymentDate(req.PaymentDate)
	if err != nil {
		AbortWithError(c, newValidationError("payment_date", "invalid_payment_date", "invalid payment_date"))
		return
	}

	amounts := make(map[snowflake.ID]int64, len(req.Amounts))
	for rawID, amount := range req.Amounts {
		id, err := snowflake.ParseString(strings.TrimSpace(rawID))
		if err != nil {
			AbortWithError(c, newValidationError("amounts", "invalid_invoice_id", "invalid invoice id "+rawID))
			return
		}
		amounts[id] = amount
	}

	batch := reconciledomain.PaymentBatchRequest{
		PaymentDate:   paymentDate,
		PaymentMode:   strings.TrimSpace(req.PaymentMode),
		TransactionID: strings.TrimSpace(req.TransactionID),
		SendEmail:     req.SendEmail,
		Amounts:       amounts,
	}

	report, err := s.reconcileSvc.ApplyBatch(c.Request.Context(), batch)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	if batch.SendEmail && s.notifier != nil {
		if err := s.notifier.BatchCompleted(c.Request.Context(), batch, report); err != nil {
			s.log.Warn("batch notification failed")
		}
	}

	status := http.StatusOK
	if len(report.Failed) > 0 || report.Aborted {
		status = http.StatusMultiStatus
	}
	c.JSON(status, gin.H{"data": report})
}

func parsePaymentDate(raw string) (time.Time, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		// Presence is validated by the reconciler; zero means absent.
		return time.Time{}, nil
	}
	if parsed, err := time.Parse("2006-01-02", raw); err == nil {
		return parsed.UTC(), nil
	}
	parsed, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return time.Time{}, err
	}
	return parsed.UTC(), nil
}
