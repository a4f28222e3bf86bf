package server

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/ArbeitEmployee/ARBEIT-CRM-sub001/internal/clock"
	"github.com/ArbeitEmployee/ARBEIT-CRM-sub001/internal/config"
	invoicedomain "github.com/ArbeitEmployee/ARBEIT-CRM-sub001/internal/invoice/domain"
	invoicerepository "github.com/ArbeitEmployee/ARBEIT-CRM-sub001/internal/invoice/repository"
	invoiceservice "github.com/ArbeitEmployee/ARBEIT-CRM-sub001/internal/invoice/service"
	reconcileservice "github.com/ArbeitEmployee/ARBEIT-CRM-sub001/internal/reconcile/service"
	"github.com/bwmarrin/snowflake"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/datatypes"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type testHarness struct {
	server *Server
	engine *gin.Engine
	db     *gorm.DB
	repo   invoicedomain.Repository
}

func newTestHarness(t *testing.T, cfg config.Config) *testHarness {
	t.Helper()
	gin.SetMode(gin.TestMode)

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := db.AutoMigrate(&invoicedomain.Invoice{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}

	node, err := snowflake.NewNode(1)
	if err != nil {
		t.Fatalf("snowflake node: %v", err)
	}

	repo := invoicerepository.Provide(db)
	log := zap.NewNop()
	invoiceSvc := invoiceservice.NewService(invoiceservice.Params{
		Log: log, GenID: node, Repo: repo,
	})
	reconcileSvc := reconcileservice.NewService(reconcileservice.Params{
		Log:    log,
		Repo:   repo,
		Clock:  clock.SystemClock{},
		Config: reconcileservice.Config{ContinueOnError: true},
	})

	engine := gin.New()
	srv := NewServer(Params{
		Cfg:          cfg,
		Log:          log,
		DB:           db,
		Engine:       engine,
		InvoiceSvc:   invoiceSvc,
		ReconcileSvc: reconcileSvc,
	})
	srv.RegisterRoutes()

	return &testHarness{server: srv, engine: engine, db: db, repo: repo}
}

func (h *testHarness) seedInvoice(t *testing.T, id int64, total, paid int64, status invoicedomain.InvoiceStatus) {
	t.Helper()
	err := h.repo.Create(context.Background(), &invoicedomain.Invoice{
		ID:            snowflake.ID(id),
		CustomerID:    snowflake.ID(100),
		InvoiceNumber: fmt.Sprintf("INV-%04d", id),
		Status:        status,
		TotalAmount:   total,
		PaidAmount:    paid,
		Currency:      "USD",
		Metadata:      datatypes.JSONMap{},
	})
	if err != nil {
		t.Fatalf("seed invoice %d: %v", id, err)
	}
}

func (h *testHarness) postJSON(t *testing.T, path string, body any, headers map[string]string) *httptest.ResponseRecorder {
	t.Helper()
	encoded, err := json.Marshal(body)
	if err != nil {
		t.Fatalf("marshal body: %v", err)
	}
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(encoded))
	req.Header.Set("Content-Type", "application/json")
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	rec := httptest.NewRecorder()
	h.engine.ServeHTTP(rec, req)
	return rec
}

func TestBatchPaymentsAppliesAndReports(t *testing.T) {
	h := newTestHarness(t, config.Config{})
	h.seedInvoice(t, 1, 10000, 0, invoicedomain.InvoiceStatusUnpaid)
	h.seedInvoice(t, 2, 10000, 6000, invoicedomain.InvoiceStatusPartiallyPaid)
	h.seedInvoice(t, 3, 5000, 0, invoicedomain.InvoiceStatusDraft)

	rec := h.postJSON(t, "/api/invoices/batch-payments", map[string]any{
		"payment_date": "2024-06-01",
		"payment_mode": "Bank",
		"amounts": map[string]int64{
			"1": 4000,
			"2": 99900,
			"3": 1000,
		},
	}, nil)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var resp struct {
		Data struct {
			Applied []struct {
				Invoice invoicedomain.Invoice `json:"invoice"`
				Amount  int64                 `json:"amount"`
			} `json:"applied"`
			TotalApplied int64 `json:"total_applied"`
		} `json:"data"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(resp.Data.Applied) != 2 {
		t.Fatalf("expected 2 applied invoices, got %d", len(resp.Data.Applied))
	}
	if resp.Data.TotalApplied != 8000 {
		t.Fatalf("expected total applied 8000, got %d", resp.Data.TotalApplied)
	}

	stored, err := h.repo.FindByID(context.Background(), snowflake.ID(2))
	if err != nil {
		t.Fatalf("find invoice 2: %v", err)
	}
	if stored.Status != invoicedomain.InvoiceStatusPaid || stored.PaidAmount != 10000 {
		t.Fatalf("expected invoice 2 settled, got %+v", stored)
	}

	draft, err := h.repo.FindByID(context.Background(), snowflake.ID(3))
	if err != nil {
		t.Fatalf("find invoice 3: %v", err)
	}
	if draft.PaidAmount != 0 || draft.Status != invoicedomain.InvoiceStatusDraft {
		t.Fatalf("expected draft untouched, got %+v", draft)
	}
}

func TestBatchPaymentsValidationErrors(t *testing.T) {
	h := newTestHarness(t, config.Config{})
	h.seedInvoice(t, 1, 10000, 0, invoicedomain.InvoiceStatusUnpaid)

	cases := []struct {
		name string
		body map[string]any
		code string
	}{
		{
			"missing mode",
			map[string]any{"payment_date": "2024-06-01", "amounts": map[string]int64{"1": 100}},
			"missing_payment_mode",
		},
		{
			"missing date",
			map[string]any{"payment_mode": "Cash", "amounts": map[string]int64{"1": 100}},
			"missing_payment_date",
		},
		{
			"no payment entered",
			map[string]any{"payment_date": "2024-06-01", "payment_mode": "Cash", "amounts": map[string]int64{"1": 0}},
			"no_payment_entered",
		},
	}
	for _, tc := range cases {
		rec := h.postJSON(t, "/api/invoices/batch-payments", tc.body, nil)
		if rec.Code != http.StatusUnprocessableEntity {
			t.Fatalf("%s: expected 422, got %d: %s", tc.name, rec.Code, rec.Body.String())
		}
		var resp struct {
			Error APIError `json:"error"`
		}
		if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
			t.Fatalf("%s: decode response: %v", tc.name, err)
		}
		if resp.Error.Code != tc.code {
			t.Fatalf("%s: expected code %q, got %q", tc.name, tc.code, resp.Error.Code)
		}
	}
}

func TestBatchPaymentsRejectsBadInvoiceID(t *testing.T) {
	h := newTestHarness(t, config.Config{})

	rec := h.postJSON(t, "/api/invoices/batch-payments", map[string]any{
		"payment_date": "2024-06-01",
		"payment_mode": "Cash",
		"amounts":      map[string]int64{"not-an-id": 100},
	}, nil)
	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422, got %d: %s", rec.Code, rec.Body.String())
	}
}

func TestBearerRequired(t *testing.T) {
	h := newTestHarness(t, config.Config{APIToken: "api-secret"})
	h.seedInvoice(t, 1, 10000, 0, invoicedomain.InvoiceStatusUnpaid)

	body := map[string]any{
		"payment_date": "2024-06-01",
		"payment_mode": "Cash",
		"amounts":      map[string]int64{"1": 100},
	}

	rec := h.postJSON(t, "/api/invoices/batch-payments", body, nil)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 without token, got %d", rec.Code)
	}

	rec = h.postJSON(t, "/api/invoices/batch-payments", body, map[string]string{
		"Authorization": "Bearer wrong",
	})
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 with wrong token, got %d", rec.Code)
	}

	rec = h.postJSON(t, "/api/invoices/batch-payments", body, map[string]string{
		"Authorization": "Bearer api-secret",
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 with valid token, got %d: %s", rec.Code, rec.Body.String())
	}
}

func TestListInvoicesEndpoint(t *testing.T) {
	h := newTestHarness(t, config.Config{})
	h.seedInvoice(t, 1, 10000, 0, invoicedomain.InvoiceStatusUnpaid)
	h.seedInvoice(t, 2, 5000, 0, invoicedomain.InvoiceStatusDraft)

	req := httptest.NewRequest(http.MethodGet, "/api/invoices?payable=true", nil)
	rec := httptest.NewRecorder()
	h.engine.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	var resp struct {
		Data struct {
			Invoices []invoicedomain.Invoice `json:"invoices"`
		} `json:"data"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(resp.Data.Invoices) != 1 || resp.Data.Invoices[0].ID != 1 {
		t.Fatalf("expected only the payable invoice, got %+v", resp.Data.Invoices)
	}
}

func TestHealthEndpoint(t *testing.T) {
	h := newTestHarness(t, config.Config{})

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	rec := httptest.NewRecorder()
	h.engine.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}
