// Package recordstore talks to the upstream REST record store holding
// invoice data.
package recordstore

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/ArbeitEmployee/ARBEIT-CRM-sub001/internal/credentials"
	invoicedomain "github.com/ArbeitEmployee/ARBEIT-CRM-sub001/internal/invoice/domain"
	"github.com/bwmarrin/snowflake"
)

type Config struct {
	BaseURL string
	Timeout time.Duration
}

// Client implements invoice/domain.Repository against the upstream store.
// Every call carries the process-wide bearer credential; a rejected
// credential clears the store so the caller is forced to re-authenticate.
type Client struct {
	baseURL string
	http    *http.Client
	creds   *credentials.Store
}

func NewClient(cfg Config, creds *credentials.Store) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	return &Client{
		baseURL: strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/"),
		http:    &http.Client{Timeout: timeout},
		creds:   creds,
	}
}

type listEnvelope struct {
	Invoices []invoicedomain.Invoice `json:"invoices"`
}

func (c *Client) List(ctx context.Context) ([]invoicedomain.Invoice, error) {
	var out listEnvelope
	if err := c.do(ctx, http.MethodGet, "/invoices", nil, &out); err != nil {
		return nil, err
	}
	return out.Invoices, nil
}

func (c *Client) FindByID(ctx context.Context, id snowflake.ID) (*invoicedomain.Invoice, error) {
	var out invoicedomain.Invoice
	if err := c.do(ctx, http.MethodGet, "/invoices/"+id.String(), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) Create(ctx context.Context, invoice *invoicedomain.Invoice) error {
	return c.do(ctx, http.MethodPost, "/invoices", invoice, invoice)
}

// Update replaces the stored record in its entirety; the store owns
// created_at/updated_at.
func (c *Client) Update(ctx context.Context, invoice invoicedomain.Invoice) (*invoicedomain.Invoice, error) {
	var out invoicedomain.Invoice
	if err := c.do(ctx, http.MethodPut, "/invoices/"+invoice.ID.String(), invoice, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) do(ctx context.Context, method, path string, body any, out any) error {
	token, err := c.creds.Token()
	if err != nil {
		return invoicedomain.ErrUnauthorized
	}

	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reader = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "Bearer "+token)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", invoicedomain.ErrStoreUnavailable, err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		c.creds.Clear()
		return invoicedomain.ErrUnauthorized
	case resp.StatusCode == http.StatusNotFound:
		return invoicedomain.ErrInvoiceNotFound
	case resp.StatusCode < 200 || resp.StatusCode >= 300:
		return fmt.Errorf("%w: status %d", invoicedomain.ErrStoreUnavailable, resp.StatusCode)
	}

	if out == nil {
		return nil
	}
	return json.NewDecoder(resp.Body).Decode(out)
}
