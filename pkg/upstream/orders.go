package upstream

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	pkgerrors "github.com/mercaline/storefront-gateway/pkg/errors"
)

const invoiceReadLimit int64 = 32 << 20 // invoices are small PDFs; cap defensively

// OrderQuery carries the admin order list selections.
type OrderQuery struct {
	Page   int
	Limit  int
	Status string
}

func (q OrderQuery) values() url.Values {
	values := url.Values{}
	if q.Page > 0 {
		values.Set("page", strconv.Itoa(q.Page))
	}
	if q.Limit > 0 {
		values.Set("limit", strconv.Itoa(q.Limit))
	}
	if s := strings.TrimSpace(q.Status); s != "" {
		values.Set("status", s)
	}
	return values
}

// ListOrders fetches one page of all orders (admin).
func (c *Client) ListOrders(ctx context.Context, query OrderQuery) (*OrderPage, error) {
	var page OrderPage
	if err := c.get(ctx, "/orders", query.values(), &page); err != nil {
		return nil, err
	}
	return &page, nil
}

// ListMyOrders fetches the authenticated user's order history.
func (c *Client) ListMyOrders(ctx context.Context, page, limit int) (*OrderPage, error) {
	query := OrderQuery{Page: page, Limit: limit}
	var result OrderPage
	if err := c.get(ctx, "/orders/mine", query.values(), &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// GetOrder fetches a single order.
func (c *Client) GetOrder(ctx context.Context, orderID string) (*Order, error) {
	id := strings.TrimSpace(orderID)
	if id == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "order id is required")
	}
	var order Order
	if err := c.get(ctx, "/orders/"+url.PathEscape(id), nil, &order); err != nil {
		return nil, err
	}
	return &order, nil
}

// MarkOrderPaid flips the payment flag (admin).
func (c *Client) MarkOrderPaid(ctx context.Context, orderID string) (*Order, error) {
	return c.orderAction(ctx, orderID, "pay")
}

// MarkOrderDelivered flips the delivery flag (admin).
func (c *Client) MarkOrderDelivered(ctx context.Context, orderID string) (*Order, error) {
	return c.orderAction(ctx, orderID, "deliver")
}

// UpdateOrderStatus sets the fulfillment status (admin).
func (c *Client) UpdateOrderStatus(ctx context.Context, orderID, status string) (*Order, error) {
	id := strings.TrimSpace(orderID)
	if id == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "order id is required")
	}
	trimmed := strings.TrimSpace(status)
	if trimmed == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "status is required")
	}
	payload := map[string]string{"status": trimmed}
	var order Order
	if err := c.put(ctx, "/orders/"+url.PathEscape(id)+"/status", payload, &order); err != nil {
		return nil, err
	}
	return &order, nil
}

func (c *Client) orderAction(ctx context.Context, orderID, action string) (*Order, error) {
	id := strings.TrimSpace(orderID)
	if id == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "order id is required")
	}
	var order Order
	if err := c.put(ctx, "/orders/"+url.PathEscape(id)+"/"+action, nil, &order); err != nil {
		return nil, err
	}
	return &order, nil
}

// InvoiceFile is the downloadable invoice payload.
type InvoiceFile struct {
	Filename    string
	ContentType string
	Data        []byte
}

// DownloadInvoice fetches the order invoice. The endpoint answers with either
// a PDF body or a JSON error payload; the content type decides which.
func (c *Client) DownloadInvoice(ctx context.Context, orderID string) (*InvoiceFile, error) {
	id := strings.TrimSpace(orderID)
	if id == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "order id is required")
	}

	req, err := c.newRequest(ctx, http.MethodGet, "/orders/"+url.PathEscape(id)+"/invoice", nil, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/pdf, application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "execute invoice download")
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, c.mapStatusError(resp)
	}

	mediaType, _, err := mime.ParseMediaType(resp.Header.Get("Content-Type"))
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "invoice download failed")
	}

	switch mediaType {
	case "application/pdf":
		data, err := io.ReadAll(io.LimitReader(resp.Body, invoiceReadLimit))
		if err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "read invoice body")
		}
		return &InvoiceFile{
			Filename:    fmt.Sprintf("invoice-%s.pdf", id),
			ContentType: mediaType,
			Data:        data,
		}, nil
	case "application/json":
		// The server reported a problem in-band despite the 2xx status.
		var payload struct {
			Message string `json:"message"`
		}
		if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil || payload.Message == "" {
			return nil, pkgerrors.New(pkgerrors.CodeDependency, "invoice download failed")
		}
		return nil, pkgerrors.New(pkgerrors.CodeUpstream, payload.Message)
	}
	return nil, pkgerrors.New(pkgerrors.CodeDependency, "invoice download failed")
}
