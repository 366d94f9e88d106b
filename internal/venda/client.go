package venda

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"resty.dev/v3"
)

// Client wraps the remote sale-management API. It does request/response
// mapping and error surfacing only; no business rules live here and no
// operation is retried.
type Client struct {
	http   *resty.Client
	logger *zap.Logger
}

// NewClient creates a sale service client for the given base URL, e.g.
// "http://localhost:5000/api".
func NewClient(baseURL string, timeout time.Duration, logger *zap.Logger) *Client {
	if logger == nil {
		logger, _ = zap.NewProduction()
	}

	hc := resty.New().
		SetBaseURL(baseURL).
		SetTimeout(timeout).
		SetHeader("Accept", "application/json")

	// Cada requisição leva um id próprio para correlação nos logs do servidor.
	hc.AddRequestMiddleware(func(_ *resty.Client, req *resty.Request) error {
		req.SetHeader("X-Request-ID", uuid.NewString())
		return nil
	})

	return &Client{http: hc, logger: logger}
}

// Close releases the underlying transport resources.
func (c *Client) Close() error {
	c.http.Close()
	return nil
}

// CreateSale opens a brand-new sale on the server.
func (c *Client) CreateSale(ctx context.Context) (*Sale, error) {
	var sale Sale
	res, err := c.http.R().
		SetContext(ctx).
		SetResult(&sale).
		SetError(&APIError{}).
		Post("/vendas")
	if err != nil {
		return nil, c.transportErr("create sale", err)
	}
	if !res.IsSuccess() {
		return nil, c.fail(res, "Erro ao criar nova venda")
	}
	return &sale, nil
}

// CurrentSale fetches the sale the server considers current. It returns
// (nil, nil) when the server reports none: absence is not an error.
func (c *Client) CurrentSale(ctx context.Context) (*Sale, error) {
	res, err := c.http.R().
		SetContext(ctx).
		SetError(&APIError{}).
		Get("/vendas/atual")
	if err != nil {
		return nil, c.transportErr("get current sale", err)
	}
	if !res.IsSuccess() {
		return nil, c.fail(res, "Erro ao carregar venda atual")
	}

	body := res.Bytes()
	if len(body) == 0 || string(body) == "null" {
		return nil, nil
	}
	var sale Sale
	if err := json.Unmarshal(body, &sale); err != nil {
		return nil, fmt.Errorf("decode current sale: %w", err)
	}
	return &sale, nil
}

// ClearCurrent asks the server for an atomic reset: drop whatever open
// sale exists and hand back a fresh one.
func (c *Client) ClearCurrent(ctx context.Context) (*Sale, error) {
	var sale Sale
	res, err := c.http.R().
		SetContext(ctx).
		SetResult(&sale).
		SetError(&APIError{}).
		Post("/vendas/limpar-atual")
	if err != nil {
		return nil, c.transportErr("clear current sale", err)
	}
	if !res.IsSuccess() {
		return nil, c.fail(res, "Erro ao limpar venda atual")
	}
	return &sale, nil
}

// GetSale fetches one sale by id.
func (c *Client) GetSale(ctx context.Context, id int64) (*Sale, error) {
	var sale Sale
	res, err := c.http.R().
		SetContext(ctx).
		SetPathParam("id", fmt.Sprint(id)).
		SetResult(&sale).
		SetError(&APIError{}).
		Get("/vendas/{id}")
	if err != nil {
		return nil, c.transportErr("get sale", err)
	}
	if !res.IsSuccess() {
		return nil, c.fail(res, "Erro ao buscar dados da venda")
	}
	return &sale, nil
}

// ListFinalized returns every finalized sale, in server order.
func (c *Client) ListFinalized(ctx context.Context) ([]Sale, error) {
	var sales []Sale
	res, err := c.http.R().
		SetContext(ctx).
		SetResult(&sales).
		SetError(&APIError{}).
		Get("/vendas")
	if err != nil {
		return nil, c.transportErr("list finalized sales", err)
	}
	if !res.IsSuccess() {
		return nil, c.fail(res, "Erro ao carregar histórico de vendas")
	}
	return sales, nil
}

// AddItem submits an item draft to the given sale and returns the updated
// sale with server-computed subtotal and total.
func (c *Client) AddItem(ctx context.Context, saleID int64, draft *ItemDraft) (*Sale, error) {
	var sale Sale
	res, err := c.http.R().
		SetContext(ctx).
		SetPathParam("id", fmt.Sprint(saleID)).
		SetBody(draft).
		SetResult(&sale).
		SetError(&APIError{}).
		Post("/vendas/{id}/itens")
	if err != nil {
		return nil, c.transportErr("add item", err)
	}
	if !res.IsSuccess() {
		return nil, c.fail(res, "Erro ao adicionar produto")
	}
	return &sale, nil
}

// RemoveItem deletes one item from the given sale and returns the updated
// sale.
func (c *Client) RemoveItem(ctx context.Context, saleID, itemID int64) (*Sale, error) {
	var sale Sale
	res, err := c.http.R().
		SetContext(ctx).
		SetPathParam("id", fmt.Sprint(saleID)).
		SetPathParam("itemId", fmt.Sprint(itemID)).
		SetResult(&sale).
		SetError(&APIError{}).
		Delete("/vendas/{id}/itens/{itemId}")
	if err != nil {
		return nil, c.transportErr("remove item", err)
	}
	if !res.IsSuccess() {
		return nil, c.fail(res, "Erro ao remover produto")
	}
	return &sale, nil
}

// Finalize closes the sale. Optional customer name and payment method are
// omitted from the body entirely when blank.
func (c *Client) Finalize(ctx context.Context, saleID int64, req *FinalizeRequest) (*Sale, error) {
	var sale Sale
	res, err := c.http.R().
		SetContext(ctx).
		SetPathParam("id", fmt.Sprint(saleID)).
		SetBody(req).
		SetResult(&sale).
		SetError(&APIError{}).
		Put("/vendas/{id}/finalizar")
	if err != nil {
		return nil, c.transportErr("finalize sale", err)
	}
	if !res.IsSuccess() {
		return nil, c.fail(res, "Erro ao finalizar venda")
	}
	return &sale, nil
}

// DeleteSale removes a sale entirely.
func (c *Client) DeleteSale(ctx context.Context, saleID int64) error {
	res, err := c.http.R().
		SetContext(ctx).
		SetPathParam("id", fmt.Sprint(saleID)).
		SetError(&APIError{}).
		Delete("/vendas/{id}")
	if err != nil {
		return c.transportErr("delete sale", err)
	}
	if !res.IsSuccess() {
		return c.fail(res, "Erro ao limpar venda")
	}
	return nil
}

func (c *Client) transportErr(op string, err error) error {
	c.logger.Error("sale service unreachable", zap.String("op", op), zap.Error(err))
	return fmt.Errorf("%s: %w", op, err)
}

// fail maps a non-success response to an *APIError, preferring the body's
// "erro" message and falling back to a fixed human-readable default.
func (c *Client) fail(res *resty.Response, fallback string) error {
	status := res.StatusCode()
	if apiErr, ok := res.Error().(*APIError); ok && apiErr.Message != "" {
		apiErr.StatusCode = status
		c.logger.Warn("sale service rejected request",
			zap.Int("status", status),
			zap.String("erro", apiErr.Message),
		)
		return apiErr
	}
	c.logger.Warn("sale service rejected request", zap.Int("status", status))
	return &APIError{StatusCode: status, Message: fallback}
}
