package venda

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	c := NewClient(srv.URL, 5*time.Second, zaptest.NewLogger(t))
	t.Cleanup(func() { _ = c.Close() })
	return c
}

func writeJSON(w http.ResponseWriter, status int, body string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = io.WriteString(w, body)
}

func TestClientAddItem(t *testing.T) {
	var gotPath, gotRequestID string
	var gotBody map[string]any

	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.Method + " " + r.URL.Path
		gotRequestID = r.Header.Get("X-Request-ID")
		_ = json.NewDecoder(r.Body).Decode(&gotBody)
		writeJSON(w, http.StatusOK, `{
			"id": 7, "data_venda": "2024-01-05T10:00:00", "total": 91.0, "finalizada": false,
			"itens": [{"id": 1, "nome_produto": "Ração 10kg", "quantidade": 2.0, "tipo_quantidade": "kg", "preco_unitario": 45.5, "subtotal": 91.0}]
		}`)
	})

	draft := &ItemDraft{ProductName: "Ração 10kg", Quantity: dec("2"), QuantityUnit: UnitKg, UnitPrice: dec("45.50")}
	sale, err := c.AddItem(context.Background(), 7, draft)
	require.NoError(t, err)

	assert.Equal(t, "POST /vendas/7/itens", gotPath)
	assert.NotEmpty(t, gotRequestID, "every request carries a correlation id")
	assert.Equal(t, "Ração 10kg", gotBody["nome_produto"])
	assert.Equal(t, "kg", gotBody["tipo_quantidade"])
	assert.True(t, sale.Total.Equal(dec("91.00")))
	require.Len(t, sale.Items, 1)
}

func TestClientSurfacesServerErro(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusBadRequest, `{"erro": "Venda já finalizada"}`)
	})

	_, err := c.AddItem(context.Background(), 7, &ItemDraft{ProductName: "x", Quantity: dec("1"), QuantityUnit: UnitUnidade, UnitPrice: dec("1")})
	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusBadRequest, apiErr.StatusCode)
	assert.Equal(t, "Venda já finalizada", apiErr.Message)
}

func TestClientFallsBackToDefaultMessage(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})

	_, err := c.RemoveItem(context.Background(), 7, 1)
	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, "Erro ao remover produto", apiErr.Message)
}

func TestClientCurrentSaleAbsent(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/vendas/atual", r.URL.Path)
		writeJSON(w, http.StatusOK, `null`)
	})

	sale, err := c.CurrentSale(context.Background())
	require.NoError(t, err)
	assert.Nil(t, sale, "absent current sale is not an error")
}

func TestClientListFinalizedPreservesServerOrder(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, `[
			{"id": 2, "data_venda": "2024-01-05T10:00:00", "total": 10.0, "finalizada": true, "itens": []},
			{"id": 1, "data_venda": "2024-01-03T10:00:00", "total": 20.0, "finalizada": true, "itens": []}
		]`)
	})

	sales, err := c.ListFinalized(context.Background())
	require.NoError(t, err)
	require.Len(t, sales, 2)
	assert.Equal(t, int64(2), sales[0].ID)
	assert.Equal(t, int64(1), sales[1].ID)
}

func TestClientFinalizeOmitsBlankOptionalFields(t *testing.T) {
	var raw []byte
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPut, r.Method)
		assert.Equal(t, "/vendas/7/finalizar", r.URL.Path)
		raw, _ = io.ReadAll(r.Body)
		writeJSON(w, http.StatusOK, `{"id": 7, "data_venda": "2024-01-05T10:00:00", "total": 91.0, "finalizada": true, "itens": []}`)
	})

	sale, err := c.Finalize(context.Background(), 7, &FinalizeRequest{})
	require.NoError(t, err)
	assert.True(t, sale.Finalized)
	assert.JSONEq(t, `{}`, string(raw), "blank optional fields must not appear in the body")
}

func TestClientDeleteSale(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodDelete, r.Method)
		assert.Equal(t, "/vendas/7", r.URL.Path)
		writeJSON(w, http.StatusOK, `{"mensagem": "Venda excluída"}`)
	})

	require.NoError(t, c.DeleteSale(context.Background(), 7))
}
