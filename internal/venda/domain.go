package venda

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

// Unidades de quantidade aceitas pela API.
const (
	UnitUnidade = "unidade"
	UnitKg      = "kg"
)

func init() {
	// A API fala números JSON, não strings.
	decimal.MarshalJSONWithoutQuotes = true
}

// Item is one product entry inside a sale. Subtotal comes computed from
// the server and is displayed as-is, never recomputed here.
type Item struct {
	ID           int64           `json:"id"`
	ProductName  string          `json:"nome_produto"`
	Quantity     decimal.Decimal `json:"quantidade"`
	QuantityUnit string          `json:"tipo_quantidade"`
	UnitPrice    decimal.Decimal `json:"preco_unitario"`
	Subtotal     decimal.Decimal `json:"subtotal"`
}

// UnitSuffix returns the display suffix for the item quantity.
func (i Item) UnitSuffix() string {
	if i.QuantityUnit == UnitKg {
		return "kg"
	}
	return "unid."
}

// Sale represents a sales transaction, open or finalized. The total is
// authoritative from the server response.
type Sale struct {
	ID            int64           `json:"id"`
	Date          APITime         `json:"data_venda"`
	Total         decimal.Decimal `json:"total"`
	Finalized     bool            `json:"finalizada"`
	CustomerName  *string         `json:"nome_cliente"`
	PaymentMethod *string         `json:"forma_pagamento"`
	Items         []Item          `json:"itens"`
}

// HasItems reports whether the sale holds at least one item.
func (s *Sale) HasItems() bool {
	return s != nil && len(s.Items) > 0
}

// Clone returns a deep copy, so callers can hand out snapshots without
// exposing the internal item slice.
func (s *Sale) Clone() *Sale {
	if s == nil {
		return nil
	}
	c := *s
	c.Items = append([]Item(nil), s.Items...)
	if s.CustomerName != nil {
		v := *s.CustomerName
		c.CustomerName = &v
	}
	if s.PaymentMethod != nil {
		v := *s.PaymentMethod
		c.PaymentMethod = &v
	}
	return &c
}

// ItemDraft is the client-side input for adding an item. It is validated
// locally before any request is issued.
type ItemDraft struct {
	ProductName  string          `json:"nome_produto" validate:"required"`
	Quantity     decimal.Decimal `json:"quantidade" validate:"gt=0"`
	QuantityUnit string          `json:"tipo_quantidade" validate:"required,oneof=unidade kg"`
	UnitPrice    decimal.Decimal `json:"preco_unitario" validate:"gt=0"`
}

// Normalize trims free-text fields and defaults the quantity unit.
func (d *ItemDraft) Normalize() {
	d.ProductName = strings.TrimSpace(d.ProductName)
	if d.QuantityUnit == "" {
		d.QuantityUnit = UnitUnidade
	}
}

// FinalizeRequest carries the optional finalization fields. Blank fields
// are omitted from the JSON body entirely.
type FinalizeRequest struct {
	CustomerName  string `json:"nome_cliente,omitempty"`
	PaymentMethod string `json:"forma_pagamento,omitempty"`
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterCustomTypeFunc(func(field reflect.Value) interface{} {
		if d, ok := field.Interface().(decimal.Decimal); ok {
			f, _ := d.Float64()
			return f
		}
		return nil
	}, decimal.Decimal{})
	return v
}

// ValidateDraft checks an item draft locally. It returns ErrInvalidItem
// wrapped with a human-readable message on the first violation.
func ValidateDraft(d *ItemDraft) error {
	d.Normalize()
	if err := validate.Struct(d); err != nil {
		return fmt.Errorf("%w: %s", ErrInvalidItem, draftViolation(err))
	}
	return nil
}

func draftViolation(err error) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return "dados inválidos"
	}
	switch verrs[0].Field() {
	case "ProductName":
		return "informe o nome do produto"
	case "Quantity":
		return "a quantidade deve ser maior que zero"
	case "UnitPrice":
		return "o preço unitário deve ser maior que zero"
	case "QuantityUnit":
		return "tipo de quantidade deve ser 'unidade' ou 'kg'"
	}
	return "dados inválidos"
}

// APITime parses the timestamps the API emits. The server writes naive
// ISO-8601 (no zone); values are interpreted in local time.
type APITime struct {
	time.Time
}

var apiTimeLayouts = []string{
	"2006-01-02T15:04:05.999999",
	"2006-01-02T15:04:05",
	time.RFC3339,
}

func (t *APITime) UnmarshalJSON(b []byte) error {
	s := strings.Trim(string(b), `"`)
	if s == "null" || s == "" {
		t.Time = time.Time{}
		return nil
	}
	for _, layout := range apiTimeLayouts {
		if parsed, err := time.ParseInLocation(layout, s, time.Local); err == nil {
			t.Time = parsed
			return nil
		}
	}
	return fmt.Errorf("unrecognized timestamp %q", s)
}

func (t APITime) MarshalJSON() ([]byte, error) {
	if t.IsZero() {
		return []byte("null"), nil
	}
	return []byte(`"` + t.Format("2006-01-02T15:04:05") + `"`), nil
}
