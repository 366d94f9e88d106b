// Package ticket produces the printable receipt PDF for a finalized
// sale: an HTML coupon rendered through html/template and converted by
// a Gotenberg instance.
package ticket

import (
	"bytes"
	"context"
	"fmt"
	"html/template"
	"os"
	"path/filepath"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/ferrigb/sistema-nota-consumidor/internal/format"
	"github.com/ferrigb/sistema-nota-consumidor/internal/venda"
)

// Converter turns receipt HTML into PDF bytes.
type Converter interface {
	RenderHTML(ctx context.Context, html string) ([]byte, error)
}

// Store is the header block printed on every coupon.
type Store struct {
	Name    string
	Tagline string
	Address string
	Phone   string
}

// Exporter writes receipt PDFs into an output directory.
type Exporter struct {
	converter Converter
	store     Store
	outDir    string
	logger    *zap.Logger
	tmpl      *template.Template
}

// NewExporter wires a receipt exporter.
func NewExporter(converter Converter, store Store, outDir string, logger *zap.Logger) *Exporter {
	if logger == nil {
		logger, _ = zap.NewProduction()
	}
	return &Exporter{
		converter: converter,
		store:     store,
		outDir:    outDir,
		logger:    logger,
		tmpl:      couponTemplate,
	}
}

// Export renders the sale to HTML, converts it to PDF and writes
// cupom_venda_<id>.pdf. It satisfies the manager's Exporter interface.
func (e *Exporter) Export(ctx context.Context, sale *venda.Sale) error {
	html, err := e.RenderHTML(sale)
	if err != nil {
		return fmt.Errorf("render coupon: %w", err)
	}
	pdf, err := e.converter.RenderHTML(ctx, html)
	if err != nil {
		return fmt.Errorf("convert coupon: %w", err)
	}

	path := filepath.Join(e.outDir, fmt.Sprintf("cupom_venda_%d.pdf", sale.ID))
	if err := os.WriteFile(path, pdf, 0o644); err != nil {
		return fmt.Errorf("write coupon: %w", err)
	}
	e.logger.Info("coupon written", zap.Int64("sale_id", sale.ID), zap.String("path", path))
	return nil
}

// RenderHTML produces the coupon HTML for one finalized sale.
func (e *Exporter) RenderHTML(sale *venda.Sale) (string, error) {
	var buf bytes.Buffer
	if err := e.tmpl.Execute(&buf, couponData{Store: e.store, Sale: sale}); err != nil {
		return "", err
	}
	return buf.String(), nil
}

type couponData struct {
	Store Store
	Sale  *venda.Sale
}

var couponTemplate = template.Must(template.New("cupom").Funcs(template.FuncMap{
	"currency": func(v decimal.Decimal) string { return format.Currency(v) },
	"quantity": func(v decimal.Decimal) string { return format.Quantity(v) },
	"datetime": func(t venda.APITime) string { return format.DateTime(t.Time) },
	"payment": func(s *venda.Sale) string {
		if s.PaymentMethod != nil && *s.PaymentMethod != "" {
			return *s.PaymentMethod
		}
		return "Não Informado"
	},
}).Parse(couponHTML))

// Layout mirrors the original jsPDF coupon: green header with the store
// identity, sale title and date, optional customer line, item table,
// total, payment method and the non-fiscal footer.
const couponHTML = `<!DOCTYPE html>
<html lang="pt-BR">
<head>
<meta charset="utf-8">
<style>
  body { font-family: Helvetica, Arial, sans-serif; font-size: 12px; margin: 0; }
  .header, .footer { background: #2ecc71; color: #fff; text-align: center; padding: 6px 0; }
  .header h1 { margin: 0; font-size: 20px; }
  .header p { margin: 2px 0 0; font-size: 9px; }
  .store { margin: 10px 15px; font-size: 11px; }
  .title { text-align: center; font-size: 16px; font-weight: bold; margin-top: 10px; }
  .date { text-align: center; font-size: 11px; }
  .customer { margin: 8px 15px; font-weight: bold; }
  table { width: calc(100% - 30px); margin: 10px 15px; border-collapse: collapse; font-size: 11px; }
  th { background: #2ecc71; color: #fff; text-align: left; padding: 4px; }
  td { padding: 4px; }
  tr:nth-child(even) td { background: #f5f5f5; }
  .total { text-align: right; margin: 5px 15px; font-size: 14px; font-weight: bold; }
  .payment { margin: 5px 15px; }
  .thanks { text-align: center; font-style: italic; margin: 12px 0; }
  .footer { font-size: 9px; }
</style>
</head>
<body>
  <div class="header">
    <h1>{{.Store.Name}}</h1>
    <p>{{.Store.Tagline}}</p>
  </div>
  <div class="store">
    {{.Store.Address}}<br>
    {{.Store.Phone}}
  </div>
  <div class="title">CUPOM FISCAL - VENDA #{{.Sale.ID}}</div>
  <div class="date">Data: {{datetime .Sale.Date}}</div>
  {{with .Sale.CustomerName}}<div class="customer">Cliente: {{.}}</div>{{end}}
  <table>
    <tr><th>Produto</th><th>Qtd</th><th>Preço Unit.</th><th>Subtotal</th></tr>
    {{range .Sale.Items}}
    <tr>
      <td>{{.ProductName}}</td>
      <td>{{quantity .Quantity}} {{.UnitSuffix}}</td>
      <td>R$ {{currency .UnitPrice}}</td>
      <td>R$ {{currency .Subtotal}}</td>
    </tr>
    {{end}}
  </table>
  <div class="total">TOTAL: R$ {{currency .Sale.Total}}</div>
  <div class="payment">Forma de Pagamento: {{payment .Sale}}</div>
  <div class="thanks">Obrigado pela preferência! Volte sempre!</div>
  <div class="footer">Documento não fiscal</div>
</body>
</html>
`
