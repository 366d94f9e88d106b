package terminal

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/ferrigb/sistema-nota-consumidor/internal/format"
	"github.com/ferrigb/sistema-nota-consumidor/internal/venda"
)

// Session is one interactive cashier session. Commands run strictly one
// at a time, so no two mutating calls ever overlap.
type Session struct {
	manager *venda.Manager
	console *Console
	out     io.Writer
	logger  *zap.Logger
}

// NewSession wires an interactive session over the given manager.
func NewSession(manager *venda.Manager, console *Console, out io.Writer, logger *zap.Logger) *Session {
	if logger == nil {
		logger, _ = zap.NewProduction()
	}
	return &Session{manager: manager, console: console, out: out, logger: logger}
}

// Run initializes the manager and loops over operator commands until
// "sair" or EOF.
func (s *Session) Run(ctx context.Context) error {
	if err := s.manager.Initialize(ctx); err != nil {
		return err
	}
	s.renderCurrent()

	for {
		cmd := s.console.ReadLine("\ncaixa> ")
		if cmd == "" {
			if s.console.EOF() {
				return nil
			}
			continue
		}
		switch {
		case cmd == "a" || cmd == "adicionar":
			s.addItem(ctx)
		case strings.HasPrefix(cmd, "r "):
			s.removeItem(ctx, strings.TrimSpace(cmd[2:]))
		case cmd == "l" || cmd == "limpar":
			_ = s.manager.ClearSale(ctx)
			s.renderCurrent()
		case cmd == "f" || cmd == "finalizar":
			s.finalize(ctx)
		case cmd == "h" || cmd == "historico":
			venda.RenderHistory(s.out, venda.GroupHistory(s.manager.History()))
		case strings.HasPrefix(cmd, "t "):
			s.exportTicket(ctx, strings.TrimSpace(cmd[2:]))
		case cmd == "v" || cmd == "venda":
			s.renderCurrent()
		case cmd == "sair" || cmd == "q":
			return nil
		default:
			s.printHelp()
		}
	}
}

func (s *Session) addItem(ctx context.Context) {
	draft := &venda.ItemDraft{
		ProductName:  s.console.ReadLine("Nome do produto: "),
		QuantityUnit: s.console.ReadLine("Tipo (unidade/kg) [unidade]: "),
	}

	var err error
	draft.Quantity, err = parseAmount(s.console.ReadLine("Quantidade: "))
	if err != nil {
		s.console.Error("Preencha todos os campos corretamente")
		return
	}
	draft.UnitPrice, err = parseAmount(s.console.ReadLine("Preço unitário: "))
	if err != nil {
		s.console.Error("Preencha todos os campos corretamente")
		return
	}

	if err := s.manager.AddItem(ctx, draft); err == nil {
		s.renderCurrent()
	}
}

func (s *Session) removeItem(ctx context.Context, arg string) {
	itemID, err := strconv.ParseInt(arg, 10, 64)
	if err != nil {
		s.console.Error("Informe o número do item, ex: r 3")
		return
	}
	if err := s.manager.RemoveItem(ctx, itemID); err == nil {
		s.renderCurrent()
	}
}

func (s *Session) finalize(ctx context.Context) {
	customer := s.console.ReadLine("Nome do cliente (opcional): ")
	payment := s.console.ReadLine("Forma de pagamento (opcional): ")
	if err := s.manager.FinalizeSale(ctx, customer, payment); err != nil {
		if errors.Is(err, venda.ErrNoItems) {
			return
		}
		s.logger.Warn("finalize did not complete", zap.Error(err))
		return
	}
	s.renderCurrent()
}

func (s *Session) exportTicket(ctx context.Context, arg string) {
	saleID, err := strconv.ParseInt(arg, 10, 64)
	if err != nil {
		s.console.Error("Informe o número da venda, ex: t 12")
		return
	}
	_ = s.manager.ExportReceipt(ctx, saleID)
}

// renderCurrent mirrors the current-sale panel: item list and running
// total.
func (s *Session) renderCurrent() {
	sale := s.manager.Current()
	if sale == nil || len(sale.Items) == 0 {
		fmt.Fprintln(s.out, "\nNenhum produto adicionado ainda.")
		fmt.Fprintln(s.out, "Total: R$ 0,00")
		return
	}

	fmt.Fprintf(s.out, "\nVenda #%d\n", sale.ID)
	for _, item := range sale.Items {
		fmt.Fprintf(s.out, "  [%d] %s  %s %s x R$ %s  =  R$ %s\n",
			item.ID,
			item.ProductName,
			format.Quantity(item.Quantity), item.UnitSuffix(),
			format.Currency(item.UnitPrice),
			format.Currency(item.Subtotal),
		)
	}
	fmt.Fprintf(s.out, "Total: R$ %s\n", format.Currency(sale.Total))
}

func (s *Session) printHelp() {
	fmt.Fprintln(s.out, `Comandos:
  a, adicionar   adicionar produto
  r <item>       remover produto
  l, limpar      limpar venda atual
  f, finalizar   finalizar venda
  h, historico   histórico de vendas
  t <venda>      gerar ticket PDF
  v, venda       mostrar venda atual
  sair           encerrar`)
}

// parseAmount accepts "45,50" as well as "45.50".
func parseAmount(s string) (decimal.Decimal, error) {
	return decimal.NewFromString(strings.ReplaceAll(strings.TrimSpace(s), ",", "."))
}
