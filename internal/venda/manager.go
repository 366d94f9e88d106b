package venda

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync/atomic"

	"go.uber.org/zap"

	"github.com/ferrigb/sistema-nota-consumidor/internal/format"
)

// SaleService is the remote API surface the manager consumes.
type SaleService interface {
	CreateSale(ctx context.Context) (*Sale, error)
	CurrentSale(ctx context.Context) (*Sale, error)
	ClearCurrent(ctx context.Context) (*Sale, error)
	GetSale(ctx context.Context, id int64) (*Sale, error)
	ListFinalized(ctx context.Context) ([]Sale, error)
	AddItem(ctx context.Context, saleID int64, draft *ItemDraft) (*Sale, error)
	RemoveItem(ctx context.Context, saleID, itemID int64) (*Sale, error)
	Finalize(ctx context.Context, saleID int64, req *FinalizeRequest) (*Sale, error)
	DeleteSale(ctx context.Context, saleID int64) error
}

// Confirmer presents a two-outcome confirmation to the operator. The
// action guarded by it runs only on a true return, and at most once.
type Confirmer interface {
	Confirm(title, message string) bool
}

// Notifier surfaces user-visible notices (the toast bar of the original
// UI). Every failure path in the manager goes through Error; nothing is
// dropped silently.
type Notifier interface {
	Success(msg string)
	Error(msg string)
}

// Exporter produces the printable receipt for a finalized sale.
type Exporter interface {
	Export(ctx context.Context, sale *Sale) error
}

// Manager owns the current-sale slot and the finalized-sales history and
// sequences every transition on them. Presenters receive snapshots only.
type Manager struct {
	service   SaleService
	confirmer Confirmer
	notifier  Notifier
	exporter  Exporter
	logger    *zap.Logger

	current  *Sale
	history  []Sale
	inFlight atomic.Bool
}

// NewManager wires a lifecycle manager.
func NewManager(service SaleService, confirmer Confirmer, notifier Notifier, exporter Exporter, logger *zap.Logger) *Manager {
	if logger == nil {
		logger, _ = zap.NewProduction()
	}
	return &Manager{
		service:   service,
		confirmer: confirmer,
		notifier:  notifier,
		exporter:  exporter,
		logger:    logger,
	}
}

// Current returns a snapshot of the current sale, or nil before
// initialization.
func (m *Manager) Current() *Sale {
	return m.current.Clone()
}

// History returns a snapshot of the finalized-sales history.
func (m *Manager) History() []Sale {
	out := make([]Sale, len(m.history))
	for i := range m.history {
		out[i] = *m.history[i].Clone()
	}
	return out
}

// begin marks a mutating operation as in flight. A second mutating call
// before end() is rejected, so a double-pressed key can never race the
// slot.
func (m *Manager) begin() error {
	if !m.inFlight.CompareAndSwap(false, true) {
		return ErrBusy
	}
	return nil
}

func (m *Manager) end() {
	m.inFlight.Store(false)
}

// Initialize loads the history and then always opens a fresh sale. A
// history failure does not block the sale creation, and a creation
// failure falls back to the server-side reset before giving up: the slot
// must be usable whenever any path succeeds.
func (m *Manager) Initialize(ctx context.Context) error {
	if err := m.begin(); err != nil {
		return err
	}
	defer m.end()

	if err := m.reloadHistory(ctx); err != nil {
		m.logger.Error("history load failed during init", zap.Error(err))
		m.notifier.Error(userMessage(err, "Erro ao carregar histórico de vendas"))
	}

	sale, err := m.service.CreateSale(ctx)
	if err == nil {
		m.current = sale
		m.logger.Info("current sale opened", zap.Int64("sale_id", sale.ID))
		return nil
	}
	m.logger.Error("create sale failed during init, trying recovery", zap.Error(err))

	if err := m.recoverSlot(ctx); err != nil {
		m.notifier.Error("Erro ao inicializar o sistema")
		return err
	}
	return nil
}

// recoverSlot is the best-effort fallback chain: atomic server-side
// reset, then reuse of an existing open sale, then a plain create.
func (m *Manager) recoverSlot(ctx context.Context) error {
	if sale, err := m.service.ClearCurrent(ctx); err == nil {
		m.current = sale
		return nil
	}
	if sale, err := m.service.CurrentSale(ctx); err == nil && sale != nil {
		m.current = sale
		return nil
	}
	sale, err := m.service.CreateSale(ctx)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrNoCurrentSale, err)
	}
	m.current = sale
	return nil
}

// AddItem validates the draft locally and submits it to the current
// sale. On success the whole current sale is replaced by the server
// response; on failure it is left untouched.
func (m *Manager) AddItem(ctx context.Context, draft *ItemDraft) error {
	if err := m.begin(); err != nil {
		return err
	}
	defer m.end()

	if m.current == nil {
		m.notifier.Error("Nenhuma venda em andamento")
		return ErrNoCurrentSale
	}
	if err := ValidateDraft(draft); err != nil {
		m.notifier.Error("Preencha todos os campos corretamente")
		return err
	}

	sale, err := m.service.AddItem(ctx, m.current.ID, draft)
	if err != nil {
		m.logger.Error("add item failed", zap.Int64("sale_id", m.current.ID), zap.Error(err))
		m.notifier.Error(userMessage(err, "Erro ao adicionar produto"))
		return err
	}
	m.current = sale
	m.notifier.Success("Produto adicionado com sucesso!")
	return nil
}

// RemoveItem deletes one item from the current sale.
func (m *Manager) RemoveItem(ctx context.Context, itemID int64) error {
	if err := m.begin(); err != nil {
		return err
	}
	defer m.end()

	if m.current == nil {
		m.notifier.Error("Nenhuma venda em andamento")
		return ErrNoCurrentSale
	}

	sale, err := m.service.RemoveItem(ctx, m.current.ID, itemID)
	if err != nil {
		m.logger.Error("remove item failed",
			zap.Int64("sale_id", m.current.ID),
			zap.Int64("item_id", itemID),
			zap.Error(err),
		)
		m.notifier.Error(userMessage(err, "Erro ao remover produto"))
		return err
	}
	m.current = sale
	m.notifier.Success("Produto removido com sucesso!")
	return nil
}

// ClearSale discards the current sale after confirmation and opens a new
// one. The server-side delete is fire-and-forget: its failure is
// surfaced but does not stop the new sale from being created.
func (m *Manager) ClearSale(ctx context.Context) error {
	if err := m.begin(); err != nil {
		return err
	}
	defer m.end()

	if !m.current.HasItems() {
		m.notifier.Error("Não há produtos para limpar")
		return ErrNoItems
	}
	if !m.confirmer.Confirm("Limpar Venda", "Tem certeza que deseja remover todos os produtos da venda atual?") {
		return nil
	}

	if err := m.service.DeleteSale(ctx, m.current.ID); err != nil {
		m.logger.Error("delete sale failed, proceeding to create a new one",
			zap.Int64("sale_id", m.current.ID),
			zap.Error(err),
		)
		m.notifier.Error(userMessage(err, "Erro ao limpar venda"))
	}

	sale, err := m.service.CreateSale(ctx)
	if err != nil {
		m.logger.Error("create sale failed after clear", zap.Error(err))
		m.notifier.Error(userMessage(err, "Erro ao criar nova venda"))
		return err
	}
	m.current = sale
	m.notifier.Success("Venda limpa com sucesso!")
	return nil
}

// FinalizeSale closes the current sale after a confirmation that shows
// the running total. On success it offers the receipt export, reloads
// the history and opens a fresh sale, in that order; a history failure
// does not stop the new sale from being created.
func (m *Manager) FinalizeSale(ctx context.Context, customerName, paymentMethod string) error {
	if err := m.begin(); err != nil {
		return err
	}
	defer m.end()

	if !m.current.HasItems() {
		m.notifier.Error("Não há produtos na venda para finalizar")
		return ErrNoItems
	}

	msg := fmt.Sprintf("Finalizar venda no valor de R$ %s?", format.Currency(m.current.Total))
	if !m.confirmer.Confirm("Finalizar Venda", msg) {
		return nil
	}

	req := &FinalizeRequest{
		CustomerName:  strings.TrimSpace(customerName),
		PaymentMethod: strings.TrimSpace(paymentMethod),
	}

	finalized, err := m.service.Finalize(ctx, m.current.ID, req)
	if err != nil {
		m.logger.Error("finalize failed", zap.Int64("sale_id", m.current.ID), zap.Error(err))
		m.notifier.Error(userMessage(err, "Erro ao finalizar venda"))
		return err
	}
	m.logger.Info("sale finalized",
		zap.Int64("sale_id", finalized.ID),
		zap.String("total", finalized.Total.StringFixed(2)),
	)
	m.notifier.Success(fmt.Sprintf("Venda finalizada! Total: R$ %s", format.Currency(finalized.Total)))

	m.offerReceipt(ctx, finalized)

	if err := m.reloadHistory(ctx); err != nil {
		m.logger.Error("history reload failed after finalize", zap.Error(err))
		m.notifier.Error(userMessage(err, "Erro ao carregar histórico de vendas"))
	}

	sale, err := m.service.CreateSale(ctx)
	if err != nil {
		m.logger.Error("create sale failed after finalize", zap.Error(err))
		m.notifier.Error(userMessage(err, "Erro ao criar nova venda"))
		if rerr := m.recoverSlot(ctx); rerr != nil {
			return rerr
		}
		return nil
	}
	m.current = sale
	return nil
}

// offerReceipt asks whether a receipt should be produced for the sale
// just finalized and, on confirmation, hands the snapshot to the
// exporter.
func (m *Manager) offerReceipt(ctx context.Context, sale *Sale) {
	if m.exporter == nil {
		return
	}
	if !m.confirmer.Confirm("Venda Finalizada!", "Deseja gerar um ticket para enviar ao cliente?") {
		return
	}
	m.export(ctx, sale)
}

// ExportReceipt resolves a finalized sale, preferring the already-loaded
// history and fetching from the service only on a miss, then hands the
// snapshot to the exporter.
func (m *Manager) ExportReceipt(ctx context.Context, saleID int64) error {
	sale := m.findInHistory(saleID)
	if sale == nil {
		var err error
		sale, err = m.service.GetSale(ctx, saleID)
		if err != nil {
			m.logger.Error("sale lookup failed", zap.Int64("sale_id", saleID), zap.Error(err))
			m.notifier.Error(userMessage(err, "Erro ao buscar dados da venda"))
			return err
		}
	}
	return m.export(ctx, sale)
}

func (m *Manager) findInHistory(saleID int64) *Sale {
	for i := range m.history {
		if m.history[i].ID == saleID {
			return m.history[i].Clone()
		}
	}
	return nil
}

func (m *Manager) export(ctx context.Context, sale *Sale) error {
	m.notifier.Success("Gerando ticket em PDF...")
	if err := m.exporter.Export(ctx, sale); err != nil {
		m.logger.Error("receipt export failed", zap.Int64("sale_id", sale.ID), zap.Error(err))
		m.notifier.Error(userMessage(err, "Erro ao gerar ticket PDF"))
		return err
	}
	m.notifier.Success("Ticket PDF gerado com sucesso!")
	return nil
}

// ReloadHistory replaces the history wholesale from the server.
func (m *Manager) ReloadHistory(ctx context.Context) error {
	if err := m.reloadHistory(ctx); err != nil {
		m.notifier.Error(userMessage(err, "Erro ao carregar histórico de vendas"))
		return err
	}
	return nil
}

func (m *Manager) reloadHistory(ctx context.Context) error {
	sales, err := m.service.ListFinalized(ctx)
	if err != nil {
		return err
	}
	m.history = sales
	return nil
}

// userMessage picks the notice shown to the operator: the server's error
// message when the failure carried one, the fixed default otherwise.
func userMessage(err error, fallback string) string {
	var apiErr *APIError
	if errors.As(err, &apiErr) && apiErr.Message != "" {
		return apiErr.Message
	}
	return fallback
}
