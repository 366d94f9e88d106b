// Package cmd holds the CLI commands of the POS terminal.
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/ferrigb/sistema-nota-consumidor/internal/config"
	"github.com/ferrigb/sistema-nota-consumidor/internal/ticket"
	"github.com/ferrigb/sistema-nota-consumidor/internal/venda"
)

var rootCmd = &cobra.Command{
	Use:   "nota",
	Short: "Terminal de vendas do sistema nota-consumidor",
	Long: `Cliente de terminal para o serviço de vendas: gerencia a venda em
andamento, mostra o histórico agrupado por dia e gera o cupom em PDF.`,
	SilenceUsage: true,
}

// Execute runs the CLI.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.AddCommand(caixaCmd)
	rootCmd.AddCommand(historicoCmd)
	rootCmd.AddCommand(ticketCmd)
}

// app bundles the wiring every command needs.
type app struct {
	cfg    *config.Config
	logger *zap.Logger
	client *venda.Client
}

func newApp() (*app, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	logger, err := config.NewLogger(cfg)
	if err != nil {
		return nil, fmt.Errorf("build logger: %w", err)
	}
	return &app{
		cfg:    cfg,
		logger: logger,
		client: venda.NewClient(cfg.APIBaseURL, cfg.HTTPTimeout, logger),
	}, nil
}

func (a *app) close() {
	_ = a.client.Close()
	_ = a.logger.Sync()
}

func (a *app) newExporter() *ticket.Exporter {
	converter := ticket.NewGotenberg(a.cfg.GotenbergURL, a.cfg.HTTPTimeout)
	return ticket.NewExporter(converter, ticket.Store{
		Name:    a.cfg.StoreName,
		Tagline: a.cfg.StoreTagline,
		Address: a.cfg.StoreAddress,
		Phone:   a.cfg.StorePhone,
	}, a.cfg.TicketDir, a.logger)
}
