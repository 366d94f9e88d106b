package cmd

import (
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/ferrigb/sistema-nota-consumidor/internal/terminal"
	"github.com/ferrigb/sistema-nota-consumidor/internal/venda"
)

var ticketCmd = &cobra.Command{
	Use:   "ticket <venda>",
	Short: "Gera o cupom em PDF de uma venda finalizada",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		saleID, err := strconv.ParseInt(args[0], 10, 64)
		if err != nil {
			return err
		}

		a, err := newApp()
		if err != nil {
			return err
		}
		defer a.close()

		console := terminal.NewConsole(os.Stdin, os.Stdout)
		manager := venda.NewManager(a.client, console, console, a.newExporter(), a.logger)
		// Carrega o histórico primeiro; a busca direta só acontece se a
		// venda não estiver nele.
		_ = manager.ReloadHistory(cmd.Context())
		return manager.ExportReceipt(cmd.Context(), saleID)
	},
}
