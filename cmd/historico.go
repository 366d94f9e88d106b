package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/ferrigb/sistema-nota-consumidor/internal/venda"
)

var historicoCmd = &cobra.Command{
	Use:   "historico",
	Short: "Mostra o histórico de vendas finalizadas agrupado por dia",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}
		defer a.close()

		sales, err := a.client.ListFinalized(cmd.Context())
		if err != nil {
			return err
		}
		venda.RenderHistory(os.Stdout, venda.GroupHistory(sales))
		return nil
	},
}
