package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/ferrigb/sistema-nota-consumidor/internal/terminal"
	"github.com/ferrigb/sistema-nota-consumidor/internal/venda"
)

var caixaCmd = &cobra.Command{
	Use:   "caixa",
	Short: "Abre uma sessão interativa de caixa",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}
		defer a.close()

		console := terminal.NewConsole(os.Stdin, os.Stdout)
		manager := venda.NewManager(a.client, console, console, a.newExporter(), a.logger)
		session := terminal.NewSession(manager, console, os.Stdout, a.logger)
		return session.Run(cmd.Context())
	},
}
