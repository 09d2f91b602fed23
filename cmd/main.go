package main

import (
	"os"

	"github.com/brijdaniel/RR-backend/config"
	"github.com/brijdaniel/RR-backend/routes"
	"github.com/brijdaniel/RR-backend/services"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func main() {
	root := &cobra.Command{
		Use:   "rr-backend",
		Short: "Regret register API server",
	}

	var addr string
	serve := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		Run: func(cmd *cobra.Command, args []string) {
			config.InitLogger()
			defer config.Log.Sync()
			config.InitDB()
			config.InitRedis()

			r := routes.SetupRouter()
			config.Log.Info("Starting server", zap.String("addr", addr))
			if err := r.Run(addr); err != nil {
				config.Log.Fatal("Server stopped", zap.Error(err))
			}
		},
	}
	serve.Flags().StringVar(&addr, "addr", ":8080", "listen address")

	generate := &cobra.Command{
		Use:   "generate-checklists",
		Short: "Create today's checklist for every active user missing one",
		Run: func(cmd *cobra.Command, args []string) {
			config.InitLogger()
			defer config.Log.Sync()
			config.InitDB()

			created, err := services.GenerateDailyChecklists()
			if err != nil {
				config.Log.Fatal("Checklist generation failed", zap.Error(err))
			}
			config.Log.Info("Checklist generation complete", zap.Int("created", created))
		},
	}

	root.AddCommand(serve, generate)
	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}
