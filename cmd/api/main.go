package main

import (
	"fmt"
	"log/slog"
	"net/http"
	"os"

	"github.com/tramitefacil/tramitefacil/internal/catalog"
	"github.com/tramitefacil/tramitefacil/internal/config"
	"github.com/tramitefacil/tramitefacil/internal/database"
	tfHttp "github.com/tramitefacil/tramitefacil/internal/http"
	catalogHandler "github.com/tramitefacil/tramitefacil/internal/http/catalog"
	txHandler "github.com/tramitefacil/tramitefacil/internal/http/transaction"
	"github.com/tramitefacil/tramitefacil/internal/payment"
	"github.com/tramitefacil/tramitefacil/internal/transaction"
	txStore "github.com/tramitefacil/tramitefacil/internal/transaction/store"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	db, err := database.New(cfg.ConnectionString())
	if err != nil {
		slog.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	var provider payment.Provider
	if payment.Mode(cfg.Payment.Mode) == payment.ModeReal {
		provider, err = payment.NewMercadoPago(cfg.Payment.MercadoPagoToken)
		if err != nil {
			slog.Error("failed to configure payment provider", "error", err)
			os.Exit(1)
		}
	}

	transactionService := transaction.NewService(txStore.New(db))

	var (
		transactionH = txHandler.NewHandler(transactionService)
		catalogH     = catalogHandler.NewHandler(catalog.Default())
	)

	router := tfHttp.New(catalogH, transactionH, provider)

	port := fmt.Sprintf(":%d", cfg.App.Port)
	slog.Info("starting server", "port", port, "payment_mode", cfg.Payment.Mode)

	if err := http.ListenAndServe(port, router); err != nil {
		slog.Error("server failed", "error", err)
		os.Exit(1)
	}
}
