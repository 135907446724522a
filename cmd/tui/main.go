package main

import (
	"context"
	"log/slog"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/joho/godotenv"

	"github.com/tramitefacil/tramitefacil/cmd/tui/internal/view"
	"github.com/tramitefacil/tramitefacil/internal/catalog"
	"github.com/tramitefacil/tramitefacil/internal/config"
	"github.com/tramitefacil/tramitefacil/internal/database"
	"github.com/tramitefacil/tramitefacil/internal/flow"
	"github.com/tramitefacil/tramitefacil/internal/payment"
	"github.com/tramitefacil/tramitefacil/internal/transaction"
	txStore "github.com/tramitefacil/tramitefacil/internal/transaction/store"
)

const healthCheckTimeout = 5 * time.Second

// noopStore keeps the TUI usable when the audit database is not
// reachable. Records are simply not kept.
type noopStore struct{}

func (noopStore) Create(context.Context, transaction.CreateParams) (*transaction.Record, error) {
	return nil, nil
}
func (noopStore) MarkPaid(context.Context, string, string) error { return nil }
func (noopStore) MarkDelivered(context.Context, string) error    { return nil }
func (noopStore) Cancel(context.Context, string, transaction.CancelReason) error {
	return nil
}
func (noopStore) LogPaymentEvent(context.Context, transaction.PaymentEvent) error { return nil }

func buildStore(connStr string) flow.TransactionStore {
	db, err := database.New(connStr)
	if err != nil {
		slog.Warn("audit database unavailable, records will not be kept", "error", err)

		return noopStore{}
	}

	return transaction.NewService(txStore.New(db))
}

func selectProvider(cfg *config.Config, mock payment.Provider) payment.Selection {
	mode := payment.Mode(cfg.Payment.Mode)

	if mode != payment.ModeReal {
		return payment.Selection{Provider: mock, Mode: payment.ModeMock}
	}

	real, err := payment.NewMercadoPago(cfg.Payment.MercadoPagoToken)
	if err != nil {
		slog.Warn("payment provider not configured", "error", err)

		if cfg.Payment.FallbackToMock {
			return payment.Selection{Provider: mock, Mode: payment.ModeMock, FellBack: true}
		}

		return payment.Selection{Mode: payment.ModeReal, Err: err}
	}

	ctx, cancel := context.WithTimeout(context.Background(), healthCheckTimeout)
	defer cancel()

	return payment.Select(ctx, mode, cfg.Payment.FallbackToMock, real, mock)
}

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	sender := &view.Sender{}
	mock := payment.NewMock(view.NewUIOutcomePicker(sender))

	selection := selectProvider(cfg, mock)

	engine := flow.NewEngine(
		flow.Config{
			Pricing: flow.Pricing{
				ServiceFee: cfg.Payment.ServiceFeeCOP,
				TaxRate:    cfg.Payment.TaxRate,
				Currency:   cfg.Payment.Currency,
			},
			GenerationDelay: cfg.Flow.GenerationDelay,
			Mode:            selection.Mode,
			FallbackActive:  selection.FellBack,
		},
		catalog.Default(),
		buildStore(cfg.ConnectionString()),
		selection.Provider,
		nil,
		func() {
			sender.Send(view.RefreshMsg{})
		},
	)

	model := view.NewChatModel(engine, catalog.Default(), cfg.Flow.TypingDelay, cfg.Flow.GenerationDelay)

	p := tea.NewProgram(model, tea.WithAltScreen())
	sender.Attach(p)

	if _, err := p.Run(); err != nil {
		slog.Error("failed to run TUI", "error", err)
		os.Exit(1)
	}
}
