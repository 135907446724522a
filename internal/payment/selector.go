package payment

import (
	"context"
	"log/slog"
)

// Selection is the provider chosen for a flow plus how it was arrived at.
type Selection struct {
	Provider Provider
	Mode     Mode

	// FellBack is set when real mode was requested but the health check
	// failed and configuration allowed substituting the mock. The
	// presentation layer uses it to tell the user a simulated flow is
	// active.
	FellBack bool

	// Err is set when real mode was requested, the health check failed
	// and fallback is disabled. Provider is nil in that case and the pay
	// action must stay blocked.
	Err error
}

// Select picks the provider for a new flow instance. In real mode a
// health check gates the choice: on failure the policy either blocks
// payment or falls back to the mock, per fallbackToMock.
func Select(ctx context.Context, mode Mode, fallbackToMock bool, real, mock Provider) Selection {
	if mode == ModeMock {
		return Selection{Provider: mock, Mode: ModeMock}
	}

	if err := real.HealthCheck(ctx); err != nil {
		slog.Warn("payment health check failed", "error", err)

		if fallbackToMock {
			return Selection{Provider: mock, Mode: ModeMock, FellBack: true}
		}

		return Selection{Mode: ModeReal, Err: err}
	}

	return Selection{Provider: real, Mode: ModeReal}
}
