// Package gate composes the gating capabilities into one account-gating
// service: a role registry, a self-service blocklist gated by a manager role,
// an allowlist gated by a delegated single-holder whitelister, and an
// initialization guard that runs each capability's setup exactly once.
//
// A Service is constructed cold and armed with a single Init call; a second
// Init fails, and every operation before Init fails with ErrNotReady. All
// component events are journaled with schema-versioned entries through a
// pluggable Storage (in-memory by default, Redis optional) and logged
// through slog.
//
// Typical wiring:
//
//	cfg, err := gate.LoadConfig()
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	svc := gate.New(cfg, gate.WithLogger(logger))
//	if err := svc.Init(ctx); err != nil {
//	    log.Fatal(err)
//	}
//
//	r := chi.NewRouter()
//	r.Mount("/gate", gate.Router(svc))
//
// Protected business operations consume the guard helpers:
//
//	func (s *PaymentService) Withdraw(ctx context.Context, account uuid.UUID) error {
//	    if err := s.gate.RequireNotBlocked(account); err != nil {
//	        return err // short-circuits before any side effect
//	    }
//	    // ... proceed
//	}
package gate
