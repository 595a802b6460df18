package cmd

import (
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/abhisek/betopper/internal/gateway"
	"github.com/abhisek/betopper/internal/ledger"
	"github.com/abhisek/betopper/internal/llm"
	"github.com/abhisek/betopper/internal/logger"
	"github.com/abhisek/betopper/internal/normalize"
	"github.com/abhisek/betopper/internal/store"
	"github.com/abhisek/betopper/internal/study"
	"github.com/abhisek/betopper/internal/ui/theme"
)

// app holds the dependencies a command runs against.
type app struct {
	store   *store.Store
	log     *logger.Logger
	ledger  *ledger.Service
	study   *study.Service
	profile ledger.Profile
	out     io.Writer
	errOut  io.Writer
}

// appOptions selects which parts of the app a command needs.
type appOptions struct {
	// profile loads the learner profile and starts the session.
	profile bool

	// llm builds the generation gateway and study service.
	llm bool
}

// openApp opens the store and builds the requested services.
func openApp(cmd *cobra.Command, opts appOptions) (*app, error) {
	logOpts := logger.OptionsFromEnv()
	if lvl, _ := cmd.Flags().GetString("log-level"); lvl != "" {
		logOpts.Level = lvl
	}
	log, err := logger.New(logOpts)
	if err != nil {
		return nil, fmt.Errorf("init logger: %w", err)
	}

	dbPath, err := resolveDBPath(cmd)
	if err != nil {
		return nil, fmt.Errorf("resolve database path: %w", err)
	}
	st, err := store.Open(dbPath)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	a := &app{
		store:  st,
		log:    log,
		out:    cmd.OutOrStdout(),
		errOut: cmd.ErrOrStderr(),
	}
	a.ledger = ledger.NewService(st.KV(), st.EventRepo(), log)
	a.ledger.Notifier = ledger.NotifierFunc(func(n ledger.Notification) {
		fmt.Fprintln(a.errOut, theme.AwardNotice(n.Amount, n.Reason, n.Points))
	})

	ctx := cmd.Context()
	if opts.profile {
		p, err := a.ledger.Begin(ctx)
		if err != nil {
			a.Close()
			if errors.Is(err, ledger.ErrNotEnrolled) {
				return nil, errors.New("no learner profile yet; run `betopper enroll` first")
			}
			return nil, err
		}
		a.profile = p
	}

	if opts.llm {
		provider, cfg, err := llm.NewProviderFromEnv(ctx, st.EventRepo(), log)
		if err != nil {
			a.Close()
			return nil, fmt.Errorf("LLM provider not configured: %w", err)
		}
		log.Debug("llm provider ready", "provider", cfg.Provider, "model", provider.ModelID())
		gw := gateway.New(provider, gateway.Options{
			Routes:  cfg.Routes,
			Timeout: cfg.Timeout,
			Logger:  log,
		})
		a.study = study.NewService(gw, a.ledger, log)
	}
	return a, nil
}

// Close releases the store and flushes logs.
func (a *app) Close() {
	if err := a.store.Close(); err != nil {
		a.log.Warn("close store", "error", err)
	}
	a.log.Sync()
}

// reportedError marks a failure whose message was already shown.
type reportedError struct {
	err error
}

func (e *reportedError) Error() string { return e.err.Error() }
func (e *reportedError) Unwrap() error { return e.err }

// report shows the learner-facing message for a failed action. An empty
// reply is recoverable: the fallback is shown and the command succeeds.
func (a *app) report(err error) error {
	msg := study.UserMessage(err)
	if errors.Is(err, normalize.ErrEmptyResponse) {
		fmt.Fprintln(a.out, theme.Hint.Render(msg))
		return nil
	}
	a.log.Error("action failed", "error", err)
	fmt.Fprintln(a.errOut, theme.Failure.Render(msg))
	return &reportedError{err: err}
}
