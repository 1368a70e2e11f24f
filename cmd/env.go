package cmd

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/hunter-system/hunter/internal/briefing"
	"github.com/hunter-system/hunter/internal/config"
	"github.com/hunter-system/hunter/internal/llm"
	"github.com/hunter-system/hunter/internal/logger"
	"github.com/hunter-system/hunter/internal/progression"
	"github.com/hunter-system/hunter/internal/rank"
	"github.com/hunter-system/hunter/internal/store"
)

// env is everything a command needs, opened from config.
type env struct {
	cfg    *config.Config
	log    *zap.Logger
	store  *store.Store
	engine *rank.Engine
	svc    *progression.Service
	now    func() time.Time

	closers []func() error
}

type envOptions struct {
	// console receives console logs; nil means stderr.
	console io.Writer
	svcOpts []progression.Option
}

type envOption func(*envOptions)

// quietConsole keeps logs off the terminal while a TUI owns it. The log
// file, if configured, still receives them.
func quietConsole() envOption {
	return func(o *envOptions) { o.console = io.Discard }
}

func withServiceOptions(opts ...progression.Option) envOption {
	return func(o *envOptions) { o.svcOpts = append(o.svcOpts, opts...) }
}

func openEnv(cmd *cobra.Command, opts ...envOption) (*env, error) {
	var o envOptions
	for _, fn := range opts {
		fn(&o)
	}
	if o.console == nil {
		o.console = cmd.ErrOrStderr()
	}

	path, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(path, cmd.Flags())
	if err != nil {
		return nil, err
	}

	e := &env{cfg: cfg, now: time.Now}
	log, closeLog, err := logger.New(cfg.Log, o.console)
	if err != nil {
		return nil, err
	}
	e.log = log
	e.closers = append(e.closers, closeLog)

	if e.engine, err = loadEngine(cfg.Ladder); err != nil {
		e.Close()
		return nil, err
	}

	dbPath := cfg.DB
	if dbPath == "" {
		if dbPath, err = store.DefaultDBPath(); err != nil {
			e.Close()
			return nil, fmt.Errorf("resolve database path: %w", err)
		}
	} else if err := store.EnsureDir(dbPath); err != nil {
		e.Close()
		return nil, fmt.Errorf("create database dir: %w", err)
	}
	if e.store, err = store.Open(dbPath); err != nil {
		e.Close()
		return nil, fmt.Errorf("open database: %w", err)
	}
	e.closers = append(e.closers, e.store.Close)

	svcOpts := append([]progression.Option{progression.WithLogger(log)}, o.svcOpts...)
	e.svc = progression.NewService(e.engine, e.store, svcOpts...)
	log.Debug("environment ready", zap.String("db", dbPath), zap.String("config", cfg.File))
	return e, nil
}

func loadEngine(ladderPath string) (*rank.Engine, error) {
	if ladderPath == "" {
		return rank.Default(), nil
	}
	l, err := rank.LoadLadderFile(ladderPath)
	if err != nil {
		return nil, err
	}
	eng, err := rank.NewEngine(l)
	if err != nil {
		return nil, fmt.Errorf("ladder %s: %w", ladderPath, err)
	}
	return eng, nil
}

// briefer returns a composer backed by the configured LLM provider, or the
// quote fallback when none is configured or it fails to build.
func (e *env) briefer(cmd *cobra.Command) *briefing.Composer {
	provider, err := llm.New(cmd.Context(), e.cfg.LLM, e.store.EventRepo(), e.log)
	if err != nil {
		e.log.Warn("llm provider unavailable, using quotes", zap.Error(err))
		provider = nil
	}
	return briefing.New(provider, e.engine.Ladder(), e.log)
}

// hunter resolves an id or name argument.
func (e *env) hunter(cmd *cobra.Command, idOrName string) (*progression.Profile, error) {
	return e.svc.Resolve(cmd.Context(), idOrName)
}

// Close releases resources in reverse order of acquisition.
func (e *env) Close() {
	for i := len(e.closers) - 1; i >= 0; i-- {
		if err := e.closers[i](); err != nil {
			fmt.Fprintln(os.Stderr, "close:", err)
		}
	}
}
