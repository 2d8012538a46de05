package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"runtime"
	"syscall"
	"time"

	"github.com/fatih/color"
	"github.com/go-pkgz/lgr"
	"github.com/jessevdk/go-flags"

	"github.com/umputun/replyscope/pkg/cache"
	"github.com/umputun/replyscope/pkg/catalog"
	"github.com/umputun/replyscope/pkg/classifier"
	"github.com/umputun/replyscope/pkg/config"
	"github.com/umputun/replyscope/pkg/engine"
	"github.com/umputun/replyscope/pkg/llm"
	"github.com/umputun/replyscope/pkg/memory"
	"github.com/umputun/replyscope/pkg/scheduler"
	"github.com/umputun/replyscope/pkg/settings"
	"github.com/umputun/replyscope/pkg/store"
	"github.com/umputun/replyscope/server"
)

// Opts with all CLI options
type Opts struct {
	Config string `short:"c" long:"config" env:"CONFIG" description:"configuration file, built-in defaults if not set"`
	Listen string `short:"l" long:"listen" env:"LISTEN" description:"listen address, overrides config"`

	// Common options
	Debug   bool `long:"dbg" env:"DEBUG" description:"debug mode"`
	Version bool `short:"V" long:"version" description:"show version info"`
	NoColor bool `long:"no-color" env:"NO_COLOR" description:"disable color output"`
}

var revision = "unknown"

func main() {
	var opts Opts
	parser := flags.NewParser(&opts, flags.Default)
	if _, err := parser.Parse(); err != nil {
		if flagsErr, ok := err.(*flags.Error); ok && flagsErr.Type == flags.ErrHelp {
			os.Exit(0)
		}
		os.Exit(1)
	}

	if opts.Version {
		fmt.Printf("Version: %s\nGolang: %s\n", revision, runtime.Version())
		os.Exit(0)
	}

	color.NoColor = color.NoColor || opts.NoColor
	setupLog(opts.Debug)

	log.Printf("[INFO] starting replyscope version %s", revision)

	ctx, cancel := context.WithCancel(context.Background())

	// handle termination signals
	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
		<-sigChan
		log.Print("[INFO] termination signal received")
		cancel()
	}()

	err := run(ctx, opts)
	cancel()

	if err != nil {
		log.Printf("[ERROR] %v", err)
		os.Exit(1)
	}

	log.Print("[INFO] shutdown complete")
}

// run wires all components, serves until ctx is canceled and persists state on the way out
func run(ctx context.Context, opts Opts) error {
	cfg := config.Default()
	if opts.Config != "" {
		loaded, err := config.Load(opts.Config)
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		cfg = loaded
	}
	if opts.Listen != "" {
		cfg.Server.Listen = opts.Listen
	}

	st, err := store.Open(ctx, store.Config{
		DSN:             cfg.Database.DSN,
		MaxOpenConns:    cfg.Database.MaxOpenConns,
		MaxIdleConns:    cfg.Database.MaxIdleConns,
		ConnMaxLifetime: cfg.ConnMaxLifetime(),
	})
	if err != nil {
		return fmt.Errorf("failed to open store: %w", err)
	}
	defer func() {
		if err := st.Close(); err != nil {
			log.Printf("[WARN] failed to close store: %v", err)
		}
	}()

	temp, tokens := cfg.LLM.Temperature, cfg.LLM.MaxTokens
	sm := settings.New(st, cfg.DefaultChannel())
	client := llm.NewClient(llm.Options{Timeout: cfg.LLM.Timeout, MaxImages: cfg.LLM.MaxImages})
	mem := memory.New(memory.Config{
		Store:            st,
		Completer:        client,
		Configs:          sm,
		MaxHistory:       cfg.Memory.MaxHistory,
		SummaryThreshold: cfg.Memory.SummaryThreshold,
		SummaryTimeout:   cfg.Memory.SummaryTimeout,
		Temperature:      float32(temp.Summary),
		MaxTokens:        tokens.Summary,
	})
	eng := engine.New(engine.Deps{
		LLM: client,
		Classifier: classifier.New(catalog.Domains, client, sm, classifier.Params{
			Temperature: float32(temp.Classification),
			MaxTokens:   tokens.Classification,
		}),
		Settings: sm,
		Memory:   mem,
		Cache:    cache.New(st, cfg.Cache.MaxEntries),
	}, engine.Params{
		Generation:  engine.Sampling{Temperature: float32(temp.Generation), MaxTokens: tokens.Generation},
		Analysis:    engine.Sampling{Temperature: float32(temp.Analysis), MaxTokens: tokens.Analysis},
		Translation: engine.Sampling{Temperature: float32(temp.Translation), MaxTokens: tokens.Translation},
		QuickReply:  engine.Sampling{Temperature: float32(temp.QuickReply), MaxTokens: tokens.QuickReply},
		BaseLang:    cfg.LLM.BaseLanguage,
	})
	if err := eng.Load(ctx); err != nil {
		return fmt.Errorf("failed to load state: %w", err)
	}

	active := sm.Active()
	setupLog(opts.Debug, apiKeys(cfg.LLM.DefaultChannel.APIKey, active.APIKey)...)
	log.Printf("[INFO] active provider %s, model %s", active.RequestFormat, active.Model)

	sched := scheduler.NewScheduler(scheduler.Params{
		Memory:   mem,
		Interval: cfg.Memory.SweepInterval,
		Timeout:  cfg.Memory.SummaryTimeout,
	})
	sched.Start(ctx)

	srv := server.New(cfg, eng, sm, revision, opts.Debug)
	runErr := srv.Run(ctx)

	sched.Stop()
	flushCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := eng.Flush(flushCtx); err != nil {
		log.Printf("[WARN] failed to persist state: %v", err)
	}

	if runErr != nil {
		return fmt.Errorf("server failed: %w", runErr)
	}
	return nil
}

// apiKeys returns non-empty keys to be masked in logs
func apiKeys(keys ...string) []string {
	res := make([]string, 0, len(keys))
	for _, k := range keys {
		if k != "" {
			res = append(res, k)
		}
	}
	return res
}

func setupLog(dbg bool, secs ...string) {
	logOpts := []lgr.Option{lgr.Msec, lgr.LevelBraces}
	if dbg {
		logOpts = []lgr.Option{lgr.Debug, lgr.CallerFile, lgr.CallerFunc, lgr.Msec, lgr.LevelBraces, lgr.StackTraceOnError}
	}

	colorizer := lgr.Mapper{
		ErrorFunc:  func(s string) string { return color.New(color.FgHiRed).Sprint(s) },
		WarnFunc:   func(s string) string { return color.New(color.FgRed).Sprint(s) },
		InfoFunc:   func(s string) string { return color.New(color.FgYellow).Sprint(s) },
		DebugFunc:  func(s string) string { return color.New(color.FgWhite).Sprint(s) },
		CallerFunc: func(s string) string { return color.New(color.FgBlue).Sprint(s) },
		TimeFunc:   func(s string) string { return color.New(color.FgCyan).Sprint(s) },
	}
	logOpts = append(logOpts, lgr.Map(colorizer))
	if len(secs) > 0 {
		logOpts = append(logOpts, lgr.Secret(secs...))
	}
	lgr.SetupStdLogger(logOpts...)
	lgr.Setup(logOpts...)
}
