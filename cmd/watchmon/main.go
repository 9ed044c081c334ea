package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"runtime"
	"strings"
	"syscall"
	"time"

	"github.com/fatih/color"
	"github.com/go-pkgz/lgr"
	"github.com/jessevdk/go-flags"
	"github.com/joho/godotenv"

	"github.com/umputun/watchmon/pkg/adapter"
	"github.com/umputun/watchmon/pkg/config"
	"github.com/umputun/watchmon/pkg/domain"
	"github.com/umputun/watchmon/pkg/llm"
	"github.com/umputun/watchmon/pkg/repository"
	"github.com/umputun/watchmon/pkg/scheduler"
	"github.com/umputun/watchmon/pkg/service"
	"github.com/umputun/watchmon/server"
)

// Opts with all CLI options
type Opts struct {
	Config  string `short:"c" long:"config" env:"CONFIG" default:"config.yml" description:"configuration file"`
	Listen  string `short:"l" long:"listen" env:"LISTEN" description:"listen address, overrides server.listen"`
	EnvFile string `long:"env-file" env:"ENV_FILE" default:".env" description:"dotenv file loaded before config expansion"`

	// common options
	Debug   bool `long:"dbg" env:"DEBUG" description:"debug mode"`
	Version bool `short:"V" long:"version" description:"show version info"`
	NoColor bool `long:"no-color" env:"NO_COLOR" description:"disable color output"`
}

var revision = "unknown"

func main() {
	// .env values become visible to flag env defaults and config expansion, real env wins
	_ = godotenv.Load(envFileFromArgs(os.Args[1:]))

	var opts Opts
	parser := flags.NewParser(&opts, flags.Default)
	if _, err := parser.Parse(); err != nil {
		var flagsErr *flags.Error
		if errors.As(err, &flagsErr) && flagsErr.Type == flags.ErrHelp {
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
	lgr.Printf("[INFO] starting watchmon version %s", revision)

	ctx, cancel := context.WithCancel(context.Background())

	// handle termination signals
	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
		<-sigChan
		lgr.Print("[INFO] termination signal received")
		cancel()
	}()

	err := run(ctx, opts)
	cancel()
	if err != nil {
		lgr.Printf("[ERROR] %v", err)
		os.Exit(1)
	}
	lgr.Print("[INFO] shutdown complete")
}

// run wires storage, adapters, the generator and the scheduler, then serves the API until ctx is done
func run(ctx context.Context, opts Opts) error {
	cfg, err := config.Load(opts.Config)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	if opts.Listen != "" {
		cfg.Server.Listen = opts.Listen
	}
	setupLog(opts.Debug, secrets(cfg)...)
	for _, w := range config.Warnings(cfg) {
		lgr.Printf("[WARN] %s", w)
	}

	repos, err := repository.NewRepositories(ctx, repository.Config{
		DSN:               cfg.Database.DSN,
		MaxOpenConns:      cfg.Database.MaxOpenConns,
		MaxIdleConns:      cfg.Database.MaxIdleConns,
		ConnMaxLifetime:   time.Duration(cfg.Database.ConnMaxLifetime) * time.Second,
		RetryAttempts:     cfg.Schedule.RetryAttempts,
		RetryInitialDelay: cfg.Schedule.RetryInitialDelay,
		RetryMaxDelay:     cfg.Schedule.RetryMaxDelay,
	})
	if err != nil {
		return fmt.Errorf("failed to init repositories: %w", err)
	}
	defer func() {
		if err := repos.Close(); err != nil {
			lgr.Printf("[WARN] failed to close database: %v", err)
		}
	}()
	store := service.NewStore(repos)

	completer, err := llm.NewCompleter(ctx, cfg.LLM)
	if err != nil {
		return fmt.Errorf("failed to init llm: %w", err)
	}
	generator := llm.NewGenerator(completer, llm.GeneratorParams{
		MaxMessages:     cfg.LLM.MaxMessages,
		MaxMessageChars: cfg.LLM.MaxMessageChars,
	})

	registry := makeRegistry(cfg)
	lgr.Printf("[INFO] adapters: %v", registry.Keys())

	sweeper := scheduler.NewSweeper(scheduler.SweeperParams{
		WatchedManager:  store,
		LedgerManager:   store,
		ActionManager:   store,
		Fetcher:         registry,
		Generator:       generator,
		ItemDelay:       cfg.Schedule.ItemDelay,
		FetchTimeout:    cfg.Schedule.FetchTimeout,
		ClassifyTimeout: cfg.Schedule.ClassifyTimeout,
		FetchWorkers:    cfg.Schedule.FetchWorkers,
	})
	sched := scheduler.New(sweeper)
	if cfg.Schedule.Cron != "" {
		if err := sched.StartCron(cfg.Schedule.Cron); err != nil {
			return fmt.Errorf("failed to start scheduler: %w", err)
		}
	} else {
		sched.Start(time.Duration(cfg.Schedule.Interval) * time.Minute)
	}
	defer func() {
		sched.Stop()
		sched.Wait() // let an in-flight sweep finish its ledger writes
	}()

	srv := server.New(cfg, store, sched, revision, opts.Debug)
	if err := srv.Run(ctx); err != nil {
		return fmt.Errorf("server failed: %w", err)
	}
	return nil
}

// makeRegistry registers adapters for every configured source
func makeRegistry(cfg *config.Config) *adapter.Registry {
	httpOpts := adapter.HTTPOptions{Timeout: cfg.Sources.Timeout, UserAgent: cfg.Sources.UserAgent}
	limit := cfg.Sources.RecentLimit
	reg := adapter.NewRegistry()

	if cfg.Sources.Telegram.Token != "" {
		tg, err := adapter.NewTelegramAdapter(cfg.Sources.Telegram.Token, limit)
		if err != nil {
			lgr.Printf("[WARN] telegram adapter disabled: %v", err)
		} else {
			reg.Register(domain.PlatformTelegram, domain.ItemChat, tg)
			reg.Register(domain.PlatformTelegram, domain.ItemChannel, tg)
		}
	}

	bridges := []struct {
		platform domain.Platform
		url      string
		types    []domain.ItemType
	}{
		{domain.PlatformDiscord, cfg.Sources.Bridge.Discord, []domain.ItemType{domain.ItemServer, domain.ItemChannel}},
		{domain.PlatformWhatsApp, cfg.Sources.Bridge.WhatsApp, []domain.ItemType{domain.ItemChat}},
		{domain.PlatformSlack, cfg.Sources.Bridge.Slack, []domain.ItemType{domain.ItemChannel}},
		{domain.PlatformEmail, cfg.Sources.Bridge.Email, []domain.ItemType{domain.ItemMailbox}},
	}
	for _, b := range bridges {
		if b.url == "" {
			continue
		}
		ba := &adapter.BridgeAdapter{BaseURL: b.url, Limit: limit, HTTPOptions: httpOpts}
		for _, t := range b.types {
			reg.Register(b.platform, t, ba)
		}
	}

	reg.Register(domain.PlatformGitHub, domain.ItemRepo, &adapter.GitHubAdapter{APIURL: cfg.Sources.GitHub.APIURL,
		Token: cfg.Sources.GitHub.Token, Limit: limit, HTTPOptions: httpOpts})

	if cfg.Sources.Feed.Enabled {
		reg.Register(domain.PlatformRSS, domain.ItemFeed, &adapter.FeedAdapter{HTTPOptions: httpOpts})
	}
	return reg
}

// secrets returns credentials to mask in logs
func secrets(cfg *config.Config) []string {
	var res []string
	for _, s := range []string{cfg.LLM.APIKey, cfg.Sources.Telegram.Token, cfg.Sources.GitHub.Token} {
		if s != "" {
			res = append(res, s)
		}
	}
	return res
}

// envFileFromArgs picks --env-file value before flags are parsed, falling back to ENV_FILE and .env
func envFileFromArgs(args []string) string {
	for i, a := range args {
		if a == "--env-file" && i+1 < len(args) {
			return args[i+1]
		}
		if v, ok := strings.CutPrefix(a, "--env-file="); ok && v != "" {
			return v
		}
	}
	if v := os.Getenv("ENV_FILE"); v != "" {
		return v
	}
	return ".env"
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
