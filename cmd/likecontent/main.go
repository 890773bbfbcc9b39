package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"os/signal"
	"runtime"
	"strconv"
	"syscall"
	"time"

	"github.com/fatih/color"
	"github.com/go-pkgz/lgr"
	"github.com/jessevdk/go-flags"

	"github.com/umputun/likecontent/pkg/config"
	"github.com/umputun/likecontent/pkg/domain"
	"github.com/umputun/likecontent/pkg/likes"
	"github.com/umputun/likecontent/pkg/repository"
	"github.com/umputun/likecontent/server"
)

// Opts with all CLI options
type Opts struct {
	Config string `short:"c" long:"config" env:"CONFIG" description:"configuration file, defaults are used if not set"`
	Listen string `short:"l" long:"listen" env:"LISTEN" description:"listen address, overrides config"`

	// Common options
	Dbg     bool `long:"dbg" env:"DEBUG" description:"debug mode"`
	Version bool `short:"V" long:"version" description:"show version info"`
	NoColor bool `long:"no-color" env:"NO_COLOR" description:"disable color output"`
}

var revision = "unknown"

func main() {
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

	setupLog(opts.Dbg, opts.NoColor)
	log.Printf("[INFO] starting likecontent version %s", revision)

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

// run wires stores, like service and http server, blocks until ctx is canceled
func run(ctx context.Context, opts Opts) error {
	cfg := config.Default()
	if opts.Config != "" {
		var err error
		if cfg, err = config.Load(opts.Config); err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
	}
	if opts.Listen != "" {
		cfg.Server.Listen = opts.Listen
	}
	if secs := logSecrets(cfg); len(secs) > 0 {
		setupLog(opts.Dbg, opts.NoColor, secs...)
	}

	repos, err := repository.NewRepositories(ctx, repository.Config{
		DSN:             cfg.Database.DSN,
		MaxOpenConns:    cfg.Database.MaxOpenConns,
		MaxIdleConns:    cfg.Database.MaxIdleConns,
		ConnMaxLifetime: time.Duration(cfg.Database.ConnMaxLifetime) * time.Second,
	})
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer func() {
		if err := repos.Close(); err != nil {
			log.Printf("[WARN] failed to close database: %v", err)
		}
	}()

	var meta metaStore = repos.Meta
	if cfg.Redis.Enabled {
		rds, err := repository.NewRedisMetaStore(ctx, repository.RedisConfig{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
			Prefix:   cfg.Redis.Prefix,
		})
		if err != nil {
			return fmt.Errorf("failed to connect to redis: %w", err)
		}
		defer func() {
			if err := rds.Close(); err != nil {
				log.Printf("[WARN] failed to close redis: %v", err)
			}
		}()
		meta = rds
		log.Printf("[INFO] like counters kept in redis %s, prefix %q", cfg.Redis.Addr, cfg.Redis.Prefix)
	}

	svc, err := likes.New(meta, repos.Post, likeSettings(cfg), likes.Hooks{Permalink: permalinkHook(cfg.Server.BaseURL)})
	if err != nil {
		return fmt.Errorf("failed to make like service: %w", err)
	}

	srv := server.New(cfg, svc, newContentStore(repos.Post, meta), revision, opts.Dbg)
	return srv.Run(ctx)
}

// likeSettings maps likes config section to service settings
func likeSettings(cfg *config.Config) likes.Settings {
	res := likes.DefaultSettings()
	res.ZeroText = cfg.Likes.ZeroText
	res.OneText = cfg.Likes.OneText
	res.ManyText = cfg.Likes.ManyText
	res.PostTypes = cfg.Likes.PostTypes
	res.Locale = cfg.Likes.Locale
	res.WidgetLimit = cfg.Likes.WidgetLimit
	if cfg.Likes.AtomicIncrement != nil {
		res.AtomicIncrement = *cfg.Likes.AtomicIncrement
	}
	return res
}

// permalinkHook links posts without permalink to the public post page
func permalinkHook(baseURL string) func(domain.Post) string {
	return func(p domain.Post) string {
		return baseURL + "/posts/" + strconv.FormatInt(p.ID, 10)
	}
}

// logSecrets returns non-empty config secrets to be masked in logs
func logSecrets(cfg *config.Config) []string {
	var res []string
	for _, s := range []string{cfg.Admin.Password, cfg.Redis.Password} {
		if s != "" {
			res = append(res, s)
		}
	}
	return res
}

func setupLog(dbg, noColor bool, secs ...string) {
	logOpts := []lgr.Option{lgr.Msec, lgr.LevelBraces}
	if dbg {
		logOpts = []lgr.Option{lgr.Debug, lgr.CallerFile, lgr.CallerFunc, lgr.Msec, lgr.LevelBraces, lgr.StackTraceOnError}
	}

	if !noColor {
		colorizer := lgr.Mapper{
			ErrorFunc:  func(s string) string { return color.New(color.FgHiRed).Sprint(s) },
			WarnFunc:   func(s string) string { return color.New(color.FgRed).Sprint(s) },
			InfoFunc:   func(s string) string { return color.New(color.FgYellow).Sprint(s) },
			DebugFunc:  func(s string) string { return color.New(color.FgWhite).Sprint(s) },
			CallerFunc: func(s string) string { return color.New(color.FgBlue).Sprint(s) },
			TimeFunc:   func(s string) string { return color.New(color.FgCyan).Sprint(s) },
		}
		logOpts = append(logOpts, lgr.Map(colorizer))
	}

	var secrets []string
	for _, s := range secs {
		if s != "" {
			secrets = append(secrets, s)
		}
	}
	if len(secrets) > 0 {
		logOpts = append(logOpts, lgr.Secret(secrets...))
	}
	lgr.SetupStdLogger(logOpts...)
	lgr.Setup(logOpts...)
}
