package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/hyperifyio/sitetext/internal/app"
)

func main() {
	// Logging setup
	zerolog.TimeFieldFormat = time.RFC3339
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})

	cfg, err := parseConfig(os.Args[1:])
	if err != nil {
		log.Error().Err(err).Msg("invalid configuration")
		os.Exit(2)
	}
	if cfg.Verbose {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	} else {
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	}

	if err := run(cfg); err != nil {
		log.Error().Err(err).Msg("run failed")
		os.Exit(1)
	}
}

// parseConfig resolves configuration with precedence flags > env > config
// file > defaults.
func parseConfig(args []string) (app.Config, error) {
	fs := flag.NewFlagSet("sitetext", flag.ContinueOnError)
	var (
		cfg        app.Config
		configPath string
		envFiles   string
		tags       string
	)
	fs.StringVar(&configPath, "config", os.Getenv("SITETEXT_CONFIG"), "Path to YAML or JSON config file")
	fs.StringVar(&envFiles, "env", ".env", "Comma-separated dotenv files to load before reading env")
	fs.StringVar(&cfg.InputPath, "input", "", "File with one homepage URL per line")
	fs.StringVar(&cfg.OutputPath, "output", app.DefaultOutputPath, "Path to write the Markdown report ('-' for stdout)")
	fs.DurationVar(&cfg.Timeout, "timeout", app.DefaultTimeout, "Per-request timeout")
	fs.StringVar(&cfg.UserAgent, "ua", "", "User-Agent header (empty sends the Go default)")
	fs.IntVar(&cfg.RedirectMaxHops, "max.redirects", app.DefaultRedirectHops, "Maximum redirects followed per request")
	fs.IntVar(&cfg.HomeMinChars, "home.minChars", app.DefaultHomeMinChars, "Homepage paragraphs must be longer than this")
	fs.IntVar(&cfg.PageMinChars, "page.minChars", app.DefaultPageMinChars, "About/Products paragraphs must be longer than this")
	fs.StringVar(&tags, "tags", "", "Comma-separated element names to extract (default p,h1,h2)")
	fs.StringVar(&cfg.CacheDir, "cache.dir", app.DefaultCacheDir, "On-disk HTTP cache directory (empty disables)")
	fs.DurationVar(&cfg.CacheMaxAge, "cache.maxAge", 0, "Purge cache entries older than this before the run; 0 disables")
	fs.BoolVar(&cfg.CacheClear, "cache.clear", false, "Clear cache directory before run")
	fs.BoolVar(&cfg.CacheStrictPerms, "cache.strictPerms", false, "Restrict cache permissions (0700 dirs, 0600 files)")
	fs.BoolVar(&cfg.Verbose, "v", false, "Verbose logging")
	fs.Usage = func() {
		fmt.Fprintf(fs.Output(), "Usage: sitetext [flags] [homepage URL ...]\n\n")
		fs.PrintDefaults()
	}
	if err := fs.Parse(args); err != nil {
		return cfg, err
	}
	cfg.Sites = fs.Args()
	cfg.Tags = splitList(tags)

	explicit := map[string]bool{}
	fs.Visit(func(f *flag.Flag) { explicit[f.Name] = true })
	if tags == "" {
		delete(explicit, "tags")
	}
	fromFlags := cfg

	if err := app.LoadEnvFiles(splitList(envFiles)...); err != nil {
		return cfg, fmt.Errorf("load env: %w", err)
	}
	if strings.TrimSpace(configPath) != "" {
		fc, err := app.LoadConfigFile(configPath)
		if err != nil {
			return cfg, fmt.Errorf("load config: %w", err)
		}
		app.ApplyFileConfig(&cfg, fc)
	}
	app.ApplyEnvOverrides(&cfg)
	app.KeepExplicitFlags(&cfg, fromFlags, explicit)
	return cfg, app.ValidateConfig(cfg)
}

func splitList(s string) []string {
	var out []string
	for _, p := range strings.Split(s, ",") {
		if v := strings.TrimSpace(p); v != "" {
			out = append(out, v)
		}
	}
	return out
}

func run(cfg app.Config) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	a, err := app.New(ctx, cfg)
	if err != nil {
		return fmt.Errorf("init app: %w", err)
	}
	return a.Run(ctx)
}
