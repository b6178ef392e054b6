package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/rs/zerolog/log"

	"github.com/hyperifyio/sitetext/internal/cache"
	"github.com/hyperifyio/sitetext/internal/discover"
	"github.com/hyperifyio/sitetext/internal/fetch"
	"github.com/hyperifyio/sitetext/internal/site"
)

// ErrNoSites is returned when neither sites nor an input file are configured.
var ErrNoSites = errors.New("config: no sites given (pass URLs or -input)")

type App struct {
	cfg    Config
	finder *site.Finder
	store  *cache.PageStore
	stdout io.Writer
}

func New(ctx context.Context, cfg Config) (*App, error) {
	if err := ValidateConfig(cfg); err != nil {
		return nil, err
	}
	a := &App{cfg: cfg, stdout: os.Stdout}

	if cfg.CacheDir != "" {
		if cfg.CacheClear {
			if err := cache.ClearDir(cfg.CacheDir); err != nil {
				log.Warn().Err(err).Str("dir", cfg.CacheDir).Msg("cache clear failed")
			}
		}
		if cfg.CacheMaxAge > 0 {
			n, err := cache.PurgeStale(cfg.CacheDir, cfg.CacheMaxAge)
			if err != nil {
				log.Warn().Err(err).Str("dir", cfg.CacheDir).Msg("cache purge failed")
			} else if n > 0 {
				log.Debug().Int("removed", n).Msg("purged expired cache entries")
			}
		}
		a.store = &cache.PageStore{Dir: cfg.CacheDir, StrictPerms: cfg.CacheStrictPerms}
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	client := &fetch.Client{
		HTTPClient:        newHTTPClient(timeout),
		UserAgent:         cfg.UserAgent,
		PerRequestTimeout: timeout,
		RedirectMaxHops:   cfg.RedirectMaxHops,
		Cache:             a.store,
	}
	a.finder = newFinder(client, cfg)
	return a, nil
}

// newFinder applies configured overrides on top of the built-in variants.
func newFinder(c *fetch.Client, cfg Config) *site.Finder {
	f := site.New(c)
	f.HomeMinParagraphLen = cfg.HomeMinChars
	f.PageMinParagraphLen = cfg.PageMinChars
	if len(cfg.Tags) > 0 {
		f.Tags = cfg.Tags
	}

	about := discover.About
	if len(cfg.AboutSuffixes) > 0 {
		about.Suffixes = cfg.AboutSuffixes
	}
	if len(cfg.AboutAnchorTexts) > 0 {
		about.AnchorTexts = cfg.AboutAnchorTexts
	}
	if cfg.AboutPrefix != nil {
		about.PrefixFallback = *cfg.AboutPrefix
	}
	f.About = about

	product := discover.Product
	if len(cfg.ProductSuffixes) > 0 {
		product.Suffixes = cfg.ProductSuffixes
	}
	if len(cfg.ProductAnchorTexts) > 0 {
		product.AnchorTexts = cfg.ProductAnchorTexts
	}
	f.Product = product
	return f
}

// Run profiles every configured site in order and writes one report.
// Sites that cannot be reached are reported as not found, never as errors.
func (a *App) Run(ctx context.Context) error {
	sites := append([]string{}, a.cfg.Sites...)
	if a.cfg.InputPath != "" {
		fromFile, err := readSitesFile(a.cfg.InputPath)
		if err != nil {
			return fmt.Errorf("read input: %w", err)
		}
		sites = append(sites, fromFile...)
	}
	for i := range sites {
		sites[i] = homepageURL(sites[i])
	}
	sites = dedupe(sites)
	if len(sites) == 0 {
		return ErrNoSites
	}

	profiles := make([]site.Profile, 0, len(sites))
	for _, s := range sites {
		if err := ctx.Err(); err != nil {
			return err
		}
		log.Info().Str("url", s).Msg("profiling site")
		p := a.finder.Profile(ctx, s)
		log.Info().
			Str("url", s).
			Bool("home", p.Home.Found).
			Bool("about", p.About.Found).
			Bool("product", p.Product.Found).
			Msg("site done")
		profiles = append(profiles, p)
	}

	content := appendFooter(renderReport(profiles), profiles, a.store != nil)
	if a.cfg.OutputPath == "-" {
		_, err := io.WriteString(a.stdout, content)
		return err
	}
	if err := os.WriteFile(a.cfg.OutputPath, []byte(content), 0o644); err != nil {
		return fmt.Errorf("write output: %w", err)
	}
	log.Info().Str("out", a.cfg.OutputPath).Int("sites", len(profiles)).Msg("wrote report")
	return nil
}
