package app

import "time"

// Defaults shared by flag parsing and file config overlay.
const (
	DefaultOutputPath   = "-"
	DefaultTimeout      = 10 * time.Second
	DefaultRedirectHops = 10
	DefaultHomeMinChars = 20
	DefaultPageMinChars = 100
	DefaultCacheDir     = ""
)

// Config holds runtime configuration for the application.
type Config struct {
	// Sites are homepage URLs given directly; InputPath adds more from a file.
	Sites      []string
	InputPath  string
	OutputPath string

	// HTTP
	Timeout         time.Duration
	UserAgent       string
	RedirectMaxHops int

	// Extraction
	HomeMinChars int
	PageMinChars int
	Tags         []string

	// Discovery overrides; empty keeps the built-in lists.
	AboutSuffixes      []string
	AboutAnchorTexts   []string
	AboutPrefix        *string
	ProductSuffixes    []string
	ProductAnchorTexts []string

	// Cache
	CacheDir         string
	CacheMaxAge      time.Duration
	CacheClear       bool
	CacheStrictPerms bool

	Verbose bool
}
