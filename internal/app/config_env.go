package app

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// ApplyEnvOverrides forcefully overrides cfg fields with environment variables
// when they are set. Used so env beats a config file while flags still win.
func ApplyEnvOverrides(cfg *Config) {
	if cfg == nil {
		return
	}
	if v := os.Getenv("USER_AGENT"); v != "" {
		cfg.UserAgent = v
	}
	if v := os.Getenv("CACHE_DIR"); v != "" {
		cfg.CacheDir = v
	}
	if d, ok := envDuration("SITETEXT_TIMEOUT"); ok {
		cfg.Timeout = d
	}
	if d, ok := envDuration("CACHE_MAX_AGE"); ok {
		cfg.CacheMaxAge = d
	}
	if n, ok := envInt("HOME_MIN_CHARS"); ok {
		cfg.HomeMinChars = n
	}
	if n, ok := envInt("PAGE_MIN_CHARS"); ok {
		cfg.PageMinChars = n
	}
	for key, dst := range map[string]*bool{
		"VERBOSE":            &cfg.Verbose,
		"CACHE_CLEAR":        &cfg.CacheClear,
		"CACHE_STRICT_PERMS": &cfg.CacheStrictPerms,
	} {
		if v, ok := envBool(key); ok {
			*dst = v
		}
	}
}

// flagFields maps command-line flag names to the Config fields they set.
var flagFields = map[string]func(dst, src *Config){
	"input":             func(d, s *Config) { d.InputPath = s.InputPath },
	"output":            func(d, s *Config) { d.OutputPath = s.OutputPath },
	"timeout":           func(d, s *Config) { d.Timeout = s.Timeout },
	"ua":                func(d, s *Config) { d.UserAgent = s.UserAgent },
	"max.redirects":     func(d, s *Config) { d.RedirectMaxHops = s.RedirectMaxHops },
	"home.minChars":     func(d, s *Config) { d.HomeMinChars = s.HomeMinChars },
	"page.minChars":     func(d, s *Config) { d.PageMinChars = s.PageMinChars },
	"tags":              func(d, s *Config) { d.Tags = s.Tags },
	"cache.dir":         func(d, s *Config) { d.CacheDir = s.CacheDir },
	"cache.maxAge":      func(d, s *Config) { d.CacheMaxAge = s.CacheMaxAge },
	"cache.clear":       func(d, s *Config) { d.CacheClear = s.CacheClear },
	"cache.strictPerms": func(d, s *Config) { d.CacheStrictPerms = s.CacheStrictPerms },
	"v":                 func(d, s *Config) { d.Verbose = s.Verbose },
}

// KeepExplicitFlags copies back into cfg every field whose flag was set on
// the command line, so flags beat env and file values.
func KeepExplicitFlags(cfg *Config, fromFlags Config, explicit map[string]bool) {
	if cfg == nil {
		return
	}
	for name := range explicit {
		if set, ok := flagFields[name]; ok {
			set(cfg, &fromFlags)
		}
	}
}

func envDuration(key string) (time.Duration, bool) {
	s := strings.TrimSpace(os.Getenv(key))
	if s == "" {
		return 0, false
	}
	d, err := time.ParseDuration(s)
	if err != nil || d <= 0 {
		return 0, false
	}
	return d, true
}

func envInt(key string) (int, bool) {
	s := strings.TrimSpace(os.Getenv(key))
	if s == "" {
		return 0, false
	}
	n, err := strconv.Atoi(s)
	if err != nil || n < 0 {
		return 0, false
	}
	return n, true
}

func envBool(key string) (bool, bool) {
	switch strings.ToLower(strings.TrimSpace(os.Getenv(key))) {
	case "1", "true", "yes", "on":
		return true, true
	case "0", "false", "no", "off":
		return false, true
	}
	return false, false
}
