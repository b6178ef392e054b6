package app

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	yaml "gopkg.in/yaml.v3"
)

// FileConfig represents the single-file configuration schema.
type FileConfig struct {
	Sites  []string `yaml:"sites" json:"sites"`
	Input  string   `yaml:"input" json:"input"`
	Output string   `yaml:"output" json:"output"`

	HTTP struct {
		Timeout      time.Duration `yaml:"timeout" json:"timeout"`
		UserAgent    string        `yaml:"userAgent" json:"userAgent"`
		MaxRedirects int           `yaml:"maxRedirects" json:"maxRedirects"`
	} `yaml:"http" json:"http"`

	Extract struct {
		HomeMinChars int      `yaml:"homeMinChars" json:"homeMinChars"`
		PageMinChars int      `yaml:"pageMinChars" json:"pageMinChars"`
		Tags         []string `yaml:"tags" json:"tags"`
	} `yaml:"extract" json:"extract"`

	About struct {
		Suffixes    []string `yaml:"suffixes" json:"suffixes"`
		AnchorTexts []string `yaml:"anchorTexts" json:"anchorTexts"`
		Prefix      *string  `yaml:"prefix" json:"prefix"`
	} `yaml:"about" json:"about"`

	Product struct {
		Suffixes    []string `yaml:"suffixes" json:"suffixes"`
		AnchorTexts []string `yaml:"anchorTexts" json:"anchorTexts"`
	} `yaml:"product" json:"product"`

	Cache struct {
		Dir         string        `yaml:"dir" json:"dir"`
		MaxAge      time.Duration `yaml:"maxAge" json:"maxAge"`
		Clear       bool          `yaml:"clear" json:"clear"`
		StrictPerms bool          `yaml:"strictPerms" json:"strictPerms"`
	} `yaml:"cache" json:"cache"`

	Verbose bool `yaml:"verbose" json:"verbose"`
}

// LoadConfigFile reads YAML or JSON into FileConfig.
func LoadConfigFile(path string) (FileConfig, error) {
	var fc FileConfig
	b, err := os.ReadFile(path)
	if err != nil {
		return fc, err
	}
	switch ext := filepath.Ext(path); ext {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(b, &fc); err != nil {
			return fc, fmt.Errorf("parse yaml: %w", err)
		}
	case ".json":
		if err := json.Unmarshal(b, &fc); err != nil {
			return fc, fmt.Errorf("parse json: %w", err)
		}
	default:
		// Try YAML then JSON
		if err := yaml.Unmarshal(b, &fc); err != nil {
			if jerr := json.Unmarshal(b, &fc); jerr != nil {
				return fc, fmt.Errorf("parse config: %v (yaml) / %v (json)", err, jerr)
			}
		}
	}
	return fc, nil
}

// ApplyFileConfig overlays values from fc onto cfg for fields that are unset
// or still at their flag default, so explicit flags win.
func ApplyFileConfig(cfg *Config, fc FileConfig) {
	if cfg == nil {
		return
	}
	if len(cfg.Sites) == 0 && len(fc.Sites) > 0 {
		cfg.Sites = append([]string{}, fc.Sites...)
	}
	if cfg.InputPath == "" && fc.Input != "" {
		cfg.InputPath = fc.Input
	}
	if (cfg.OutputPath == "" || cfg.OutputPath == DefaultOutputPath) && fc.Output != "" {
		cfg.OutputPath = fc.Output
	}

	if (cfg.Timeout == 0 || cfg.Timeout == DefaultTimeout) && fc.HTTP.Timeout > 0 {
		cfg.Timeout = fc.HTTP.Timeout
	}
	if cfg.UserAgent == "" && fc.HTTP.UserAgent != "" {
		cfg.UserAgent = fc.HTTP.UserAgent
	}
	if (cfg.RedirectMaxHops == 0 || cfg.RedirectMaxHops == DefaultRedirectHops) && fc.HTTP.MaxRedirects > 0 {
		cfg.RedirectMaxHops = fc.HTTP.MaxRedirects
	}

	if (cfg.HomeMinChars == 0 || cfg.HomeMinChars == DefaultHomeMinChars) && fc.Extract.HomeMinChars > 0 {
		cfg.HomeMinChars = fc.Extract.HomeMinChars
	}
	if (cfg.PageMinChars == 0 || cfg.PageMinChars == DefaultPageMinChars) && fc.Extract.PageMinChars > 0 {
		cfg.PageMinChars = fc.Extract.PageMinChars
	}
	if len(cfg.Tags) == 0 && len(fc.Extract.Tags) > 0 {
		cfg.Tags = append([]string{}, fc.Extract.Tags...)
	}

	if len(cfg.AboutSuffixes) == 0 && len(fc.About.Suffixes) > 0 {
		cfg.AboutSuffixes = append([]string{}, fc.About.Suffixes...)
	}
	if len(cfg.AboutAnchorTexts) == 0 && len(fc.About.AnchorTexts) > 0 {
		cfg.AboutAnchorTexts = append([]string{}, fc.About.AnchorTexts...)
	}
	if cfg.AboutPrefix == nil && fc.About.Prefix != nil {
		p := *fc.About.Prefix
		cfg.AboutPrefix = &p
	}
	if len(cfg.ProductSuffixes) == 0 && len(fc.Product.Suffixes) > 0 {
		cfg.ProductSuffixes = append([]string{}, fc.Product.Suffixes...)
	}
	if len(cfg.ProductAnchorTexts) == 0 && len(fc.Product.AnchorTexts) > 0 {
		cfg.ProductAnchorTexts = append([]string{}, fc.Product.AnchorTexts...)
	}

	if cfg.CacheDir == "" && fc.Cache.Dir != "" {
		cfg.CacheDir = fc.Cache.Dir
	}
	if cfg.CacheMaxAge == 0 && fc.Cache.MaxAge > 0 {
		cfg.CacheMaxAge = fc.Cache.MaxAge
	}
	if !cfg.CacheClear && fc.Cache.Clear {
		cfg.CacheClear = true
	}
	if !cfg.CacheStrictPerms && fc.Cache.StrictPerms {
		cfg.CacheStrictPerms = true
	}
	if !cfg.Verbose && fc.Verbose {
		cfg.Verbose = true
	}
}

// ValidateConfig performs minimal validation of required settings.
func ValidateConfig(cfg Config) error {
	if len(cfg.Sites) == 0 && strings.TrimSpace(cfg.InputPath) == "" {
		return ErrNoSites
	}
	if strings.TrimSpace(cfg.OutputPath) == "" {
		return errors.New("config: output path is required")
	}
	if cfg.Timeout < 0 || cfg.RedirectMaxHops < 0 {
		return errors.New("config: negative http limits are not allowed")
	}
	if cfg.HomeMinChars < 0 || cfg.PageMinChars < 0 {
		return errors.New("config: negative paragraph lengths are not allowed")
	}
	return nil
}
