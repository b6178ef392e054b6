package app

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"
)

const sampleYAML = `
sites:
  - https://brand.example/
output: report.md
http:
  timeout: 4s
  userAgent: sitetext-test
extract:
  pageMinChars: 80
  tags: [p, h1, h2, li]
about:
  suffixes: [a-propos, qui-sommes-nous]
  anchorTexts: ["À propos"]
  prefix: ""
product:
  anchorTexts: [Boutique]
cache:
  dir: .cache
  maxAge: 24h
`

func TestLoadConfigFile_YAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sitetext.yaml")
	if err := os.WriteFile(path, []byte(sampleYAML), 0o600); err != nil {
		t.Fatal(err)
	}
	fc, err := LoadConfigFile(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(fc.Sites) != 1 || fc.HTTP.Timeout != 4*time.Second || fc.Cache.MaxAge != 24*time.Hour {
		t.Fatalf("unexpected file config: %+v", fc)
	}
	if fc.About.Prefix == nil || *fc.About.Prefix != "" {
		t.Fatalf("expected explicit empty prefix")
	}
}

func TestLoadConfigFile_JSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sitetext.json")
	body := `{"sites":["https://a.example/"],"extract":{"homeMinChars":10},"verbose":true}`
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatal(err)
	}
	fc, err := LoadConfigFile(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if fc.Extract.HomeMinChars != 10 || !fc.Verbose {
		t.Fatalf("unexpected file config: %+v", fc)
	}
}

func TestLoadConfigFile_Invalid(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	if err := os.WriteFile(path, []byte("sites: [unterminated"), 0o600); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadConfigFile(path); err == nil {
		t.Fatalf("expected parse error")
	}
}

func TestApplyFileConfig_FlagsWin(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sitetext.yaml")
	if err := os.WriteFile(path, []byte(sampleYAML), 0o600); err != nil {
		t.Fatal(err)
	}
	fc, err := LoadConfigFile(path)
	if err != nil {
		t.Fatal(err)
	}
	cfg := Config{
		OutputPath:   DefaultOutputPath,
		Timeout:      DefaultTimeout,
		UserAgent:    "explicit",
		HomeMinChars: DefaultHomeMinChars,
		PageMinChars: DefaultPageMinChars,
	}
	ApplyFileConfig(&cfg, fc)

	if cfg.OutputPath != "report.md" || cfg.Timeout != 4*time.Second {
		t.Fatalf("file should replace defaults: %+v", cfg)
	}
	if cfg.UserAgent != "explicit" {
		t.Fatalf("explicit value overwritten: %q", cfg.UserAgent)
	}
	if cfg.PageMinChars != 80 || cfg.HomeMinChars != DefaultHomeMinChars {
		t.Fatalf("min chars = %d/%d", cfg.HomeMinChars, cfg.PageMinChars)
	}
	if len(cfg.AboutSuffixes) != 2 || cfg.AboutPrefix == nil || len(cfg.ProductAnchorTexts) != 1 {
		t.Fatalf("discovery overrides missing: %+v", cfg)
	}
	if len(cfg.ProductSuffixes) != 0 {
		t.Fatalf("unset product suffixes should stay empty")
	}
	if cfg.CacheDir != ".cache" || cfg.CacheMaxAge != 24*time.Hour {
		t.Fatalf("cache settings missing: %+v", cfg)
	}
}

func TestValidateConfig(t *testing.T) {
	if err := ValidateConfig(Config{OutputPath: "-"}); !errors.Is(err, ErrNoSites) {
		t.Fatalf("expected ErrNoSites, got %v", err)
	}
	if err := ValidateConfig(Config{Sites: []string{"x"}}); err == nil {
		t.Fatalf("expected output path error")
	}
	if err := ValidateConfig(Config{Sites: []string{"x"}, OutputPath: "-", PageMinChars: -1}); err == nil {
		t.Fatalf("expected negative length error")
	}
	if err := ValidateConfig(Config{InputPath: "sites.txt", OutputPath: "-"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}
