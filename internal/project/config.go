// Package project locates and loads relog.toml, the per-project
// configuration that overrides the built-in migration rule and tunes how
// batch runs behave.
package project

import (
	"fmt"
	"strings"

	"github.com/BurntSushi/toml"

	"relog/internal/rewrite"
	"relog/internal/types"
)

// Config is the decoded relog.toml. Every key is optional; unset keys fall
// back to the built-in defaults.
type Config struct {
	Rule RuleConfig `toml:"rule"`
	Run  RunConfig  `toml:"run"`
}

// RuleConfig overrides pieces of the migration rule. Type keys take fully
// qualified names; name keys take bare member names.
type RuleConfig struct {
	LegacyBase   string `toml:"legacy_base"`
	NewBase      string `toml:"new_base"`
	LegacyEvent  string `toml:"legacy_event"`
	NewEvent     string `toml:"new_event"`
	LegacyLayout string `toml:"legacy_layout"`
	NewLayout    string `toml:"new_layout"`

	Template string `toml:"template"`

	FormatName         string `toml:"format_name"`
	DoLayoutName       string `toml:"do_layout_name"`
	CloseName          string `toml:"close_name"`
	StopName           string `toml:"stop_name"`
	RequiresLayoutName string `toml:"requires_layout_name"`

	// Inherited maps field names visible through the legacy base class to
	// the fully qualified names of their declared types.
	Inherited map[string]string `toml:"inherited"`
}

// RunConfig tunes batch execution.
type RunConfig struct {
	// Jobs caps parallel workers; 0 means one per CPU.
	Jobs int `toml:"jobs"`
	// Cache toggles the on-disk result cache.
	Cache bool `toml:"cache"`
}

// Default returns the configuration an absent relog.toml implies.
func Default() *Config {
	return &Config{
		Run: RunConfig{Jobs: 0, Cache: true},
	}
}

// Load decodes and validates the relog.toml at path.
func Load(path string) (*Config, error) {
	cfg := Default()
	meta, err := toml.DecodeFile(path, cfg)
	if err != nil {
		return nil, fmt.Errorf("%s: failed to parse TOML: %w", path, err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		return nil, fmt.Errorf("%s: unknown key %q", path, undecoded[0].String())
	}
	if err := cfg.validate(path); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Discover walks up from startDir, loading the nearest relog.toml. When none
// exists it returns the defaults with ok=false.
func Discover(startDir string) (cfg *Config, path string, ok bool, err error) {
	path, ok, err = FindRelogToml(startDir)
	if err != nil || !ok {
		return Default(), "", ok, err
	}
	cfg, err = Load(path)
	if err != nil {
		return nil, path, true, err
	}
	return cfg, path, true, nil
}

func (c *Config) validate(path string) error {
	qualified := map[string]string{
		"legacy_base":   c.Rule.LegacyBase,
		"new_base":      c.Rule.NewBase,
		"legacy_event":  c.Rule.LegacyEvent,
		"new_event":     c.Rule.NewEvent,
		"legacy_layout": c.Rule.LegacyLayout,
		"new_layout":    c.Rule.NewLayout,
	}
	for key, value := range qualified {
		if value != "" && !strings.Contains(value, ".") {
			return fmt.Errorf("%s: [rule].%s must be a fully qualified name, got %q", path, key, value)
		}
	}
	bare := map[string]string{
		"format_name":          c.Rule.FormatName,
		"do_layout_name":       c.Rule.DoLayoutName,
		"close_name":           c.Rule.CloseName,
		"stop_name":            c.Rule.StopName,
		"requires_layout_name": c.Rule.RequiresLayoutName,
	}
	for key, value := range bare {
		if strings.Contains(value, ".") {
			return fmt.Errorf("%s: [rule].%s must be a bare member name, got %q", path, key, value)
		}
	}
	for field, typ := range c.Rule.Inherited {
		if !strings.Contains(typ, ".") {
			return fmt.Errorf("%s: [rule.inherited].%s must be a fully qualified name, got %q", path, field, typ)
		}
	}
	if c.Run.Jobs < 0 {
		return fmt.Errorf("%s: [run].jobs must not be negative", path)
	}
	return nil
}

// BuildRule applies the configured overrides onto the built-in rule.
func (c *Config) BuildRule() rewrite.Rule {
	rule := rewrite.Default()
	setIdentity(&rule.LegacyBase, c.Rule.LegacyBase)
	setIdentity(&rule.NewBase, c.Rule.NewBase)
	setIdentity(&rule.LegacyEvent, c.Rule.LegacyEvent)
	setIdentity(&rule.NewEvent, c.Rule.NewEvent)
	setIdentity(&rule.LegacyLayout, c.Rule.LegacyLayout)
	setIdentity(&rule.NewLayout, c.Rule.NewLayout)
	setString(&rule.Template, c.Rule.Template)
	setString(&rule.FormatName, c.Rule.FormatName)
	setString(&rule.DoLayoutName, c.Rule.DoLayoutName)
	setString(&rule.CloseName, c.Rule.CloseName)
	setString(&rule.StopName, c.Rule.StopName)
	setString(&rule.RequiresLayoutName, c.Rule.RequiresLayoutName)
	if len(c.Rule.Inherited) > 0 {
		rule.Inherited = make(map[string]types.Identity, len(c.Rule.Inherited))
		for field, typ := range c.Rule.Inherited {
			rule.Inherited[field] = types.Identity(typ)
		}
	}
	return rule
}

func setIdentity(dst *types.Identity, v string) {
	if v != "" {
		*dst = types.Identity(v)
	}
}

func setString(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}
