package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

const (
	envTraceExecution = "DEBUG_TRACE_EXECUTION"
	envPrintCode      = "DEBUG_PRINT_CODE"
	envConfigPath     = "CLOX_CONFIG"
)

// settings is the resolved CLI configuration. Sources apply in order:
// defaults, config file, environment, flags.
type settings struct {
	TraceExecution bool   `yaml:"trace_execution" toml:"trace_execution"`
	PrintCode      bool   `yaml:"print_code" toml:"print_code"`
	Verbosity      int    `yaml:"verbosity" toml:"verbosity"`
	Prompt         string `yaml:"prompt" toml:"prompt"`
	PlainREPL      bool   `yaml:"plain_repl" toml:"plain_repl"`
}

func defaultSettings() settings {
	return settings{Prompt: "> "}
}

func resolveSettings(flags *cliFlags, getenv func(string) string) (settings, error) {
	s := defaultSettings()

	path := getenv(envConfigPath)
	if flags != nil && *flags.configPath != "" {
		path = *flags.configPath
	}
	if path != "" {
		var err error
		if s, err = loadSettingsFile(path, s); err != nil {
			return s, err
		}
	}

	if err := applyEnv(&s, getenv); err != nil {
		return s, err
	}
	if flags != nil {
		applyFlags(&s, flags)
	}
	return s, nil
}

// loadSettingsFile decodes path over base. Keys missing from the file keep
// their base values.
func loadSettingsFile(path string, base settings) (settings, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return base, fmt.Errorf("cannot read config %s: %w", path, err)
	}

	s := base
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &s)
	case ".toml":
		err = toml.Unmarshal(data, &s)
	default:
		return base, fmt.Errorf("config %s: unsupported format %q (want .yaml, .yml or .toml)", path, ext)
	}
	if err != nil {
		return base, fmt.Errorf("parse error in %s: %w", path, err)
	}
	return s, nil
}

func applyEnv(s *settings, getenv func(string) string) error {
	for _, env := range []struct {
		name   string
		target *bool
	}{
		{envTraceExecution, &s.TraceExecution},
		{envPrintCode, &s.PrintCode},
	} {
		raw := strings.TrimSpace(getenv(env.name))
		if raw == "" {
			continue
		}
		on, err := strconv.ParseBool(raw)
		if err != nil {
			return fmt.Errorf("%s: invalid boolean %q", env.name, raw)
		}
		*env.target = on
	}
	return nil
}

// applyFlags copies only the flags that appeared on the command line.
func applyFlags(s *settings, flags *cliFlags) {
	flags.fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "trace":
			s.TraceExecution = *flags.trace
		case "print-code":
			s.PrintCode = *flags.printCode
		case "plain":
			s.PlainREPL = *flags.plain
		case "v":
			s.Verbosity = int(flags.verbosity)
		}
	})
}
