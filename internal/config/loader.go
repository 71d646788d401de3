package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/posflag"
	"github.com/knadh/koanf/v2"
	"github.com/spf13/pflag"
)

const (
	envPrefix = "PLACES_"
	dotEnv    = ".env"
)

// envKey maps PLACES_API_KEY to api_key
func envKey(s string) string {
	return strings.ToLower(strings.TrimPrefix(s, envPrefix))
}

// readDotEnv returns the PLACES_* entries of a .env file in the working
// directory, keyed like the environment layer. A missing file is not an error.
func readDotEnv() (map[string]interface{}, error) {
	if _, err := os.Stat(dotEnv); err != nil {
		return nil, nil
	}
	vars, err := godotenv.Read(dotEnv)
	if err != nil {
		return nil, fmt.Errorf("error reading %s: %w", dotEnv, err)
	}
	out := make(map[string]interface{})
	for k, v := range vars {
		if strings.HasPrefix(k, envPrefix) {
			out[envKey(k)] = v
		}
	}
	return out, nil
}

// flagKeys maps flag names that differ from their config keys. An empty
// key marks a flag that is not configuration.
var flagKeys = map[string]string{
	"key":      "api_key",
	"at":       "position",
	"config":   "",
	"json":     "",
	"raw-json": "",
	"help":     "",
	"version":  "",
}

// findConfigFile returns the explicit path, or places.yaml / places.yml in
// the working directory, or "" when there is none.
func findConfigFile(explicit string) string {
	if explicit != "" {
		return explicit
	}
	for _, name := range []string{DefaultConfigFile, "places.yml"} {
		if _, err := os.Stat(name); err == nil {
			return name
		}
	}
	return ""
}

// Loaded is a configuration together with where it came from
type Loaded struct {
	*Config
	File   string // config file used, "" when none
	DotEnv bool   // whether a .env file contributed
	k      *koanf.Koanf
}

// All returns the flattened merged key/value map, for display
func (l *Loaded) All() map[string]interface{} {
	return l.k.All()
}

// Load loads the configuration. Layers, lowest first: defaults, the config
// file, .env, PLACES_* variables, flags. flags may be nil; only flags that
// were explicitly set override other sources.
func Load(cfgFile string, flags *pflag.FlagSet) (*Loaded, error) {
	k := koanf.New(".")

	// 1. Defaults
	if err := k.Load(confmap.Provider(defaults(), "."), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	// 2. Config file
	used := findConfigFile(cfgFile)
	if used != "" {
		if err := k.Load(file.Provider(used), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("error reading config file %s: %w", used, err)
		}
	}

	// 3. .env file, then the real environment: PLACES_API_KEY -> api_key
	dot, err := readDotEnv()
	if err != nil {
		return nil, err
	}
	if len(dot) > 0 {
		if err := k.Load(confmap.Provider(dot, "."), nil); err != nil {
			return nil, fmt.Errorf("failed to load %s: %w", dotEnv, err)
		}
	}
	if err := k.Load(env.Provider(envPrefix, ".", envKey), nil); err != nil {
		return nil, fmt.Errorf("failed to load env vars: %w", err)
	}

	// 4. Flags
	if flags != nil {
		if err := k.Load(posflag.ProviderWithFlag(flags, ".", k, func(f *pflag.Flag) (string, interface{}) {
			if !f.Changed {
				return "", nil
			}
			key, ok := flagKeys[f.Name]
			if !ok {
				key = strings.ReplaceAll(f.Name, "-", "_")
			}
			if key == "" {
				return "", nil
			}
			return key, posflag.FlagVal(flags, f)
		}), nil); err != nil {
			return nil, fmt.Errorf("failed to load flags: %w", err)
		}
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &Loaded{Config: &cfg, File: used, DotEnv: len(dot) > 0, k: k}, nil
}
