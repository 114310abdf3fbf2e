// Package config loads cook settings with viper from config files, COOK_*
// environment variables and command-line flags.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/cooklang/cookcli-sub000/internal/app"
)

const EnvPrefix = "COOK"

type Config struct {
	Aisle  string       `mapstructure:"aisle"`
	Pantry string       `mapstructure:"pantry"`
	Log    LogConfig    `mapstructure:"log"`
	Server ServerConfig `mapstructure:"server"`
	Store  StoreConfig  `mapstructure:"store"`

	// Files lists the config files that were read, lowest precedence first.
	Files []string `mapstructure:"-"`

	v *viper.Viper
}

type LogConfig struct {
	Level  string `mapstructure:"level" validate:"oneof=debug info warn error"`
	Format string `mapstructure:"format" validate:"oneof=console json"`
}

type ServerConfig struct {
	Host string `mapstructure:"host" validate:"required"`
	Port int    `mapstructure:"port" validate:"min=1,max=65535"`
	Open bool   `mapstructure:"open"`
}

type StoreConfig struct {
	Path string `mapstructure:"path"`
}

// flagKeys binds config keys to command-line flag names.
var flagKeys = map[string]string{
	"aisle":       "aisle",
	"pantry":      "pantry",
	"server.host": "host",
	"server.port": "port",
	"server.open": "open",
	"store.path":  "store",
}

// Load reads configuration. Later sources win: the global config file,
// <basePath>/config/cook.yaml, the file at path, COOK_* variables, then any
// flags in flags that were set on the command line. flags may be nil.
func Load(path, basePath string, flags *pflag.FlagSet) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var candidates []string
	if global, err := app.GlobalConfigDir(); err == nil {
		candidates = append(candidates, filepath.Join(global, "config.yaml"))
	}
	if basePath != "" {
		candidates = append(candidates, filepath.Join(app.LocalConfigDir(basePath), app.ConfigFileName))
	}

	var files []string
	for _, c := range candidates {
		if _, err := os.Stat(c); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			return nil, fmt.Errorf("stat config %s: %w", c, err)
		}
		if err := mergeFile(v, c); err != nil {
			return nil, err
		}
		files = append(files, c)
	}
	if path != "" {
		if err := mergeFile(v, path); err != nil {
			return nil, err
		}
		files = append(files, path)
	}

	if flags != nil {
		for key, name := range flagKeys {
			if f := flags.Lookup(name); f != nil {
				if err := v.BindPFlag(key, f); err != nil {
					return nil, fmt.Errorf("bind flag %s: %w", name, err)
				}
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	cfg.Files = files
	cfg.v = v
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return &cfg, nil
}

func mergeFile(v *viper.Viper, path string) error {
	v.SetConfigFile(path)
	if filepath.Ext(path) == "" {
		v.SetConfigType("yaml")
	}
	if err := v.MergeInConfig(); err != nil {
		return fmt.Errorf("read config %s: %w", path, err)
	}
	return nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("aisle", "")
	v.SetDefault("pantry", "")

	v.SetDefault("log.level", "warn")
	v.SetDefault("log.format", "console")

	v.SetDefault("server.host", "127.0.0.1")
	v.SetDefault("server.port", 9080)
	v.SetDefault("server.open", false)

	v.SetDefault("store.path", "")
}

var validate = validator.New()

func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			fe := verrs[0]
			return fmt.Errorf("%s: failed %q check (got %v)", fieldKey(fe.Namespace()), fe.Tag(), fe.Value())
		}
		return err
	}
	return nil
}

// fieldKey turns "Config.Server.Port" into "server.port".
func fieldKey(namespace string) string {
	parts := strings.Split(namespace, ".")
	if len(parts) > 1 {
		parts = parts[1:]
	}
	return strings.ToLower(strings.Join(parts, "."))
}

// Setting is one effective key and its value.
type Setting struct {
	Key   string `json:"key" yaml:"key"`
	Value any    `json:"value" yaml:"value"`
}

// Settings lists every effective setting sorted by key.
func (c *Config) Settings() []Setting {
	if c.v == nil {
		return nil
	}
	keys := c.v.AllKeys()
	sort.Strings(keys)
	out := make([]Setting, 0, len(keys))
	for _, k := range keys {
		out = append(out, Setting{Key: k, Value: c.v.Get(k)})
	}
	return out
}
