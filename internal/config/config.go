package config

import (
	"fmt"
	"os"
	"path/filepath"
	"reflect"
	"strings"

	"github.com/mitchellh/mapstructure"
	"github.com/spf13/viper"

	"github.com/rhaitools/rhaidocs/internal/docs"
	"github.com/rhaitools/rhaidocs/internal/render"
)

// GenerateConfig holds the defaults applied to the generate command. Flags
// still win over the config file.
type GenerateConfig struct {
	Flavor          render.Flavor        `mapstructure:"flavor"`
	Order           docs.Order           `mapstructure:"order"`
	Sections        render.SectionFormat `mapstructure:"sections"`
	Slug            string               `mapstructure:"slug"`
	IncludeStandard bool                 `mapstructure:"include_standard"`
	Glossary        bool                 `mapstructure:"glossary"`
}

type Config struct {
	Generate GenerateConfig `mapstructure:"generate"`
}

// cacheBase returns the base cache directory for rhaidocs.
// Checks XDG_CACHE_HOME, then ~/.cache, then /tmp/rhaidocs as fallback.
func cacheBase() string {
	if dir := os.Getenv("XDG_CACHE_HOME"); dir != "" {
		return filepath.Join(dir, "rhaidocs")
	}
	if home, err := os.UserHomeDir(); err == nil {
		return filepath.Join(home, ".cache", "rhaidocs")
	}
	return filepath.Join(os.TempDir(), "rhaidocs")
}

// DBPath returns the path to the SQLite index database file.
func DBPath() string {
	return filepath.Join(cacheBase(), "index.db")
}

// CASDir returns the path to the content-addressable storage directory.
func CASDir() string {
	return filepath.Join(cacheBase(), "cas")
}

func InitializeViper() error {
	viper.SetConfigName("config")
	viper.SetConfigType("toml")

	viper.AddConfigPath(".")
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		viper.AddConfigPath(filepath.Join(xdg, "rhaidocs"))
	} else if home, err := os.UserHomeDir(); err == nil {
		viper.AddConfigPath(filepath.Join(home, ".config", "rhaidocs"))
	}

	viper.SetDefault("generate.flavor", "docusaurus")
	viper.SetDefault("generate.order", "alphabetical")
	viper.SetDefault("generate.sections", "rust")
	viper.SetDefault("generate.slug", "")
	viper.SetDefault("generate.include_standard", false)
	viper.SetDefault("generate.glossary", false)

	viper.SetEnvPrefix("RHAIDOCS")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return fmt.Errorf("failed to read config file: %w", err)
		}
	}
	return nil
}

// stringToEnumHookFunc decodes the flavor, order and sections settings from
// their configuration spellings.
func stringToEnumHookFunc() mapstructure.DecodeHookFunc {
	return func(f, t reflect.Type, data interface{}) (interface{}, error) {
		if f.Kind() != reflect.String {
			return data, nil
		}
		value := data.(string)
		switch t {
		case reflect.TypeOf(render.Flavor(0)):
			return render.ParseFlavor(value)
		case reflect.TypeOf(docs.Order(0)):
			return docs.ParseOrder(value)
		case reflect.TypeOf(render.SectionFormat(0)):
			return render.ParseSectionFormat(value)
		}
		return data, nil
	}
}

func Load() (*Config, error) {
	if err := InitializeViper(); err != nil {
		return nil, err
	}

	var config Config
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		DecodeHook: stringToEnumHookFunc(),
		Result:     &config,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create decoder: %w", err)
	}

	if err := decoder.Decode(viper.AllSettings()); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	return &config, nil
}
