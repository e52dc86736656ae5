package config

import (
	"fmt"
	"path/filepath"
	"strings"

	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

type Config struct {
	Lists       ListsConfig       `mapstructure:"lists"`
	Definitions DefinitionsConfig `mapstructure:"definitions"`
	Cache       CacheConfig       `mapstructure:"cache"`
	Database    DatabaseConfig    `mapstructure:"database"`
}

type ListsConfig struct {
	IndexFiles      []string `mapstructure:"index_files" validate:"required,min=1,dive,file"`
	OutputDirectory string   `mapstructure:"output_directory" validate:"required"`
}

type DefinitionsConfig struct {
	BaseURL          string `mapstructure:"base_url" validate:"required,url"`
	RawDirectory     string `mapstructure:"raw_directory" validate:"required"`
	EnglishDirectory string `mapstructure:"english_directory" validate:"required,nefield=RawDirectory"`
	Download         bool   `mapstructure:"download"`
	UserAgent        string `mapstructure:"user_agent"`
	// TimeoutSeconds of 0 keeps the transport defaults.
	TimeoutSeconds  int `mapstructure:"timeout_seconds" validate:"gte=0"`
	ReportWindow    int `mapstructure:"report_window" validate:"gte=1"`
	EnglishMaxDepth int `mapstructure:"english_max_depth" validate:"gte=1"`
}

// RawPrefix is the cache key prefix of raw definitions.
func (c DefinitionsConfig) RawPrefix() string {
	return keyPrefix(c.RawDirectory)
}

// EnglishPrefix is the cache key prefix of English sections.
func (c DefinitionsConfig) EnglishPrefix() string {
	return keyPrefix(c.EnglishDirectory)
}

func keyPrefix(dir string) string {
	return strings.TrimSuffix(filepath.ToSlash(dir), "/") + "/"
}

const (
	CacheBackendFile   = "file"
	CacheBackendSQLite = "sqlite"
	CacheBackendMySQL  = "mysql"
)

type CacheConfig struct {
	Backend    string `mapstructure:"backend" validate:"oneof=file sqlite mysql"`
	Directory  string `mapstructure:"directory" validate:"required_if=Backend file"`
	SQLitePath string `mapstructure:"sqlite_path" validate:"required_if=Backend sqlite"`
}

type DatabaseConfig struct {
	Host            string            `mapstructure:"host"`
	Port            int               `mapstructure:"port"`
	Database        string            `mapstructure:"database"`
	Username        string            `mapstructure:"username"`
	Password        string            `mapstructure:"password"`
	TLS             bool              `mapstructure:"tls"`
	Params          map[string]string `mapstructure:"params"`
	MaxOpenConns    int               `mapstructure:"max_open_conns"`
	MaxIdleConns    int               `mapstructure:"max_idle_conns"`
	ConnMaxLifetime int               `mapstructure:"conn_max_lifetime"`
}

// DefaultIndexFiles are the word-index pages of the vocabulary.
var DefaultIndexFiles = []string{
	"data/lists/001-010.html",
	"data/lists/011-020.html",
	"data/lists/021-030.html",
	"data/lists/031-040.html",
	"data/lists/041-050.html",
	"data/lists/051-060.html",
	"data/lists/061-070.html",
	"data/lists/071-080.html",
	"data/lists/081-090.html",
	"data/lists/091-100.html",
	"data/lists/101-110.html",
	"data/lists/111-120.html",
	"data/lists/121-130.html",
	"data/lists/131-140.html",
	"data/lists/141-150.html",
	"data/lists/151-157.html",
}

type ConfigLoader struct {
	viper      *viper.Viper
	validator  *validator.Validate
	translator ut.Translator
}

func NewConfigLoader(configFile string) (*ConfigLoader, error) {
	validate, trans, err := newValidator()
	if err != nil {
		return nil, fmt.Errorf("failed to create new validator: %w", err)
	}

	v := viper.New()
	v.SetConfigType("yaml")
	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName("config")
		v.AddConfigPath(".")
		v.AddConfigPath("$HOME/.config/wiktwords")
	}

	return &ConfigLoader{
		viper:      v,
		validator:  validate,
		translator: trans,
	}, nil
}

// Viper exposes the underlying viper instance, e.g. to bind command line flags.
func (loader *ConfigLoader) Viper() *viper.Viper {
	return loader.viper
}

func (loader *ConfigLoader) Load() (*Config, error) {
	v := loader.viper

	v.SetDefault("lists.index_files", DefaultIndexFiles)
	v.SetDefault("lists.output_directory", filepath.Join("data", "txt"))
	v.SetDefault("definitions.base_url", "https://en.wiktionary.org")
	v.SetDefault("definitions.raw_directory", "data/defs")
	v.SetDefault("definitions.english_directory", "data/en")
	v.SetDefault("definitions.download", false)
	v.SetDefault("definitions.user_agent", "wiktwords/1.0")
	v.SetDefault("definitions.timeout_seconds", 0)
	v.SetDefault("definitions.report_window", 10_000)
	v.SetDefault("definitions.english_max_depth", 2)
	v.SetDefault("cache.backend", CacheBackendFile)
	v.SetDefault("cache.directory", ".")
	v.SetDefault("cache.sqlite_path", filepath.Join("data", "cache.db"))
	v.SetDefault("database.host", "localhost")
	v.SetDefault("database.port", 3306)
	v.SetDefault("database.database", "wiktwords")
	v.SetDefault("database.username", "user")

	if err := v.BindEnv("definitions.download", "WIKTWORDS_DOWNLOAD"); err != nil {
		return nil, fmt.Errorf("failed to bind WIKTWORDS_DOWNLOAD environment variable: %w", err)
	}
	// Bind database password to environment variable
	if err := v.BindEnv("database.password", "DB_PASSWORD"); err != nil {
		return nil, fmt.Errorf("failed to bind DB_PASSWORD environment variable: %w", err)
	}

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("configuration file found but could not be read: %w. Please check the file format and permissions", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration format: %w", err)
	}

	if err := loader.validator.Struct(cfg); err != nil {
		validationErrors := err.(validator.ValidationErrors)
		var errorMsgs []string
		for _, e := range validationErrors {
			errorMsgs = append(errorMsgs, e.Translate(loader.translator))
		}
		return nil, fmt.Errorf("invalid configuration: %s", strings.Join(errorMsgs, ", "))
	}

	return &cfg, nil
}
