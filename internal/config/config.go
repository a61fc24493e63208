package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// EnvPrefix prefixes every environment override. Nested keys are separated by a
// double underscore, e.g. WSQFX_CHEQUING__EXPAND_DELAY=500ms.
const EnvPrefix = "WSQFX_"

type Config struct {
	// HeaderTag is the element that carries date section headers.
	HeaderTag  string  `koanf:"header_tag"`
	Chequing   Variant `koanf:"chequing"`
	CreditCard Variant `koanf:"creditcard"`
	Output     Output  `koanf:"output"`
	Server     Server  `koanf:"server"`
}

// Variant configures one page layout and the statement it produces.
type Variant struct {
	Currency       string `koanf:"currency"`
	FilePrefix     string `koanf:"file_prefix"`
	BankID         string `koanf:"bank_id"`
	AccountID      string `koanf:"account_id"`
	AccountType    string `koanf:"account_type"`
	ExcludePending bool   `koanf:"exclude_pending"`
	// ExpandDelay and CollapseDelay are waited after activating a detail panel.
	ExpandDelay   time.Duration `koanf:"expand_delay"`
	CollapseDelay time.Duration `koanf:"collapse_delay"`
	// RowAttr and RowValue mark transaction rows on layouts that have them.
	RowAttr  string `koanf:"row_attr"`
	RowValue string `koanf:"row_value"`
}

type Output struct {
	Dir       string `koanf:"dir"`
	GCSBucket string `koanf:"gcs_bucket"`
	GCSPrefix string `koanf:"gcs_prefix"`
}

type Server struct {
	Addr string `koanf:"addr"`
}

// Defaults matches the layouts observed on the chequing and credit card activity pages.
func Defaults() map[string]interface{} {
	return map[string]interface{}{
		"header_tag":                 "h2",
		"chequing.currency":          "CAD",
		"chequing.file_prefix":       "bank-transactions",
		"chequing.bank_id":           "0000",
		"chequing.account_id":        "0000",
		"chequing.account_type":      "CHECKING",
		"chequing.exclude_pending":   false,
		"chequing.expand_delay":      300 * time.Millisecond,
		"chequing.collapse_delay":    200 * time.Millisecond,
		"creditcard.currency":        "CAD",
		"creditcard.file_prefix":     "transactions",
		"creditcard.account_id":      "0000",
		"creditcard.exclude_pending": true,
		"creditcard.row_attr":        "data-fullstory",
		"creditcard.row_value":       "cash-activities",
		"output.dir":                 ".",
		"server.addr":                ":8080",
	}
}

// Load layers defaults, the optional YAML file at path and WSQFX_ environment
// variables, in that order. A .env file in the working directory is loaded first.
func Load(path string) (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("load .env: %w", err)
	}

	k := koanf.New(".")
	if err := k.Load(confmap.Provider(Defaults(), "."), nil); err != nil {
		return nil, fmt.Errorf("load defaults: %w", err)
	}
	if path != "" {
		if _, err := os.Stat(path); err != nil {
			return nil, fmt.Errorf("config file: %w", err)
		}
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("load %s: %w", path, err)
		}
	}
	if err := k.Load(env.Provider(EnvPrefix, ".", envKey), nil); err != nil {
		return nil, fmt.Errorf("load environment: %w", err)
	}

	cfg := &Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	return cfg, nil
}

func envKey(s string) string {
	return strings.ReplaceAll(strings.ToLower(strings.TrimPrefix(s, EnvPrefix)), "__", ".")
}
