// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package types

import (
	"os"
	"time"

	tml "github.com/BurntSushi/toml"
	"github.com/pkg/errors"
)

// Config 客户端配置
type Config struct {
	Title    string    `toml:"Title"`
	RPC      *RPC      `toml:"rpc"`
	Wallet   *Wallet   `toml:"wallet"`
	Contract *Contract `toml:"contract"`
	Tx       *Tx       `toml:"tx"`
	Log      *Log      `toml:"log"`
	Journal  *Journal  `toml:"journal"`
	Metrics  *Metrics  `toml:"metrics"`
	Cache    *Cache    `toml:"cache"`
}

// RPC node endpoint, Timeout in seconds
type RPC struct {
	Addr    string `toml:"addr"`
	ChainID int64  `toml:"chainID"`
	Timeout int64  `toml:"timeout"`
}

// Wallet keystore file
type Wallet struct {
	KeystoreFile string `toml:"keystoreFile"`
	LightKDF     bool   `toml:"lightKDF"`
}

// Contract deployed prediction pool
type Contract struct {
	Address string `toml:"address"`
	ABIFile string `toml:"abiFile"`
}

// Tx transaction building parameters, ReceiptTimeout in seconds
type Tx struct {
	GasLimit       uint64  `toml:"gasLimit"`
	GasPriceGwei   float64 `toml:"gasPriceGwei"`
	ReceiptTimeout int64   `toml:"receiptTimeout"`
}

// Log 日志配置
type Log struct {
	Loglevel        string `toml:"loglevel"`
	LogConsoleLevel string `toml:"logConsoleLevel"`
	LogFile         string `toml:"logFile"`
	MaxFileSize     uint32 `toml:"maxFileSize"`
	MaxBackups      uint32 `toml:"maxBackups"`
	MaxAge          uint32 `toml:"maxAge"`
	LocalTime       bool   `toml:"localTime"`
	Compress        bool   `toml:"compress"`
	CallerFile      bool   `toml:"callerFile"`
	CallerFunction  bool   `toml:"callerFunction"`
}

// Journal local record of sent transactions
type Journal struct {
	Disable bool   `toml:"disable"`
	Driver  string `toml:"driver"`
	DbPath  string `toml:"dbPath"`
}

// Metrics session metrics
type Metrics struct {
	EnableMetrics bool   `toml:"enableMetrics"`
	DataEmitMode  string `toml:"dataEmitMode"`
}

// Cache query caches
type Cache struct {
	BetInfoSize int `toml:"betInfoSize"`
}

// ReceiptTimeoutDuration receipt wait bound
func (t *Tx) ReceiptTimeoutDuration() time.Duration {
	return time.Duration(t.ReceiptTimeout) * time.Second
}

// TimeoutDuration dial and call bound
func (r *RPC) TimeoutDuration() time.Duration {
	return time.Duration(r.Timeout) * time.Second
}

// GetDefaultCfgstring default toml config
func GetDefaultCfgstring() string {
	return cfgstring
}

// NewConfig decodes a toml string on top of nothing
func NewConfig(cfgstring string) (*Config, error) {
	cfg := &Config{}
	if _, err := tml.Decode(cfgstring, cfg); err != nil {
		return nil, errors.Wrap(err, "decode config")
	}
	fillDefault(cfg)
	if err := checkConfig(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// InitCfg loads path if it exists, otherwise the embedded default config.
func InitCfg(path string) (*Config, error) {
	cfg, err := NewConfig(cfgstring)
	if err != nil {
		return nil, err
	}
	if path == "" {
		return cfg, nil
	}
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return cfg, nil
	}
	// 文件中的配置覆盖默认值
	if _, err := tml.DecodeFile(path, cfg); err != nil {
		return nil, errors.Wrapf(err, "decode config %s", path)
	}
	fillDefault(cfg)
	if err := checkConfig(cfg); err != nil {
		return nil, errors.Wrap(err, path)
	}
	return cfg, nil
}

// checkConfig 校验取值范围固定的配置项
func checkConfig(cfg *Config) error {
	if !cfg.Journal.Disable {
		switch cfg.Journal.Driver {
		case "leveldb", "goleveldb", "gobadgerdb", "memdb":
		default:
			return errors.Wrapf(ErrConfigValue, "journal.driver %q", cfg.Journal.Driver)
		}
	}
	if cfg.Metrics.EnableMetrics {
		switch cfg.Metrics.DataEmitMode {
		case "", "log", "stderr", "prometheus":
		default:
			return errors.Wrapf(ErrConfigValue, "metrics.dataEmitMode %q", cfg.Metrics.DataEmitMode)
		}
	}
	return nil
}

func fillDefault(cfg *Config) {
	if cfg.RPC == nil {
		cfg.RPC = &RPC{}
	}
	if cfg.RPC.Timeout <= 0 {
		cfg.RPC.Timeout = 30
	}
	if cfg.Wallet == nil {
		cfg.Wallet = &Wallet{}
	}
	if cfg.Wallet.KeystoreFile == "" {
		cfg.Wallet.KeystoreFile = "wallet_config.json"
	}
	if cfg.Contract == nil {
		cfg.Contract = &Contract{}
	}
	if cfg.Contract.ABIFile == "" {
		cfg.Contract.ABIFile = "contract_abi.json"
	}
	if cfg.Tx == nil {
		cfg.Tx = &Tx{}
	}
	if cfg.Tx.GasLimit == 0 {
		cfg.Tx.GasLimit = 2000000
	}
	if cfg.Tx.GasPriceGwei < 0 {
		cfg.Tx.GasPriceGwei = 0
	}
	if cfg.Tx.ReceiptTimeout <= 0 {
		cfg.Tx.ReceiptTimeout = 300
	}
	if cfg.Log == nil {
		cfg.Log = &Log{}
	}
	if cfg.Journal == nil {
		cfg.Journal = &Journal{}
	}
	if cfg.Journal.Driver == "" {
		cfg.Journal.Driver = "leveldb"
	}
	if cfg.Journal.DbPath == "" {
		cfg.Journal.DbPath = "datadir"
	}
	if cfg.Metrics == nil {
		cfg.Metrics = &Metrics{}
	}
	if cfg.Cache == nil {
		cfg.Cache = &Cache{}
	}
	if cfg.Cache.BetInfoSize <= 0 {
		cfg.Cache.BetInfoSize = 128
	}
}
