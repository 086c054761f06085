// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package wager 价格预测池合约的客户端绑定
package wager

import (
	"math/big"
	"sync"
	"time"

	"github.com/33cn/pricepool/common/log"
	"github.com/33cn/pricepool/rpc/client"
	"github.com/33cn/pricepool/types"
	"github.com/33cn/pricepool/wallet"
	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/common"
	ethtypes "github.com/ethereum/go-ethereum/core/types"
	lru "github.com/hashicorp/golang-lru"
	"github.com/pkg/errors"
)

var wlog = log.New("module", "wager")

// TxObserver is told about every transaction the binding submits.
type TxObserver interface {
	TxSent(ev *types.TxEvent)
	TxMined(ev *types.TxEvent, receipt *ethtypes.Receipt)
	// TxDropped the receipt wait ended without a receipt
	TxDropped(ev *types.TxEvent, err error)
}

// Options transaction and cache settings
type Options struct {
	ChainID        *big.Int
	GasLimit       uint64
	GasPrice       *big.Int
	ReceiptTimeout time.Duration
	CacheSize      int
}

// OptionsFromConfig builds Options from the tx and cache sections.
func OptionsFromConfig(cfg *types.Config, chainID *big.Int) *Options {
	opts := &Options{
		ChainID:        chainID,
		GasLimit:       cfg.Tx.GasLimit,
		ReceiptTimeout: cfg.Tx.ReceiptTimeoutDuration(),
		CacheSize:      cfg.Cache.BetInfoSize,
	}
	// 0 表示由节点建议
	if cfg.Tx.GasPriceGwei > 0 {
		opts.GasPrice = types.GweiToWei(cfg.Tx.GasPriceGwei)
	}
	return opts
}

// Wager prediction pool contract bound to an account
type Wager struct {
	backend  client.Backend
	address  common.Address
	abi      *abi.ABI
	contract *bind.BoundContract
	account  *wallet.Account
	opts     Options
	cache    *lru.Cache

	mu        sync.Mutex
	observers []TxObserver
}

// New binds the contract at address. account may be nil for read only use.
func New(backend client.Backend, address string, parsed *abi.ABI, account *wallet.Account, opts *Options) (*Wager, error) {
	if !common.IsHexAddress(address) {
		return nil, errors.Wrapf(types.ErrContractAddr, "%q", address)
	}
	if parsed == nil {
		parsed = MustDefaultABI()
	} else if err := CheckABI(parsed); err != nil {
		return nil, err
	}
	w := &Wager{
		backend: backend,
		address: common.HexToAddress(address),
		abi:     parsed,
		account: account,
	}
	if opts != nil {
		w.opts = *opts
	}
	if w.opts.GasLimit == 0 {
		w.opts.GasLimit = 2000000
	}
	if w.opts.ReceiptTimeout <= 0 {
		w.opts.ReceiptTimeout = 5 * time.Minute
	}
	if w.opts.CacheSize <= 0 {
		w.opts.CacheSize = 128
	}
	cache, err := lru.New(w.opts.CacheSize)
	if err != nil {
		return nil, errors.Wrap(err, "bet info cache")
	}
	w.cache = cache
	w.contract = bind.NewBoundContract(w.address, *parsed, backend, backend, backend)
	wlog.Debug("New", "contract", w.address.Hex(), "gasLimit", w.opts.GasLimit, "gasPrice", w.opts.GasPrice)
	return w, nil
}

// AddObserver registers o for transaction notifications
func (w *Wager) AddObserver(o TxObserver) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.observers = append(w.observers, o)
}

// Address contract address
func (w *Wager) Address() common.Address {
	return w.address
}

// Account bound account, nil when locked
func (w *Wager) Account() *wallet.Account {
	return w.account
}

func (w *Wager) observerList() []TxObserver {
	w.mu.Lock()
	defer w.mu.Unlock()
	return append([]TxObserver(nil), w.observers...)
}
