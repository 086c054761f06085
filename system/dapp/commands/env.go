// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package commands

import (
	"context"
	"fmt"
	"io"
	"math/big"
	"os"
	"time"

	"github.com/33cn/pricepool/common/log"
	"github.com/33cn/pricepool/metrics"
	"github.com/33cn/pricepool/rpc/client"
	"github.com/33cn/pricepool/system/dapp/wager"
	"github.com/33cn/pricepool/types"
	"github.com/33cn/pricepool/wallet"
	ethtypes "github.com/ethereum/go-ethereum/core/types"
	"github.com/pkg/errors"
	"github.com/qianlnk/pgbar"
	"github.com/spf13/cobra"
	"golang.org/x/crypto/ssh/terminal"
)

var clog = log.New("module", "commands")

// dialNode 可在测试中替换
var dialNode = func(ctx context.Context, cfg *types.RPC) (client.Backend, error) {
	return client.Dial(ctx, cfg.Addr, cfg.ChainID, cfg.TimeoutDuration())
}

// betClient contract operations used by the commands
type betClient interface {
	CreateBet(ctx context.Context, ppp, betID int64) (*ethtypes.Receipt, error)
	PlaceBet(ctx context.Context, betID, option int64, amount *big.Int) (*ethtypes.Receipt, error)
	SettleBet(ctx context.Context, betID int64) (*ethtypes.Receipt, error)
	ClaimReward(ctx context.Context, betID int64) (*ethtypes.Receipt, error)
	BetInfo(ctx context.Context, betID int64) (*types.BetInfo, error)
	ActiveBetIDs(ctx context.Context) ([]uint64, error)
	Balance(ctx context.Context) (*big.Int, error)
}

// session everything a command needs to talk to the contract
type session struct {
	cfg     *types.Config
	backend client.Backend
	wager   *wager.Wager
	journal *wallet.Journal
	account *wallet.Account
}

// loadConfig reads --conf and applies the flag overrides
func loadConfig(cmd *cobra.Command) (*types.Config, error) {
	path, _ := cmd.Flags().GetString("conf")
	cfg, err := types.InitCfg(path)
	if err != nil {
		return nil, err
	}
	if f := cmd.Flags().Lookup("rpc_laddr"); f != nil && f.Changed {
		cfg.RPC.Addr = f.Value.String()
	}
	if f := cmd.Flags().Lookup("contract"); f != nil && f.Changed {
		cfg.Contract.Address = f.Value.String()
	}
	if f := cmd.Flags().Lookup("abi"); f != nil && f.Changed {
		cfg.Contract.ABIFile = f.Value.String()
	}
	if f := cmd.Flags().Lookup("keystore"); f != nil && f.Changed {
		cfg.Wallet.KeystoreFile = f.Value.String()
	}
	log.SetFileLog(cfg.Log)
	metrics.StartMetrics(cfg.Metrics)
	return cfg, nil
}

// unlock loads the keystore with the password from --passfile or the terminal
func unlock(cmd *cobra.Command, cfg *types.Config) (*wallet.Account, error) {
	if !wallet.Exists(cfg.Wallet.KeystoreFile) {
		return nil, errors.Wrap(types.ErrWalletNotFound, cfg.Wallet.KeystoreFile)
	}
	pw, err := readPassword(cmd, false)
	if err != nil {
		return nil, err
	}
	return wallet.Load(cfg.Wallet.KeystoreFile, pw)
}

// openSession dials the node and binds the contract. account may be nil.
func openSession(ctx context.Context, cfg *types.Config, account *wallet.Account, out io.Writer) (*session, error) {
	backend, err := dialNode(ctx, cfg.RPC)
	if err != nil {
		return nil, err
	}
	s := &session{cfg: cfg, backend: backend, account: account}
	chainID, err := client.ResolveChainID(ctx, backend, cfg.RPC.ChainID)
	if err != nil {
		s.Close()
		return nil, err
	}
	parsed, err := wager.LoadABI(cfg.Contract.ABIFile)
	if err != nil {
		s.Close()
		return nil, err
	}
	s.wager, err = wager.New(backend, cfg.Contract.Address, parsed, account, wager.OptionsFromConfig(cfg, chainID))
	if err != nil {
		s.Close()
		return nil, err
	}
	s.wager.AddObserver(newConsoleObserver(out, cfg.Tx.ReceiptTimeoutDuration()))
	if account != nil {
		j, err := wallet.NewJournal(cfg.Journal)
		switch {
		case err == nil:
			s.journal = j
			s.wager.AddObserver(j)
		case errors.Cause(err) == types.ErrJournalDisabled:
		default:
			clog.Error("openSession", "journal", err)
		}
	}
	clog.Info("openSession", "rpc", cfg.RPC.Addr, "chainID", chainID, "contract", cfg.Contract.Address)
	return s, nil
}

// Close releases the node connection and the journal
func (s *session) Close() {
	if s.journal != nil {
		if err := s.journal.Close(); err != nil {
			clog.Error("Close", "journal", err)
		}
		s.journal = nil
	}
	if s.backend != nil {
		s.backend.Close()
		s.backend = nil
	}
	metrics.Emit(os.Stderr)
}

// consoleObserver prints progress of submitted transactions
type consoleObserver struct {
	out  io.Writer
	bar  bool
	wait time.Duration

	done     chan struct{}
	finished chan struct{}
}

func newConsoleObserver(out io.Writer, wait time.Duration) *consoleObserver {
	c := &consoleObserver{out: out, wait: wait}
	if f, ok := out.(*os.File); ok && f == os.Stdout {
		c.bar = terminal.IsTerminal(int(f.Fd()))
	}
	return c
}

func (c *consoleObserver) TxSent(ev *types.TxEvent) {
	fmt.Fprintf(c.out, "Transaction sent: %s\n", ev.Tx.Hash().Hex())
	fmt.Fprintln(c.out, "Awaiting the transaction confirmation...")
	if !c.bar {
		return
	}
	c.done = make(chan struct{})
	c.finished = make(chan struct{})
	go waitBar(c.done, c.finished, c.wait)
}

func (c *consoleObserver) TxMined(ev *types.TxEvent, receipt *ethtypes.Receipt) {
	c.stopBar()
	clog.Debug("TxMined", "hash", receipt.TxHash.Hex(), "block", receipt.BlockNumber, "status", receipt.Status)
}

func (c *consoleObserver) TxDropped(ev *types.TxEvent, err error) {
	c.stopBar()
	clog.Debug("TxDropped", "hash", ev.Tx.Hash().Hex(), "err", err)
}

func (c *consoleObserver) stopBar() {
	if c.done == nil {
		return
	}
	close(c.done)
	<-c.finished
	c.done = nil
	fmt.Fprintln(c.out)
}

// 模拟显示等待确认的进度,并非真实进度
func waitBar(done <-chan struct{}, finished chan<- struct{}, wait time.Duration) {
	defer close(finished)
	const total = 100
	bar := pgbar.NewBar(0, "confirm", total)
	step := wait / total
	for i := 0; i < total; i++ {
		select {
		case <-done:
			bar.Add(total - i)
			return
		case <-time.After(step):
			// 超时之前不显示100%
			if i < total-1 {
				bar.Add(1)
			}
		}
	}
}

func cmdContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}
