// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package wager

import (
	"context"
	"math/big"
	"time"

	"github.com/33cn/pricepool/metrics"
	"github.com/33cn/pricepool/types"
	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	ethtypes "github.com/ethereum/go-ethereum/core/types"
	"github.com/pkg/errors"
)

// CreateBet opens round betID with maximum variation ppp.
// The contract reads both from the value tag ppp*1000+betID.
func (w *Wager) CreateBet(ctx context.Context, ppp, betID int64) (*ethtypes.Receipt, error) {
	if err := types.CheckVariation(ppp); err != nil {
		return nil, err
	}
	if err := types.CheckBetID(betID); err != nil {
		return nil, err
	}
	ev := &types.TxEvent{Action: types.ActionCreate, BetID: betID, Option: -1}
	return w.transact(ctx, ev, types.BetTag(ppp, betID), types.MethodCreateBet)
}

// PlaceBet stakes amount on option in round betID.
func (w *Wager) PlaceBet(ctx context.Context, betID, option int64, amount *big.Int) (*ethtypes.Receipt, error) {
	if err := types.CheckBetID(betID); err != nil {
		return nil, err
	}
	if err := types.CheckOption(option); err != nil {
		return nil, err
	}
	if err := types.CheckAmount(amount); err != nil {
		return nil, err
	}
	info, err := w.BetInfo(ctx, betID)
	if err != nil {
		return nil, err
	}
	if err := types.CheckOptionForBet(option, info); err != nil {
		return nil, errors.Wrapf(err, "option should be <= %d for this bet", info.Variation)
	}
	value := new(big.Int).Add(amount, types.BetTag(option, betID))
	ev := &types.TxEvent{Action: types.ActionJoin, BetID: betID, Option: option}
	return w.transact(ctx, ev, value, types.MethodPlaceBet, big.NewInt(option), big.NewInt(betID))
}

// SettleBet asks the contract to settle round betID.
func (w *Wager) SettleBet(ctx context.Context, betID int64) (*ethtypes.Receipt, error) {
	if err := types.CheckBetID(betID); err != nil {
		return nil, err
	}
	ev := &types.TxEvent{Action: types.ActionSettle, BetID: betID, Option: -1}
	return w.transact(ctx, ev, nil, types.MethodSettleBet, big.NewInt(betID))
}

// ClaimReward withdraws the caller's winnings of round betID.
func (w *Wager) ClaimReward(ctx context.Context, betID int64) (*ethtypes.Receipt, error) {
	if err := types.CheckBetID(betID); err != nil {
		return nil, err
	}
	ev := &types.TxEvent{Action: types.ActionClaim, BetID: betID, Option: -1}
	return w.transact(ctx, ev, nil, types.MethodClaimReward, big.NewInt(betID))
}

// transact signs and sends method, then waits for its receipt.
// A mined but reverted transaction returns the receipt with ErrTxFailed.
func (w *Wager) transact(ctx context.Context, ev *types.TxEvent, value *big.Int, method string, params ...interface{}) (*ethtypes.Receipt, error) {
	if w.account == nil {
		return nil, types.ErrWalletLocked
	}
	opts, err := w.account.Transactor(w.opts.ChainID)
	if err != nil {
		return nil, err
	}
	opts.Context = ctx
	opts.Value = value
	opts.GasLimit = w.opts.GasLimit
	opts.GasPrice = w.opts.GasPrice

	tx, err := w.contract.Transact(opts, method, params...)
	if err != nil {
		metrics.Mark(metrics.TxFailed)
		return nil, errors.Wrapf(err, "send %s", method)
	}
	metrics.Mark(metrics.TxSent)
	wlog.Info("transact", "method", method, "hash", tx.Hash().Hex(), "nonce", tx.Nonce(), "value", tx.Value())
	ev.Tx = tx
	observers := w.observerList()
	for _, o := range observers {
		o.TxSent(ev)
	}

	start := time.Now()
	waitCtx, cancel := context.WithTimeout(ctx, w.opts.ReceiptTimeout)
	defer cancel()
	receipt, err := bind.WaitMined(waitCtx, w.backend, tx)
	if err != nil {
		if waitCtx.Err() == context.DeadlineExceeded {
			err = errors.Wrapf(types.ErrReceiptTimeout, "tx %s", tx.Hash().Hex())
		} else {
			err = errors.Wrapf(err, "wait %s", tx.Hash().Hex())
		}
		for _, o := range observers {
			o.TxDropped(ev, err)
		}
		return nil, err
	}
	metrics.Since(metrics.TxConfirm, start)
	for _, o := range observers {
		o.TxMined(ev, receipt)
	}
	if receipt.Status != ethtypes.ReceiptStatusSuccessful {
		metrics.Mark(metrics.TxFailed)
		wlog.Error("transact", "method", method, "hash", tx.Hash().Hex(), "status", receipt.Status)
		return receipt, errors.Wrapf(types.ErrTxFailed, "tx %s", tx.Hash().Hex())
	}
	return receipt, nil
}
