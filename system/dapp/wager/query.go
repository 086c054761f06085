// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package wager

import (
	"context"
	"math/big"
	"reflect"
	"time"

	"github.com/33cn/pricepool/metrics"
	"github.com/33cn/pricepool/types"
	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/common"
	"github.com/pkg/errors"
)

const betInfoFields = 10

// BetInfo reads round betID. Settled rounds no longer change and are cached.
func (w *Wager) BetInfo(ctx context.Context, betID int64) (*types.BetInfo, error) {
	if err := types.CheckBetID(betID); err != nil {
		return nil, err
	}
	if v, ok := w.cache.Get(betID); ok {
		return v.(*types.BetInfo), nil
	}
	out, err := w.call(ctx, types.MethodGetBetInfo, big.NewInt(betID))
	if err != nil {
		return nil, err
	}
	info, err := decodeBetInfo(out)
	if err != nil {
		return nil, err
	}
	if info.Settled {
		w.cache.Add(betID, info)
	}
	return info, nil
}

// ActiveBetIDs ids of the rounds still open
func (w *Wager) ActiveBetIDs(ctx context.Context) ([]uint64, error) {
	out, err := w.call(ctx, types.MethodGetActiveIDs)
	if err != nil {
		return nil, err
	}
	if len(out) != 1 {
		return nil, errors.Wrapf(types.ErrUnexpectedResult, "%s returned %d values", types.MethodGetActiveIDs, len(out))
	}
	ids, ok := out[0].([]*big.Int)
	if !ok {
		return nil, errors.Wrapf(types.ErrUnexpectedResult, "%s returned %T", types.MethodGetActiveIDs, out[0])
	}
	res := make([]uint64, 0, len(ids))
	for _, id := range ids {
		res = append(res, id.Uint64())
	}
	return res, nil
}

// Balance of the bound account
func (w *Wager) Balance(ctx context.Context) (*big.Int, error) {
	if w.account == nil {
		return nil, types.ErrWalletLocked
	}
	return w.BalanceOf(ctx, w.account.Address)
}

// BalanceOf latest balance of addr in wei
func (w *Wager) BalanceOf(ctx context.Context, addr common.Address) (*big.Int, error) {
	defer metrics.Since(metrics.RPCCall, time.Now())
	bal, err := w.backend.BalanceAt(ctx, addr, nil)
	if err != nil {
		return nil, errors.Wrapf(err, "balance of %s", addr.Hex())
	}
	return bal, nil
}

func (w *Wager) call(ctx context.Context, method string, params ...interface{}) ([]interface{}, error) {
	defer metrics.Since(metrics.RPCCall, time.Now())
	opts := &bind.CallOpts{Context: ctx}
	if w.account != nil {
		opts.From = w.account.Address
	}
	var out []interface{}
	if err := w.contract.Call(opts, &out, method, params...); err != nil {
		return nil, errors.Wrapf(err, "call %s", method)
	}
	return out, nil
}

// decodeBetInfo accepts the ten getBetInfo values either flat or packed in a single tuple.
func decodeBetInfo(out []interface{}) (*types.BetInfo, error) {
	if len(out) == 1 {
		out = flatten(out[0])
	}
	if len(out) != betInfoFields {
		return nil, errors.Wrapf(types.ErrUnexpectedResult, "%s returned %d values", types.MethodGetBetInfo, len(out))
	}
	var (
		info = &types.BetInfo{}
		nums [betInfoFields]*big.Int
	)
	for i, v := range out {
		if i == 5 {
			settled, ok := v.(bool)
			if !ok {
				return nil, errors.Wrapf(types.ErrUnexpectedResult, "field %d is %T", i, v)
			}
			info.Settled = settled
			continue
		}
		n, ok := v.(*big.Int)
		if !ok {
			return nil, errors.Wrapf(types.ErrUnexpectedResult, "field %d is %T", i, v)
		}
		nums[i] = n
	}
	info.ID = nums[0].Uint64()
	info.Variation = nums[1].Uint64()
	info.StartTime = nums[2].Int64()
	info.EndTime = nums[3].Int64()
	info.InitialPrize = nums[4]
	info.TotalPot = nums[6]
	info.WinnersTotal = nums[7]
	info.WinningOption = nums[8]
	info.ExecutorReward = nums[9]
	return info, nil
}

// flatten 将 abi 解出的匿名结构体展开为字段列表
func flatten(v interface{}) []interface{} {
	rv := reflect.ValueOf(v)
	if rv.Kind() == reflect.Ptr {
		rv = rv.Elem()
	}
	if rv.Kind() != reflect.Struct {
		return []interface{}{v}
	}
	res := make([]interface{}, 0, rv.NumField())
	for i := 0; i < rv.NumField(); i++ {
		res = append(res, rv.Field(i).Interface())
	}
	return res
}
