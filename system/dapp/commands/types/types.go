// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package types commands中结构体定义
package types

import (
	"github.com/33cn/pricepool/types"
	ethtypes "github.com/ethereum/go-ethereum/core/types"
)

// WalletResult defines wallet address and balance result
type WalletResult struct {
	Address string `json:"address"`
	Balance string `json:"balance,omitempty"`
	Symbol  string `json:"symbol,omitempty"`
}

// ReceiptResult defines the result of a mined transaction
type ReceiptResult struct {
	Hash        string `json:"hash"`
	Status      string `json:"status"`
	BlockNumber uint64 `json:"blockNumber"`
	GasUsed     uint64 `json:"gasUsed"`
}

// ActiveBetsResult defines the open rounds
type ActiveBetsResult struct {
	BetIDs []uint64 `json:"betIds"`
}

// HistoryResult defines the journal listing
type HistoryResult struct {
	Total int64             `json:"total"`
	Txs   []*TxRecordResult `json:"txs"`
}

// TxRecordResult journal record with the stake formatted, tag digits removed
type TxRecordResult struct {
	*types.TxRecord
	Amount string `json:"amount"`
}

// DecodeReceipt receipt to result
func DecodeReceipt(receipt *ethtypes.Receipt) *ReceiptResult {
	if receipt == nil {
		return nil
	}
	res := &ReceiptResult{
		Hash:    receipt.TxHash.Hex(),
		Status:  types.TxStatusFailed,
		GasUsed: receipt.GasUsed,
	}
	if receipt.Status == ethtypes.ReceiptStatusSuccessful {
		res.Status = types.TxStatusSuccess
	}
	if receipt.BlockNumber != nil {
		res.BlockNumber = receipt.BlockNumber.Uint64()
	}
	return res
}

// DecodeTxRecord journal record to result
func DecodeTxRecord(rec *types.TxRecord) *TxRecordResult {
	res := &TxRecordResult{TxRecord: rec, Amount: rec.Value}
	if v, ok := parseBig(rec.Value); ok {
		res.Amount = types.FormatAmount(types.BetStake(v))
	}
	return res
}
