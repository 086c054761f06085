// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package types

import (
	ethtypes "github.com/ethereum/go-ethereum/core/types"
)

// TxEvent describes a contract transaction sent by this client
type TxEvent struct {
	Action string
	BetID  int64
	// Option is -1 when the action has no option
	Option int64
	Tx     *ethtypes.Transaction
}

// TxRecord 本地记录的交易
type TxRecord struct {
	Hash        string `json:"hash"`
	Action      string `json:"action"`
	BetID       int64  `json:"betId"`
	Option      int64  `json:"option"`
	Value       string `json:"value"`
	Nonce       uint64 `json:"nonce"`
	Status      string `json:"status"`
	BlockNumber uint64 `json:"blockNumber,omitempty"`
	GasUsed     uint64 `json:"gasUsed,omitempty"`
	Time        int64  `json:"time"`
}
