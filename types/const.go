// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package types

// 下注轮次参数范围
const (
	MinBetID     = 0
	MaxBetID     = 999
	MinVariation = 1
	MaxVariation = 999
	MinOption    = 0
	MaxOption    = 999

	// TagBase packs PPP and NNN into the low six digits of a tx value.
	TagBase = 1000
	// TagDigits is the number of low wei digits reserved for the tag.
	TagDigits = 6
	// CoinDecimals wei per coin exponent.
	CoinDecimals = 18
)

// contract method names
const (
	MethodCreateBet    = "createBet"
	MethodPlaceBet     = "placeBet"
	MethodSettleBet    = "settleBet"
	MethodClaimReward  = "claimReward"
	MethodGetBetInfo   = "getBetInfo"
	MethodGetActiveIDs = "getActiveBetIds"
)

// transaction actions recorded in the journal
const (
	ActionCreate = "create"
	ActionJoin   = "join"
	ActionSettle = "settle"
	ActionClaim  = "claim"
)

// journal tx status
const (
	TxStatusPending = "pending"
	TxStatusSuccess = "success"
	TxStatusFailed  = "failed"
)

// CoinSymbol ticker shown next to amounts
var CoinSymbol = "cBTC"
