// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package types

import (
	"math/big"
	"time"
)

// BetInfo 合约中一个下注轮次的状态
type BetInfo struct {
	ID             uint64   `json:"id"`
	Variation      uint64   `json:"variation"`
	StartTime      int64    `json:"startTime"`
	EndTime        int64    `json:"endTime"`
	InitialPrize   *big.Int `json:"initialPrize"`
	Settled        bool     `json:"settled"`
	TotalPot       *big.Int `json:"totalPot"`
	WinnersTotal   *big.Int `json:"winnersTotal"`
	WinningOption  *big.Int `json:"winningOption"`
	ExecutorReward *big.Int `json:"executorReward"`
}

// Status human readable round state
func (b *BetInfo) Status() string {
	if b.Settled {
		return "Settled"
	}
	return "Active"
}

// Start round start as UTC time
func (b *BetInfo) Start() time.Time {
	return time.Unix(b.StartTime, 0).UTC()
}

// End round end as UTC time
func (b *BetInfo) End() time.Time {
	return time.Unix(b.EndTime, 0).UTC()
}

// BetInfoResult json view of BetInfo with coin formatted amounts
type BetInfoResult struct {
	ID             uint64 `json:"id"`
	Variation      uint64 `json:"variation"`
	StartTime      string `json:"startTime"`
	EndTime        string `json:"endTime"`
	InitialPrize   string `json:"initialPrize"`
	Status         string `json:"status"`
	TotalPot       string `json:"totalPot"`
	WinnersTotal   string `json:"winnersTotal"`
	WinningOption  string `json:"winningOption"`
	ExecutorReward string `json:"executorReward"`
}

// Result formats the round for display
func (b *BetInfo) Result() *BetInfoResult {
	return &BetInfoResult{
		ID:             b.ID,
		Variation:      b.Variation,
		StartTime:      b.Start().Format(time.RFC3339),
		EndTime:        b.End().Format(time.RFC3339),
		InitialPrize:   bigString(b.InitialPrize),
		Status:         b.Status(),
		TotalPot:       FormatAmount(b.TotalPot),
		WinnersTotal:   FormatAmount(b.WinnersTotal),
		WinningOption:  bigString(b.WinningOption),
		ExecutorReward: FormatAmount(b.ExecutorReward),
	}
}

func bigString(v *big.Int) string {
	if v == nil {
		return "0"
	}
	return v.String()
}

// CheckBetID NNN must be within [0,999]
func CheckBetID(id int64) error {
	if id < MinBetID || id > MaxBetID {
		return ErrBetIDRange
	}
	return nil
}

// CheckVariation PPP must be within [1,999]
func CheckVariation(ppp int64) error {
	if ppp < MinVariation || ppp > MaxVariation {
		return ErrVariationRange
	}
	return nil
}

// CheckOption option must be within [0,999]
func CheckOption(option int64) error {
	if option < MinOption || option > MaxOption {
		return ErrOptionRange
	}
	return nil
}

// CheckAmount stake in wei must be positive and leave the tag digits clear
func CheckAmount(wei *big.Int) error {
	if wei == nil || wei.Sign() <= 0 {
		return ErrAmountNotPositive
	}
	mod := new(big.Int).Exp(big.NewInt(10), big.NewInt(TagDigits), nil)
	if new(big.Int).Mod(wei, mod).Sign() != 0 {
		return ErrAmountPrecision
	}
	return nil
}

// CheckOptionForBet an option may not exceed the round's max variation
func CheckOptionForBet(option int64, info *BetInfo) error {
	if err := CheckOption(option); err != nil {
		return err
	}
	if info != nil && uint64(option) > info.Variation {
		return ErrOptionAboveVariation
	}
	return nil
}

// BetTag encodes hi*1000+lo as a wei amount. Callers validate the ranges first.
func BetTag(hi, lo int64) *big.Int {
	return big.NewInt(hi*TagBase + lo)
}

// SplitBetTag recovers (hi, lo) from the low six digits of a tx value.
func SplitBetTag(value *big.Int) (int64, int64) {
	mod := new(big.Int).Exp(big.NewInt(10), big.NewInt(TagDigits), nil)
	tag := new(big.Int).Mod(value, mod).Int64()
	return tag / TagBase, tag % TagBase
}

// BetStake the part of a tx value above the tag digits
func BetStake(value *big.Int) *big.Int {
	hi, lo := SplitBetTag(value)
	return new(big.Int).Sub(value, BetTag(hi, lo))
}
