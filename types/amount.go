// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package types

import (
	"math/big"
	"strings"

	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
)

// ParseAmount converts a coin amount such as "0.05" into wei.
// Digits below 1e-12 coin would collide with the bet tag and are rejected.
func ParseAmount(s string) (*big.Int, error) {
	d, err := decimal.NewFromString(strings.TrimSpace(s))
	if err != nil {
		return nil, errors.Wrapf(ErrAmountFormat, "amount %q", s)
	}
	if !d.IsPositive() {
		return nil, ErrAmountNotPositive
	}
	maxPlaces := int32(CoinDecimals - TagDigits)
	if !d.Equal(d.Truncate(maxPlaces)) {
		return nil, errors.Wrapf(ErrAmountPrecision, "at most %d decimal places", maxPlaces)
	}
	return d.Shift(CoinDecimals).BigInt(), nil
}

// FormatAmount renders wei as a coin amount without trailing zeros.
func FormatAmount(wei *big.Int) string {
	if wei == nil {
		return "0"
	}
	return decimal.NewFromBigInt(wei, -CoinDecimals).String()
}

// GweiToWei gas price helper
func GweiToWei(gwei float64) *big.Int {
	return decimal.NewFromFloat(gwei).Shift(9).BigInt()
}
