// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package types

import (
	"encoding/json"
	"fmt"
	"io"
	"math/big"
	"strconv"
	"strings"

	"github.com/33cn/pricepool/types"
)

// PrintJSON writes v as indented json
func PrintJSON(w io.Writer, v interface{}) error {
	data, err := json.MarshalIndent(v, "", "    ")
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(w, string(data))
	return err
}

// ParseInt64 parses a decimal integer flag or prompt answer
func ParseInt64(s string) (int64, error) {
	v, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%q is not a number", s)
	}
	return v, nil
}

// ValidateBetID prompt validator for NNN
func ValidateBetID(s string) error {
	v, err := ParseInt64(s)
	if err != nil {
		return err
	}
	return types.CheckBetID(v)
}

// ValidateVariation prompt validator for PPP
func ValidateVariation(s string) error {
	v, err := ParseInt64(s)
	if err != nil {
		return err
	}
	return types.CheckVariation(v)
}

// ValidateOption prompt validator for an option
func ValidateOption(s string) error {
	v, err := ParseInt64(s)
	if err != nil {
		return err
	}
	return types.CheckOption(v)
}

// ValidateAmount prompt validator for a coin amount
func ValidateAmount(s string) error {
	_, err := types.ParseAmount(s)
	return err
}

func parseBig(s string) (*big.Int, bool) {
	return new(big.Int).SetString(s, 10)
}
