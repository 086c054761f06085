// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package commands

import (
	"fmt"

	"github.com/33cn/pricepool/types"
	"github.com/manifoldco/promptui"
	"github.com/pkg/errors"
)

var hints = map[error]string{
	types.ErrBetIDRange:        "Bet ID out of range. Try again.",
	types.ErrVariationRange:    "PPP or NNN out of range. Try again.",
	types.ErrOptionRange:       "Parameters are out of range. Try again!",
	types.ErrAmountNotPositive: "Amount must be greater than zero.",
	types.ErrAmountPrecision:   "Amount has too many decimal places.",
	types.ErrAmountFormat:      "Amount is not a number.",
	types.ErrWalletNotFound:    "Wallet not found, create one with `wallet create`.",
	types.ErrWalletExists:      "A wallet already exists at this path.",
	types.ErrWrongPassword:     "Wrong password. Try again.",
	types.ErrEmptyPassword:     "Password must not be empty.",
	types.ErrWalletLocked:      "Wallet is locked.",
	types.ErrTxFailed:          "Transaction failed. Try again.",
	types.ErrReceiptTimeout:    "Transaction was not mined in time, check it later with `bet history`.",
	types.ErrNotTerminal:       "No terminal available, use --passfile.",
	types.ErrContractAddr:      "Contract address is not set, use --contract or the config file.",
}

// ErrorHint turns err into the message shown to the user
func ErrorHint(err error) string {
	cause := errors.Cause(err)
	switch cause {
	case types.ErrOptionAboveVariation:
		// 包含轮次的最大值
		return err.Error()
	case types.ErrNotConnected:
		return fmt.Sprintf("Unable to connect to the node. Verify your connection status. (%v)", err)
	case types.ErrABINotFound:
		return fmt.Sprintf("Contract ABI not found: %v", err)
	case types.ErrChainIDMismatch:
		return fmt.Sprintf("Node is on another chain: %v", err)
	case promptui.ErrInterrupt, promptui.ErrEOF:
		return "Aborted."
	}
	if h, ok := hints[cause]; ok {
		return h
	}
	return err.Error()
}
