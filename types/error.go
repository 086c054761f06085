// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package types

import "errors"

// input validation
var (
	ErrBetIDRange           = errors.New("ErrBetIDRange")
	ErrVariationRange       = errors.New("ErrVariationRange")
	ErrOptionRange          = errors.New("ErrOptionRange")
	ErrOptionAboveVariation = errors.New("ErrOptionAboveVariation")
	ErrAmountNotPositive    = errors.New("ErrAmountNotPositive")
	ErrAmountPrecision      = errors.New("ErrAmountPrecision")
	ErrAmountFormat         = errors.New("ErrAmountFormat")
	ErrInvalidAddress       = errors.New("ErrInvalidAddress")
)

// wallet
var (
	ErrWalletNotFound = errors.New("ErrWalletNotFound")
	ErrWalletExists   = errors.New("ErrWalletExists")
	ErrWrongPassword  = errors.New("ErrWrongPassword")
	ErrPrivkeyFormat  = errors.New("ErrPrivkeyFormat")
	ErrEmptyPassword  = errors.New("ErrEmptyPassword")
	ErrWalletLocked   = errors.New("ErrWalletLocked")
)

// node and contract
var (
	ErrNotConnected      = errors.New("ErrNotConnected")
	ErrContractAddr      = errors.New("ErrContractAddr")
	ErrABINotFound       = errors.New("ErrABINotFound")
	ErrMethodMissing     = errors.New("ErrMethodMissing")
	ErrUnexpectedResult  = errors.New("ErrUnexpectedResult")
	ErrTxFailed          = errors.New("ErrTxFailed")
	ErrReceiptTimeout    = errors.New("ErrReceiptTimeout")
	ErrChainIDMismatch   = errors.New("ErrChainIDMismatch")
	ErrNotTerminal       = errors.New("ErrNotTerminal")
	ErrNotFound          = errors.New("ErrNotFound")
	ErrDBBackend         = errors.New("ErrDBBackend")
	ErrJournalDisabled   = errors.New("ErrJournalDisabled")
	ErrInvalidMenuOption = errors.New("ErrInvalidMenuOption")
	ErrConfigValue       = errors.New("ErrConfigValue")
)
