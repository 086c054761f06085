// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package commands

import (
	"fmt"
	"strings"

	commandtypes "github.com/33cn/pricepool/system/dapp/commands/types"
	"github.com/33cn/pricepool/types"
	"github.com/33cn/pricepool/wallet"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

// WalletCmd wallet command
func WalletCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "wallet",
		Short: "Wallet management",
		Args:  cobra.MinimumNArgs(1),
	}

	cmd.AddCommand(
		CreateWalletCmd(),
		AddressCmd(),
		BalanceCmd(),
		ImportKeyCmd(),
		ExportKeyCmd(),
	)

	return cmd
}

// CreateWalletCmd create a new keystore
func CreateWalletCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a new wallet",
		RunE:  createWallet,
	}
	return cmd
}

func createWallet(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	pw, err := readPassword(cmd, true)
	if err != nil {
		return err
	}
	acc, err := wallet.Create(cfg.Wallet.KeystoreFile, pw, cfg.Wallet.LightKDF)
	if err != nil {
		return err
	}
	printCreated(cmd.OutOrStdout(), acc.Hex())
	return nil
}

// AddressCmd show the wallet address
func AddressCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "address",
		Short: "Show the wallet address",
		RunE:  walletAddress,
	}
	return cmd
}

func walletAddress(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	addr, err := wallet.Address(cfg.Wallet.KeystoreFile)
	if err != nil {
		return err
	}
	return commandtypes.PrintJSON(cmd.OutOrStdout(), &commandtypes.WalletResult{Address: addr.Hex()})
}

// BalanceCmd show the wallet balance
func BalanceCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "balance",
		Short: "Show the wallet balance",
		RunE:  walletBalance,
	}
	return cmd
}

func walletBalance(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	addr, err := wallet.Address(cfg.Wallet.KeystoreFile)
	if err != nil {
		return err
	}
	backend, err := dialNode(cmdContext(cmd), cfg.RPC)
	if err != nil {
		return err
	}
	defer backend.Close()
	bal, err := backend.BalanceAt(cmdContext(cmd), addr, nil)
	if err != nil {
		return errors.Wrapf(types.ErrNotConnected, "balance: %v", err)
	}
	return commandtypes.PrintJSON(cmd.OutOrStdout(), &commandtypes.WalletResult{
		Address: addr.Hex(),
		Balance: types.FormatAmount(bal),
		Symbol:  types.CoinSymbol,
	})
}

// ImportKeyCmd import a hex private key
func ImportKeyCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "import",
		Short: "Import a private key into a new wallet",
		RunE:  importKey,
	}
	cmd.Flags().StringP("key", "k", "", "hex private key, asked on the terminal when empty")
	return cmd
}

func importKey(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	key, _ := cmd.Flags().GetString("key")
	if key == "" {
		p, err := newPrompter()
		if err != nil {
			return err
		}
		if key, err = p.Password("Private key"); err != nil {
			return err
		}
	}
	pw, err := readPassword(cmd, true)
	if err != nil {
		return err
	}
	acc, err := wallet.Import(cfg.Wallet.KeystoreFile, strings.TrimSpace(key), pw, cfg.Wallet.LightKDF)
	if err != nil {
		return err
	}
	return commandtypes.PrintJSON(cmd.OutOrStdout(), &commandtypes.WalletResult{Address: acc.Hex()})
}

// ExportKeyCmd print the private key
func ExportKeyCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Print the wallet private key",
		RunE:  exportKey,
	}
	return cmd
}

func exportKey(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	if !wallet.Exists(cfg.Wallet.KeystoreFile) {
		return errors.Wrap(types.ErrWalletNotFound, cfg.Wallet.KeystoreFile)
	}
	pw, err := readPassword(cmd, false)
	if err != nil {
		return err
	}
	key, err := wallet.Export(cfg.Wallet.KeystoreFile, pw)
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), key)
	return nil
}
