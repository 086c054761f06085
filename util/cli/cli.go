// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package cli 预测池命令行入口
package cli

import (
	"fmt"
	"os"

	"github.com/33cn/pricepool/common/log"
	"github.com/33cn/pricepool/system/dapp/commands"
	"github.com/33cn/pricepool/types"
	"github.com/spf13/cobra"
)

// NewRootCmd builds the command tree. Without a subcommand the home menu runs.
func NewRootCmd(title string) *cobra.Command {
	menu := commands.MenuCmd()
	rootCmd := &cobra.Command{
		Use:           title + "-cli",
		Short:         title + " client tools",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          menu.RunE,
	}
	cfg, _ := types.NewConfig(types.GetDefaultCfgstring())
	rootCmd.PersistentFlags().String("conf", "pricepool.toml", "config file")
	rootCmd.PersistentFlags().String("rpc_laddr", cfg.RPC.Addr, "node json-rpc url")
	rootCmd.PersistentFlags().String("contract", cfg.Contract.Address, "prediction pool contract address")
	rootCmd.PersistentFlags().String("abi", cfg.Contract.ABIFile, "contract abi file")
	rootCmd.PersistentFlags().String("keystore", cfg.Wallet.KeystoreFile, "wallet keystore file")
	rootCmd.PersistentFlags().String("passfile", "", "file holding the wallet password")

	rootCmd.AddCommand(
		commands.WalletCmd(),
		commands.BetCmd(),
		menu,
		commands.VersionCmd(),
		commands.AbiCmd(),
	)
	return rootCmd
}

//Run :
func Run(title string) {
	log.SetLogLevel("error")
	rootCmd := NewRootCmd(title)
	err := rootCmd.Execute()
	log.Close()
	if err != nil {
		fmt.Fprintln(os.Stderr, commands.ErrorHint(err))
		os.Exit(1)
	}
}
