// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package commands 预测池客户端命令
package commands

import (
	"fmt"

	"github.com/33cn/pricepool/common/version"
	"github.com/33cn/pricepool/system/dapp/wager"
	"github.com/spf13/cobra"
)

// VersionCmd version command
func VersionCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "version",
		Short: "Get client version",
		Run:   printVersion,
	}

	return cmd
}

func printVersion(cmd *cobra.Command, args []string) {
	fmt.Fprintln(cmd.OutOrStdout(), version.GetVersion())
}

// AbiCmd print the built in contract interface
func AbiCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "abi",
		Short: "Print the default contract ABI",
		Run:   printABI,
	}
	return cmd
}

func printABI(cmd *cobra.Command, args []string) {
	fmt.Fprintln(cmd.OutOrStdout(), wager.DefaultABI)
}
