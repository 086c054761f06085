// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package commands

import (
	"fmt"

	commandtypes "github.com/33cn/pricepool/system/dapp/commands/types"
	"github.com/33cn/pricepool/types"
	"github.com/33cn/pricepool/wallet"
	ethtypes "github.com/ethereum/go-ethereum/core/types"
	"github.com/spf13/cobra"
)

// BetCmd prediction pool command
func BetCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "bet",
		Short: "Create, join, settle and inspect bets",
		Args:  cobra.MinimumNArgs(1),
	}

	cmd.AddCommand(
		CreateBetCmd(),
		JoinBetCmd(),
		SettleBetCmd(),
		ClaimRewardCmd(),
		BetInfoCmd(),
		ListBetsCmd(),
		HistoryCmd(),
	)

	return cmd
}

func addBetIDFlag(cmd *cobra.Command) {
	cmd.Flags().Int64P("id", "i", 0, "bet id NNN (0-999)")
	cmd.MarkFlagRequired("id")
}

// withSession runs fn against the contract, unlocking the wallet when write is set
func withSession(cmd *cobra.Command, write bool, fn func(s *session, c betClient) error) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	var acc *wallet.Account
	if write {
		if acc, err = unlock(cmd, cfg); err != nil {
			return err
		}
	}
	s, err := openSession(cmdContext(cmd), cfg, acc, cmd.OutOrStdout())
	if err != nil {
		return err
	}
	defer s.Close()
	return fn(s, s.wager)
}

func printReceipt(cmd *cobra.Command, receipt *ethtypes.Receipt, err error) error {
	if receipt != nil {
		if perr := commandtypes.PrintJSON(cmd.OutOrStdout(), commandtypes.DecodeReceipt(receipt)); perr != nil {
			return perr
		}
	}
	return err
}

// CreateBetCmd open a new round
func CreateBetCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a new bet",
		RunE:  createBet,
	}
	cmd.Flags().Int64P("variation", "p", 0, "maximum variation PPP (1-999)")
	cmd.MarkFlagRequired("variation")
	addBetIDFlag(cmd)
	return cmd
}

func createBet(cmd *cobra.Command, args []string) error {
	ppp, _ := cmd.Flags().GetInt64("variation")
	id, _ := cmd.Flags().GetInt64("id")
	if err := types.CheckVariation(ppp); err != nil {
		return err
	}
	if err := types.CheckBetID(id); err != nil {
		return err
	}
	return withSession(cmd, true, func(s *session, c betClient) error {
		receipt, err := c.CreateBet(cmdContext(cmd), ppp, id)
		return printReceipt(cmd, receipt, err)
	})
}

// JoinBetCmd place a bet on an option
func JoinBetCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "join",
		Short: "Join an existing bet",
		RunE:  joinBet,
	}
	addBetIDFlag(cmd)
	cmd.Flags().Int64P("option", "o", 0, "option to bet on, at most the bet's PPP")
	cmd.MarkFlagRequired("option")
	cmd.Flags().StringP("amount", "a", "", "amount in "+types.CoinSymbol)
	cmd.MarkFlagRequired("amount")
	return cmd
}

func joinBet(cmd *cobra.Command, args []string) error {
	id, _ := cmd.Flags().GetInt64("id")
	option, _ := cmd.Flags().GetInt64("option")
	amountStr, _ := cmd.Flags().GetString("amount")
	if err := types.CheckBetID(id); err != nil {
		return err
	}
	if err := types.CheckOption(option); err != nil {
		return err
	}
	amount, err := types.ParseAmount(amountStr)
	if err != nil {
		return err
	}
	return withSession(cmd, true, func(s *session, c betClient) error {
		receipt, err := c.PlaceBet(cmdContext(cmd), id, option, amount)
		return printReceipt(cmd, receipt, err)
	})
}

// SettleBetCmd settle a finished round
func SettleBetCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "settle",
		Short: "Settle a bet",
		RunE:  settleBet,
	}
	addBetIDFlag(cmd)
	return cmd
}

func settleBet(cmd *cobra.Command, args []string) error {
	id, _ := cmd.Flags().GetInt64("id")
	if err := types.CheckBetID(id); err != nil {
		return err
	}
	return withSession(cmd, true, func(s *session, c betClient) error {
		receipt, err := c.SettleBet(cmdContext(cmd), id)
		return printReceipt(cmd, receipt, err)
	})
}

// ClaimRewardCmd claim winnings
func ClaimRewardCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "claim",
		Short: "Claim the reward of a settled bet",
		RunE:  claimReward,
	}
	addBetIDFlag(cmd)
	return cmd
}

func claimReward(cmd *cobra.Command, args []string) error {
	id, _ := cmd.Flags().GetInt64("id")
	if err := types.CheckBetID(id); err != nil {
		return err
	}
	return withSession(cmd, true, func(s *session, c betClient) error {
		receipt, err := c.ClaimReward(cmdContext(cmd), id)
		return printReceipt(cmd, receipt, err)
	})
}

// BetInfoCmd show a round
func BetInfoCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "info",
		Short: "Get bet information",
		RunE:  betInfo,
	}
	addBetIDFlag(cmd)
	return cmd
}

func betInfo(cmd *cobra.Command, args []string) error {
	id, _ := cmd.Flags().GetInt64("id")
	if err := types.CheckBetID(id); err != nil {
		return err
	}
	return withSession(cmd, false, func(s *session, c betClient) error {
		info, err := c.BetInfo(cmdContext(cmd), id)
		if err != nil {
			return err
		}
		return commandtypes.PrintJSON(cmd.OutOrStdout(), info.Result())
	})
}

// ListBetsCmd show the open rounds
func ListBetsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List active bets",
		RunE:  listBets,
	}
	return cmd
}

func listBets(cmd *cobra.Command, args []string) error {
	return withSession(cmd, false, func(s *session, c betClient) error {
		ids, err := c.ActiveBetIDs(cmdContext(cmd))
		if err != nil {
			return err
		}
		return commandtypes.PrintJSON(cmd.OutOrStdout(), &commandtypes.ActiveBetsResult{BetIDs: ids})
	})
}

// HistoryCmd list the local transaction journal
func HistoryCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history",
		Short: "List transactions sent from this client",
		RunE:  history,
	}
	cmd.Flags().IntP("limit", "l", 20, "number of records, 0 for all")
	return cmd
}

func history(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	limit, _ := cmd.Flags().GetInt("limit")
	if limit < 0 {
		return fmt.Errorf("limit must not be negative")
	}
	j, err := wallet.NewJournal(cfg.Journal)
	if err != nil {
		return err
	}
	defer j.Close()
	recs, err := j.List(limit)
	if err != nil {
		return err
	}
	res := &commandtypes.HistoryResult{
		Total: j.Count(),
		Txs:   make([]*commandtypes.TxRecordResult, 0, len(recs)),
	}
	for _, rec := range recs {
		res.Txs = append(res.Txs, commandtypes.DecodeTxRecord(rec))
	}
	return commandtypes.PrintJSON(cmd.OutOrStdout(), res)
}
