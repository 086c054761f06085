// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package commands

import (
	"context"
	"fmt"
	"io"
	"strconv"

	commandtypes "github.com/33cn/pricepool/system/dapp/commands/types"
	"github.com/33cn/pricepool/types"
	"github.com/33cn/pricepool/wallet"
	"github.com/manifoldco/promptui"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

var menuItems = []string{
	"Create a new Bet",
	"Join an existing Bet",
	"Settle a Bet",
	"Claim Reward",
	"Get some Bet information",
	"List of active Bets",
	"Exit",
}

// MenuCmd interactive home menu
func MenuCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "menu",
		Short: "Interactive home menu",
		RunE:  runMenu,
	}
	return cmd
}

func runMenu(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	p, err := newPrompter()
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "=== Welcome to %s Price Prediction Pool ===\n", types.CoinSymbol)

	// 没有钱包时创建后退出，等待用户充值
	if !wallet.Exists(cfg.Wallet.KeystoreFile) {
		fmt.Fprintln(out, "Wallet not found, let's create a new one!")
		return createFromMenu(cmd, p, cfg, out)
	}
	acc, err := unlockInteractive(cmd, p, cfg, out)
	if err != nil {
		return err
	}
	ctx := cmdContext(cmd)
	s, err := openSession(ctx, cfg, acc, out)
	if err != nil {
		return err
	}
	defer s.Close()

	fmt.Fprintf(out, "\nYour wallet address: %s\n", acc.Hex())
	if bal, err := s.wager.Balance(ctx); err != nil {
		clog.Error("runMenu", "balance", err)
	} else {
		fmt.Fprintf(out, "%s available: %s %s\n", types.CoinSymbol, types.FormatAmount(bal), types.CoinSymbol)
	}
	m := &menu{ctx: ctx, client: s.wager, prompter: p, out: out}
	return m.loop()
}

func createFromMenu(cmd *cobra.Command, p Prompter, cfg *types.Config, out io.Writer) error {
	fmt.Fprintln(out, "Creating a new wallet...")
	pw, err := passwordFrom(cmd, p, true)
	if err != nil {
		return err
	}
	acc, err := wallet.Create(cfg.Wallet.KeystoreFile, pw, cfg.Wallet.LightKDF)
	if err != nil {
		return err
	}
	printCreated(out, acc.Hex())
	return nil
}

// unlockInteractive asks again after a wrong password
func unlockInteractive(cmd *cobra.Command, p Prompter, cfg *types.Config, out io.Writer) (*wallet.Account, error) {
	passfile, _ := cmd.Flags().GetString("passfile")
	for {
		pw, err := passwordFrom(cmd, p, false)
		if err != nil {
			return nil, err
		}
		acc, err := wallet.Load(cfg.Wallet.KeystoreFile, pw)
		if err == nil {
			return acc, nil
		}
		if errors.Cause(err) != types.ErrWrongPassword || passfile != "" {
			return nil, err
		}
		fmt.Fprintln(out, ErrorHint(err))
	}
}

func passwordFrom(cmd *cobra.Command, p Prompter, confirm bool) (string, error) {
	if passfile, _ := cmd.Flags().GetString("passfile"); passfile != "" {
		return readPassword(cmd, confirm)
	}
	return askPassword(p, confirm)
}

type menu struct {
	ctx      context.Context
	client   betClient
	prompter Prompter
	out      io.Writer
}

func (m *menu) loop() error {
	for {
		fmt.Fprintln(m.out, "\n--- Home Menu ---")
		idx, err := m.prompter.Select("Choose an option", menuItems)
		if err != nil {
			if err == promptui.ErrInterrupt || err == promptui.ErrEOF {
				return nil
			}
			return err
		}
		if m.dispatch(strconv.Itoa(idx + 1)) {
			return nil
		}
	}
}

// dispatch runs one menu entry, it returns true on exit
func (m *menu) dispatch(choice string) bool {
	switch choice {
	case "1":
		m.report("creating the bet", m.createBet())
	case "2":
		m.report("participating in the bet", m.joinBet())
	case "3":
		m.report("settling the bet", m.settleBet())
	case "4":
		m.report("claiming your rewards", m.claimReward())
	case "5":
		m.report("getting the bet info", m.betInfo())
	case "6":
		m.report("listing active bets", m.listBets())
	case "7":
		fmt.Fprintln(m.out, "See you anon!")
		return true
	default:
		m.report("", errors.Wrap(types.ErrInvalidMenuOption, choice))
	}
	return false
}

func (m *menu) report(what string, err error) {
	if err == nil {
		return
	}
	cause := errors.Cause(err)
	// Ctrl-C 放弃当前操作,回到主菜单
	if cause == promptui.ErrInterrupt {
		return
	}
	if cause == types.ErrInvalidMenuOption {
		fmt.Fprintln(m.out, "Invalid option, please choose a valid option.")
		return
	}
	if _, ok := hints[cause]; ok || what == "" {
		fmt.Fprintln(m.out, ErrorHint(err))
		return
	}
	fmt.Fprintf(m.out, "Error %s: %s\n", what, ErrorHint(err))
}

func (m *menu) askInt(label string, validate func(string) error) (int64, error) {
	s, err := m.prompter.Input(label, validate)
	if err != nil {
		return 0, err
	}
	return commandtypes.ParseInt64(s)
}

func (m *menu) createBet() error {
	ppp, err := m.askInt("Max variation PPP (1-999)", commandtypes.ValidateVariation)
	if err != nil {
		return err
	}
	id, err := m.askInt("Bet ID NNN (0-999)", commandtypes.ValidateBetID)
	if err != nil {
		return err
	}
	if _, err := m.client.CreateBet(m.ctx, ppp, id); err != nil {
		return err
	}
	fmt.Fprintln(m.out, "Bet was successfully created!")
	return nil
}

func (m *menu) joinBet() error {
	id, err := m.askInt("Bet ID NNN (0-999)", commandtypes.ValidateBetID)
	if err != nil {
		return err
	}
	option, err := m.askInt("Your option (0-999)", commandtypes.ValidateOption)
	if err != nil {
		return err
	}
	s, err := m.prompter.Input("Amount in "+types.CoinSymbol, commandtypes.ValidateAmount)
	if err != nil {
		return err
	}
	amount, err := types.ParseAmount(s)
	if err != nil {
		return err
	}
	if _, err := m.client.PlaceBet(m.ctx, id, option, amount); err != nil {
		return err
	}
	fmt.Fprintln(m.out, "Your bet was successfully submitted!")
	return nil
}

func (m *menu) settleBet() error {
	id, err := m.askInt("Bet ID NNN (0-999)", commandtypes.ValidateBetID)
	if err != nil {
		return err
	}
	if _, err := m.client.SettleBet(m.ctx, id); err != nil {
		return err
	}
	fmt.Fprintln(m.out, "Bet successfully settled!")
	return nil
}

func (m *menu) claimReward() error {
	id, err := m.askInt("Bet ID NNN (0-999)", commandtypes.ValidateBetID)
	if err != nil {
		return err
	}
	if _, err := m.client.ClaimReward(m.ctx, id); err != nil {
		return err
	}
	fmt.Fprintln(m.out, "Reward was claimed successfully!")
	return nil
}

func (m *menu) betInfo() error {
	id, err := m.askInt("Bet ID NNN (0-999)", commandtypes.ValidateBetID)
	if err != nil {
		return err
	}
	info, err := m.client.BetInfo(m.ctx, id)
	if err != nil {
		return err
	}
	printBetInfo(m.out, info)
	return nil
}

func (m *menu) listBets() error {
	ids, err := m.client.ActiveBetIDs(m.ctx)
	if err != nil {
		return err
	}
	printActiveBets(m.out, ids)
	return nil
}
