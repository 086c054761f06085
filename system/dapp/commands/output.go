// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package commands

import (
	"fmt"
	"io"
	"time"

	"github.com/33cn/pricepool/types"
)

func printCreated(out io.Writer, addr string) {
	fmt.Fprintf(out, "Successfully created!\nAddress: %s\n", addr)
	fmt.Fprintf(out, "Please send some %s to this address to use the dApp.\n", types.CoinSymbol)
}

func printBetInfo(out io.Writer, info *types.BetInfo) {
	fmt.Fprintln(out, "\n--- Bet Info ---")
	fmt.Fprintf(out, "ID: %d\n", info.ID)
	fmt.Fprintf(out, "Variation (PPP): %d\n", info.Variation)
	fmt.Fprintf(out, "Starting time: %s\n", info.Start().Format(time.RFC3339))
	fmt.Fprintf(out, "Ending time: %s\n", info.End().Format(time.RFC3339))
	fmt.Fprintf(out, "Initial prize: %s\n", info.Result().InitialPrize)
	fmt.Fprintf(out, "Status: %s\n", info.Status())
	fmt.Fprintf(out, "Total on Pot: %s %s\n", types.FormatAmount(info.TotalPot), types.CoinSymbol)
	fmt.Fprintf(out, "Total betted by Winners (if any): %s %s\n", types.FormatAmount(info.WinnersTotal), types.CoinSymbol)
	fmt.Fprintf(out, "Winning Option (if any): %s\n", info.Result().WinningOption)
	fmt.Fprintf(out, "Executor Reward: %s %s\n", types.FormatAmount(info.ExecutorReward), types.CoinSymbol)
}

func printActiveBets(out io.Writer, ids []uint64) {
	if len(ids) == 0 {
		fmt.Fprintln(out, "No active Bets at this time.")
		return
	}
	fmt.Fprintln(out, "\n--- Active Bets ---")
	for _, id := range ids {
		fmt.Fprintf(out, "Bet ID: %d\n", id)
	}
}
