// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package wager

import (
	"os"
	"strings"

	"github.com/33cn/pricepool/types"
	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/pkg/errors"
)

// DefaultABI interface of the prediction pool contract
const DefaultABI = `[
  {"type":"function","name":"createBet","stateMutability":"payable","inputs":[],"outputs":[]},
  {"type":"function","name":"placeBet","stateMutability":"payable",
   "inputs":[{"name":"option","type":"uint256"},{"name":"betId","type":"uint256"}],"outputs":[]},
  {"type":"function","name":"settleBet","stateMutability":"nonpayable",
   "inputs":[{"name":"betId","type":"uint256"}],"outputs":[]},
  {"type":"function","name":"claimReward","stateMutability":"nonpayable",
   "inputs":[{"name":"betId","type":"uint256"}],"outputs":[]},
  {"type":"function","name":"getBetInfo","stateMutability":"view",
   "inputs":[{"name":"betId","type":"uint256"}],
   "outputs":[
     {"name":"id","type":"uint256"},
     {"name":"variation","type":"uint256"},
     {"name":"startTime","type":"uint256"},
     {"name":"endTime","type":"uint256"},
     {"name":"initialPrize","type":"uint256"},
     {"name":"settled","type":"bool"},
     {"name":"totalPot","type":"uint256"},
     {"name":"winnersTotal","type":"uint256"},
     {"name":"winningOption","type":"uint256"},
     {"name":"executorReward","type":"uint256"}]},
  {"type":"function","name":"getActiveBetIds","stateMutability":"view",
   "inputs":[],"outputs":[{"name":"","type":"uint256[]"}]}
]`

var requiredMethods = []string{
	types.MethodCreateBet,
	types.MethodPlaceBet,
	types.MethodSettleBet,
	types.MethodClaimReward,
	types.MethodGetBetInfo,
	types.MethodGetActiveIDs,
}

// LoadABI reads and checks the contract interface file.
func LoadABI(path string) (*abi.ABI, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrap(types.ErrABINotFound, path)
		}
		return nil, errors.Wrapf(err, "read abi %s", path)
	}
	return ParseABI(string(data))
}

// ParseABI parses a JSON interface and checks every contract method exists.
func ParseABI(data string) (*abi.ABI, error) {
	parsed, err := abi.JSON(strings.NewReader(data))
	if err != nil {
		return nil, errors.Wrap(err, "parse abi")
	}
	if err := CheckABI(&parsed); err != nil {
		return nil, err
	}
	return &parsed, nil
}

// CheckABI 检查合约方法是否齐全
func CheckABI(a *abi.ABI) error {
	for _, name := range requiredMethods {
		if _, ok := a.Methods[name]; !ok {
			return errors.Wrap(types.ErrMethodMissing, name)
		}
	}
	return nil
}

// MustDefaultABI parsed DefaultABI
func MustDefaultABI() *abi.ABI {
	a, err := ParseABI(DefaultABI)
	if err != nil {
		panic(err)
	}
	return a
}
