// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package commands

import (
	"os"

	"github.com/33cn/pricepool/types"
	"github.com/33cn/pricepool/util"
	"github.com/manifoldco/promptui"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"golang.org/x/crypto/ssh/terminal"
)

// Prompter asks the user for input
type Prompter interface {
	Input(label string, validate func(string) error) (string, error)
	Password(label string) (string, error)
	Select(label string, items []string) (int, error)
}

type termPrompter struct{}

// newPrompter 可在测试中替换
var newPrompter = func() (Prompter, error) {
	if !terminal.IsTerminal(int(os.Stdin.Fd())) {
		return nil, types.ErrNotTerminal
	}
	return &termPrompter{}, nil
}

func (p *termPrompter) Input(label string, validate func(string) error) (string, error) {
	prompt := promptui.Prompt{
		Label: label,
	}
	if validate != nil {
		prompt.Validate = promptui.ValidateFunc(validate)
	}
	return prompt.Run()
}

func (p *termPrompter) Password(label string) (string, error) {
	prompt := promptui.Prompt{
		Label: label,
		Mask:  '*',
	}
	return prompt.Run()
}

func (p *termPrompter) Select(label string, items []string) (int, error) {
	sel := promptui.Select{
		Label: label,
		Items: items,
		Size:  len(items),
	}
	idx, _, err := sel.Run()
	return idx, err
}

// readPassword reads --passfile, or asks on the terminal. confirm asks twice.
func readPassword(cmd *cobra.Command, confirm bool) (string, error) {
	passfile, _ := cmd.Flags().GetString("passfile")
	if passfile != "" {
		return util.ReadLine(passfile)
	}
	p, err := newPrompter()
	if err != nil {
		return "", err
	}
	return askPassword(p, confirm)
}

func askPassword(p Prompter, confirm bool) (string, error) {
	pw, err := p.Password("Password")
	if err != nil {
		return "", err
	}
	if !confirm {
		return pw, nil
	}
	again, err := p.Password("Repeat password")
	if err != nil {
		return "", err
	}
	if pw != again {
		return "", errors.New("passwords do not match")
	}
	return pw, nil
}
