// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package commands

import (
	"bytes"
	"context"
	"fmt"
	"math/big"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/33cn/pricepool/rpc/client"
	"github.com/33cn/pricepool/rpc/client/mocks"
	"github.com/33cn/pricepool/system/dapp/wager"
	"github.com/33cn/pricepool/types"
	"github.com/33cn/pricepool/wallet"
	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/common"
	ethtypes "github.com/ethereum/go-ethereum/core/types"
	"github.com/manifoldco/promptui"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

const testContract = "0x8a4f1c1e1ae4b0e5fd4ab54e0e4a4e1f6f2b0c11"

type scriptPrompter struct {
	inputs    []string
	passwords []string
	selects   []int
	// inputErr is returned once inputs run out, ErrEOF when nil
	inputErr error
}

func (p *scriptPrompter) Input(label string, validate func(string) error) (string, error) {
	if len(p.inputs) == 0 {
		if p.inputErr != nil {
			return "", p.inputErr
		}
		return "", promptui.ErrEOF
	}
	s := p.inputs[0]
	p.inputs = p.inputs[1:]
	if validate != nil {
		if err := validate(s); err != nil {
			return "", err
		}
	}
	return s, nil
}

func (p *scriptPrompter) Password(label string) (string, error) {
	if len(p.passwords) == 0 {
		return "", promptui.ErrEOF
	}
	s := p.passwords[0]
	p.passwords = p.passwords[1:]
	return s, nil
}

func (p *scriptPrompter) Select(label string, items []string) (int, error) {
	if len(p.selects) == 0 {
		return 0, promptui.ErrEOF
	}
	i := p.selects[0]
	p.selects = p.selects[1:]
	return i, nil
}

type fakeClient struct {
	calls []string
	info  *types.BetInfo
	ids   []uint64
	err   error
}

func (f *fakeClient) CreateBet(ctx context.Context, ppp, betID int64) (*ethtypes.Receipt, error) {
	f.calls = append(f.calls, fmt.Sprintf("create %d %d", ppp, betID))
	return &ethtypes.Receipt{Status: 1}, f.err
}

func (f *fakeClient) PlaceBet(ctx context.Context, betID, option int64, amount *big.Int) (*ethtypes.Receipt, error) {
	f.calls = append(f.calls, fmt.Sprintf("join %d %d %s", betID, option, amount))
	return &ethtypes.Receipt{Status: 1}, f.err
}

func (f *fakeClient) SettleBet(ctx context.Context, betID int64) (*ethtypes.Receipt, error) {
	f.calls = append(f.calls, fmt.Sprintf("settle %d", betID))
	return &ethtypes.Receipt{Status: 1}, f.err
}

func (f *fakeClient) ClaimReward(ctx context.Context, betID int64) (*ethtypes.Receipt, error) {
	f.calls = append(f.calls, fmt.Sprintf("claim %d", betID))
	return &ethtypes.Receipt{Status: 1}, f.err
}

func (f *fakeClient) BetInfo(ctx context.Context, betID int64) (*types.BetInfo, error) {
	f.calls = append(f.calls, fmt.Sprintf("info %d", betID))
	return f.info, f.err
}

func (f *fakeClient) ActiveBetIDs(ctx context.Context) ([]uint64, error) {
	f.calls = append(f.calls, "list")
	return f.ids, f.err
}

func (f *fakeClient) Balance(ctx context.Context) (*big.Int, error) {
	return big.NewInt(0), f.err
}

func newTestMenu(p Prompter, c betClient) (*menu, *bytes.Buffer) {
	out := &bytes.Buffer{}
	return &menu{ctx: context.Background(), client: c, prompter: p, out: out}, out
}

// rootFlags mirrors the persistent flags of the cli root
func rootFlags(cmd *cobra.Command) *cobra.Command {
	cmd.Flags().String("conf", "", "")
	cmd.Flags().String("rpc_laddr", "", "")
	cmd.Flags().String("contract", "", "")
	cmd.Flags().String("abi", "", "")
	cmd.Flags().String("keystore", "", "")
	cmd.Flags().String("passfile", "", "")
	return cmd
}

func writeFile(t *testing.T, path, content string) string {
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))
	return path
}

func testConf(t *testing.T, dir string) string {
	return writeFile(t, filepath.Join(dir, "pricepool.toml"), fmt.Sprintf(`
[wallet]
keystoreFile=%q
lightKDF=true

[contract]
address=%q
abiFile=%q

[journal]
driver="leveldb"
dbPath=%q
`, filepath.Join(dir, "wallet.json"), testContract, filepath.Join(dir, "abi.json"), filepath.Join(dir, "datadir")))
}

func TestErrorHint(t *testing.T) {
	assert.Equal(t, "Bet ID out of range. Try again.", ErrorHint(types.ErrBetIDRange))
	assert.Equal(t, "Transaction failed. Try again.", ErrorHint(errors.Wrap(types.ErrTxFailed, "tx 0x01")))
	assert.Equal(t, "Wrong password. Try again.", ErrorHint(types.ErrWrongPassword))
	assert.Contains(t, ErrorHint(errors.Wrap(types.ErrABINotFound, "contract_abi.json")), "Contract ABI not found")
	assert.Contains(t, ErrorHint(errors.Wrap(types.ErrOptionAboveVariation, "option should be <= 5 for this bet")), "<= 5")
	assert.Equal(t, "Aborted.", ErrorHint(promptui.ErrInterrupt))
	assert.Equal(t, "boom", ErrorHint(errors.New("boom")))
}

func TestMenuCreateAndExit(t *testing.T) {
	c := &fakeClient{}
	m, out := newTestMenu(&scriptPrompter{inputs: []string{"5", "42"}, selects: []int{0, 6}}, c)
	require.NoError(t, m.loop())
	assert.Equal(t, []string{"create 5 42"}, c.calls)
	assert.Contains(t, out.String(), "Bet was successfully created!")
	assert.Contains(t, out.String(), "See you anon!")
}

func TestMenuJoin(t *testing.T) {
	c := &fakeClient{}
	m, out := newTestMenu(&scriptPrompter{inputs: []string{"7", "3", "0.05"}}, c)
	assert.False(t, m.dispatch("2"))
	assert.Equal(t, []string{"join 7 3 50000000000000000"}, c.calls)
	assert.Contains(t, out.String(), "Your bet was successfully submitted!")
}

func TestMenuRangeError(t *testing.T) {
	c := &fakeClient{}
	m, out := newTestMenu(&scriptPrompter{inputs: []string{"1000"}}, c)
	assert.False(t, m.dispatch("3"))
	assert.Empty(t, c.calls)
	assert.Contains(t, out.String(), "Bet ID out of range. Try again.")
}

func TestMenuTxFailed(t *testing.T) {
	c := &fakeClient{err: errors.Wrap(types.ErrTxFailed, "tx 0x01")}
	m, out := newTestMenu(&scriptPrompter{inputs: []string{"9"}}, c)
	m.dispatch("4")
	assert.Equal(t, []string{"claim 9"}, c.calls)
	assert.Contains(t, out.String(), "Transaction failed. Try again.")
	assert.NotContains(t, out.String(), "Reward was claimed successfully!")
}

func TestMenuOtherError(t *testing.T) {
	c := &fakeClient{err: errors.New("execution reverted: bet not finished")}
	m, out := newTestMenu(&scriptPrompter{inputs: []string{"9"}}, c)
	m.dispatch("3")
	assert.Contains(t, out.String(), "Error settling the bet: execution reverted: bet not finished")
}

func TestMenuInfoAndList(t *testing.T) {
	c := &fakeClient{
		info: &types.BetInfo{ID: 3, Variation: 8, StartTime: 0, EndTime: 60, Settled: true,
			TotalPot: big.NewInt(3e17), WinnersTotal: big.NewInt(1e17), WinningOption: big.NewInt(4),
			ExecutorReward: big.NewInt(0)},
	}
	m, out := newTestMenu(&scriptPrompter{inputs: []string{"3"}}, c)
	m.dispatch("5")
	assert.Contains(t, out.String(), "Variation (PPP): 8")
	assert.Contains(t, out.String(), "Status: Settled")
	assert.Contains(t, out.String(), "Total on Pot: 0.3 cBTC")
	assert.Contains(t, out.String(), "Ending time: 1970-01-01T00:01:00Z")

	out.Reset()
	m.dispatch("6")
	assert.Contains(t, out.String(), "No active Bets at this time.")

	c.ids = []uint64{1, 7}
	out.Reset()
	m.dispatch("6")
	assert.Contains(t, out.String(), "Bet ID: 7")
}

func TestMenuInvalidOption(t *testing.T) {
	m, out := newTestMenu(&scriptPrompter{}, &fakeClient{})
	assert.False(t, m.dispatch("8"))
	assert.Contains(t, out.String(), "Invalid option, please choose a valid option.")
	assert.True(t, m.dispatch("7"))
}

func TestMenuActionInterrupt(t *testing.T) {
	c := &fakeClient{}
	p := &scriptPrompter{inputs: []string{"5"}, selects: []int{0, 4, 6}, inputErr: promptui.ErrInterrupt}
	m, out := newTestMenu(p, c)
	require.NoError(t, m.loop())
	assert.Empty(t, c.calls)
	assert.NotContains(t, out.String(), "Error creating the bet")
	assert.NotContains(t, out.String(), "Aborted.")
	// 回到主菜单后继续
	assert.Equal(t, 3, strings.Count(out.String(), "--- Home Menu ---"))
	assert.Contains(t, out.String(), "See you anon!")
}

func TestMenuEOF(t *testing.T) {
	m, _ := newTestMenu(&scriptPrompter{}, &fakeClient{})
	assert.NoError(t, m.loop())
}

func TestAskPassword(t *testing.T) {
	pw, err := askPassword(&scriptPrompter{passwords: []string{"a", "a"}}, true)
	require.NoError(t, err)
	assert.Equal(t, "a", pw)
	_, err = askPassword(&scriptPrompter{passwords: []string{"a", "b"}}, true)
	assert.Error(t, err)
}

func TestLoadConfigOverrides(t *testing.T) {
	dir := t.TempDir()
	cmd := rootFlags(&cobra.Command{Use: "test"})
	require.NoError(t, cmd.ParseFlags([]string{
		"--conf", testConf(t, dir),
		"--rpc_laddr", "http://127.0.0.1:8545",
		"--keystore", filepath.Join(dir, "other.json"),
	}))
	cfg, err := loadConfig(cmd)
	require.NoError(t, err)
	assert.Equal(t, "http://127.0.0.1:8545", cfg.RPC.Addr)
	assert.Equal(t, filepath.Join(dir, "other.json"), cfg.Wallet.KeystoreFile)
	assert.Equal(t, testContract, cfg.Contract.Address)
	assert.True(t, cfg.Wallet.LightKDF)
	assert.Equal(t, uint64(2000000), cfg.Tx.GasLimit)
}

func TestWalletCreateAndAddress(t *testing.T) {
	dir := t.TempDir()
	conf := testConf(t, dir)
	pass := writeFile(t, filepath.Join(dir, "pass"), "secret\n")

	create := rootFlags(CreateWalletCmd())
	out := &bytes.Buffer{}
	create.SetOut(out)
	require.NoError(t, create.ParseFlags([]string{"--conf", conf, "--passfile", pass}))
	require.NoError(t, create.RunE(create, nil))
	assert.Contains(t, out.String(), "Successfully created!")

	acc, err := wallet.Load(filepath.Join(dir, "wallet.json"), "secret")
	require.NoError(t, err)

	addr := rootFlags(AddressCmd())
	out.Reset()
	addr.SetOut(out)
	require.NoError(t, addr.ParseFlags([]string{"--conf", conf}))
	require.NoError(t, addr.RunE(addr, nil))
	assert.Contains(t, out.String(), acc.Hex())

	err = create.RunE(create, nil)
	assert.Equal(t, types.ErrWalletExists, errors.Cause(err))
}

func TestBetInfoCmd(t *testing.T) {
	dir := t.TempDir()
	conf := testConf(t, dir)
	writeFile(t, filepath.Join(dir, "abi.json"), wager.DefaultABI)

	b := &mocks.Backend{}
	b.On("ChainID", mock.Anything).Return(big.NewInt(5115), nil)
	out, err := wager.MustDefaultABI().Methods[types.MethodGetBetInfo].Outputs.Pack(
		big.NewInt(3), big.NewInt(8), big.NewInt(0), big.NewInt(60), big.NewInt(0), false,
		big.NewInt(1e18), big.NewInt(0), big.NewInt(0), big.NewInt(0))
	require.NoError(t, err)
	b.On("CallContract", mock.Anything, mock.MatchedBy(func(msg ethereum.CallMsg) bool { return len(msg.Data) > 4 }), mock.Anything).
		Return(out, nil)
	b.On("Close").Return()
	old := dialNode
	dialNode = func(ctx context.Context, cfg *types.RPC) (client.Backend, error) { return b, nil }
	defer func() { dialNode = old }()

	cmd := rootFlags(BetInfoCmd())
	buf := &bytes.Buffer{}
	cmd.SetOut(buf)
	require.NoError(t, cmd.ParseFlags([]string{"--conf", conf, "--id", "3"}))
	require.NoError(t, cmd.RunE(cmd, nil))
	assert.Contains(t, buf.String(), `"status": "Active"`)
	assert.Contains(t, buf.String(), `"totalPot": "1"`)
	b.AssertCalled(t, "Close")

	require.NoError(t, cmd.ParseFlags([]string{"--id", "1000"}))
	assert.Equal(t, types.ErrBetIDRange, cmd.RunE(cmd, nil))
}

// joinBackend answers the calls of one bet join: a bet with PPP 8, then send and receipt
func joinBackend(t *testing.T, nonce, status uint64, sent **ethtypes.Transaction) *mocks.Backend {
	b := &mocks.Backend{}
	b.On("ChainID", mock.Anything).Return(big.NewInt(5115), nil)
	info, err := wager.MustDefaultABI().Methods[types.MethodGetBetInfo].Outputs.Pack(
		big.NewInt(7), big.NewInt(8), big.NewInt(0), big.NewInt(60), big.NewInt(0), false,
		big.NewInt(0), big.NewInt(0), big.NewInt(0), big.NewInt(0))
	require.NoError(t, err)
	b.On("CallContract", mock.Anything, mock.Anything, mock.Anything).Return(info, nil)
	b.On("PendingNonceAt", mock.Anything, mock.Anything).Return(nonce, nil)
	b.On("SendTransaction", mock.Anything, mock.Anything).Return(nil).Run(func(args mock.Arguments) {
		*sent = args.Get(1).(*ethtypes.Transaction)
	})
	b.On("TransactionReceipt", mock.Anything, mock.Anything).Return(
		func(ctx context.Context, hash common.Hash) *ethtypes.Receipt {
			return &ethtypes.Receipt{TxHash: hash, Status: status, BlockNumber: big.NewInt(12), GasUsed: 52000}
		}, nil)
	b.On("Close").Return()
	return b
}

func TestJoinBetCmd(t *testing.T) {
	dir := t.TempDir()
	conf := testConf(t, dir)
	writeFile(t, filepath.Join(dir, "abi.json"), wager.DefaultABI)
	pass := writeFile(t, filepath.Join(dir, "pass"), "secret\n")
	acc, err := wallet.Create(filepath.Join(dir, "wallet.json"), "secret", true)
	require.NoError(t, err)

	var sent *ethtypes.Transaction
	backend := joinBackend(t, 0, ethtypes.ReceiptStatusSuccessful, &sent)
	old := dialNode
	dialNode = func(ctx context.Context, cfg *types.RPC) (client.Backend, error) { return backend, nil }
	defer func() { dialNode = old }()

	cmd := rootFlags(JoinBetCmd())
	buf := &bytes.Buffer{}
	cmd.SetOut(buf)
	require.NoError(t, cmd.ParseFlags([]string{"--conf", conf, "--passfile", pass,
		"--id", "7", "--option", "3", "--amount", "0.05"}))
	require.NoError(t, cmd.RunE(cmd, nil))

	require.NotNil(t, sent)
	expect := new(big.Int).Add(big.NewInt(5e16), types.BetTag(3, 7))
	assert.Equal(t, expect, sent.Value())
	assert.Equal(t, "50000000000003007", sent.Value().String())
	from, err := ethtypes.Sender(ethtypes.NewEIP155Signer(big.NewInt(5115)), sent)
	require.NoError(t, err)
	assert.Equal(t, acc.Address, from)
	assert.Contains(t, buf.String(), "Transaction sent: "+sent.Hash().Hex())
	assert.Contains(t, buf.String(), `"status": "success"`)
	backend.AssertCalled(t, "Close")

	// 失败的交易仍输出回执
	var failed *ethtypes.Transaction
	backend = joinBackend(t, 1, ethtypes.ReceiptStatusFailed, &failed)
	buf.Reset()
	err = cmd.RunE(cmd, nil)
	assert.Equal(t, types.ErrTxFailed, errors.Cause(err))
	require.NotNil(t, failed)
	assert.Contains(t, buf.String(), `"status": "failed"`)
	assert.Contains(t, buf.String(), `"hash": "`+failed.Hash().Hex()+`"`)

	cfg, err := types.InitCfg(conf)
	require.NoError(t, err)
	j, err := wallet.NewJournal(cfg.Journal)
	require.NoError(t, err)
	defer j.Close()
	assert.Equal(t, int64(2), j.Count())
	rec, err := j.Get(sent.Hash().Hex())
	require.NoError(t, err)
	assert.Equal(t, types.TxStatusSuccess, rec.Status)
	assert.Equal(t, types.ActionJoin, rec.Action)
	assert.Equal(t, int64(7), rec.BetID)
	assert.Equal(t, int64(3), rec.Option)
	assert.Equal(t, uint64(12), rec.BlockNumber)
	rec, err = j.Get(failed.Hash().Hex())
	require.NoError(t, err)
	assert.Equal(t, types.TxStatusFailed, rec.Status)
}

func TestHistoryCmd(t *testing.T) {
	dir := t.TempDir()
	conf := testConf(t, dir)
	cfg, err := types.InitCfg(conf)
	require.NoError(t, err)
	j, err := wallet.NewJournal(cfg.Journal)
	require.NoError(t, err)
	require.NoError(t, j.Record(&types.TxRecord{Hash: "0x01", Action: types.ActionJoin, BetID: 7, Option: 3,
		Value: "50000000000003007", Status: types.TxStatusSuccess, Time: 1}))
	require.NoError(t, j.Close())

	cmd := rootFlags(HistoryCmd())
	buf := &bytes.Buffer{}
	cmd.SetOut(buf)
	require.NoError(t, cmd.ParseFlags([]string{"--conf", conf}))
	require.NoError(t, cmd.RunE(cmd, nil))
	assert.Contains(t, buf.String(), `"total": 1`)
	assert.Contains(t, buf.String(), `"hash": "0x01"`)
	assert.Contains(t, buf.String(), `"amount": "0.05"`)
	assert.Contains(t, buf.String(), `"value": "50000000000003007"`)
}

func TestConsoleObserver(t *testing.T) {
	buf := &bytes.Buffer{}
	c := newConsoleObserver(buf, time.Second)
	assert.False(t, c.bar)
	tx := ethtypes.NewTx(&ethtypes.LegacyTx{Nonce: 1, Value: big.NewInt(5042)})
	ev := &types.TxEvent{Action: types.ActionCreate, BetID: 42, Option: -1, Tx: tx}
	c.TxSent(ev)
	c.TxMined(ev, &ethtypes.Receipt{TxHash: tx.Hash(), Status: 1})
	assert.Contains(t, buf.String(), "Transaction sent: "+tx.Hash().Hex())
	assert.Contains(t, buf.String(), "Awaiting the transaction confirmation...")
}

func TestConsoleObserverDropped(t *testing.T) {
	buf := &bytes.Buffer{}
	c := &consoleObserver{out: buf, bar: true, wait: 100 * time.Millisecond}
	tx := ethtypes.NewTx(&ethtypes.LegacyTx{Nonce: 2, Value: big.NewInt(1001)})
	ev := &types.TxEvent{Action: types.ActionSettle, BetID: 1, Option: -1, Tx: tx}
	c.TxSent(ev)
	finished := c.finished
	require.NotNil(t, finished)

	// 超时后进度条自行结束
	select {
	case <-finished:
	case <-time.After(2 * time.Second):
		t.Fatal("bar still running after the wait elapsed")
	}
	c.TxDropped(ev, types.ErrReceiptTimeout)
	assert.Nil(t, c.done)

	// 下一笔交易的进度条由 TxDropped 停止
	c.wait = time.Minute
	c.TxSent(ev)
	finished = c.finished
	c.TxDropped(ev, errors.New("connection refused"))
	select {
	case <-finished:
	default:
		t.Fatal("bar not stopped by TxDropped")
	}
}

func TestWaitBarStops(t *testing.T) {
	done := make(chan struct{})
	finished := make(chan struct{})
	go waitBar(done, finished, time.Second)
	close(done)
	select {
	case <-finished:
	case <-time.After(2 * time.Second):
		t.Fatal("bar did not stop")
	}
}
