// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package wallet

import (
	"encoding/json"
	"fmt"
	"time"

	dbm "github.com/33cn/pricepool/common/db"
	"github.com/33cn/pricepool/types"
	ethtypes "github.com/ethereum/go-ethereum/core/types"
	"github.com/golang/snappy"
	"github.com/pkg/errors"
)

var storelog = walletlog.New("submodule", "store")

// 通过交易hash查询交易记录
func calcTxKey(hash string) []byte {
	return []byte(fmt.Sprintf("Tx:%s", hash))
}

var txTimePrefix = []byte("TxTime:")

// 按时间排序的交易索引
func calcTxTimeKey(nano int64, hash string) []byte {
	return []byte(fmt.Sprintf("TxTime:%020d:%s", nano, hash))
}

// Journal keeps a local record of the transactions this client sent.
type Journal struct {
	db  dbm.DB
	now func() time.Time
}

// NewJournal opens the journal described by cfg
func NewJournal(cfg *types.Journal) (*Journal, error) {
	if cfg == nil || cfg.Disable {
		return nil, types.ErrJournalDisabled
	}
	db, err := dbm.NewDB("journal", cfg.Driver, cfg.DbPath)
	if err != nil {
		return nil, err
	}
	return NewJournalWithDB(db), nil
}

// NewJournalWithDB wraps an opened db
func NewJournalWithDB(db dbm.DB) *Journal {
	return &Journal{db: db, now: time.Now}
}

// Record stores a new record and its time index.
func (j *Journal) Record(rec *types.TxRecord) error {
	if rec.Time == 0 {
		rec.Time = j.now().UnixNano()
	}
	if err := j.put(rec); err != nil {
		return err
	}
	return j.db.Set(calcTxTimeKey(rec.Time, rec.Hash), []byte(rec.Hash))
}

// Update sets the final status of a record
func (j *Journal) Update(hash string, status string, blockNumber uint64, gasUsed uint64) error {
	rec, err := j.Get(hash)
	if err != nil {
		return err
	}
	rec.Status = status
	rec.BlockNumber = blockNumber
	rec.GasUsed = gasUsed
	return j.put(rec)
}

// Get one record by hash
func (j *Journal) Get(hash string) (*types.TxRecord, error) {
	value, err := j.db.Get(calcTxKey(hash))
	if err != nil {
		return nil, err
	}
	value, err = snappy.Decode(nil, value)
	if err != nil {
		return nil, errors.Wrapf(err, "decompress record %s", hash)
	}
	var rec types.TxRecord
	if err := json.Unmarshal(value, &rec); err != nil {
		return nil, errors.Wrapf(err, "decode record %s", hash)
	}
	return &rec, nil
}

// List returns up to limit records, newest first. limit <= 0 returns all.
func (j *Journal) List(limit int) ([]*types.TxRecord, error) {
	hashes := dbm.NewListHelper(j.db).List(txTimePrefix, int32(limit), dbm.ListDESC)
	recs := make([]*types.TxRecord, 0, len(hashes))
	for _, hash := range hashes {
		rec, err := j.Get(string(hash))
		if err != nil {
			storelog.Error("List", "hash", string(hash), "err", err)
			continue
		}
		recs = append(recs, rec)
	}
	return recs, nil
}

// Count number of recorded transactions
func (j *Journal) Count() int64 {
	return dbm.NewListHelper(j.db).PrefixCount(txTimePrefix)
}

// TxSent records a pending transaction
func (j *Journal) TxSent(ev *types.TxEvent) {
	rec := &types.TxRecord{
		Hash:   ev.Tx.Hash().Hex(),
		Action: ev.Action,
		BetID:  ev.BetID,
		Option: ev.Option,
		Value:  ev.Tx.Value().String(),
		Nonce:  ev.Tx.Nonce(),
		Status: types.TxStatusPending,
	}
	if err := j.Record(rec); err != nil {
		storelog.Error("TxSent", "hash", rec.Hash, "err", err)
	}
}

// TxMined records the receipt status
func (j *Journal) TxMined(ev *types.TxEvent, receipt *ethtypes.Receipt) {
	status := types.TxStatusFailed
	if receipt.Status == ethtypes.ReceiptStatusSuccessful {
		status = types.TxStatusSuccess
	}
	var block uint64
	if receipt.BlockNumber != nil {
		block = receipt.BlockNumber.Uint64()
	}
	hash := ev.Tx.Hash().Hex()
	if err := j.Update(hash, status, block, receipt.GasUsed); err != nil {
		storelog.Error("TxMined", "hash", hash, "err", err)
	}
}

// TxDropped keeps the record pending, the tx may still be mined later
func (j *Journal) TxDropped(ev *types.TxEvent, err error) {
	storelog.Warn("TxDropped", "hash", ev.Tx.Hash().Hex(), "err", err)
}

// Close close
func (j *Journal) Close() error {
	return j.db.Close()
}

func (j *Journal) put(rec *types.TxRecord) error {
	value, err := json.Marshal(rec)
	if err != nil {
		return err
	}
	// 记录以 snappy 压缩存储
	return j.db.Set(calcTxKey(rec.Hash), snappy.Encode(nil, value))
}
