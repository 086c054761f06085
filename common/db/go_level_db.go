// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package db

import (
	"path/filepath"

	"github.com/33cn/pricepool/common/log"
	"github.com/33cn/pricepool/types"
	"github.com/syndtr/goleveldb/leveldb"
	lerrors "github.com/syndtr/goleveldb/leveldb/errors"
	"github.com/syndtr/goleveldb/leveldb/filter"
	"github.com/syndtr/goleveldb/leveldb/opt"
	"github.com/syndtr/goleveldb/leveldb/util"
)

var llog = log.New("module", "db.goleveldb")

func init() {
	dbCreator := func(name string, dir string) (DB, error) {
		return NewGoLevelDB(name, dir)
	}
	registerDBCreator(LevelDBBackendStr, dbCreator, false)
	registerDBCreator(GoLevelDBBackendStr, dbCreator, false)
}

// GoLevelDB db
type GoLevelDB struct {
	db *leveldb.DB
}

// NewGoLevelDB new
func NewGoLevelDB(name string, dir string) (*GoLevelDB, error) {
	dbPath := filepath.Join(dir, name+".db")
	// 本地日志数据量很小，使用较小的缓存
	db, err := leveldb.OpenFile(dbPath, &opt.Options{
		OpenFilesCacheCapacity: 16,
		BlockCacheCapacity:     8 * opt.MiB,
		WriteBuffer:            4 * opt.MiB,
		Filter:                 filter.NewBloomFilter(10),
	})
	if _, corrupted := err.(*lerrors.ErrCorrupted); corrupted {
		llog.Warn("NewGoLevelDB", "recover corrupted db", dbPath)
		db, err = leveldb.RecoverFile(dbPath, nil)
	}
	if err != nil {
		return nil, err
	}
	return &GoLevelDB{db: db}, nil
}

// Get get
func (db *GoLevelDB) Get(key []byte) ([]byte, error) {
	res, err := db.db.Get(key, nil)
	if err == lerrors.ErrNotFound {
		return nil, types.ErrNotFound
	}
	if err != nil {
		llog.Error("Get", "error", err)
		return nil, err
	}
	return res, nil
}

// Set set, 同步写入
func (db *GoLevelDB) Set(key []byte, value []byte) error {
	err := db.db.Put(key, value, &opt.WriteOptions{Sync: true})
	if err != nil {
		llog.Error("Set", "error", err)
	}
	return err
}

// Delete delete
func (db *GoLevelDB) Delete(key []byte) error {
	err := db.db.Delete(key, &opt.WriteOptions{Sync: true})
	if err != nil {
		llog.Error("Delete", "error", err)
	}
	return err
}

// PrefixScan scan
func (db *GoLevelDB) PrefixScan(prefix []byte) ([][]byte, error) {
	iter := db.db.NewIterator(util.BytesPrefix(prefix), nil)
	defer iter.Release()
	var values [][]byte
	for iter.Next() {
		values = append(values, CopyBytes(iter.Value()))
	}
	if err := iter.Error(); err != nil {
		return nil, err
	}
	return values, nil
}

// Close close
func (db *GoLevelDB) Close() error {
	return db.db.Close()
}
