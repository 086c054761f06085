// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package db

import (
	"path/filepath"

	"github.com/33cn/pricepool/common/log"
	"github.com/33cn/pricepool/types"
	"github.com/dgraph-io/badger"
)

var blog = log.New("module", "db.gobadgerdb")

func init() {
	dbCreator := func(name string, dir string) (DB, error) {
		return NewGoBadgerDB(name, dir)
	}
	registerDBCreator(GoBadgerDBBackendStr, dbCreator, false)
}

// GoBadgerDB db
type GoBadgerDB struct {
	db *badger.DB
}

// NewGoBadgerDB new
func NewGoBadgerDB(name string, dir string) (*GoBadgerDB, error) {
	dbPath := filepath.Join(dir, name+".badger")
	opts := badger.DefaultOptions(dbPath)
	opts.SyncWrites = true

	db, err := badger.Open(opts)
	if err != nil {
		return nil, err
	}
	return &GoBadgerDB{db: db}, nil
}

// Get get
func (db *GoBadgerDB) Get(key []byte) ([]byte, error) {
	var val []byte
	err := db.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(key)
		if err != nil {
			return err
		}
		val, err = item.ValueCopy(nil)
		return err
	})
	if err == badger.ErrKeyNotFound {
		return nil, types.ErrNotFound
	}
	if err != nil {
		blog.Error("Get", "error", err)
		return nil, err
	}
	return val, nil
}

// Set set
func (db *GoBadgerDB) Set(key []byte, value []byte) error {
	err := db.db.Update(func(txn *badger.Txn) error {
		return txn.Set(key, value)
	})
	if err != nil {
		blog.Error("Set", "error", err)
	}
	return err
}

// Delete delete
func (db *GoBadgerDB) Delete(key []byte) error {
	err := db.db.Update(func(txn *badger.Txn) error {
		return txn.Delete(key)
	})
	if err != nil {
		blog.Error("Delete", "error", err)
	}
	return err
}

// PrefixScan scan
func (db *GoBadgerDB) PrefixScan(prefix []byte) ([][]byte, error) {
	var values [][]byte
	err := db.db.View(func(txn *badger.Txn) error {
		it := txn.NewIterator(badger.DefaultIteratorOptions)
		defer it.Close()
		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			v, err := it.Item().ValueCopy(nil)
			if err != nil {
				return err
			}
			values = append(values, v)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return values, nil
}

// Close close
func (db *GoBadgerDB) Close() error {
	return db.db.Close()
}
