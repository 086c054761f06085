// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package db

import (
	"sort"
	"strings"
	"sync"

	"github.com/33cn/pricepool/types"
)

// memdb 无需区分同步与异步操作

func init() {
	dbCreator := func(name string, dir string) (DB, error) {
		return NewGoMemDB(name, dir)
	}
	registerDBCreator(MemDBBackendStr, dbCreator, false)
}

// GoMemDB db
type GoMemDB struct {
	db   map[string][]byte
	lock sync.RWMutex
}

// NewGoMemDB new, memdb 不需要创建文件
func NewGoMemDB(name string, dir string) (*GoMemDB, error) {
	return &GoMemDB{
		db: make(map[string][]byte),
	}, nil
}

// Get get
func (db *GoMemDB) Get(key []byte) ([]byte, error) {
	db.lock.RLock()
	defer db.lock.RUnlock()

	if entry, ok := db.db[string(key)]; ok {
		return CopyBytes(entry), nil
	}
	return nil, types.ErrNotFound
}

// Set set
func (db *GoMemDB) Set(key []byte, value []byte) error {
	db.lock.Lock()
	defer db.lock.Unlock()

	db.db[string(key)] = CopyBytes(value)
	return nil
}

// Delete delete
func (db *GoMemDB) Delete(key []byte) error {
	db.lock.Lock()
	defer db.lock.Unlock()

	delete(db.db, string(key))
	return nil
}

// PrefixScan scan
func (db *GoMemDB) PrefixScan(prefix []byte) ([][]byte, error) {
	db.lock.RLock()
	defer db.lock.RUnlock()

	var keys []string
	for k := range db.db {
		if strings.HasPrefix(k, string(prefix)) {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)
	values := make([][]byte, 0, len(keys))
	for _, k := range keys {
		values = append(values, CopyBytes(db.db[k]))
	}
	return values, nil
}

// Close close
func (db *GoMemDB) Close() error {
	return nil
}
