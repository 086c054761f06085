// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package db 本地kv数据库接口，支持多种后端
package db

import (
	"github.com/33cn/pricepool/types"
	"github.com/pkg/errors"
)

// DB key-value store used by the local journal
type DB interface {
	Get(key []byte) ([]byte, error)
	Set(key []byte, value []byte) error
	Delete(key []byte) error
	// PrefixScan returns the values under prefix in ascending key order.
	PrefixScan(prefix []byte) ([][]byte, error)
	Close() error
}

// backend names
const (
	LevelDBBackendStr    = "leveldb" // legacy, defaults to goleveldb.
	GoLevelDBBackendStr  = "goleveldb"
	MemDBBackendStr      = "memdb"
	GoBadgerDBBackendStr = "gobadgerdb"
)

type dbCreator func(name string, dir string) (DB, error)

var backends = map[string]dbCreator{}

func registerDBCreator(backend string, creator dbCreator, force bool) {
	_, ok := backends[backend]
	if !force && ok {
		return
	}
	backends[backend] = creator
}

// NewDB opens the named database with the given backend under dir.
func NewDB(name string, backend string, dir string) (DB, error) {
	creator, ok := backends[backend]
	if !ok {
		return nil, errors.Wrapf(types.ErrDBBackend, "unknown backend %s", backend)
	}
	db, err := creator(name, dir)
	if err != nil {
		return nil, errors.Wrapf(err, "open %s db %s", backend, name)
	}
	return db, nil
}

// CopyBytes copy
func CopyBytes(b []byte) (copiedBytes []byte) {
	if b == nil {
		return nil
	}
	copiedBytes = make([]byte, len(b))
	copy(copiedBytes, b)
	return copiedBytes
}
