// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package db

import (
	"github.com/33cn/pricepool/common/log"
)

//ListHelper ...
type ListHelper struct {
	db DB
}

var listlog = log.New("module", "db.ListHelper")

//NewListHelper new
func NewListHelper(db DB) *ListHelper {
	return &ListHelper{db}
}

//const
const (
	ListDESC = int32(0)
	ListASC  = int32(1)
)

//List 按 key 顺序列出前缀下的 value, count <= 0 表示全部
func (db *ListHelper) List(prefix []byte, count int32, direction int32) (values [][]byte) {
	all, err := db.db.PrefixScan(prefix)
	if err != nil {
		listlog.Error("List PrefixScan", "error", err)
		return nil
	}
	if direction == ListDESC {
		for i, j := 0, len(all)-1; i < j; i, j = i+1, j-1 {
			all[i], all[j] = all[j], all[i]
		}
	}
	if count > 0 && int(count) < len(all) {
		all = all[:count]
	}
	return all
}

//PrefixCount 前缀数量
func (db *ListHelper) PrefixCount(prefix []byte) (count int64) {
	all, err := db.db.PrefixScan(prefix)
	if err != nil {
		listlog.Error("PrefixCount PrefixScan", "error", err)
		return 0
	}
	return int64(len(all))
}
