// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package db

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestListHelper(t *testing.T) {
	db, err := NewDB("list", MemDBBackendStr, "")
	require.NoError(t, err)
	defer db.Close()
	for i := 0; i < 5; i++ {
		require.NoError(t, db.Set([]byte(fmt.Sprintf("k:%02d", i)), []byte(fmt.Sprintf("v%d", i))))
	}
	require.NoError(t, db.Set([]byte("other"), []byte("x")))

	h := NewListHelper(db)
	assert.Equal(t, int64(5), h.PrefixCount([]byte("k:")))

	values := h.List([]byte("k:"), 2, ListDESC)
	assert.Equal(t, [][]byte{[]byte("v4"), []byte("v3")}, values)

	values = h.List([]byte("k:"), 0, ListASC)
	require.Len(t, values, 5)
	assert.Equal(t, []byte("v0"), values[0])

	assert.Empty(t, h.List([]byte("none:"), 3, ListDESC))
}
