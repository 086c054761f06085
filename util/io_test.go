// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package util

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileHelpers(t *testing.T) {
	dir := t.TempDir()
	assert.False(t, CheckFileIsExist(dir))

	sub := filepath.Join(dir, "a", "b")
	require.NoError(t, MakeDir(sub, 0700))
	require.NoError(t, MakeDir("", 0700))

	file := filepath.Join(sub, "pass")
	assert.False(t, CheckFileIsExist(file))
	require.NoError(t, os.WriteFile(file, []byte("secret\nignored\n"), 0600))
	assert.True(t, CheckFileIsExist(file))

	line, err := ReadLine(file)
	require.NoError(t, err)
	assert.Equal(t, "secret", line)

	_, err = ReadFile(filepath.Join(dir, "missing"))
	assert.Error(t, err)
}
