// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package version 客户端版本号
package version

const version = "0.1.0"

// GitCommit set with -ldflags "-X github.com/33cn/pricepool/common/version.GitCommit=..."
var GitCommit string

// GetVersion 获取版本号
func GetVersion() string {
	if GitCommit != "" {
		return version + "-" + GitCommit
	}
	return version
}
