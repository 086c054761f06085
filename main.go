// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// pricepool-cli 价格预测池客户端
package main

import (
	"github.com/33cn/pricepool/util/cli"
)

func main() {
	cli.Run("pricepool")
}
