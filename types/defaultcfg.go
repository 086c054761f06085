// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package types

var cfgstring = `
Title="citrea-testnet"

[rpc]
addr="https://rpc.testnet.citrea.xyz"
# 0 表示从节点获取 chain id
chainID=0
timeout=30

[wallet]
keystoreFile="wallet_config.json"
lightKDF=false

[contract]
address="0xTheContractAddress"
abiFile="contract_abi.json"

[tx]
gasLimit=2000000
# 0 表示使用节点建议的 gas price
gasPriceGwei=5
receiptTimeout=300

[log]
# 日志级别，支持debug(dbug)/info/warn/error(eror)/crit
loglevel="info"
logConsoleLevel="error"
# 日志文件名，为空时只输出到控制台
logFile=""
# 单个日志文件的最大值（单位：兆）
maxFileSize=20
# 最多保存的历史日志文件个数
maxBackups=5
# 最多保存的历史日志消息（单位：天）
maxAge=28
localTime=true
compress=false
callerFile=false
callerFunction=false

[journal]
disable=false
# leveldb, gobadgerdb, memdb
driver="leveldb"
dbPath="datadir"

[metrics]
enableMetrics=false
# log, stderr, prometheus
dataEmitMode="log"

[cache]
betInfoSize=128
`
