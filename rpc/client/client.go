// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package client 连接远程节点的 JSON-RPC 客户端
package client

import (
	"context"
	"math/big"
	"time"

	"github.com/33cn/pricepool/common/log"
	"github.com/33cn/pricepool/types"
	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/ethclient"
	"github.com/pkg/errors"
)

var clog = log.New("module", "rpc_client")

// Backend is everything the client needs from a node.
type Backend interface {
	bind.ContractBackend
	bind.DeployBackend
	ChainID(ctx context.Context) (*big.Int, error)
	BalanceAt(ctx context.Context, account common.Address, blockNumber *big.Int) (*big.Int, error)
	BlockNumber(ctx context.Context) (uint64, error)
	Close()
}

var _ Backend = (*Client)(nil)

// Client node connection with its verified chain id
type Client struct {
	*ethclient.Client
	url     string
	chainID *big.Int
}

// Dial connects to rawurl and checks the node answers. A non zero
// expectChainID must match the node's chain id.
func Dial(ctx context.Context, rawurl string, expectChainID int64, timeout time.Duration) (*Client, error) {
	if timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}
	ec, err := ethclient.DialContext(ctx, rawurl)
	if err != nil {
		return nil, errors.Wrapf(types.ErrNotConnected, "dial %s: %v", rawurl, err)
	}
	chainID, err := ec.ChainID(ctx)
	if err != nil {
		ec.Close()
		return nil, errors.Wrapf(types.ErrNotConnected, "%s: %v", rawurl, err)
	}
	if expectChainID != 0 && chainID.Cmp(big.NewInt(expectChainID)) != 0 {
		ec.Close()
		return nil, errors.Wrapf(types.ErrChainIDMismatch, "node %s, config %d", chainID, expectChainID)
	}
	clog.Info("Dial", "url", rawurl, "chainID", chainID)
	return &Client{Client: ec, url: rawurl, chainID: chainID}, nil
}

// URL endpoint
func (c *Client) URL() string {
	return c.url
}

// CachedChainID chain id read while dialing
func (c *Client) CachedChainID() *big.Int {
	return new(big.Int).Set(c.chainID)
}

// ResolveChainID returns the configured chain id or asks the backend.
func ResolveChainID(ctx context.Context, b Backend, configured int64) (*big.Int, error) {
	if configured != 0 {
		return big.NewInt(configured), nil
	}
	if c, ok := b.(*Client); ok {
		return c.CachedChainID(), nil
	}
	id, err := b.ChainID(ctx)
	if err != nil {
		return nil, errors.Wrapf(types.ErrNotConnected, "chain id: %v", err)
	}
	return id, nil
}
