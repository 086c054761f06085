// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package wallet 本地加密钱包文件以及交易记录
package wallet

import (
	"crypto/ecdsa"
	"encoding/hex"
	"encoding/json"
	"math/big"
	"os"
	"path/filepath"
	"strings"

	"github.com/33cn/pricepool/common/log"
	"github.com/33cn/pricepool/types"
	"github.com/33cn/pricepool/util"
	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/accounts/keystore"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/google/uuid"
	"github.com/pkg/errors"
)

var walletlog = log.New("module", "wallet")

// Account an unlocked key
type Account struct {
	Address    common.Address
	PrivateKey *ecdsa.PrivateKey
}

// Hex checksummed address
func (acc *Account) Hex() string {
	return acc.Address.Hex()
}

// Transactor builds EIP-155 signing options for chainID
func (acc *Account) Transactor(chainID *big.Int) (*bind.TransactOpts, error) {
	return bind.NewKeyedTransactorWithChainID(acc.PrivateKey, chainID)
}

// Exists 钱包文件是否存在
func Exists(path string) bool {
	return util.CheckFileIsExist(path)
}

// Create generates a new key and stores it encrypted at path.
func Create(path, password string, lightKDF bool) (*Account, error) {
	privateKey, err := crypto.GenerateKey()
	if err != nil {
		return nil, errors.Wrap(err, "generate key")
	}
	return store(path, privateKey, password, lightKDF)
}

// Import stores an existing hex private key encrypted at path.
func Import(path, hexKey, password string, lightKDF bool) (*Account, error) {
	privateKey, err := crypto.HexToECDSA(strings.TrimPrefix(strings.TrimSpace(hexKey), "0x"))
	if err != nil {
		return nil, errors.Wrap(types.ErrPrivkeyFormat, err.Error())
	}
	return store(path, privateKey, password, lightKDF)
}

// Load decrypts the wallet file with password.
func Load(path, password string) (*Account, error) {
	keyjson, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil, errors.Wrap(types.ErrWalletNotFound, path)
	}
	if err != nil {
		return nil, errors.Wrapf(err, "read wallet %s", path)
	}
	key, err := keystore.DecryptKey(keyjson, password)
	if err == keystore.ErrDecrypt {
		return nil, types.ErrWrongPassword
	}
	if err != nil {
		return nil, errors.Wrapf(err, "decrypt wallet %s", path)
	}
	walletlog.Debug("Load", "addr", key.Address.Hex())
	return &Account{Address: key.Address, PrivateKey: key.PrivateKey}, nil
}

// Export returns the hex private key of the wallet at path.
func Export(path, password string) (string, error) {
	acc, err := Load(path, password)
	if err != nil {
		return "", err
	}
	return hex.EncodeToString(crypto.FromECDSA(acc.PrivateKey)), nil
}

// Address reads the wallet address without decrypting the key.
func Address(path string) (common.Address, error) {
	keyjson, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return common.Address{}, errors.Wrap(types.ErrWalletNotFound, path)
	}
	if err != nil {
		return common.Address{}, errors.Wrapf(err, "read wallet %s", path)
	}
	var v struct {
		Address string `json:"address"`
	}
	if err := json.Unmarshal(keyjson, &v); err != nil {
		return common.Address{}, errors.Wrapf(err, "parse wallet %s", path)
	}
	if !common.IsHexAddress(v.Address) {
		return common.Address{}, types.ErrInvalidAddress
	}
	return common.HexToAddress(v.Address), nil
}

func store(path string, privateKey *ecdsa.PrivateKey, password string, lightKDF bool) (*Account, error) {
	if password == "" {
		return nil, types.ErrEmptyPassword
	}
	id, err := uuid.NewRandom()
	if err != nil {
		return nil, errors.Wrap(err, "key id")
	}
	key := &keystore.Key{
		Id:         id,
		Address:    crypto.PubkeyToAddress(privateKey.PublicKey),
		PrivateKey: privateKey,
	}
	scryptN, scryptP := keystore.StandardScryptN, keystore.StandardScryptP
	if lightKDF {
		scryptN, scryptP = keystore.LightScryptN, keystore.LightScryptP
	}
	keyjson, err := keystore.EncryptKey(key, password, scryptN, scryptP)
	if err != nil {
		return nil, errors.Wrap(err, "encrypt key")
	}
	if err := writeKeyFile(path, keyjson); err != nil {
		return nil, err
	}
	walletlog.Info("store", "addr", key.Address.Hex(), "file", path)
	return &Account{Address: key.Address, PrivateKey: privateKey}, nil
}

// 不覆盖已有的钱包文件
func writeKeyFile(path string, content []byte) error {
	if err := util.MakeDir(filepath.Dir(path), 0700); err != nil {
		return err
	}
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0600)
	if os.IsExist(err) {
		return errors.Wrap(types.ErrWalletExists, path)
	}
	if err != nil {
		return errors.Wrapf(err, "create wallet %s", path)
	}
	if _, err := f.Write(content); err != nil {
		f.Close()
		os.Remove(path)
		return errors.Wrapf(err, "write wallet %s", path)
	}
	return f.Close()
}
