// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package util 文件操作工具函数
package util

import (
	"os"
	"strings"

	"github.com/pkg/errors"
)

//ReadFile : read file
func ReadFile(file string) ([]byte, error) {
	fileCont, err := os.ReadFile(file)
	if err != nil {
		return nil, errors.Wrapf(err, "Could not read file %s", file)
	}
	return fileCont, nil
}

//ReadLine : first line of a file without the line break
func ReadLine(file string) (string, error) {
	data, err := ReadFile(file)
	if err != nil {
		return "", err
	}
	line := string(data)
	if i := strings.IndexAny(line, "\r\n"); i >= 0 {
		line = line[:i]
	}
	return line, nil
}

//CheckFileIsExist : check whether the file exists or not
func CheckFileIsExist(filename string) bool {
	info, err := os.Stat(filename)
	return err == nil && !info.IsDir()
}

//MakeDir : create dir and parents with perm
func MakeDir(path string, perm os.FileMode) error {
	if path == "" || path == "." {
		return nil
	}
	return errors.Wrapf(os.MkdirAll(path, perm), "create dir %s", path)
}
