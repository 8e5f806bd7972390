// Copyright 2026 Brett Vickers. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package bdev

import (
	"errors"
	"fmt"

	"github.com/beevik/usim/translate"
)

// Errors returned by the block device manager and its backends.
var (
	ErrUnknownUnit   = errors.New(translate.From("no such block device"))
	ErrNotOpen       = errors.New(translate.From("block device is not mounted"))
	ErrMounted       = errors.New(translate.From("block device is already mounted"))
	ErrInUse         = errors.New(translate.From("another BDev is already using this name"))
	ErrReadOnly      = errors.New(translate.From("block device is read-only"))
	ErrRange         = errors.New(translate.From("sector out of range"))
	ErrFormat        = errors.New(translate.From("invalid disk image format"))
	ErrChecksum      = errors.New(translate.From("sector checksum mismatch"))
	ErrParameters    = errors.New(translate.From("invalid disk parameters"))
	ErrGeometry      = errors.New(translate.From("invalid disk geometry"))
	ErrDirectoryDisk = errors.New(translate.From("directory disks are disabled"))
	ErrNoName        = errors.New(translate.From("no block device name"))
	ErrCanceled      = errors.New(translate.From("canceled"))
)

// A DiskError records a failed operation on a block device. Its Op is the
// short diagnostic tag shown to the user, such as OPEN or RDONLY.
type DiskError struct {
	Op   string
	Unit string
	Name string
	Err  error
}

func (e *DiskError) Error() string {
	return fmt.Sprintf("?%s [%s => %s]: %v", e.Op, e.Unit, e.Name, e.Err)
}

func (e *DiskError) Unwrap() error {
	return e.Err
}
