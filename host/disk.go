// Copyright 2026 Brett Vickers. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package host

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/beevik/cmd"
	"github.com/beevik/usim/bdev"
)

// diskResult displays the outcome of a disk operation.
func (h *Host) diskResult(err error) {
	switch {
	case err == nil:
	case errors.Is(err, bdev.ErrCanceled):
		h.println("CANCELED")
	default:
		h.printf("%v\n", err)
	}
}

// decimal parses a disk geometry value, which is always given in decimal.
func decimal(s string) (int, error) {
	v, err := strconv.Atoi(strings.TrimSuffix(strings.ToUpper(s), "D"))
	if err != nil || v < 0 {
		return 0, fmt.Errorf("invalid number '%s'", s)
	}
	return v, nil
}

func (h *Host) cmdDiskMount(c cmd.Selection) error {
	if len(c.Args) < 1 {
		h.displayHelpText(c)
		return nil
	}

	args := c.Args[1:]
	readOnly := false
	if n := len(args); n > 0 && strings.EqualFold(args[n-1], "ro") {
		readOnly = true
		args = args[:n-1]
	}

	var name string
	if len(args) > 0 {
		name = args[0]
	}

	b, err := h.disks.Mount(c.Args[0], name, readOnly)
	if err != nil {
		h.diskResult(err)
		return nil
	}
	h.diskResult(h.disks.ShowMount(b.Unit(), false))
	return nil
}

func (h *Host) cmdDiskUnmount(c cmd.Selection) error {
	if len(c.Args) < 1 {
		h.displayHelpText(c)
		return nil
	}
	h.diskResult(h.disks.Unmount(c.Args[0]))
	return nil
}

func (h *Host) cmdDiskStatus(c cmd.Selection) error {
	var unit string
	verbose := false
	for _, a := range c.Args {
		if strings.EqualFold(a, "verbose") {
			verbose = true
		} else {
			unit = a
		}
	}
	h.diskResult(h.disks.ShowMount(unit, verbose))
	return nil
}

func (h *Host) cmdDiskFormat(c cmd.Selection) error {
	if len(c.Args) < 1 {
		h.displayHelpText(c)
		return nil
	}

	req := bdev.DefaultFormat
	args := c.Args[1:]
	for i := 0; i < len(args); i++ {
		a := args[i]
		if !strings.HasPrefix(a, "-") {
			v, err := decimal(a)
			if err != nil {
				h.printf("%v\n", err)
				return nil
			}
			req.Size = v
			continue
		}

		if len(a) < 2 {
			h.printf("Invalid flag '%s'.\n", a)
			return nil
		}

		// Flag values may follow the flag letter or appear as the next
		// argument.
		value := a[2:]
		if value == "" && i+1 < len(args) {
			i++
			value = args[i]
		}
		v, err := decimal(value)
		if err != nil {
			h.printf("Invalid flag '%s'.\n", a)
			return nil
		}

		switch strings.ToUpper(a[1:2]) {
		case "S":
			req.SPT = v
		case "B":
			req.BLS = v
		case "D":
			req.DRM = v
		case "O":
			req.OFF = v
		case "X":
			req.SKF = v
		default:
			h.printf("Invalid flag '%s'.\n", a)
			return nil
		}
	}

	h.diskResult(h.disks.Format(c.Args[0], req, h.confirm))
	return nil
}

func (h *Host) cmdDiskCopy(c cmd.Selection) error {
	if len(c.Args) < 2 {
		h.displayHelpText(c)
		return nil
	}

	kind := bdev.BinaryImage
	if len(c.Args) > 2 && strings.EqualFold(c.Args[2], "ascii") {
		kind = bdev.ASCIIImage
	}
	h.diskResult(h.disks.Copy(c.Args[0], c.Args[1], kind, h.confirm))
	return nil
}

func (h *Host) cmdDiskDirectory(c cmd.Selection) error {
	if len(c.Args) < 1 {
		h.displayHelpText(c)
		return nil
	}
	h.diskResult(h.disks.ShowDirectory(c.Args[0]))
	return nil
}

func (h *Host) cmdDiskFCB(c cmd.Selection) error {
	if len(c.Args) < 1 {
		h.displayHelpText(c)
		return nil
	}

	n := -1
	if len(c.Args) > 1 {
		v, err := decimal(c.Args[1])
		if err != nil {
			h.printf("%v\n", err)
			return nil
		}
		n = v
	}
	h.diskResult(h.disks.ShowFCB(c.Args[0], n))
	return nil
}

func (h *Host) cmdDiskALV(c cmd.Selection) error {
	if len(c.Args) < 1 {
		h.displayHelpText(c)
		return nil
	}
	h.diskResult(h.disks.ShowALV(c.Args[0]))
	return nil
}

func (h *Host) cmdDiskParameters(c cmd.Selection) error {
	if len(c.Args) != 6 {
		h.displayHelpText(c)
		return nil
	}

	var v [6]int
	for i := range v {
		n, err := decimal(c.Args[i])
		if err != nil {
			h.printf("%v\n", err)
			return nil
		}
		v[i] = n
	}

	pb := bdev.ComputeParameters(v[0], v[1], v[2], v[3], v[4], v[5])
	bdev.ShowParameterBlock(h.output, &pb, true)
	return nil
}

func (h *Host) cmdDiskErase(c cmd.Selection) error {
	if len(c.Args) < 1 {
		h.displayHelpText(c)
		return nil
	}

	b, err := h.disks.Unit(c.Args[0])
	if err != nil {
		h.diskResult(err)
		return nil
	}
	h.diskResult(h.disks.EraseSystemTracks(b, h.confirm))
	return nil
}
