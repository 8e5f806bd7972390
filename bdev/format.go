// Copyright 2026 Brett Vickers. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package bdev

import (
	"bufio"
	"fmt"
	"log/slog"
	"os"
)

// Limits on the geometry of a formatted disk.
const (
	MaxSize = 8 * 1024 * 1024
	MaxSPT  = 255
	MaxDRM  = 2048
	MaxBLS  = 16384
)

// Unspecified marks a FormatRequest field that takes its default value.
const Unspecified = -1

// A FormatRequest describes the disk to be formatted. Unspecified fields
// take the standard floppy values for disks under 256K and the standard
// hard disk values otherwise, except that OFF defaults to 0 and SKF to 1.
type FormatRequest struct {
	Size int // total bytes
	SPT  int // sectors per track
	BLS  int // data allocation block size
	DRM  int // directory entries, minus one
	OFF  int // reserved system tracks
	SKF  int // sector skew factor
}

// DefaultFormat requests a standard floppy disk.
var DefaultFormat = FormatRequest{
	Size: Unspecified,
	SPT:  Unspecified,
	BLS:  Unspecified,
	DRM:  Unspecified,
	OFF:  Unspecified,
	SKF:  Unspecified,
}

func matches(v, standard int) bool {
	return v == Unspecified || v == standard
}

// isStandardFloppy returns true if every field of the request is either
// unspecified or has its standard floppy value.
func (r *FormatRequest) isStandardFloppy() bool {
	g := FloppyGeometry
	return matches(r.Size, FloppySize) &&
		matches(r.SPT, g.SPT) &&
		matches(r.BLS, g.BLS) &&
		matches(r.DRM, g.DRM) &&
		matches(r.OFF, g.OFF) &&
		matches(r.SKF, g.SKF)
}

// geometry applies the defaults to a request and returns the geometry of
// the disk it describes.
func (r FormatRequest) geometry() (Geometry, error) {
	if r.isStandardFloppy() {
		return FloppyGeometry, nil
	}

	if r.Size == Unspecified {
		r.Size = FloppySize
	}
	d := HardDiskGeometry
	if r.Size < 256*1024 {
		d = FloppyGeometry
	}
	def := func(v *int, standard int) {
		if *v == Unspecified {
			*v = standard
		}
	}
	def(&r.BLS, d.BLS)
	def(&r.DRM, d.DRM)
	def(&r.SPT, d.SPT)
	def(&r.OFF, 0)
	def(&r.SKF, 1)

	if r.SPT <= 0 || r.BLS <= 0 || r.DRM < 0 || r.OFF < 0 || r.Size <= 0 {
		return Geometry{}, fmt.Errorf("%w: -S %d -B %d -F %d -O %d", ErrGeometry, r.SPT, r.BLS, r.DRM, r.OFF)
	}

	tpd := r.Size / (r.SPT * SectorSize)
	if tpd <= r.OFF {
		return Geometry{}, fmt.Errorf("%w: %d < %d", ErrGeometry, r.Size, (r.OFF+1)*r.SPT*SectorSize)
	}

	return Geometry{
		TPD: tpd,
		SPT: r.SPT,
		BLS: r.BLS,
		DRM: r.DRM,
		OFF: r.OFF,
		SKF: r.SKF,
	}, nil
}

// validate checks a computed parameter block against the format limits.
func validate(pb *ParameterBlock, g Geometry) error {
	minBLS := 2048
	if pb.DSM < 256 {
		minBLS = 1024
	}

	switch {
	case pb.SIZ > MaxSize:
		return fmt.Errorf("%w: %d > %d", ErrGeometry, pb.SIZ, MaxSize)
	case g.SPT > MaxSPT:
		return fmt.Errorf("%w: -S %d > %d", ErrGeometry, g.SPT, MaxSPT)
	case g.DRM > MaxDRM:
		return fmt.Errorf("%w: -F %d > %d", ErrGeometry, g.DRM, MaxDRM)
	case g.BLS > MaxBLS:
		return fmt.Errorf("%w: -B %d > %d", ErrGeometry, g.BLS, MaxBLS)
	case g.BLS&(g.BLS-1) != 0:
		return fmt.Errorf("%w: -B %d", ErrGeometry, g.BLS)
	case g.BLS < minBLS:
		return fmt.Errorf("%w: -B %d < %d", ErrGeometry, g.BLS, minBLS)
	case pb.DBL > 16, pb.DBL >= pb.DSM:
		return fmt.Errorf("%w: -F %d -B %d", ErrGeometry, g.DRM, g.BLS)
	}
	return nil
}

// Format creates a binary disk image filled with erased sectors. An image
// that does not have the standard floppy geometry begins with a header
// recording its geometry.
func (m *Manager) Format(path string, req FormatRequest, confirm ConfirmFunc) error {
	g, err := req.geometry()
	if err != nil {
		return err
	}
	pb := g.Parameters()
	if err := validate(&pb, g); err != nil {
		return err
	}

	fmt.Fprintf(m.out, "FORMATTING [%s] %dK...\n", path, pb.SIZ/1024)
	ShowParameterBlock(m.out, &pb, false)

	if _, err := os.Stat(path); err == nil {
		fmt.Fprintf(m.out, "?EXISTS: [%s]\n", path)
	}
	if !m.confirm(confirm) {
		return ErrCanceled
	}

	if err := writeImage(path, func(w *bufio.Writer) error {
		if !req.isStandardFloppy() {
			if _, err := w.Write(makeHeader(g)); err != nil {
				return err
			}
		}
		sector := make([]byte, SectorSize)
		emptySector(sector)
		for i := 0; i < pb.SPD; i++ {
			if _, err := w.Write(sector); err != nil {
				return err
			}
		}
		return nil
	}); err != nil {
		return err
	}

	m.logger.Info("formatted disk",
		slog.String("name", path),
		slog.Int("size", pb.SIZ))
	fmt.Fprintln(m.out, "FORMAT COMPLETE.")
	return nil
}

// writeImage creates a disk image file and fills it using fn.
func writeImage(path string, fn func(w *bufio.Writer) error) error {
	f, err := os.Create(path)
	if err != nil {
		return &DiskError{Op: "ERROR", Name: path, Err: err}
	}
	defer f.Close()

	w := bufio.NewWriter(f)
	if err := fn(w); err != nil {
		return &DiskError{Op: "WRITE", Name: path, Err: err}
	}
	if err := w.Flush(); err != nil {
		return &DiskError{Op: "WRITE", Name: path, Err: err}
	}
	if err := f.Close(); err != nil {
		return &DiskError{Op: "CLOSE", Name: path, Err: err}
	}
	return nil
}
