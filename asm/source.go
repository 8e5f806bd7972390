// Copyright 2014-2026 Brett Vickers. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package asm

import (
	"bufio"
	"errors"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

const (
	maxSourceDepth = 5   // open source files, including the top-level file
	maxSourceLine  = 255 // characters kept per source line
)

var errSourceDepth = errors.New("source files nested too deeply")

// A sourceFile is an open source file and the number of the line last
// read from it.
type sourceFile struct {
	name    string
	c       io.Closer
	scanner *bufio.Scanner
	row     int
}

// A sourceStack tracks the source file being read along with the files
// that included it.
type sourceStack struct {
	fsys    fs.FS
	dir     string // directory of the top-level file
	current *sourceFile
	stack   []*sourceFile
	line    int // line counter for source that does not come from a file
}

func (s *sourceStack) open(name string) (io.ReadCloser, error) {
	if s.fsys != nil {
		return s.fsys.Open(name)
	}
	return os.Open(name)
}

// push opens a source file and makes it the current file. Relative names
// that cannot be opened directly are tried next to the top-level file.
func (s *sourceStack) push(name string) error {
	if s.current != nil && len(s.stack)+1 >= maxSourceDepth {
		return errSourceDepth
	}

	r, err := s.open(name)
	if err != nil && s.current != nil && s.dir != "" && !filepath.IsAbs(name) {
		r, err = s.open(filepath.Join(s.dir, name))
	}
	if err != nil {
		return err
	}

	if s.current == nil {
		s.dir = filepath.Dir(name)
	} else {
		s.stack = append(s.stack, s.current)
	}
	s.current = &sourceFile{name: name, c: r, scanner: bufio.NewScanner(r)}
	return nil
}

// pop closes the current file and resumes the file that included it. It
// returns false when no file remains.
func (s *sourceStack) pop() bool {
	if s.current != nil {
		s.current.c.Close()
		s.current = nil
	}
	if len(s.stack) == 0 {
		return false
	}
	s.current = s.stack[len(s.stack)-1]
	s.stack = s.stack[:len(s.stack)-1]
	return true
}

// closeAll closes every open source file.
func (s *sourceStack) closeAll() {
	for s.pop() {
	}
}

// readLine returns the next source line, continuing with the including
// file when a file ends. Line terminators are removed and long lines are
// truncated.
func (s *sourceStack) readLine() (string, bool) {
	for s.current != nil {
		if s.current.scanner.Scan() {
			s.current.row++
			line := s.current.scanner.Text()
			if i := strings.IndexAny(line, "\r\n"); i >= 0 {
				line = line[:i]
			}
			if len(line) > maxSourceLine {
				line = line[:maxSourceLine]
			}
			return line, true
		}
		if !s.pop() {
			break
		}
	}
	return "", false
}

// name returns the name of the current source file, or an empty string
// for source that does not come from a file.
func (s *sourceStack) name() string {
	if s.current == nil {
		return ""
	}
	return s.current.name
}

// row returns the number of the line being assembled.
func (s *sourceStack) row() int {
	if s.current == nil {
		return s.line
	}
	return s.current.row
}
