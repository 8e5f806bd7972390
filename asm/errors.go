// Copyright 2014-2026 Brett Vickers. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package asm

import (
	"errors"
	"fmt"
	"strings"

	"github.com/beevik/usim/translate"
)

var (
	// ErrAssembly is returned when an assembly counted one or more errors.
	ErrAssembly = errors.New(translate.From("assembly failed"))

	// ErrTemplate is returned when an operation table holds a malformed
	// code template.
	ErrTemplate = errors.New(translate.From("invalid code template"))

	// ErrExpression is returned by Calculate for an invalid expression.
	ErrExpression = errors.New(translate.From("expression error"))
)

// An ErrorKind is the one-letter code of an assembly error, as shown in
// the error column of the listing.
type ErrorKind byte

// Assembly error kinds.
const (
	DataError       ErrorKind = 'D'
	ExpressionError ErrorKind = 'E'
	LabelError      ErrorKind = 'L'
	NotImplemented  ErrorKind = 'N'
	Overflow        ErrorKind = 'O'
	PhaseError      ErrorKind = 'P'
	RegisterError   ErrorKind = 'R'
	SyntaxError     ErrorKind = 'S'
	ValueError      ErrorKind = 'V'
	UnknownError    ErrorKind = 'X'
)

func (k ErrorKind) String() string {
	switch k {
	case DataError:
		return "DATA ERROR"
	case ExpressionError:
		return "EXPRESSION ERROR"
	case LabelError:
		return "LABEL ERROR"
	case NotImplemented:
		return "NOT IMPLEMENTED"
	case Overflow:
		return "OVERFLOW"
	case PhaseError:
		return "PHASE ERROR"
	case RegisterError:
		return "REGISTER ERROR"
	case SyntaxError:
		return "SYNTAX ERROR"
	case ValueError:
		return "VALUE ERROR"
	default:
		return "UNKNOWN ERROR"
	}
}

const (
	maxDisplayedErrors = 5 // errors displayed in full per assembly
	maxLineErrors      = 6 // error codes kept per source line
)

// An asmerror is an error reported against a line of source.
type asmerror struct {
	kind   ErrorKind
	file   string
	row    int
	column int
	source string
}

// Error renders the source line, a caret under the failing column and
// the file/line diagnostic.
func (e asmerror) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s\n", e.source)
	fmt.Fprintf(&b, "%s^\n", strings.Repeat(" ", e.column))
	fmt.Fprintf(&b, "?FILE \"%s\" LINE %d: %s", e.file, e.row, translate.From(e.kind.String()))
	return b.String()
}

// addError records an error of the given kind at the parse cursor. Errors
// are only recorded during the final pass.
func (a *assembler) addError(kind ErrorKind) {
	if !a.final {
		return
	}

	if a.errorCount < maxDisplayedErrors {
		e := asmerror{
			kind:   kind,
			file:   a.sources.name(),
			row:    a.sources.row(),
			column: a.next.offset(),
			source: a.next.full,
		}
		a.errors = append(a.errors, e)
		fmt.Fprintln(a.out, e.Error())
	}
	a.errorCount++

	c := byte(kind)
	if len(a.lineErrors) == maxLineErrors {
		a.lineErrors = a.lineErrors[:maxLineErrors-1]
		c = '*'
	}
	a.lineErrors = append(a.lineErrors, c)
}
