// Copyright 2026 Brett Vickers. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package translate localizes the diagnostic messages produced by the
// assembler and the block devices.
package translate

import (
	"log/slog"

	"github.com/jeandeaual/go-locale"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/message/catalog"
)

// German translations of every message passed to From. English is the
// key itself.
var german = map[string]string{
	// asm
	"assembly failed":       "Assemblierung fehlgeschlagen",
	"invalid code template": "ungültige Codevorlage",
	"expression error":      "Ausdrucksfehler",
	"DATA ERROR":            "DATENFEHLER",
	"EXPRESSION ERROR":      "AUSDRUCKSFEHLER",
	"LABEL ERROR":           "MARKENFEHLER",
	"NOT IMPLEMENTED":       "NICHT IMPLEMENTIERT",
	"OVERFLOW":              "ÜBERLAUF",
	"PHASE ERROR":           "PHASENFEHLER",
	"REGISTER ERROR":        "REGISTERFEHLER",
	"SYNTAX ERROR":          "SYNTAXFEHLER",
	"VALUE ERROR":           "WERTFEHLER",
	"UNKNOWN ERROR":         "UNBEKANNTER FEHLER",

	// bdev
	"no such block device":                    "kein solches Blockgerät",
	"block device is not mounted":             "Blockgerät ist nicht eingehängt",
	"block device is already mounted":         "Blockgerät ist bereits eingehängt",
	"another BDev is already using this name": "ein anderes BDev verwendet diesen Namen bereits",
	"block device is read-only":               "Blockgerät ist schreibgeschützt",
	"sector out of range":                     "Sektor außerhalb des Bereichs",
	"invalid disk image format":               "ungültiges Diskettenabbildformat",
	"sector checksum mismatch":                "Sektorprüfsumme stimmt nicht",
	"invalid disk parameters":                 "ungültige Diskettenparameter",
	"invalid disk geometry":                   "ungültige Diskettengeometrie",
	"directory disks are disabled":            "Verzeichnisdisketten sind deaktiviert",
	"no block device name":                    "kein Blockgerätename",
	"canceled":                                "abgebrochen",
}

var supported = []language.Tag{language.English, language.German}

var printer *message.Printer

func init() {
	locales, err := locale.GetLocales()
	if err != nil {
		slog.Warn("locale lookup failed", slog.Any("error", err))
	}
	printer = newPrinter(locales)
}

// newPrinter returns a printer for the supported language that best
// matches the user's locales, English when nothing matches.
func newPrinter(locales []string) *message.Printer {
	b := catalog.NewBuilder(catalog.Fallback(language.English))
	for key, msg := range german {
		b.SetString(language.English, key, key)
		b.SetString(language.German, key, msg)
	}

	var tags []language.Tag
	for _, l := range locales {
		if t, err := language.Parse(l); err == nil {
			tags = append(tags, t)
		}
	}

	tag := language.English
	if len(tags) > 0 {
		_, i, conf := language.NewMatcher(supported).Match(tags...)
		if conf != language.No {
			tag = supported[i]
		}
	}
	return message.NewPrinter(tag, message.Catalog(b))
}

// From translates an en-US Sprintf format and its arguments into a string
// in the user's language.
func From(key message.Reference, args ...any) string {
	return printer.Sprintf(key, args...)
}
