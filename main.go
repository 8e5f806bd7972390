// Copyright 2018 Brett Vickers. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"strings"

	"github.com/beevik/term"
	"github.com/beevik/usim/asm"
	"github.com/beevik/usim/host"
)

var (
	assemble string
	verbose  bool
	logLevel string
)

func init() {
	flag.StringVar(&assemble, "a", "", "assemble file")
	flag.BoolVar(&verbose, "v", false, "verbose assembly listing")
	flag.StringVar(&logLevel, "log", "warn", "log level (debug, info, warn, error)")
	flag.CommandLine.Usage = func() {
		fmt.Println("Usage: usim [script] ..\nOptions:")
		flag.PrintDefaults()
	}
}

func main() {
	flag.Parse()

	var level slog.Level
	if err := level.UnmarshalText([]byte(logLevel)); err != nil {
		exitOnError(err)
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	// Do command-line assemble if requested.
	if assemble != "" {
		var options asm.Option
		if verbose {
			options |= asm.Verbose
		}
		if err := asm.AssembleFile(assemble, options, os.Stdout); err != nil {
			fmt.Printf("Failed to assemble file '%s'.\n", assemble)
			os.Exit(1)
		}
		os.Exit(0)
	}

	h := host.New(logger)

	// Run commands and scripts contained in command-line files.
	for _, filename := range flag.Args() {
		if strings.EqualFold(filepath.Ext(filename), ".star") {
			err := h.RunScript(filename)
			switch {
			case errors.Is(err, host.ErrQuit):
				os.Exit(0)
			case err != nil:
				exitOnError(err)
			}
			continue
		}

		file, err := os.Open(filename)
		if err != nil {
			exitOnError(err)
		}
		ok := h.RunCommands(file, os.Stdout, false)
		file.Close()
		if !ok {
			os.Exit(0)
		}
	}

	// Break on Ctrl-C.
	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt)
	go handleInterrupt(h, c)

	// Run commands interactively.
	h.RunCommands(os.Stdin, os.Stdout, term.IsTerminal(int(os.Stdin.Fd())))
}

func handleInterrupt(h *host.Host, c chan os.Signal) {
	for {
		<-c
		h.Break()
	}
}

func exitOnError(err error) {
	fmt.Fprintf(os.Stderr, "ERROR: %v\n", err)
	os.Exit(1)
}
