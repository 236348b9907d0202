package main

import (
	"errors"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/fatih/color"
	"github.com/urfave/cli/v2"
	"github.com/vyPal/pasc/lib/analyzer"
	"github.com/vyPal/pasc/lib/lexer"
	"github.com/vyPal/pasc/lib/parser"
)

// Version is the pasc release; project files may require a range of it.
const Version = "0.1.0"

var commands []*cli.Command

func newApp() *cli.App {
	return &cli.App{
		Name:                   "pasc",
		Usage:                  "A compiler for a small Pascal subset that targets LLVM IR",
		Version:                Version,
		EnableBashCompletion:   true,
		UseShortOptionHandling: true,
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  "debug",
				Usage: "Log compiler steps to stderr",
			},
		},
		Before: func(c *cli.Context) error {
			log.SetOutput(io.Discard)
			if c.Bool("debug") {
				log.SetOutput(c.App.ErrWriter)
				log.SetFlags(log.Ltime | log.Lmicroseconds)
			}
			return nil
		},
		Commands: append([]*cli.Command(nil), commands...),
	}
}

func main() {
	if err := newApp().Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// sourceError turns a front-end error into a red exit error. Errors from
// the lexer, parser and analyzer already carry their position.
func sourceError(err error) error {
	var lexErr *lexer.Error
	var synErr *parser.SyntaxError
	var semErr *analyzer.Error
	switch {
	case errors.As(err, &lexErr), errors.As(err, &synErr), errors.As(err, &semErr):
		return cli.Exit(color.RedString("%s", err), 1)
	}
	return cli.Exit(color.RedString("Error: %s", err), 1)
}
