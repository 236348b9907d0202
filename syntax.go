package main

import (
	"encoding/json"
	"fmt"
	"io"
	"log"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/sergi/go-diff/diffmatchpatch"
	"github.com/urfave/cli/v2"
	"github.com/vyPal/pasc/lib/analyzer"
	"github.com/vyPal/pasc/lib/ast"
	"github.com/vyPal/pasc/lib/format"
	"github.com/vyPal/pasc/lib/parser"
	"github.com/vyPal/pasc/lib/token"
	"gopkg.in/yaml.v3"
)

func init() {
	commands = append(commands, &cli.Command{
		Name:      "parse",
		Usage:     "Parse a Pascal file and print its syntax tree",
		Category:  "syntax",
		ArgsUsage: "[file]",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "input-str",
				Aliases: []string{"s"},
				Usage:   "Parse a string instead of a file",
			},
			&cli.StringFlag{
				Name:    "format",
				Aliases: []string{"f"},
				Value:   "json",
				Usage:   "Output format: json or yaml",
			},
			&cli.StringFlag{
				Name:    "output",
				Aliases: []string{"o"},
				Usage:   "Write the tree to a file instead of stdout",
			},
		},
		Action: parseCmd,
	}, &cli.Command{
		Name:      "fmt",
		Usage:     "Rewrite Pascal files in canonical form",
		Category:  "syntax",
		ArgsUsage: "[files...]",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:    "diff",
				Aliases: []string{"d"},
				Usage:   "Display a diff instead of writing files",
			},
		},
		Action: fmtCmd,
	}, &cli.Command{
		Name:      "check",
		Usage:     "Parse and analyze a Pascal file without building it",
		Category:  "syntax",
		ArgsUsage: "<file>",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "input-str",
				Aliases: []string{"s"},
				Usage:   "Check a string instead of a file",
			},
		},
		Action: checkCmd,
	}, &cli.Command{
		Name:     "grammar",
		Usage:    "Print the grammar accepted by the parser",
		Category: "syntax",
		Action: func(c *cli.Context) error {
			fmt.Fprint(c.App.Writer, parser.Grammar)
			return nil
		},
	})
}

// loadProgram parses -s or the first argument. Its errors are ready to
// be returned from an action.
func loadProgram(c *cli.Context) (*ast.Program, error) {
	var prog *ast.Program
	var err error
	if s := c.String("input-str"); s != "" {
		prog, err = parser.ParseString("", s)
	} else {
		filename := c.Args().First()
		if filename == "" {
			return nil, cli.Exit(color.RedString("Error: No file specified"), 1)
		}
		log.Println("parsing", filename)
		prog, err = parser.ParseFile(filename)
	}
	if err != nil {
		return nil, sourceError(err)
	}
	return prog, nil
}

func parseCmd(c *cli.Context) error {
	prog, err := loadProgram(c)
	if err != nil {
		return err
	}

	out := c.App.Writer
	if path := c.String("output"); path != "" {
		f, err := os.Create(path)
		if err != nil {
			return cli.Exit(color.RedString("Error creating AST dump file: %s", err), 1)
		}
		defer f.Close()
		out = f
	}

	switch c.String("format") {
	case "json":
		encoder := json.NewEncoder(out)
		encoder.SetIndent("", "  ")
		err = encoder.Encode(prog)
	case "yaml":
		encoder := yaml.NewEncoder(out)
		encoder.SetIndent(2)
		err = encoder.Encode(prog)
		if err == nil {
			err = encoder.Close()
		}
	default:
		return cli.Exit(color.RedString("Error: Unknown format %q, want json or yaml", c.String("format")), 1)
	}
	if err != nil {
		return cli.Exit(color.RedString("Error encoding AST: %s", err), 1)
	}
	return nil
}

func fmtCmd(c *cli.Context) error {
	if c.NArg() == 0 {
		src, err := io.ReadAll(c.App.Reader)
		if err != nil {
			return err
		}
		out, err := format.Source("<stdin>", string(src))
		if err != nil {
			return sourceError(err)
		}
		fmt.Fprint(c.App.Writer, out)
		return nil
	}

	failed := 0
	for _, path := range c.Args().Slice() {
		if err := fmtFile(c, path, c.Bool("diff")); err != nil {
			fmt.Fprintln(c.App.ErrWriter, color.RedString("Error formatting %s: %s", path, err))
			failed++
		}
	}
	if failed > 0 {
		return cli.Exit("", 1)
	}
	return nil
}

func fmtFile(c *cli.Context, path string, showDiff bool) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	original := string(data)
	result, err := format.Source(path, original)
	if err != nil {
		return err
	}

	if result == original {
		return nil
	}
	if showDiff {
		fmt.Fprintf(c.App.Writer, "--- %s\n+++ %s (formatted)\n", path, path)
		printDiff(c.App.Writer, original, result)
		return nil
	}

	log.Println("rewriting", path)
	return os.WriteFile(path, []byte(result), 0644)
}

// printDiff writes a line diff of a and b with -/+ markers.
func printDiff(w io.Writer, a, b string) {
	dmp := diffmatchpatch.New()
	ca, cb, lines := dmp.DiffLinesToChars(a, b)
	diffs := dmp.DiffCharsToLines(dmp.DiffMain(ca, cb, false), lines)

	for _, d := range diffs {
		marker := ""
		switch d.Type {
		case diffmatchpatch.DiffDelete:
			marker = "-"
		case diffmatchpatch.DiffInsert:
			marker = "+"
		default:
			continue
		}
		for _, line := range strings.SplitAfter(d.Text, "\n") {
			if line == "" {
				continue
			}
			fmt.Fprint(w, marker+strings.TrimSuffix(line, "\n")+"\n")
		}
	}
}

func checkCmd(c *cli.Context) error {
	prog, err := loadProgram(c)
	if err != nil {
		return err
	}

	info, err := analyzer.Analyze(prog)
	if err != nil {
		return sourceError(err)
	}
	warnUnused(c, info)

	fmt.Fprintln(c.App.Writer, color.GreenString("ok"))
	return nil
}

func warnUnused(c *cli.Context, info *analyzer.Info) {
	for _, sym := range info.Unused {
		pos := token.FormatPos(sym.Decl.Position())
		fmt.Fprintln(c.App.ErrWriter, color.YellowString("%s: %s declared and not used", pos, sym.Qualified))
	}
}
