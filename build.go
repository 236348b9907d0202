package main

import (
	"bytes"
	"fmt"
	"log"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/fatih/color"
	"github.com/urfave/cli/v2"
	"github.com/vyPal/pasc/lib/analyzer"
	"github.com/vyPal/pasc/lib/cache"
	"github.com/vyPal/pasc/lib/compiler"
	"github.com/vyPal/pasc/lib/parser"
	"github.com/vyPal/pasc/lib/project"
)

func buildFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:    "config",
			Usage:   "The path to the project file or its directory",
			Aliases: []string{"c"},
		},
		&cli.StringFlag{
			Name:    "output",
			Aliases: []string{"o"},
			Usage:   "The name for the built binary",
		},
		&cli.BoolFlag{
			Name:  "emit-llvm",
			Usage: "Write LLVM IR to <output>.ll instead of linking",
		},
		&cli.StringFlag{
			Name:    "clang",
			Usage:   "The clang executable used for linking",
			EnvVars: []string{"PASC_CLANG"},
		},
		&cli.StringSliceFlag{
			Name:    "clang-args",
			Aliases: []string{"a"},
			Usage: "Pass additional arguments to clang. " +
				"Useful for passing flags like -O2 or -g.",
		},
		&cli.BoolFlag{
			Name:    "no-cache",
			Aliases: []string{"n"},
			Usage:   "Disables caching",
		},
		&cli.BoolFlag{
			Name:    "debug",
			Usage:   "Keep the intermediate IR and log build steps",
			Aliases: []string{"d"},
		},
	}
}

func init() {
	commands = append(commands, &cli.Command{
		Name:      "build",
		Usage:     "Build a Pascal file or project",
		Category:  "compile",
		ArgsUsage: "[file]",
		Flags:     buildFlags(),
		Action: func(c *cli.Context) error {
			_, err := build(c)
			return err
		},
	}, &cli.Command{
		Name:      "run",
		Usage:     "Build and run a Pascal file or project",
		Category:  "compile",
		ArgsUsage: "[file] [args...]",
		Flags:     buildFlags(),
		Action:    run,
	})
}

type target struct {
	src        string
	out        string
	projectDir string
	clang      string
	clangArgs  []string
}

// resolveTarget works out what to build: the file given on the command
// line, or the main file of the project found through --config or the
// working directory.
func resolveTarget(c *cli.Context) (target, error) {
	var t target

	if f := c.Args().First(); f != "" {
		t.src = f
		t.projectDir = filepath.Dir(f)
		t.out = strings.TrimSuffix(filepath.Base(f), filepath.Ext(f))
	} else {
		confPath := c.String("config")
		if confPath == "" {
			cwd, err := os.Getwd()
			if err != nil {
				return t, cli.Exit(color.RedString("Error getting current working directory: %s", err), 1)
			}
			confPath = cwd
		}

		conf, err := project.Load(confPath)
		if err != nil {
			return t, cli.Exit(color.RedString("Error reading project file: %s", err), 1)
		}
		if err := conf.Validate(Version); err != nil {
			return t, cli.Exit(color.RedString("Error in project file: %s", err), 1)
		}

		t.projectDir = project.Dir(confPath)
		t.src = filepath.Join(t.projectDir, conf.Main)
		t.out = conf.Compiler.Output
		if t.out == "" {
			t.out = conf.Name
		}
		t.out = filepath.Join(t.projectDir, t.out)
		t.clang = conf.Compiler.Clang
		t.clangArgs = conf.Compiler.ClangFlags
	}

	if o := c.String("output"); o != "" {
		t.out = o
	}
	if runtime.GOOS == "windows" && filepath.Ext(t.out) == "" && !c.Bool("emit-llvm") {
		t.out += ".exe"
	}
	if cl := c.String("clang"); cl != "" {
		t.clang = cl
	}
	if t.clang == "" {
		t.clang = "clang"
	}
	t.clangArgs = append(t.clangArgs, c.StringSlice("clang-args")...)
	return t, nil
}

// compileFile runs the whole front end and returns the module text.
func compileFile(path string) (string, *analyzer.Info, error) {
	log.Println("parsing", path)
	ast, err := parser.ParseFile(path)
	if err != nil {
		return "", nil, err
	}

	log.Println("analyzing", ast.Name)
	info, err := analyzer.Analyze(ast)
	if err != nil {
		return "", nil, err
	}

	log.Println("generating IR for", ast.Name)
	comp := compiler.NewCompiler()
	if err := comp.Compile(ast, info); err != nil {
		return "", nil, err
	}
	return comp.Module.String(), info, nil
}

func build(c *cli.Context) (string, error) {
	debug := c.Bool("debug")
	if debug {
		log.SetOutput(c.App.ErrWriter)
	}

	t, err := resolveTarget(c)
	if err != nil {
		return "", err
	}

	ir, info, err := compileFile(t.src)
	if err != nil {
		return "", sourceError(err)
	}
	warnUnused(c, info)

	if c.Bool("emit-llvm") {
		llPath := t.out
		if filepath.Ext(llPath) != ".ll" {
			llPath += ".ll"
		}
		if err := os.WriteFile(llPath, []byte(ir), 0644); err != nil {
			return "", cli.Exit(color.RedString("Error writing IR: %s", err), 1)
		}
		fmt.Fprintln(c.App.Writer, color.GreenString("Wrote %s", llPath))
		return llPath, nil
	}

	var proj *cache.Project
	var sum string
	if !c.Bool("no-cache") {
		proj, err = cache.CreateProject(t.projectDir)
		if err != nil {
			return "", err
		}
		sum, err = cache.FileSum(t.src, append([]string{Version, t.clang}, t.clangArgs...))
		if err != nil {
			return "", err
		}
		if proj.Fresh(t.src, t.out, sum) {
			fmt.Fprintln(c.App.Writer, color.GreenString("%s is up to date", t.out))
			return t.out, nil
		}
	}

	tmpDir, err := os.MkdirTemp("", "pasc")
	if err != nil {
		return "", err
	}
	if debug {
		log.Println("keeping build files in", tmpDir)
	} else {
		defer os.RemoveAll(tmpDir)
	}

	llPath := filepath.Join(tmpDir, strings.TrimSuffix(filepath.Base(t.src), filepath.Ext(t.src))+".ll")
	if err := os.WriteFile(llPath, []byte(ir), 0644); err != nil {
		return "", err
	}

	var stderr bytes.Buffer
	args := append([]string{llPath, "-o", t.out}, t.clangArgs...)
	log.Println(t.clang, strings.Join(args, " "))
	cmd := exec.CommandContext(c.Context, t.clang, args...)
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		log.Println("stderr:", stderr.String())
		return "", cli.Exit(color.RedString("Error linking with %s: %s\n%s", t.clang, err, stderr.String()), 1)
	}

	if proj != nil {
		if err := proj.SaveBuiltFiles([]cache.BuiltFile{{FilePath: t.src, ObjPath: t.out, Sum: sum}}); err != nil {
			return "", err
		}
	}
	fmt.Fprintln(c.App.Writer, color.GreenString("Built %s", t.out))
	return t.out, nil
}

func run(c *cli.Context) error {
	if c.Bool("emit-llvm") {
		return cli.Exit(color.RedString("Error: run cannot be combined with --emit-llvm"), 1)
	}
	outpath, err := build(c)
	if err != nil {
		return err
	}

	if !strings.Contains(outpath, string(filepath.Separator)) {
		outpath = "." + string(filepath.Separator) + outpath
	}

	cmd := exec.CommandContext(c.Context, outpath, c.Args().Tail()...)
	cmd.Stdout = c.App.Writer
	cmd.Stderr = c.App.ErrWriter
	cmd.Stdin = c.App.Reader
	err = cmd.Run()
	if err != nil {
		return cli.Exit(color.RedString("Error running binary: %s", err), 1)
	}

	return nil
}
