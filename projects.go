package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/fatih/color"
	"github.com/go-git/go-git/v5"
	"github.com/urfave/cli/v2"
	"github.com/vyPal/pasc/lib/cache"
	"github.com/vyPal/pasc/lib/project"
	"github.com/vyPal/pasc/util"
)

const helloProgram = `PROGRAM Main;
VAR
  answer : INTEGER;

BEGIN
  answer := 6 * 7
END.
`

func init() {
	commands = append(commands, &cli.Command{
		Name:      "init",
		Usage:     "Initialize a new Pascal project",
		Category:  "project",
		ArgsUsage: "[dir]",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "name",
				Aliases: []string{"n"},
				Usage:   "The name of the project",
			},
			&cli.StringFlag{
				Name:    "version",
				Aliases: []string{"v"},
				Usage:   "The version of the project",
			},
			&cli.StringFlag{
				Name:    "main",
				Aliases: []string{"m"},
				Usage:   "The main file of the project",
			},
			&cli.StringFlag{
				Name:    "author",
				Aliases: []string{"a"},
				Usage:   "The author of the project",
			},
			&cli.StringFlag{
				Name:    "license",
				Aliases: []string{"l"},
				Usage:   "The license of the project",
			},
			&cli.BoolFlag{
				Name:    "yes",
				Aliases: []string{"y"},
				Usage:   "Accept the defaults without prompting",
			},
			&cli.BoolFlag{
				Name:  "no-git",
				Usage: "Do not create a git repository",
			},
		},
		Action: initProject,
	})
}

func initProject(c *cli.Context) error {
	rootDir := c.Args().First()
	if rootDir == "" {
		rootDir = "."
	}

	prompt := util.NewPrompter(c.App.Reader, c.App.Writer)
	project.Prompt = prompt
	yes := c.Bool("yes")
	out := c.App.Writer

	if _, err := os.Stat(rootDir); !os.IsNotExist(err) {
		files, err := os.ReadDir(rootDir)
		if err != nil {
			return err
		}

		if len(files) > 0 && !yes {
			if !prompt.PromptYN("The directory is not empty, continue?", false) {
				return nil
			}
		}
	} else {
		if err := os.MkdirAll(rootDir, 0755); err != nil {
			return err
		}

		fmt.Fprintln(out, "Created directory:", rootDir)
	}

	name := filepath.Base(rootDir)
	if abs, err := filepath.Abs(rootDir); err == nil {
		name = filepath.Base(abs)
	}

	conf := project.PasConf{}
	conf.CreateDefault(name)
	conf.Compiler.Requires = "^" + Version

	// flags win over both the defaults and the prompts
	fields := []struct {
		flag   string
		prompt string
		value  *string
	}{
		{"name", "Project name", &conf.Name},
		{"", "Project description", &conf.Description},
		{"version", "Project version", &conf.Version},
		{"main", "Main file", &conf.Main},
		{"author", "Author", &conf.Author},
		{"license", "License", &conf.License},
	}
	for _, f := range fields {
		switch {
		case f.flag != "" && c.IsSet(f.flag):
			*f.value = c.String(f.flag)
		case !yes:
			*f.value = prompt.PromptString(f.prompt, *f.value)
		}
	}
	if conf.Compiler.Output == name {
		conf.Compiler.Output = conf.Name
	}

	if err := conf.Validate(Version); err != nil {
		return cli.Exit(color.RedString("Error: %s", err), 1)
	}

	mainPath := filepath.Join(rootDir, conf.Main)
	if err := os.MkdirAll(filepath.Dir(mainPath), 0755); err != nil {
		return err
	}
	if _, err := os.Stat(mainPath); os.IsNotExist(err) {
		if err := os.WriteFile(mainPath, []byte(helloProgram), 0644); err != nil {
			return err
		}

		fmt.Fprintln(out, "Created file:", mainPath)
	}

	confPath := filepath.Join(rootDir, project.FileName)
	if err := conf.Save(confPath, yes); err != nil {
		return err
	}
	fmt.Fprintln(out, "Created file:", confPath)

	if !c.Bool("no-git") {
		if err := initGit(c, rootDir, conf.Compiler.Output); err != nil {
			return err
		}
	}

	fmt.Fprintln(out, "----------------------------------------")
	fmt.Fprintln(out, color.GreenString("Project initialized successfully!"))
	fmt.Fprintln(out, "Run 'cd", rootDir, "&& pasc build' to build the project.")
	fmt.Fprintln(out, "----------------------------------------")

	return nil
}

// initGit creates a repository in dir that ignores the build cache and
// the built binary.
func initGit(c *cli.Context, dir, output string) error {
	_, err := git.PlainInit(dir, false)
	if errors.Is(err, git.ErrRepositoryAlreadyExists) {
		fmt.Fprintln(c.App.ErrWriter, color.YellowString("%s is already a git repository", dir))
		return nil
	}
	if err != nil {
		return cli.Exit(color.RedString("Error initializing git repository: %s", err), 1)
	}
	fmt.Fprintln(c.App.Writer, "Initialized git repository in", dir)

	ignore := filepath.Join(dir, ".gitignore")
	if _, err := os.Stat(ignore); err == nil {
		return nil
	}
	content := cache.DirName + "/\n" + output + "\n" + output + ".ll\n"
	return os.WriteFile(ignore, []byte(content), 0644)
}
