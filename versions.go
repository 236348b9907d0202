package main

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/fatih/color"
	"github.com/urfave/cli/v2"
)

const bashAutocomplete = `#! /bin/bash

_pasc_bash_autocomplete() {
  if [[ "${COMP_WORDS[0]}" != "source" ]]; then
    local cur opts
    COMPREPLY=()
    cur="${COMP_WORDS[COMP_CWORD]}"
    if [[ "$cur" == "-"* ]]; then
      opts=$( ${COMP_WORDS[@]:0:$COMP_CWORD} ${cur} --generate-bash-completion )
    else
      opts=$( ${COMP_WORDS[@]:0:$COMP_CWORD} --generate-bash-completion )
    fi
    COMPREPLY=( $(compgen -W "${opts}" -- ${cur}) )
    return 0
  fi
}

complete -o bashdefault -o default -o nospace -F _pasc_bash_autocomplete pasc
`

const zshAutocomplete = `#compdef pasc

_pasc_zsh_autocomplete() {
  local -a opts
  local cur
  cur=${words[-1]}
  if [[ "$cur" == "-"* ]]; then
    opts=("${(@f)$(${words[@]:0:#words[@]-1} ${cur} --generate-bash-completion)}")
  else
    opts=("${(@f)$(${words[@]:0:#words[@]-1} --generate-bash-completion)}")
  fi

  if [[ "${opts[1]}" != "" ]]; then
    _describe 'values' opts
  else
    _files
  fi
}

compdef _pasc_zsh_autocomplete pasc
`

func init() {
	commands = append(commands, &cli.Command{
		Name:     "version",
		Usage:    "Print the pasc version",
		Category: "version",
		Action: func(c *cli.Context) error {
			fmt.Fprintf(c.App.Writer, "pasc version %s %s/%s\n", c.App.Version, runtime.GOOS, runtime.GOARCH)
			return nil
		},
	})
	commands = append(commands, &cli.Command{
		Name:     "autocomplete",
		Usage:    "Install shell autocomplete for pasc",
		Category: "version",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "shell",
				Usage: "bash or zsh, defaults to $SHELL",
			},
			&cli.BoolFlag{
				Name:    "print",
				Aliases: []string{"p"},
				Usage:   "Print the script instead of installing it",
			},
		},
		Action: autocomplete,
	})
}

func autocomplete(c *cli.Context) error {
	shell := c.String("shell")
	if shell == "" {
		shell = filepath.Base(os.Getenv("SHELL"))
	}
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return err
	}

	var script, shellConfigFile string
	switch shell {
	case "bash":
		script = bashAutocomplete
		shellConfigFile = filepath.Join(homeDir, ".bashrc")
	case "zsh":
		script = zshAutocomplete
		shellConfigFile = filepath.Join(homeDir, ".zshrc")
	default:
		fmt.Fprintln(c.App.ErrWriter, color.YellowString("Unsupported shell %q for autocomplete. Skipping...", shell))
		return nil
	}

	if c.Bool("print") {
		fmt.Fprint(c.App.Writer, script)
		return nil
	}

	installDir := filepath.Join(homeDir, ".local", "share", "pasc")
	if err := os.MkdirAll(installDir, 0755); err != nil {
		return err
	}
	scriptPath := filepath.Join(installDir, "pasc_autocomplete."+shell)
	if err := os.WriteFile(scriptPath, []byte(script), 0644); err != nil {
		return err
	}

	file, err := os.OpenFile(shellConfigFile, os.O_RDWR|os.O_CREATE, 0644)
	if err != nil {
		return err
	}
	defer file.Close()

	sourceLine := fmt.Sprintf("source %s", scriptPath)
	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		if strings.Contains(scanner.Text(), sourceLine) {
			fmt.Fprintln(c.App.Writer, "Autocomplete script already installed.")
			return nil
		}
	}
	if err := scanner.Err(); err != nil {
		return err
	}

	// the scan left the offset at the end of the file
	if _, err := file.WriteString("\n" + sourceLine + "\n"); err != nil {
		return err
	}

	fmt.Fprintln(c.App.Writer, "Autocomplete script installed. It will be sourced automatically in new shell sessions.")
	fmt.Fprintln(c.App.Writer, "To source it in the current session, run:")
	fmt.Fprintf(c.App.Writer, "\tsource %s\n", strings.Replace(scriptPath, homeDir, "~", 1))
	return nil
}
