package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/fatih/color"
	"github.com/urfave/cli/v2"
	"github.com/vyPal/pasc/lib/project"
	"gopkg.in/yaml.v3"
)

// runApp runs pasc with args and returns what it wrote.
func runApp(t *testing.T, stdin string, args ...string) (string, string, error) {
	t.Helper()
	color.NoColor = true
	var stdout, stderr bytes.Buffer
	app := newApp()
	app.Reader = strings.NewReader(stdin)
	app.Writer = &stdout
	app.ErrWriter = &stderr
	app.ExitErrHandler = func(*cli.Context, error) {}

	err := app.Run(append([]string{"pasc"}, args...))
	return stdout.String(), stderr.String(), err
}

func writeSource(t *testing.T, dir, name, src string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(src), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestGrammarCommand(t *testing.T) {
	out, _, err := runApp(t, "", "grammar")
	if err != nil {
		t.Fatalf("grammar: %v", err)
	}
	for _, rule := range []string{"program", "compound_statement", "factor"} {
		if !strings.Contains(out, rule) {
			t.Errorf("grammar output is missing %s", rule)
		}
	}
}

func TestParseCommand(t *testing.T) {
	src := "PROGRAM P; VAR a : INTEGER; BEGIN a := 1 + 2 END."

	out, _, err := runApp(t, "", "parse", "-s", src)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	var tree map[string]any
	if err := json.Unmarshal([]byte(out), &tree); err != nil {
		t.Fatalf("output is not JSON: %v\n%s", err, out)
	}
	if tree["node"] != "Program" || tree["name"] != "P" {
		t.Errorf("tree = %v", tree)
	}

	out, _, err = runApp(t, "", "parse", "-f", "yaml", "-s", src)
	if err != nil {
		t.Fatalf("parse -f yaml: %v", err)
	}
	tree = nil
	if err := yaml.Unmarshal([]byte(out), &tree); err != nil {
		t.Fatalf("output is not YAML: %v\n%s", err, out)
	}
	if tree["name"] != "P" {
		t.Errorf("tree = %v", tree)
	}

	if _, _, err := runApp(t, "", "parse", "-f", "xml", "-s", src); err == nil {
		t.Error("expected an error for an unknown format")
	}
}

func TestParseCommandToFile(t *testing.T) {
	dir := t.TempDir()
	path := writeSource(t, dir, "p.pas", "PROGRAM P; BEGIN END.")
	dump := filepath.Join(dir, "p.json")

	if _, _, err := runApp(t, "", "parse", "-o", dump, path); err != nil {
		t.Fatalf("parse: %v", err)
	}
	data, err := os.ReadFile(dump)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), `"Program"`) {
		t.Errorf("dump = %s", data)
	}
}

func TestParseCommandErrors(t *testing.T) {
	tests := []struct {
		name string
		args []string
		msg  string
	}{
		{"no input", []string{"parse"}, "No file specified"},
		{"syntax", []string{"parse", "-s", "PROGRAM P; BEGIN a := END."}, "1:23"},
		{"lexical", []string{"parse", "-s", "PROGRAM P; BEGIN a := 1 ? END."}, "?"},
		{"missing file", []string{"parse", "does-not-exist.pas"}, "does-not-exist.pas"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := runApp(t, "", tt.args...)
			if err == nil {
				t.Fatal("expected an error")
			}
			exit, ok := err.(cli.ExitCoder)
			if !ok || exit.ExitCode() != 1 {
				t.Fatalf("err = %#v, want exit code 1", err)
			}
			if !strings.Contains(err.Error(), tt.msg) {
				t.Errorf("error %q does not mention %q", err, tt.msg)
			}
		})
	}
}

func TestCheckCommand(t *testing.T) {
	out, stderr, err := runApp(t, "", "check", "-s", "PROGRAM P; VAR a, b : INTEGER; BEGIN a := 1 END.")
	if err != nil {
		t.Fatalf("check: %v", err)
	}
	if strings.TrimSpace(out) != "ok" {
		t.Errorf("stdout = %q, want ok", out)
	}
	if !strings.Contains(stderr, "P.b declared and not used") {
		t.Errorf("stderr = %q, want an unused warning for b", stderr)
	}

	_, _, err = runApp(t, "", "check", "-s", "PROGRAM P; BEGIN a := 1 END.")
	if err == nil || !strings.Contains(err.Error(), "undeclared variable a") {
		t.Errorf("err = %v, want undeclared variable a", err)
	}
}

func TestFmtCommand(t *testing.T) {
	dir := t.TempDir()
	messy := "program p; var x:integer; begin x:=1 end."
	want := "PROGRAM p;\nVAR\n  x : INTEGER;\n\nBEGIN\n  x := 1\nEND.\n"
	path := writeSource(t, dir, "p.pas", messy)

	out, _, err := runApp(t, "", "fmt", "-d", path)
	if err != nil {
		t.Fatalf("fmt -d: %v", err)
	}
	if !strings.Contains(out, "-program p;") || !strings.Contains(out, "+  x := 1") {
		t.Errorf("diff output:\n%s", out)
	}
	if data, _ := os.ReadFile(path); string(data) != messy {
		t.Error("fmt -d must not rewrite the file")
	}

	if _, _, err := runApp(t, "", "fmt", path); err != nil {
		t.Fatalf("fmt: %v", err)
	}
	if data, _ := os.ReadFile(path); string(data) != want {
		t.Errorf("formatted file:\n%s\nwant:\n%s", data, want)
	}

	// formatted files produce no diff
	out, _, err = runApp(t, "", "fmt", "-d", path)
	if err != nil || out != "" {
		t.Errorf("second fmt -d = %q, %v", out, err)
	}
}

func TestFmtStdin(t *testing.T) {
	out, _, err := runApp(t, "program p; begin end.", "fmt")
	if err != nil {
		t.Fatalf("fmt: %v", err)
	}
	if out != "PROGRAM p;\nBEGIN\nEND.\n" {
		t.Errorf("stdout = %q", out)
	}
}

func TestFmtReportsBadFiles(t *testing.T) {
	dir := t.TempDir()
	good := writeSource(t, dir, "good.pas", "PROGRAM P; BEGIN END.")
	bad := writeSource(t, dir, "bad.pas", "PROGRAM P; BEGIN")

	_, stderr, err := runApp(t, "", "fmt", good, bad)
	if err == nil {
		t.Fatal("expected an error")
	}
	if !strings.Contains(stderr, "bad.pas") || strings.Contains(stderr, "good.pas") {
		t.Errorf("stderr = %q", stderr)
	}
}

func TestBuildEmitLLVM(t *testing.T) {
	dir := t.TempDir()
	src := writeSource(t, dir, "sum.pas", "PROGRAM Sum; VAR a : INTEGER; BEGIN a := 2 + 3 END.")
	out := filepath.Join(dir, "sum")

	stdout, _, err := runApp(t, "", "build", "--emit-llvm", "-o", out, src)
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	if !strings.Contains(stdout, "sum.ll") {
		t.Errorf("stdout = %q", stdout)
	}

	ir, err := os.ReadFile(out + ".ll")
	if err != nil {
		t.Fatal(err)
	}
	for _, want := range []string{"define i32 @main()", "@Sum.a", "@printf"} {
		if !strings.Contains(string(ir), want) {
			t.Errorf("IR is missing %q:\n%s", want, ir)
		}
	}
}

func TestBuildReportsSourceErrors(t *testing.T) {
	dir := t.TempDir()
	src := writeSource(t, dir, "bad.pas", "PROGRAM P; VAR a : INTEGER; BEGIN a := 1.5 END.")

	_, _, err := runApp(t, "", "build", "--emit-llvm", src)
	if err == nil || !strings.Contains(err.Error(), "cannot assign REAL value to INTEGER variable a") {
		t.Errorf("err = %v", err)
	}
}

func TestInitAndBuildProject(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "hello")

	if _, _, err := runApp(t, "", "init", "--yes", "--no-git", dir); err != nil {
		t.Fatalf("init: %v", err)
	}

	conf, err := project.Load(dir)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if conf.Name != "hello" || conf.Main != "src/main.pas" || conf.Compiler.Requires != "^"+Version {
		t.Errorf("conf = %+v", conf)
	}
	if _, err := os.Stat(filepath.Join(dir, ".git")); !os.IsNotExist(err) {
		t.Error("--no-git created a repository")
	}

	// the generated program is already in canonical form
	out, _, err := runApp(t, "", "fmt", "-d", filepath.Join(dir, "src", "main.pas"))
	if err != nil || out != "" {
		t.Errorf("fmt -d = %q, %v", out, err)
	}

	if _, _, err := runApp(t, "", "build", "--emit-llvm", "-c", dir); err != nil {
		t.Fatalf("build: %v", err)
	}
	if _, err := os.Stat(filepath.Join(dir, "hello.ll")); err != nil {
		t.Errorf("build did not write hello.ll: %v", err)
	}
}

func TestInitFlagsAndPrompts(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "proj")

	// name comes from the flag, the rest from answers and defaults
	answers := "A calculator\n\n\nAda\n\n"
	if _, _, err := runApp(t, answers, "init", "--no-git", "--name", "calc", dir); err != nil {
		t.Fatalf("init: %v", err)
	}

	conf, err := project.Load(dir)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if conf.Name != "calc" || conf.Description != "A calculator" || conf.Author != "Ada" ||
		conf.Version != "0.1.0" || conf.License != "MIT" || conf.Compiler.Output != "calc" {
		t.Errorf("conf = %+v", conf)
	}
}

func TestInitGit(t *testing.T) {
	dir := t.TempDir()

	if _, _, err := runApp(t, "", "init", "--yes", dir); err != nil {
		t.Fatalf("init: %v", err)
	}
	if _, err := os.Stat(filepath.Join(dir, ".git")); err != nil {
		t.Errorf("no repository: %v", err)
	}
	ignore, err := os.ReadFile(filepath.Join(dir, ".gitignore"))
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(ignore), ".pasc/") {
		t.Errorf(".gitignore = %q", ignore)
	}

	_, stderr, err := runApp(t, "", "init", "--yes", dir)
	if err != nil {
		t.Fatalf("second init: %v", err)
	}
	if !strings.Contains(stderr, "already a git repository") {
		t.Errorf("stderr = %q", stderr)
	}
}

func TestBuildRejectsUnsatisfiedRequires(t *testing.T) {
	dir := t.TempDir()
	conf := project.PasConf{}
	conf.CreateDefault("old")
	conf.Compiler.Requires = ">=99.0.0"
	if err := conf.Save(filepath.Join(dir, project.FileName), true); err != nil {
		t.Fatal(err)
	}

	_, _, err := runApp(t, "", "build", "--emit-llvm", "-c", dir)
	if err == nil || !strings.Contains(err.Error(), "requires pasc") {
		t.Errorf("err = %v", err)
	}
}

func TestVersionCommand(t *testing.T) {
	out, _, err := runApp(t, "", "version")
	if err != nil {
		t.Fatalf("version: %v", err)
	}
	if !strings.HasPrefix(out, "pasc version "+Version+" ") {
		t.Errorf("stdout = %q", out)
	}
}

func TestAutocompletePrint(t *testing.T) {
	out, _, err := runApp(t, "", "autocomplete", "--shell", "zsh", "-p")
	if err != nil {
		t.Fatalf("autocomplete: %v", err)
	}
	if !strings.HasPrefix(out, "#compdef pasc") {
		t.Errorf("stdout = %q", out)
	}
}

func TestAutocompleteInstall(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	for i := 0; i < 2; i++ {
		if _, _, err := runApp(t, "", "autocomplete", "--shell", "bash"); err != nil {
			t.Fatalf("autocomplete: %v", err)
		}
	}
	rc, err := os.ReadFile(filepath.Join(home, ".bashrc"))
	if err != nil {
		t.Fatal(err)
	}
	if n := strings.Count(string(rc), "source "); n != 1 {
		t.Errorf(".bashrc has %d source lines, want 1:\n%s", n, rc)
	}
}
