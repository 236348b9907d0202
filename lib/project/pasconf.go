package project

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/vyPal/pasc/util"
	"gopkg.in/yaml.v3"
)

// FileName is the project file looked up in a project directory.
const FileName = "pasconf.yaml"

type PasConf struct {
	Name        string          `yaml:"name"`
	Description string          `yaml:"description"`
	Version     string          `yaml:"version"`
	Main        string          `yaml:"main"`
	Author      string          `yaml:"author"`
	License     string          `yaml:"license"`
	Compiler    PasConfCompiler `yaml:"compiler"`
}

type PasConfCompiler struct {
	Clang      string   `yaml:"clang,omitempty"`
	ClangFlags []string `yaml:"clangFlags,omitempty"`
	Output     string   `yaml:"output,omitempty"`
	Requires   string   `yaml:"requires,omitempty"`
}

// Prompt answers the overwrite question in Save.
var Prompt = util.Stdio

func (c *PasConf) CreateDefault(name string) {
	if name == "." || name == "" {
		name = "NewProject"
	}
	c.Name = name
	c.Description = "A new Pascal project"
	c.Version = "0.1.0"
	c.Main = "src/main.pas"
	c.Author = "Anonymous"
	c.License = "MIT"
	c.Compiler.Output = name
}

// Save writes c to path. An existing file is replaced only when overwrite
// is set or the user agrees to it.
func (c *PasConf) Save(path string, overwrite bool) error {
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		if !overwrite && !Prompt.PromptYN(path+" already exists. Overwrite?", false) {
			return nil
		}
	}

	yml, err := yaml.Marshal(c)
	if err != nil {
		return err
	}

	return os.WriteFile(path, yml, 0644)
}

// Load reads the project file in dir. dir may also name the file itself.
func Load(dir string) (PasConf, error) {
	var conf PasConf

	path := dir
	if filepath.Base(path) != FileName {
		path = filepath.Join(dir, FileName)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return PasConf{}, err
	}

	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&conf); err != nil {
		return PasConf{}, fmt.Errorf("%s: %w", path, err)
	}

	return conf, nil
}

// Validate checks that the project version is well formed and that the
// running compiler satisfies compiler.requires.
func (c PasConf) Validate(pascVersion string) error {
	if c.Main == "" {
		return errors.New("main is not set")
	}
	if _, err := util.Parse(c.Version); err != nil {
		return fmt.Errorf("version: %w", err)
	}
	if c.Compiler.Requires == "" {
		return nil
	}

	current, err := util.Parse(pascVersion)
	if err != nil {
		return fmt.Errorf("pasc version: %w", err)
	}
	ok, err := current.Satisfies(c.Compiler.Requires)
	if err != nil {
		return fmt.Errorf("compiler.requires: %w", err)
	}
	if !ok {
		return fmt.Errorf("project requires pasc %s, have %s", c.Compiler.Requires, pascVersion)
	}
	return nil
}

// Dir returns the directory that holds path when path names the project
// file, or path itself.
func Dir(path string) string {
	if filepath.Base(path) == FileName {
		return filepath.Dir(path)
	}
	return path
}
