// Package cache remembers which sources were built with which flags so an
// unchanged build can skip the linker.
package cache

import (
	"bufio"
	"crypto/md5"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

const (
	DirName  = ".pasc"
	FileName = "pasc.sum"
)

type Project struct {
	Path    string
	ObjDir  string
	SumFile string
	files   map[string]BuiltFile
}

// BuiltFile is one line of the sum file: the md5 of a source and its
// build flags, and the binary built from it.
type BuiltFile struct {
	FilePath string
	ObjPath  string
	Sum      string
}

// CreateProject opens the cache of the project in dir, creating its
// directory when missing.
func CreateProject(dir string) (*Project, error) {
	p := &Project{
		Path:   dir,
		ObjDir: filepath.Join(dir, DirName),
		files:  make(map[string]BuiltFile),
	}
	p.SumFile = filepath.Join(p.ObjDir, FileName)

	if err := os.MkdirAll(p.ObjDir, 0755); err != nil {
		return nil, err
	}

	f, err := os.Open(p.SumFile)
	if os.IsNotExist(err) {
		return p, nil
	}
	if err != nil {
		return nil, err
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	for line := 1; scanner.Scan(); line++ {
		fields := strings.Split(scanner.Text(), "\t")
		if len(fields) != 3 {
			return nil, fmt.Errorf("%s:%d: malformed entry", p.SumFile, line)
		}
		p.files[fields[1]] = BuiltFile{Sum: fields[0], FilePath: fields[1], ObjPath: fields[2]}
	}
	return p, scanner.Err()
}

// FileSum hashes the contents of path together with the flags it is
// built with.
func FileSum(path string, flags []string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	h := md5.New()
	if _, err := io.Copy(h, f); err != nil {
		return "", err
	}
	for _, flag := range flags {
		io.WriteString(h, "\x00"+flag)
	}
	return fmt.Sprintf("%x", h.Sum(nil)), nil
}

// Fresh reports whether out was built from a source whose sum is still
// sum and out still exists.
func (p *Project) Fresh(src, out, sum string) bool {
	bf, ok := p.files[src]
	if !ok || bf.Sum != sum || bf.ObjPath != out {
		return false
	}
	_, err := os.Stat(out)
	return err == nil
}

// SaveBuiltFiles records files and rewrites the sum file.
func (p *Project) SaveBuiltFiles(files []BuiltFile) error {
	for _, bf := range files {
		p.files[bf.FilePath] = bf
	}

	keys := make([]string, 0, len(p.files))
	for k := range p.files {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var b strings.Builder
	for _, k := range keys {
		bf := p.files[k]
		fmt.Fprintf(&b, "%s\t%s\t%s\n", bf.Sum, bf.FilePath, bf.ObjPath)
	}
	return os.WriteFile(p.SumFile, []byte(b.String()), 0644)
}
