// Package main contains Mage build targets for plagiarism-detector developer tooling.
package main

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/magefile/mage/mg"
	"github.com/magefile/mage/sh"
)

// projectDirs lists the working directories the CLI expects.
var projectDirs = []string{
	".secrets",
	".plagiarism-detector",
	"testdata",
}

// Init creates the working directories and an example fixture file for the
// offline search provider.
func Init() error {
	for _, dir := range projectDirs {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("creating %s: %w", dir, err)
		}
		fmt.Println("  ", dir)
	}
	if err := os.Chmod(".secrets", 0o700); err != nil {
		return fmt.Errorf("restricting .secrets: %w", err)
	}

	fixture := filepath.Join("testdata", "fixture.yaml")
	if _, err := os.Stat(fixture); os.IsNotExist(err) {
		if err := os.WriteFile(fixture, []byte(exampleFixture), 0o644); err != nil {
			return fmt.Errorf("writing %s: %w", fixture, err)
		}
		fmt.Println("  ", fixture)
	}
	fmt.Println("Project directories initialized. Put google-api-key and google-cse-id in .secrets/.")
	return nil
}

const exampleFixture = `rules:
  - match: "quick brown fox"
    items:
      - link: https://example.com/fox
        title: The Quick Brown Fox
        snippet: The quick brown fox jumps over the lazy dog.
`

const (
	binDir  = "bin"
	binName = "plagiarism-detector"
	cmdPkg  = "./cmd/plagiarism-detector"
)

// Build compiles the CLI binary into bin/, stamping the version from
// $VERSION (default "dev").
func Build() error {
	mg.Deps(Vet)
	if err := os.MkdirAll(binDir, 0o755); err != nil {
		return fmt.Errorf("creating %s: %w", binDir, err)
	}
	version := os.Getenv("VERSION")
	if version == "" {
		version = "dev"
	}
	out := filepath.Join(binDir, binName)
	if err := sh.RunV("go", "build", "-ldflags", "-X main.version="+version, "-o", out, cmdPkg); err != nil {
		return fmt.Errorf("go build: %w", err)
	}
	fmt.Printf("Built %s\n", out)
	return nil
}

// Test runs the unit tests with the race detector.
func Test() error {
	return sh.RunV("go", "test", "-race", "./...")
}

// Vet runs go vet over every package.
func Vet() error {
	return sh.RunV("go", "vet", "./...")
}

// Clean removes build output.
func Clean() error {
	return sh.Rm(binDir)
}

// Stats prints non-blank Go line counts per top-level directory, split into
// production and test code, plus the word count of the Markdown documents.
func Stats() error {
	counts, err := countGoLines(".")
	if err != nil {
		return err
	}

	dirs := make([]string, 0, len(counts))
	for d := range counts {
		dirs = append(dirs, d)
	}
	sort.Strings(dirs)

	var prod, test int
	fmt.Printf("%-12s %8s %8s\n", "dir", "prod", "test")
	for _, d := range dirs {
		c := counts[d]
		fmt.Printf("%-12s %8d %8d\n", d, c.prod, c.test)
		prod += c.prod
		test += c.test
	}
	fmt.Printf("%-12s %8d %8d\n", "total", prod, test)

	words, err := countDocWords(".")
	if err != nil {
		return err
	}
	fmt.Printf("Words (Markdown): %d\n", words)
	return nil
}

type lineCount struct{ prod, test int }

// skipDirs are never counted.
var skipDirs = map[string]bool{".git": true, "_examples": true, "bin": true, "vendor": true}

// countGoLines counts non-blank lines of .go files under root, keyed by the
// first path element.
func countGoLines(root string) (map[string]lineCount, error) {
	counts := map[string]lineCount{}
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if skipDirs[d.Name()] {
				return filepath.SkipDir
			}
			return nil
		}
		if filepath.Ext(path) != ".go" {
			return nil
		}
		data, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("reading %s: %w", path, err)
		}
		n := 0
		for _, line := range strings.Split(string(data), "\n") {
			if strings.TrimSpace(line) != "" {
				n++
			}
		}

		top := strings.SplitN(filepath.ToSlash(path), "/", 2)[0]
		c := counts[top]
		if strings.HasSuffix(path, "_test.go") {
			c.test += n
		} else {
			c.prod += n
		}
		counts[top] = c
		return nil
	})
	return counts, err
}

// countDocWords counts whitespace-separated words in .md files under root.
func countDocWords(root string) (int, error) {
	total := 0
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if skipDirs[d.Name()] {
				return filepath.SkipDir
			}
			return nil
		}
		if filepath.Ext(path) != ".md" {
			return nil
		}
		data, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("reading %s: %w", path, err)
		}
		total += len(strings.Fields(string(data)))
		return nil
	})
	return total, err
}
