package main

import (
	"fmt"
	"go/parser"
	"go/token"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

const modulePath = "venuenouveau"

// Third-party packages the domain layer may use: pure text handling only.
var domainThirdParty = []string{
	"golang.org/x/text",
}

type violation struct {
	File   string
	Line   int
	Import string
	Rule   string
}

func (v violation) String() string {
	return fmt.Sprintf("%s:%d imports %q (%s)", v.File, v.Line, v.Import, v.Rule)
}

func main() {
	root := "contexts"
	if len(os.Args) > 1 {
		root = os.Args[1]
	}
	violations, err := collectViolations(root)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	if len(violations) == 0 {
		fmt.Println("boundary checks passed")
		return
	}
	fmt.Println("boundary violations found:")
	for _, v := range violations {
		fmt.Println("- " + v.String())
	}
	os.Exit(1)
}

// collectViolations walks root laid out as <context>/<service>/<layer>/...
// and checks every non-test Go file against the layer rules.
func collectViolations(root string) ([]violation, error) {
	var violations []violation
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		if d.IsDir() || !strings.HasSuffix(path, ".go") || strings.HasSuffix(path, "_test.go") {
			return nil
		}
		rel, err := filepath.Rel(root, path)
		if err != nil {
			return err
		}
		parts := strings.Split(filepath.ToSlash(rel), "/")
		if len(parts) < 3 {
			return nil
		}
		service := fmt.Sprintf("%s/contexts/%s/%s", modulePath, parts[0], parts[1])
		display := "contexts/" + filepath.ToSlash(rel)
		violations = append(violations, checkFile(path, display, parts[2], service)...)
		return nil
	})
	if err != nil {
		return nil, err
	}

	sort.Slice(violations, func(i, j int) bool {
		a, b := violations[i], violations[j]
		if a.File != b.File {
			return a.File < b.File
		}
		if a.Line != b.Line {
			return a.Line < b.Line
		}
		return a.Import < b.Import
	})
	return violations, nil
}

func checkFile(path, display, layer, service string) []violation {
	fset := token.NewFileSet()
	file, err := parser.ParseFile(fset, path, nil, parser.ImportsOnly)
	if err != nil {
		return []violation{{File: display, Line: 1, Rule: "file must parse"}}
	}

	var out []violation
	for _, spec := range file.Imports {
		importPath := strings.Trim(spec.Path.Value, `"`)
		line := fset.Position(spec.Pos()).Line
		report := func(rule string) {
			out = append(out, violation{File: display, Line: line, Import: importPath, Rule: rule})
		}

		if strings.HasPrefix(importPath, modulePath+"/contexts/") && !within(importPath, service) {
			report("cross-module imports are forbidden")
		}

		switch layer {
		case "domain":
			checkInnerLayer(importPath, "domain", []string{service + "/domain"}, domainThirdParty, report)
		case "application":
			checkInnerLayer(importPath, "application", []string{
				service + "/application",
				service + "/domain",
				service + "/ports",
				modulePath + "/contracts",
			}, nil, report)
		}
	}
	return out
}

func checkInnerLayer(importPath, layer string, local, thirdParty []string, report func(string)) {
	if strings.Contains(importPath, "/adapters/") {
		report(layer + " must not import adapters")
	}
	if within(importPath, modulePath+"/internal") || within(importPath, modulePath+"/cmd") {
		report(layer + " must not import runtime infrastructure")
	}
	if isStdlib(importPath) || withinAny(importPath, local) || withinAny(importPath, thirdParty) {
		return
	}
	report(layer + " import is outside explicit allowlist")
}

func within(path, prefix string) bool {
	return path == prefix || strings.HasPrefix(path, prefix+"/")
}

func withinAny(path string, prefixes []string) bool {
	for _, prefix := range prefixes {
		if within(path, prefix) {
			return true
		}
	}
	return false
}

func isStdlib(importPath string) bool {
	if within(importPath, modulePath) {
		return false
	}
	first, _, _ := strings.Cut(importPath, "/")
	return !strings.Contains(first, ".")
}
