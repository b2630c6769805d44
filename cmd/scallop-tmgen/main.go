package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/scallop-lang/scallop-lsp/internal/lang"
)

type tmLanguage struct {
	Schema    string                 `json:"$schema"`
	Name      string                 `json:"name"`
	ScopeName string                 `json:"scopeName"`
	FileTypes []string               `json:"fileTypes"`
	Patterns  []map[string]string    `json:"patterns"`
	Repo      map[string]interface{} `json:"repository"`
}

type tmPattern struct {
	Name  string `json:"name,omitempty"`
	Match string `json:"match,omitempty"`
	Begin string `json:"begin,omitempty"`
	End   string `json:"end,omitempty"`

	Captures map[string]tmCapture `json:"captures,omitempty"`
	Patterns []tmPattern          `json:"patterns,omitempty"`
}

type tmCapture struct {
	Name string `json:"name"`
}

type tmRepositoryEntry struct {
	Patterns []tmPattern `json:"patterns"`
}

var output = flag.String("output", "vscode/syntaxes/scallop.tmLanguage.json", "output grammar file path")

func main() {
	flag.Parse()

	fileTypes := make([]string, 0, len(lang.FileExtensions))
	for _, ext := range lang.FileExtensions {
		fileTypes = append(fileTypes, strings.TrimPrefix(ext, "."))
	}

	g := tmLanguage{
		Schema:    "https://raw.githubusercontent.com/martinring/tmlanguage/master/tmlanguage.json",
		Name:      "Scallop",
		ScopeName: "source.scallop",
		FileTypes: fileTypes,
		Patterns: []map[string]string{
			{"include": "#comments"},
			{"include": "#attributes"},
			{"include": "#relation-name"},
			{"include": "#type-name"},
			{"include": "#constants"},
			{"include": "#keywords"},
			{"include": "#types"},
			{"include": "#aggregators"},
			{"include": "#numbers"},
			{"include": "#strings"},
			{"include": "#chars"},
			{"include": "#operators"},
		},
		Repo: map[string]interface{}{
			"comments": tmRepositoryEntry{Patterns: []tmPattern{
				{Name: "comment.line.double-slash.scallop", Match: lang.LineComment + ".*$"},
				{Name: "comment.block.scallop", Begin: `/\*`, End: `\*/`},
			}},
			"attributes": tmRepositoryEntry{Patterns: []tmPattern{
				{Name: "support.function.attribute.scallop", Match: `@[A-Za-z_][A-Za-z0-9_]*`},
			}},
			// The two dynamic extractions: names an author declares get
			// their own scope instead of the generic identifier color.
			"relation-name": tmRepositoryEntry{Patterns: []tmPattern{
				{
					Match: `\b(rel|relation|query)\s+([A-Za-z_][A-Za-z0-9_]*)`,
					Captures: map[string]tmCapture{
						"1": {Name: "keyword.control.scallop"},
						"2": {Name: "entity.name.function.relation.scallop"},
					},
				},
			}},
			"type-name": tmRepositoryEntry{Patterns: []tmPattern{
				{
					Match: `\b(type)\s+([A-Za-z_][A-Za-z0-9_]*)`,
					Captures: map[string]tmCapture{
						"1": {Name: "keyword.control.scallop"},
						"2": {Name: "entity.name.type.scallop"},
					},
				},
			}},
			"constants": tmRepositoryEntry{Patterns: []tmPattern{
				{Name: "constant.language.scallop", Match: wordRegex(lang.Constants)},
			}},
			"keywords": tmRepositoryEntry{Patterns: []tmPattern{
				{Name: "keyword.control.scallop", Match: wordRegex(lang.Keywords())},
			}},
			"types": tmRepositoryEntry{Patterns: []tmPattern{
				{Name: "storage.type.scallop", Match: wordRegex(lang.Types)},
			}},
			"aggregators": tmRepositoryEntry{Patterns: []tmPattern{
				{Name: "support.function.aggregate.scallop", Match: wordRegex(lang.Aggregators)},
			}},
			"numbers": tmRepositoryEntry{Patterns: []tmPattern{
				{Name: "constant.numeric.scallop", Match: `\b\d+(?:\.\d+)?\b`},
			}},
			"strings": tmRepositoryEntry{Patterns: []tmPattern{
				{
					Name:  "string.quoted.double.scallop",
					Begin: `"`,
					End:   `"`,
					Patterns: []tmPattern{
						{Name: "constant.character.escape.scallop", Match: `\\.`},
					},
				},
			}},
			"chars": tmRepositoryEntry{Patterns: []tmPattern{
				{Name: "string.quoted.single.scallop", Match: `'(?:\\.|[^'\n])'`},
			}},
			"operators": tmRepositoryEntry{Patterns: []tmPattern{
				{Name: "keyword.operator.scallop", Match: joinRegexAlternation(lang.Operators)},
			}},
		},
	}

	var sb strings.Builder
	enc := json.NewEncoder(&sb)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(g); err != nil {
		fatalf("marshal grammar: %v", err)
	}
	b := []byte(sb.String())

	outPath := *output
	if !filepath.IsAbs(outPath) {
		wd, err := os.Getwd()
		if err != nil {
			fatalf("getwd: %v", err)
		}
		outPath = filepath.Join(wd, outPath)
	}
	if err := os.MkdirAll(filepath.Dir(outPath), 0o755); err != nil {
		fatalf("mkdir output dir: %v", err)
	}
	if err := os.WriteFile(outPath, b, 0o644); err != nil {
		fatalf("write grammar: %v", err)
	}
}

func wordRegex(words []string) string {
	if len(words) == 0 {
		return `\b\B`
	}
	return `\b(?:` + joinRegexAlternation(words) + `)\b`
}

func joinRegexAlternation(words []string) string {
	escaped := make([]string, 0, len(words))
	for _, w := range words {
		escaped = append(escaped, regexp.QuoteMeta(w))
	}
	return strings.Join(escaped, "|")
}

func fatalf(format string, args ...interface{}) {
	_, _ = fmt.Fprintf(os.Stderr, "scallop-tmgen: "+format+"\n", args...)
	os.Exit(1)
}
