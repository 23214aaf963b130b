// Package docs embeds the help topics of the ft command.
package docs

import (
	"embed"
	"fmt"
	"io/fs"
	"slices"
	"strings"
)

//go:embed *.md
var files embed.FS

// Index is the topic listing all the others.
const Index = "readme"

// Topic returns the content of a help topic. "*" stands for all the topics.
func Topic(name string) (string, error) {
	if name == "*" {
		return Topics(Names()...)
	}
	content, err := files.ReadFile(name + ".md")
	if err != nil {
		return "", fmt.Errorf("topic %q not found: %w", name, err)
	}
	return string(content), nil
}

// Topics returns the content of several topics, one after the other.
func Topics(names ...string) (string, error) {
	var b strings.Builder
	for _, name := range names {
		content, err := Topic(name)
		if err != nil {
			return "", err
		}
		b.WriteString(content)
		b.WriteString("\n")
	}
	return b.String(), nil
}

// Names returns the sorted names of the topics, the index excluded.
func Names() []string {
	entries, err := fs.ReadDir(files, ".")
	if err != nil {
		// the embedded root always exists
		panic(err)
	}
	var names []string
	for _, e := range entries {
		name, ok := strings.CutSuffix(e.Name(), ".md")
		if !ok || e.IsDir() || name == Index {
			continue
		}
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}
