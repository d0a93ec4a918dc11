// Package guide embeds the help pages shown by "pubd guide" and the
// pubd_guide MCP tool. guide.md is the index; every other page is a topic.
package guide

import (
	"embed"
	"fmt"
	"io/fs"
	"strings"
)

//go:embed *.md
var pages embed.FS

const index = "guide"

// UnknownTopicError is returned by Get for a page that does not exist.
type UnknownTopicError struct {
	Topic     string
	Available []string
}

func (e *UnknownTopicError) Error() string {
	return fmt.Sprintf("guide %q not found. Available: %s", e.Topic, strings.Join(e.Available, ", "))
}

// Get returns a page by topic, or the index for "".
func Get(topic string) (string, error) {
	name := topic
	if name == "" {
		name = index
	}
	data, err := pages.ReadFile(name + ".md")
	if err != nil {
		return "", &UnknownTopicError{Topic: topic, Available: List()}
	}
	return string(data), nil
}

// List returns the topics in lexical order.
func List() []string {
	files, _ := fs.Glob(pages, "*.md")
	topics := make([]string, 0, len(files))
	for _, f := range files {
		if t := strings.TrimSuffix(f, ".md"); t != index {
			topics = append(topics, t)
		}
	}
	return topics
}
