package config

import (
	"bufio"
	"io"
	"regexp"
	"strings"

	"github.com/CaioVieiraF/olt-access/command"
	"github.com/CaioVieiraF/olt-access/types"
)

var fieldPattern = regexp.MustCompile(`!<(?P<name>[^>]*)>`)

// subtree terminator
const endMarker = "$"

// indentUnit is the width of one nesting level.
const indentUnit = "  "

// Parse reads a dump. A "!<name>" line opens a field and "!</name>" closes
// it; inside a field each two-space indentation group is one nesting level,
// and a line at depth d becomes the last child of the last node at depth d-1.
// Lines outside any field go to DefaultField. A line indented deeper than
// the tree allows attaches to the deepest node available. Reopening a field
// appends to it.
func Parse(r io.Reader) (*Config, error) {
	c := New()
	current := DefaultField

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 64*1024), 1024*1024)
	for scanner.Scan() {
		line := strings.TrimRight(scanner.Text(), "\r")
		text := strings.TrimSpace(line)
		if text == "" || text == endMarker {
			continue
		}

		if m := fieldPattern.FindStringSubmatch(line); m != nil {
			name := m[fieldPattern.SubexpIndex("name")]
			if strings.HasPrefix(name, "/") {
				current = DefaultField
			} else {
				current = Field(name)
				c.Ensure(current)
			}
			continue
		}

		c.attach(current, depth(line), command.Leaf(command.New(text)))
	}
	if err := scanner.Err(); err != nil {
		return nil, types.Wrap(types.KindIO, "read config", err)
	}
	return c, nil
}

func depth(line string) int {
	n := 0
	for strings.HasPrefix(line[n*len(indentUnit):], indentUnit) {
		n++
	}
	return n
}

func (c *Config) attach(f Field, level int, node command.NestedCommand) {
	trees := c.trees[f]
	if level == 0 || len(trees) == 0 {
		c.Append(f, node)
		return
	}

	parent := &trees[len(trees)-1]
	for i := 1; i < level; i++ {
		last := parent.LastChild()
		if last == nil {
			break
		}
		parent = last
	}
	parent.Nest(node)
}
