package config

import (
	"bufio"
	"io"
	"strings"

	"github.com/CaioVieiraF/olt-access/command"
	"github.com/CaioVieiraF/olt-access/types"
)

// WriteTo renders c in dump format: each field wrapped in "!<name>" and
// "!</name>", children indented two spaces per level and every subtree
// closed by "$" at its parent's indentation.
func (c *Config) WriteTo(w io.Writer) (int64, error) {
	cw := &countingWriter{w: bufio.NewWriter(w)}
	for _, f := range c.order {
		cw.line(0, f.open())
		for _, tree := range c.trees[f] {
			writeTree(cw, 0, tree)
		}
		cw.line(0, f.close())
	}
	if cw.err == nil {
		cw.err = cw.w.Flush()
	}
	if cw.err != nil {
		return cw.n, types.Wrap(types.KindIO, "write config", cw.err)
	}
	return cw.n, nil
}

func (c *Config) String() string {
	var b strings.Builder
	_, _ = c.WriteTo(&b)
	return b.String()
}

func writeTree(cw *countingWriter, level int, n command.NestedCommand) {
	cw.line(level, n.Command.String())
	if n.IsLeaf() {
		return
	}
	for _, child := range n.Children {
		writeTree(cw, level+1, child)
	}
	cw.line(level, endMarker)
}

type countingWriter struct {
	w   *bufio.Writer
	n   int64
	err error
}

func (cw *countingWriter) line(level int, text string) {
	if cw.err != nil {
		return
	}
	k, err := cw.w.WriteString(strings.Repeat(indentUnit, level) + text + "\n")
	cw.n += int64(k)
	cw.err = err
}
