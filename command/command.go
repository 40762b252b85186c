// Package command models rendered CLI lines and the builder that produces
// them for each configuration mode of a ZTE GPON OLT.
package command

import "strings"

// Command is one rendered CLI line. It is a plain value: copies are cheap
// and two commands are equal when their text is.
type Command struct {
	text string
}

// New wraps literal text as a Command.
func New(text string) Command {
	return Command{text: text}
}

// Join builds a Command from fragments separated by single spaces.
func Join(parts ...string) Command {
	return Command{text: strings.Join(parts, " ")}
}

func (c Command) String() string {
	return c.text
}

// IsZero reports whether c holds no text.
func (c Command) IsZero() bool {
	return c.text == ""
}

// Well-known mode transitions.
var (
	Exit = New("exit")
	End  = New("end")
)

// NestedCommand is a command together with the commands issued inside the
// mode it enters. A leaf has nil Children.
type NestedCommand struct {
	Command  Command
	Children []NestedCommand
}

// Leaf returns a NestedCommand without children.
func Leaf(c Command) NestedCommand {
	return NestedCommand{Command: c}
}

// Block returns a NestedCommand whose children are the given leaves, in order.
func Block(parent Command, children ...Command) NestedCommand {
	n := Leaf(parent)
	for _, c := range children {
		n.Nest(Leaf(c))
	}
	return n
}

// Nest appends child as the last child of n.
func (n *NestedCommand) Nest(child NestedCommand) {
	n.Children = append(n.Children, child)
}

// IsLeaf reports whether n has no children.
func (n NestedCommand) IsLeaf() bool {
	return len(n.Children) == 0
}

// LastChild returns a pointer to the last child, or nil for a leaf.
func (n *NestedCommand) LastChild() *NestedCommand {
	if len(n.Children) == 0 {
		return nil
	}
	return &n.Children[len(n.Children)-1]
}

// Flatten renders the tree depth-first as executable lines, emitting an
// "exit" after the children of every internal node.
func (n NestedCommand) Flatten() []Command {
	out := []Command{n.Command}
	if n.IsLeaf() {
		return out
	}
	for _, child := range n.Children {
		out = append(out, child.Flatten()...)
	}
	return append(out, Exit)
}

// Strings converts commands to their text form.
func Strings(cmds []Command) []string {
	out := make([]string, len(cmds))
	for i, c := range cmds {
		out[i] = c.String()
	}
	return out
}
