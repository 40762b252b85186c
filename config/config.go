// Package config stores OLT configuration as field-scoped trees of
// commands, and reads and writes the dump format the equipment exports.
package config

import (
	"github.com/CaioVieiraF/olt-access/command"
)

// Config maps each field to its ordered list of command trees. Fields
// keep the order in which they were first added.
type Config struct {
	order []Field
	trees map[Field][]command.NestedCommand
}

// New returns an empty Config.
func New() *Config {
	return &Config{trees: make(map[Field][]command.NestedCommand)}
}

// FromCommands returns a Config holding cmds as flat lines in DefaultField.
func FromCommands(cmds []command.Command) *Config {
	c := New()
	for _, cmd := range cmds {
		c.Append(DefaultField, command.Leaf(cmd))
	}
	return c
}

// Fields returns the fields in insertion order.
func (c *Config) Fields() []Field {
	out := make([]Field, len(c.order))
	copy(out, c.order)
	return out
}

// Get returns the trees of a field.
func (c *Config) Get(f Field) ([]command.NestedCommand, bool) {
	trees, ok := c.trees[f]
	return trees, ok
}

// Has reports whether the field exists, even when empty.
func (c *Config) Has(f Field) bool {
	_, ok := c.trees[f]
	return ok
}

// Ensure creates f if it does not exist yet.
func (c *Config) Ensure(f Field) {
	if c.trees == nil {
		c.trees = make(map[Field][]command.NestedCommand)
	}
	if _, ok := c.trees[f]; !ok {
		c.order = append(c.order, f)
		c.trees[f] = nil
	}
}

// Append adds trees to the end of field f, creating it when absent.
func (c *Config) Append(f Field, trees ...command.NestedCommand) {
	c.Ensure(f)
	c.trees[f] = append(c.trees[f], trees...)
}

// Merge appends every field of other to c, in other's field order.
func (c *Config) Merge(other *Config) {
	if other == nil {
		return
	}
	for _, f := range other.order {
		c.Append(f, other.trees[f]...)
	}
}

// Len returns the number of root trees across all fields.
func (c *Config) Len() int {
	n := 0
	for _, trees := range c.trees {
		n += len(trees)
	}
	return n
}

// Commands flattens the configuration into executable lines, field by
// field. Every block is closed with "exit".
func (c *Config) Commands() []command.Command {
	var out []command.Command
	for _, f := range c.order {
		out = append(out, c.FieldCommands(f)...)
	}
	return out
}

// FieldCommands flattens a single field.
func (c *Config) FieldCommands(f Field) []command.Command {
	var out []command.Command
	for _, tree := range c.trees[f] {
		out = append(out, tree.Flatten()...)
	}
	return out
}
