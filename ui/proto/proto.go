// Package proto implements the text formats used to dump display
// surfaces and to trace the operations the patcher applies to them.
// Both are write-only: they go to debug logs and test expectations.
//
// Tree format (line-oriented, deterministic, diff-friendly):
//
//	rev <uint64>
//	root <nodeid>
//	node <id> <type>
//	prop <id> <k>=<v> <k>=<v> ...
//	child <parent> <child>
//
// Op format (one per line):
//
//	<kind> <path> <k>=<v> <k>=<v> ...
//
// A path is a slash-separated list of child indexes from the patched
// root ("0/2"); the root itself is ".".
//
// String escaping: values containing spaces, tabs, newlines, quotes,
// '=' or backslashes are quoted with double quotes. Inside quotes,
// newline, tab, backslash and quote are written as \n, \t, \\ and \".
package proto

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// Node represents a node in a serialized tree.
type Node struct {
	ID       string
	Type     string
	Props    map[string]string
	Children []string // child IDs in order
}

// Tree is a complete tree snapshot.
type Tree struct {
	Rev   uint64
	Root  string
	Nodes map[string]*Node // keyed by ID
	Order []string         // node IDs in declaration order
}

// Op is one surface mutation in its line form.
type Op struct {
	Kind string
	Path []int
	KVs  map[string]string
}

// --- Escaping ---

func needsQuote(s string) bool {
	if len(s) == 0 {
		return true
	}
	for _, c := range s {
		if c == ' ' || c == '\t' || c == '\n' || c == '\\' || c == '"' || c == '=' {
			return true
		}
	}
	return false
}

// EscapeValue encodes a string for the protocol, quoting if necessary.
func EscapeValue(s string) string {
	if !needsQuote(s) {
		return s
	}
	var b strings.Builder
	b.WriteByte('"')
	for _, c := range s {
		switch c {
		case '\n':
			b.WriteString(`\n`)
		case '\t':
			b.WriteString(`\t`)
		case '\\':
			b.WriteString(`\\`)
		case '"':
			b.WriteString(`\"`)
		default:
			b.WriteRune(c)
		}
	}
	b.WriteByte('"')
	return b.String()
}

// FormatKV formats a key=value pair with proper escaping.
func FormatKV(k, v string) string {
	return k + "=" + EscapeValue(v)
}

// --- Paths ---

// FormatPath renders a child-index path.
func FormatPath(path []int) string {
	if len(path) == 0 {
		return "."
	}
	parts := make([]string, len(path))
	for i, p := range path {
		parts[i] = strconv.Itoa(p)
	}
	return strings.Join(parts, "/")
}

// --- Tree serialization ---

// SerializeTree encodes a tree to the text format.
func SerializeTree(t *Tree) string {
	var b strings.Builder
	fmt.Fprintf(&b, "rev %d\n", t.Rev)
	fmt.Fprintf(&b, "root %s\n", t.Root)
	for _, id := range t.Order {
		n := t.Nodes[id]
		if n == nil {
			continue
		}
		fmt.Fprintf(&b, "node %s %s\n", n.ID, n.Type)
		if len(n.Props) > 0 {
			b.WriteString("prop ")
			b.WriteString(n.ID)
			for _, k := range sortedKeys(n.Props) {
				b.WriteByte(' ')
				b.WriteString(FormatKV(k, n.Props[k]))
			}
			b.WriteByte('\n')
		}
		for _, child := range n.Children {
			fmt.Fprintf(&b, "child %s %s\n", n.ID, child)
		}
	}
	return b.String()
}

func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// --- Op serialization ---

// SerializeOp encodes an op as a single line.
func SerializeOp(o *Op) string {
	var b strings.Builder
	b.WriteString(o.Kind)
	b.WriteByte(' ')
	b.WriteString(FormatPath(o.Path))
	for _, k := range sortedKeys(o.KVs) {
		b.WriteByte(' ')
		b.WriteString(FormatKV(k, o.KVs[k]))
	}
	return b.String()
}
