package table

import (
	"errors"
	"strings"

	"github.com/izzyreal/reportgrid/internal/report"
)

// AllGroups is the path value that selects every record.
const AllGroups = "all"

var ErrGroupPathTooLong = errors.New("group path has more than 4 keys")

// groupColumns is the tree hierarchy, outermost first.
var groupColumns = []string{
	report.ColumnSuite,
	report.ColumnTest,
	report.ColumnPackageInfo,
	report.ColumnClassName,
}

// GroupPath is a prefix of suite, test, packageInfo, className keys.
type GroupPath []string

// ParseGroupPath builds a path from query values. A missing path or one
// starting with "all" selects every record.
func ParseGroupPath(values []string) GroupPath {
	if len(values) == 0 || values[0] == AllGroups {
		return nil
	}
	return GroupPath(append([]string(nil), values...))
}

func (p GroupPath) IsAll() bool { return len(p) == 0 }

// Matches compares each key of p with the record field at the same level by
// exact equality.
func (p GroupPath) Matches(r report.Record) bool {
	for i, key := range p {
		if i >= len(groupColumns) {
			return false
		}
		v, _ := r.Field(groupColumns[i])
		if v != key {
			return false
		}
	}
	return true
}

// DOMID is an element id for the path with dots and whitespace removed.
// It is only for markup; matching always uses the raw keys.
func (p GroupPath) DOMID() string {
	if p.IsAll() {
		return AllGroups
	}
	var b strings.Builder
	for i, key := range p {
		if i > 0 {
			b.WriteByte('-')
		}
		for _, r := range key {
			if r == '.' || r == ' ' || r == '\t' || r == '\n' || r == '\r' {
				continue
			}
			b.WriteRune(r)
		}
	}
	return b.String()
}

type TreeNode struct {
	Key      string
	Level    int
	Path     GroupPath
	Count    int
	Children []*TreeNode
}

// Tree is the suite > test > packageInfo > className navigation tree.
type Tree struct {
	Roots []*TreeNode
	Total int
}

// BuildTree groups records by the group columns. Children keep the order in
// which their key first appears.
func BuildTree(records []report.Record) *Tree {
	t := &Tree{Total: len(records)}
	for _, r := range records {
		siblings := &t.Roots
		var path GroupPath
		for level, col := range groupColumns {
			key, _ := r.Field(col)
			path = append(path[:level:level], key)
			node := findChild(*siblings, key)
			if node == nil {
				node = &TreeNode{Key: key, Level: level, Path: path}
				*siblings = append(*siblings, node)
			}
			node.Count++
			siblings = &node.Children
		}
	}
	return t
}

func findChild(nodes []*TreeNode, key string) *TreeNode {
	for _, n := range nodes {
		if n.Key == key {
			return n
		}
	}
	return nil
}

// Find returns the node at path, or nil.
func (t *Tree) Find(path GroupPath) *TreeNode {
	nodes := t.Roots
	var found *TreeNode
	for _, key := range path {
		found = findChild(nodes, key)
		if found == nil {
			return nil
		}
		nodes = found.Children
	}
	return found
}

// Walk visits nodes depth first. Returning false skips a node's children.
func (t *Tree) Walk(fn func(*TreeNode) bool) {
	var walk func([]*TreeNode)
	walk = func(nodes []*TreeNode) {
		for _, n := range nodes {
			if fn(n) {
				walk(n.Children)
			}
		}
	}
	walk(t.Roots)
}
