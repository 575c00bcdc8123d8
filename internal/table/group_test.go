package table

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

type flatNode struct {
	Key   string
	Level int
	Count int
}

func TestBuildTreeGroupsInFirstAppearanceOrder(t *testing.T) {
	tree := BuildTree(sampleRecords())
	if tree.Total != 5 {
		t.Fatalf("unexpected total: %d", tree.Total)
	}

	var got []flatNode
	tree.Walk(func(n *TreeNode) bool {
		got = append(got, flatNode{Key: n.Key, Level: n.Level, Count: n.Count})
		return true
	})
	want := []flatNode{
		{"Suite A", 0, 3},
		{"smoke", 1, 2},
		{"com.example", 2, 2},
		{"LoginTest", 3, 2},
		{"regression", 1, 1},
		{"com.example.cart", 2, 1},
		{"CartTest", 3, 1},
		{"Suite B", 0, 2},
		{"regression", 1, 1},
		{"com.example.cart", 2, 1},
		{"CartTest", 3, 1},
		{"nightly", 1, 1},
		{"com.example.search", 2, 1},
		{"SearchTest", 3, 1},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("tree mismatch (-want +got):\n%s", diff)
	}
}

func TestTreeFindAndPaths(t *testing.T) {
	tree := BuildTree(sampleRecords())
	node := tree.Find(GroupPath{"Suite B", "regression", "com.example.cart"})
	if node == nil {
		t.Fatalf("expected node")
	}
	if diff := cmp.Diff(GroupPath{"Suite B", "regression", "com.example.cart"}, node.Path); diff != "" {
		t.Fatalf("path mismatch (-want +got):\n%s", diff)
	}
	if tree.Find(GroupPath{"Suite B", "smoke"}) != nil {
		t.Fatalf("expected missing node")
	}
	if tree.Find(GroupPath{"Suite A", "smoke"}).Path[0] != "Suite A" {
		t.Fatalf("sibling paths must not share backing arrays")
	}
}

func TestWalkCanSkipChildren(t *testing.T) {
	tree := BuildTree(sampleRecords())
	var roots []string
	tree.Walk(func(n *TreeNode) bool {
		roots = append(roots, n.Key)
		return false
	})
	if diff := cmp.Diff([]string{"Suite A", "Suite B"}, roots); diff != "" {
		t.Fatalf("walk mismatch (-want +got):\n%s", diff)
	}
}

func TestGroupPathDOMID(t *testing.T) {
	if got := (GroupPath{"Suite A", "com.example"}).DOMID(); got != "SuiteA-comexample" {
		t.Fatalf("unexpected DOM id: %q", got)
	}
	if got := GroupPath(nil).DOMID(); got != AllGroups {
		t.Fatalf("unexpected DOM id for all: %q", got)
	}
	if ParseGroupPath(nil) != nil || ParseGroupPath([]string{"all", "x"}) != nil {
		t.Fatalf("expected all path")
	}
}
