package typeindex

import (
	"fmt"
	"io"
)

// HierarchyNode is one node of a subtype tree.
type HierarchyNode struct {
	Name     string
	Type     *Type // nil when the name is not in the index
	Children []*HierarchyNode
	Deduped  bool // already shown earlier in the tree (diamond)
}

// BuildHierarchyTree builds the subtype tree rooted at name. A type reached
// through more than one path is expanded once; later occurrences are marked
// Deduped.
func BuildHierarchyTree(idx *Index, name string) *HierarchyNode {
	seen := make(map[string]bool)
	return buildHierarchyNode(idx, name, seen)
}

func buildHierarchyNode(idx *Index, name string, seen map[string]bool) *HierarchyNode {
	node := &HierarchyNode{Name: name}
	node.Type, _ = idx.Lookup(name)

	if seen[name] {
		node.Deduped = true
		return node
	}
	seen[name] = true

	for _, sub := range idx.Subtypes(name) {
		node.Children = append(node.Children, buildHierarchyNode(idx, sub.Name, seen))
	}
	return node
}

// CountTypes returns the number of distinct types in the tree.
func CountTypes(node *HierarchyNode) int {
	if node == nil || node.Deduped {
		return 0
	}
	count := 1
	for _, child := range node.Children {
		count += CountTypes(child)
	}
	return count
}

// PrintTree prints the hierarchy with box-drawing characters.
func PrintTree(w io.Writer, node *HierarchyNode, prefix string, isLast bool) {
	if node == nil {
		return
	}

	connector := "├── "
	if isLast {
		connector = "└── "
	}

	label := fmt.Sprintf("%s: %s", kindLabel(node), node.Name)
	switch {
	case node.Deduped:
		label += " (deduped)"
	case node.Type == nil:
		label += " (not indexed)"
	case node.Type.IsFinal():
		label += " (final)"
	}

	// The root node has no connector.
	if prefix == "" {
		fmt.Fprintf(w, "  %s\n", label)
	} else {
		fmt.Fprintf(w, "  %s%s%s\n", prefix, connector, label)
	}

	childPrefix := prefix
	if prefix != "" {
		if isLast {
			childPrefix += "    "
		} else {
			childPrefix += "│   "
		}
	} else {
		childPrefix = " "
	}

	for i, child := range node.Children {
		PrintTree(w, child, childPrefix, i == len(node.Children)-1)
	}
}

func kindLabel(node *HierarchyNode) string {
	if node.Type == nil {
		return "type"
	}
	return string(node.Type.Kind)
}
