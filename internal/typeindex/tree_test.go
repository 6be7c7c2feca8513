package typeindex

import (
	"bytes"
	"strings"
	"testing"
)

func TestBuildHierarchyTreeDedupsDiamond(t *testing.T) {
	doc := &Document{Version: "1.0.0", Types: []Type{
		{Name: "d.Top", Kind: KindInterface},
		{Name: "d.Left", Kind: KindInterface, Interfaces: []string{"d.Top"}},
		{Name: "d.Right", Kind: KindInterface, Interfaces: []string{"d.Top"}},
		{Name: "d.Bottom", Kind: KindClass, Interfaces: []string{"d.Left", "d.Right"}},
	}}
	idx, err := New(doc)
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	root := BuildHierarchyTree(idx, "d.Top")
	if len(root.Children) != 2 {
		t.Fatalf("root has %d children, want 2", len(root.Children))
	}
	right := root.Children[1]
	if len(right.Children) != 1 || !right.Children[0].Deduped {
		t.Error("second path to d.Bottom should be deduped")
	}
	if got := CountTypes(root); got != 4 {
		t.Errorf("CountTypes = %d, want 4", got)
	}
}

func TestPrintTree(t *testing.T) {
	idx := loadShapes(t)
	root := BuildHierarchyTree(idx, "com.acme.Shape")

	var buf bytes.Buffer
	PrintTree(&buf, root, "", true)
	output := buf.String()

	for _, want := range []string{"class: com.acme.Shape", "└── class: com.acme.Square", "(final)"} {
		if !strings.Contains(output, want) {
			t.Errorf("output missing %q:\n%s", want, output)
		}
	}

	missing := &HierarchyNode{Name: "com.nope.Gone"}
	buf.Reset()
	PrintTree(&buf, missing, "", true)
	if !strings.Contains(buf.String(), "(not indexed)") {
		t.Errorf("output should mark unindexed type:\n%s", buf.String())
	}
}
