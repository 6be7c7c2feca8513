package config

import (
	"testing"

	"github.com/agentx-labs/aotreflect/internal/closure"
)

func TestReflectionConfigSeeds(t *testing.T) {
	r := ReflectionConfig{
		Annotations:   []string{"a.Ann"},
		Hierarchy:     []string{"a.Plugin"},
		FullHierarchy: []string{"a.Shape"},
		Classes:       []string{"a.Main"},
		Exclude:       []string{"a.Hidden"},
	}

	seeds := r.Seeds()
	if len(seeds.Hierarchies) != 2 {
		t.Fatalf("got %d hierarchy seeds, want 2", len(seeds.Hierarchies))
	}
	if seeds.Hierarchies[0] != (closure.HierarchySeed{Root: "a.Plugin", Mode: closure.ModeDefaults}) {
		t.Errorf("Hierarchies[0] = %+v", seeds.Hierarchies[0])
	}
	if seeds.Hierarchies[1] != (closure.HierarchySeed{Root: "a.Shape", Mode: closure.ModeFull}) {
		t.Errorf("Hierarchies[1] = %+v", seeds.Hierarchies[1])
	}
	if len(seeds.Annotations) != 1 || len(seeds.Classes) != 1 || len(seeds.Exclude) != 1 {
		t.Errorf("seeds = %+v", seeds)
	}
}

func TestReflectionConfigOptions_EmptyEntitiesDisables(t *testing.T) {
	opts := ReflectionConfig{Marker: "m.Reflect"}.Options()
	if opts.EntityAnnotations == nil || len(opts.EntityAnnotations) != 0 {
		t.Errorf("EntityAnnotations = %#v, want empty non-nil", opts.EntityAnnotations)
	}
	if opts.Marker != "m.Reflect" {
		t.Errorf("Marker = %q", opts.Marker)
	}
}
