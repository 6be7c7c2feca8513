package config

import "github.com/agentx-labs/aotreflect/internal/closure"

// Seeds converts the reflection section into pass seeds. Hierarchy roots
// are walked in Defaults mode and full_hierarchy roots in Full mode.
func (r ReflectionConfig) Seeds() closure.Seeds {
	seeds := closure.Seeds{
		Annotations: r.Annotations,
		Classes:     r.Classes,
		Exclude:     r.Exclude,
	}
	for _, root := range r.Hierarchy {
		seeds.Hierarchies = append(seeds.Hierarchies, closure.HierarchySeed{Root: root, Mode: closure.ModeDefaults})
	}
	for _, root := range r.FullHierarchy {
		seeds.Hierarchies = append(seeds.Hierarchies, closure.HierarchySeed{Root: root, Mode: closure.ModeFull})
	}
	return seeds
}

// Options returns the closure options carried by the reflection section.
func (r ReflectionConfig) Options() closure.Options {
	entities := r.EntityAnnotations
	if entities == nil {
		entities = []string{}
	}
	return closure.Options{
		Marker:            r.Marker,
		EntityAnnotations: entities,
		ServiceDescriptor: r.ServiceDescriptor,
		SingletonField:    r.SingletonField,
	}
}
