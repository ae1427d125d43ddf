package usage_test

import (
	"strings"
	"testing"

	"github.com/reoring/zodgen/internal/usage"
)

func TestDetectCycles_SelfReference(t *testing.T) {
	doc := mustDoc(t, `{"components": {"schemas": {
		"Node": {"type": "object", "properties": {"next": {"$ref": "#/components/schemas/Node"}}}
	}}}`)
	cycles := usage.DetectCycles(doc)
	if !cycles.In("Node") {
		t.Fatalf("self-referencing schema must be a cycle member")
	}
	if len(cycles.Paths) != 1 || cycles.Paths[0] != "Node -> Node" {
		t.Fatalf("paths: %v", cycles.Paths)
	}
}

func TestDetectCycles_MutualReferencePinsAllMembers(t *testing.T) {
	doc := mustDoc(t, `{"components": {"schemas": {
		"A": {"type": "object", "properties": {"b": {"$ref": "#/components/schemas/B"}}},
		"B": {"type": "object", "properties": {"a": {"$ref": "#/components/schemas/A"}}},
		"C": {"type": "object", "properties": {"a": {"$ref": "#/components/schemas/A"}}}
	}}}`)
	cycles := usage.DetectCycles(doc)
	if !cycles.In("A") || !cycles.In("B") {
		t.Fatalf("both cycle members must be pinned: %v", cycles.Members)
	}
	if cycles.In("C") {
		t.Fatalf("a schema merely pointing into a cycle is not a member")
	}
	if len(cycles.Paths) != 1 || !strings.Contains(cycles.Paths[0], " -> ") {
		t.Fatalf("paths: %v", cycles.Paths)
	}
}

func TestDetectCycles_ThroughComposition(t *testing.T) {
	doc := mustDoc(t, `{"components": {"schemas": {
		"Tree": {"allOf": [{"type": "object", "properties": {"children": {"type": "array", "items": {"$ref": "#/components/schemas/Tree"}}}}]}
	}}}`)
	cycles := usage.DetectCycles(doc)
	if !cycles.In("Tree") {
		t.Fatalf("cycle through allOf and items must be detected")
	}
}

func TestDetectCycles_AcyclicGraph(t *testing.T) {
	doc := mustDoc(t, `{"components": {"schemas": {
		"A": {"type": "object", "properties": {"b": {"$ref": "#/components/schemas/B"}, "c": {"$ref": "#/components/schemas/C"}}},
		"B": {"type": "object", "properties": {"c": {"$ref": "#/components/schemas/C"}}},
		"C": {"type": "string"}
	}}}`)
	cycles := usage.DetectCycles(doc)
	if len(cycles.Members) != 0 || len(cycles.Paths) != 0 {
		t.Fatalf("diamond-shaped sharing is not a cycle: %v", cycles.Paths)
	}
}

func TestCycles_InOnNil(t *testing.T) {
	var cycles *usage.Cycles
	if cycles.In("anything") {
		t.Fatalf("nil cycles must report no members")
	}
}
