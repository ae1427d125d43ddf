package usage

import (
	"strings"

	"github.com/reoring/zodgen/openapi"
)

// Cycles is the cycle detector's verdict: which named schemas sit on at
// least one reference cycle, plus the recorded cycle paths for reporting.
type Cycles struct {
	// Members holds every schema that participates in a cycle. All of them
	// must be emitted validator-backed so a deferred reference can break the
	// cycle in the output.
	Members map[string]bool
	// Paths records one textual path per detected cycle, e.g. "A -> B -> A",
	// in detection order.
	Paths []string
}

// In reports whether the named schema is pinned by cycle membership.
func (c *Cycles) In(name string) bool {
	return c != nil && c.Members[name]
}

// DetectCycles runs a depth-first search with visited and in-stack sets over
// the named-schema reference graph. It must run after usage analysis so the
// validator-backed pin it implies takes precedence over whatever the usage
// pass assigned.
func DetectCycles(doc *openapi.Document) *Cycles {
	graph := Edges(doc)
	out := &Cycles{Members: make(map[string]bool)}

	visited := make(map[string]bool)
	inStack := make(map[string]bool)
	var stack []string

	var visit func(name string)
	visit = func(name string) {
		visited[name] = true
		inStack[name] = true
		stack = append(stack, name)
		for _, target := range graph[name] {
			if _, known := graph[target]; !known {
				// dangling edge; upfront validation reports these
				continue
			}
			if inStack[target] {
				out.record(stack, target)
				continue
			}
			if !visited[target] {
				visit(target)
			}
		}
		stack = stack[:len(stack)-1]
		inStack[name] = false
	}

	for _, name := range doc.SchemaNames() {
		if !visited[name] {
			visit(name)
		}
	}
	return out
}

// record pins every member of the cycle closing at target and remembers the
// path for error reporting.
func (c *Cycles) record(stack []string, target string) {
	start := 0
	for i, n := range stack {
		if n == target {
			start = i
			break
		}
	}
	members := stack[start:]
	for _, n := range members {
		c.Members[n] = true
	}
	c.Paths = append(c.Paths, strings.Join(members, " -> ")+" -> "+target)
}
