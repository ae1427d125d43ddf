package compiler

import "strings"

// SortedFragments orders the compiled fragments for emission: DFS post-order
// over the recorded dependency edges so every non-alias dependency precedes
// its dependent. A node already mid-visit is not re-entered; the cycle
// detector has already pinned such members to validator-backed mode with
// deferred references, so skipping the re-entry is sound. Pure aliases are
// excluded from the ordering and appended after all non-alias fragments in
// discovery order.
func (s *Session) SortedFragments() []*Fragment {
	visited := make(map[string]bool)
	inVisit := make(map[string]bool)
	var ordered []*Fragment

	var visit func(name string)
	visit = func(name string) {
		frag, ok := s.Fragments[name]
		if !ok || frag.IsAlias {
			return
		}
		if visited[name] || inVisit[name] {
			return
		}
		inVisit[name] = true
		for _, dep := range frag.Deps {
			visit(dep)
		}
		inVisit[name] = false
		visited[name] = true
		ordered = append(ordered, frag)
	}

	for _, name := range s.Order {
		visit(name)
	}
	for _, name := range s.Order {
		if frag, ok := s.Fragments[name]; ok && frag.IsAlias {
			ordered = append(ordered, frag)
		}
	}
	return ordered
}

// AliasCycle reports a reference cycle made up entirely of pure-reference
// schemas. Such a cycle has no structural content to defer into and cannot
// be emitted. Membership is judged on the document nodes: resolution gives
// up on a reference loop before it would mark the members as aliases.
func (s *Session) AliasCycle() (string, bool) {
	for _, path := range s.Cycles.Paths {
		members := strings.Split(path, " -> ")
		allAlias := len(members) > 0
		for _, m := range members {
			node, ok := s.Doc.SchemaByName(m)
			if !ok || !isPureRefSchema(node) {
				allAlias = false
				break
			}
		}
		if allAlias {
			return path, true
		}
	}
	return "", false
}
