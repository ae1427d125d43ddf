package usage

import (
	"github.com/reoring/zodgen/internal/resolver"
	"github.com/reoring/zodgen/openapi"
)

// Context classifies how a named schema is used by the document's operations.
type Context int

const (
	// ContextNone means no operation references the schema.
	ContextNone Context = iota
	ContextRequest
	ContextResponse
	ContextBoth
)

func (c Context) String() string {
	switch c {
	case ContextRequest:
		return "request"
	case ContextResponse:
		return "response"
	case ContextBoth:
		return "both"
	default:
		return "unreferenced"
	}
}

// Analyze walks every operation's request and response schemas, expands both
// sets to their transitive reference closures, and returns the per-schema
// context. Schemas absent from the result are unreferenced; the caller's
// default applies to them.
func Analyze(doc *openapi.Document, maxDepth int) map[string]Context {
	request := make(map[string]bool)
	response := make(map[string]bool)

	for _, path := range sortedKeys(doc.Paths) {
		item := doc.Paths[path]
		if item == nil {
			continue
		}
		item.EachOperation(func(method string, op *openapi.Operation) {
			collectOperation(doc, item, op, maxDepth, request, response)
		})
	}

	expandClosure(doc, request)
	expandClosure(doc, response)

	if len(request) == 0 && len(response) == 0 {
		return analyzeByAccess(doc)
	}

	out := make(map[string]Context)
	for _, name := range doc.SchemaNames() {
		switch {
		case request[name] && response[name]:
			out[name] = ContextBoth
		case request[name]:
			out[name] = ContextRequest
		case response[name]:
			out[name] = ContextResponse
		}
	}
	return out
}

func collectOperation(doc *openapi.Document, item *openapi.PathItem, op *openapi.Operation, maxDepth int, request, response map[string]bool) {
	for _, p := range resolver.MergeParameters(item.Parameters, op.Parameters) {
		if p.Ref != "" {
			if node, ok := resolver.Resolve(doc, p.Ref, maxDepth); ok {
				if rp, isParam := node.(*openapi.Parameter); isParam {
					p = rp
				}
			}
		}
		seedSet(p.Schema, request)
	}
	if rb := op.RequestBody; rb != nil {
		if rb.Ref != "" {
			if node, ok := resolver.Resolve(doc, rb.Ref, maxDepth); ok {
				if r, isBody := node.(*openapi.RequestBody); isBody {
					rb = r
				}
			}
		}
		for _, ct := range sortedKeys(rb.Content) {
			if mt := rb.Content[ct]; mt != nil {
				seedSet(mt.Schema, request)
			}
		}
	}
	for _, status := range sortedKeys(op.Responses) {
		resp := op.Responses[status]
		if resp == nil {
			continue
		}
		if resp.Ref != "" {
			if node, ok := resolver.Resolve(doc, resp.Ref, maxDepth); ok {
				if r, isResp := node.(*openapi.Response); isResp {
					resp = r
				}
			}
		}
		for _, ct := range sortedKeys(resp.Content) {
			if mt := resp.Content[ct]; mt != nil {
				seedSet(mt.Schema, response)
			}
		}
	}
}

// seedSet records every named schema the given (possibly inline) schema
// references directly.
func seedSet(s *openapi.Schema, set map[string]bool) {
	collectRefs(s, func(name string) { set[name] = true })
}

// expandClosure grows a seed set to its transitive reference closure over
// named schemas.
func expandClosure(doc *openapi.Document, set map[string]bool) {
	queue := make([]string, 0, len(set))
	for name := range set {
		queue = append(queue, name)
	}
	for len(queue) > 0 {
		name := queue[0]
		queue = queue[1:]
		s, found := doc.SchemaByName(name)
		if !found {
			continue
		}
		collectRefs(s, func(target string) {
			if !set[target] {
				set[target] = true
				queue = append(queue, target)
			}
		})
	}
}

// analyzeByAccess is the fallback when the document has no operation graph:
// a schema holding only writeOnly-marked properties (recursively) is treated
// as request-side, only readOnly-marked as response-side. Mixed or neither
// stays unclassified.
func analyzeByAccess(doc *openapi.Document) map[string]Context {
	out := make(map[string]Context)
	for _, name := range doc.SchemaNames() {
		s, _ := doc.SchemaByName(name)
		readOnly, writeOnly := hasAccessMarkers(s, make(map[*openapi.Schema]bool))
		switch {
		case writeOnly && !readOnly:
			out[name] = ContextRequest
		case readOnly && !writeOnly:
			out[name] = ContextResponse
		}
	}
	return out
}

func hasAccessMarkers(s *openapi.Schema, seen map[*openapi.Schema]bool) (readOnly, writeOnly bool) {
	if s == nil || seen[s] {
		return false, false
	}
	seen[s] = true
	if s.ReadOnly {
		readOnly = true
	}
	if s.WriteOnly {
		writeOnly = true
	}
	children := []*openapi.Schema{s.Items, s.Not, s.If, s.Then, s.Else}
	children = append(children, s.AllOf...)
	children = append(children, s.OneOf...)
	children = append(children, s.AnyOf...)
	for _, pname := range s.Properties.Keys() {
		p, _ := s.Properties.Get(pname)
		children = append(children, p)
	}
	for _, c := range children {
		r, w := hasAccessMarkers(c, seen)
		readOnly = readOnly || r
		writeOnly = writeOnly || w
	}
	return readOnly, writeOnly
}
