package compiler

import "github.com/reoring/zodgen/openapi"

// NodeKind is the closed set of shapes the compile grammar dispatches on.
// The order of the constants mirrors the grammar's priority: classification
// checks run top to bottom and the first match wins.
type NodeKind int

const (
	KindMultiType NodeKind = iota // type: [T, U, ...]
	KindRef
	KindConst
	KindEnum
	KindSingleAllOf // allOf with exactly one member passes through
	KindAllOf
	KindUnion // oneOf or anyOf
	KindNot
	KindPrimitive // type switch, including missing type
)

// Classify runs the priority grammar once for a node. The result drives a
// single switch in the compiler instead of repeated optional-field checks.
func Classify(s *openapi.Schema) NodeKind {
	switch {
	case len(s.Type) > 1:
		return KindMultiType
	case s.Ref != "":
		return KindRef
	case s.Const != nil:
		return KindConst
	case len(s.Enum) > 0:
		return KindEnum
	case len(s.AllOf) == 1:
		return KindSingleAllOf
	case len(s.AllOf) > 1:
		return KindAllOf
	case len(s.OneOf) > 0 || len(s.AnyOf) > 0:
		return KindUnion
	case s.Not != nil:
		return KindNot
	default:
		return KindPrimitive
	}
}

// unionMembers returns the members of a oneOf/anyOf node, oneOf winning when
// both are present.
func unionMembers(s *openapi.Schema) []*openapi.Schema {
	if len(s.OneOf) > 0 {
		return s.OneOf
	}
	return s.AnyOf
}

// isObjectShaped reports whether an allOf member can participate in a merge
// chain: it declares properties, is itself such a composition, or is a
// reference.
func isObjectShaped(s *openapi.Schema) bool {
	if s == nil {
		return false
	}
	if s.Ref != "" {
		return true
	}
	if s.Properties.Len() > 0 {
		return true
	}
	if s.Type.Single() == "object" && s.AdditionalProperties == nil && s.Properties.Len() == 0 {
		return true
	}
	if len(s.AllOf) > 0 {
		for _, m := range s.AllOf {
			if !isObjectShaped(m) {
				return false
			}
		}
		return true
	}
	return false
}
