// Package zodgen turns an OpenAPI document's component schemas into
// TypeScript source: type declarations plus runtime validators built from
// the Zod constraint-builder API.
//
// The pipeline for one document is fixed: upfront reference validation,
// usage analysis (request/response classification), cycle detection, enum
// surfacing, recursive compilation with dependency tracking, topological
// ordering, then emission into a single buffer. A run either produces the
// whole buffer or fails with a typed error; there are no partial artifacts.
//
//	doc, err := openapi.LoadFile("api.yaml")
//	...
//	res, err := zodgen.Generate(doc, zodgen.DefaultOptions())
//
// Batches of documents run through RunBatch, sequentially or with bounded
// fan-out; runs are isolated and one failure never aborts the rest.
package zodgen
