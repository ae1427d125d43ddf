package openapi

// Document is the parsed OpenAPI document shape the generator consumes.
// Parsing the raw text into this structure is the loader's job (load.go);
// everything downstream treats the document as immutable.
type Document struct {
	OpenAPI    string               `json:"openapi,omitempty"`
	Info       *Info                `json:"info,omitempty"`
	Paths      map[string]*PathItem `json:"paths,omitempty"`
	Components *Components          `json:"components,omitempty"`
}

// Info carries the fragments of the info object the generator surfaces in
// output headers.
type Info struct {
	Title   string `json:"title,omitempty"`
	Version string `json:"version,omitempty"`
}

// Components holds the named component collections the reference resolver
// understands.
type Components struct {
	Schemas       *SchemaMap              `json:"schemas,omitempty"`
	Parameters    map[string]*Parameter   `json:"parameters,omitempty"`
	RequestBodies map[string]*RequestBody `json:"requestBodies,omitempty"`
	Responses     map[string]*Response    `json:"responses,omitempty"`
}

// PathItem is one path entry: items keyed by HTTP method plus path-level
// parameters shared by every operation under it.
type PathItem struct {
	Parameters []*Parameter `json:"parameters,omitempty"`

	Get     *Operation `json:"get,omitempty"`
	Put     *Operation `json:"put,omitempty"`
	Post    *Operation `json:"post,omitempty"`
	Delete  *Operation `json:"delete,omitempty"`
	Options *Operation `json:"options,omitempty"`
	Head    *Operation `json:"head,omitempty"`
	Patch   *Operation `json:"patch,omitempty"`
	Trace   *Operation `json:"trace,omitempty"`
}

// methodOrder fixes the iteration order over operations.
var methodOrder = []string{"get", "put", "post", "delete", "options", "head", "patch", "trace"}

// EachOperation visits the path's operations in fixed method order.
func (p *PathItem) EachOperation(fn func(method string, op *Operation)) {
	if p == nil {
		return
	}
	byMethod := map[string]*Operation{
		"get": p.Get, "put": p.Put, "post": p.Post, "delete": p.Delete,
		"options": p.Options, "head": p.Head, "patch": p.Patch, "trace": p.Trace,
	}
	for _, m := range methodOrder {
		if op := byMethod[m]; op != nil {
			fn(m, op)
		}
	}
}

// Operation is one HTTP operation: parameters, an optional request body and
// per-status responses.
type Operation struct {
	OperationID string               `json:"operationId,omitempty"`
	Parameters  []*Parameter         `json:"parameters,omitempty"`
	RequestBody *RequestBody         `json:"requestBody,omitempty"`
	Responses   map[string]*Response `json:"responses,omitempty"`
}

// Parameter is a path/query/header/cookie parameter or a $ref to one.
type Parameter struct {
	Ref      string  `json:"$ref,omitempty"`
	Name     string  `json:"name,omitempty"`
	In       string  `json:"in,omitempty"`
	Required bool    `json:"required,omitempty"`
	Schema   *Schema `json:"schema,omitempty"`
}

// RequestBody is an operation request body or a $ref to one.
type RequestBody struct {
	Ref      string                `json:"$ref,omitempty"`
	Required bool                  `json:"required,omitempty"`
	Content  map[string]*MediaType `json:"content,omitempty"`
}

// Response is one response entry or a $ref to one.
type Response struct {
	Ref         string                `json:"$ref,omitempty"`
	Description string                `json:"description,omitempty"`
	Content     map[string]*MediaType `json:"content,omitempty"`
}

// MediaType wraps the schema for one content type.
type MediaType struct {
	Schema *Schema `json:"schema,omitempty"`
}

// SchemaNames returns the component schema names in declaration order, or nil
// when the document has no schema collection.
func (d *Document) SchemaNames() []string {
	if d == nil || d.Components == nil {
		return nil
	}
	return d.Components.Schemas.Keys()
}

// SchemaByName looks up a named component schema.
func (d *Document) SchemaByName(name string) (*Schema, bool) {
	if d == nil || d.Components == nil {
		return nil, false
	}
	return d.Components.Schemas.Get(name)
}
