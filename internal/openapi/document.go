package openapi

import (
	"github.com/mdouchement/neoloadutility/internal/jsonschema"
)

// Version is the OpenAPI version of the generated documents.
const Version = "3.0.0"

type (
	// A Document is an OpenAPI 3.0 specification.
	Document struct {
		OpenAPI    string                           `json:"openapi"`
		Info       Info                             `json:"info"`
		Servers    []Server                         `json:"servers"`
		Paths      map[string]map[string]*Operation `json:"paths"`
		Components Components                       `json:"components"`
	}

	// An Info holds the document metadata.
	Info struct {
		Title   string `json:"title"`
		Version string `json:"version"`
	}

	// A Server is a base URL the documented operations are served from.
	Server struct {
		URL string `json:"url"`
	}

	// An Operation describes a single method on a path.
	Operation struct {
		Summary     string                `json:"summary"`
		OperationID string                `json:"operationId,omitempty"`
		Servers     []Server              `json:"servers,omitempty"`
		Parameters  []Parameter           `json:"parameters,omitempty"`
		RequestBody *RequestBody          `json:"requestBody,omitempty"`
		Security    []map[string][]string `json:"security,omitempty"`
		Responses   map[string]Response   `json:"responses"`
	}

	// A Parameter describes a query or header input of an operation.
	Parameter struct {
		Name     string             `json:"name"`
		In       string             `json:"in"`
		Required bool               `json:"required"`
		Schema   *jsonschema.Schema `json:"schema"`
		Example  string             `json:"example,omitempty"`
	}

	// A RequestBody describes the payload of an operation.
	RequestBody struct {
		Required bool                 `json:"required"`
		Content  map[string]MediaType `json:"content"`
	}

	// A MediaType binds a schema to a content type.
	MediaType struct {
		Schema *jsonschema.Schema `json:"schema"`
	}

	// A Response describes one status code outcome of an operation.
	Response struct {
		Description string `json:"description"`
	}

	// Components holds the reusable parts of the document.
	Components struct {
		Schemas         map[string]*jsonschema.Schema `json:"schemas"`
		SecuritySchemes map[string]SecurityScheme     `json:"securitySchemes,omitempty"`
	}

	// A SecurityScheme describes an authentication mechanism.
	SecurityScheme struct {
		Type   string `json:"type"`
		Scheme string `json:"scheme"`
	}
)

// NewDocument returns an empty document with the given title and version.
func NewDocument(title, version string) *Document {
	return &Document{
		OpenAPI: Version,
		Info: Info{
			Title:   title,
			Version: version,
		},
		Servers: []Server{},
		Paths:   map[string]map[string]*Operation{},
		Components: Components{
			Schemas: map[string]*jsonschema.Schema{},
		},
	}
}

// AddServer registers the server URL unless it is already known.
func (d *Document) AddServer(url string) {
	if url == "" {
		return
	}

	for _, server := range d.Servers {
		if server.URL == url {
			return
		}
	}
	d.Servers = append(d.Servers, Server{URL: url})
}

// AddOperation registers the operation under path and method.
func (d *Document) AddOperation(path, method string, operation *Operation) {
	if d.Paths[path] == nil {
		d.Paths[path] = map[string]*Operation{}
	}
	d.Paths[path][method] = operation
}

// AddSchema registers a reusable schema and returns a reference to it.
func (d *Document) AddSchema(name string, schema *jsonschema.Schema) *jsonschema.Schema {
	d.Components.Schemas[name] = schema
	return jsonschema.Ref(name)
}

// SecureWith registers the security scheme and applies it to the operation.
func (d *Document) SecureWith(operation *Operation, name string, scheme SecurityScheme) {
	if d.Components.SecuritySchemes == nil {
		d.Components.SecuritySchemes = map[string]SecurityScheme{}
	}
	d.Components.SecuritySchemes[name] = scheme
	operation.Security = append(operation.Security, map[string][]string{name: {}})
}

// OKResponse is the default response set attached to every generated operation.
func OKResponse() map[string]Response {
	return map[string]Response{
		"200": {Description: "Successful response"},
	}
}
