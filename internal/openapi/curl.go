package openapi

import (
	"encoding/json"
	"fmt"
	"net/url"
	"sort"
	"strings"

	"github.com/mdouchement/neoloadutility/internal/curl"
	"github.com/mdouchement/neoloadutility/internal/jsonschema"
	"github.com/pkg/errors"
)

// FromCurlCommands aggregates a batch of cURL commands into a single
// document. Blank commands and commands without a URL are skipped, but the
// operation ids keep the input positions.
func FromCurlCommands(commands []string) (*Document, error) {
	document := NewDocument("Generated API Specification", "1.0.0")

	for i, command := range commands {
		if strings.TrimSpace(command) == "" {
			continue
		}

		request, err := curl.Parse(command)
		if err != nil {
			return nil, errors.Wrapf(err, "command %d", i)
		}
		if request.URL == "" {
			continue
		}

		u, err := url.Parse(request.URL)
		if err != nil {
			return nil, errors.Wrapf(err, "command %d", i)
		}

		document.AddServer(u.Scheme + "://" + u.Host)
		appendCurlOperation(document, request, u, i)
	}

	return document, nil
}

func appendCurlOperation(document *Document, request *curl.Request, u *url.URL, i int) {
	path := u.Path
	if path == "" {
		path = "/"
	}
	method := strings.ToLower(request.Method)

	operation := &Operation{
		Summary:     request.Method + " " + path,
		OperationID: operationID(method, path, i),
		Servers:     []Server{{URL: u.Scheme + "://" + u.Host}},
		Responses:   OKResponse(),
	}

	// Query parameters
	//
	query := u.Query()
	for _, key := range sortedKeys(query) {
		// Blank values (`?flag' or `?key=') are not documented.
		if query[key][0] == "" {
			continue
		}

		operation.Parameters = append(operation.Parameters, Parameter{
			Name:    key,
			In:      "query",
			Schema:  jsonschema.String(),
			Example: query[key][0],
		})
	}

	// Header parameters
	//
	for _, header := range sortedKeys(request.Headers) {
		switch strings.ToLower(header) {
		case "content-type", "authorization":
			continue
		}

		operation.Parameters = append(operation.Parameters, Parameter{
			Name:    header,
			In:      "header",
			Schema:  jsonschema.String(),
			Example: request.Headers[header],
		})
	}

	// Security
	//
	authorization := strings.ToLower(request.Headers["Authorization"])
	switch {
	case strings.HasPrefix(authorization, "bearer "):
		document.SecureWith(operation, "BearerAuth", SecurityScheme{Type: "http", Scheme: "bearer"})
	case strings.HasPrefix(authorization, "basic "):
		document.SecureWith(operation, "BasicAuth", SecurityScheme{Type: "http", Scheme: "basic"})
	}

	// Request body
	//
	if truthy(request.Body) {
		contenttype := request.Headers["Content-Type"]
		if contenttype == "" {
			contenttype = "application/json"
		}

		schema := jsonschema.String()
		if body, ok := request.Body.(map[string]any); ok && contenttype == "application/json" {
			schema = document.AddSchema("Schema_"+operation.OperationID, jsonschema.Infer(body))
		}

		operation.RequestBody = &RequestBody{
			Required: true,
			Content: map[string]MediaType{
				contenttype: {Schema: schema},
			},
		}
	}

	document.AddOperation(path, method, operation)
}

func operationID(method, path string, i int) string {
	p := strings.Trim(strings.ReplaceAll(path, "/", "_"), "_")
	if p == "" {
		p = "root"
	}
	return fmt.Sprintf("%s_%s_%d", method, p, i)
}

// truthy reports whether the decoded body holds a payload worth documenting.
// Empty strings, empty collections, zero numbers and false do not.
func truthy(v any) bool {
	switch v := v.(type) {
	case nil:
		return false
	case string:
		return v != ""
	case bool:
		return v
	case json.Number:
		f, err := v.Float64()
		return err != nil || f != 0
	case map[string]any:
		return len(v) > 0
	case []any:
		return len(v) > 0
	}
	return true
}

// sortedKeys keeps the generated parameters in a deterministic order.
func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for key := range m {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}
