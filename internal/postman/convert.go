package postman

import (
	"encoding/json"
	"fmt"
	"io"
	"net/url"
	"strings"

	"github.com/mdouchement/neoloadutility/internal/jsonschema"
	"github.com/mdouchement/neoloadutility/internal/openapi"
)

// ToOpenAPI converts the collection into an OpenAPI document.
// Items without a request block are skipped.
func ToOpenAPI(collection *Collection) *openapi.Document {
	title := collection.Info.Name
	if title == "" {
		title = "Converted Postman Collection"
	}
	version := collection.Info.Version
	if version == "" {
		version = "1.0.0"
	}

	document := openapi.NewDocument(title, version)

	for idx, item := range collection.Items {
		if item.Request == nil {
			continue
		}
		request := item.Request

		//

		path := "/"
		if len(request.URL.Path) > 0 {
			path = "/" + strings.Join(request.URL.Path, "/")
		}

		method := strings.ToLower(request.Method)
		if method == "" {
			method = "get"
		}

		summary := item.Name
		if summary == "" {
			summary = fmt.Sprintf("Request %d", idx+1)
		}

		//

		if request.URL.Raw != "" {
			if u, err := url.Parse(request.URL.Raw); err == nil && u.Scheme != "" && u.Host != "" {
				document.AddServer(u.Scheme + "://" + u.Host)
			}
		}

		//

		operation := &openapi.Operation{
			Summary:   summary,
			Responses: openapi.OKResponse(),
		}

		for _, query := range request.URL.Query {
			operation.Parameters = append(operation.Parameters, openapi.Parameter{
				Name:     query.Key,
				In:       "query",
				Required: !query.Disabled,
				Schema:   jsonschema.String(),
				Example:  query.Value,
			})
		}

		for _, header := range request.Headers {
			if header.Key == "" {
				continue
			}
			switch strings.ToLower(header.Key) {
			case "content-type", "authorization":
				continue
			}

			operation.Parameters = append(operation.Parameters, openapi.Parameter{
				Name:    header.Key,
				In:      "header",
				Schema:  jsonschema.String(),
				Example: header.Value,
			})
		}

		if request.Body != nil && request.Body.Mode == "raw" {
			operation.RequestBody = requestBody(document, request.Body.Raw, method, idx)
		}

		document.AddOperation(path, method, operation)
	}

	return document
}

// requestBody infers a schema from a raw JSON payload, falling back to a
// plain text body.
func requestBody(document *openapi.Document, raw, method string, idx int) *openapi.RequestBody {
	decoder := json.NewDecoder(strings.NewReader(raw))
	decoder.UseNumber()

	var v any
	decoded := decoder.Decode(&v) == nil
	if decoded {
		_, err := decoder.Token()
		decoded = err == io.EOF
	}
	if !decoded {
		return &openapi.RequestBody{
			Required: true,
			Content: map[string]openapi.MediaType{
				"text/plain": {Schema: jsonschema.String()},
			},
		}
	}

	name := fmt.Sprintf("Schema_%s_%d", method, idx)
	return &openapi.RequestBody{
		Required: true,
		Content: map[string]openapi.MediaType{
			"application/json": {Schema: document.AddSchema(name, jsonschema.Infer(v))},
		},
	}
}
