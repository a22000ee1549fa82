package webserver

import (
	"bufio"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/mdouchement/logger"
	"github.com/mdouchement/neoloadutility/internal/curl"
	"github.com/mdouchement/neoloadutility/internal/model"
	"github.com/mdouchement/neoloadutility/internal/openapi"
	"github.com/mdouchement/neoloadutility/internal/postman"
	"github.com/mdouchement/neoloadutility/internal/webserver/service"
	"github.com/mdouchement/neoloadutility/internal/webserver/weberror"
)

type converter struct {
	logger   logger.Logger
	recorder *service.Recorder
}

// Validate checks that the provided cURL command is usable for a generation.
func (h *converter) Validate(c echo.Context) error {
	c.Set("handler_method", "converter.Validate")

	var params struct {
		Command string `json:"command"`
	}
	if err := c.Bind(&params); err != nil {
		return weberror.New(http.StatusBadRequest, "No cURL command provided")
	}
	if params.Command == "" {
		return weberror.New(http.StatusBadRequest, "No cURL command provided")
	}

	if err := curl.Validate(params.Command); err != nil {
		return weberror.New(http.StatusBadRequest, err.Error())
	}

	return c.JSON(http.StatusOK, echo.Map{
		"message": "cURL command is valid!",
	})
}

// Generate aggregates a batch of cURL commands into an OpenAPI document.
func (h *converter) Generate(c echo.Context) error {
	c.Set("handler_method", "converter.Generate")

	var params struct {
		Requests json.RawMessage `json:"requests"`
	}
	if err := c.Bind(&params); err != nil {
		return weberror.New(http.StatusBadRequest, "Input must be a list")
	}

	// An absent key means an empty batch. An explicit null does not.
	var commands []string
	if len(params.Requests) > 0 {
		if string(params.Requests) == "null" {
			return weberror.New(http.StatusBadRequest, "Input must be a list")
		}
		if err := json.Unmarshal(params.Requests, &commands); err != nil {
			return weberror.New(http.StatusBadRequest, "Input must be a list")
		}
	}

	document, err := openapi.FromCurlCommands(commands)
	if err != nil {
		return weberror.New(http.StatusBadRequest, err.Error())
	}

	h.record(model.KindCurl, document.Info.Title, len(commands), document)
	return c.JSON(http.StatusOK, document)
}

// UploadFile generates an OpenAPI document from an uploaded file holding one
// cURL command per line.
func (h *converter) UploadFile(c echo.Context) error {
	c.Set("handler_method", "converter.UploadFile")

	fh, err := c.FormFile("file")
	if err != nil {
		return weberror.New(http.StatusBadRequest, "No file uploaded")
	}

	f, err := fh.Open()
	if err != nil {
		return weberror.New(http.StatusBadRequest, "No file uploaded")
	}
	defer f.Close()

	var commands []string
	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64<<10), 1<<20)
	for scanner.Scan() {
		command := strings.TrimSpace(scanner.Text())
		if command != "" {
			commands = append(commands, command)
		}
	}
	if err := scanner.Err(); err != nil {
		return weberror.New(http.StatusBadRequest, err.Error())
	}

	document, err := openapi.FromCurlCommands(commands)
	if err != nil {
		return weberror.New(http.StatusBadRequest, err.Error())
	}

	h.record(model.KindCurlFile, fh.Filename, len(commands), document)
	return c.JSON(http.StatusOK, document)
}

// PostmanToOpenAPI converts a Postman v2 collection into an OpenAPI document.
func (h *converter) PostmanToOpenAPI(c echo.Context) error {
	c.Set("handler_method", "converter.PostmanToOpenAPI")

	var params struct {
		Collection json.RawMessage `json:"collection"`
	}
	if err := c.Bind(&params); err != nil {
		return weberror.New(http.StatusBadRequest, "Invalid or empty Postman collection")
	}

	// The collection must decode to a non-empty JSON object, whatever its keys.
	var object map[string]json.RawMessage
	if err := json.Unmarshal(params.Collection, &object); err != nil || len(object) == 0 {
		return weberror.New(http.StatusBadRequest, "Invalid or empty Postman collection")
	}

	var collection postman.Collection
	if err := json.Unmarshal(params.Collection, &collection); err != nil {
		return weberror.New(http.StatusBadRequest, "Invalid or empty Postman collection")
	}

	document := postman.ToOpenAPI(&collection)

	h.record(model.KindPostman, document.Info.Title, len(collection.Items), document)
	return c.JSON(http.StatusOK, document)
}

// ConvertPostman is kept as a stub, like the original utility.
func (h *converter) ConvertPostman(c echo.Context) error {
	c.Set("handler_method", "converter.ConvertPostman")

	return c.JSON(http.StatusOK, echo.Map{
		"message": "Postman to NeoLoad conversion not implemented in this demo",
	})
}

// record archives the document. A failed archive does not fail the request.
func (h *converter) record(kind, title string, requests int, document *openapi.Document) {
	conversion, err := h.recorder.Record(kind, title, requests, document)
	if err != nil {
		h.logger.WithPrefix("[recorder]").Error(err)
		return
	}
	h.logger.WithPrefix("[recorder]").Infof("Archived %s conversion %s", kind, conversion.ID)
}
