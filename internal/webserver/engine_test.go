package webserver_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"regexp"
	"strings"
	"testing"
	"time"

	"github.com/mdouchement/logger"
	"github.com/mdouchement/neoloadutility/internal/database"
	"github.com/mdouchement/neoloadutility/internal/storage"
	"github.com/mdouchement/neoloadutility/internal/webserver"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setup(t *testing.T, token string) (*httptest.Server, database.Client) {
	t.Helper()

	log := logrus.New()
	log.SetFormatter(&logger.LogrusTextFormatter{
		DisableColors:   false,
		ForceColors:     true,
		ForceFormatting: true,
		PrefixRE:        regexp.MustCompile(`^(\[.*?\])\s`),
		FullTimestamp:   true,
		TimestampFormat: "2006-01-02 15:04:05",
	})

	//

	workspace := t.TempDir()

	db, err := database.StormOpen(workspace + "/nlutility.db")
	require.NoError(t, err)

	//

	ctrl := webserver.Controller{
		Version:  "test",
		Logger:   logger.WrapLogrus(log),
		Database: db,
		Storage:  storage.NewFileSystem(workspace + "/storage"),

		Token:     token,
		Retention: time.Hour,
	}
	engine := webserver.EchoEngine(ctrl)

	server := httptest.NewServer(engine)
	t.Cleanup(func() {
		server.Close()
		db.Close()
	})

	return server, db
}

func postJSON(t *testing.T, url string, payload any) (*http.Response, map[string]any) {
	t.Helper()

	body, err := json.Marshal(payload)
	require.NoError(t, err)

	res, err := http.Post(url, "application/json", bytes.NewReader(body))
	require.NoError(t, err)
	defer res.Body.Close()

	var decoded map[string]any
	require.NoError(t, json.NewDecoder(res.Body).Decode(&decoded))
	return res, decoded
}

func TestVersion(t *testing.T) {
	server, _ := setup(t, "")

	res, err := http.Get(server.URL + "/version")
	require.NoError(t, err)
	defer res.Body.Close()

	assert.Equal(t, http.StatusOK, res.StatusCode)

	var payload map[string]any
	require.NoError(t, json.NewDecoder(res.Body).Decode(&payload))
	assert.Equal(t, "test", payload["version"])
}

func TestIndex(t *testing.T) {
	server, _ := setup(t, "")

	res, err := http.Get(server.URL + "/")
	require.NoError(t, err)
	defer res.Body.Close()

	assert.Equal(t, http.StatusOK, res.StatusCode)
	assert.Contains(t, res.Header.Get("Content-Type"), "text/html")
}

func TestValidateCurl(t *testing.T) {
	server, _ := setup(t, "")

	res, payload := postJSON(t, server.URL+"/validate_curl", map[string]any{
		"command": `curl -X GET https://api.example.com/health`,
	})
	assert.Equal(t, http.StatusOK, res.StatusCode)
	assert.Equal(t, "cURL command is valid!", payload["message"])

	//

	res, payload = postJSON(t, server.URL+"/validate_curl", map[string]any{})
	assert.Equal(t, http.StatusBadRequest, res.StatusCode)
	assert.Equal(t, "No cURL command provided", payload["error"])

	//

	res, payload = postJSON(t, server.URL+"/validate_curl", map[string]any{
		"command": `curl -X GET -H "Accept: application/json"`,
	})
	assert.Equal(t, http.StatusBadRequest, res.StatusCode)
	assert.Equal(t, "URL not found", payload["error"])
}

func TestGenerateOpenAPI(t *testing.T) {
	server, db := setup(t, "")

	res, document := postJSON(t, server.URL+"/generate_openapi", map[string]any{
		"requests": []string{
			`curl -X POST https://api.example.com/users -H "Content-Type: application/json" -d '{"name":"neo"}'`,
			`curl https://api.example.com/health`,
		},
	})
	assert.Equal(t, http.StatusOK, res.StatusCode)
	assert.Equal(t, "3.0.0", document["openapi"])

	paths, ok := document["paths"].(map[string]any)
	require.True(t, ok)
	assert.Len(t, paths, 2)
	assert.Contains(t, paths, "/users")
	assert.Contains(t, paths, "/health")

	// The conversion has been archived.
	//
	conversions, err := db.ListConversions()
	require.NoError(t, err)
	require.Len(t, conversions, 1)
	assert.Equal(t, "curl", conversions[0].Kind)
	assert.Equal(t, 2, conversions[0].Requests)
	assert.Equal(t, 2, conversions[0].Paths)
	assert.NotEmpty(t, conversions[0].Checksum)
	assert.False(t, conversions[0].TTL.IsZero())
}

func TestGenerateOpenAPINotAList(t *testing.T) {
	server, _ := setup(t, "")

	res, payload := postJSON(t, server.URL+"/generate_openapi", map[string]any{
		"requests": "not a list",
	})
	assert.Equal(t, http.StatusBadRequest, res.StatusCode)
	assert.Equal(t, "Input must be a list", payload["error"])

	// An explicit null is not a list either.
	//
	res, payload = postJSON(t, server.URL+"/generate_openapi", map[string]any{
		"requests": nil,
	})
	assert.Equal(t, http.StatusBadRequest, res.StatusCode)
	assert.Equal(t, "Input must be a list", payload["error"])
}

func TestUploadCurlFile(t *testing.T) {
	server, db := setup(t, "")

	var buffer bytes.Buffer
	mw := multipart.NewWriter(&buffer)
	fw, err := mw.CreateFormFile("file", "commands.txt")
	require.NoError(t, err)
	fmt.Fprintln(fw, `curl https://api.example.com/health`)
	fmt.Fprintln(fw, "   ")
	fmt.Fprintln(fw, `curl -X DELETE https://api.example.com/users/42`)
	require.NoError(t, mw.Close())

	res, err := http.Post(server.URL+"/upload_curl_file", mw.FormDataContentType(), &buffer)
	require.NoError(t, err)
	defer res.Body.Close()

	assert.Equal(t, http.StatusOK, res.StatusCode)

	var document map[string]any
	require.NoError(t, json.NewDecoder(res.Body).Decode(&document))
	paths := document["paths"].(map[string]any)
	assert.Len(t, paths, 2)

	//

	conversions, err := db.ListConversions()
	require.NoError(t, err)
	require.Len(t, conversions, 1)
	assert.Equal(t, "curl_file", conversions[0].Kind)
	assert.Equal(t, "commands.txt", conversions[0].Title)
	assert.Equal(t, 2, conversions[0].Requests)
}

func TestUploadCurlFileMissing(t *testing.T) {
	server, _ := setup(t, "")

	res, err := http.Post(server.URL+"/upload_curl_file", "application/json", strings.NewReader("{}"))
	require.NoError(t, err)
	defer res.Body.Close()

	assert.Equal(t, http.StatusBadRequest, res.StatusCode)
}

func TestPostmanToOpenAPI(t *testing.T) {
	server, db := setup(t, "")

	res, document := postJSON(t, server.URL+"/postman_to_openapi", map[string]any{
		"collection": map[string]any{
			"info": map[string]any{"name": "Demo API"},
			"item": []any{
				map[string]any{
					"name": "Ping",
					"request": map[string]any{
						"method": "GET",
						"url":    "https://api.example.com/ping",
					},
				},
			},
		},
	})
	assert.Equal(t, http.StatusOK, res.StatusCode)

	info := document["info"].(map[string]any)
	assert.Equal(t, "Demo API", info["title"])

	//

	conversions, err := db.ListConversions()
	require.NoError(t, err)
	require.Len(t, conversions, 1)
	assert.Equal(t, "postman", conversions[0].Kind)
	assert.Equal(t, "Demo API", conversions[0].Title)

	//

	res, payload := postJSON(t, server.URL+"/postman_to_openapi", map[string]any{})
	assert.Equal(t, http.StatusBadRequest, res.StatusCode)
	assert.Equal(t, "Invalid or empty Postman collection", payload["error"])
}

func TestPostmanToOpenAPIMinimalCollection(t *testing.T) {
	server, _ := setup(t, "")

	// A collection without items is still a collection.
	//
	res, document := postJSON(t, server.URL+"/postman_to_openapi", map[string]any{
		"collection": map[string]any{
			"info": map[string]any{"version": "0.1.0"},
		},
	})
	assert.Equal(t, http.StatusOK, res.StatusCode)

	info := document["info"].(map[string]any)
	assert.Equal(t, "Converted Postman Collection", info["title"])
	assert.Equal(t, "0.1.0", info["version"])
}

func TestConvertPostmanStub(t *testing.T) {
	server, _ := setup(t, "")

	res, payload := postJSON(t, server.URL+"/convert_postman_json", map[string]any{})
	assert.Equal(t, http.StatusOK, res.StatusCode)
	assert.Contains(t, payload["message"], "not implemented")
}

func TestConversionLifecycle(t *testing.T) {
	server, db := setup(t, "")

	res, _ := postJSON(t, server.URL+"/generate_openapi", map[string]any{
		"requests": []string{`curl https://api.example.com/health`},
	})
	require.Equal(t, http.StatusOK, res.StatusCode)

	conversions, err := db.ListConversions()
	require.NoError(t, err)
	require.Len(t, conversions, 1)
	id := conversions[0].ID

	// List
	//
	listres, err := http.Get(server.URL + "/conversions")
	require.NoError(t, err)
	defer listres.Body.Close()
	assert.Equal(t, http.StatusOK, listres.StatusCode)

	var list []map[string]any
	require.NoError(t, json.NewDecoder(listres.Body).Decode(&list))
	require.Len(t, list, 1)
	assert.Equal(t, id, list[0]["id"])
	assert.Equal(t, "curl", list[0]["kind"])

	// Show streams the stored document.
	//
	showres, err := http.Get(server.URL + "/conversions/" + id)
	require.NoError(t, err)
	defer showres.Body.Close()
	assert.Equal(t, http.StatusOK, showres.StatusCode)
	assert.Equal(t, conversions[0].Checksum, showres.Header.Get("Etag"))

	var document map[string]any
	require.NoError(t, json.NewDecoder(showres.Body).Decode(&document))
	assert.Equal(t, "3.0.0", document["openapi"])

	// Delete
	//
	req, err := http.NewRequest(http.MethodDelete, server.URL+"/conversions/"+id, nil)
	require.NoError(t, err)
	delres, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer delres.Body.Close()
	assert.Equal(t, http.StatusNoContent, delres.StatusCode)

	//

	notfound, err := http.Get(server.URL + "/conversions/" + id)
	require.NoError(t, err)
	defer notfound.Body.Close()
	assert.Equal(t, http.StatusNotFound, notfound.StatusCode)
}

func TestAuthenticate(t *testing.T) {
	server, _ := setup(t, "sesame")

	res, payload := postJSON(t, server.URL+"/validate_curl", map[string]any{
		"command": `curl https://api.example.com/health`,
	})
	assert.Equal(t, http.StatusUnauthorized, res.StatusCode)
	assert.Equal(t, "Authorization failed", payload["error"])

	//

	body, err := json.Marshal(map[string]any{"command": `curl https://api.example.com/health`})
	require.NoError(t, err)

	req, err := http.NewRequest(http.MethodPost, server.URL+"/validate_curl", bytes.NewReader(body))
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Auth-Token", "sesame")

	authres, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer authres.Body.Close()
	assert.Equal(t, http.StatusOK, authres.StatusCode)

	// The UI and version endpoints stay public.
	//
	public, err := http.Get(server.URL + "/version")
	require.NoError(t, err)
	defer public.Body.Close()
	assert.Equal(t, http.StatusOK, public.StatusCode)
}
