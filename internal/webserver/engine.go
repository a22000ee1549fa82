package webserver

import (
	_ "embed"
	"fmt"
	"net/http"
	"sort"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/mdouchement/logger"
	"github.com/mdouchement/neoloadutility/internal/database"
	"github.com/mdouchement/neoloadutility/internal/storage"
	middlewarepkg "github.com/mdouchement/neoloadutility/internal/webserver/middleware"
	"github.com/mdouchement/neoloadutility/internal/webserver/service"
)

//go:embed index.html
var indexHTML []byte

// A Controller is an Iversion Of Control pattern used to init the server package.
type Controller struct {
	Version  string
	Logger   logger.Logger
	Database database.Client
	Storage  storage.Backend
	//
	Token     string
	Retention time.Duration
}

// EchoEngine instantiates the wep server.
func EchoEngine(ctrl Controller) *echo.Echo {
	engine := echo.New()
	engine.Use(middleware.Gzip())
	engine.Use(middlewarepkg.Logger(ctrl.Logger))

	engine.HTTPErrorHandler = middlewarepkg.NewHTTPErrorHandler(ctrl.Logger)

	//
	//
	//

	router := engine.Group("")

	// Generic handlers
	//
	router.GET("/", func(c echo.Context) error {
		return c.HTMLBlob(http.StatusOK, indexHTML)
	})
	router.GET("/version", func(c echo.Context) error {
		return c.JSON(http.StatusOK, echo.Map{
			"version": ctrl.Version,
		})
	})

	// Token auth is enabled only when a token is configured.
	//
	var auth []echo.MiddlewareFunc
	if ctrl.Token != "" {
		auth = append(auth, middlewarepkg.Authenticate(ctrl.Token))
	}

	// Converters
	//
	converter := converter{
		logger:   ctrl.Logger,
		recorder: service.NewRecorder(ctrl.Database, ctrl.Storage, ctrl.Retention),
	}
	router.POST("/validate_curl", converter.Validate, auth...)
	router.POST("/generate_openapi", converter.Generate, auth...)
	router.POST("/upload_curl_file", converter.UploadFile, auth...)
	router.POST("/postman_to_openapi", converter.PostmanToOpenAPI, auth...)
	router.POST("/convert_postman_json", converter.ConvertPostman, auth...)

	// Conversion history
	//
	conversion := conversion{
		logger:  ctrl.Logger,
		db:      ctrl.Database,
		storage: ctrl.Storage,
	}
	router.GET("/conversions", conversion.List, auth...)
	router.GET("/conversions/:conversion", conversion.Show, auth...)
	router.DELETE("/conversions/:conversion", conversion.Delete, auth...)

	return engine
}

// PrintRoutes prints the Echo engin exposed routes.
func PrintRoutes(e *echo.Echo) {
	ignored := map[string]bool{
		"":   true,
		".":  true,
		"/*": true,
	}

	routes := e.Routes()
	sort.Slice(routes, func(i int, j int) bool {
		return routes[i].Path < routes[j].Path
	})

	fmt.Println("Routes:")
	for _, route := range routes {
		if ignored[route.Path] {
			continue
		}
		fmt.Printf("%6s %s\n", route.Method, route.Path)
	}
}
