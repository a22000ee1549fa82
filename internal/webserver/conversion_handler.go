package webserver

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/mdouchement/logger"
	"github.com/mdouchement/neoloadutility/internal/database"
	"github.com/mdouchement/neoloadutility/internal/model"
	"github.com/mdouchement/neoloadutility/internal/storage"
	"github.com/mdouchement/neoloadutility/internal/webserver/serializer"
	"github.com/mdouchement/neoloadutility/internal/webserver/service"
	"github.com/mdouchement/neoloadutility/internal/webserver/weberror"
)

type conversion struct {
	logger  logger.Logger
	db      database.Client
	storage storage.Backend
}

// List renders the archived conversions, most recent first.
func (h *conversion) List(c echo.Context) error {
	c.Set("handler_method", "conversion.List")

	conversions, err := h.db.ListConversions()
	if err != nil {
		return weberror.New(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, serializer.Conversions(conversions))
}

// Show streams the stored OpenAPI document of a conversion.
func (h *conversion) Show(c echo.Context) error {
	c.Set("handler_method", "conversion.Show")

	conversion, err := h.load(c.Param("conversion"))
	if err != nil {
		return err
	}

	downloader := service.NewDownloader(h.storage, conversion)
	r, err := downloader.Stream()
	if err != nil {
		return weberror.New(http.StatusUnprocessableEntity, "Conversion corrupted")
	}
	defer r.Close()

	c.Response().Header().Set(echo.HeaderContentLength, strconv.FormatInt(downloader.Size(), 10))
	c.Response().Header().Set("Etag", downloader.Checksum())
	return c.Stream(http.StatusOK, downloader.ContentType(), r)
}

// Delete removes a conversion and its stored document.
func (h *conversion) Delete(c echo.Context) error {
	c.Set("handler_method", "conversion.Delete")

	conversion, err := h.load(c.Param("conversion"))
	if err != nil {
		return err
	}

	destroyer := service.NewDestroyer(h.db, h.storage, conversion)
	if err := destroyer.Destroy(); err != nil {
		return weberror.New(http.StatusInternalServerError, err.Error())
	}

	return c.NoContent(http.StatusNoContent)
}

func (h *conversion) load(id string) (*model.Conversion, error) {
	conversion, err := h.db.FindConversion(id)
	if err != nil {
		if h.db.IsNotFound(err) {
			return nil, weberror.New(http.StatusNotFound, "Conversion not found")
		}
		return nil, weberror.New(http.StatusInternalServerError, err.Error())
	}
	return conversion, nil
}
