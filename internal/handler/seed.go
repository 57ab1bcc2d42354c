package handler

import (
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"greencart/internal/service"
)

const maxSeedUpload = 10 << 20

// SeedHandler handles HTTP requests for importing fleet data.
type SeedHandler struct {
	seedService *service.SeedService
}

// NewSeedHandler creates a new SeedHandler.
func NewSeedHandler(seedService *service.SeedService) *SeedHandler {
	return &SeedHandler{seedService: seedService}
}

// SeedResponse is the HTTP response for an import.
type SeedResponse struct {
	Message      string                  `json:"message"`
	Drivers      int                     `json:"drivers"`
	Routes       int                     `json:"routes"`
	Orders       int                     `json:"orders"`
	FromFixture  []string                `json:"from_fixture"`
	Errors       []service.SeedLineError `json:"errors"`
	AdminCreated bool                    `json:"admin_created"`
}

// Seed handles POST /v1/seed. The optional multipart files "drivers",
// "routes" and "orders" replace the corresponding tables; missing files
// fall back to the built-in fixture.
func (h *SeedHandler) Seed(c *gin.Context) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxSeedUpload)

	var src service.SeedSource
	var closers []io.Closer
	defer func() {
		for _, cl := range closers {
			_ = cl.Close()
		}
	}()

	form, err := c.MultipartForm()
	switch {
	case err == nil:
		open := func(name string) (io.Reader, error) {
			files := form.File[name]
			if len(files) == 0 {
				return nil, nil
			}
			f, err := files[0].Open()
			if err != nil {
				return nil, err
			}
			closers = append(closers, f)
			return f, nil
		}

		if src.Drivers, err = open("drivers"); err != nil {
			respondBadRequest(c, "cannot read drivers file")
			return
		}
		if src.Routes, err = open("routes"); err != nil {
			respondBadRequest(c, "cannot read routes file")
			return
		}
		if src.Orders, err = open("orders"); err != nil {
			respondBadRequest(c, "cannot read orders file")
			return
		}
	case errors.Is(err, http.ErrNotMultipart):
		// No files: import the fixture.
	default:
		respondBadRequest(c, "invalid multipart form")
		return
	}

	report, err := h.seedService.Seed(c.Request.Context(), src)
	if err != nil {
		respondError(c, err)
		return
	}

	errs := report.Errors
	if errs == nil {
		errs = []service.SeedLineError{}
	}
	fixture := report.FromFixture
	if fixture == nil {
		fixture = []string{}
	}

	c.JSON(http.StatusOK, SeedResponse{
		Message:      "Database seeded successfully",
		Drivers:      report.Drivers,
		Routes:       report.Routes,
		Orders:       report.Orders,
		FromFixture:  fixture,
		Errors:       errs,
		AdminCreated: report.AdminCreated,
	})
}
