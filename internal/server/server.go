// Package server exposes chart rendering over HTTP.
package server

import (
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/bytedance/sonic"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	log "github.com/sirupsen/logrus"

	"gantt2svg/internal/axis"
	"gantt2svg/internal/config"
	"gantt2svg/internal/gantt"
	"gantt2svg/internal/host"
	"gantt2svg/internal/svg"
	"gantt2svg/internal/task"
)

// ContentTypeSVG is the media type of rendered charts.
const ContentTypeSVG = "image/svg+xml"

// renderRequest is the body of POST /render. Zero fields fall back to the
// server's chart configuration; an empty data list renders the
// placeholder chart.
type renderRequest struct {
	ID            string     `json:"id,omitempty"`
	Data          []task.Raw `json:"data"`
	Sort          string     `json:"sort,omitempty"`
	Width         float64    `json:"width,omitempty"`
	Height        float64    `json:"height,omitempty"`
	MaxLabelWidth float64    `json:"max_label_width,omitempty"`
	BaseColor     string     `json:"base_color,omitempty"`
}

// Handler renders charts with one chart configuration.
type Handler struct {
	cfg     config.Config
	host    host.Host
	loc     *time.Location
	maxBody int64
	logger  *log.Logger
}

// NewHandler builds the host and time zone of cfg once for all requests.
func NewHandler(cfg config.Config, maxBody int64, logger *log.Logger) (*Handler, error) {
	h, err := host.New(cfg)
	if err != nil {
		return nil, err
	}
	loc, err := cfg.Location()
	if err != nil {
		return nil, err
	}
	if logger == nil {
		logger = log.StandardLogger()
	}
	return &Handler{cfg: cfg, host: h, loc: loc, maxBody: maxBody, logger: logger}, nil
}

// Register wires up the routes on the provided Echo instance.
func Register(e *echo.Echo, h *Handler) {
	e.POST("/render", h.render)
	e.GET("/healthz", healthz)
}

// New returns an Echo instance serving h with panic recovery, request
// logging and gzip request bodies.
func New(h *Handler) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Use(middleware.Recover())
	e.Use(RequestLogger(h.logger))
	e.Use(GzipRequestMiddleware())
	Register(e, h)
	return e
}

func healthz(c echo.Context) error {
	return c.NoContent(http.StatusOK)
}

func (h *Handler) render(c echo.Context) error {
	lr := io.LimitReader(c.Request().Body, h.maxBody)
	dec := sonic.ConfigStd.NewDecoder(lr)
	dec.DisallowUnknownFields()

	var req renderRequest
	if err := dec.Decode(&req); err != nil {
		return c.String(http.StatusBadRequest, "invalid body")
	}

	props := h.cfg.Properties
	if req.Sort != "" {
		props.Sort = req.Sort
	}
	if req.MaxLabelWidth > 0 {
		props.Layout.MaxLabelWidth = req.MaxLabelWidth
	}
	width, height := h.cfg.Canvas.Width, h.cfg.Canvas.Height
	if req.Width > 0 {
		width = req.Width
	}
	if req.Height > 0 {
		height = req.Height
	}

	doc, err := svg.New(req.ID, width, height)
	if err != nil {
		h.logger.WithError(err).Error("create document")
		return c.String(http.StatusInternalServerError, "failed to create document")
	}
	if host.IsVisible(h.cfg.Canvas.Background) {
		doc.Fill(h.cfg.Canvas.Background)
	}

	rc := gantt.RenderConfig{
		Doc:        doc,
		Data:       req.Data,
		Properties: props,
		Width:      width,
		Height:     height,
		Host:       h.host,
		Location:   h.loc,
		BaseColor:  req.BaseColor,
	}
	renderFn := gantt.Render
	if len(req.Data) == 0 {
		renderFn = gantt.RenderNoData
	}
	if _, err := renderFn(c.Request().Context(), rc); err != nil {
		switch {
		case errors.Is(err, axis.ErrSpan):
			return c.String(http.StatusUnprocessableEntity, err.Error())
		case errors.Is(err, task.ErrSortMode):
			return c.String(http.StatusBadRequest, err.Error())
		}
		h.logger.WithError(err).WithField("id", doc.ID).Error("render failed")
		return c.String(http.StatusInternalServerError, "render failed")
	}
	return c.Blob(http.StatusOK, ContentTypeSVG, []byte(doc.String()))
}
