package api

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"MomentumReport/internal/domain/models"
	domrepo "MomentumReport/internal/domain/repository"
	"MomentumReport/internal/usecase"
	xhttp "MomentumReport/pkg/http"
	xlogger "MomentumReport/pkg/logger"
	"MomentumReport/pkg/util"
)

// ReportEchoHandler serves generated reports and on-demand delivery.
type ReportEchoHandler struct {
	logger    *xlogger.Logger
	generator *usecase.ReportGenerator
	service   *usecase.ReportService
	archive   domrepo.ReportArchive
	loc       *time.Location
}

// NewReportEchoHandler wires the report routes. archive may be nil.
func NewReportEchoHandler(
	logger *xlogger.Logger,
	generator *usecase.ReportGenerator,
	service *usecase.ReportService,
	archive domrepo.ReportArchive,
	loc *time.Location,
) *ReportEchoHandler {
	if loc == nil {
		loc = time.UTC
	}
	return &ReportEchoHandler{
		logger:    logger,
		generator: generator,
		service:   service,
		archive:   archive,
		loc:       loc,
	}
}

func (h *ReportEchoHandler) RegisterRoutes(e *echo.Echo) {
	e.GET("/healthz", h.Health)

	g := e.Group("/api/report")
	g.GET("", h.Report)
	g.GET("/markdown", h.Markdown)
	g.GET("/html", h.HTML)
	g.POST("/send", h.Send)
	if h.archive != nil {
		g.GET("/history", h.History)
	}
}

func (h *ReportEchoHandler) Health(c echo.Context) error {
	return xhttp.SuccessResponse(c, map[string]string{"status": "ok"})
}

func (h *ReportEchoHandler) Report(c echo.Context) error {
	doc, werr := h.document(c)
	if doc == nil {
		return werr
	}
	c.Response().Header().Set(echo.HeaderCacheControl, "private, max-age=60")
	return xhttp.SuccessResponse(c, doc)
}

func (h *ReportEchoHandler) Markdown(c echo.Context) error {
	doc, werr := h.document(c)
	if doc == nil {
		return werr
	}
	md, err := h.service.Render(doc)
	if err != nil {
		h.logger.Error("render markdown failed", xlogger.Error(err))
		return xhttp.InternalServerErrorResponse(c)
	}
	return c.Blob(http.StatusOK, "text/markdown; charset=utf-8", []byte(md))
}

func (h *ReportEchoHandler) HTML(c echo.Context) error {
	doc, werr := h.document(c)
	if doc == nil {
		return werr
	}
	html, err := h.service.RenderHTML(doc)
	if err != nil {
		h.logger.Error("render html failed", xlogger.Error(err))
		return xhttp.InternalServerErrorResponse(c)
	}
	return c.HTML(http.StatusOK, html)
}

// Send delivers the report for the requested date. A failed delivery
// answers 502 with the delivery result as payload.
func (h *ReportEchoHandler) Send(c echo.Context) error {
	req := &models.SendRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}
	date, err := util.ParseDate(req.Date, h.loc)
	if err != nil {
		return xhttp.AppErrorResponse(c, xhttp.BadRequestErrorf("invalid date %q", req.Date).WithError(err))
	}

	ctx := c.Request().Context()
	doc, err := h.generator.Report(ctx, date)
	if err != nil {
		h.logger.Error("report generation failed", xlogger.Error(err))
		return xhttp.AppErrorResponse(c, xhttp.InternalErrorf("report generation failed").WithError(err))
	}

	res := h.service.Send(ctx, doc, req.Force)
	if !res.Success && !res.Skipped {
		return xhttp.DataResponse(c, http.StatusBadGateway, res)
	}
	return xhttp.SuccessResponse(c, res)
}

func (h *ReportEchoHandler) History(c echo.Context) error {
	req := &models.HistoryRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}

	res, err := h.archive.Recent(c.Request().Context(), req.Limit)
	if err != nil {
		h.logger.Error("report history failed", xlogger.Error(err))
		return xhttp.AppErrorResponse(c, xhttp.UpstreamErrorf("report archive unavailable").WithError(err))
	}
	return xhttp.SuccessResponse(c, res)
}

// document resolves the date query and returns the (possibly cached) report.
// On failure the error response is already written and doc is nil; the
// returned error is the result of that write.
func (h *ReportEchoHandler) document(c echo.Context) (*models.ReportDocument, error) {
	req := &models.ReportRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return nil, xhttp.BadRequestResponse(c, verr)
	}
	date, err := util.ParseDate(req.Date, h.loc)
	if err != nil {
		return nil, xhttp.AppErrorResponse(c, xhttp.BadRequestErrorf("invalid date %q", req.Date).WithError(err))
	}

	doc, err := h.generator.Report(c.Request().Context(), date)
	if err != nil {
		h.logger.Error("report generation failed", xlogger.Error(err))
		return nil, xhttp.AppErrorResponse(c, xhttp.InternalErrorf("report generation failed").WithError(err))
	}
	return doc, nil
}
