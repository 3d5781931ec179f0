package web

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/BerylCAtieno/persona-insights/internal/cache"
	"github.com/BerylCAtieno/persona-insights/internal/httperror"
	"github.com/BerylCAtieno/persona-insights/internal/middleware"
	"github.com/BerylCAtieno/persona-insights/internal/models"
	"github.com/BerylCAtieno/persona-insights/internal/render"
)

const (
	indexTemplate     = "index.html"
	generationFailure = "Insight generation failed. Please check the service configuration and try again."
)

// InsightService generates one insight result per call.
type InsightService interface {
	GenerateInsights(ctx context.Context, persona models.PersonaAttributes, challenges models.ChallengeList) (models.Result, error)
	SchemaVersion() int
}

// InsightHandler serves the persona form, the JSON API and report downloads.
type InsightHandler struct {
	service InsightService
	reports *cache.ReportStore
	logger  *slog.Logger
}

func NewInsightHandler(service InsightService, reports *cache.ReportStore, logger *slog.Logger) *InsightHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &InsightHandler{
		service: service,
		reports: reports,
		logger:  logger,
	}
}

// RegisterRoutes mounts the handler.
func (h *InsightHandler) RegisterRoutes(r gin.IRouter) {
	r.GET("/", h.ShowForm)
	r.POST("/insights", h.SubmitForm)
	r.POST("/api/insights", h.CreateInsights)
	r.GET("/reports/:id/download", h.DownloadReport)
}

// ShowForm renders the empty persona form.
func (h *InsightHandler) ShowForm(c *gin.Context) {
	c.HTML(http.StatusOK, indexTemplate, h.newPage(defaultForm()))
}

// SubmitForm collects the form, generates insights and renders the result under the form.
func (h *InsightHandler) SubmitForm(c *gin.Context) {
	in, challenges, err := CollectForm(c)
	page := h.newPage(in)
	if err != nil {
		var inputErr *InputError
		if errors.As(err, &inputErr) {
			page.Errors = inputErr.Fields
		}
		c.HTML(http.StatusBadRequest, indexTemplate, page)
		return
	}

	result, reportID, err := h.generate(c, in.PersonaAttributes, challenges)
	if err != nil {
		apiErr := httperror.FromError(err)
		page.Failure = generationFailure
		c.HTML(apiErr.Status, indexTemplate, page)
		return
	}

	view := render.NewView(result, downloadURL(reportID))
	page.Result = &view
	c.HTML(http.StatusOK, indexTemplate, page)
}

// CreateInsights is the JSON form of SubmitForm. Unparseable model replies are a 200 with an
// "error" result; only generation failures are API errors.
func (h *InsightHandler) CreateInsights(c *gin.Context) {
	req, err := CollectJSON(c)
	if err != nil {
		h.respondError(c, err)
		return
	}

	result, reportID, err := h.generate(c, req.Persona, req.ChallengeList())
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, models.Envelope(result, h.service.SchemaVersion(), reportID))
}

// DownloadReport sends a stored report as an indented JSON attachment.
func (h *InsightHandler) DownloadReport(c *gin.Context) {
	report, ok := h.reports.Get(c.Param("id"))
	if !ok {
		h.respondError(c, httperror.NewNotFound("report not found or expired"))
		return
	}
	data, err := render.ExportJSON(report)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", render.DownloadFilename))
	c.Data(http.StatusOK, "application/json; charset=utf-8", data)
}

func (h *InsightHandler) generate(
	c *gin.Context,
	persona models.PersonaAttributes,
	challenges models.ChallengeList,
) (models.Result, string, error) {
	result, err := h.service.GenerateInsights(c.Request.Context(), persona, challenges)
	if err != nil {
		h.logger.Error("insight_generation_failed",
			"request_id", middleware.GetRequestID(c),
			"err", err,
		)
		return nil, "", err
	}

	var reportID string
	if report, ok := result.(*models.InsightReport); ok {
		reportID = h.reports.Put(report)
	}
	h.logger.Info("insight_generated",
		"request_id", middleware.GetRequestID(c),
		"report_id", reportID,
		"parsed", reportID != "",
	)
	return result, reportID, nil
}

func (h *InsightHandler) respondError(c *gin.Context, err error) {
	_ = c.Error(err)
	status, body := httperror.Response(err, middleware.GetRequestID(c))
	c.JSON(status, body)
}

func downloadURL(reportID string) string {
	if reportID == "" {
		return ""
	}
	return "/reports/" + reportID + "/download"
}
