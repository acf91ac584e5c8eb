package handlers

import (
	"fmt"
	"net/http"
	"time"

	"github.com/credimed/app-leads/internal/models"
	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/otel"
)

// ExportQuery carries the export format and optional creation-date range
type ExportQuery struct {
	Format string `form:"format,default=csv"`
	From   string `form:"from"`
	To     string `form:"to"`
}

const exportDateLayout = "2006-01-02"

// ExportData godoc
// @Summary Export back-office data
// @Description Streams leads, questionnaires, analytics events, brokers or schemes as a CSV or JSON download, optionally limited to a creation-date range.
// @Tags admin
// @Produce json
// @Produce text/csv
// @Security BearerAuth
// @Param data_type path string true "Data type" Enums(leads, questionnaires, analytics, brokers, schemes)
// @Param format query string false "Output format" Enums(csv, json) default(csv)
// @Param from query string false "Range start (YYYY-MM-DD)"
// @Param to query string false "Range end, inclusive (YYYY-MM-DD)"
// @Success 200 {string} string "file download"
// @Failure 400 {object} ErrorResponse
// @Failure 422 {object} ErrorResponse
// @Router /admin/export/{data_type} [get]
func ExportData(c *gin.Context) {
	ctx, span := otel.Tracer("").Start(c.Request.Context(), "ExportData")
	defer span.End()

	var q ExportQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid export query"})
		return
	}

	var from, to *time.Time
	if q.From != "" {
		t, err := time.Parse(exportDateLayout, q.From)
		if err != nil {
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: "from must be YYYY-MM-DD"})
			return
		}
		from = &t
	}
	if q.To != "" {
		t, err := time.Parse(exportDateLayout, q.To)
		if err != nil {
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: "to must be YYYY-MM-DD"})
			return
		}
		// the whole end day is included
		t = t.Add(24*time.Hour - time.Nanosecond)
		to = &t
	}

	dataType := c.Param("data_type")
	docs, err := deps.Export.Fetch(ctx, dataType, from, to)
	if err != nil {
		respondError(c, err)
		return
	}

	stamp := time.Now().Format(exportDateLayout)
	switch q.Format {
	case "json":
		c.Header("Content-Disposition",
			fmt.Sprintf("attachment; filename=%s_export_%s.json", dataType, stamp))
		c.JSON(http.StatusOK, docs)
	case "csv":
		out, err := deps.Export.CSV(dataType, docs)
		if err != nil {
			respondError(c, err)
			return
		}
		c.Header("Content-Disposition",
			fmt.Sprintf("attachment; filename=%s_export_%s.csv", dataType, stamp))
		c.Data(http.StatusOK, "text/csv; charset=utf-8", out)
	default:
		respondError(c, models.ErrUnknownExportFormat)
	}
}
