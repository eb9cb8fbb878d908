package http

import (
	"fmt"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/kawok-pos/internal/application/analytics"
	"github.com/jhoicas/kawok-pos/internal/application/dto"
)

// ReportHandler reportes en JSON o CSV.
type ReportHandler struct {
	uc *analytics.ReportUseCase
}

// NewReportHandler construye el handler.
func NewReportHandler(uc *analytics.ReportUseCase) *ReportHandler {
	return &ReportHandler{uc: uc}
}

// Generate godoc
// @Summary      Generar reporte
// @Tags         reports
// @Security     Bearer
// @Produce      json
// @Produce      text/csv
// @Param        type      query  string  false  "sales, stock, top-selling o stock-movements"
// @Param        fromDate  query  string  false  "YYYY-MM-DD"
// @Param        toDate    query  string  false  "YYYY-MM-DD (inclusivo)"
// @Param        format    query  string  false  "json o csv"
// @Success      200  {object}  dto.SalesReport
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/reports [get]
func (h *ReportHandler) Generate(c *fiber.Ctx) error {
	in := dto.ReportRequest{
		Type:     c.Query("type"),
		FromDate: c.Query("fromDate"),
		ToDate:   c.Query("toDate"),
		Format:   c.Query("format"),
	}
	report, err := h.uc.Generate(c.UserContext(), in)
	if err != nil {
		return err
	}
	if in.Format != analytics.FormatCSV {
		return c.JSON(report.Data)
	}
	body, err := analytics.WriteCSV(report.Rows)
	if err != nil {
		return err
	}
	c.Set(fiber.HeaderContentType, "text/csv; charset=utf-8")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`attachment; filename="%s"`, h.uc.Filename(report.Type)))
	return c.Send(body)
}
