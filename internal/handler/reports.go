package handler

import (
	"fmt"
	"net/http"
	"time"

	"github.com/guustavovelos0/artisan/internal/apierror"
	"github.com/guustavovelos0/artisan/internal/service"

	"github.com/gin-gonic/gin"
)

// ReportsHandler streams spreadsheet exports.
type ReportsHandler struct{ svc service.ReportService }

func NewReportsHandler(svc service.ReportService) *ReportsHandler {
	return &ReportsHandler{svc: svc}
}

// Materials exports the full materials inventory as an xlsx download.
func (h *ReportsHandler) Materials(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	f, err := h.svc.MaterialsWorkbook(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("Failed to build report"))
		return
	}
	defer f.Close()

	fileName := fmt.Sprintf("materials_%s.xlsx", time.Now().Format("2006-01-02"))
	c.Header("Content-Disposition", `attachment; filename="`+fileName+`"`)
	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	if err := f.Write(c.Writer); err != nil {
		c.Status(http.StatusInternalServerError)
	}
}
