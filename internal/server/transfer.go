package server

import (
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/cleared-dev/moneytrack/internal/report"
)

const maxImportBytes = 32 << 20

func (h *handler) dashboard(c *gin.Context) {
	c.JSON(http.StatusOK, report.BuildDashboard(c.Request.Context(), h.store, h.ref))
}

func (h *handler) export(c *gin.Context) {
	data, err := h.store.Export(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.Header("Content-Disposition", `attachment; filename="money-tracker-export-`+h.store.Now().Format("2006-01-02")+`.json"`)
	c.Data(http.StatusOK, "application/json; charset=utf-8", data)
}

func (h *handler) importData(c *gin.Context) {
	data, err := io.ReadAll(io.LimitReader(c.Request.Body, maxImportBytes))
	if err != nil {
		badRequest(c, err)
		return
	}
	if !h.store.Import(c.Request.Context(), data) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "import failed: malformed document"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"imported": true})
}

func (h *handler) clearAll(c *gin.Context) {
	h.store.ClearAll(c.Request.Context())
	c.Status(http.StatusNoContent)
}
