package server

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/cleared-dev/moneytrack/internal/id"
	"github.com/cleared-dev/moneytrack/internal/ledger"
	"github.com/cleared-dev/moneytrack/internal/report"
)

func (h *handler) listWeeklyAlerts(c *gin.Context) {
	c.JSON(http.StatusOK, h.store.WeeklyAlerts(c.Request.Context()))
}

func (h *handler) weeklyDue(c *gin.Context) {
	ctx := c.Request.Context()
	c.JSON(http.StatusOK, gin.H{
		"due":         h.store.WeeklyCheckDue(ctx),
		"weekOf":      id.WeekStart(h.store.Now()),
		"weeklySpent": h.store.WeeklySpent(ctx),
	})
}

type completeRequest struct {
	Balances map[string]float64 `json:"balances"`
}

func (h *handler) completeWeekly(c *gin.Context) {
	var req completeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	c.JSON(http.StatusCreated, h.store.CompleteWeeklyCheck(c.Request.Context(), req.Balances))
}

func (h *handler) listRecords(c *gin.Context) {
	c.JSON(http.StatusOK, h.store.MonthlyRecords(c.Request.Context()))
}

type generateRequest struct {
	Month       string   `json:"month"`
	TotalIncome *float64 `json:"totalIncome"`
	Notes       *string  `json:"notes"`
}

// generateRecord builds the record for a month and stores it, replacing
// any earlier one.
func (h *handler) generateRecord(c *gin.Context) {
	ctx := c.Request.Context()
	var req generateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	if req.Month == "" {
		req.Month = h.store.CurrentMonth()
	}
	if _, _, err := id.ParseMonth(req.Month); err != nil {
		badRequest(c, err)
		return
	}
	r := h.store.GenerateMonthlyRecord(ctx, req.Month)
	if req.TotalIncome != nil {
		r.TotalIncome = *req.TotalIncome
	}
	if req.Notes != nil {
		r.Notes = *req.Notes
	}
	c.JSON(http.StatusCreated, h.store.AddMonthlyRecord(ctx, r))
}

func (h *handler) getRecord(c *gin.Context) {
	r, ok := h.store.MonthlyRecord(c.Request.Context(), c.Param("month"))
	if !ok {
		notFound(c, "monthly record")
		return
	}
	c.JSON(http.StatusOK, r)
}

func (h *handler) updateRecord(c *gin.Context) {
	var patch ledger.RecordPatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		badRequest(c, err)
		return
	}
	r, ok := h.store.UpdateMonthlyRecord(c.Request.Context(), c.Param("month"), patch)
	if !ok {
		notFound(c, "monthly record")
		return
	}
	c.JSON(http.StatusOK, r)
}

// recordReport renders a stored record as markdown, or as HTML with
// ?format=html.
func (h *handler) recordReport(c *gin.Context) {
	r, ok := h.store.MonthlyRecord(c.Request.Context(), c.Param("month"))
	if !ok {
		notFound(c, "monthly record")
		return
	}
	md, err := report.MonthlyMarkdown(r)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if c.Query("format") != "html" {
		c.Data(http.StatusOK, "text/markdown; charset=utf-8", []byte(md))
		return
	}
	html, err := report.RenderHTML(md)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.Data(http.StatusOK, "text/html; charset=utf-8", []byte(html))
}
