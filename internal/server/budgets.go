package server

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/cleared-dev/moneytrack/internal/ledger"
	"github.com/cleared-dev/moneytrack/internal/model"
	"github.com/cleared-dev/moneytrack/internal/report"
)

func (h *handler) listBudgets(c *gin.Context) {
	c.JSON(http.StatusOK, h.store.Budgets(c.Request.Context()))
}

// saveBudget replaces the budget for the posted month. Spent totals are
// carried over from the existing budget unless the request sets them.
func (h *handler) saveBudget(c *gin.Context) {
	ctx := c.Request.Context()
	var b model.Budget
	if err := c.ShouldBindJSON(&b); err != nil {
		badRequest(c, err)
		return
	}
	if b.Month == "" {
		b.Month = h.store.CurrentMonth()
	}
	if invalid(c, ledger.ValidateBudget(b)) {
		return
	}
	c.JSON(http.StatusCreated, h.store.SaveBudget(ctx, b))
}

func (h *handler) currentBudget(c *gin.Context) {
	b, ok := h.store.CurrentBudget(c.Request.Context())
	if !ok {
		notFound(c, "budget")
		return
	}
	c.JSON(http.StatusOK, b)
}

func (h *handler) budgetProgress(c *gin.Context) {
	b, ok := h.store.BudgetFor(c.Request.Context(), c.Param("month"))
	if !ok {
		notFound(c, "budget")
		return
	}
	c.JSON(http.StatusOK, report.BudgetProgress(b))
}
