package server

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/cleared-dev/moneytrack/internal/ledger"
	"github.com/cleared-dev/moneytrack/internal/model"
)

// listExpenses filters by ?month=YYYY-MM or ?week=YYYY-MM-DD, or returns
// the newest ?limit=n.
func (h *handler) listExpenses(c *gin.Context) {
	ctx := c.Request.Context()
	switch {
	case c.Query("month") != "":
		c.JSON(http.StatusOK, orEmpty(h.store.ExpensesForMonth(ctx, c.Query("month"))))
	case c.Query("week") != "":
		c.JSON(http.StatusOK, orEmpty(h.store.ExpensesForWeek(ctx, c.Query("week"))))
	case c.Query("limit") != "":
		n, err := strconv.Atoi(c.Query("limit"))
		if err != nil || n < 0 {
			badRequest(c, fmt.Errorf("invalid limit %q", c.Query("limit")))
			return
		}
		c.JSON(http.StatusOK, h.store.RecentExpenses(ctx, n))
	default:
		c.JSON(http.StatusOK, h.store.Expenses(ctx))
	}
}

func orEmpty[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}

func (h *handler) createExpense(c *gin.Context) {
	ctx := c.Request.Context()
	var e model.Expense
	if err := c.ShouldBindJSON(&e); err != nil {
		badRequest(c, err)
		return
	}
	if e.AccountID == "" {
		if def, ok := h.store.DefaultAccount(ctx); ok {
			e.AccountID = def.ID
		}
	}
	if invalid(c, ledger.ValidateExpense(e, ledger.NewAccountIndex(h.store.Accounts(ctx)))) {
		return
	}
	c.JSON(http.StatusCreated, h.store.AddExpense(ctx, e))
}

func (h *handler) deleteExpense(c *gin.Context) {
	if !h.store.DeleteExpense(c.Request.Context(), c.Param("id")) {
		notFound(c, "expense")
		return
	}
	c.Status(http.StatusNoContent)
}
