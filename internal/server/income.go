package server

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/cleared-dev/moneytrack/internal/ledger"
	"github.com/cleared-dev/moneytrack/internal/model"
)

func (h *handler) listIncome(c *gin.Context) {
	c.JSON(http.StatusOK, h.store.Income(c.Request.Context()))
}

func (h *handler) createIncome(c *gin.Context) {
	ctx := c.Request.Context()
	var in model.Income
	if err := c.ShouldBindJSON(&in); err != nil {
		badRequest(c, err)
		return
	}
	if invalid(c, ledger.ValidateIncome(in, ledger.NewAccountIndex(h.store.Accounts(ctx)))) {
		return
	}
	recorded, credited := h.store.RecordIncome(ctx, in)
	c.JSON(http.StatusCreated, gin.H{"income": recorded, "credited": credited})
}

func (h *handler) deleteIncome(c *gin.Context) {
	if !h.store.DeleteIncome(c.Request.Context(), c.Param("id")) {
		notFound(c, "income")
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *handler) listExchanges(c *gin.Context) {
	c.JSON(http.StatusOK, h.store.CurrencyExchanges(c.Request.Context()))
}

func (h *handler) createExchange(c *gin.Context) {
	ctx := c.Request.Context()
	var p ledger.ExchangeParams
	if err := c.ShouldBindJSON(&p); err != nil {
		badRequest(c, err)
		return
	}
	if invalid(c, ledger.ValidateExchange(p, ledger.NewAccountIndex(h.store.Accounts(ctx)))) {
		return
	}
	x, err := h.store.RecordExchange(ctx, p)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, x)
}

type rateRequest struct {
	From model.Currency `json:"from" binding:"required"`
	To   model.Currency `json:"to" binding:"required"`
	Rate float64        `json:"rate" binding:"required,gt=0"`
}

func (h *handler) getExchangeSettings(c *gin.Context) {
	c.JSON(http.StatusOK, h.store.ExchangeSettings(c.Request.Context()))
}

func (h *handler) putExchangeSettings(c *gin.Context) {
	var s model.ExchangeSettings
	if err := c.ShouldBindJSON(&s); err != nil {
		badRequest(c, err)
		return
	}
	if s.Rates == nil {
		s.Rates = map[string]float64{}
	}
	s.LastUpdated = h.store.Now()
	h.store.SetExchangeSettings(c.Request.Context(), s)
	c.JSON(http.StatusOK, s)
}

func (h *handler) putRate(c *gin.Context) {
	var req rateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	if !req.From.Valid() || !req.To.Valid() {
		badRequest(c, errors.New("unknown currency"))
		return
	}
	c.JSON(http.StatusOK, h.store.SetRate(c.Request.Context(), req.From, req.To, req.Rate))
}
