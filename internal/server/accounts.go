package server

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/cleared-dev/moneytrack/internal/ledger"
	"github.com/cleared-dev/moneytrack/internal/model"
)

func (h *handler) listAccounts(c *gin.Context) {
	c.JSON(http.StatusOK, h.store.Accounts(c.Request.Context()))
}

func (h *handler) createAccount(c *gin.Context) {
	var a model.Account
	if err := c.ShouldBindJSON(&a); err != nil {
		badRequest(c, err)
		return
	}
	if invalid(c, ledger.ValidateAccount(a)) {
		return
	}
	a = a.WithBankDefaults()
	a.LastUpdated = h.store.Now()
	c.JSON(http.StatusCreated, h.store.AddAccount(c.Request.Context(), a))
}

func (h *handler) defaultAccount(c *gin.Context) {
	a, ok := h.store.DefaultAccount(c.Request.Context())
	if !ok {
		notFound(c, "default account")
		return
	}
	c.JSON(http.StatusOK, a)
}

func (h *handler) updateAccount(c *gin.Context) {
	ctx := c.Request.Context()
	var patch model.AccountPatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		badRequest(c, err)
		return
	}
	id := c.Param("id")
	existing, ok := h.store.Account(ctx, id)
	if !ok {
		notFound(c, "account")
		return
	}
	if invalid(c, ledger.ValidateAccount(patch.Apply(existing))) {
		return
	}
	if patch.LastUpdated == nil {
		now := h.store.Now()
		patch.LastUpdated = &now
	}
	h.store.UpdateAccount(ctx, id, patch)
	a, _ := h.store.Account(ctx, id)
	c.JSON(http.StatusOK, a)
}

func (h *handler) deleteAccount(c *gin.Context) {
	if !h.store.DeleteAccount(c.Request.Context(), c.Param("id")) {
		notFound(c, "account")
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *handler) listBanks(c *gin.Context) {
	if country := c.Query("country"); country != "" {
		c.JSON(http.StatusOK, model.BanksIn(model.Country(country)))
		return
	}
	c.JSON(http.StatusOK, model.Banks)
}
