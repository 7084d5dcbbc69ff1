// Package server exposes the ledger as a JSON HTTP API.
package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/zeromicro/go-zero/core/logx"

	"github.com/cleared-dev/moneytrack/internal/buildinfo"
	"github.com/cleared-dev/moneytrack/internal/ledger"
	"github.com/cleared-dev/moneytrack/internal/model"
)

const shutdownTimeout = 5 * time.Second

// Options configures the router.
type Options struct {
	AllowedOrigins []string
	Reference      model.Currency
}

type handler struct {
	store *ledger.Store
	ref   model.Currency
}

// NewRouter builds the gin engine serving the /api routes over store.
func NewRouter(store *ledger.Store, opts Options) *gin.Engine {
	if opts.Reference == "" {
		opts.Reference = model.CurrencyTHB
	}
	h := &handler{store: store, ref: opts.Reference}

	r := gin.New()
	r.Use(gin.Recovery(), accessLog())
	if len(opts.AllowedOrigins) > 0 {
		r.Use(cors.New(cors.Config{
			AllowOrigins:     opts.AllowedOrigins,
			AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
			AllowHeaders:     []string{"Origin", "Content-Type", "Content-Length", "Accept-Encoding", "Authorization"},
			ExposeHeaders:    []string{"Content-Length", "Content-Disposition"},
			AllowCredentials: true,
		}))
	}

	r.GET("/healthz", h.health)

	api := r.Group("/api")

	accounts := api.Group("/accounts")
	accounts.GET("", h.listAccounts)
	accounts.POST("", h.createAccount)
	accounts.GET("/default", h.defaultAccount)
	accounts.PATCH("/:id", h.updateAccount)
	accounts.DELETE("/:id", h.deleteAccount)

	api.GET("/banks", h.listBanks)

	budgets := api.Group("/budgets")
	budgets.GET("", h.listBudgets)
	budgets.POST("", h.saveBudget)
	budgets.GET("/current", h.currentBudget)
	budgets.GET("/:month/progress", h.budgetProgress)

	expenses := api.Group("/expenses")
	expenses.GET("", h.listExpenses)
	expenses.POST("", h.createExpense)
	expenses.DELETE("/:id", h.deleteExpense)

	income := api.Group("/income")
	income.GET("", h.listIncome)
	income.POST("", h.createIncome)
	income.DELETE("/:id", h.deleteIncome)

	exchanges := api.Group("/exchanges")
	exchanges.GET("", h.listExchanges)
	exchanges.POST("", h.createExchange)

	settings := api.Group("/settings/exchange")
	settings.GET("", h.getExchangeSettings)
	settings.PUT("", h.putExchangeSettings)
	settings.PUT("/rates", h.putRate)

	alerts := api.Group("/weekly-alerts")
	alerts.GET("", h.listWeeklyAlerts)
	alerts.GET("/due", h.weeklyDue)
	alerts.POST("/complete", h.completeWeekly)

	records := api.Group("/monthly-records")
	records.GET("", h.listRecords)
	records.POST("/generate", h.generateRecord)
	records.GET("/:month", h.getRecord)
	records.PATCH("/:month", h.updateRecord)
	records.GET("/:month/report", h.recordReport)

	api.GET("/dashboard", h.dashboard)
	api.GET("/export", h.export)
	api.POST("/import", h.importData)
	api.DELETE("/data", h.clearAll)

	return r
}

// Run serves h on addr until ctx is cancelled, then shuts down
// gracefully.
func Run(ctx context.Context, addr string, h http.Handler) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           h,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logx.Infof("listening on %s", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("serving: %w", err)
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutting down: %w", err)
	}
	return nil
}

func (h *handler) health(c *gin.Context) {
	status := "ok"
	if err := h.store.Substrate().LastError(); err != nil {
		status = "degraded"
	}
	c.JSON(http.StatusOK, gin.H{"status": status, "version": buildinfo.Version})
}

func accessLog() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		logx.WithContext(c.Request.Context()).WithDuration(time.Since(start)).Infow("request",
			logx.Field("method", c.Request.Method),
			logx.Field("path", c.FullPath()),
			logx.Field("status", c.Writer.Status()))
	}
}

func badRequest(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
}

func notFound(c *gin.Context, what string) {
	c.JSON(http.StatusNotFound, gin.H{"error": what + " not found"})
}

func invalid(c *gin.Context, errs []ledger.ValidationError) bool {
	if len(errs) == 0 {
		return false
	}
	details := make([]gin.H, len(errs))
	for i, e := range errs {
		details[i] = gin.H{"field": e.Field, "error": e.Description}
	}
	c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "validation failed", "details": details})
	return true
}
