package router

import (
	"github.com/gin-gonic/gin"

	"naijatax/internal/handler"
	"naijatax/internal/middleware"
	"naijatax/internal/service"
)

// Handlers groups the HTTP handlers mounted by Setup.
type Handlers struct {
	Health *handler.HealthHandler
	Tax    *handler.TaxHandler
	Record *handler.RecordHandler
	Asset  *handler.AssetHandler
	WHT    *handler.WHTHandler
	VAT    *handler.VATHandler
	Report *handler.ReportHandler
	Stats  *handler.StatsHandler
}

// Setup configures the Gin engine with all routes and middleware.
func Setup(verifier service.TokenVerifier, h Handlers, allowedOrigins []string) *gin.Engine {
	r := gin.New()

	// Global middleware
	r.Use(middleware.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger())
	r.Use(middleware.CORS(allowedOrigins))

	// Health checks
	r.GET("/healthz", h.Health.Liveness)
	r.GET("/readyz", h.Health.Readiness)

	// Every API route requires a valid bearer token
	v1 := r.Group("/api/v1")
	v1.Use(middleware.AuthMiddleware(verifier))

	// Tax computation
	tax := v1.Group("/tax")
	tax.GET("/summary", h.Tax.Summary)
	tax.GET("/summaries", h.Tax.Summaries)
	tax.GET("/rate-tables/:year", h.Tax.RateTable)
	tax.GET("/assets/:id/schedule", h.Asset.Schedule)
	calc := tax.Group("/calculate")
	calc.POST("/pit", h.Tax.CalculatePIT)
	calc.POST("/cit", h.Tax.CalculateCIT)
	calc.POST("/wht", h.Tax.CalculateWHT)
	calc.POST("/reliefs", h.Tax.CalculateReliefs)
	calc.POST("/vat", h.Tax.CalculateVAT)

	// Records
	income := v1.Group("/income")
	income.POST("", h.Record.CreateIncome)
	income.GET("", h.Record.ListIncome)
	income.DELETE("/:id", h.Record.DeleteIncome)

	expenses := v1.Group("/expenses")
	expenses.POST("", h.Record.CreateExpense)
	expenses.GET("", h.Record.ListExpenses)
	expenses.DELETE("/:id", h.Record.DeleteExpense)

	payments := v1.Group("/payments")
	payments.POST("", h.Record.CreatePayment)
	payments.GET("", h.Record.ListPayments)
	payments.DELETE("/:id", h.Record.DeletePayment)

	v1.GET("/deductions/:year", h.Record.GetDeductions)
	v1.PUT("/deductions/:year", h.Record.SaveDeductions)

	v1.GET("/profile", h.Record.GetProfile)
	v1.PUT("/profile", h.Record.SaveProfile)

	assets := v1.Group("/assets")
	assets.POST("", h.Asset.Create)
	assets.GET("", h.Asset.List)
	assets.DELETE("/:id", h.Asset.Delete)

	wht := v1.Group("/wht")
	wht.POST("", h.WHT.Create)
	wht.GET("", h.WHT.List)
	wht.DELETE("/:id", h.WHT.Delete)

	// VAT
	vat := v1.Group("/vat")
	vat.POST("/transactions", h.VAT.CreateTransaction)
	vat.GET("/transactions", h.VAT.ListTransactions)
	vat.DELETE("/transactions/:id", h.VAT.DeleteTransaction)
	vat.GET("/periods", h.VAT.Periods)
	vat.PUT("/filings/:year/:month", h.VAT.UpdateFiling)
	vat.POST("/reminders", h.VAT.SendReminders)

	// Reports
	reports := v1.Group("/reports")
	reports.GET("/summary.csv", h.Report.SummaryCSV)
	reports.GET("/summary.xlsx", h.Report.SummaryXLSX)
	reports.GET("/summary.pdf", h.Report.SummaryPDF)
	reports.POST("/archive", h.Report.Archive)

	v1.GET("/stats", h.Stats.GetStats)

	return r
}
