package handler

import (
	"github.com/gastos-app/gastos-backend/internal/middleware"
	"github.com/labstack/echo/v4"
)

// RegisterRoutes sets up all API routes
func RegisterRoutes(e *echo.Echo, authMiddleware *middleware.AuthMiddleware, rateLimiter *middleware.RateLimiter, authHandler *AuthHandler, profileHandler *ProfileHandler, categoryHandler *CategoryHandler, expenseHandler *ExpenseHandler, recurringHandler *RecurringHandler, budgetHandler *BudgetHandler, reportHandler *ReportHandler, exportHandler *ExportHandler) {
	// API version 1
	api := e.Group("/api/v1")
	api.Use(authMiddleware.Authenticate())
	api.Use(rateLimiter.RateLimitMiddleware())

	// Auth routes
	auth := api.Group("/auth")
	auth.POST("/callback", authHandler.Callback)
	auth.GET("/me", authHandler.Me)
	auth.POST("/logout", authHandler.Logout)

	// Household members
	api.GET("/users", profileHandler.ListUsers)

	// Category catalog
	api.GET("/categories", categoryHandler.ListCategories)

	// Expense routes
	expenses := api.Group("/expenses")
	expenses.POST("", expenseHandler.CreateExpense)
	expenses.GET("", expenseHandler.GetExpenses)
	expenses.PUT("/:id", expenseHandler.UpdateExpense)
	expenses.DELETE("/:id", expenseHandler.DeleteExpense)

	// Recurring template routes
	recurring := api.Group("/recurring")
	recurring.POST("", recurringHandler.CreateTemplate)
	recurring.GET("", recurringHandler.GetTemplates)
	recurring.DELETE("/:id", recurringHandler.DeactivateTemplate)

	// Budget routes
	budgets := api.Group("/budgets")
	budgets.PUT("/:year/:month", budgetHandler.SetBudget)
	budgets.GET("/:year/:month", budgetHandler.GetBudget)

	// Report routes
	api.GET("/reports/monthly", reportHandler.GetMonthlyReport)

	// Export routes
	api.GET("/export", exportHandler.ExportExpenses)
}
