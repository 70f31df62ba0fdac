package handler

import (
	"github.com/labstack/echo/v4"

	"github.com/renanvonb/nomo-backend/internal/middleware"
)

// RegisterRoutes sets up all API routes
func RegisterRoutes(
	e *echo.Echo,
	rateLimiter *middleware.RateLimiter,
	transactionHandler *TransactionHandler,
	reportHandler *ReportHandler,
	walletHandler *WalletHandler,
	payeeHandler *PayeeHandler,
	categoryHandler *CategoryHandler,
	receiptHandler *ReceiptHandler,
	liveHandler *LiveHandler,
) {
	// API version 1
	api := e.Group("/api/v1")
	api.Use(middleware.WorkspaceMiddleware())
	api.Use(middleware.RateLimitMiddleware(rateLimiter))

	// Transaction routes
	transactions := api.Group("/transactions")
	transactions.POST("", transactionHandler.CreateTransaction)
	transactions.GET("", transactionHandler.GetTransactions)
	transactions.GET("/:id", transactionHandler.GetTransaction)
	transactions.PUT("/:id", transactionHandler.UpdateTransaction)
	transactions.DELETE("/:id", transactionHandler.DeleteTransaction)
	transactions.PATCH("/:id/toggle-settled", transactionHandler.ToggleSettlement)
	transactions.POST("/:id/receipt", receiptHandler.UploadReceipt)
	transactions.GET("/:id/receipt", receiptHandler.GetReceiptURL)
	transactions.DELETE("/:id/receipt", receiptHandler.DeleteReceipt)

	// Report routes
	reports := api.Group("/reports")
	reports.GET("/summary", reportHandler.GetSummary)

	// Wallet routes
	wallets := api.Group("/wallets")
	wallets.POST("", walletHandler.CreateWallet)
	wallets.GET("", walletHandler.GetWallets)
	wallets.PUT("/:id", walletHandler.UpdateWallet)
	wallets.DELETE("/:id", walletHandler.DeleteWallet)

	// Payee routes
	payees := api.Group("/payees")
	payees.POST("", payeeHandler.CreatePayee)
	payees.GET("", payeeHandler.GetPayees)
	payees.PUT("/:id", payeeHandler.UpdatePayee)
	payees.DELETE("/:id", payeeHandler.DeletePayee)

	// Category routes
	categories := api.Group("/categories")
	categories.POST("", categoryHandler.CreateCategory)
	categories.GET("", categoryHandler.GetCategories)
	categories.PUT("/:id", categoryHandler.UpdateCategory)
	categories.DELETE("/:id", categoryHandler.DeleteCategory)
	categories.POST("/:id/subcategories", categoryHandler.CreateSubcategory)
	categories.GET("/:id/subcategories", categoryHandler.GetSubcategories)

	// Subcategory routes
	subcategories := api.Group("/subcategories")
	subcategories.PUT("/:id", categoryHandler.UpdateSubcategory)
	subcategories.DELETE("/:id", categoryHandler.DeleteSubcategory)

	// WebSocket endpoint sits outside the versioned group; the workspace
	// comes from the query string on the handshake
	e.GET("/ws", liveHandler.HandleWS)
}
