package handlers

import (
	"github.com/gin-gonic/gin"

	portssvc "github.com/aqsaty/installment_app/internal/core/ports/services"
)

// RegisterRoutes sets up all application routes, injecting dependencies
// through the service container interfaces.
func RegisterRoutes(r *gin.Engine, services *portssvc.ServiceContainer) {
	// Health check for load balancers and probes
	r.GET("/health", func(c *gin.Context) {
		c.String(200, "OK")
	})

	v1 := r.Group("/api/v1")
	registerContractRoutes(v1, services)
}

// registerContractRoutes registers the contract, schedule, payment and admin
// correction routes.
func registerContractRoutes(group *gin.RouterGroup, services *portssvc.ServiceContainer) {
	contractHandler := newContractHandler(services.Contract)
	scheduleHandler := newScheduleHandler(services.Schedule)
	paymentHandler := newPaymentHandler(services.Payment)
	adminHandler := newAdminHandler(services.Admin)

	contracts := group.Group("/contracts")
	{
		contracts.POST("", contractHandler.createContract)
		contracts.GET("/:contractID", contractHandler.getContract)
		contracts.GET("/:contractID/transactions", contractHandler.listTransactions)

		contracts.GET("/:contractID/schedule", scheduleHandler.getSchedule)
		contracts.PUT("/:contractID/schedule", scheduleHandler.updateSchedule)

		contracts.POST("/:contractID/payments", paymentHandler.createPayment)

		contracts.POST("/:contractID/admin-actions", adminHandler.adminAction)
		contracts.PUT("/:contractID/transactions/:transactionID", adminHandler.updateTransaction)
	}
}
