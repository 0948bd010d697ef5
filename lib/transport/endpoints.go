package transport

import (
	"github.com/labstack/echo/v4"
	"github.com/rtphub/rtphub.go/controllers"
	"github.com/rtphub/rtphub.go/lib/service"
)

func RegisterV2Endpoints(svc *service.RtphubService, e *echo.Echo, secured *echo.Group, securedWithStrictRateLimit *echo.Group, strictRateLimitMiddleware echo.MiddlewareFunc, adminMw echo.MiddlewareFunc, logMw echo.MiddlewareFunc) {
	if svc.Config.AllowAccountCreation {
		e.POST("/v2/users", controllers.NewCreateUserController(svc).CreateUser, strictRateLimitMiddleware, adminMw, logMw)
	}
	e.POST("/auth", controllers.NewAuthController(svc).Auth, strictRateLimitMiddleware, logMw)
	e.GET("/healthz", controllers.NewHealthController(svc).Health, logMw)

	paymentCtrl := controllers.NewPaymentController(svc)
	receiptCtrl := controllers.NewReceiptController(svc)
	cacheClient := CreateCacheClient()

	secured.POST("/v2/logout", controllers.NewLogoutController(svc).Logout)
	// record creation sits behind the strict limit, reads stay on the default
	securedWithStrictRateLimit.POST("/v2/payments", paymentCtrl.AddPaymentRequest)
	secured.GET("/v2/payments", paymentCtrl.GetPaymentRequests)
	secured.GET("/v2/payments/:id", paymentCtrl.GetPaymentRequest)
	securedWithStrictRateLimit.POST("/v2/recipients", controllers.NewRecipientController(svc).AddRecipient)
	secured.GET("/v2/recipients", controllers.NewRecipientController(svc).GetRecipients)
	secured.GET("/v2/receipts", receiptCtrl.GetReceipts, cacheClient.Middleware())
	secured.GET("/v2/receipts/:id/export", receiptCtrl.ExportReceipt)
	secured.GET("/v2/stats", controllers.NewStatsController(svc).GetStats)
	secured.GET("/v2/balance", controllers.NewBalanceController(svc).Balance)

	// external settlement driver for deployments without the event feed
	if svc.Config.AdminToken != "" {
		e.PUT("/v2/admin/payments/:id/status", controllers.NewUpdatePaymentController(svc).UpdatePaymentStatus, strictRateLimitMiddleware, adminMw, logMw)
	}
}
