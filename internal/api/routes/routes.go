// server/internal/api/routes/routes.go
package routes

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"shipping-admin-api-server/internal/api/handlers"
	"shipping-admin-api-server/internal/api/middleware"
	"shipping-admin-api-server/internal/auth"
	"shipping-admin-api-server/internal/metrics"
	"shipping-admin-api-server/internal/otp"
	"shipping-admin-api-server/internal/s3"
	"shipping-admin-api-server/internal/socket"
	"shipping-admin-api-server/internal/store"
)

// SetupRouter wires every handler onto the gin engine.
func SetupRouter(
	st store.Store,
	authManager *auth.Manager,
	otpIssuer *otp.Issuer,
	s3Uploader *s3.Uploader,
	wsHub *socket.Hub,
) *gin.Engine {
	router := gin.Default()
	router.Use(metrics.Middleware())

	corsConfig := cors.DefaultConfig()
	corsConfig.AllowAllOrigins = true
	corsConfig.AllowHeaders = append(corsConfig.AllowHeaders, "Authorization")
	router.Use(cors.New(corsConfig))

	authHandler := &handlers.AuthHandler{Store: st, Auth: authManager, OTP: otpIssuer}
	cityHandler := &handlers.CityHandler{Store: st}
	driverHandler := &handlers.DriverHandler{Store: st}
	shipmentHandler := &handlers.ShipmentHandler{Store: st, Hub: wsHub, S3Uploader: s3Uploader}
	userHandler := &handlers.UserHandler{Store: st}
	webSocketHandler := &handlers.WebSocketHandler{Hub: wsHub, Auth: authManager}

	metrics.RegisterDefault()
	router.GET("/metrics", gin.WrapH(metrics.Handler()))

	api := router.Group("/api")
	{
		// WebSocket route, token checked in the handler
		api.GET("/ws", webSocketHandler.ServeWs)

		// === ROUTES WITHOUT AUTHENTICATION ===
		authGroup := api.Group("/auth")
		{
			authGroup.POST("/login", authHandler.Login)
			authGroup.POST("/register", authHandler.Register)
			authGroup.POST("/verify-otp", authHandler.VerifyOTP)
			authGroup.GET("/verify", middleware.Authenticate(authManager), authHandler.VerifyToken)
		}

		// Public tracking lookup, no JWT required
		api.GET("/shipments/:trackingNumber/track", shipmentHandler.GetShipment)

		// === PROTECTED ROUTES ===
		protected := api.Group("/")
		protected.Use(middleware.Authenticate(authManager))
		{
			// City and route-map management, admin only
			cities := protected.Group("/cities")
			cities.Use(middleware.Authorize("admin"))
			{
				cities.GET("/", cityHandler.ListCities)
				cities.GET("/:id", cityHandler.GetCity)
				cities.POST("/", cityHandler.CreateCity)
				cities.PUT("/:id", cityHandler.UpdateCity)
				cities.DELETE("/:id", cityHandler.DeleteCity)
				cities.GET("/:id/destinations", cityHandler.ListDestinations)
				cities.POST("/:id/routes", cityHandler.AddRoute)
				cities.DELETE("/:id/routes/:destination", cityHandler.RemoveRoute)
			}

			// Driver onboarding and approval, admin only
			drivers := protected.Group("/drivers")
			drivers.Use(middleware.Authorize("admin"))
			{
				drivers.GET("/", driverHandler.ListDrivers)
				drivers.GET("/pending", driverHandler.ListPendingDrivers)
				drivers.GET("/approved", driverHandler.ListApprovedDrivers)
				drivers.GET("/:id", driverHandler.GetDriver)
				drivers.POST("/", driverHandler.CreateDriver)
				drivers.PUT("/:id", driverHandler.UpdateDriver)
				drivers.DELETE("/:id", driverHandler.DeleteDriver)
				drivers.POST("/:id/approve", driverHandler.ApproveDriver)
				drivers.POST("/:id/reject", driverHandler.RejectDriver)
			}

			// Shipment management
			shipments := protected.Group("/shipments")
			{
				adminShipmentRoutes := shipments.Group("/")
				adminShipmentRoutes.Use(middleware.Authorize("admin"))
				{
					adminShipmentRoutes.GET("/", shipmentHandler.ListShipments)
					adminShipmentRoutes.GET("/unassigned", shipmentHandler.ListUnassignedShipments)
					adminShipmentRoutes.GET("/:trackingNumber", shipmentHandler.GetShipment)
					adminShipmentRoutes.POST("/", shipmentHandler.CreateShipment)
					adminShipmentRoutes.PUT("/:trackingNumber", shipmentHandler.UpdateShipment)
					adminShipmentRoutes.DELETE("/:trackingNumber", shipmentHandler.DeleteShipment)
					adminShipmentRoutes.POST("/:trackingNumber/assign", shipmentHandler.AssignDriver)
				}

				// Drivers upload proof photos from the field
				driverShipmentRoutes := shipments.Group("/")
				driverShipmentRoutes.Use(middleware.Authorize("admin", "driver"))
				{
					driverShipmentRoutes.POST("/:trackingNumber/proof-photo", shipmentHandler.UploadProofPhoto)
				}
			}

			// User management, admin only
			users := protected.Group("/users")
			users.Use(middleware.Authorize("admin"))
			{
				users.GET("/", userHandler.ListUsers)
				users.DELETE("/:id", userHandler.DeleteUser)
			}
		}
	}

	return router
}
