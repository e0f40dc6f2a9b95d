package router

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/naratipk/resto-pin-backend/controllers"
	"github.com/naratipk/resto-pin-backend/events"
	"github.com/naratipk/resto-pin-backend/middlewares"
	"github.com/naratipk/resto-pin-backend/services"
)

// SetupRouter merakit seluruh route. hub boleh nil (dipakai di test);
// service akan fallback ke sink no-op.
func SetupRouter(db *gorm.DB, hub *events.Hub) *gin.Engine {
	r := gin.Default()

	// Limiter global harus terpasang sebelum route didaftarkan; gin
	// membekukan chain middleware per route saat registrasi.
	r.Use(middlewares.NewRateLimiter(50, 1).RateLimit())
	r.Use(middlewares.SecurityHeaders())
	r.Use(middlewares.CORSMiddlewares())
	r.Use(middlewares.RequestID())
	r.Use(middlewares.LoggerMiddleware())

	var sink events.Sink
	if hub != nil {
		sink = hub
	}

	// Inisialisasi service dan controller
	sessionSvc := services.NewSessionService(db, sink)
	orderSvc := services.NewOrderService(db, sink)
	viewSvc := services.NewViewService(db)

	userCtrl := controllers.NewUserController(db)
	tableCtrl := controllers.NewTableController(db, sessionSvc, sink)
	categoryCtrl := controllers.NewCategoryController(db, sink)
	menuCtrl := controllers.NewMenuController(db, sink)
	pinCtrl := controllers.NewPinController(db, sessionSvc)
	orderCtrl := controllers.NewOrderController(db, orderSvc, viewSvc)

	// ----------------------------------------------------------------
	//                      PUBLIC ROUTES
	// ----------------------------------------------------------------
	r.GET("/ping", func(c *gin.Context) {
		c.JSON(200, gin.H{"message": "pong"})
	})

	// Rate limiter untuk login/register
	public := r.Group("/")
	public.Use(middlewares.NewStrictRateLimiter())
	{
		public.POST("/register", userCtrl.Register)
		public.POST("/login", userCtrl.Login)
	}

	// -- CUSTOMER (Tanpa Auth) --
	// Customer memegang PIN meja, bukan akun
	r.GET("/categories", categoryCtrl.GetAllCategories)
	r.GET("/menus", menuCtrl.GetAllMenus)
	r.GET("/menus/available", menuCtrl.GetAvailableMenus)

	r.GET("/pins/:code", pinCtrl.GetPinByCode)

	r.POST("/orders", orderCtrl.CreateOrder)
	r.GET("/orders/history/:pin", orderCtrl.GetOrderHistory)
	r.GET("/orders/receipts/:pin", orderCtrl.GetReceipt)

	// WebSocket endpoint dengan middleware khusus (token via query)
	if hub != nil {
		wsCtrl := controllers.NewWSController(hub)
		wsGroup := r.Group("/ws")
		wsGroup.Use(middlewares.WebSocketAuthMiddleware())
		{
			wsGroup.GET("/:role", wsCtrl.Handle)
		}
	}

	// ----------------------------------------------------------------
	//                      AUTHENTICATED ROUTES
	// ----------------------------------------------------------------
	auth := r.Group("/admin")
	auth.Use(middlewares.AuthMiddleware())

	auth.GET("/profile", userCtrl.GetProfile)
	auth.POST("/logout", userCtrl.Logout)
	auth.GET("/users", userCtrl.GetAllUsers)

	// TABLES (staff/admin)
	staff := auth.Group("/")
	staff.Use(middlewares.RequireRoles("staff"))
	{
		staff.GET("/tables", tableCtrl.GetAllTables)
		staff.POST("/tables", tableCtrl.CreateTable)
		staff.PATCH("/tables/:table_id", tableCtrl.UpdateTable)
		staff.DELETE("/tables/:table_id", tableCtrl.DeleteTable)
		staff.GET("/tables/:table_id/check-delete", tableCtrl.CheckDeleteTable)
		staff.POST("/tables/:table_id/toggle", tableCtrl.ToggleTable)

		// PINS
		staff.POST("/pins", pinCtrl.CreatePin)
		staff.GET("/pins/active", pinCtrl.GetActivePins)

		// CATEGORIES
		staff.POST("/categories", categoryCtrl.CreateCategory)
		staff.PATCH("/categories/:cat_id", categoryCtrl.UpdateCategory)
		staff.DELETE("/categories/:cat_id", categoryCtrl.DeleteCategory)
		staff.GET("/categories/:cat_id/check-delete", categoryCtrl.CheckDeleteCategory)

		// MENUS
		staff.POST("/menus", menuCtrl.CreateMenu)
		staff.PATCH("/menus/:menu_id", menuCtrl.UpdateMenu)
		staff.PATCH("/menus/:menu_id/availability", menuCtrl.UpdateMenuAvailability)
		staff.DELETE("/menus/:menu_id", menuCtrl.DeleteMenu)
		staff.GET("/menus/:menu_id/check-delete", menuCtrl.CheckDeleteMenu)

		// ORDERS
		staff.GET("/orders/grouped", orderCtrl.GetGroupedOrders)
		staff.PUT("/orders/:order_id/status", orderCtrl.UpdateOrderStatus)
		staff.GET("/orders/completed-totals", orderCtrl.GetCompletedTotals)
		staff.PUT("/orders/total-orders/:pin/payment", orderCtrl.UpdatePaymentStatus)
		staff.GET("/orders/payment-history", orderCtrl.GetPaymentHistory)
	}

	return r
}
