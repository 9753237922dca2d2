package routes

import (
	"taller_web/internal/adapter/http/middleware"

	"github.com/gin-gonic/gin"
)

const (
	PathOrders    = "/ordenes"
	PathClients   = "/clientes"
	PathParts     = "/repuestos"
	PathEquipment = "/equipos"
)

func addPageRoutes(router *gin.Engine, h Handlers) {
	router.GET("/login", middleware.RedirectIfAuthenticated(), h.Pages.Login)

	pages := router.Group("/", middleware.RequireSessionPage())
	{
		pages.GET("", h.Pages.Orders)
		pages.GET("equipos", h.Pages.Equipment)
		pages.GET("ordenes/:id", h.Pages.OrderDetail)
		pages.GET("ordenes/:id/print", h.Pages.PrintOrder)
	}
}

func addAPIRoutes(router *gin.Engine, h Handlers) {
	api := router.Group("/api")

	// The login endpoint is the only open one.
	api.POST("/auth/login", h.Auth.Login)

	protected := api.Group("", middleware.RequireSessionAPI())
	{
		protected.POST("/auth/logout", h.Auth.Logout)
		protected.GET("/auth/me", h.Auth.Me)

		orders := protected.Group(PathOrders)
		{
			orders.GET("", h.Workshop.ListOrders)
			orders.POST("", h.Workshop.CreateOrder)
			orders.GET("/:id", h.Orders.GetOrder)
			orders.PATCH("/:id/estado", h.Orders.ChangeStatus)
			orders.POST("/:id/cerrar", h.Orders.CloseOrder)
			orders.PATCH("/:id/tecnico", h.Orders.AssignTechnician)
			orders.POST("/:id/mano-obra", h.Orders.AddLabor)
			orders.PATCH("/:id/mano-obra/:itemId", h.Orders.UpdateLabor)
			orders.DELETE("/:id/mano-obra/:itemId", h.Orders.DeleteLabor)
			orders.POST("/:id/repuestos", h.Orders.AddPart)
			orders.PATCH("/:id/repuestos/:itemId", h.Orders.UpdatePart)
			orders.DELETE("/:id/repuestos/:itemId", h.Orders.DeletePart)
			orders.GET("/:id/eventos", h.Orders.GetTimeline)
		}

		clients := protected.Group(PathClients)
		{
			clients.GET("", h.Catalog.SearchClients)
			clients.POST("", h.Catalog.CreateClient)
			clients.POST("/seleccionar", h.Catalog.SelectClient)
		}

		parts := protected.Group(PathParts)
		{
			parts.GET("", h.Catalog.SearchParts)
			parts.POST("", h.Catalog.CreatePart)
			parts.POST("/seleccionar", h.Catalog.SelectPart)
		}

		equipment := protected.Group(PathEquipment)
		{
			equipment.GET("", h.Workshop.ListEquipment)
			equipment.POST("", h.Workshop.CreateEquipment)
		}

		protected.GET("/tecnicos", h.Workshop.ListTechnicians)
		protected.GET("/sedes", h.Workshop.ListSites)
	}
}
