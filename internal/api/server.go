package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/jinzhu/gorm"

	"tally/internal/insights"
	"tally/internal/planner"
)

// Server is the HTTP surface of the inventory backend: CRUD over
// materials, products, orders, the order queue and integrations, plus
// the planner-backed AI and dashboard endpoints.
type Server struct {
	Router    *gin.Engine
	db        *gorm.DB
	planner   *planner.Planner
	assistant *insights.Assistant
}

// NewServer creates the API server and registers all routes. authSecret
// enables JWT checks on mutating endpoints when non-empty.
func NewServer(db *gorm.DB, pl *planner.Planner, assistant *insights.Assistant, authSecret string) *Server {
	router := gin.Default()

	s := &Server{
		Router:    router,
		db:        db,
		planner:   pl,
		assistant: assistant,
	}

	router.Use(CORSMiddleware())
	router.Use(MetricsMiddleware())

	s.setupRoutes(authSecret)
	return s
}

func (s *Server) setupRoutes(authSecret string) {
	s.Router.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "Tally Inventory Management API", "version": "1.0.0"})
	})
	s.Router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "healthy"})
	})
	s.Router.GET("/ws/alerts", s.HandleAlertStream)

	api := s.Router.Group("/api")
	if authSecret != "" {
		api.Use(AuthMiddleware(authSecret))
	}
	{
		api.GET("/materials", s.ListMaterials)
		api.GET("/materials/:id", s.GetMaterial)
		api.POST("/materials", s.CreateMaterial)
		api.PUT("/materials/:id", s.UpdateMaterial)
		api.DELETE("/materials/:id", s.DeleteMaterial)

		api.GET("/products", s.ListProducts)
		api.GET("/products/:id", s.GetProduct)
		api.POST("/products", s.CreateProduct)
		api.PUT("/products/:id", s.UpdateProduct)
		api.DELETE("/products/:id", s.DeleteProduct)
		api.GET("/products/:id/bom", s.GetProductBOM)
		api.PUT("/products/:id/bom", s.UpdateProductBOM)
		api.POST("/products/:id/can-build", s.RecomputeCanBuild)

		api.GET("/orders", s.ListOrders)
		api.GET("/orders/:id", s.GetOrder)
		api.POST("/orders", s.CreateOrder)
		api.PUT("/orders/:id", s.UpdateOrder)
		api.DELETE("/orders/:id", s.DeleteOrder)
		api.GET("/orders/:id/shortages", s.GetOrderShortages)

		api.GET("/order-queue", s.ListQueueEntries)
		api.POST("/order-queue", s.CreateQueueEntry)
		api.PUT("/order-queue/:id", s.UpdateQueueEntry)

		api.GET("/integrations", s.ListIntegrations)
		api.GET("/integrations/:id", s.GetIntegration)
		api.POST("/integrations", s.CreateIntegration)
		api.PUT("/integrations/:id", s.UpdateIntegration)
		api.DELETE("/integrations/:id", s.DeleteIntegration)
		api.POST("/integrations/:id/toggle", s.ToggleIntegration)

		api.GET("/ai/alerts", s.GetSmartAlerts)
		api.GET("/ai/analysis", s.GetInventoryAnalysis)
		api.POST("/ai/chat", s.ChatWithAssistant)

		api.GET("/dashboard", s.GetDashboard)
	}
}

// pagination reads the skip/limit query parameters used by all list
// endpoints, defaulting to the first 100 rows.
func pagination(c *gin.Context) (offset, limit int) {
	offset = intQuery(c, "skip", 0)
	limit = intQuery(c, "limit", 100)
	return offset, limit
}
