package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"hotel-reservation/internal/handler/api"
	reqdto "hotel-reservation/internal/handler/dto/request"
	"hotel-reservation/internal/handler/middleware"
	"hotel-reservation/internal/pkg/config"
)

type route struct {
	Method  string
	Path    string
	Handler gin.HandlerFunc
	Mw      []gin.HandlerFunc
}

type Handlers struct {
	Reservation *api.ReservationHandler
	Room        *api.RoomHandler
	Auth        *middleware.AuthMiddleware
	RateLimiter *middleware.RateLimiter
	Logger      *middleware.Logger
}

func NewRouter(engine *gin.Engine, cfg config.Config, h Handlers) error {
	if err := reqdto.RegisterValidators(); err != nil {
		return err
	}
	setupMiddleware(engine, cfg, h.Logger)
	setupRoutes(engine, h)
	return nil
}

func setupMiddleware(engine *gin.Engine, cfg config.Config, logger *middleware.Logger) {
	// Recovery must be first (outermost) to catch panics from all other middleware
	engine.Use(middleware.CustomRecovery())
	engine.Use(middleware.NewCORSMiddleware(cfg.CORS))
	engine.Use(logger.LoggingMiddleware())
	engine.Use(middleware.ErrorHandler())
}

func setupRoutes(engine *gin.Engine, h Handlers) {
	engine.GET("/health", healthCheck)

	if gin.Mode() == gin.DebugMode {
		engine.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	apiGroup := engine.Group("/api")
	{
		rooms := apiGroup.Group("/hotels/:hotelId/rooms/:roomId")
		addRoutes(rooms, []route{
			{Method: http.MethodGet, Path: "", Handler: h.Room.Get},
			{Method: http.MethodGet, Path: "/availability", Handler: h.Room.Availability},
		})

		reservations := apiGroup.Group("/reservations")
		reservations.Use(h.RateLimiter.Middleware())
		{
			addRoutes(reservations, []route{
				{Method: http.MethodPost, Path: "/quote", Handler: h.Reservation.Quote, Mw: []gin.HandlerFunc{h.Auth.OptionalAuth()}},
				{Method: http.MethodPost, Path: "", Handler: h.Reservation.Submit, Mw: []gin.HandlerFunc{h.Auth.RequireAuth()}},
			})
		}
	}
}

// @Summary Health check
// @Description Check if the service is healthy
// @Tags health
// @Produce json
// @Success 200 {object} map[string]string
// @Router /health [get]
func healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "ok",
		"message": "Service is healthy",
	})
}

func addRoutes(g *gin.RouterGroup, rs []route) {
	for _, r := range rs {
		h := r.Handler
		if len(r.Mw) > 0 {
			h = chainHandlers(append(r.Mw, r.Handler)...)
		}
		switch r.Method {
		case http.MethodGet:
			g.GET(r.Path, h)
		case http.MethodPost:
			g.POST(r.Path, h)
		default:
			g.Any(r.Path, h)
		}
	}
}

func chainHandlers(hs ...gin.HandlerFunc) gin.HandlerFunc {
	return func(c *gin.Context) {
		for _, h := range hs {
			h(c)
			if c.IsAborted() {
				return
			}
		}
	}
}
