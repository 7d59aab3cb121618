// Package server assembles the gin router and the HTTP server
// lifecycle.
package server

import (
	"context"
	"fmt"
	"net/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"github.com/shopweb/shopweb-api/internal/config"
	"github.com/shopweb/shopweb-api/internal/handlers"
	"github.com/shopweb/shopweb-api/internal/middleware"
)

type Server struct {
	config   *config.Config
	router   *gin.Engine
	handlers *handlers.Handlers
	srv      *http.Server
	logger   zerolog.Logger
}

func New(cfg *config.Config, h *handlers.Handlers, logger zerolog.Logger) *Server {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestID())
	router.Use(middleware.Metrics())
	router.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.CORS.AllowOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", "X-Request-ID"},
		AllowCredentials: true,
	}))

	s := &Server{
		config:   cfg,
		router:   router,
		handlers: h,
		logger:   logger.With().Str("component", "server").Logger(),
	}

	s.setupRoutes()

	s.srv = &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	return s
}

func (s *Server) setupRoutes() {
	s.router.GET("/health", s.handlers.Health)
	s.router.GET("/ready", s.handlers.Ready)
	s.router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	v1 := s.router.Group("/api/v1")
	v1.Use(middleware.RequireAuth(s.config.Auth.JWTSecret))
	{
		v1.POST("/orders", s.handlers.CreateOrder)
		v1.GET("/orders", s.handlers.ListOrders)
		v1.GET("/orders/:id", s.handlers.GetOrder)
		v1.PUT("/orders/:id/cancel", s.handlers.CancelOrder)
		v1.GET("/orders/admin/all", middleware.RequireAdmin(), s.handlers.ListAllOrders)
		v1.PUT("/orders/:id/status", middleware.RequireAdmin(), s.handlers.UpdateOrderStatus)

		v1.POST("/promotions/apply", s.handlers.ApplyPromotion)

		v1.GET("/cart", s.handlers.GetCart)
		v1.POST("/cart/items", s.handlers.AddCartItem)
		v1.PUT("/cart/items/:id", s.handlers.UpdateCartItem)
		v1.DELETE("/cart/items/:id", s.handlers.RemoveCartItem)
	}
}

// Start begins serving and blocks until the listener closes.
func (s *Server) Start() error {
	s.logger.Info().Int("port", s.config.Server.Port).Msg("Server starting")
	return s.srv.ListenAndServe()
}

// Shutdown drains in-flight requests until ctx expires.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.srv.Shutdown(ctx)
}
