package handler

import (
	"log/slog"

	"github.com/gin-gonic/gin"
)

// NewRouter wires middleware and routes around h.
// Extra middleware runs after logging, before the handlers.
func NewRouter(h *ChatHandler, logger *slog.Logger, extra ...gin.HandlerFunc) *gin.Engine {
	router := gin.New()

	router.Use(RecoveryMiddleware(logger))
	router.Use(RequestIDMiddleware())
	router.Use(CORSMiddleware())
	router.Use(LoggingMiddleware(logger))
	router.Use(extra...)

	router.GET("/health", h.HandleHealth)

	v1 := router.Group("/v1")
	v1.POST("/chat/completions", h.HandleChatCompletion)
	v1.POST("/assistant/chat", h.HandleAssistantChat)
	v1.GET("/providers", h.HandleProviders)

	return router
}
