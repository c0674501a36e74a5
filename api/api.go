package api

import (
	"assetgraph/internal/calculator"
	"assetgraph/internal/domain"
	"assetgraph/internal/graph"
	"assetgraph/internal/layout"
	"assetgraph/internal/logger"
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type ApiHandler struct {
	Graph           *graph.Graph
	LayoutGenerator layout.Generator
	Log             *zap.SugaredLogger
}

func (m ApiHandler) StartApi(port int) error {
	return m.buildRouter().Run(fmt.Sprintf(":%d", port))
}

func (m ApiHandler) buildRouter() *gin.Engine {
	router := gin.Default()
	router.Use(cors.Default())
	router.Use(m.logRequestMiddleware)

	router.GET("/", func(ctx *gin.Context) {
		ctx.JSON(200, map[string]string{"message": "welcome to assetgraph"})
	})

	router.GET("/assets", m.listAssets)
	router.GET("/assets/:id", m.getAsset)
	router.GET("/assets/:id/relationships", m.getAssetRelationships)
	router.GET("/relationships", m.listRelationships)
	router.GET("/layout", m.getLayout)
	router.GET("/metrics", m.getMetrics)

	authorized := router.Group("/", authMiddleware())
	authorized.POST("/assets", m.createAsset)
	authorized.POST("/events", m.createEvent)
	authorized.DELETE("/assets/:id", m.deleteAsset)
	authorized.DELETE("/events/:id", m.deleteEvent)

	return router
}

func returnErrorJson(err error, c *gin.Context) {
	code := 500
	switch {
	case errors.Is(err, domain.ErrNotFound):
		code = 404
	case errors.Is(err, domain.ErrDuplicateID):
		code = 409
	case errors.Is(err, domain.ErrInvalidAttribute),
		errors.Is(err, domain.ErrInvalidRelationship):
		code = 400
	}
	c.AbortWithStatusJSON(code, gin.H{
		"error": err.Error(),
	})
}

// logRequestMiddleware tags every request with an id and stashes a
// request-scoped logger in the request context for resolvers to pull
// out via logger.FromContext.
func (m ApiHandler) logRequestMiddleware(c *gin.Context) {
	requestID := uuid.NewString()
	c.Set("requestID", requestID)

	log := m.Log
	if log == nil {
		log = zap.NewNop().Sugar()
	}
	log = log.With("requestID", requestID)
	c.Request = c.Request.WithContext(
		context.WithValue(c.Request.Context(), logger.ContextKey, log),
	)

	start := time.Now()
	c.Next()

	log.Infow("handled request",
		"method", c.Request.Method,
		"path", c.Request.URL.Path,
		"status", c.Writer.Status(),
		"durationMs", time.Since(start).Milliseconds(),
	)
}

// metricsTopN caps how many top relationships the metrics endpoint
// reports.
const metricsTopN = 10

func (m ApiHandler) getMetrics(c *gin.Context) {
	metrics, err := calculator.CalculateMetrics(m.Graph, metricsTopN)
	if err != nil {
		returnErrorJson(err, c)
		return
	}
	c.JSON(200, metrics)
}

func (m ApiHandler) getLayout(c *gin.Context) {
	c.JSON(200, m.LayoutGenerator.Layout(m.Graph))
}
