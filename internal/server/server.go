package server

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/noah-isme/attendance-bridge/internal/handler"
	"github.com/noah-isme/attendance-bridge/pkg/config"
	appErrors "github.com/noah-isme/attendance-bridge/pkg/errors"
	"github.com/noah-isme/attendance-bridge/pkg/logger"
	"github.com/noah-isme/attendance-bridge/pkg/response"
)

// invokeRequest is the wire shape for bridge calls.
type invokeRequest struct {
	Op      string          `json:"op"`
	Payload json.RawMessage `json:"payload"`
}

// New builds the loopback HTTP server fronting the dispatcher.
func New(cfg *config.Config, dispatcher *handler.Dispatcher, log *zap.Logger) *http.Server {
	if cfg.Env == config.EnvProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(logger.GinMiddleware(log))

	router.POST("/invoke", func(c *gin.Context) {
		var req invokeRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, response.Err(
				appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "malformed invoke request")))
			return
		}
		if req.Op == "" {
			c.JSON(http.StatusBadRequest, response.Err(appErrors.Clone(appErrors.ErrValidation, "op is required")))
			return
		}

		// The envelope always travels with 200; the UI inspects the
		// success flag, not the transport status.
		c.JSON(http.StatusOK, dispatcher.Invoke(c.Request.Context(), req.Op, req.Payload))
	})

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "ops": len(dispatcher.Ops())})
	})

	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	return &http.Server{
		Addr:    fmt.Sprintf("%s:%d", cfg.Bind, cfg.Port),
		Handler: router,
	}
}
