package http

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/richardliu001/newsletter-service/internal/service"
	"go.uber.org/zap"
)

// NewRouter builds the gin engine. gatherer backs /metrics and may be nil.
func NewRouter(svc *service.SubscriptionService, gatherer prometheus.Gatherer, log *zap.SugaredLogger) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(RequestIDMiddleware())
	r.Use(LoggingMiddleware(log))
	RegisterHandlers(r, svc)
	if gatherer != nil {
		r.GET("/metrics", gin.WrapH(promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})))
	}
	return r
}
