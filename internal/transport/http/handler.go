package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/richardliu001/newsletter-service/internal/service"
)

// RegisterHandlers mounts the subscription routes on r.
func RegisterHandlers(r *gin.Engine, svc *service.SubscriptionService) {
	r.GET("/health_check", healthCheckHandler())
	subs := r.Group("/subscriptions")
	{
		subs.POST("", subscribeHandler(svc))
		subs.GET("/confirm", confirmHandler(svc))
	}
}

func healthCheckHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Status(http.StatusOK)
	}
}

// Missing fields bind as empty strings; the service rejects them.
type subscribeForm struct {
	Name  string `form:"name"`
	Email string `form:"email"`
}

func subscribeHandler(svc *service.SubscriptionService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var form subscribeForm
		if err := c.ShouldBind(&form); err != nil {
			_ = c.Error(err)
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "malformed form body"})
			return
		}
		if err := svc.Subscribe(c, form.Name, form.Email); err != nil {
			abortWithError(c, err)
			return
		}
		c.Status(http.StatusOK)
	}
}

func confirmHandler(svc *service.SubscriptionService) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := svc.Confirm(c, c.Query("sub_token")); err != nil {
			abortWithError(c, err)
			return
		}
		c.Status(http.StatusOK)
	}
}
