package rest

import (
	"PayPalReconciler/internal/controller/rest/handlers"
	"PayPalReconciler/pkg/health"
	"PayPalReconciler/pkg/metrics"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type Router struct {
	webhook        *handlers.WebhookHandler
	order          *handlers.OrderHandler
	healthRegistry *health.Registry
}

func (r *Router) SetUp(engine *gin.Engine) {
	// Health checks (Kubernetes-style)
	engine.GET("/health/live", health.LivenessHandler())
	engine.GET("/health/ready", health.ReadinessHandler(r.healthRegistry, health.DefaultTimeout))

	engine.GET("/metrics", gin.WrapH(promhttp.HandlerFor(metrics.Registry, promhttp.HandlerOpts{})))

	engine.POST("/webhooks/paypal", r.webhook.Receive)

	engine.GET("/orders/:order_id", r.order.Get)
	engine.GET("/orders/:order_id/events", r.order.GetEvents)
}

func NewRouter(
	webhook *handlers.WebhookHandler,
	order *handlers.OrderHandler,
	healthRegistry *health.Registry,
) *Router {
	return &Router{
		webhook:        webhook,
		order:          order,
		healthRegistry: healthRegistry,
	}
}
