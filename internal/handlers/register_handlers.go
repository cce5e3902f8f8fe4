package handlers

import (
	portssvc "github.com/SscSPs/currency_app/internal/core/ports/services"
	"github.com/gin-gonic/gin"
)

// APIBasePath is the prefix of every read API route.
const APIBasePath = "/currency-app"

// RegisterRoutes sets up all application routes. apiMiddleware applies to the
// read API group only (rate limiting, analytics), not to /health.
func RegisterRoutes(
	r *gin.Engine,
	services *portssvc.ServiceContainer,
	apiMiddleware ...gin.HandlerFunc,
) {
	r.GET("/health", getHealth)

	api := r.Group(APIBasePath, apiMiddleware...)
	registerHomeRoutes(api)
	registerExchangeRateRoutes(api, services.ExchangeRateQuery)
}
