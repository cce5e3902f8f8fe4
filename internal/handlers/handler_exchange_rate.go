package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/SscSPs/currency_app/internal/apperrors"
	"github.com/SscSPs/currency_app/internal/core/domain"
	portssvc "github.com/SscSPs/currency_app/internal/core/ports/services"
	"github.com/SscSPs/currency_app/internal/dto"
	"github.com/SscSPs/currency_app/internal/middleware"
	"github.com/gin-gonic/gin"
)

// exchangeRateHandler handles HTTP requests related to exchange rates.
type exchangeRateHandler struct {
	exchangeRateService portssvc.ExchangeRateQuerySvc
}

// newExchangeRateHandler creates a new exchangeRateHandler.
func newExchangeRateHandler(ers portssvc.ExchangeRateQuerySvc) *exchangeRateHandler {
	return &exchangeRateHandler{
		exchangeRateService: ers,
	}
}

// registerExchangeRateRoutes registers routes related to exchange rates.
func registerExchangeRateRoutes(rg *gin.RouterGroup, exchangeRateService portssvc.ExchangeRateQuerySvc) {
	h := newExchangeRateHandler(exchangeRateService)

	exchangeRates := rg.Group("/exchange-rates")
	{
		exchangeRates.GET("/latest", h.getLatestRates)
		exchangeRates.GET("/history", h.getHistory)
		exchangeRates.GET("/convert", h.calculateCurrency)
		exchangeRates.GET("/currencycalc", h.calculateCurrency)
		exchangeRates.GET("/conversion", h.convert)
	}
}

// getLatestRates returns the latest observation of every currency, or 204 when none is stored.
func (h *exchangeRateHandler) getLatestRates(c *gin.Context) {
	logger := middleware.GetLoggerFromContext(c)
	logger.Info("Fetching latest exchange rates")

	rates, err := h.exchangeRateService.GetLatestRates(c.Request.Context())
	if err != nil {
		h.writeError(c, err, "Failed to retrieve latest exchange rates")
		return
	}

	if len(rates) == 0 {
		c.Status(http.StatusNoContent)
		return
	}

	c.JSON(http.StatusOK, dto.ToListExchangeRateResponse(rates))
}

// getHistory returns up to 30 observations for one currency, newest first.
func (h *exchangeRateHandler) getHistory(c *gin.Context) {
	logger := middleware.GetLoggerFromContext(c)

	var query dto.HistoryQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		logger.Warn("Invalid history query", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Currency must be a three letter code."})
		return
	}

	logger = logger.With(slog.String("currency", query.Currency))
	logger.Info("Fetching currency history")

	history, err := h.exchangeRateService.GetHistory(c.Request.Context(), query.Currency)
	if err != nil {
		h.writeError(c, err, "Failed to retrieve currency history")
		return
	}

	if len(history) == 0 {
		c.Status(http.StatusNoContent)
		return
	}

	c.JSON(http.StatusOK, dto.ToListExchangeRateResponse(history))
}

// convert returns the full conversion description: amount, rate used and its date.
func (h *exchangeRateHandler) convert(c *gin.Context) {
	conversion, ok := h.doConvert(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, dto.ToConversionResponse(*conversion))
}

// calculateCurrency returns the converted amount as a bare JSON number.
func (h *exchangeRateHandler) calculateCurrency(c *gin.Context) {
	conversion, ok := h.doConvert(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, conversion.Result)
}

func (h *exchangeRateHandler) doConvert(c *gin.Context) (*domain.Conversion, bool) {
	logger := middleware.GetLoggerFromContext(c)

	var query dto.ConvertQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		logger.Warn("Invalid conversion query", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Currency must be a three letter code and amount must not be negative."})
		return nil, false
	}
	amount, ok := query.EuroAmount()
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Amount must be provided."})
		return nil, false
	}

	logger = logger.With(slog.String("currency", query.Currency), slog.Float64("euro", amount))
	logger.Info("Calculating currency conversion")

	conversion, err := h.exchangeRateService.Convert(c.Request.Context(), query.Currency, amount)
	if err != nil {
		h.writeError(c, err, "Failed to calculate conversion")
		return nil, false
	}
	return conversion, true
}

// writeError maps service errors to client responses.
func (h *exchangeRateHandler) writeError(c *gin.Context, err error, msg string) {
	logger := middleware.GetLoggerFromContext(c)

	switch {
	case errors.Is(err, apperrors.ErrValidation):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, apperrors.ErrNotFound):
		logger.Warn("Exchange rate not found", slog.String("error", err.Error()))
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, apperrors.ErrInvalidData):
		logger.Warn("Exchange rate data unusable", slog.String("error", err.Error()))
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
	default:
		logger.Error(msg, slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": msg})
	}
}
