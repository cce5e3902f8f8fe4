package handlers_test

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/SscSPs/currency_app/internal/apperrors"
	"github.com/SscSPs/currency_app/internal/core/domain"
	portssvc "github.com/SscSPs/currency_app/internal/core/ports/services"
	"github.com/SscSPs/currency_app/internal/dto"
	"github.com/SscSPs/currency_app/internal/handlers"
	"github.com/SscSPs/currency_app/internal/validation"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

// --- Mock ExchangeRateQuerySvc ---
type MockExchangeRateQueryService struct {
	mock.Mock
}

func (m *MockExchangeRateQueryService) GetLatestRates(ctx context.Context) ([]domain.ExchangeRateObservation, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.ExchangeRateObservation), args.Error(1)
}

func (m *MockExchangeRateQueryService) GetHistory(ctx context.Context, currency string) ([]domain.ExchangeRateObservation, error) {
	args := m.Called(ctx, currency)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.ExchangeRateObservation), args.Error(1)
}

func (m *MockExchangeRateQueryService) Convert(ctx context.Context, currency string, euroAmount float64) (*domain.Conversion, error) {
	args := m.Called(ctx, currency, euroAmount)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Conversion), args.Error(1)
}

var _ portssvc.ExchangeRateQuerySvc = (*MockExchangeRateQueryService)(nil)

type ExchangeRateHandlerTestSuite struct {
	suite.Suite
	router      *gin.Engine
	mockService *MockExchangeRateQueryService
}

func (suite *ExchangeRateHandlerTestSuite) SetupSuite() {
	gin.SetMode(gin.TestMode)
	suite.Require().NoError(validation.Register())
}

func (suite *ExchangeRateHandlerTestSuite) SetupTest() {
	suite.router = gin.New()
	suite.mockService = new(MockExchangeRateQueryService)
	handlers.RegisterRoutes(suite.router, &portssvc.ServiceContainer{
		ExchangeRateQuery: suite.mockService,
	})
}

func (suite *ExchangeRateHandlerTestSuite) serve(target string) *httptest.ResponseRecorder {
	req, _ := http.NewRequest(http.MethodGet, target, nil)
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)
	return w
}

func floatPtr(f float64) *float64 { return &f }

func observedOn(day int) time.Time {
	return time.Date(2024, 5, day, 0, 0, 0, 0, time.UTC)
}

func (suite *ExchangeRateHandlerTestSuite) TestHealthAndHello() {
	w := suite.serve("/health")
	suite.Equal(http.StatusOK, w.Code)
	suite.Equal("OK", w.Body.String())

	w = suite.serve("/currency-app/hello")
	suite.Equal(http.StatusOK, w.Code)
	suite.Contains(w.Body.String(), "currency app")
}

func (suite *ExchangeRateHandlerTestSuite) TestGetLatestRates_Success() {
	rates := []domain.ExchangeRateObservation{
		{ID: 7, Currency: "JPY", CurrencyDenom: "EUR", Value: floatPtr(164.2), Title: "Japanese yen/Euro", ObservedDate: observedOn(3)},
		{ID: 5, Currency: "USD", CurrencyDenom: "EUR", Value: nil, Title: "US dollar/Euro", ObservedDate: observedOn(3)},
	}
	suite.mockService.On("GetLatestRates", mock.Anything).Return(rates, nil).Once()

	w := suite.serve("/currency-app/exchange-rates/latest")

	suite.Equal(http.StatusOK, w.Code)
	var body []dto.ExchangeRateResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &body))
	suite.Require().Len(body, 2)
	suite.Equal("JPY", body[0].Currency)
	suite.Equal("2024-05-03", body[0].ObservedDate)
	suite.Require().NotNil(body[0].Value)
	suite.Equal(164.2, *body[0].Value)
	suite.Nil(body[1].Value)
	suite.Contains(w.Body.String(), `"value":null`)
	suite.mockService.AssertExpectations(suite.T())
}

func (suite *ExchangeRateHandlerTestSuite) TestGetLatestRates_EmptyIsNoContent() {
	suite.mockService.On("GetLatestRates", mock.Anything).Return([]domain.ExchangeRateObservation{}, nil).Once()

	w := suite.serve("/currency-app/exchange-rates/latest")

	suite.Equal(http.StatusNoContent, w.Code)
	suite.Empty(w.Body.String())
}

func (suite *ExchangeRateHandlerTestSuite) TestGetLatestRates_ServiceError() {
	suite.mockService.On("GetLatestRates", mock.Anything).Return(nil, errors.New("connection refused")).Once()

	w := suite.serve("/currency-app/exchange-rates/latest")

	suite.Equal(http.StatusInternalServerError, w.Code)
	suite.NotContains(w.Body.String(), "connection refused")
}

func (suite *ExchangeRateHandlerTestSuite) TestGetHistory_Success() {
	history := []domain.ExchangeRateObservation{
		{ID: 9, Currency: "USD", CurrencyDenom: "EUR", Value: floatPtr(1.0762), ObservedDate: observedOn(3)},
		{ID: 4, Currency: "USD", CurrencyDenom: "EUR", Value: floatPtr(1.0708), ObservedDate: observedOn(2)},
	}
	suite.mockService.On("GetHistory", mock.Anything, "usd").Return(history, nil).Once()

	w := suite.serve("/currency-app/exchange-rates/history?currency=usd")

	suite.Equal(http.StatusOK, w.Code)
	var body []dto.ExchangeRateResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &body))
	suite.Require().Len(body, 2)
	suite.Equal(int64(9), body[0].ID)
	suite.Equal("2024-05-02", body[1].ObservedDate)
	suite.mockService.AssertExpectations(suite.T())
}

func (suite *ExchangeRateHandlerTestSuite) TestGetHistory_EmptyIsNoContent() {
	suite.mockService.On("GetHistory", mock.Anything, "CHF").Return([]domain.ExchangeRateObservation{}, nil).Once()

	w := suite.serve("/currency-app/exchange-rates/history?currency=CHF")

	suite.Equal(http.StatusNoContent, w.Code)
}

func (suite *ExchangeRateHandlerTestSuite) TestGetHistory_InvalidCurrency() {
	for _, target := range []string{
		"/currency-app/exchange-rates/history",
		"/currency-app/exchange-rates/history?currency=",
		"/currency-app/exchange-rates/history?currency=US",
		"/currency-app/exchange-rates/history?currency=US1",
		"/currency-app/exchange-rates/history?currency=EURO",
	} {
		w := suite.serve(target)
		suite.Equal(http.StatusBadRequest, w.Code, target)
	}
	suite.mockService.AssertNotCalled(suite.T(), "GetHistory", mock.Anything, mock.Anything)
}

func (suite *ExchangeRateHandlerTestSuite) TestConversion_Success() {
	conversion := &domain.Conversion{
		Currency:     "USD",
		EuroAmount:   100,
		Rate:         1.08,
		ObservedDate: observedOn(3),
		Result:       108,
	}
	suite.mockService.On("Convert", mock.Anything, "USD", 100.0).Return(conversion, nil).Once()

	w := suite.serve("/currency-app/exchange-rates/conversion?currency=USD&amount=100")

	suite.Equal(http.StatusOK, w.Code)
	var body dto.ConversionResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &body))
	suite.Equal("USD", body.Currency)
	suite.Equal(100.0, body.Euro)
	suite.Equal(1.08, body.Rate)
	suite.Equal("2024-05-03", body.ObservedDate)
	suite.Equal(108.0, body.Result)
	suite.mockService.AssertExpectations(suite.T())
}

func (suite *ExchangeRateHandlerTestSuite) TestConvert_ReturnsBareNumber() {
	for _, target := range []string{
		"/currency-app/exchange-rates/convert?currency=USD&amount=100",
		"/currency-app/exchange-rates/currencycalc?currency=USD&euro=100",
	} {
		conversion := &domain.Conversion{Currency: "USD", EuroAmount: 100, Rate: 1.08, ObservedDate: observedOn(3), Result: 108}
		suite.mockService.On("Convert", mock.Anything, "USD", 100.0).Return(conversion, nil).Once()

		w := suite.serve(target)

		suite.Equal(http.StatusOK, w.Code, target)
		var result float64
		suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &result))
		suite.Equal(108.0, result)
	}
	suite.mockService.AssertExpectations(suite.T())
}

func (suite *ExchangeRateHandlerTestSuite) TestConvert_EuroWinsOverAmount() {
	conversion := &domain.Conversion{Currency: "USD", EuroAmount: 2, Rate: 1.5, ObservedDate: observedOn(3), Result: 3}
	suite.mockService.On("Convert", mock.Anything, "USD", 2.0).Return(conversion, nil).Once()

	w := suite.serve("/currency-app/exchange-rates/conversion?currency=USD&euro=2&amount=50")

	suite.Equal(http.StatusOK, w.Code)
	suite.mockService.AssertExpectations(suite.T())
}

func (suite *ExchangeRateHandlerTestSuite) TestConvert_ZeroAmount() {
	conversion := &domain.Conversion{Currency: "USD", EuroAmount: 0, Rate: 1.08, ObservedDate: observedOn(3), Result: 0}
	suite.mockService.On("Convert", mock.Anything, "USD", 0.0).Return(conversion, nil).Once()

	w := suite.serve("/currency-app/exchange-rates/currencycalc?currency=USD&euro=0")

	suite.Equal(http.StatusOK, w.Code)
	suite.Equal("0", w.Body.String())
}

func (suite *ExchangeRateHandlerTestSuite) TestConvert_BadRequests() {
	for _, target := range []string{
		"/currency-app/exchange-rates/convert?currency=USD&amount=-5",
		"/currency-app/exchange-rates/convert?currency=USD&amount=abc",
		"/currency-app/exchange-rates/convert?currency=USD",
		"/currency-app/exchange-rates/convert?amount=10",
		"/currency-app/exchange-rates/currencycalc?currency=USD&euro=-0.01",
		"/currency-app/exchange-rates/currencycalc?currency=DOLLAR&euro=1",
		"/currency-app/exchange-rates/conversion?currency=USD&amount=-1",
	} {
		w := suite.serve(target)
		suite.Equal(http.StatusBadRequest, w.Code, target)
	}
	suite.mockService.AssertNotCalled(suite.T(), "Convert", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *ExchangeRateHandlerTestSuite) TestConvert_ErrorMapping() {
	cases := []struct {
		err    error
		status int
	}{
		{fmt.Errorf("%w: no exchange rate data for currency ZZZ", apperrors.ErrNotFound), http.StatusNotFound},
		{apperrors.NewInvalidDataError("latest USD observation has no value"), http.StatusUnprocessableEntity},
		{apperrors.NewValidationError("amount must not be negative"), http.StatusBadRequest},
		{errors.New("db down"), http.StatusInternalServerError},
	}

	for _, tc := range cases {
		suite.SetupTest()
		suite.mockService.On("Convert", mock.Anything, "ZZZ", 1.0).Return(nil, tc.err).Once()

		w := suite.serve("/currency-app/exchange-rates/convert?currency=ZZZ&amount=1")

		suite.Equal(tc.status, w.Code, tc.err.Error())
		suite.Contains(w.Body.String(), `"error"`)
	}
}

func TestExchangeRateHandlerTestSuite(t *testing.T) {
	suite.Run(t, new(ExchangeRateHandlerTestSuite))
}
