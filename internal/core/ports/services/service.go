package services

// ServiceContainer holds instances of all the application services.
// It is handed to the HTTP layer and to the scheduler.
type ServiceContainer struct {
	ExchangeRateQuery  ExchangeRateQuerySvc
	ExchangeRateImport ExchangeRateImportSvc
}
