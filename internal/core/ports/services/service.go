package services

// ServiceContainer holds instances of all the application services. It is the
// entry point for handlers to reach service functionality.
type ServiceContainer struct {
	Contract ContractSvcFacade
	Schedule ScheduleSvcFacade
	Payment  PaymentSvcFacade
	Admin    AdminSvcFacade
}
