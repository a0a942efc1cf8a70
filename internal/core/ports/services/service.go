package services

// ServiceContainer holds instances of all the application services.
// Handlers receive their dependencies from here.
type ServiceContainer struct {
	Business    BusinessSvcFacade
	Account     AccountSvcFacade
	Transaction TransactionSvcFacade
	Catalog     CatalogSvcFacade
	Backup      BackupSvcFacade
	CSV         CSVSvcFacade
	Report      ReportSvcFacade
	Access      AccessSvcFacade
	Activity    ActivitySvcFacade
	Employee    EmployeeSvcFacade
	Part        PartSvcFacade
	Currency    CurrencySvcFacade
}
