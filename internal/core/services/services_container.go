package services

import (
	"time"

	portsrepo "github.com/SscSPs/business_tracker/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/business_tracker/internal/core/ports/services"
)

// ContainerConfig carries the settings the services need from the platform config.
type ContainerConfig struct {
	Access   AccessConfig
	Location *time.Location
}

// NewServiceContainer wires every service over one store.
func NewServiceContainer(cfg ContainerConfig, store portsrepo.Store) *portssvc.ServiceContainer {
	access := NewAccessService(store, cfg.Access)
	ledger := NewLedgerService(store, WithTransactionAuthorizer(access))

	return &portssvc.ServiceContainer{
		Business:    NewBusinessService(store),
		Account:     ledger,
		Transaction: ledger,
		Catalog:     NewCatalogService(store),
		Backup:      NewBackupService(store),
		CSV:         NewCSVService(store, WithCSVLocation(cfg.Location)),
		Report:      NewReportService(store, cfg.Location),
		Access:      access,
		Activity:    NewActivityService(store),
		Employee:    NewEmployeeService(store),
		Part:        NewPartService(store),
		Currency:    NewCurrencyService(),
	}
}
