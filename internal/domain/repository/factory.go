package repository

// Factory describes access to different domain repositories.
type Factory interface {
	Products() ProductRepository
	Orders() OrderRepository
	Integrations() IntegrationRepository
}
