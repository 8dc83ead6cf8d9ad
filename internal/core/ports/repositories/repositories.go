package repositories

// RepositoryProvider bundles the concrete repository implementations handed
// to the service layer.
type RepositoryProvider struct {
	UserRepo        UserRepository
	TransactionRepo TransactionRepository
}
