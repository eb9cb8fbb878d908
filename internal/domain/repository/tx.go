package repository

// TxRepos repositorios atados a una misma transacción.
type TxRepos struct {
	Products  ProductRepository
	Movements StockMovementRepository
	Sales     SaleRepository
	Opnames   StockOpnameRepository
	Settings  SettingRepository
}
