package entity

import "time"

// Claves de configuración conocidas.
const (
	SettingStoreName         = "store_name"
	SettingStoreAddress      = "store_address"
	SettingStorePhone        = "store_phone"
	SettingCurrency          = "currency"
	SettingLowStockThreshold = "low_stock_threshold"
)

// Setting par clave/valor de configuración de la tienda.
type Setting struct {
	Key       string
	Value     string
	UpdatedAt time.Time
}
