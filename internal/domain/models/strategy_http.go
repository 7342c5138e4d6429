package models

// Requests for strategy HTTP endpoints. Defined in domain for consistency and reuse.

type ScanRequest struct {
	PoolSize int `query:"pool_size" json:"pool_size" default:"30" validate:"gte=1,lte=300"`
}

type DiagnoseRequest struct {
	Symbol string  `query:"symbol" json:"symbol" validate:"required"`
	Cost   float64 `query:"cost" json:"cost" validate:"gt=0"`
}
