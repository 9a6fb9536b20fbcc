package dto

// ImportRowError error de una fila del archivo importado.
type ImportRowError struct {
	Row     int    `json:"row"`
	Message string `json:"message"`
}

// ImportSummary resultado de POST /api/catalog/process-prices/import.
type ImportSummary struct {
	Rows    int              `json:"rows"`
	Updated int              `json:"updated"`
	Skipped int              `json:"skipped"`
	Errors  []ImportRowError `json:"errors"`
}
