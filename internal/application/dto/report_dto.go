package dto

// TotalsResponse resumen de unidades vendidas por marca y modelo.
type TotalsResponse struct {
	TotalItems int            `json:"totalItems"`
	ByBrand    map[string]int `json:"byBrand"`
	ByModel    map[string]int `json:"byModel"`
}

// ReportTotalsResult salida de report.totals.
type ReportTotalsResult struct {
	Current         int `json:"current"`
	HistoricalTotal int `json:"historicalTotal"`
	Window          int `json:"window"`
}

// ReportBreakdownResult salida de report.byBrand / report.byModel.
type ReportBreakdownResult struct {
	Current    map[string]int `json:"current"`
	Historical map[string]int `json:"historical"`
}

// ReportSnapshot payload periódico report.snapshot (solo vendedor).
type ReportSnapshot struct {
	Current    TotalsResponse `json:"current"`
	Historical TotalsResponse `json:"historical"`
	Window     int            `json:"window"`
}
