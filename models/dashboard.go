package models

// ChartDataItem par nombre/valor para graficos de distribucion.
type ChartDataItem struct {
	Name  string `json:"name"`
	Value int    `json:"value"`
}

// MonthlyValueItem valor de pedidos agregado por mes.
type MonthlyValueItem struct {
	Month string  `json:"month"` // formato 2006-01
	Value float64 `json:"value"`
	Count int     `json:"count"`
}

// DashboardDataResponse datos del panel general.
type DashboardDataResponse struct {
	AccountCount     int                `json:"accountCount"`
	InteractionCount int                `json:"interactionCount"`
	TeamMemberCount  int                `json:"teamMemberCount"`
	AccountsByType   []ChartDataItem    `json:"accountsByType"`
	AccountsByTier   []ChartDataItem    `json:"accountsByTier"`
	AccountsByStatus []ChartDataItem    `json:"accountsByStatus"`
	OrdersByMonth    []MonthlyValueItem `json:"ordersByMonth"`
}
