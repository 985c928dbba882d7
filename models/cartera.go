package models

// EnrichedAccount read model para el dashboard de cartera: cuenta mas
// estado y puntuacion calculados y el historial agregado. Se construye
// por peticion, nunca se persiste.
type EnrichedAccount struct {
	Account Account `json:"account"`

	Status    AccountStatus `json:"status"`
	LeadScore int           `json:"leadScore"`

	LastInteraction *Interaction `json:"lastInteraction,omitempty"`
	NextPendingTask *Interaction `json:"nextPendingTask,omitempty"`

	// Agregados sobre estados de venta valida
	TotalOrders int     `json:"totalOrders"`
	TotalValue  float64 `json:"totalValue"`

	OwnerName   string `json:"ownerName,omitempty"`
	OwnerAvatar string `json:"ownerAvatar,omitempty"`

	Interactions []Interaction `json:"interactions"`
}

// CarteraSummary recuento de cuentas por estado calculado.
type CarteraSummary struct {
	Total    int                   `json:"total"`
	ByStatus map[AccountStatus]int `json:"byStatus"`
}
