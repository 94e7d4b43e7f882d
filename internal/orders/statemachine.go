package orders

import "magacin-backend/internal/models"

// Tabela dozvoljenih prelaza statusa, po tipu narudžbenice. Statusi koji
// nemaju ulaz u tabeli su konačni. PRIMLJENA i POSLATA postoje kao
// validne vrednosti statusa zbog starih podataka, ali nijedan prelaz ne
// vodi u njih.
var allowedTransitions = map[models.OrderType]map[models.OrderStatus][]models.OrderStatus{
	models.OrderTypePurchase: {
		models.StatusCreated:   {models.StatusInTransit, models.StatusCancelled},
		models.StatusInTransit: {models.StatusCompleted},
	},
	models.OrderTypeSale: {
		models.StatusCreated: {models.StatusVoided, models.StatusCompleted},
	},
}

var validStatuses = []models.OrderStatus{
	models.StatusCreated,
	models.StatusSent,
	models.StatusInTransit,
	models.StatusReceived,
	models.StatusCompleted,
	models.StatusCancelled,
	models.StatusVoided,
}

func ValidStatus(s models.OrderStatus) bool {
	for _, v := range validStatuses {
		if v == s {
			return true
		}
	}
	return false
}

func ValidStatuses() []models.OrderStatus {
	out := make([]models.OrderStatus, len(validStatuses))
	copy(out, validStatuses)
	return out
}

// AllowedTargets: u koje statuse narudžbenica datog tipa sme da pređe iz
// trenutnog statusa. Prazan rezultat znači da je status konačan.
func AllowedTargets(tip models.OrderType, from models.OrderStatus) []models.OrderStatus {
	targets := allowedTransitions[tip][from]
	out := make([]models.OrderStatus, len(targets))
	copy(out, targets)
	return out
}

func CanTransition(tip models.OrderType, from, to models.OrderStatus) bool {
	for _, t := range allowedTransitions[tip][from] {
		if t == to {
			return true
		}
	}
	return false
}
