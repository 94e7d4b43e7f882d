package orders

import "magacin-backend/internal/models"

type Operation string

const (
	OpCreate        Operation = "kreiranje"
	OpComplete      Operation = "zavrsavanje" // prelaz u ZAVRSENA ili PRIMLJENA
	OpVoid          Operation = "storniranje"
	OpDelete        Operation = "brisanje"
	OpAssignCourier Operation = "dodela_dostavljaca"
)

// Allowed: čista provera kapabiliteta (uloga, operacija, tip) -> bool.
// Vlasništvo dostavljača nad narudžbenicom se proverava posebno, jer
// zahteva učitanu narudžbenicu.
func Allowed(role models.UserRole, op Operation, tip models.OrderType) bool {
	switch op {
	case OpCreate:
		return role == models.RoleOwner || role == models.RoleWorker
	case OpComplete, OpVoid:
		// samo povišene uloge smeju da završe ili storniraju
		return role == models.RoleOwner || role == models.RoleWorker
	case OpDelete, OpAssignCourier:
		return role == models.RoleOwner
	}
	return false
}
