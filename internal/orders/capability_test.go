package orders

import (
	"testing"

	"magacin-backend/internal/models"
)

func TestAllowedMatrix(t *testing.T) {
	cases := []struct {
		role models.UserRole
		op   Operation
		want bool
	}{
		{models.RoleOwner, OpCreate, true},
		{models.RoleWorker, OpCreate, true},
		{models.RoleCourier, OpCreate, false},

		{models.RoleOwner, OpComplete, true},
		{models.RoleWorker, OpComplete, true},
		{models.RoleCourier, OpComplete, false},

		{models.RoleOwner, OpVoid, true},
		{models.RoleWorker, OpVoid, true},
		{models.RoleCourier, OpVoid, false},

		{models.RoleOwner, OpDelete, true},
		{models.RoleWorker, OpDelete, false},
		{models.RoleCourier, OpDelete, false},

		{models.RoleOwner, OpAssignCourier, true},
		{models.RoleWorker, OpAssignCourier, false},
		{models.RoleCourier, OpAssignCourier, false},
	}

	for _, c := range cases {
		for _, tip := range []models.OrderType{models.OrderTypePurchase, models.OrderTypeSale} {
			if got := Allowed(c.role, c.op, tip); got != c.want {
				t.Errorf("Allowed(%s, %s, %s) = %v, want %v", c.role, c.op, tip, got, c.want)
			}
		}
	}
}

func TestAllowedUnknown(t *testing.T) {
	if Allowed("NEPOZNATA", OpCreate, models.OrderTypeSale) {
		t.Error("nepoznata uloga ne sme da dobije pristup")
	}
	if Allowed(models.RoleOwner, "nepoznata_operacija", models.OrderTypeSale) {
		t.Error("nepoznata operacija ne sme da bude dozvoljena")
	}
}
