package physics

import "github.com/san-kum/heliosim/internal/params"

// TankDerivativeKS computes dT/dt [K/s] for a well-mixed storage tank:
// a mixing term driven by the loop return temperature and a loss term
// driven by the gap to room temperature.
//
//	dT/dt = (m_dot/m)*(T_out - T_tank) - (UA/(m*c_p))*(T_tank - T_room)
func TankDerivativeKS(tTankK, tOutK, tRoomK, mDotKgS float64, tank params.Tank) float64 {
	mixing := (mDotKgS / tank.MassKg) * (tOutK - tTankK)
	loss := (tank.UAWK / (tank.MassKg * tank.CpJKgK)) * (tTankK - tRoomK)
	return mixing - loss
}
