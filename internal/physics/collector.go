package physics

import "github.com/san-kum/heliosim/internal/params"

// CollectorUsefulHeatW computes the useful collector output Q_u [W]
// from a Hottel-Whillier style balance:
//
//	Q_u = A * F_R * (eta0*G - U_L*(T_in - T_amb))
//
// The result is clamped at zero: when thermal loss exceeds optical
// gain the collector delivers nothing, it never actively cools the
// loop.
func CollectorUsefulHeatW(tInK, tAmbK, irradianceWM2 float64, c params.Collector) float64 {
	qU := c.AreaM2 * c.HeatRemovalFactor *
		(c.OpticalEfficiency*irradianceWM2 - c.LossCoefficientWM2K*(tInK-tAmbK))
	if qU < 0 {
		return 0
	}
	return qU
}

// CollectorOutletK computes the collector outlet temperature from the
// fluid energy balance Q = m_dot * c_p * (T_out - T_in). With no
// circulation (mDot <= 0) the loop is stagnant and the outlet equals
// the inlet.
func CollectorOutletK(tInK, qUW, mDotKgS, cpJKgK float64) float64 {
	if mDotKgS <= 0 {
		return tInK
	}
	return tInK + qUW/(mDotKgS*cpJKgK)
}
