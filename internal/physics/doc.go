// Package physics holds the stateless energy-balance functions of the
// lumped-parameter solar loop model: collector useful heat, collector
// outlet temperature, and the tank temperature derivative.
//
// Temperatures are Kelvin, heat rates Watts. The functions are pure;
// all state lives with the caller.
package physics
