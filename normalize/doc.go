// Package normalize maps observed progress fractions measured at different
// temperatures onto the mean temperature of the run, using the fitted
// activation energy:
//
//	α_norm = α · exp((Ea/R)·(1/T − 1/Tavg))
//
// A record measured at T == Tavg is returned unchanged.
package normalize
