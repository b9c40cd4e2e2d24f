// register.go wires the built-in integrators into the lagcomp registry.
// This init() runs when any package imports lagcomp/integ, breaking the
// import cycle between lagcomp (interface owner) and integ (implementations).
package integ

import "github.com/simtheverse/entsync/lagcomp"

func init() {
	lagcomp.RegisterIntegrator("euler", NewEuler)
	lagcomp.RegisterIntegrator("rk4", NewRK4)
	lagcomp.RegisterIntegrator("rk4sa", NewEmbeddedRK4)
}
