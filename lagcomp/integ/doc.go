// Package integ provides the built-in integration strategies for the
// compensation engine: a multi-pass adapter in the style of an externally
// supplied staged integrator (Euler and classic fourth-order Runge-Kutta
// stage tables), and a self-contained embedded variable-step Runge-Kutta
// integrator that fully advances the state in a single call.
//
// Importing this package installs the strategies into the lagcomp registry:
//
//	import _ "github.com/simtheverse/entsync/lagcomp/integ"
//
// Both variants address the state exclusively through the flattened slot
// vector; neither knows field semantics.
package integ
