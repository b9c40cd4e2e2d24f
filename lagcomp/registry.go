package lagcomp

import (
	"fmt"
	"sort"
)

// DerivativeFunc evaluates the state derivative at time t, writing into dy.
// Integrators call it once per internal stage.
type DerivativeFunc func(t float64, y *StateVector, dy *StateVector)

// Integrator advances a flattened kinematic state through time. The engine
// drives it through Prepare/Load/Step/Unload and reads the authoritative
// clock back through Time rather than accumulating step sizes itself.
type Integrator interface {
	// Prepare initializes the integrator clock to the pass start time.
	Prepare(start float64)
	// Step advances the loaded state by at most maxStep seconds and returns
	// the step actually taken. Multi-pass integrators run all internal
	// stages, recomputing derivatives and reloading state between passes,
	// before returning.
	Step(maxStep float64) float64
	// Time returns the integrator's authoritative clock.
	Time() float64
	// Load copies the flattened state into the integrator's working buffer.
	Load(y *StateVector)
	// Unload copies the integrator's working buffer back out.
	Unload(y *StateVector)
}

// IntegratorConstructor builds an integrator for a derivative callback.
// The stepSize is the configured fixed sub-step, informational for schemes
// that size internal stages from it.
type IntegratorConstructor func(stepSize float64, deriv DerivativeFunc) Integrator

// integratorRegistry maps integrator names to constructors. Implementations
// in lagcomp/integ register themselves from init(); importing that package
// for side effects installs the built-in set. The indirection breaks the
// import cycle between lagcomp (interface owner) and lagcomp/integ.
var integratorRegistry = map[string]IntegratorConstructor{}

// RegisterIntegrator installs a named integrator constructor. Registering a
// duplicate name panics: it is a programmer error visible at package load.
func RegisterIntegrator(name string, ctor IntegratorConstructor) {
	if _, ok := integratorRegistry[name]; ok {
		panic(fmt.Sprintf("lagcomp: integrator %q registered twice", name))
	}
	integratorRegistry[name] = ctor
}

// NewIntegrator constructs the integrator registered under name. An unknown
// name is a configuration error listing the available integrators.
func NewIntegrator(name string, stepSize float64, deriv DerivativeFunc) (Integrator, error) {
	ctor, ok := integratorRegistry[name]
	if !ok {
		return nil, fmt.Errorf("unknown integrator %q (registered: %v); import lagcomp/integ for the built-in set",
			name, IntegratorNames())
	}
	return ctor(stepSize, deriv), nil
}

// IntegratorNames returns the registered integrator names, sorted.
func IntegratorNames() []string {
	names := make([]string, 0, len(integratorRegistry))
	for name := range integratorRegistry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
