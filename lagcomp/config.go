package lagcomp

import "fmt"

// Default numerical parameters for a compensation engine.
const (
	// DefaultStepSize is the fixed integration sub-step in seconds.
	DefaultStepSize = 0.05
	// DefaultTolerance bounds how close the sub-step loop must land to the
	// target time before it stops, preventing infinite sub-stepping from
	// floating-point residue.
	DefaultTolerance = 1.0e-8
	// DefaultIntegrator is the integrator registered under this name in
	// lagcomp/integ.
	DefaultIntegrator = "rk4"
)

// Config groups the numerical parameters for one compensation engine.
type Config struct {
	Integrator        string  // registered integrator name (see lagcomp/integ)
	StepSize          float64 // fixed sub-step size in seconds (must be > 0)
	Tolerance         float64 // remaining-gap tolerance ending the sub-step loop (must be > 0)
	NormalizeAttitude bool    // renormalize the attitude quaternion after each pass
	AdoptOnSend       bool    // copy the compensated state back onto the entity after a send pass
	Verbosity         string  // logrus level for engine trace output ("" = inherit global)
}

// DefaultConfig returns the engine defaults: RK4 at a 50 ms sub-step with a
// 1e-8 termination tolerance, per-pass attitude renormalization, and
// copy-back on send.
func DefaultConfig() Config {
	return Config{
		Integrator:        DefaultIntegrator,
		StepSize:          DefaultStepSize,
		Tolerance:         DefaultTolerance,
		NormalizeAttitude: true,
		AdoptOnSend:       true,
	}
}

// Validate checks the numerical parameters. A pathological step size or
// tolerance makes the sub-step loop unbounded, so both must be positive.
func (c Config) Validate() error {
	if c.Integrator == "" {
		return fmt.Errorf("config: integrator name must be set")
	}
	if c.StepSize <= 0 {
		return fmt.Errorf("config: step size must be > 0, got %g", c.StepSize)
	}
	if c.Tolerance <= 0 {
		return fmt.Errorf("config: tolerance must be > 0, got %g", c.Tolerance)
	}
	return nil
}
