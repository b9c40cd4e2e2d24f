// Package lagcomp provides the latency compensation engine for federated
// real-time simulation: it propagates a rigid-body kinematic state forward
// across the network transport gap so a receiver consumes the state at its
// own current time rather than at the stale time the update was sent.
//
// # Reading Guide
//
// Start with these three files to understand the engine:
//   - state.go: the 13-scalar kinematic state and its flattened slot mapping
//   - compensator.go: the contract every entity-type compensator satisfies
//   - engine.go: the compensation pass (copy-in, sub-step loop, copy-out)
//
// # Architecture
//
// The lagcomp package owns the Integrator interface and a named constructor
// registry; implementations live in lagcomp/integ and register themselves
// via init(). Production code imports lagcomp/integ directly; the engine
// looks integrators up by the name carried in its Config.
//
// On the sending side the engine reads the current entity state, propagates
// it forward by the federation lookahead, and writes the compensated state
// back for transmission. On the receiving side it closes the gap between the
// arrived data's timestamp and local scenario time, but only when new
// attribute data actually arrived this cycle.
package lagcomp
