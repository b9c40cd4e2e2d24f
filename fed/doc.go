// Package fed provides the federation-side collaborators the compensation
// engine consumes: the attribute registry with per-cycle received flags, the
// scenario time source, and a wall-clock sleep timeout helper.
//
// It is an in-memory stand-in for the session and attribute-transport
// infrastructure, exposing exactly the surfaces the engine queries. It does
// not implement a wire protocol.
package fed
