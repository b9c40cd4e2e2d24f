package lagcomp

import (
	"fmt"
	"math"

	"github.com/simtheverse/entsync/fed"
)

// SentinelTime is returned by time queries when no time source is attached.
// Time services may be queried before full initialization, so an unattached
// source yields the sentinel rather than a panic.
const SentinelTime = -math.MaxFloat64

// TimeSource supplies federation time services to a compensator.
type TimeSource interface {
	// ScenarioTime returns the current scenario time in seconds. The second
	// return is false when the source cannot produce a time yet.
	ScenarioTime() (float64, bool)
	// CTETime returns the common time reference time, when such an externally
	// synchronized clock exists.
	CTETime() (float64, bool)
}

// Compensator is implemented by every concrete entity-type compensator. The
// send and receive hooks are required interface methods: an entity type that
// does not implement a compensation policy does not compile, rather than
// failing at first invocation.
type Compensator interface {
	// Initialize resolves attribute descriptors and constructs the
	// integration strategy. Errors are configuration mistakes and are fatal
	// to the caller.
	Initialize() error
	// SendLagCompensation propagates the local entity state forward by the
	// federation lookahead before transmission.
	SendLagCompensation()
	// ReceiveLagCompensation closes the gap between arrived data's timestamp
	// and local scenario time, gated on data freshness.
	ReceiveLagCompensation()
}

// Base provides the integration-independent services every compensator
// needs: time queries, lookahead, and attribute resolution. Concrete
// compensators embed it.
type Base struct {
	obj   *fed.Object
	clock TimeSource
}

// AttachObject associates the compensator with its federated object
// registration record.
func (b *Base) AttachObject(obj *fed.Object) { b.obj = obj }

// AttachClock associates the compensator with a federation time source.
func (b *Base) AttachClock(clock TimeSource) { b.clock = clock }

// Object returns the attached object registration record, nil before
// AttachObject.
func (b *Base) Object() *fed.Object { return b.obj }

// ScenarioTime returns the current scenario time, or SentinelTime when no
// time source is attached or the source is not ready.
func (b *Base) ScenarioTime() float64 {
	if b.clock == nil {
		return SentinelTime
	}
	t, ok := b.clock.ScenarioTime()
	if !ok {
		return SentinelTime
	}
	return t
}

// CTETime returns the common time reference time, or SentinelTime when no
// CTE timeline exists.
func (b *Base) CTETime() float64 {
	if b.clock == nil {
		return SentinelTime
	}
	t, ok := b.clock.CTETime()
	if !ok {
		return SentinelTime
	}
	return t
}

// Lookahead returns the federation lookahead in seconds, or -1 when no
// object is attached.
func (b *Base) Lookahead() float64 {
	if b.obj == nil {
		return -1
	}
	return b.obj.Lookahead()
}

// Attribute resolves a schema attribute name on the attached object,
// returning nil when unknown or unattached.
func (b *Base) Attribute(fomName string) *fed.Attribute {
	if b.obj == nil {
		return nil
	}
	return b.obj.Attribute(fomName)
}

// AttributeAndValidate resolves a schema attribute name and fails with a
// descriptive error naming the object and field when the name is unknown.
// An unresolved name is a configuration mismatch that would corrupt every
// subsequent cycle, so callers treat the error as fatal at initialization.
func (b *Base) AttributeAndValidate(fomName string) (*fed.Attribute, error) {
	if b.obj == nil {
		return nil, fmt.Errorf("attribute %q: no federated object attached", fomName)
	}
	if fomName == "" {
		return nil, fmt.Errorf("object %q: empty attribute name", b.obj.Name)
	}
	attr := b.obj.Attribute(fomName)
	if attr == nil {
		return nil, fmt.Errorf("object %q (class %q): no attribute named %q registered; check the schema and the object's attribute table",
			b.obj.Name, b.obj.FOMName, fomName)
	}
	return attr, nil
}
