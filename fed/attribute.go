package fed

import (
	"fmt"

	"github.com/google/uuid"
)

// Attribute describes one network-transported field of a federated object.
// The received flag is a per-cycle indicator that new data for the field
// arrived in the current update cycle; it gates receive-side compensation.
type Attribute struct {
	FOMName string // schema name the field is registered under
	Owned   bool   // locally owned (published) rather than subscribed

	received bool
}

// MarkReceived records that new data for this attribute arrived this cycle.
func (a *Attribute) MarkReceived() { a.received = true }

// ClearReceived resets the per-cycle received flag once the cycle's data has
// been consumed.
func (a *Attribute) ClearReceived() { a.received = false }

// IsReceived reports whether new data arrived in the current cycle.
func (a *Attribute) IsReceived() bool { return a.received }

// Object is the registration record for one federated object instance. It
// maps schema attribute names to their transport descriptors and carries the
// federation lookahead that bounds send-side forward propagation.
type Object struct {
	FOMName string    // schema object class name
	Name    string    // federation-unique instance name
	ID      uuid.UUID // local instance identity

	lookahead  float64
	attributes map[string]*Attribute
}

// NewObject creates an object registration record with the given schema
// class name, instance name, and federation lookahead in seconds.
func NewObject(fomName, name string, lookahead float64) *Object {
	return &Object{
		FOMName:    fomName,
		Name:       name,
		ID:         uuid.New(),
		lookahead:  lookahead,
		attributes: make(map[string]*Attribute),
	}
}

// AddAttribute registers an attribute under its schema name. Registering the
// same name twice is a configuration mistake and returns an error.
func (o *Object) AddAttribute(fomName string, owned bool) (*Attribute, error) {
	if _, ok := o.attributes[fomName]; ok {
		return nil, fmt.Errorf("object %q: attribute %q registered twice", o.Name, fomName)
	}
	a := &Attribute{FOMName: fomName, Owned: owned}
	o.attributes[fomName] = a
	return a, nil
}

// Attribute resolves a schema attribute name, returning nil when the name is
// unknown.
func (o *Object) Attribute(fomName string) *Attribute {
	return o.attributes[fomName]
}

// Lookahead returns the minimum guaranteed time advance, in seconds, before
// a sent update can be acted upon by a receiver.
func (o *Object) Lookahead() float64 { return o.lookahead }

// ClearReceived resets the received flag on every attribute, ending the
// current update cycle.
func (o *Object) ClearReceived() {
	for _, a := range o.attributes {
		a.ClearReceived()
	}
}
