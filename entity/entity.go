// Package entity provides the concrete physical entity model the
// compensation engine operates on: the live kinematic state buffer, the
// externally computed acceleration inputs, and the attribute table the
// entity registers with its federated object.
package entity

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/westphae/quaternion"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/simtheverse/entsync/fed"
	"github.com/simtheverse/entsync/lagcomp"
)

// FOMClassName is the schema object class physical entities register as.
const FOMClassName = "PhysicalEntity"

// AttributeNames is the entity's attribute table, in registration order.
var AttributeNames = []string{
	"name",
	"type",
	"status",
	"parent_reference_frame",
	"state",
	"acceleration",
	"rotational_acceleration",
	"center_of_mass",
	"body_wrt_structural",
}

// PhysicalEntity is the live simulation representation of one rigid body.
// Its state buffer is the one the compensation engine reads at pass entry
// and writes at pass exit.
type PhysicalEntity struct {
	ID          uuid.UUID
	Name        string
	Type        string
	Status      string
	ParentFrame string

	state    lagcomp.KinematicState
	accel    r3.Vec
	rotAccel r3.Vec

	CenterOfMass  r3.Vec
	BodyWrtStruct quaternion.Quaternion // body frame w.r.t. structural frame

	obj   *fed.Object
	attrs map[string]*fed.Attribute
}

// New creates a physical entity with identity quaternion attitude and a
// fresh instance ID.
func New(name, typ, parentFrame string) *PhysicalEntity {
	return &PhysicalEntity{
		ID:            uuid.New(),
		Name:          name,
		Type:          typ,
		ParentFrame:   parentFrame,
		state:         lagcomp.KinematicState{Att: quaternion.Quaternion{W: 1}},
		BodyWrtStruct: quaternion.Quaternion{W: 1},
	}
}

// RegisterAttributes builds the entity's attribute table on the given object
// registration record and resolves the descriptor references once, so
// lookups are not repeated every cycle. An entity publishes when it owns the
// object instance and subscribes otherwise.
func (p *PhysicalEntity) RegisterAttributes(obj *fed.Object, publishes bool) error {
	if p.Name == "" {
		return fmt.Errorf("entity: federation instance name must be set before registration")
	}
	p.obj = obj
	p.attrs = make(map[string]*fed.Attribute, len(AttributeNames))
	for _, name := range AttributeNames {
		attr, err := obj.AddAttribute(name, publishes)
		if err != nil {
			return fmt.Errorf("entity %q: %w", p.Name, err)
		}
		p.attrs[name] = attr
	}
	return nil
}

// Object returns the attached object registration record, nil before
// RegisterAttributes.
func (p *PhysicalEntity) Object() *fed.Object { return p.obj }

// Attr returns the resolved attribute descriptor for a schema name, nil when
// unknown or not yet registered.
func (p *PhysicalEntity) Attr(name string) *fed.Attribute { return p.attrs[name] }

// State returns the entity's current kinematic state.
func (p *PhysicalEntity) State() lagcomp.KinematicState { return p.state }

// SetState adopts a state as the entity's current state.
func (p *PhysicalEntity) SetState(s lagcomp.KinematicState) { p.state = s }

// Accelerations returns the entity's instantaneous accelerations. They are
// computed by the owning dynamics model and treated as input by the engine.
func (p *PhysicalEntity) Accelerations() lagcomp.AccelInputs {
	return lagcomp.AccelInputs{Accel: p.accel, RotAccel: p.rotAccel}
}

// SetAccelerations updates the entity's instantaneous accelerations.
func (p *PhysicalEntity) SetAccelerations(accel, rotAccel r3.Vec) {
	p.accel = accel
	p.rotAccel = rotAccel
}
