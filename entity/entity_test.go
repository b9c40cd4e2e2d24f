package entity

import (
	"testing"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/simtheverse/entsync/fed"
)

func TestRegisterAttributes_FullTable(t *testing.T) {
	// GIVEN a publishing entity and its object registration record
	ent := New("vehicle-1", "rigid-body", "root")
	obj := fed.NewObject(FOMClassName, ent.Name, 0.1)

	// WHEN the attribute table is registered
	if err := ent.RegisterAttributes(obj, true); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// THEN every schema attribute resolves, once, as locally owned
	for _, name := range AttributeNames {
		attr := ent.Attr(name)
		if attr == nil {
			t.Fatalf("attribute %q not resolved", name)
		}
		if attr != obj.Attribute(name) {
			t.Errorf("attribute %q: cached descriptor differs from object's", name)
		}
		if !attr.Owned {
			t.Errorf("attribute %q: publisher should own it", name)
		}
	}
}

func TestRegisterAttributes_UnnamedEntity_Error(t *testing.T) {
	ent := New("", "rigid-body", "root")
	obj := fed.NewObject(FOMClassName, "", 0.1)
	if err := ent.RegisterAttributes(obj, true); err == nil {
		t.Error("expected error for entity without a federation instance name")
	}
}

func TestEntity_StateAndAccelerations(t *testing.T) {
	ent := New("vehicle-1", "rigid-body", "root")

	if ent.State().Att.W != 1 {
		t.Error("new entity should start with identity attitude")
	}

	ent.SetAccelerations(r3.Vec{X: 1}, r3.Vec{Z: -2})
	in := ent.Accelerations()
	if in.Accel.X != 1 || in.RotAccel.Z != -2 {
		t.Errorf("accelerations: got %+v", in)
	}

	s := ent.State()
	s.Pos = r3.Vec{Y: 5}
	ent.SetState(s)
	if ent.State().Pos.Y != 5 {
		t.Error("SetState did not adopt the new state")
	}
}
