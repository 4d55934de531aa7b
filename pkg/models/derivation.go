package models

import "time"

// DerivationState tracks who last produced a derived sub-object.
// Auto-derived content may be silently regenerated; user-edited content
// must never be clobbered by a deriver.
type DerivationState string

const (
	DerivationNotSet     DerivationState = ""
	DerivationAutoDerive DerivationState = "auto_derived"
	DerivationUserEdited DerivationState = "user_edited"
)

// Derivation is the provenance tag carried by every derived sub-object.
type Derivation struct {
	State DerivationState `json:"state"`
	At    *time.Time      `json:"at,omitempty"`
}

// CanAutoDerive reports whether a deriver may overwrite the sub-object.
func (d Derivation) CanAutoDerive() bool {
	return d.State != DerivationUserEdited
}

// AutoDerived returns a Derivation stamped as machine-produced at t.
func AutoDerived(t time.Time) Derivation {
	return Derivation{State: DerivationAutoDerive, At: &t}
}

// UserEdited returns a Derivation stamped as human-edited at t.
func UserEdited(t time.Time) Derivation {
	return Derivation{State: DerivationUserEdited, At: &t}
}
