package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDecisionAllowed(t *testing.T) {
	tests := []struct {
		gate     GateType
		decision string
		allowed  bool
	}{
		{GateOperatingModel, DecisionApproved, true},
		{GateOperatingModel, DecisionNotRequired, true},
		{GateOperatingModel, DecisionDeferred, false},
		{GateOperatingModel, DecisionConditionallyApproved, false},
		{GateIntake, DecisionDeferred, true},
		{GateIntake, DecisionNotRequired, false},
		{GateRAI, DecisionConditionallyApproved, true},
		{GateRAI, DecisionDeferred, false},
		{GateRAI, "nonsense", false},
	}

	for _, tt := range tests {
		t.Run(string(tt.gate)+"/"+tt.decision, func(t *testing.T) {
			assert.Equal(t, tt.allowed, DecisionAllowed(tt.gate, tt.decision))
		})
	}
}

func TestGateRecord_Passed(t *testing.T) {
	var nilRecord *GateRecord
	assert.False(t, nilRecord.Passed())
	assert.False(t, (&GateRecord{Decision: DecisionRejected}).Passed())
	assert.False(t, (&GateRecord{Decision: DecisionPending}).Passed())
	assert.True(t, (&GateRecord{Decision: DecisionApproved}).Passed())
	assert.True(t, (&GateRecord{Decision: DecisionConditionallyApproved}).Passed())
	assert.True(t, (&GateRecord{Decision: DecisionNotRequired}).Passed())
}

func TestGateRecord_Decided(t *testing.T) {
	var nilRecord *GateRecord
	assert.False(t, nilRecord.Decided())
	assert.False(t, (&GateRecord{}).Decided())
	assert.False(t, (&GateRecord{Decision: DecisionNotSubmitted}).Decided())
	assert.True(t, (&GateRecord{Decision: DecisionRejected}).Decided())
}

func TestGovernance_MissingFor(t *testing.T) {
	g := Governance{}
	assert.Equal(t, GateOrder, g.MissingFor())

	g.OperatingModel = &GateRecord{Decision: DecisionApproved}
	g.RAI = &GateRecord{Decision: DecisionApproved}
	assert.Equal(t, []GateType{GateIntake}, g.MissingFor())

	g.Intake = &GateRecord{Decision: DecisionApproved}
	assert.Empty(t, g.MissingFor())
	assert.True(t, g.AllPassed())
}

func TestGovernance_GateRoundTrip(t *testing.T) {
	g := Governance{}
	for _, gate := range GateOrder {
		rec := &GateRecord{Decision: DecisionApproved}
		g.SetGate(gate, rec)
		assert.Same(t, rec, g.Gate(gate))
	}
}
