package access

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCan_FullPolicyTable(t *testing.T) {
	tests := []struct {
		name       string
		role       Role
		capability Capability
		want       bool
	}{
		{"full access manages acquisition", RoleFullAccess, CapabilityManageAcquisition, true},
		{"restricted cannot manage acquisition", RoleRestricted, CapabilityManageAcquisition, false},
		{"read only cannot manage acquisition", RoleReadOnly, CapabilityManageAcquisition, false},

		{"full access mutates lifecycle", RoleFullAccess, CapabilityMutateLifecycle, true},
		{"restricted mutates lifecycle", RoleRestricted, CapabilityMutateLifecycle, true},
		{"read only cannot mutate lifecycle", RoleReadOnly, CapabilityMutateLifecycle, false},

		{"full access views restricted fields", RoleFullAccess, CapabilityViewRestrictedFields, true},
		{"restricted cannot view restricted fields", RoleRestricted, CapabilityViewRestrictedFields, false},
		{"read only cannot view restricted fields", RoleReadOnly, CapabilityViewRestrictedFields, false},

		{"full access views ledger", RoleFullAccess, CapabilityViewLedger, true},
		{"restricted denied ledger entirely", RoleRestricted, CapabilityViewLedger, false},
		{"read only denied ledger entirely", RoleReadOnly, CapabilityViewLedger, false},

		{"full access records adjustments", RoleFullAccess, CapabilityRecordAdjustment, true},
		{"restricted cannot record adjustments", RoleRestricted, CapabilityRecordAdjustment, false},
		{"read only cannot record adjustments", RoleReadOnly, CapabilityRecordAdjustment, false},

		{"full access manages directory", RoleFullAccess, CapabilityManageDirectory, true},
		{"restricted cannot manage directory", RoleRestricted, CapabilityManageDirectory, false},
		{"read only cannot manage directory", RoleReadOnly, CapabilityManageDirectory, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Can(tt.role, tt.capability))
		})
	}
}

func TestCan_UnknownRoleOrCapabilityDenied(t *testing.T) {
	assert.False(t, Can(Role("SUPERUSER"), CapabilityViewLedger))
	assert.False(t, Can(RoleFullAccess, Capability("delete-everything")))
	assert.False(t, Can(Role(""), Capability("")))
}

func TestRole_IsValid(t *testing.T) {
	assert.True(t, RoleFullAccess.IsValid())
	assert.True(t, RoleRestricted.IsValid())
	assert.True(t, RoleReadOnly.IsValid())
	assert.False(t, Role("OWNER").IsValid())
}
