package access

// Role is the permission level an actor holds within one organization.
type Role string

const (
	RoleFullAccess Role = "FULL_ACCESS"
	RoleRestricted Role = "RESTRICTED"
	RoleReadOnly   Role = "READ_ONLY"
)

// IsValid checks if the role is a known Role
func (r Role) IsValid() bool {
	switch r {
	case RoleFullAccess, RoleRestricted, RoleReadOnly:
		return true
	}
	return false
}

// String returns the string representation of Role
func (r Role) String() string {
	return string(r)
}

// Capability is a named action an actor may be allowed to perform.
type Capability string

const (
	// CapabilityManageAcquisition covers acquiring and removing vehicles and
	// editing their restricted acquisition fields.
	CapabilityManageAcquisition Capability = "manage-acquisition"
	// CapabilityMutateLifecycle covers cost events, disposal, status changes
	// and edits to descriptive fields.
	CapabilityMutateLifecycle Capability = "mutate-lifecycle"
	// CapabilityViewRestrictedFields covers acquisition cost, counterparty
	// details and profit/margin views.
	CapabilityViewRestrictedFields Capability = "view-restricted-fields"
	// CapabilityViewLedger covers the transaction list and balances.
	CapabilityViewLedger Capability = "view-ledger"
	// CapabilityRecordAdjustment covers manual adjustment ledger entries.
	CapabilityRecordAdjustment Capability = "record-adjustment"
	// CapabilityManageDirectory covers inviting actors, changing roles and
	// removing actors from the organization.
	CapabilityManageDirectory Capability = "manage-directory"
)

// policy is the canonical capability table. It is consulted by every
// mutating operation before the effect is applied; there is no other
// authorization source in the system.
var policy = map[Capability]map[Role]bool{
	CapabilityManageAcquisition: {
		RoleFullAccess: true,
	},
	CapabilityMutateLifecycle: {
		RoleFullAccess: true,
		RoleRestricted: true,
	},
	CapabilityViewRestrictedFields: {
		RoleFullAccess: true,
	},
	CapabilityViewLedger: {
		RoleFullAccess: true,
	},
	CapabilityRecordAdjustment: {
		RoleFullAccess: true,
	},
	CapabilityManageDirectory: {
		RoleFullAccess: true,
	},
}

// Can reports whether the given role holds the given capability.
// Unknown roles and unknown capabilities are always denied.
func Can(role Role, capability Capability) bool {
	allowed, ok := policy[capability]
	if !ok {
		return false
	}
	return allowed[role]
}

// CanViewRestrictedFields reports whether the role may see acquisition cost,
// counterparty details and profit figures on a vehicle.
func CanViewRestrictedFields(role Role) bool {
	return Can(role, CapabilityViewRestrictedFields)
}
