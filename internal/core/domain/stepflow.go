package domain

func rolePtr(role string) *string {
	return &role
}

// TemplateForType returns the ordered step flow for a voucher type. Step 1 is
// the implicit submission slot, satisfied by the act of creation. The caller
// snapshots the returned slice onto the voucher, so later template changes
// never affect in-flight vouchers.
func TemplateForType(t VoucherType) []StepRule {
	switch t {
	case Disbursement:
		return []StepRule{
			{},
			{Role: rolePtr(RoleAccountingHead)},
			{Role: rolePtr(RoleAuditor)},
			{Role: rolePtr(RoleSVP)},
			{Role: rolePtr(RoleAccountingAssistant)}, // Final step, requires check reference
		}
	case Journal:
		return []StepRule{
			{},
			{Role: rolePtr(RoleAccountingHead)},
			{Role: rolePtr(RoleAuditor)},
			{Role: rolePtr(RoleSVP)},
		}
	}
	return nil
}
