package domain

import "fmt"

// UnknownAccountCode is returned for account ids missing from the mapping.
const UnknownAccountCode = "unknown"

// AccountMapping maps a storefront/test account id to a distributor account code.
// It only annotates PO numbers for traceability and never changes submission semantics.
type AccountMapping map[string]string

// DefaultAccountMapping is the fixed table of known accounts.
func DefaultAccountMapping() AccountMapping {
	return AccountMapping{
		"99901": "60742",
		"99902": "60743",
		"99903": "60744",
		"99904": "60745",
	}
}

// Lookup returns the mapped account code or UnknownAccountCode.
func (m AccountMapping) Lookup(accountID string) string {
	if code, ok := m[accountID]; ok && code != "" {
		return code
	}
	return UnknownAccountCode
}

// AnnotatePONumber appends the account id and its mapped code to poNumber.
func (m AccountMapping) AnnotatePONumber(poNumber, accountID string) string {
	return fmt.Sprintf("%s-ACC%s-MAP%s", poNumber, accountID, m.Lookup(accountID))
}
