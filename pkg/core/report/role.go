package report

import (
	"fmt"
	"strings"
)

// Role is the closed set of executive roles a report can target. The
// associated description steers the emphasis of the generated narrative.
type Role string

const (
	RoleCEO                  Role = "CEO"
	RoleCFO                  Role = "CFO"
	RoleCOO                  Role = "COO"
	RoleCTO                  Role = "CTO"
	RoleCMO                  Role = "CMO"
	RoleHeadOfSales          Role = "Head of Sales"
	RoleHeadOfProduct        Role = "Head of Product"
	RoleVPMarketing          Role = "VP Marketing"
	RoleVPOperations         Role = "VP Operations"
	RoleChiefStrategyOfficer Role = "Chief Strategy Officer"
)

// AllRoles lists every role in presentation order.
var AllRoles = []Role{
	RoleCEO, RoleCFO, RoleCOO, RoleCTO, RoleCMO,
	RoleHeadOfSales, RoleHeadOfProduct, RoleVPMarketing,
	RoleVPOperations, RoleChiefStrategyOfficer,
}

var roleDescriptions = map[Role]string{
	RoleCEO:                  "chief executive officer focused on overall strategy, growth, and shareholder value",
	RoleCFO:                  "chief financial officer focused on financial performance, profitability, and risk management",
	RoleCOO:                  "chief operating officer focused on operational efficiency, process optimization, and execution",
	RoleCTO:                  "chief technology officer focused on technology strategy, innovation, and digital transformation",
	RoleCMO:                  "chief marketing officer focused on brand strategy, customer acquisition, and market positioning",
	RoleHeadOfSales:          "sales leader focused on revenue growth, sales performance, and market expansion",
	RoleHeadOfProduct:        "product leader focused on product strategy, development, and market fit",
	RoleVPMarketing:          "marketing leader focused on campaign effectiveness, demand generation, and market share",
	RoleVPOperations:         "operations leader focused on supply chain, fulfillment, and operational scalability",
	RoleChiefStrategyOfficer: "strategy leader focused on long-term positioning, competitive dynamics, and portfolio choices",
}

// Description returns the framing text for the role. Unknown values get a
// generic framing so synthesis still proceeds.
func (r Role) Description() string {
	if desc, ok := roleDescriptions[r]; ok {
		return desc
	}
	return fmt.Sprintf("%s focused on strategic leadership and business performance", string(r))
}

// Slug returns the lowercase underscore form used for prompt registry IDs.
func (r Role) Slug() string {
	return strings.ReplaceAll(strings.ToLower(string(r)), " ", "_")
}

// ParseRole resolves a string identifier to a Role, case-insensitively.
func ParseRole(s string) (Role, error) {
	needle := strings.ReplaceAll(strings.ToLower(strings.TrimSpace(s)), "_", " ")
	for _, role := range AllRoles {
		if strings.ToLower(string(role)) == needle {
			return role, nil
		}
	}
	return "", fmt.Errorf("unknown executive role: %q", s)
}
