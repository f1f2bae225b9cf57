// Package authority holds the priority tables that settle conflicts between
// ledger rows: which observed role names an entity, and which risk level wins
// when two rows disagree.
package authority

import (
	"sort"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Role names with a fixed priority.
const (
	RolePrimeProvider = "prime_provider"
	RoleOwnerGroup    = "owner_group"
	RoleFreeholder    = "freeholder"
	RoleBrandOperator = "brand_operator"
	RoleOperator      = "operator"
	RoleHotelOperator = "hotel_operator"
	RolePublicBody    = "public_body"
	RoleOther         = "other"
)

// Risk levels with a fixed priority.
const (
	RiskHigh     = "high"
	RiskElevated = "elevated"
	RiskMedium   = "medium"
	RiskWarning  = "warning"
	RiskLow      = "low"
)

// Rank pairs a vocabulary value with its priority (higher wins).
type Rank struct {
	Value    string `json:"value" yaml:"value"`
	Priority int    `json:"priority" yaml:"priority"`
}

// Authority answers priority questions for roles and risk levels.
type Authority interface {
	// RolePriority returns the priority of a role, 0 when unknown
	RolePriority(role string) int

	// RiskPriority returns the priority of a risk level, 0 when unknown
	RiskPriority(level string) int

	// Roles lists the role table, highest priority first
	Roles() []Rank
}

type authorities struct {
	roles []Rank
	risks []Rank
}

var defaultAuthority = New()

// New creates an Authority with the standard role and risk tables.
func New() Authority {
	return &authorities{
		roles: defaultRoleRanks(),
		risks: defaultRiskRanks(),
	}
}

// RolePriority returns the priority of a role, 0 when unknown.
func (a *authorities) RolePriority(role string) int {
	if r := ByValue(role, a.roles); r != nil {
		return r.Priority
	}
	return 0
}

// RiskPriority returns the priority of a risk level, 0 when unknown.
func (a *authorities) RiskPriority(level string) int {
	if r := ByValue(strings.ToLower(level), a.risks); r != nil {
		return r.Priority
	}
	return 0
}

// Roles lists the role table, highest priority first.
func (a *authorities) Roles() []Rank {
	out := append([]Rank(nil), a.roles...)
	sort.SliceStable(out, func(i, j int) bool { return out[i].Priority > out[j].Priority })
	return out
}

// ByValue returns the rank entry for value, or nil.
func ByValue(value string, ranks []Rank) *Rank {
	for i := range ranks {
		if ranks[i].Value == value {
			return &ranks[i]
		}
	}
	return nil
}

// RolePriority returns the default priority of a role.
func RolePriority(role string) int {
	return defaultAuthority.RolePriority(role)
}

// RiskPriority returns the default priority of a risk level.
func RiskPriority(level string) int {
	return defaultAuthority.RiskPriority(level)
}

// PickRiskLevel returns whichever of current and next has the higher
// priority. current is kept on ties; an empty current always yields next.
func PickRiskLevel(current, next string) string {
	if next == "" {
		return current
	}
	if current == "" {
		return next
	}
	if RiskPriority(next) > RiskPriority(current) {
		return next
	}
	return current
}

// SortRoles returns the distinct roles ordered by priority desc, then name.
func SortRoles(roles []string) []string {
	seen := make(map[string]bool, len(roles))
	out := make([]string, 0, len(roles))
	for _, r := range roles {
		if r == "" || seen[r] {
			continue
		}
		seen[r] = true
		out = append(out, r)
	}
	sort.Slice(out, func(i, j int) bool {
		pi, pj := RolePriority(out[i]), RolePriority(out[j])
		if pi != pj {
			return pi > pj
		}
		return out[i] < out[j]
	})
	return out
}

// PrimaryRole returns the highest priority role, or RoleOther.
func PrimaryRole(roles []string) string {
	sorted := SortRoles(roles)
	if len(sorted) == 0 {
		return RoleOther
	}
	return sorted[0]
}

var titleCaser = cases.Title(language.BritishEnglish)

// RoleLabel turns a role identifier into display text ("brand_operator" -> "Brand operator").
func RoleLabel(role string) string {
	words := strings.Fields(strings.NewReplacer("_", " ", "-", " ").Replace(role))
	if len(words) == 0 {
		return ""
	}
	label := strings.ToLower(strings.Join(words, " "))
	first, rest := label[:1], label[1:]
	return titleCaser.String(first) + rest
}

// RoleLabels maps RoleLabel over roles.
func RoleLabels(roles []string) []string {
	out := make([]string, 0, len(roles))
	for _, r := range roles {
		out = append(out, RoleLabel(r))
	}
	return out
}

func defaultRoleRanks() []Rank {
	return []Rank{
		{Value: RolePrimeProvider, Priority: 100},
		{Value: RoleOwnerGroup, Priority: 90},
		{Value: RoleFreeholder, Priority: 85},
		{Value: RoleBrandOperator, Priority: 80},
		{Value: RoleOperator, Priority: 75},
		{Value: RoleHotelOperator, Priority: 70},
		{Value: RolePublicBody, Priority: 40},
	}
}

func defaultRiskRanks() []Rank {
	return []Rank{
		{Value: RiskHigh, Priority: 4},
		{Value: RiskElevated, Priority: 3},
		{Value: RiskMedium, Priority: 2},
		{Value: RiskWarning, Priority: 2},
		{Value: RiskLow, Priority: 1},
	}
}
