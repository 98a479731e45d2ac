// Where: internal/migrate/rule.go
// What: Migration rule model.
// Why: Hold compiled, validated rules in evaluation order.
package migrate

import (
	"regexp"
	"time"
)

// Rule is a single validated migration rule. The pattern is compiled eagerly
// when the rule is loaded; Target may reference the pattern's capture groups.
type Rule struct {
	Name    string
	Pattern *regexp.Regexp
	Target  string
	Reason  string

	// Effective is nil when the rule carries no effective date and applies
	// immediately. BadDate marks an effective date that failed to parse;
	// such a rule never becomes effective on its own and requires force.
	Effective *time.Time
	BadDate   bool
}

// EligibleAt reports whether the rule may be applied at the given time.
// Force overrides date gating entirely, including unparseable dates.
func (r Rule) EligibleAt(now time.Time, force bool) bool {
	if force {
		return true
	}
	if r.BadDate {
		return false
	}
	if r.Effective == nil {
		return true
	}
	return !r.Effective.After(now)
}

// RuleSet is an ordered list of rules. Order is evaluation order: the first
// eligible rule whose pattern matches decides the outcome.
type RuleSet []Rule

// NewRuleSet builds a RuleSet preserving the given order.
func NewRuleSet(rules []Rule) RuleSet {
	return RuleSet(rules)
}
