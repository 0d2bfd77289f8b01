// Package rules implements parsing and expansion of proxy rule list files.
// A .list file holds one rule per line in the form TYPE,value[,policy[,args]];
// RULE-SET lines reference remote lists that expansion inlines.
package rules

import (
	"strings"
)

// Type identifies a rule line's kind.
type Type string

// Recognized rule types. Unknown types are passed through untouched.
const (
	TypeDomain        Type = "DOMAIN"
	TypeDomainSuffix  Type = "DOMAIN-SUFFIX"
	TypeDomainKeyword Type = "DOMAIN-KEYWORD"
	TypeDomainSet     Type = "DOMAIN-SET"
	TypeIPCIDR        Type = "IP-CIDR"
	TypeIPCIDR6       Type = "IP-CIDR6"
	TypeGeoIP         Type = "GEOIP"
	TypeRuleSet       Type = "RULE-SET"
)

// Rule is a single parsed rule line.
type Rule struct {
	// Type is the first comma-separated field, upper-cased as written.
	Type Type
	// Value is the second field: a domain, CIDR, country code, or URL.
	Value string
	// Rest holds any remaining fields (policy name, no-resolve, ...).
	Rest []string
	// Raw is the original trimmed line.
	Raw string
}

// IsComment reports whether the trimmed line is a comment or blank.
func IsComment(line string) bool {
	trimmed := strings.TrimSpace(line)
	return trimmed == "" || strings.HasPrefix(trimmed, "#")
}

// Parse splits a rule line into its fields. The line must contain at
// least TYPE and value; comment and blank lines are the caller's job to
// filter first. ok is false for lines without a comma, which the list
// format cannot express a rule in.
func Parse(line string) (Rule, bool) {
	trimmed := strings.TrimSpace(line)
	if trimmed == "" || !strings.Contains(trimmed, ",") {
		return Rule{}, false
	}

	parts := strings.Split(trimmed, ",")
	rule := Rule{
		Type:  Type(strings.TrimSpace(parts[0])),
		Value: strings.TrimSpace(parts[1]),
		Raw:   trimmed,
	}
	for _, p := range parts[2:] {
		rule.Rest = append(rule.Rest, strings.TrimSpace(p))
	}
	return rule, true
}

// IsRuleSet reports whether the rule references a remote list.
func (r Rule) IsRuleSet() bool {
	return r.Type == TypeRuleSet
}

// Normalize returns the rule as it should appear in an expanded list.
// Domain rules drop their policy fields so the output is policy-neutral;
// IP rules keep the whole line because trailing fields like no-resolve
// change resolution behavior; unknown types pass through as written.
func (r Rule) Normalize() string {
	switch r.Type {
	case TypeDomain, TypeDomainSuffix, TypeDomainKeyword, TypeDomainSet:
		return string(r.Type) + "," + r.Value
	case TypeIPCIDR, TypeIPCIDR6, TypeGeoIP:
		return r.Raw
	default:
		return r.Raw
	}
}
