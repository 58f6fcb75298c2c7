package tags

import (
	"regexp"
	"strings"
)

// SegmentRule pairs a compiled pattern with the tag it contributes. Rules
// are evaluated in order against the inner text of one parenthesized
// segment; first match wins.
type SegmentRule struct {
	Name    string
	Pattern *regexp.Regexp
	Apply   func(ts *TagSet, matches []string)
}

func statusRule(name string, status Status, pattern string) SegmentRule {
	return SegmentRule{
		Name:    name,
		Pattern: regexp.MustCompile(pattern),
		Apply: func(ts *TagSet, _ []string) {
			ts.addStatus(status)
		},
	}
}

var structuralRules = []SegmentRule{
	{
		Name:    "disc",
		Pattern: regexp.MustCompile(`^Disc ([0-9]+|[A-Z])(?: of [0-9]+)?$`),
		Apply: func(ts *TagSet, m []string) {
			ts.Disc = m[1]
		},
	},
	{
		Name:    "revision",
		Pattern: regexp.MustCompile(`^Rev ([0-9A-Z]+(?:\.[0-9]+)?)$`),
		Apply: func(ts *TagSet, m []string) {
			ts.Revision = m[1]
		},
	},
	{
		Name:    "version",
		Pattern: regexp.MustCompile(`^(?:v|Version )([0-9]+(?:\.[0-9]+)*[a-z]?)$`),
		Apply: func(ts *TagSet, m []string) {
			ts.Version = m[1]
		},
	},
}

var statusRules = []SegmentRule{
	statusRule("demo", StatusDemo, `^(?:Kiosk )?(?:Demo|Sample|Trial(?: Edition)?|Preview|Taikenban|Kiosk)(?: [0-9]+)?$`),
	statusRule("beta", StatusBeta, `^Beta(?: [0-9A-Za-z.]+)?$`),
	statusRule("proto", StatusProto, `^(?:Proto|Prototype|Alpha|Preproduction|Pre-production)(?: [0-9A-Za-z.]+)?$`),
	statusRule("unlicensed", StatusUnlicensed, `^Unl$`),
	statusRule("alternate", StatusAlternate, `^Alt(?: [0-9]+)?$`),
	statusRule("pirate", StatusPirate, `^Pirate$`),
}

// Rules is the fixed rule library for parenthesized segments.
var Rules = append(append([]SegmentRule{}, structuralRules...), statusRules...)

// BracketRules apply to square-bracketed segments.
var BracketRules = []SegmentRule{
	statusRule("bad-dump", StatusBadDump, `^b[0-9]*$`),
}

func matchRules(rules []SegmentRule, ts *TagSet, content string) bool {
	for _, rule := range rules {
		if m := rule.Pattern.FindStringSubmatch(content); m != nil {
			rule.Apply(ts, m)
			return true
		}
	}
	return false
}

// matchStatusList handles segments such as "(Beta, Proto)" where every
// comma-separated part is a status marker.
func matchStatusList(ts *TagSet, content string) bool {
	parts := splitList(content, ",")
	if len(parts) < 2 {
		return false
	}
	scratch := TagSet{}
	for _, part := range parts {
		if !matchRules(statusRules, &scratch, part) {
			return false
		}
	}
	for _, s := range scratch.Status {
		ts.addStatus(s)
	}
	return true
}

func splitList(content, sep string) []string {
	raw := strings.Split(content, sep)
	parts := make([]string, 0, len(raw))
	for _, part := range raw {
		trimmed := strings.TrimSpace(part)
		if trimmed == "" {
			return nil
		}
		parts = append(parts, trimmed)
	}
	return parts
}
