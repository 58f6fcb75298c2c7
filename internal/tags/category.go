package tags

import (
	"regexp"
	"strings"
)

// Category is the output category of a release.
type Category string

// Known categories.
const (
	CategoryGames         Category = "Games"
	CategoryApplications  Category = "Applications"
	CategoryDemos         Category = "Demos"
	CategoryPreproduction Category = "Preproduction"
)

type categoryRule struct {
	category Category
	patterns []*regexp.Regexp
}

// categoryRules are evaluated in order and a later match replaces an
// earlier one, so "(Demo) (Proto)" classifies as Preproduction.
var categoryRules = []categoryRule{
	{CategoryApplications, []*regexp.Regexp{
		regexp.MustCompile(`\((?:Test )?Program\)`),
		regexp.MustCompile(`\((?:Application|Utility|SDK|Sample Program)\)`),
	}},
	{CategoryDemos, []*regexp.Regexp{
		regexp.MustCompile(`\((?:[^()]*, )?(?:Kiosk )?(?:Demo|Sample|Trial(?: Edition)?|Preview|Taikenban|Kiosk)(?: [0-9]+)?(?:, [^()]*)?\)`),
	}},
	{CategoryPreproduction, []*regexp.Regexp{
		regexp.MustCompile(`\((?:[^()]*, )?(?:Beta|Proto|Prototype|Alpha|Preproduction|Pre-production)(?: [0-9A-Za-z.]+)?(?:, [^()]*)?\)`),
	}},
}

// Categorize returns the explicit category when set, otherwise derives one
// from the display name.
func Categorize(name, explicit string) Category {
	if trimmed := strings.TrimSpace(explicit); trimmed != "" {
		return Category(trimmed)
	}
	result := CategoryGames
	for _, rule := range categoryRules {
		for _, pattern := range rule.patterns {
			if pattern.MatchString(name) {
				result = rule.category
				break
			}
		}
	}
	return result
}
