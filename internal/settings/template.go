package settings

import (
	"tabtidy/internal/normalize"
)

// TemplateSet resolves whether a test case runs with a template. The test's
// own [Template] wins: an empty value or NONE disables templating, any other
// value enables it. Without an own value the parent's Test Template applies.
func TemplateSet(test, parent *Settings) bool {
	own, ownSet := test.Value("TEMPLATE")
	if ownSet && isOverride(own) {
		return false
	}
	if hasValue(own) {
		return true
	}
	inherited, _ := parent.Value("TEST TEMPLATE")
	return hasValue(inherited)
}

func isOverride(v Value) bool {
	return len(v.Values) == 0 || normalize.Upper(v.Values[0]) == "NONE"
}

func hasValue(v Value) bool {
	return len(v.Values) > 0 && v.Values[0] != ""
}
