package token

// settingKinds maps a normalized setting name to its token kind.
var settingKinds = map[string]Kind{
	"DOCUMENTATION":  Documentation,
	"METADATA":       Metadata,
	"SUITE SETUP":    SuiteSetup,
	"SUITE TEARDOWN": SuiteTeardown,
	"TEST SETUP":     TestSetup,
	"TEST TEARDOWN":  TestTeardown,
	"TEST TEMPLATE":  TestTemplate,
	"TEST TIMEOUT":   TestTimeout,
	"FORCE TAGS":     ForceTags,
	"DEFAULT TAGS":   DefaultTags,
	"LIBRARY":        Library,
	"RESOURCE":       Resource,
	"VARIABLES":      Variables,
	"SETUP":          Setup,
	"TEARDOWN":       Teardown,
	"TEMPLATE":       Template,
	"TIMEOUT":        Timeout,
	"TAGS":           Tags,
	"ARGUMENTS":      Arguments,
	"RETURN":         Return,
}

// LookupSetting returns the kind for a normalized (upper-case, single-spaced)
// setting name.
func LookupSetting(normalized string) (Kind, bool) {
	k, ok := settingKinds[normalized]
	return k, ok
}
