package settings

// Scope is the static configuration of one settings context.
type Scope struct {
	names       map[string]bool
	aliases     map[string]string
	multiUse    map[string]bool
	singleValue map[string]bool
	// bracketed scopes write names as "[Name]"
	bracketed bool
	// unsupported carries a note attached to every diagnostic in the scope
	unsupported string
}

// Recognizes reports whether a normalized name (aliases resolved) is valid here.
func (s *Scope) Recognizes(normalized string) bool { return s.names[normalized] }

// settings whose first value names another entity
var nameAndArguments = set(
	"METADATA",
	"SUITE SETUP",
	"SUITE TEARDOWN",
	"TEST SETUP",
	"TEST TEARDOWN",
	"TEST TEMPLATE",
	"SETUP",
	"TEARDOWN",
	"TEMPLATE",
	"LIBRARY",
	"RESOURCE",
	"VARIABLES",
)

var (
	// SuiteFileScope covers the settings section of a test-case file.
	SuiteFileScope = &Scope{
		names: set(
			"DOCUMENTATION",
			"METADATA",
			"SUITE SETUP",
			"SUITE TEARDOWN",
			"TEST SETUP",
			"TEST TEARDOWN",
			"TEST TEMPLATE",
			"TEST TIMEOUT",
			"FORCE TAGS",
			"DEFAULT TAGS",
			"LIBRARY",
			"RESOURCE",
			"VARIABLES",
		),
		aliases: map[string]string{
			"TASK SETUP":    "TEST SETUP",
			"TASK TEARDOWN": "TEST TEARDOWN",
			"TASK TEMPLATE": "TEST TEMPLATE",
			"TASK TIMEOUT":  "TEST TIMEOUT",
		},
		multiUse:    set("METADATA", "LIBRARY", "RESOURCE", "VARIABLES"),
		singleValue: set("RESOURCE", "TEST TIMEOUT", "TEST TEMPLATE"),
	}

	// ResourceFileScope covers the settings section of a resource file.
	ResourceFileScope = &Scope{
		names:       set("DOCUMENTATION", "LIBRARY", "RESOURCE", "VARIABLES"),
		multiUse:    set("LIBRARY", "RESOURCE", "VARIABLES"),
		singleValue: set("RESOURCE"),
	}

	// InitFileScope recognizes nothing yet: which settings an initialization
	// file accepts has not been decided.
	InitFileScope = &Scope{
		names:       set(),
		unsupported: "settings are not supported in suite initialization files",
	}

	// TestCaseScope covers "[Name]" settings inside a test case.
	TestCaseScope = &Scope{
		names:       set("DOCUMENTATION", "TAGS", "SETUP", "TEARDOWN", "TEMPLATE", "TIMEOUT"),
		singleValue: set("TIMEOUT", "TEMPLATE"),
		bracketed:   true,
	}

	// KeywordScope covers "[Name]" settings inside a user keyword.
	KeywordScope = &Scope{
		names:       set("DOCUMENTATION", "ARGUMENTS", "TEARDOWN", "TIMEOUT", "TAGS", "RETURN"),
		singleValue: set("TIMEOUT"),
		bracketed:   true,
	}
)

func set(items ...string) map[string]bool {
	out := make(map[string]bool, len(items))
	for _, it := range items {
		out[it] = true
	}
	return out
}
