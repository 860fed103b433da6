package token

// Kind represents the category of a token.
type Kind uint8

const (
	// Data marks a cell that has not been classified yet.
	Data Kind = iota

	// SettingHeader is the "*** Settings ***" header.
	SettingHeader
	// VariableHeader is the "*** Variables ***" header.
	VariableHeader
	// TestCaseHeader is the "*** Test Cases ***" header.
	TestCaseHeader
	// KeywordHeader is the "*** Keywords ***" header.
	KeywordHeader
	// CommentHeader is the "*** Comments ***" header.
	CommentHeader

	// Documentation and the following kinds tag setting names.
	Documentation
	Metadata
	SuiteSetup
	SuiteTeardown
	TestSetup
	TestTeardown
	TestTemplate
	TestTimeout
	ForceTags
	DefaultTags
	Library
	Resource
	Variables
	Setup
	Teardown
	Template
	Timeout
	Tags
	Arguments
	Return

	// TestCaseName is the name cell of a test case.
	TestCaseName
	// KeywordName is the name cell of a user keyword.
	KeywordName

	// Name is the first value of a name-and-arguments setting.
	Name
	// Argument is an ordered argument (setting value, keyword argument, template data).
	Argument
	// Keyword is the keyword cell of a keyword call.
	Keyword
	// Assign is a "${var}=" cell in front of a keyword call.
	Assign
	// Variable is the name cell in the variable section.
	Variable

	// For opens a loop ("FOR" or legacy ":FOR").
	For
	// ForSeparator is "IN", "IN RANGE", "IN ENUMERATE" or "IN ZIP".
	ForSeparator
	// End closes a loop.
	End
	// OldForIndent is the legacy "\" loop body marker.
	OldForIndent

	// Separator is the whitespace or pipe text between cells.
	Separator
	// Comment is a "#" cell and everything after it on the line.
	Comment
	// Continuation is the "..." marker.
	Continuation
	// EOL terminates a line (may be empty at end of file).
	EOL

	// Error marks a token carrying a diagnostic.
	Error
)

var kindNames = [...]string{
	Data:           "DATA",
	SettingHeader:  "SETTING_HEADER",
	VariableHeader: "VARIABLE_HEADER",
	TestCaseHeader: "TESTCASE_HEADER",
	KeywordHeader:  "KEYWORD_HEADER",
	CommentHeader:  "COMMENT_HEADER",
	Documentation:  "DOCUMENTATION",
	Metadata:       "METADATA",
	SuiteSetup:     "SUITE_SETUP",
	SuiteTeardown:  "SUITE_TEARDOWN",
	TestSetup:      "TEST_SETUP",
	TestTeardown:   "TEST_TEARDOWN",
	TestTemplate:   "TEST_TEMPLATE",
	TestTimeout:    "TEST_TIMEOUT",
	ForceTags:      "FORCE_TAGS",
	DefaultTags:    "DEFAULT_TAGS",
	Library:        "LIBRARY",
	Resource:       "RESOURCE",
	Variables:      "VARIABLES",
	Setup:          "SETUP",
	Teardown:       "TEARDOWN",
	Template:       "TEMPLATE",
	Timeout:        "TIMEOUT",
	Tags:           "TAGS",
	Arguments:      "ARGUMENTS",
	Return:         "RETURN",
	TestCaseName:   "TESTCASE_NAME",
	KeywordName:    "KEYWORD_NAME",
	Name:           "NAME",
	Argument:       "ARGUMENT",
	Keyword:        "KEYWORD",
	Assign:         "ASSIGN",
	Variable:       "VARIABLE",
	For:            "FOR",
	ForSeparator:   "FOR_SEPARATOR",
	End:            "END",
	OldForIndent:   "OLD_FOR_INDENT",
	Separator:      "SEPARATOR",
	Comment:        "COMMENT",
	Continuation:   "CONTINUATION",
	EOL:            "EOL",
	Error:          "ERROR",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "UNKNOWN"
}

// IsHeader reports whether k is a section header kind.
func (k Kind) IsHeader() bool {
	return k >= SettingHeader && k <= CommentHeader
}

// IsSetting reports whether k tags a recognised setting name.
func (k Kind) IsSetting() bool {
	return k >= Documentation && k <= Return
}

// IsData reports whether k carries statement data, i.e. it is not
// a separator, comment, continuation marker or terminator.
func (k Kind) IsData() bool {
	switch k {
	case Separator, Comment, Continuation, EOL:
		return false
	default:
		return true
	}
}
