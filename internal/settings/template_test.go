package settings_test

import (
	"testing"

	"tabtidy/internal/settings"
)

func TestTemplateSet(t *testing.T) {
	tests := []struct {
		name   string
		own    []string // nil: unset
		parent []string // nil: unset
		want   bool
	}{
		{name: "none overrides file default", own: []string{"NONE"}, parent: []string{"K"}, want: false},
		{name: "lower-case none", own: []string{"none"}, parent: []string{"K"}, want: false},
		{name: "explicit empty overrides", own: []string{}, parent: []string{"K"}, want: false},
		{name: "inherits file default", parent: []string{"K"}, want: true},
		{name: "own value", own: []string{"Own"}, want: true},
		{name: "own value beats default", own: []string{"Own"}, parent: []string{"K"}, want: true},
		{name: "both unset", want: false},
		{name: "empty file default", parent: []string{""}, want: false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFile()
			parent := settings.New(settings.SuiteFileScope, nil)
			if tt.parent != nil {
				parent.Lex(f, stmt(f, append([]string{"Test Template"}, tt.parent...)...))
			}
			test := settings.New(settings.TestCaseScope, nil)
			if tt.own != nil {
				test.Lex(f, stmt(f, append([]string{"[Template]"}, tt.own...)...))
			}
			if got := settings.TemplateSet(test, parent); got != tt.want {
				t.Fatalf("TemplateSet = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestTemplateSetWithoutParent(t *testing.T) {
	test := settings.New(settings.TestCaseScope, nil)
	if settings.TemplateSet(test, nil) {
		t.Fatalf("no own value and no parent must not be templated")
	}
}
