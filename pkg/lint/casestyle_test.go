package lint_test

import (
	"testing"

	"github.com/yaklabco/lc3kit/pkg/config"
	"github.com/yaklabco/lc3kit/pkg/lint"
)

func TestClassify(t *testing.T) {
	t.Parallel()

	tests := []struct {
		word string
		want config.CaseStyle
	}{
		{"loop_start", config.SnakeCase},
		{"loop_2", config.SnakeCase},
		{"LOOP_START", config.ScreamingSnakeCase},
		{"R2D2_X", config.ScreamingSnakeCase},
		{"loopStart", config.LowerCamelCase},
		{"loopStart2", config.LowerCamelCase},
		{"LoopStart", config.UpperCamelCase},
		{"Loop", config.UpperCamelCase},

		// Words matching more than one pattern classify in a fixed order.
		{"loop", config.SnakeCase},
		{"LOOP", config.ScreamingSnakeCase},

		{"Bad_Mix", ""},
		{"_leading", ""},
		{"trailing_", ""},
		{"", ""},
	}

	for _, testCase := range tests {
		if got := lint.Classify(testCase.word); got != testCase.want {
			t.Errorf("Classify(%q) = %q, want %q", testCase.word, got, testCase.want)
		}
	}
}

func TestSatisfies(t *testing.T) {
	t.Parallel()

	tests := []struct {
		word  string
		style config.CaseStyle
		want  bool
	}{
		{"loop_start", config.SnakeCase, true},
		{"loop_start", config.LowerCamelCase, false},
		{"LOOP_START", config.ScreamingSnakeCase, true},
		{"LOOP_START", config.UpperCamelCase, false},
		{"loopStart", config.LowerCamelCase, true},
		{"loopStart", config.SnakeCase, false},
		{"LoopStart", config.UpperCamelCase, true},
		{"LoopStart", config.ScreamingSnakeCase, false},

		// Simple words satisfy every style whose pattern admits them.
		{"loop", config.SnakeCase, true},
		{"loop", config.LowerCamelCase, true},
		{"LOOP", config.ScreamingSnakeCase, true},
		{"LOOP", config.UpperCamelCase, true},

		{"Bad_Mix", config.SnakeCase, false},
		{"Bad_Mix", config.UpperCamelCase, false},
	}

	for _, testCase := range tests {
		if got := lint.Satisfies(testCase.word, testCase.style); got != testCase.want {
			t.Errorf("Satisfies(%q, %q) = %v, want %v", testCase.word, testCase.style, got, testCase.want)
		}
	}
}
