// Package config defines the configuration types for lc3kit.
// These are pure data structures; discovery and merging live in
// internal/configloader.
package config

// CaseStyle is one of the four naming conventions checked by the linter.
// The constant values are the spellings used in configuration files.
type CaseStyle string

const (
	LowerCamelCase     CaseStyle = "lowerCamelCase"
	UpperCamelCase     CaseStyle = "UpperCamelCase"
	SnakeCase          CaseStyle = "snake_case"
	ScreamingSnakeCase CaseStyle = "SCREAMING_SNAKE_CASE"
)

// IsValid returns true for one of the four enumerated case styles.
func (c CaseStyle) IsValid() bool {
	switch c {
	case LowerCamelCase, UpperCamelCase, SnakeCase, ScreamingSnakeCase:
		return true
	default:
		return false
	}
}

// FormatStyle is the layout formatter configuration. Indent values are
// horizontal space counts; space values are blank-line counts.
type FormatStyle struct {
	// IndentDirective indents directive bodies, except .ORIG and .END
	// which always render flush.
	IndentDirective int `yaml:"indent-directive" toml:"indent-directive"`

	// IndentInstruction indents instruction bodies.
	IndentInstruction int `yaml:"indent-instruction" toml:"indent-instruction"`

	// IndentLabel indents label lines.
	IndentLabel int `yaml:"indent-label" toml:"indent-label"`

	// IndentMinCommentFromBlock is the minimum gap between the widest
	// statement body in the file and the trailing-comment column.
	IndentMinCommentFromBlock int `yaml:"indent-min-comment-from-block" toml:"indent-min-comment-from-block"`

	// SpaceBlockToComment inserts blank lines before a standalone comment
	// that follows code.
	SpaceBlockToComment int `yaml:"space-block-to-comment" toml:"space-block-to-comment"`

	// SpaceCommentStickToBody inserts blank lines after a standalone
	// comment that precedes code.
	SpaceCommentStickToBody int `yaml:"space-comment-stick-to-body" toml:"space-comment-stick-to-body"`

	// SpaceFromLabelBlock inserts blank lines when a labelled statement
	// follows an unlabelled one.
	SpaceFromLabelBlock int `yaml:"space-from-label-block" toml:"space-from-label-block"`

	// SpaceFromStartEndBlock inserts blank lines after the origin
	// directive and before the end directive.
	SpaceFromStartEndBlock int `yaml:"space-from-start-end-block" toml:"space-from-start-end-block"`

	// ColonAfterLabel renders a trailing colon on every label.
	ColonAfterLabel bool `yaml:"colon-after-label" toml:"colon-after-label"`
}

// LintStyle is the style linter configuration.
type LintStyle struct {
	// ColonAfterLabel requires (or forbids) a trailing colon on labels.
	ColonAfterLabel bool `yaml:"colon-after-label" toml:"colon-after-label"`

	// LabelStyle is the required case style for label identifiers.
	LabelStyle CaseStyle `yaml:"label-style" toml:"label-style"`

	// InstructionStyle is the required case style for mnemonics.
	InstructionStyle CaseStyle `yaml:"instruction-style" toml:"instruction-style"`

	// DirectiveStyle is the required case style for directive names,
	// leading marker excluded.
	DirectiveStyle CaseStyle `yaml:"directive-style" toml:"directive-style"`
}

// Config is the root configuration document.
type Config struct {
	Format FormatStyle `yaml:"format-style" toml:"format-style"`
	Lint   LintStyle   `yaml:"lint-style" toml:"lint-style"`
}

// NewConfig returns the default configuration.
func NewConfig() *Config {
	return &Config{
		Format: FormatStyle{
			IndentDirective:           3,
			IndentInstruction:         4,
			IndentLabel:               0,
			IndentMinCommentFromBlock: 1,
			SpaceBlockToComment:       1,
			SpaceCommentStickToBody:   0,
			SpaceFromLabelBlock:       1,
			SpaceFromStartEndBlock:    1,
			ColonAfterLabel:           false,
		},
		Lint: LintStyle{
			ColonAfterLabel:  false,
			LabelStyle:       ScreamingSnakeCase,
			InstructionStyle: ScreamingSnakeCase,
			DirectiveStyle:   ScreamingSnakeCase,
		},
	}
}

// Validate checks enumerated fields and returns a descriptive error for
// the first invalid value.
func (c *Config) Validate() error {
	for _, check := range []struct {
		field string
		style CaseStyle
	}{
		{"label-style", c.Lint.LabelStyle},
		{"instruction-style", c.Lint.InstructionStyle},
		{"directive-style", c.Lint.DirectiveStyle},
	} {
		if !check.style.IsValid() {
			return &InvalidStyleError{Field: check.field, Value: string(check.style)}
		}
	}
	return nil
}

// InvalidStyleError reports an unrecognized case-style value.
type InvalidStyleError struct {
	Field string
	Value string
}

func (e *InvalidStyleError) Error() string {
	return "invalid case style " + e.Value + " for " + e.Field +
		` (one of "lowerCamelCase", "UpperCamelCase", "snake_case", "SCREAMING_SNAKE_CASE")`
}
