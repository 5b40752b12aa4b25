package config

import (
	"bytes"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

// filePartial mirrors Config with optional fields so that absent keys fall
// back to defaults during merge.
type filePartial struct {
	Format formatPartial `yaml:"format-style" toml:"format-style"`
	Lint   lintPartial   `yaml:"lint-style" toml:"lint-style"`
}

type formatPartial struct {
	IndentDirective           *int  `yaml:"indent-directive" toml:"indent-directive"`
	IndentInstruction         *int  `yaml:"indent-instruction" toml:"indent-instruction"`
	IndentLabel               *int  `yaml:"indent-label" toml:"indent-label"`
	IndentMinCommentFromBlock *int  `yaml:"indent-min-comment-from-block" toml:"indent-min-comment-from-block"`
	SpaceBlockToComment       *int  `yaml:"space-block-to-comment" toml:"space-block-to-comment"`
	SpaceCommentStickToBody   *int  `yaml:"space-comment-stick-to-body" toml:"space-comment-stick-to-body"`
	SpaceFromLabelBlock       *int  `yaml:"space-from-label-block" toml:"space-from-label-block"`
	SpaceFromStartEndBlock    *int  `yaml:"space-from-start-end-block" toml:"space-from-start-end-block"`
	ColonAfterLabel           *bool `yaml:"colon-after-label" toml:"colon-after-label"`
}

type lintPartial struct {
	ColonAfterLabel  *bool      `yaml:"colon-after-label" toml:"colon-after-label"`
	LabelStyle       *CaseStyle `yaml:"label-style" toml:"label-style"`
	InstructionStyle *CaseStyle `yaml:"instruction-style" toml:"instruction-style"`
	DirectiveStyle   *CaseStyle `yaml:"directive-style" toml:"directive-style"`
}

// Parse decodes configuration bytes onto a copy of the defaults. The
// format is selected by file extension: .toml is TOML, everything else is
// YAML.
func Parse(path string, data []byte) (*Config, error) {
	var partial filePartial

	if strings.EqualFold(filepath.Ext(path), ".toml") {
		if err := toml.Unmarshal(data, &partial); err != nil {
			return nil, fmt.Errorf("parse toml config: %w", err)
		}
	} else {
		if err := yaml.Unmarshal(data, &partial); err != nil {
			return nil, fmt.Errorf("parse yaml config: %w", err)
		}
	}

	cfg := NewConfig()
	partial.applyTo(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// applyTo overlays the set fields of the partial onto cfg.
func (p *filePartial) applyTo(cfg *Config) {
	f := &p.Format
	setInt(&cfg.Format.IndentDirective, f.IndentDirective)
	setInt(&cfg.Format.IndentInstruction, f.IndentInstruction)
	setInt(&cfg.Format.IndentLabel, f.IndentLabel)
	setInt(&cfg.Format.IndentMinCommentFromBlock, f.IndentMinCommentFromBlock)
	setInt(&cfg.Format.SpaceBlockToComment, f.SpaceBlockToComment)
	setInt(&cfg.Format.SpaceCommentStickToBody, f.SpaceCommentStickToBody)
	setInt(&cfg.Format.SpaceFromLabelBlock, f.SpaceFromLabelBlock)
	setInt(&cfg.Format.SpaceFromStartEndBlock, f.SpaceFromStartEndBlock)
	if f.ColonAfterLabel != nil {
		cfg.Format.ColonAfterLabel = *f.ColonAfterLabel
	}

	l := &p.Lint
	if l.ColonAfterLabel != nil {
		cfg.Lint.ColonAfterLabel = *l.ColonAfterLabel
	}
	if l.LabelStyle != nil {
		cfg.Lint.LabelStyle = *l.LabelStyle
	}
	if l.InstructionStyle != nil {
		cfg.Lint.InstructionStyle = *l.InstructionStyle
	}
	if l.DirectiveStyle != nil {
		cfg.Lint.DirectiveStyle = *l.DirectiveStyle
	}
}

func setInt(dst *int, src *int) {
	if src != nil {
		*dst = *src
	}
}

// ToTOML serializes the effective configuration, used by --print-config.
func (c *Config) ToTOML() ([]byte, error) {
	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(c); err != nil {
		return nil, fmt.Errorf("encode config: %w", err)
	}
	return buf.Bytes(), nil
}

// ToYAML serializes the effective configuration as YAML.
func (c *Config) ToYAML() ([]byte, error) {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(c); err != nil {
		return nil, fmt.Errorf("encode config: %w", err)
	}
	if err := enc.Close(); err != nil {
		return nil, fmt.Errorf("close encoder: %w", err)
	}
	return buf.Bytes(), nil
}
