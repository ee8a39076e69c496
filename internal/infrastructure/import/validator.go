package csvimport

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// FieldType represents the expected type of a field
type FieldType string

const (
	TypeString  FieldType = "string"
	TypeDecimal FieldType = "decimal"
)

// FieldRule defines validation rules for a column
type FieldRule struct {
	Column    string
	Type      FieldType
	Required  bool
	MaxLength int
	MinValue  *decimal.Decimal
	MaxValue  *decimal.Decimal
	Unique    bool
}

// FieldRuleBuilder helps build field rules fluently
type FieldRuleBuilder struct {
	rule FieldRule
}

// Field creates a new field rule builder
func Field(column string) *FieldRuleBuilder {
	return &FieldRuleBuilder{rule: FieldRule{Column: column, Type: TypeString}}
}

// Required marks the field as required
func (b *FieldRuleBuilder) Required() *FieldRuleBuilder {
	b.rule.Required = true
	return b
}

// Decimal sets the field type to decimal
func (b *FieldRuleBuilder) Decimal() *FieldRuleBuilder {
	b.rule.Type = TypeDecimal
	return b
}

// MaxLength caps the value length in runes
func (b *FieldRuleBuilder) MaxLength(n int) *FieldRuleBuilder {
	b.rule.MaxLength = n
	return b
}

// Range bounds a decimal value inclusively
func (b *FieldRuleBuilder) Range(min, max decimal.Decimal) *FieldRuleBuilder {
	b.rule.MinValue = &min
	b.rule.MaxValue = &max
	return b
}

// Unique rejects repeated values within the file, compared case-insensitively
func (b *FieldRuleBuilder) Unique() *FieldRuleBuilder {
	b.rule.Unique = true
	return b
}

// Build returns the built field rule
func (b *FieldRuleBuilder) Build() FieldRule {
	return b.rule
}

// FieldValidator validates rows against a fixed rule set
type FieldValidator struct {
	rules       []FieldRule
	uniqueCheck map[string]map[string]int
	errors      *ErrorCollection
}

// NewFieldValidator creates a validator that records into errs
func NewFieldValidator(errs *ErrorCollection, rules ...FieldRule) *FieldValidator {
	return &FieldValidator{
		rules:       rules,
		uniqueCheck: make(map[string]map[string]int),
		errors:      errs,
	}
}

// ValidateRow checks every rule and reports whether the row is clean.
// Rules are evaluated in declaration order so messages are stable.
func (v *FieldValidator) ValidateRow(row *Row) bool {
	ok := true
	for _, rule := range v.rules {
		if msg := v.check(row, rule); msg != "" {
			v.errors.Add(RowError{Row: row.LineNumber, Column: rule.Column, Message: msg})
			ok = false
		}
	}
	return ok
}

func (v *FieldValidator) check(row *Row, rule FieldRule) string {
	value := row.Get(rule.Column)
	if value == "" {
		if rule.Required {
			return fmt.Sprintf("%s is required", rule.Column)
		}
		return ""
	}

	if rule.MaxLength > 0 && len([]rune(value)) > rule.MaxLength {
		return fmt.Sprintf("%s must be at most %d characters", rule.Column, rule.MaxLength)
	}

	if rule.Type == TypeDecimal {
		d, err := decimal.NewFromString(value)
		if err != nil {
			return fmt.Sprintf("%s must be a number, got %q", rule.Column, value)
		}
		if rule.MinValue != nil && d.LessThan(*rule.MinValue) ||
			rule.MaxValue != nil && d.GreaterThan(*rule.MaxValue) {
			return fmt.Sprintf("%s must be between %s and %s", rule.Column, rule.MinValue, rule.MaxValue)
		}
	}

	if rule.Unique {
		seen := v.uniqueCheck[rule.Column]
		if seen == nil {
			seen = make(map[string]int)
			v.uniqueCheck[rule.Column] = seen
		}
		key := strings.ToLower(value)
		if first, dup := seen[key]; dup {
			return fmt.Sprintf("duplicate %s '%s' (first seen in row %d)", rule.Column, value, first)
		}
		seen[key] = row.LineNumber
	}
	return ""
}

// Errors returns the error collection
func (v *FieldValidator) Errors() *ErrorCollection {
	return v.errors
}

// DecimalOr parses a column that already passed validation, returning def when blank
func DecimalOr(row *Row, column string, def decimal.Decimal) decimal.Decimal {
	value := row.Get(column)
	if value == "" {
		return def
	}
	d, err := decimal.NewFromString(value)
	if err != nil {
		return def
	}
	return d
}
