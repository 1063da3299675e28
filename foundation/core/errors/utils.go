// File: utils.go
// Title: Error Builder and Standard Constructors
// Description: Fluent builder for module-scoped errors plus the constructors
//              used by the calculation core, the identifier codec, the journal
//              and the configuration layer.
// Author: msto63
// Version: v0.2.0
// Created: 2025-01-25
// Modified: 2026-10-18
//
// Change History:
// - 2025-01-25 v0.1.0: Initial implementation
// - 2026-10-18 v0.2.0: Constructors for mathx, combx, journal, config and calc

package errors

import (
	"fmt"

	mdwerror "github.com/msto63/numerik/foundation/core/error"
)

// ErrorBuilder provides a fluent interface for building standardized errors
type ErrorBuilder struct {
	module    string
	operation string
	message   string
	cause     error
	details   map[string]interface{}
	severity  mdwerror.Severity
	code      string
}

// NewErrorBuilder creates a new error builder for the specified module
func NewErrorBuilder(module string) *ErrorBuilder {
	return &ErrorBuilder{
		module:   module,
		details:  make(map[string]interface{}),
		severity: mdwerror.SeverityMedium,
	}
}

// Operation sets the operation name for the error
func (eb *ErrorBuilder) Operation(operation string) *ErrorBuilder {
	eb.operation = operation
	return eb
}

// Message sets the error message
func (eb *ErrorBuilder) Message(message string) *ErrorBuilder {
	eb.message = message
	return eb
}

// Messagef sets the error message with formatting
func (eb *ErrorBuilder) Messagef(format string, args ...interface{}) *ErrorBuilder {
	eb.message = fmt.Sprintf(format, args...)
	return eb
}

// Cause sets the underlying cause of the error
func (eb *ErrorBuilder) Cause(cause error) *ErrorBuilder {
	eb.cause = cause
	return eb
}

// Detail adds a detail key-value pair to the error
func (eb *ErrorBuilder) Detail(key string, value interface{}) *ErrorBuilder {
	eb.details[key] = value
	return eb
}

// Severity sets the error severity
func (eb *ErrorBuilder) Severity(severity mdwerror.Severity) *ErrorBuilder {
	eb.severity = severity
	return eb
}

// Code sets the error code
func (eb *ErrorBuilder) Code(code string) *ErrorBuilder {
	eb.code = code
	return eb
}

// Build creates the final error
func (eb *ErrorBuilder) Build() *mdwerror.Error {
	if eb.code == "" {
		eb.code = CodeOperationFailed
	}
	if eb.message == "" {
		if eb.operation != "" {
			eb.message = fmt.Sprintf("%s.%s failed", eb.module, eb.operation)
		} else {
			eb.message = fmt.Sprintf("%s operation failed", eb.module)
		}
	}

	eb.details["module"] = eb.module
	if eb.operation != "" {
		eb.details["operation"] = eb.operation
	}

	var err *mdwerror.Error
	if eb.cause != nil {
		err = mdwerror.Wrap(eb.cause, eb.message)
	} else {
		err = mdwerror.New(eb.message)
	}

	return err.
		WithCode(mdwerror.Code(eb.code)).
		WithOperation(eb.operation).
		WithDetails(eb.details).
		WithSeverity(eb.severity)
}

// OperationFailed wraps a failing dependency
func OperationFailed(module, operation string, cause error) *mdwerror.Error {
	return NewErrorBuilder(module).
		Operation(operation).
		Code(CodeOperationFailed).
		Cause(cause).
		Messagef("%s.%s failed", module, operation).
		Severity(mdwerror.SeverityHigh).
		Build()
}

// MathxUnsupportedSource reports a value that is not one of the supported source kinds
func MathxUnsupportedSource(value interface{}) *mdwerror.Error {
	return NewErrorBuilder(ModuleMathx).
		Operation("parse").
		Code(CodeMathxUnsupportedSource).
		Messagef("unsupported decimal source of type %T", value).
		Detail("type", fmt.Sprintf("%T", value)).
		Severity(mdwerror.SeverityHigh).
		Build()
}

// MathxRoundingNecessary reports an inexact rescale under the unnecessary rounding mode
func MathxRoundingNecessary(operation, value string, scale int32) *mdwerror.Error {
	return NewErrorBuilder(ModuleMathx).
		Operation(operation).
		Code(CodeMathxRoundingNecessary).
		Messagef("rounding necessary to rescale %s to %d places", value, scale).
		Detail("value", value).
		Detail("scale", scale).
		Build()
}

// MathxInvalidRoundingMode reports an unknown rounding mode name
func MathxInvalidRoundingMode(name string) *mdwerror.Error {
	return NewErrorBuilder(ModuleMathx).
		Operation("parse_rounding_mode").
		Code(CodeMathxInvalidRoundingMode).
		Messagef("unknown rounding mode %q", name).
		Detail("input", name).
		Severity(mdwerror.SeverityLow).
		Build()
}

// MathxInvalidPolicy reports an unknown null propagation policy name
func MathxInvalidPolicy(name string) *mdwerror.Error {
	return NewErrorBuilder(ModuleMathx).
		Operation("parse_policy").
		Code(CodeMathxInvalidPolicy).
		Messagef("unknown null policy %q", name).
		Detail("input", name).
		Severity(mdwerror.SeverityLow).
		Build()
}

// MathxInvalidPattern reports a format pattern outside the supported grammar
func MathxInvalidPattern(pattern, reason string) *mdwerror.Error {
	return NewErrorBuilder(ModuleMathx).
		Operation("format").
		Code(CodeMathxInvalidPattern).
		Messagef("invalid format pattern %q: %s", pattern, reason).
		Detail("pattern", pattern).
		Severity(mdwerror.SeverityLow).
		Build()
}

// MathxInvalidSlot reports an accumulator slot that does not exist
func MathxInvalidSlot(operation string, slot interface{}) *mdwerror.Error {
	return NewErrorBuilder(ModuleMathx).
		Operation(operation).
		Code(CodeMathxInvalidSlot).
		Messagef("accumulator slot %v does not exist", slot).
		Detail("slot", slot).
		Severity(mdwerror.SeverityLow).
		Build()
}

// CombxEmptyDimension reports a codec built without dimensions or with an empty one
func CombxEmptyDimension(index int) *mdwerror.Error {
	msg := "empty dimension is not permitted"
	if index < 0 {
		msg = "at least one dimension is required"
	}
	return NewErrorBuilder(ModuleCombx).
		Operation("new_manager").
		Code(CodeCombxEmptyDimension).
		Message(msg).
		Detail("dimension", index).
		Build()
}

// CombxNoMatch reports a selection component without a matching option
func CombxNoMatch(dimension int, component interface{}) *mdwerror.Error {
	return NewErrorBuilder(ModuleCombx).
		Operation("encode").
		Code(CodeCombxNoMatch).
		Messagef("component %v does not exist in dimension %d", component, dimension).
		Detail("dimension", dimension).
		Detail("component", component).
		Severity(mdwerror.SeverityLow).
		Build()
}

// CombxIDOutOfRange reports an identifier outside the decodable range
func CombxIDOutOfRange(id, count int) *mdwerror.Error {
	return NewErrorBuilder(ModuleCombx).
		Operation("decode").
		Code(CodeCombxIDOutOfRange).
		Messagef("combined id %d outside [0, %d]", id, count).
		Detail("id", id).
		Detail("count", count).
		Severity(mdwerror.SeverityLow).
		Build()
}

// CombxInvalidArgument reports a malformed codec call
func CombxInvalidArgument(operation, reason string) *mdwerror.Error {
	return NewErrorBuilder(ModuleCombx).
		Operation(operation).
		Code(CodeCombxInvalidArgument).
		Message(reason).
		Severity(mdwerror.SeverityLow).
		Build()
}

// CombxTypeMismatch reports a comparator whose type does not fit the options of its dimension
func CombxTypeMismatch(dimension int, want, got string) *mdwerror.Error {
	return NewErrorBuilder(ModuleCombx).
		Operation("push_comparator").
		Code(CodeCombxTypeMismatch).
		Messagef("dimension %d holds %s, comparator expects %s", dimension, got, want).
		Detail("dimension", dimension).
		Build()
}

// CombxOverflow reports a combination count that does not fit into an int
func CombxOverflow(dimension int) *mdwerror.Error {
	return NewErrorBuilder(ModuleCombx).
		Operation("new_manager").
		Code(CodeCombxOverflow).
		Messagef("combination count overflows at dimension %d", dimension).
		Detail("dimension", dimension).
		Build()
}

// JournalNotFound reports a missing journal entry
func JournalNotFound(id string) *mdwerror.Error {
	return NewErrorBuilder(ModuleJournal).
		Operation("get").
		Code(CodeJournalNotFound).
		Messagef("journal entry %s not found", id).
		Detail("id", id).
		Severity(mdwerror.SeverityLow).
		Build()
}

// JournalStorage wraps a database failure of the journal
func JournalStorage(operation string, cause error) *mdwerror.Error {
	return NewErrorBuilder(ModuleJournal).
		Operation(operation).
		Code(CodeJournalStorage).
		Cause(cause).
		Messagef("journal %s failed", operation).
		Severity(mdwerror.SeverityHigh).
		Build()
}

// ConfigInvalid reports a configuration value that failed validation
func ConfigInvalid(key string, value interface{}, reason string) *mdwerror.Error {
	return NewErrorBuilder(ModuleConfig).
		Operation("validate").
		Code(CodeConfigInvalid).
		Messagef("invalid configuration %s: %s", key, reason).
		Detail("key", key).
		Detail("value", value).
		Build()
}

// CalcInvalidProgram reports an accumulator program line that cannot be executed
func CalcInvalidProgram(line int, instruction, reason string) *mdwerror.Error {
	return NewErrorBuilder(ModuleCalc).
		Operation("run").
		Code(CodeCalcInvalidProgram).
		Messagef("line %d: %s: %s", line, instruction, reason).
		Detail("line", line).
		Detail("instruction", instruction).
		Severity(mdwerror.SeverityLow).
		Build()
}

// CalcInvalidRequest reports a calculation request that is malformed
func CalcInvalidRequest(operation, reason string, cause error) *mdwerror.Error {
	return NewErrorBuilder(ModuleCalc).
		Operation(operation).
		Code(CodeCalcInvalidRequest).
		Cause(cause).
		Messagef("invalid %s request: %s", operation, reason).
		Detail("reason", reason).
		Severity(mdwerror.SeverityLow).
		Build()
}
