// File: standards.go
// Title: Error Standards for numerik Modules
// Description: Module identifiers, module-specific error codes and the mapping
//              of every module code onto a core error code so that outer layers
//              (HTTP status, CLI exit handling, log level) can classify errors
//              without knowing each module.
// Author: msto63
// Version: v0.2.0
// Created: 2025-01-25
// Modified: 2026-10-18
//
// Change History:
// - 2025-01-25 v0.1.0: Initial implementation for error standardization
// - 2026-10-18 v0.2.0: Calculation, codec, journal and config modules; Classify

package errors

import (
	mdwerror "github.com/msto63/numerik/foundation/core/error"
)

// Module identifiers for error categorization
const (
	ModuleMathx   = "mathx"
	ModuleCombx   = "combx"
	ModuleConfig  = "config"
	ModuleJournal = "journal"
	ModuleCalc    = "calc"
	ModuleServer  = "server"
)

// Standardized error codes for all modules
const (
	// Common error codes
	CodeInvalidInput    = "INVALID_INPUT"
	CodeInvalidFormat   = "INVALID_FORMAT"
	CodeOutOfRange      = "OUT_OF_RANGE"
	CodeNotFound        = "NOT_FOUND"
	CodeOperationFailed = "OPERATION_FAILED"

	// mathx
	CodeMathxUnsupportedSource   = "MATHX_UNSUPPORTED_SOURCE"
	CodeMathxRoundingNecessary   = "MATHX_ROUNDING_NECESSARY"
	CodeMathxInvalidRoundingMode = "MATHX_INVALID_ROUNDING_MODE"
	CodeMathxInvalidPolicy       = "MATHX_INVALID_POLICY"
	CodeMathxInvalidPattern      = "MATHX_INVALID_PATTERN"
	CodeMathxInvalidSlot         = "MATHX_INVALID_SLOT"

	// combx
	CodeCombxEmptyDimension  = "COMBX_EMPTY_DIMENSION"
	CodeCombxNoMatch         = "COMBX_NO_MATCH"
	CodeCombxIDOutOfRange    = "COMBX_ID_OUT_OF_RANGE"
	CodeCombxInvalidArgument = "COMBX_INVALID_ARGUMENT"
	CodeCombxTypeMismatch    = "COMBX_TYPE_MISMATCH"
	CodeCombxOverflow        = "COMBX_OVERFLOW"

	// config
	CodeConfigNotFound    = "CONFIG_NOT_FOUND"
	CodeConfigParseFailed = "CONFIG_PARSE_FAILED"
	CodeConfigInvalid     = "CONFIG_INVALID"

	// journal
	CodeJournalNotFound = "JOURNAL_NOT_FOUND"
	CodeJournalStorage  = "JOURNAL_STORAGE"

	// calc
	CodeCalcInvalidProgram = "CALC_INVALID_PROGRAM"
	CodeCalcInvalidRequest = "CALC_INVALID_REQUEST"
)

var codeClasses = map[string]mdwerror.Code{
	CodeInvalidInput:    mdwerror.CodeInvalidInput,
	CodeInvalidFormat:   mdwerror.CodeInvalidFormat,
	CodeOutOfRange:      mdwerror.CodeValueOutOfRange,
	CodeNotFound:        mdwerror.CodeNotFound,
	CodeOperationFailed: mdwerror.CodeInternal,

	CodeMathxUnsupportedSource:   mdwerror.CodeUnsupportedSource,
	CodeMathxRoundingNecessary:   mdwerror.CodeRoundingNecessary,
	CodeMathxInvalidRoundingMode: mdwerror.CodeInvalidInput,
	CodeMathxInvalidPolicy:       mdwerror.CodeInvalidInput,
	CodeMathxInvalidPattern:      mdwerror.CodeInvalidFormat,
	CodeMathxInvalidSlot:         mdwerror.CodeValueOutOfRange,

	CodeCombxEmptyDimension:  mdwerror.CodeInvalidInput,
	CodeCombxNoMatch:         mdwerror.CodeNotFound,
	CodeCombxIDOutOfRange:    mdwerror.CodeValueOutOfRange,
	CodeCombxInvalidArgument: mdwerror.CodeInvalidInput,
	CodeCombxTypeMismatch:    mdwerror.CodeInvalidInput,
	CodeCombxOverflow:        mdwerror.CodeValueOutOfRange,

	CodeConfigNotFound:    mdwerror.CodeMissingConfig,
	CodeConfigParseFailed: mdwerror.CodeConfigError,
	CodeConfigInvalid:     mdwerror.CodeInvalidConfig,

	CodeJournalNotFound: mdwerror.CodeNotFound,
	CodeJournalStorage:  mdwerror.CodeDatabaseError,

	CodeCalcInvalidProgram: mdwerror.CodeInvalidProgram,
	CodeCalcInvalidRequest: mdwerror.CodeValidationFailed,
}

// Classify maps the code of err onto a core error code. Core codes pass
// through unchanged, unknown codes and plain errors yield CodeUnknown.
func Classify(err error) mdwerror.Code {
	code := mdwerror.GetCode(err)
	if code.IsValid() {
		return code
	}
	if class, ok := codeClasses[string(code)]; ok {
		return class
	}
	return mdwerror.CodeUnknown
}

// IsModuleError checks if an error belongs to a specific module
func IsModuleError(err error, module string) bool {
	return ExtractModule(err) == module
}

// ExtractModule extracts the module name from a standardized error
func ExtractModule(err error) string {
	return detailString(err, "module")
}

// ExtractOperation extracts the operation name from a standardized error
func ExtractOperation(err error) string {
	return detailString(err, "operation")
}

// ExtractDetails returns the details of a standardized error, nil otherwise
func ExtractDetails(err error) map[string]interface{} {
	if mdwErr, ok := mdwerror.As(err); ok {
		return mdwErr.Details()
	}
	return nil
}

func detailString(err error, key string) string {
	details := ExtractDetails(err)
	if details == nil {
		return ""
	}
	if s, ok := details[key].(string); ok {
		return s
	}
	return ""
}
