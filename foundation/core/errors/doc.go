// Package errors standardizes module-scoped errors on top of the structured
// error type in foundation/core/error.
//
// Every error built here carries the module and operation in its details and a
// module code such as COMBX_NO_MATCH. Classify maps module codes back onto the
// core codes so that callers can derive HTTP status or log level uniformly:
//
//	err := mdwerrors.CombxNoMatch(1, "XL")
//	mdwerrors.Classify(err).HTTPStatus() // 404
package errors
