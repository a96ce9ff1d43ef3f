// Package app provides the application service layer.
//
// Orchestrates the use cases behind the HTTP API: normalize, classify, aggregate,
// describe and render. Sits between HTTP handlers and the domain collaborators
// (ClassificationOracle, ChartRenderer). Depends on domain interfaces, not concrete implementations.
package app
