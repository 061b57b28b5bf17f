// Package model defines the run-result tree consumed by the reporters and
// the classification rules that turn controls into severity labels.
//
// This package contains the following main types:
//   - RunResult: The complete result tree of one test run
//   - ProfileResult, ControlRecord, AssertionResult: Its nested records
//   - ControlView: A read-only projection over a single control
//   - Severity: The label attached to a control or to one of its results
//
// The models are serialized verbatim by the full JSON reporter, so every
// optional value is a pointer: absence and JSON null survive a round trip.
package model
