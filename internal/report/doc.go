// Package report renders a completed run into its report formats and routes
// each rendered report to standard output or a file.
//
// The set of formats is closed. Every renderer implements Renderer and is
// created through New by reporter name:
//   - cli: human-readable console text, optionally coloured
//   - json: the full run tree, lossless
//   - json-min: one flat record per control result
//   - documentation: a Markdown document with summary tables and a chart
//   - junit: JUnit XML for CI systems
//
// The remaining valid reporter names (automate, html, json-rspec, progress)
// have no renderer in this build and New returns ErrRendererUnavailable
// for them.
//
// Renderers only read the run. They share no state, so the Dispatcher runs
// them concurrently over the same snapshot and writes the results afterwards.
// Report data structures live in the model package.
package report
