// Package main provides the entry point for the complyreport CLI.
//
// complyreport renders the result tree of a compliance run into human and
// machine readable reports and keeps a local history of reported runs.
//
// Usage:
//
//	complyreport report run.json
//	complyreport report --reporter cli --reporter json:out/run.json run.json
//	complyreport history
//
// See --help for all available options.
package main

// main is the entry point for complyreport.
func main() {
	Execute()
}
