// Package main provides the entry point for the opencrawl CLI.
//
// opencrawl assesses how openly organizations present themselves on their
// public websites. It politely crawls each organization's site, checks the
// pages against a criteria catalog, and reports which openness criteria
// are fulfilled with what confidence.
//
// Usage:
//
//	opencrawl assess https://example.org
//	opencrawl assess --list organizations.csv --catalog university
//
// See --help for all available options.
package main

// main is the entry point for opencrawl.
func main() {
	Execute()
}
