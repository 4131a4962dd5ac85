// Package config provides configuration structures and utilities for
// opencrawl. It defines the main options for crawling organization
// websites, evaluating criteria, and report generation preferences.
package config
