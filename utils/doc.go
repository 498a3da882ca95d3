// Package utils provides internal utility functions for the map matching tools.
// This package is not intended to be imported by external code.
//
// It contains time formatting helpers shared by the formatter and the CLI.
package utils
