// Package types holds the interfaces and value types shared across
// buildlink's packages.
package types
