// Package testutil provides shared helpers for buildlink's tests.
package testutil
