package testutil

import (
	"testing"

	"ollamacheck/harness"
)

// Require reports a check result through the test framework: SKIP becomes
// t.Skip and FAIL becomes t.Fatal, so go test tallies them natively.
func Require(t testing.TB, result harness.Result) {
	t.Helper()

	switch result.Outcome {
	case harness.Pass:
	case harness.Skip:
		t.Skipf("%s: %s", result.Check, result.Reason)
	default:
		t.Fatalf("%s: %v", result.Check, result.Err)
	}
}
