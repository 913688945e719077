package cmd

import (
	"testing"

	"go.uber.org/goleak"
)

// The --exec hook runs in an in-process shell interpreter.
func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}
