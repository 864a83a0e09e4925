package checker_test

import (
	"testing"

	"go.uber.org/goleak"
)

// Run must not leave its ticker loop behind.
func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}
