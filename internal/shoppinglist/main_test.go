package shoppinglist

import (
	"testing"

	"go.uber.org/goleak"
)

// Building a shopping list never starts background work.
func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}
