package testutil

import (
	"testing"

	"github.com/udisondev/grimset/internal/geom"
)

// VectorTolerance is the default tolerance for vector comparisons in tests.
const VectorTolerance = 1e-9

// AssertVectorNear проверяет, что два вектора совпадают с точностью до VectorTolerance.
func AssertVectorNear(t testing.TB, expected, actual geom.Vector, msgAndArgs ...any) {
	t.Helper()

	if !expected.Equals(actual, VectorTolerance) {
		t.Errorf("vector mismatch: expected %+v, got %+v %v", expected, actual, msgAndArgs)
	}
}

// AssertVerticesNear проверяет два списка вершин поэлементно.
func AssertVerticesNear(t testing.TB, expected, actual []geom.Vector) {
	t.Helper()

	if len(expected) != len(actual) {
		t.Fatalf("vertex count mismatch: expected %d, got %d", len(expected), len(actual))
	}
	for i := range expected {
		if !expected[i].Equals(actual[i], VectorTolerance) {
			t.Errorf("vertex %d mismatch: expected %+v, got %+v", i, expected[i], actual[i])
		}
	}
}
