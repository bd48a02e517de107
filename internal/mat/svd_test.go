package mat

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSVDIdentity(t *testing.T) {
	m := New(3, 3)
	m.Eye()
	var result SVDResult
	if err := m.SVD(&result); err != nil {
		t.Fatalf("SVD() error = %v", err)
	}
	for i := 0; i < 3; i++ {
		assert.InDelta(t, float32(1), result.S[i], 1e-5, "singular value %d", i)
	}
	verifyReconstruction(t, m, &result)
}

func TestSVDRectangularOverdetermined(t *testing.T) {
	m := New(4, 3,
		1, 0, 0,
		0, 1, 0,
		0, 0, 1,
		1, 1, 1)
	var result SVDResult
	if err := m.SVD(&result); err != nil {
		t.Fatalf("SVD() error = %v", err)
	}
	if len(result.S) != 3 {
		t.Fatalf("len(S) = %d, want 3", len(result.S))
	}
	verifyReconstruction(t, m, &result)
}

func TestSVDRejectsUnderdetermined(t *testing.T) {
	m := New(2, 3, 1, 0, 0, 0, 1, 0)
	var result SVDResult
	if err := m.SVD(&result); err == nil {
		t.Fatal("SVD() on rows<cols matrix should error")
	}
}

func TestSVDRejectsEmpty(t *testing.T) {
	var m Matrix
	var result SVDResult
	if err := m.SVD(&result); err == nil {
		t.Fatal("SVD() on empty matrix should error")
	}
}

func verifyReconstruction(t *testing.T, m Matrix, result *SVDResult) {
	t.Helper()
	rows, cols := len(m), len(m[0])
	sigma := New(cols, cols)
	for i := 0; i < cols; i++ {
		sigma[i][i] = result.S[i]
	}
	uSigma := New(rows, cols)
	uSigma.Mul(result.U, sigma)
	reconstructed := New(rows, cols)
	reconstructed.Mul(uSigma, result.Vt)
	for i := 0; i < rows; i++ {
		for j := 0; j < cols; j++ {
			assert.InDelta(t, m[i][j], reconstructed[i][j], 1e-4, "reconstruction[%d][%d]", i, j)
		}
	}
}
