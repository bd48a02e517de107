package mat

import (
	"testing"

	"github.com/chewxy/math32"
)

func TestNewEye(t *testing.T) {
	m := New(3, 3)
	m.Eye()
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			want := float32(0)
			if i == j {
				want = 1
			}
			if m[i][j] != want {
				t.Errorf("Eye()[%d][%d] = %v, want %v", i, j, m[i][j], want)
			}
		}
	}
}

func TestMul(t *testing.T) {
	a := New(2, 2, 1, 2, 3, 4)
	b := New(2, 2, 5, 6, 7, 8)
	got := New(2, 2)
	got.Mul(a, b)
	want := New(2, 2, 19, 22, 43, 50)
	for i := range want {
		for j := range want[i] {
			if got[i][j] != want[i][j] {
				t.Errorf("Mul()[%d][%d] = %v, want %v", i, j, got[i][j], want[i][j])
			}
		}
	}
}

func TestTranspose(t *testing.T) {
	a := New(2, 3, 1, 2, 3, 4, 5, 6)
	got := New(3, 2)
	got.Transpose(a)
	want := New(3, 2, 1, 4, 2, 5, 3, 6)
	for i := range want {
		for j := range want[i] {
			if got[i][j] != want[i][j] {
				t.Errorf("Transpose()[%d][%d] = %v, want %v", i, j, got[i][j], want[i][j])
			}
		}
	}
}

func TestRotation2D(t *testing.T) {
	r := Rotation2D(math32.Pi / 2)
	if math32.Abs(r[0][0]) > 1e-5 || math32.Abs(r[1][1]) > 1e-5 {
		t.Errorf("Rotation2D(pi/2) diagonal should be ~0, got %v", r)
	}
	if math32.Abs(r[1][0]-1) > 1e-5 {
		t.Errorf("Rotation2D(pi/2)[1][0] = %v, want 1", r[1][0])
	}
}
