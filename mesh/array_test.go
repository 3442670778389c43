package mesh

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestArray5Layout(t *testing.T) {
	a := NewArray5Dims(2, 3, 4, 5, 6)
	if len(a.Data) != 2*3*4*5*6 {
		t.Fatalf("allocated %d elements", len(a.Data))
	}
	// i is fastest, block slowest
	if a.Idx(0, 0, 0, 0, 1) != 1 {
		t.Fatal("i stride is not 1")
	}
	if a.Idx(0, 0, 0, 1, 0) != 6 {
		t.Fatal("j stride is not N1")
	}
	if a.Idx(1, 0, 0, 0, 0) != 3*4*5*6 {
		t.Fatal("block stride is not Nvar*N3*N2*N1")
	}

	a.Set(1, 2, 3, 4, 5, 42)
	if a.At(1, 2, 3, 4, 5) != 42 {
		t.Fatal("Set/At round trip failed")
	}

	b := a.Clone()
	assert.InDeltaSlicef(t, a.Data, b.Data, 0, "")
	b.Set(0, 0, 0, 0, 0, 7)
	if a.At(0, 0, 0, 0, 0) == 7 {
		t.Fatal("Clone shares storage")
	}
}

func TestFaceFieldExtents(t *testing.T) {
	ind, err := NewIndcs(8, 4, 1, 2, false)
	if err != nil {
		t.Fatal(err)
	}
	ff := NewFaceField(3, 2, ind)
	assert.Equal(t, ind.Ncells1()+1, ff.X1f.N1)
	assert.Equal(t, ind.Ncells2(), ff.X1f.N2)
	assert.Equal(t, ind.Ncells2()+1, ff.X2f.N2)
	// collapsed x3 keeps the base extent
	assert.Equal(t, ind.Ncells3(), ff.X3f.N3)
}
