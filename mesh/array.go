package mesh

import "fmt"

// Array5 is a host-resident five-dimensional field array with shape
// (block, variable, k, j, i), flattened into one contiguous slice with i
// fastest. All bulk kernels address it through Idx so pack and unpack agree on
// the layout.
type Array5 struct {
	Nmb, Nvar      int
	N3, N2, N1     int
	Data           []float64
}

// NewArray5 allocates a zeroed field array for nmb blocks of nvar variables
// on the padded cell extents of ind.
func NewArray5(nmb, nvar int, ind Indcs) *Array5 {
	return NewArray5Dims(nmb, nvar, ind.Ncells3(), ind.Ncells2(), ind.Ncells1())
}

// NewArray5Dims allocates a zeroed array with explicit extents.
func NewArray5Dims(nmb, nvar, n3, n2, n1 int) *Array5 {
	if nmb < 1 || nvar < 1 || n3 < 1 || n2 < 1 || n1 < 1 {
		panic(fmt.Sprintf("invalid Array5 extents (%d,%d,%d,%d,%d)", nmb, nvar, n3, n2, n1))
	}
	return &Array5{
		Nmb: nmb, Nvar: nvar,
		N3: n3, N2: n2, N1: n1,
		Data: make([]float64, nmb*nvar*n3*n2*n1),
	}
}

// Idx returns the flat offset of element (m,v,k,j,i).
func (a *Array5) Idx(m, v, k, j, i int) int {
	return i + a.N1*(j+a.N2*(k+a.N3*(v+a.Nvar*m)))
}

// At returns the element at (m,v,k,j,i).
func (a *Array5) At(m, v, k, j, i int) float64 { return a.Data[a.Idx(m, v, k, j, i)] }

// Set stores val at (m,v,k,j,i).
func (a *Array5) Set(m, v, k, j, i int, val float64) { a.Data[a.Idx(m, v, k, j, i)] = val }

// Fill sets every element to val.
func (a *Array5) Fill(val float64) {
	for n := range a.Data {
		a.Data[n] = val
	}
}

// Clone returns a deep copy, used by tests to detect unwanted mutation.
func (a *Array5) Clone() *Array5 {
	b := *a
	b.Data = make([]float64, len(a.Data))
	copy(b.Data, a.Data)
	return &b
}

// FaceField holds face-centered flux arrays. Each component has one extra
// entry along its own normal (Nx+1 faces bound Nx cells); collapsed
// dimensions keep extent 1.
type FaceField struct {
	X1f, X2f, X3f *Array5
}

// NewFaceField allocates zeroed face flux storage for nmb blocks of nvar
// variables on the cell extents of ind.
func NewFaceField(nmb, nvar int, ind Indcs) *FaceField {
	n1, n2, n3 := ind.Ncells1(), ind.Ncells2(), ind.Ncells3()
	ff := &FaceField{
		X1f: NewArray5Dims(nmb, nvar, n3, n2, n1+1),
	}
	if ind.MultiD() {
		ff.X2f = NewArray5Dims(nmb, nvar, n3, n2+1, n1)
	} else {
		ff.X2f = NewArray5Dims(nmb, nvar, n3, n2, n1)
	}
	if ind.ThreeD() {
		ff.X3f = NewArray5Dims(nmb, nvar, n3+1, n2, n1)
	} else {
		ff.X3f = NewArray5Dims(nmb, nvar, n3, n2, n1)
	}
	return ff
}
