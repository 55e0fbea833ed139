package render

// GeoM is a 2D affine transformation matrix. The zero value is the identity.
//
//	| a  b  tx |
//	| c  d  ty |
type GeoM struct {
	a1, b, c, d1, tx, ty float64 // a and d are stored minus one
}

// Translate shifts the image by (tx, ty).
func (g *GeoM) Translate(tx, ty float64) {
	g.tx += tx
	g.ty += ty
}

// Scale scales the image by (sx, sy).
func (g *GeoM) Scale(sx, sy float64) {
	a := (g.a1 + 1) * sx
	b := g.b * sx
	tx := g.tx * sx
	c := g.c * sy
	d := (g.d1 + 1) * sy
	ty := g.ty * sy
	g.a1, g.b, g.tx = a-1, b, tx
	g.c, g.d1, g.ty = c, d-1, ty
}

// Reset resets the matrix to identity.
func (g *GeoM) Reset() {
	*g = GeoM{}
}

// Element returns the value at row i, column j.
func (g *GeoM) Element(i, j int) float64 {
	switch {
	case i == 0 && j == 0:
		return g.a1 + 1
	case i == 0 && j == 1:
		return g.b
	case i == 0 && j == 2:
		return g.tx
	case i == 1 && j == 0:
		return g.c
	case i == 1 && j == 1:
		return g.d1 + 1
	case i == 1 && j == 2:
		return g.ty
	}
	return 0
}

// Apply transforms the point (x, y).
func (g *GeoM) Apply(x, y float64) (float64, float64) {
	return (g.a1+1)*x + g.b*y + g.tx, g.c*x + (g.d1+1)*y + g.ty
}
