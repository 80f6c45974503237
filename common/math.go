package common

// Rect is an integer pixel rectangle.
type Rect struct {
	X, Y          int
	Width, Height int
}

// Point is an integer pixel position.
type Point struct {
	X, Y int
}
