package coord

import "testing"

func TestReverseIsInvolution(t *testing.T) {
	dirs := []Direction{North, Northeast, East, Southeast, South, Southwest, West, Northwest, Up, Down}
	for _, d := range dirs {
		if got := Reverse(Reverse(d)); got != d {
			t.Errorf("Reverse(Reverse(%v)) = %v, want %v", d, got, d)
		}
	}
}

func TestReversePairs(t *testing.T) {
	cases := map[Direction]Direction{
		North: South, East: West, Up: Down, Northeast: Southwest, Northwest: Southeast,
	}
	for d, want := range cases {
		if got := Reverse(d); got != want {
			t.Errorf("Reverse(%v) = %v, want %v", d, got, want)
		}
	}
}

func TestParseDirectionRoundTrip(t *testing.T) {
	for _, d := range []Direction{North, South, East, West, Up, Down} {
		got, ok := ParseDirection(d.String())
		if !ok || got != d {
			t.Errorf("ParseDirection(%q) = %v,%v want %v,true", d.String(), got, ok, d)
		}
	}
}

func TestParseDirectionAbbreviations(t *testing.T) {
	got, ok := ParseDirection("ne")
	if !ok || got != Northeast {
		t.Fatalf("ParseDirection(ne) = %v,%v", got, ok)
	}
	if _, ok := ParseDirection("sideways"); ok {
		t.Fatalf("expected unknown direction to fail")
	}
}

func TestCoordinateAdd(t *testing.T) {
	c := Coordinate{X: 1, Y: 1, Z: 0}
	got := c.Add(East)
	want := Coordinate{X: 2, Y: 1, Z: 0}
	if got != want {
		t.Errorf("Add(East) = %+v, want %+v", got, want)
	}
}

func TestDimensionsContains(t *testing.T) {
	d := Dimensions{Width: 10, Height: 10, Depth: 1}
	if !d.Contains(Coordinate{X: 0, Y: 0, Z: 0}) {
		t.Error("expected origin within bounds")
	}
	if d.Contains(Coordinate{X: 10, Y: 0, Z: 0}) {
		t.Error("expected X=10 out of bounds for width 10")
	}
	if d.Contains(Coordinate{X: -1, Y: 0, Z: 0}) {
		t.Error("expected negative X out of bounds")
	}
}

func TestRectangleContainsCoordinate(t *testing.T) {
	r := Rectangle{MinX: 0, MinY: 0, MaxX: 5, MaxY: 5, Z: 2}
	if !r.ContainsCoordinate(Coordinate{X: 3, Y: 3, Z: 2}) {
		t.Error("expected point inside rectangle")
	}
	if r.ContainsCoordinate(Coordinate{X: 3, Y: 3, Z: 0}) {
		t.Error("expected wrong Z level to be excluded")
	}
}
