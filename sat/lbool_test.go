package sat

import (
	"fmt"
	"testing"
)

func TestLBool_Opposite(t *testing.T) {
	cases := []struct {
		in   LBool
		want LBool
	}{
		{True, False},
		{False, True},
		{Unknown, Unknown},
	}
	for _, c := range cases {
		if got := c.in.Opposite(); got != c.want {
			t.Errorf("%v.Opposite() = %v, want %v", c.in, got, c.want)
		}
	}
}

func TestLift(t *testing.T) {
	if got := Lift(true); got != True {
		t.Errorf("Lift(true) = %v, want True", got)
	}
	if got := Lift(false); got != False {
		t.Errorf("Lift(false) = %v, want False", got)
	}
}

func ExampleLBool_String() {
	fmt.Println(True, False, Unknown)

	// Output:
	// true false unknown
}
