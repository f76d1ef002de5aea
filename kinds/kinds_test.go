package kinds

import "testing"

func TestOfArity(t *testing.T) {
	cases := []struct {
		n    int
		want Kind
	}{
		{0, Star{}},
		{1, Arrow{Arg: Star{}, Res: Star{}}},
		{2, Arrow{Arg: Star{}, Res: Arrow{Arg: Star{}, Res: Star{}}}},
	}
	for _, c := range cases {
		got := OfArity(c.n)
		if !Equal(got, c.want) {
			t.Errorf("OfArity(%d) = %s, want %s", c.n, got, c.want)
		}
	}
}

func TestArityIsInverseOfOfArity(t *testing.T) {
	for n := 0; n < 5; n++ {
		if got := Arity(OfArity(n)); got != n {
			t.Errorf("Arity(OfArity(%d)) = %d, want %d", n, got, n)
		}
	}
}

func TestEqual(t *testing.T) {
	if !Equal(Star{}, Star{}) {
		t.Fatalf("Star should equal Star")
	}
	if Equal(Star{}, Arrow{Arg: Star{}, Res: Star{}}) {
		t.Fatalf("Star should not equal Arrow")
	}
	a := Arrow{Arg: Star{}, Res: Arrow{Arg: Star{}, Res: Star{}}}
	b := OfArity(2)
	if !Equal(a, b) {
		t.Fatalf("expected %s to equal %s", a, b)
	}
}

func TestString(t *testing.T) {
	if (Star{}).String() != "*" {
		t.Fatalf("unexpected Star string: %q", (Star{}).String())
	}
	if OfArity(1).String() != "* -> *" {
		t.Fatalf("unexpected Arrow string: %q", OfArity(1).String())
	}
}
