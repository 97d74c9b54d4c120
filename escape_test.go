package mandel

import "testing"

func TestEscape_OriginIsInterior(t *testing.T) {
	for _, maxIter := range []int{1, 2, 3, 10, 50, 1000} {
		if got := Escape(Point{}, maxIter); got != 0 {
			t.Errorf("Escape(0, %d) = %v, want 0", maxIter, got)
		}
		if Escaped(Point{}, maxIter) {
			t.Errorf("Escaped(0, %d) = true, want false", maxIter)
		}
	}
}

func TestEscape_ImmediateEscape(t *testing.T) {
	c := Point{Re: 2, Im: 2}
	for _, maxIter := range []int{0, 1, 2, 10, 500} {
		if got := Escape(c, maxIter); got != 0 {
			t.Errorf("Escape((2,2), %d) = %v, want 0", maxIter, got)
		}
		if !Escaped(c, maxIter) {
			t.Errorf("Escaped((2,2), %d) = false, want true", maxIter)
		}
	}
}

func TestEscape_Steps(t *testing.T) {
	tests := []struct {
		name    string
		c       Point
		maxIter int
		want    float64
	}{
		{"one escapes at step 2", Point{Re: 1}, 4, 0.5},
		{"one escapes at step 2 of 10", Point{Re: 1}, 10, 0.2},
		{"one not yet escaped", Point{Re: 1}, 2, 0},
		{"half escapes at step 4", Point{Re: 0.5}, 8, 0.5},
		{"period two cycle", Point{Re: -1}, 100, 0},
		{"tip of the needle", Point{Re: -2}, 100, 0},
		{"cardioid", Point{Re: 0.3, Im: 0.5}, 100, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Escape(tt.c, tt.maxIter); got != tt.want {
				t.Errorf("Escape(%v, %d) = %v, want %v", tt.c, tt.maxIter, got, tt.want)
			}
		})
	}
}

func TestEscape_DecreasesWithDepth(t *testing.T) {
	c := Point{Re: 1}
	prev := Escape(c, 3)
	if prev <= 0 {
		t.Fatalf("Escape(%v, 3) = %v, want > 0", c, prev)
	}
	for _, maxIter := range []int{4, 5, 8, 16, 100, 1000} {
		got := Escape(c, maxIter)
		if got >= prev {
			t.Errorf("Escape(%v, %d) = %v, want < %v", c, maxIter, got, prev)
		}
		prev = got
	}
}

func TestEscape_Range(t *testing.T) {
	for y := -20; y <= 20; y++ {
		for x := -20; x <= 20; x++ {
			c := Point{Re: float64(x) / 8, Im: float64(y) / 8}
			v := Escape(c, 30)
			if v < 0 || v >= 1 {
				t.Fatalf("Escape(%v, 30) = %v, want [0, 1)", c, v)
			}
		}
	}
}

func BenchmarkEscape_Interior(b *testing.B) {
	b.ReportAllocs()
	c := Point{Re: -0.1, Im: 0.1}
	for i := 0; i < b.N; i++ {
		_ = Escape(c, 1000)
	}
}
