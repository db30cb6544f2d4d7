package interp

import "math"

// besselI0 evaluates the modified Bessel function of the first kind, order
// zero, using the Abramowitz & Stegun §9.8 polynomial approximation split at
// t = x/3.75 = 1 (spec §4.2).
func besselI0(x float64) float64 {
	ax := math.Abs(x)
	if ax < 3.75 {
		t := x / 3.75
		t2 := t * t
		return 1.0 + t2*(3.5156229+t2*(3.0899424+t2*(1.2067492+
			t2*(0.2659732+t2*(0.0360768+t2*0.0045813)))))
	}
	t := 3.75 / ax
	poly := 0.39894228 + t*(0.01328592+t*(0.00225319+t*(-0.00157565+
		t*(0.00916281+t*(-0.02057706+t*(0.02635537+t*(-0.01647633+t*0.00392377)))))))
	return (math.Exp(ax) / math.Sqrt(ax)) * poly
}
