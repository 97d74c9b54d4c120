package mandel

// escapeRadiusSq is the squared escape radius (|z| > 2).
const escapeRadiusSq = 4.0

// escapeStep iterates z = z^2 + c from z = 0 and returns the 0-based step at
// which |z| first exceeds 2, or -1 if it stays bounded for maxIter steps.
func escapeStep(c Point, maxIter int) int {
	var zr, zi float64
	for i := 0; i < maxIter; i++ {
		zr, zi = zr*zr-zi*zi+c.Re, 2*zr*zi+c.Im
		if zr*zr+zi*zi > escapeRadiusSq {
			return i
		}
	}
	return -1
}

// Escape returns the normalized escape time of c: i/maxIter when the orbit
// escapes at step i, and 0 for points that never escape. The result is in
// [0, 1). maxIter below 1 is treated as 1.
func Escape(c Point, maxIter int) float64 {
	if maxIter < 1 {
		maxIter = 1
	}
	i := escapeStep(c, maxIter)
	if i < 0 {
		return 0
	}
	return float64(i) / float64(maxIter)
}

// Escaped reports whether the orbit of c leaves the escape radius within
// maxIter steps.
func Escaped(c Point, maxIter int) bool {
	if maxIter < 1 {
		maxIter = 1
	}
	return escapeStep(c, maxIter) >= 0
}
