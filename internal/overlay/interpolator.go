package overlay

// Interpolate maps p through the piecewise-linear curve defined by input
// breakpoints and output values. Input must be ascending and the same
// length as output. Values outside the input range clamp to the end
// values.
func Interpolate(input, output []float64, p float64) float64 {
	n := min(len(input), len(output))
	if n == 0 {
		return 0
	}
	if p != p || p <= input[0] {
		return output[0]
	}
	if p >= input[n-1] {
		return output[n-1]
	}

	// Find surrounding breakpoints
	for i := 0; i < n-1; i++ {
		if p >= input[i] && p < input[i+1] {
			span := input[i+1] - input[i]
			if span == 0 {
				return output[i+1]
			}
			t := (p - input[i]) / span
			return lerp(output[i], output[i+1], t)
		}
	}
	return output[n-1]
}

// lerp performs linear interpolation between a and b
func lerp(a, b, t float64) float64 {
	return a + (b-a)*t
}
