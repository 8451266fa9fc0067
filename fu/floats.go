package fu

/*
Sse returns the sum of squared differences between a and b
*/
func Sse(a, b []float64) float64 {
	var c float64
	for i, x := range a {
		q := x - b[i]
		c += q * q
	}
	return c
}

/*
Mse returns the mean of squared differences between a and b
*/
func Mse(a, b []float64) float64 {
	if len(a) == 0 {
		return 0
	}
	return Sse(a, b) / float64(len(a))
}
