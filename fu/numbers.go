package fu

// Fnzi returns the first non-zero int or zero
func Fnzi(a ...int) int {
	for _, x := range a {
		if x != 0 {
			return x
		}
	}
	return 0
}

// Fnzd returns the first non-zero float64 or zero
func Fnzd(a ...float64) float64 {
	for _, x := range a {
		if x != 0 {
			return x
		}
	}
	return 0
}

// Fnzs returns the first non-empty string
func Fnzs(a ...string) string {
	for _, x := range a {
		if x != "" {
			return x
		}
	}
	return ""
}

// Maxi returns the larger of a and b
func Maxi(a, b int) int {
	if a > b {
		return a
	}
	return b
}

/*
Indmind returns index of the minimal value, or -1 for an empty slice
*/
func Indmind(a []float64) int {
	j := -1
	for i, x := range a {
		if j < 0 || x < a[j] {
			j = i
		}
	}
	return j
}
