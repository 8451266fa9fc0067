package fu

import (
	"testing"

	"gotest.tools/assert"
)

func Test_Fnz(t *testing.T) {
	assert.Equal(t, Fnzi(0, 0, 3, 4), 3)
	assert.Equal(t, Fnzi(), 0)
	assert.Equal(t, Fnzd(0, 0.8), 0.8)
	assert.Equal(t, Fnzs("", "mean"), "mean")
}

func Test_Sse(t *testing.T) {
	assert.Equal(t, Sse([]float64{1, 2, 3}, []float64{1, 0, 4}), 5.0)
	assert.Equal(t, Mse([]float64{1, 2}, []float64{3, 2}), 2.0)
	assert.Equal(t, Mse(nil, nil), 0.0)
}

func Test_Indmind(t *testing.T) {
	assert.Equal(t, Indmind([]float64{3, 1, 2, 1}), 1)
	assert.Equal(t, Indmind(nil), -1)
}

func Test_Maxi(t *testing.T) {
	assert.Equal(t, Maxi(0, 1), 1)
	assert.Equal(t, Maxi(-2, -3), -2)
}

func Test_ModelPath(t *testing.T) {
	assert.Equal(t, ModelPath("/tmp/models.sqlite"), "/tmp/models.sqlite")
}
