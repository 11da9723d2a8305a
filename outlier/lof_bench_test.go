package outlier

import (
	"math"
	"testing"
)

func benchRows(rows, cols int) [][]float64 {
	data := make([][]float64, rows)
	for i := range data {
		row := make([]float64, cols)
		for j := range row {
			row[j] = math.Sin(float64(j)/7) + 0.01*float64(i)*math.Cos(float64(j)/9)
		}

		data[i] = row
	}

	return data
}

func BenchmarkLOFFit(b *testing.B) {
	data := benchRows(30, 500)

	b.ResetTimer()

	for b.Loop() {
		l := NewLOF()
		if err := l.Fit(data); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkLOFPredict(b *testing.B) {
	data := benchRows(30, 500)

	l := NewLOF()
	if err := l.Fit(data); err != nil {
		b.Fatal(err)
	}

	b.ResetTimer()

	for b.Loop() {
		if _, err := l.Predict(data); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkCombined(b *testing.B) {
	data := benchRows(30, 500)

	b.ResetTimer()

	for b.Loop() {
		if _, err := CombinedDefault(data); err != nil {
			b.Fatal(err)
		}
	}
}
