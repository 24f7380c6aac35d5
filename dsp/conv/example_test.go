package conv_test

import (
	"fmt"

	"github.com/cwbudde/algo-photometry/dsp/conv"
)

func ExampleCorrelate() {
	// Find the position of a template in a signal
	signal := []float64{0, 0, 0, 1, 2, 3, 2, 1, 0, 0, 0}
	template := []float64{1, 2, 3, 2, 1}

	result, _ := conv.Correlate(signal, template)

	peakIdx, peakVal := conv.FindPeak(result)
	lag := conv.LagFromIndex(peakIdx, len(template))

	fmt.Printf("Peak at index %d (lag %d) with value %.2f\n", peakIdx, lag, peakVal)

	// Output:
	// Peak at index 7 (lag 3) with value 19.00
}
