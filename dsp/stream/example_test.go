package stream_test

import (
	"fmt"

	"github.com/cwbudde/algo-photometry/dsp/stream"
)

func ExampleStream_Decimate() {
	s, err := stream.FromRate([]float64{1, 3, 5, 7, 9, 11}, 10, 0)
	if err != nil {
		panic(err)
	}

	d, err := s.Decimate(2)
	if err != nil {
		panic(err)
	}

	fmt.Printf("%.1f %.1f %.1f\n", d.Values[0], d.Values[1], d.Values[2])

	// Output:
	// 2.0 6.0 10.0
}
