package montecarlo

import (
	"io"

	"github.com/aybabtme/uniplot/histogram"
)

const histogramBins = 15

// Histogram renders the distribution of final bankrolls to w as a
// terminal bar chart.
func (b *Batch) Histogram(w io.Writer) error {
	h := histogram.Hist(histogramBins, b.FinalBankrolls())
	return histogram.Fprint(w, h, histogram.Linear(40))
}
