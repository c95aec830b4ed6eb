package dynamo

// Timeseries is an insertion-ordered mapping from variable name to the
// sequence of its values at each output time. A completed run produces
// one series per var key and one per aux_var key.
type Timeseries struct {
	keys  []string
	index map[string][]float64
}

func NewTimeseries() *Timeseries {
	return &Timeseries{index: make(map[string][]float64)}
}

// Append adds one value to the series at key, declaring it if missing.
func (ts *Timeseries) Append(key string, value float64) {
	if _, ok := ts.index[key]; !ok {
		ts.keys = append(ts.keys, key)
	}
	ts.index[key] = append(ts.index[key], value)
}

// Series returns the values recorded for key, or nil if undeclared.
func (ts *Timeseries) Series(key string) []float64 {
	return ts.index[key]
}

func (ts *Timeseries) Has(key string) bool {
	_, ok := ts.index[key]
	return ok
}

func (ts *Timeseries) Keys() []string {
	out := make([]string, len(ts.keys))
	copy(out, ts.keys)
	return out
}

func (ts *Timeseries) Len() int {
	return len(ts.keys)
}
