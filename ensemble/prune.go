package ensemble

// DefaultMinRuns is the default threshold used by Prune.
const DefaultMinRuns = 2

// Prune returns a new dataset holding only the models with at least minRuns
// runs. Model and run order is preserved. The run tensors are shared with d,
// which is left unchanged.
func Prune(d *Dataset, minRuns int) *Dataset {
	out := New()
	for _, name := range d.order {
		m := d.models[name]
		if m.Len() < minRuns {
			continue
		}
		for _, run := range m.order {
			out.Add(name, run, m.runs[run])
		}
	}
	return out
}
