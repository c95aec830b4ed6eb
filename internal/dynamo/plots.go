package dynamo

import "fmt"

// Plot describes one chart over solution series, or over a named fn
// sampled across XLims. Pure data: the presentation layer decides how
// to draw it.
type Plot struct {
	Title    string
	Vars     []string
	Markdown string
	Fn       string
	XLims    [2]float64
}

// EditableParam describes one param the user may adjust between runs.
type EditableParam struct {
	Key string
	Min float64
	Max float64
}

// ExtractEditableParams declares an editable range for every param not
// already covered by an explicit descriptor. The default ceiling is
// five times the current value, matching the heuristic the interactive
// layer expects. dt is never exposed.
func (b *Base) ExtractEditableParams() error {
	declared := make(map[string]bool, len(b.EditableParams))
	for _, p := range b.EditableParams {
		declared[p.Key] = true
	}

	for _, key := range b.Param.Keys() {
		if key == "dt" || declared[key] {
			continue
		}
		val := b.Param.At(key)
		max := 5 * val
		if val == 0 {
			max = 1
		} else if val < 0 {
			return fmt.Errorf("%w: cannot derive a range for negative param %q", ErrInconsistentModel, key)
		}
		b.EditableParams = append(b.EditableParams, EditableParam{Key: key, Max: max})
	}
	return nil
}
