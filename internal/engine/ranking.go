package engine

import "sort"

type keyedRow struct {
	row int
	key float64
}

// TopN orders the view by field and returns the first min(n, len) rows.
// The sort is stable so equal keys keep their view order.
func TopN(v View, field Field, n int, ascending bool) ([]Observation, error) {
	if err := numericField("topN", field); err != nil {
		return nil, err
	}
	if n <= 0 || v.Len() == 0 {
		return []Observation{}, nil
	}

	rows := make([]keyedRow, len(v.idx))
	for i, j := range v.idx {
		rows[i] = keyedRow{row: j, key: v.ds.value(j, field)}
	}

	sort.SliceStable(rows, func(a, b int) bool {
		if ascending {
			return rows[a].key < rows[b].key
		}
		return rows[a].key > rows[b].key
	})

	if n > len(rows) {
		n = len(rows)
	}
	out := make([]Observation, n)
	for i := 0; i < n; i++ {
		out[i] = v.ds.Row(rows[i].row)
	}
	return out, nil
}
