package engine

import "happiness/internal/models"

// Mean is the arithmetic mean of field over the view.
func Mean(v View, field Field) (float64, error) {
	if err := numericField("mean", field); err != nil {
		return 0, err
	}
	if v.Len() == 0 {
		return 0, &EmptyViewError{Op: "mean", Field: field}
	}
	var sum float64
	for _, j := range v.idx {
		sum += v.ds.value(j, field)
	}
	return sum / float64(v.Len()), nil
}

// Summarize computes the KPI panel: score, rank, GDP, health, support
// and freedom means over the view.
func Summarize(v View) (models.KPIs, error) {
	kpis := models.KPIs{Rows: v.Len()}
	targets := []struct {
		f   Field
		dst *float64
	}{
		{FieldScore, &kpis.Score},
		{FieldRank, &kpis.Rank},
		{FieldGDP, &kpis.GDP},
		{FieldHealth, &kpis.Health},
		{FieldFamily, &kpis.Support},
		{FieldFreedom, &kpis.Freedom},
	}
	for _, t := range targets {
		m, err := Mean(v, t.f)
		if err != nil {
			return models.KPIs{}, err
		}
		*t.dst = m
	}
	return kpis, nil
}
