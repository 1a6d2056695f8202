package engine

// Field identifies a dataset column. Only the values declared below are valid.
type Field string

const (
	FieldCountry    Field = "country"
	FieldYear       Field = "year"
	FieldScore      Field = "happiness_score"
	FieldRank       Field = "happiness_rank"
	FieldGDP        Field = "gdp"
	FieldFamily     Field = "family"
	FieldHealth     Field = "health"
	FieldFreedom    Field = "freedom"
	FieldGenerosity Field = "generosity"
	FieldTrust      Field = "trust"
)

// Fields lists every column in CSV order.
var Fields = []Field{
	FieldCountry, FieldYear, FieldScore, FieldRank,
	FieldGDP, FieldFamily, FieldHealth, FieldFreedom, FieldGenerosity, FieldTrust,
}

// Factors are the six contributing factors a user may select.
var Factors = []Field{FieldGDP, FieldHealth, FieldFamily, FieldFreedom, FieldGenerosity, FieldTrust}

// HeatmapFields is the column set of the correlation heatmap.
var HeatmapFields = []Field{FieldGDP, FieldFamily, FieldHealth, FieldFreedom, FieldGenerosity, FieldTrust, FieldScore}

var headerNames = map[Field]string{
	FieldCountry:    "Country",
	FieldYear:       "Year",
	FieldScore:      "Happiness_Score",
	FieldRank:       "Happiness_Rank",
	FieldGDP:        "GDP",
	FieldFamily:     "Family",
	FieldHealth:     "Health",
	FieldFreedom:    "Freedom",
	FieldGenerosity: "Generosity",
	FieldTrust:      "Trust",
}

var labels = map[Field]string{
	FieldCountry:    "Country",
	FieldYear:       "Year",
	FieldScore:      "Happiness Score",
	FieldRank:       "Happiness Rank",
	FieldGDP:        "GDP",
	FieldFamily:     "Social Support",
	FieldHealth:     "Health",
	FieldFreedom:    "Freedom",
	FieldGenerosity: "Generosity",
	FieldTrust:      "Trust",
}

// Header returns the CSV column name.
func (f Field) Header() string { return headerNames[f] }

// Label returns a display name.
func (f Field) Label() string { return labels[f] }

// IsNumeric reports whether the field holds a number.
func (f Field) IsNumeric() bool {
	_, ok := headerNames[f]
	return ok && f != FieldCountry
}

// IsFactor reports whether f is one of the six contributing factors.
func (f Field) IsFactor() bool {
	for _, x := range Factors {
		if x == f {
			return true
		}
	}
	return false
}

// ParseField accepts a canonical id ("gdp") or a CSV header ("GDP").
func ParseField(s string) (Field, error) {
	for f, h := range headerNames {
		if string(f) == s || h == s {
			return f, nil
		}
	}
	return "", &InvalidArgumentError{Param: "field", Value: s, Reason: "unknown field"}
}

// ParseFactor is ParseField restricted to Factors.
func ParseFactor(s string) (Field, error) {
	f, err := ParseField(s)
	if err != nil {
		return "", &InvalidArgumentError{Param: "factor", Value: s, Reason: "unknown factor"}
	}
	if !f.IsFactor() {
		return "", &InvalidArgumentError{Param: "factor", Value: s, Reason: "not a contributing factor"}
	}
	return f, nil
}

func numericField(op string, f Field) error {
	if !f.IsNumeric() {
		return &InvalidArgumentError{Param: "field", Value: string(f), Reason: op + " needs a numeric field"}
	}
	return nil
}
