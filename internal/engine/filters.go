package engine

// FilterByYear keeps rows with the given year, in view order.
func FilterByYear(v View, year int) View {
	y := int32(year)
	return v.where(func(row int) bool { return v.ds.Years[row] == y })
}

// FilterByCountry keeps rows for one country. Matching is exact.
func FilterByCountry(v View, country string) View {
	return v.where(func(row int) bool { return v.ds.Countries[row] == country })
}

// FilterByCountries keeps rows whose country is in the set.
// An empty set yields an empty view.
func FilterByCountries(v View, countries []string) View {
	set := make(map[string]bool, len(countries))
	for _, c := range countries {
		set[c] = true
	}
	return v.where(func(row int) bool { return set[v.ds.Countries[row]] })
}
