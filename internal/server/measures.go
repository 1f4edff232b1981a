package server

// allowedMeasures is the fixed set of measure_name values accepted by the
// county_data endpoint. The set mirrors the measures present in the
// County Health Rankings dataset; anything else is rejected with 400 even
// if it looks like a plausible measure.
var allowedMeasures = map[string]struct{}{
	"Violent crime rate":              {},
	"Unemployment":                    {},
	"Children in poverty":             {},
	"Diabetic screening":              {},
	"Mammography screening":           {},
	"Preventable hospital stays":      {},
	"Uninsured":                       {},
	"Sexually transmitted infections": {},
	"Physical inactivity":             {},
	"Adult obesity":                   {},
	"Premature Death":                 {},
	"Daily fine particulate matter":   {},
}

// isAllowedMeasure reports whether name is one of the recognized measures.
func isAllowedMeasure(name string) bool {
	_, ok := allowedMeasures[name]
	return ok
}
