package extract

// Extract runs the whole pipeline over raw text: Normalize → Parse →
// Validate. Valid records come back in source order; report is nil when
// every candidate passed.
func Extract(raw string, pol Policy) ([]Question, *Report) {
	return Validate(Parse(Normalize(raw)), pol)
}
