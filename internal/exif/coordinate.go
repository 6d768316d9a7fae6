package exif

// DMSToDecimal combines three rational components (degrees, minutes,
// seconds) and a hemisphere marker into a signed decimal-degree value.
//
// Fewer than three components, or any component failing ParseRational,
// fails the whole coordinate. The result is negated only when ref is
// exactly "S" or "W"; any other marker, including an absent one, leaves
// the value positive. Out-of-range results are passed through unchanged,
// bounds are the caller's concern.
func DMSToDecimal(components []any, ref string) (float64, bool) {
	if len(components) < 3 {
		return 0, false
	}

	degrees, ok := ParseRational(components[0])
	if !ok {
		return 0, false
	}
	minutes, ok := ParseRational(components[1])
	if !ok {
		return 0, false
	}
	seconds, ok := ParseRational(components[2])
	if !ok {
		return 0, false
	}

	decimal := degrees + minutes/60 + seconds/3600

	if ref == "S" || ref == "W" {
		return -decimal, true
	}

	return decimal, true
}
