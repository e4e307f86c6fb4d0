package utils

import "strconv"

// FormatMiles renders a mileage amount with thousands separators.
// Example: 55000 -> "55,000"
func FormatMiles(miles int64) string {
	if miles == 0 {
		return "0"
	}

	negative := miles < 0
	if negative {
		miles = -miles
	}

	var result []byte
	str := strconv.FormatInt(miles, 10)

	count := 0
	for i := len(str) - 1; i >= 0; i-- {
		result = append([]byte{str[i]}, result...)
		count++
		if count%3 == 0 && i != 0 {
			result = append([]byte{','}, result...)
		}
	}

	if negative {
		return "-" + string(result)
	}
	return string(result)
}
