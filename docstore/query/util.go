package query

import "fmt"

// valueToString normalizes a value for comparison. Numbers written as
// Go ints and numbers read back from JSON as float64 must compare
// equal, and %v renders both 5 and float64(5) as "5".
func valueToString(value any) string {
	if value == nil {
		return ""
	}
	if s, ok := value.(string); ok {
		return s
	}
	return fmt.Sprintf("%v", value)
}
