package utils

import "math"

// Round4 rounds to the 4-decimal precision checklist scores are stored at.
func Round4(v float64) float64 {
    return math.Round(v*10000) / 10000
}
