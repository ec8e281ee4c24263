package parser

import "strconv"

func parseNumberLiteral(lit string) float64 {
	n, err := strconv.ParseFloat(lit, 64)
	if err != nil {
		return 0
	}
	return n
}
