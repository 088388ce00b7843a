package client

import (
	"fmt"
	"regexp"
	"strings"
)

// tickerPattern matches what the backend accepts for tracked symbols.
var tickerPattern = regexp.MustCompile(`^[A-Z0-9]{1,6}$`)

// ValidateTicker normalizes and validates a ticker symbol.
// Returns the uppercased ticker or an error suitable for display.
func ValidateTicker(ticker string) (string, error) {
	ticker = strings.ToUpper(strings.TrimSpace(ticker))
	if !tickerPattern.MatchString(ticker) {
		return "", fmt.Errorf("ticker must be 1-6 alphanumeric characters")
	}
	return ticker, nil
}
