package listings

import (
	"math"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/jonathan/jobhunt/internal/types"
)

// DefaultCurrency is used when a provider omits the salary currency.
const DefaultCurrency = "USD"

var salaryPrinter = message.NewPrinter(language.English)

// FormatSalary renders salary bounds with thousands separators. A nil or
// non-positive bound counts as absent. Fractional amounts are rounded to
// whole units.
func FormatSalary(minSalary, maxSalary *float64, currency string) string {
	if currency == "" {
		currency = DefaultCurrency
	}
	hasMin := minSalary != nil && *minSalary > 0
	hasMax := maxSalary != nil && *maxSalary > 0

	switch {
	case hasMin && hasMax:
		return salaryPrinter.Sprintf("%s %d - %d", currency, whole(*minSalary), whole(*maxSalary))
	case hasMin:
		return salaryPrinter.Sprintf("%s %d+", currency, whole(*minSalary))
	case hasMax:
		return salaryPrinter.Sprintf("Up to %s %d", currency, whole(*maxSalary))
	default:
		return types.SalaryNotSpecified
	}
}

func whole(v float64) int64 {
	return int64(math.Round(v))
}
