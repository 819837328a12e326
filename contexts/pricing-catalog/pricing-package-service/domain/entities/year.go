package entities

import (
	"strconv"

	domainerrors "venuenouveau/contexts/pricing-catalog/pricing-package-service/domain/errors"
)

// Year is the catalog year a pricing package applies to, e.g. 2025.
type Year struct {
	YearID string
	Year   int
}

func NewYear(yearID string, value int) (Year, error) {
	if yearID == "" || value < 1900 || value > 9999 {
		return Year{}, domainerrors.ErrInvalidYear
	}
	return Year{YearID: yearID, Year: value}, nil
}

func (y Year) String() string {
	return strconv.Itoa(y.Year)
}
