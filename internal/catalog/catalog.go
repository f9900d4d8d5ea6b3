// Package catalog defines the fixed credit packages that can be purchased.
package catalog

import (
	"fmt"
	"strconv"
)

// Package is one purchasable credit tier with its fixed prices.
type Package struct {
	Credits  int
	PriceKHR float64
	PriceUSD float64
}

// Packages maps the package identifier sent by clients to its tier.
// The key equals the credit amount as a string.
var Packages = map[string]Package{
	"20":  {Credits: 20, PriceKHR: 2000, PriceUSD: 0.50},
	"50":  {Credits: 50, PriceKHR: 4500, PriceUSD: 1.10},
	"100": {Credits: 100, PriceKHR: 8000, PriceUSD: 2.00},
}

// Get returns the package for the given identifier.
func Get(id string) (Package, bool) {
	p, ok := Packages[id]
	return p, ok
}

// Price returns the charged amount for the given currency.
func (p Package) Price(currency string) float64 {
	if currency == "USD" {
		return p.PriceUSD
	}
	return p.PriceKHR
}

// Validate checks the catalog shape at startup: every key must match its
// credit amount and every price must be positive.
func Validate() error {
	if len(Packages) == 0 {
		return fmt.Errorf("catalog is empty")
	}
	for id, p := range Packages {
		if p.Credits <= 0 {
			return fmt.Errorf("package %q: credits must be positive", id)
		}
		if id != strconv.Itoa(p.Credits) {
			return fmt.Errorf("package %q: key does not match credits %d", id, p.Credits)
		}
		if p.PriceKHR <= 0 || p.PriceUSD <= 0 {
			return fmt.Errorf("package %q: prices must be positive", id)
		}
	}
	return nil
}
