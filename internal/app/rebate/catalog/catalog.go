// Package catalog loads product and rebate definitions from YAML and
// seeds them into a store.
package catalog

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"

	"github.com/light-bringer/rebate-service/internal/app/rebate/domain"
)

var ErrDuplicateIdentifier = errors.New("duplicate identifier")

// Catalog is a validated set of definitions.
type Catalog struct {
	Products []*domain.Product
	Rebates  []domain.Rebate
}

type document struct {
	Products []productEntry `yaml:"products"`
	Rebates  []rebateEntry  `yaml:"rebates"`
}

type productEntry struct {
	Identifier          string   `yaml:"identifier"`
	Price               string   `yaml:"price"`
	Uom                 string   `yaml:"uom"`
	SupportedIncentives []string `yaml:"supported_incentives"`
}

type rebateEntry struct {
	Identifier string `yaml:"identifier"`
	Incentive  string `yaml:"incentive"`
	Amount     string `yaml:"amount"`
	Percentage string `yaml:"percentage"`
}

// Load reads a catalog file.
func Load(path string) (*Catalog, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read catalog %s: %w", path, err)
	}
	cat, err := Parse(bytes.NewReader(raw))
	if err != nil {
		return nil, fmt.Errorf("catalog %s: %w", path, err)
	}
	return cat, nil
}

// Parse decodes and validates a catalog document.
func Parse(r io.Reader) (*Catalog, error) {
	var doc document
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&doc); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("decode: %w", err)
	}

	cat := &Catalog{}
	seen := make(map[string]bool)
	for i, entry := range doc.Products {
		product, err := entry.toDomain()
		if err != nil {
			return nil, fmt.Errorf("products[%d]: %w", i, err)
		}
		if seen[product.Identifier()] {
			return nil, fmt.Errorf("products[%d]: %w: %s", i, ErrDuplicateIdentifier, product.Identifier())
		}
		seen[product.Identifier()] = true
		cat.Products = append(cat.Products, product)
	}

	seen = make(map[string]bool)
	for i, entry := range doc.Rebates {
		rebate, err := entry.toDomain()
		if err != nil {
			return nil, fmt.Errorf("rebates[%d]: %w", i, err)
		}
		if seen[rebate.Identifier()] {
			return nil, fmt.Errorf("rebates[%d]: %w: %s", i, ErrDuplicateIdentifier, rebate.Identifier())
		}
		seen[rebate.Identifier()] = true
		cat.Rebates = append(cat.Rebates, rebate)
	}

	return cat, nil
}

func (e productEntry) toDomain() (*domain.Product, error) {
	price, err := decimal.NewFromString(e.Price)
	if err != nil {
		return nil, fmt.Errorf("product %s price %q: %w", e.Identifier, e.Price, err)
	}

	types := make([]domain.IncentiveType, 0, len(e.SupportedIncentives))
	for _, name := range e.SupportedIncentives {
		t, err := domain.ParseIncentiveType(name)
		if err != nil {
			return nil, fmt.Errorf("product %s: %w", e.Identifier, err)
		}
		types = append(types, t)
	}
	supported, err := domain.NewSupportedIncentives(types...)
	if err != nil {
		return nil, err
	}

	return domain.NewProduct(e.Identifier, price, e.Uom, supported)
}

func (e rebateEntry) toDomain() (domain.Rebate, error) {
	incentive, err := domain.ParseIncentiveType(e.Incentive)
	if err != nil {
		return nil, fmt.Errorf("rebate %s: %w", e.Identifier, err)
	}
	amount, err := optionalDecimal(e.Amount)
	if err != nil {
		return nil, fmt.Errorf("rebate %s amount: %w", e.Identifier, err)
	}
	percentage, err := optionalDecimal(e.Percentage)
	if err != nil {
		return nil, fmt.Errorf("rebate %s percentage: %w", e.Identifier, err)
	}
	if e.Identifier == "" {
		return nil, domain.ErrEmptyIdentifier
	}

	return domain.ReconstructRebate(domain.RebateFields{
		Identifier: e.Identifier,
		Incentive:  incentive,
		Amount:     amount,
		Percentage: percentage,
	})
}

func optionalDecimal(s string) (decimal.NullDecimal, error) {
	if s == "" {
		return decimal.NullDecimal{}, nil
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.NullDecimal{}, fmt.Errorf("%q: %w", s, err)
	}
	return decimal.NewNullDecimal(d), nil
}
