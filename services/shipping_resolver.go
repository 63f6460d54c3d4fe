package services

import (
	"context"
	"errors"

	apperrors "storefront-service/common/errors"
	"storefront-service/repository"

	"github.com/shopspring/decimal"
)

// townshipZoneTable maps known townships to named zone keys. Townships not
// listed here fall through to state/region rules and then the fallback rule.
var townshipZoneTable = map[string]string{
	// Yangon inner townships
	"Sanchaung":            "yangon-inner",
	"Kamayut":              "yangon-inner",
	"Bahan":                "yangon-inner",
	"Hlaing":               "yangon-inner",
	"Tamwe":                "yangon-inner",
	"Mayangone":            "yangon-inner",
	"Yankin":               "yangon-inner",
	"Ahlone":               "yangon-inner",
	"Dagon":                "yangon-inner",
	"Latha":                "yangon-inner",
	"Pabedan":              "yangon-inner",
	"Kyauktada":            "yangon-inner",
	"Botahtaung":           "yangon-inner",
	"Mingalar Taung Nyunt": "yangon-inner",

	// Yangon outer townships
	"Insein":         "yangon-outer",
	"Mingaladon":     "yangon-outer",
	"North Okkalapa": "yangon-outer",
	"South Okkalapa": "yangon-outer",
	"Thingangyun":    "yangon-outer",
	"Thaketa":        "yangon-outer",
	"Dawbon":         "yangon-outer",
	"North Dagon":    "yangon-outer",
	"South Dagon":    "yangon-outer",
	"Shwepyitha":     "yangon-outer",
	"Hlaingthaya":    "yangon-outer",
	"Thanlyin":       "yangon-outer",

	// Mandalay
	"Chanayethazan": "mandalay",
	"Chanmyathazi":  "mandalay",
	"Aungmyethazan": "mandalay",
	"Mahaaungmye":   "mandalay",
	"Pyigyidagun":   "mandalay",
	"Amarapura":     "mandalay",

	// Naypyitaw
	"Zabuthiri":   "naypyitaw",
	"Ottarathiri": "naypyitaw",
	"Pobbathiri":  "naypyitaw",
}

// ResolvedShipping is the zone snapshot written onto the order; later rule
// edits must not change past orders.
type ResolvedShipping struct {
	ZoneKey   string          `json:"zone_key"`
	ZoneLabel string          `json:"zone_label"`
	ETALabel  string          `json:"eta_label"`
	Fee       decimal.Decimal `json:"fee"`
}

// ResolveShippingZone maps a delivery address to a fee-bearing zone. First
// active match wins: exact township rule, rule for the table-derived zone
// key, state/region rule with no township restriction, then the active
// fallback rule.
func ResolveShippingZone(ctx context.Context, rules repository.ShippingRuleRepository, country, stateRegion, townshipCity string, subtotal decimal.Decimal) (*ResolvedShipping, error) {
	rule, err := rules.FindActiveByTownship(ctx, townshipCity)
	if err != nil && !errors.Is(err, repository.ErrNotFound) {
		return nil, err
	}

	if rule == nil {
		if zoneKey, ok := townshipZoneTable[townshipCity]; ok {
			rule, err = rules.FindActiveByZoneKey(ctx, zoneKey)
			if err != nil && !errors.Is(err, repository.ErrNotFound) {
				return nil, err
			}
		}
	}

	if rule == nil {
		rule, err = rules.FindActiveByStateRegion(ctx, stateRegion)
		if err != nil && !errors.Is(err, repository.ErrNotFound) {
			return nil, err
		}
	}

	if rule == nil {
		rule, err = rules.FindActiveFallback(ctx)
		if err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return nil, apperrors.ErrShippingRuleUnavailable
			}
			return nil, err
		}
	}

	return &ResolvedShipping{
		ZoneKey:   rule.ZoneKey,
		ZoneLabel: rule.ZoneLabel,
		ETALabel:  rule.ETALabel,
		Fee:       rule.FeeFor(subtotal),
	}, nil
}

// ValidateShippingConfig checks the invariant that makes checkout always
// resolvable: one active fallback rule must exist.
func ValidateShippingConfig(ctx context.Context, rules repository.ShippingRuleRepository) error {
	if _, err := rules.FindActiveFallback(ctx); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return apperrors.ErrFallbackRuleRequired
		}
		return err
	}
	return nil
}
