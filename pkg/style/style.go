// Package style resolves the reply style, strategy and length for a domain
package style

import "github.com/umputun/replyscope/pkg/domain"

// Resolve returns the style for domainID. The domain default (general default for unknown ids)
// is the base, non-empty fields of the domain override replace it field by field.
func Resolve(domainID string, overrides, defaults map[string]domain.DomainStyle) domain.DomainStyle {
	res, ok := defaults[domainID]
	if !ok {
		res = defaults[domain.GeneralDomain]
	}
	return Merge(res, overrides[domainID])
}

// Merge applies non-empty fields of override over base
func Merge(base, override domain.DomainStyle) domain.DomainStyle {
	if override.Style != "" {
		base.Style = override.Style
	}
	if override.Strategy != "" {
		base.Strategy = override.Strategy
	}
	if override.Length != "" {
		base.Length = override.Length
	}
	return base
}
