package geo

import (
	"context"
	"net"

	"github.com/gofiber/fiber/v2/log"
)

// Resolver turns a client IP into a supported country code. It never fails:
// lookup errors and unsupported countries resolve to DefaultCountry.
type Resolver struct {
	locator Locator
	cache   Cache
}

// NewResolver creates a resolver. cache may be nil.
func NewResolver(locator Locator, cache Cache) *Resolver {
	return &Resolver{locator: locator, cache: cache}
}

func (r *Resolver) Resolve(ctx context.Context, ip string) string {
	if r == nil || r.locator == nil || net.ParseIP(ip) == nil {
		return DefaultCountry
	}

	if r.cache != nil {
		country, ok, err := r.cache.Get(ctx, ip)
		if err != nil {
			log.Warnf("[Geo] cache read failed for %s: %v", ip, err)
		} else if ok && IsSupported(country) {
			return country
		}
	}

	code, err := r.locator.Lookup(ctx, ip)
	if err != nil {
		log.Warnf("[Geo] lookup failed for %s, using %s: %v", ip, DefaultCountry, err)
		return DefaultCountry
	}

	country := Normalize(code)
	if !IsSupported(country) {
		log.Debugf("[Geo] %s resolved to unsupported country %q, using %s", ip, code, DefaultCountry)
		country = DefaultCountry
	}

	// only answers from the service are cached; failures are retried on the next request
	if r.cache != nil {
		if err := r.cache.Set(ctx, ip, country); err != nil {
			log.Warnf("[Geo] cache write failed for %s: %v", ip, err)
		}
	}
	return country
}
