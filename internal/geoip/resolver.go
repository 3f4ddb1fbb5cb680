package geoip

import (
	"fmt"
	"net"
	"os"
	"sync"

	"github.com/oschwald/geoip2-golang"
)

const (
	databasePathEnv     = "GEOLITE_COUNTRY_DB"
	defaultDatabasePath = "data/geolite/GeoLite2-Country.mmdb"
)

// Resolver answers country lookups from a GeoLite2-Country database. A nil
// resolver is valid and answers every lookup with an empty string, so callers
// can treat geo enrichment as strictly optional.
type Resolver struct {
	mu     sync.RWMutex
	reader *geoip2.Reader
}

// Open loads the country database from path, falling back to the
// GEOLITE_COUNTRY_DB environment variable and then the default data path.
func Open(path string) (*Resolver, error) {
	if path == "" {
		path = os.Getenv(databasePathEnv)
	}
	if path == "" {
		path = defaultDatabasePath
	}

	reader, err := geoip2.Open(path)
	if err != nil {
		return nil, fmt.Errorf("geoip: open %s: %w", path, err)
	}

	return &Resolver{reader: reader}, nil
}

// Country returns the ISO country code for ip, or "" when the resolver is
// absent, the address does not parse, or the database has no record.
func (r *Resolver) Country(ip string) string {
	if r == nil {
		return ""
	}

	parsed := net.ParseIP(ip)
	if parsed == nil {
		return ""
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	if r.reader == nil {
		return ""
	}

	record, err := r.reader.Country(parsed)
	if err != nil || record == nil {
		return ""
	}
	return record.Country.IsoCode
}

func (r *Resolver) Close() error {
	if r == nil {
		return nil
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if r.reader == nil {
		return nil
	}
	err := r.reader.Close()
	r.reader = nil
	return err
}
