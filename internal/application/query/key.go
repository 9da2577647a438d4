package query

import (
	"strings"
	"time"
)

// Key clave de caché como tupla de strings, ej. {"invoice", id}.
type Key []string

// String forma canónica usada como índice del mapa y de singleflight.
func (k Key) String() string {
	return strings.Join(k, "\x1f")
}

// HasPrefix informa si p es prefijo (por elementos) de k.
func (k Key) HasPrefix(p Key) bool {
	if len(p) > len(k) {
		return false
	}
	for i := range p {
		if k[i] != p[i] {
			return false
		}
	}
	return true
}

// Tier nivel de frescura de una lectura.
type Tier int

const (
	TierShort Tier = iota
	TierMedium
	TierLong
)

// Tiers duraciones de cada nivel.
type Tiers struct {
	Short  time.Duration
	Medium time.Duration
	Long   time.Duration
}

// DefaultTiers 10s / 30s / 60s.
func DefaultTiers() Tiers {
	return Tiers{Short: 10 * time.Second, Medium: 30 * time.Second, Long: 60 * time.Second}
}

// Duration duración asociada a t.
func (t Tiers) Duration(tier Tier) time.Duration {
	switch tier {
	case TierShort:
		return t.Short
	case TierLong:
		return t.Long
	default:
		return t.Medium
	}
}
