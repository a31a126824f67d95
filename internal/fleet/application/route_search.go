package application

import (
	"strings"

	"github.com/mateusmacedo/go-fleet/internal/fleet/domain"
)

// RouteFilter busca rotas sem diferenciar maiúsculas; campos vazios não filtram.
type RouteFilter struct {
	Origin      string
	Destination string
	Stop        string
}

func (f RouteFilter) Matches(r domain.Route) bool {
	if f.Origin != "" && !strings.EqualFold(strings.TrimSpace(f.Origin), r.Origin) {
		return false
	}
	if f.Destination != "" && !strings.EqualFold(strings.TrimSpace(f.Destination), r.Destination) {
		return false
	}
	if f.Stop != "" && !r.HasStop(f.Stop) {
		return false
	}
	return true
}
