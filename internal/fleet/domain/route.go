package domain

import "strings"

// StopSeparator separa as paradas principais na linha persistida.
const StopSeparator = "|"

type Route struct {
	ID                  string   `json:"id" validate:"required,excludesall=0x2C\r\n"`
	Origin              string   `json:"origin" validate:"required,excludesall=0x2C\r\n"`
	Destination         string   `json:"destination" validate:"required,nefield=Origin,excludesall=0x2C\r\n"`
	KeyStops            []string `json:"keyStops" validate:"dive,excludesall=0x2C0x7C\r\n"`
	EstimatedTravelTime int      `json:"estimatedTravelTime" validate:"gt=0"`
}

func (r Route) Key() string {
	return r.ID
}

func (r Route) StopsString() string {
	return strings.Join(r.KeyStops, StopSeparator)
}

// HasStop compara sem diferenciar maiúsculas, como as demais buscas de passageiro.
func (r Route) HasStop(stop string) bool {
	stop = strings.TrimSpace(stop)
	for _, s := range r.KeyStops {
		if strings.EqualFold(s, stop) {
			return true
		}
	}
	return false
}

// ParseStops quebra o campo de paradas; campo vazio resulta em lista vazia.
func ParseStops(field string) []string {
	if field == "" {
		return []string{}
	}
	return strings.Split(field, StopSeparator)
}
