package models

import (
	"strings"
	"sync"
)

// Food is an item the user has at hand, optionally with a unit price.
type Food struct {
	Name  string  `json:"name"`
	Price float64 `json:"price,omitempty"`
}

// Pantry holds the foods loaded from disk. It is written by the file
// watcher and read by the plan agent, so access is guarded.
type Pantry struct {
	mu    sync.RWMutex
	foods []Food
}

func (p *Pantry) UpdateFoods(foods []Food) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.foods = append([]Food(nil), foods...)
}

func (p *Pantry) Foods() []Food {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return append([]Food(nil), p.foods...)
}

// Names joins the food names into a comma separated list.
func (p *Pantry) Names() string {
	foods := p.Foods()
	names := make([]string, 0, len(foods))
	for _, f := range foods {
		names = append(names, f.Name)
	}
	return strings.Join(names, ", ")
}
