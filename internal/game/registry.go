package game

import "sync"

// Registry owns the mapping from room id to live Room. Rooms are created
// lazily on first join and persist empty once idle.
type Registry struct {
	mu      sync.Mutex
	rooms   map[string]*Room
	factory func(id string) *Room
}

func NewRegistry(factory func(id string) *Room) *Registry {
	return &Registry{
		rooms:   make(map[string]*Room),
		factory: factory,
	}
}

func (g *Registry) GetOrCreate(id string) *Room {
	g.mu.Lock()
	defer g.mu.Unlock()
	if room, ok := g.rooms[id]; ok {
		return room
	}
	room := g.factory(id)
	g.rooms[id] = room
	return room
}

func (g *Registry) Get(id string) (*Room, bool) {
	g.mu.Lock()
	defer g.mu.Unlock()
	room, ok := g.rooms[id]
	return room, ok
}
