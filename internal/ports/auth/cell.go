package auth

import "sync"

// Listener recibe cada cambio de sesión. s es nil tras SIGNED_OUT.
type Listener func(ev Event, s *Session)

// Cell guarda la sesión actual. Solo el Manager la modifica; el resto lee
// con Current o se suscribe.
type Cell struct {
	mu      sync.RWMutex
	current *Session
	nextID  int
	subs    []subscription
}

type subscription struct {
	id int
	fn Listener
}

func newCell(initial *Session) *Cell {
	c := &Cell{}
	if initial != nil {
		s := *initial
		c.current = &s
	}
	return c
}

// Current devuelve una copia de la sesión vigente.
func (c *Cell) Current() (Session, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if c.current == nil {
		return Session{}, false
	}
	return *c.current, true
}

// Subscribe registra un listener y devuelve la función para desuscribirse.
// Desuscribirse dos veces no hace nada.
func (c *Cell) Subscribe(fn Listener) (unsubscribe func()) {
	if fn == nil {
		return func() {}
	}

	c.mu.Lock()
	c.nextID++
	id := c.nextID
	c.subs = append(c.subs, subscription{id: id, fn: fn})
	c.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			c.mu.Lock()
			defer c.mu.Unlock()
			for i, s := range c.subs {
				if s.id == id {
					c.subs = append(c.subs[:i], c.subs[i+1:]...)
					return
				}
			}
		})
	}
}

// publish reemplaza la sesión y notifica fuera del lock, en orden de suscripción.
func (c *Cell) publish(ev Event, s *Session) {
	c.mu.Lock()
	if s == nil {
		c.current = nil
	} else {
		cp := *s
		c.current = &cp
	}
	subs := make([]subscription, len(c.subs))
	copy(subs, c.subs)
	c.mu.Unlock()

	for _, sub := range subs {
		if s == nil {
			sub.fn(ev, nil)
			continue
		}
		cp := *s
		sub.fn(ev, &cp)
	}
}
