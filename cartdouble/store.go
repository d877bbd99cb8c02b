package cartdouble

import (
	"sort"
	"sync"

	"github.com/deliveryqa/cart-contract-tests/servicedef"
)

// SeededCarts is the number of carts that exist before anything is created, with ids
// 1..SeededCarts.
const SeededCarts = 5

// Store holds the double's carts in memory.
type Store struct {
	mu     sync.Mutex
	carts  map[int]servicedef.Cart
	nextID int
}

// NewStore creates a store holding the seeded carts.
func NewStore() *Store {
	s := &Store{carts: make(map[int]servicedef.Cart), nextID: SeededCarts + 1}
	for id := 1; id <= SeededCarts; id++ {
		s.carts[id] = withTotals(servicedef.Cart{
			ID:     id,
			UserID: id * 7,
			Products: []servicedef.CartProduct{
				productLine(id*3, 1+id%3, nil),
				productLine(id*3+1, 2, nil),
				productLine(id*3+2, 1, nil),
			},
		})
	}
	return s
}

func (s *Store) Get(id int) (servicedef.Cart, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	c, ok := s.carts[id]
	return copyCart(c), ok
}

// Create assigns the next id to c and stores it.
func (s *Store) Create(c servicedef.Cart) servicedef.Cart {
	s.mu.Lock()
	defer s.mu.Unlock()
	c.ID = s.nextID
	s.nextID++
	c = withTotals(c)
	s.carts[c.ID] = copyCart(c)
	return c
}

// Put replaces a cart that already exists.
func (s *Store) Put(c servicedef.Cart) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.carts[c.ID]; !ok {
		return false
	}
	s.carts[c.ID] = copyCart(c)
	return true
}

func (s *Store) Delete(id int) (servicedef.Cart, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	c, ok := s.carts[id]
	delete(s.carts, id)
	return c, ok
}

// IDs returns the ids of every stored cart in ascending order.
func (s *Store) IDs() []int {
	s.mu.Lock()
	defer s.mu.Unlock()
	ids := make([]int, 0, len(s.carts))
	for id := range s.carts {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	return ids
}

func copyCart(c servicedef.Cart) servicedef.Cart {
	c.Products = append([]servicedef.CartProduct(nil), c.Products...)
	if c.Products == nil {
		c.Products = []servicedef.CartProduct{}
	}
	return c
}
