package util

import (
	"sync"
)

// Cache holds the last published value of every vehicle parameter
type Cache struct {
	mu  sync.Mutex
	val map[string]map[string]Param
}

// NewCache creates cache
func NewCache() *Cache {
	return &Cache{
		val: make(map[string]map[string]Param),
	}
}

// Run adds input channel's values to cache
func (c *Cache) Run(in <-chan Param) {
	log := NewLogger("cache")

	for p := range in {
		log.DEBUG.Printf("%s %s: %v", p.Vehicle, p.Key, p.Val)
		c.Add(p)
	}
}

// Add stores a parameter under its vehicle
func (c *Cache) Add(p Param) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, ok := c.val[p.Vehicle]; !ok {
		c.val[p.Vehicle] = make(map[string]Param)
	}
	c.val[p.Vehicle][p.Key] = p
}

// State provides a copy of all vehicles' values
func (c *Cache) State() map[string]map[string]interface{} {
	c.mu.Lock()
	defer c.mu.Unlock()

	res := make(map[string]map[string]interface{}, len(c.val))
	for vehicle, params := range c.val {
		res[vehicle] = make(map[string]interface{}, len(params))
		for key, p := range params {
			res[vehicle][key] = p.Val
		}
	}

	return res
}

// Vehicle provides a copy of a single vehicle's values
func (c *Cache) Vehicle(vehicle string) map[string]interface{} {
	c.mu.Lock()
	defer c.mu.Unlock()

	res := make(map[string]interface{}, len(c.val[vehicle]))
	for key, p := range c.val[vehicle] {
		res[key] = p.Val
	}

	return res
}
