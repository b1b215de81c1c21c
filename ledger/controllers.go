package ledger

import (
	"bytes"
	"sort"

	"github.com/ethereum/go-ethereum/common"
)

// Controllers is the list of addresses allowed to run privileged operations.
// Not thread safe!
type Controllers struct {
	set map[common.Address]struct{}
}

func NewControllers(addrs ...common.Address) *Controllers {
	c := &Controllers{
		set: make(map[common.Address]struct{}, len(addrs)),
	}
	for _, a := range addrs {
		c.set[a] = struct{}{}
	}
	return c
}

func (c *Controllers) IsController(addr common.Address) bool {
	_, ok := c.set[addr]
	return ok
}

// Add returns false if the address was already a controller
func (c *Controllers) Add(addr common.Address) bool {
	if _, ok := c.set[addr]; ok {
		return false
	}
	c.set[addr] = struct{}{}
	return true
}

// Remove returns false if the address was not a controller
func (c *Controllers) Remove(addr common.Address) bool {
	if _, ok := c.set[addr]; !ok {
		return false
	}
	delete(c.set, addr)
	return true
}

func (c *Controllers) Len() int {
	return len(c.set)
}

// List returns the controllers sorted by address
func (c *Controllers) List() []common.Address {
	res := make([]common.Address, 0, len(c.set))
	for a := range c.set {
		res = append(res, a)
	}
	sort.Slice(res, func(i, j int) bool {
		return bytes.Compare(res[i][:], res[j][:]) < 0
	})
	return res
}
