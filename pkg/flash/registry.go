package flash

import (
	"fmt"
	"sort"
	"strconv"
	"sync"
)

// Declaration carries the arguments of a bank declaration: the generic fields
// handled by the framework followed by the driver-specific ones.
type Declaration struct {
	Name       string
	Driver     string
	Base       uint32
	Size       uint32
	ChipWidth  int
	BusWidth   int
	Target     string
	DriverArgs []string
}

// Registry owns declared banks and the driver factories they are built with.
type Registry struct {
	mu      sync.RWMutex
	drivers map[string]Factory
	banks   []*Bank
	nextID  int
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{drivers: make(map[string]Factory)}
}

// RegisterDriver makes a driver available to bank declarations under name.
func (r *Registry) RegisterDriver(name string, f Factory) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.drivers[name] = f
}

// Drivers returns the registered driver names in sorted order.
func (r *Registry) Drivers() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.drivers))
	for name := range r.drivers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Declare creates a bank and hands the driver arguments to the driver's
// factory. The bank is only added when the factory succeeds.
func (r *Registry) Declare(d Declaration) (*Bank, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	f, ok := r.drivers[d.Driver]
	if !ok {
		return nil, fmt.Errorf("%w: flash driver '%s' not found", ErrSyntax, d.Driver)
	}
	if d.Name != "" {
		for _, b := range r.banks {
			if b.Name == d.Name {
				return nil, fmt.Errorf("%w: flash bank '%s' already exists", ErrFail, d.Name)
			}
		}
	}
	b := &Bank{
		ID:          r.nextID,
		Name:        d.Name,
		DriverName:  d.Driver,
		Base:        d.Base,
		Size:        d.Size,
		ChipWidth:   d.ChipWidth,
		BusWidth:    d.BusWidth,
		Target:      d.Target,
		ErasedValue: 0xff,
	}
	drv, err := f(b, d.DriverArgs)
	if err != nil {
		return nil, fmt.Errorf("'%s' driver rejected flash bank at 0x%08x: %w", d.Driver, d.Base, err)
	}
	b.Driver = drv
	r.nextID++
	r.banks = append(r.banks, b)
	return b, nil
}

// Lookup finds a bank by name or by its numeric id.
func (r *Registry) Lookup(ref string) (*Bank, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, b := r.find(ref)
	if b == nil {
		return nil, fmt.Errorf("%w: flash bank '%s' not found", ErrSyntax, ref)
	}
	return b, nil
}

// LookupProbed finds a bank like Lookup and auto-probes it.
func (r *Registry) LookupProbed(ref string) (*Bank, error) {
	b, err := r.Lookup(ref)
	if err != nil {
		return nil, err
	}
	if err := b.Driver.AutoProbe(b); err != nil {
		return nil, fmt.Errorf("auto-probe bank %s: %w", b.Label(), err)
	}
	return b, nil
}

// Banks returns the declared banks in declaration order.
func (r *Registry) Banks() []*Bank {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return append([]*Bank(nil), r.banks...)
}

// Remove drops a bank together with its driver state.
func (r *Registry) Remove(ref string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	i, b := r.find(ref)
	if b == nil {
		return fmt.Errorf("%w: flash bank '%s' not found", ErrSyntax, ref)
	}
	b.Driver = nil
	b.Sectors = nil
	r.banks = append(r.banks[:i], r.banks[i+1:]...)
	return nil
}

func (r *Registry) find(ref string) (int, *Bank) {
	for i, b := range r.banks {
		if b.Name != "" && b.Name == ref {
			return i, b
		}
	}
	id, err := strconv.ParseUint(ref, 0, 31)
	if err != nil {
		return -1, nil
	}
	for i, b := range r.banks {
		if b.ID == int(id) {
			return i, b
		}
	}
	return -1, nil
}
