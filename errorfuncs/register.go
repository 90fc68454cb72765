package errorfuncs

import (
	"sort"
	"sync"

	"github.com/pkg/errors"
	"gonum.org/v1/gonum/mat"
)

// Func is an error function between a reference and an estimate.
type Func func(ref, new mat.Matrix) (float64, error)

var (
	ErrRegisterDuplicate = errors.New("error function already registered")
	ErrUnknown           = errors.New("unknown error function")
)

var (
	registry   = make(map[string]Func)
	registryMu sync.RWMutex
)

func init() {
	list := map[string]Func{
		"anae": ANAE,
		"naae": NAAE,
	}

	for s, f := range list {
		if err := Register(s, f); err != nil {
			panic(err.Error())
		}
	}
}

// Register makes an error function available by name.
func Register(name string, f Func) error {
	if f == nil {
		return errors.Errorf("error function %q is nil", name)
	}
	registryMu.Lock()
	defer registryMu.Unlock()
	if _, ok := registry[name]; ok {
		return errors.Wrapf(ErrRegisterDuplicate, "%q", name)
	}
	registry[name] = f
	return nil
}

// Get returns the error function registered under name.
func Get(name string) (Func, error) {
	registryMu.RLock()
	defer registryMu.RUnlock()
	f, ok := registry[name]
	if !ok {
		return nil, errors.Wrapf(ErrUnknown, "%q", name)
	}
	return f, nil
}

// Names lists the registered error functions in alphabetical order.
func Names() []string {
	registryMu.RLock()
	defer registryMu.RUnlock()
	res := make([]string, 0, len(registry))
	for name := range registry {
		res = append(res, name)
	}
	sort.Strings(res)
	return res
}
