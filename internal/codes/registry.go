package codes

import (
	"errors"
	"fmt"
	"sort"
	"sync"
)

// ErrDuplicateCode is wrapped by every collision reported by Check.
var ErrDuplicateCode = errors.New("duplicate code")

// Registry is the read-only catalog lookup built once at startup.
// It is safe for concurrent use because nothing mutates it after NewRegistry.
type Registry struct {
	codes      []Code
	byName     map[string]Code
	byValue    map[int]Code
	exceptions map[string]Code
	aliases    map[string]Code
}

// Check walks the list in order and reports every entry whose value or name
// was already taken by an earlier entry.
func Check(list []Code) []error {
	var errs []error
	values := make(map[int]Code, len(list))
	names := make(map[string]Code, len(list))

	for _, c := range list {
		if prev, ok := values[c.value]; ok {
			errs = append(errs, fmt.Errorf(
				"%w: Code %q = %d is already presented in codes (%s). Please, choose another code value.",
				ErrDuplicateCode, c.name, c.value, prev.name,
			))
		} else {
			values[c.value] = c
		}
		if prev, ok := names[c.name]; ok {
			errs = append(errs, fmt.Errorf(
				"%w: Code name %q is used by both %d and %d. Please, choose another code name.",
				ErrDuplicateCode, c.name, prev.value, c.value,
			))
		} else {
			names[c.name] = c
		}
	}
	return errs
}

// NewRegistry validates list and builds the lookup tables. Exception names
// extend the implicit name lookup; aliases drive validation resolution.
func NewRegistry(list []Code, exceptions, aliases map[string]Code) (*Registry, error) {
	if errs := Check(list); len(errs) > 0 {
		return nil, errors.Join(errs...)
	}

	r := &Registry{
		codes:      append([]Code(nil), list...),
		byName:     make(map[string]Code, len(list)),
		byValue:    make(map[int]Code, len(list)),
		exceptions: make(map[string]Code, len(list)+len(exceptions)),
		aliases:    make(map[string]Code, len(aliases)),
	}
	for _, c := range list {
		r.byName[c.name] = c
		r.byValue[c.value] = c
		r.exceptions[c.name] = c
	}
	for name, c := range exceptions {
		r.exceptions[name] = c
	}
	for alias, c := range aliases {
		r.aliases[alias] = c
	}
	return r, nil
}

// MustRegistry is NewRegistry for package-level initialisation.
func MustRegistry(list []Code, exceptions, aliases map[string]Code) *Registry {
	r, err := NewRegistry(list, exceptions, aliases)
	if err != nil {
		panic(err)
	}
	return r
}

var defaultRegistry = sync.OnceValue(func() *Registry {
	return MustRegistry(All(), ExceptionNames(), ValidationAliases())
})

// Default returns the registry built from the shipped catalog.
func Default() *Registry { return defaultRegistry() }

// Codes returns the registered codes in registration order.
func (r *Registry) Codes() []Code {
	return append([]Code(nil), r.codes...)
}

// ByName looks a code up by its symbolic name.
func (r *Registry) ByName(name string) (Code, bool) {
	c, ok := r.byName[name]
	return c, ok
}

// ByValue looks a code up by its numeric value.
func (r *Registry) ByValue(value int) (Code, bool) {
	c, ok := r.byValue[value]
	return c, ok
}

// ByExceptionName maps an error name to its code, falling back to APIError.
func (r *Registry) ByExceptionName(name string) Code {
	if c, ok := r.exceptions[name]; ok {
		return c
	}
	return APIError
}

// ByValidationAlias maps a validation alias to its code, falling back to
// ValidationError.
func (r *Registry) ByValidationAlias(alias string) Code {
	if c, ok := r.aliases[alias]; ok {
		return c
	}
	return ValidationError
}

// Aliases returns the registered validation aliases, sorted.
func (r *Registry) Aliases() []string {
	out := make([]string, 0, len(r.aliases))
	for alias := range r.aliases {
		out = append(out, alias)
	}
	sort.Strings(out)
	return out
}
