package errx

import (
	"fmt"
	"sync"
)

type definition struct {
	typ     Type
	status  int
	message string
}

// Registry holds the error codes of one bounded context.
// Codes are namespaced with the registry prefix, e.g. APPLICATION_NOT_FOUND.
type Registry struct {
	prefix string

	mu   sync.RWMutex
	defs map[string]definition
}

// NewRegistry creates a registry for the given prefix
func NewRegistry(prefix string) *Registry {
	return &Registry{
		prefix: prefix,
		defs:   make(map[string]definition),
	}
}

// Register declares a code and returns its namespaced form
func (r *Registry) Register(code string, typ Type, httpStatus int, message string) string {
	full := r.prefix + "_" + code

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.defs[full]; exists {
		panic(fmt.Sprintf("errx: code %s registered twice", full))
	}
	r.defs[full] = definition{typ: typ, status: httpStatus, message: message}

	return full
}

// New builds a fresh error for a registered code
func (r *Registry) New(code string) *Error {
	r.mu.RLock()
	def, ok := r.defs[code]
	r.mu.RUnlock()

	if !ok {
		return New(code, TypeInternal, "unregistered error code")
	}

	return &Error{
		Code:       code,
		Type:       def.typ,
		Message:    def.message,
		HTTPStatus: def.status,
	}
}

// NewWithCause builds an error for a registered code with an underlying cause
func (r *Registry) NewWithCause(code string, cause error) *Error {
	return r.New(code).WithCause(cause)
}

// Prefix returns the registry namespace
func (r *Registry) Prefix() string {
	return r.prefix
}
