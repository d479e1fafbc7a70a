package chain

import (
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/ethereum/go-ethereum/accounts/abi"
)

var ErrUnknownContract = errors.New("contract not registered")
var ErrUndecodablePayload = errors.New("payload does not match registered interface")

// Registry maps contract addresses to their registered interfaces and decodes
// call payloads against them. Addresses are compared case-insensitively.
type Registry struct {
	mu        sync.RWMutex
	contracts map[string]contractEntry
}

type contractEntry struct {
	name string
	abi  abi.ABI
}

func NewRegistry() *Registry {
	return &Registry{
		contracts: make(map[string]contractEntry),
	}
}

// Register parses the given ABI JSON and associates it with the address.
// Registering an address again replaces the previous interface.
func (r *Registry) Register(address, name, abiJSON string) error {
	parsed, err := abi.JSON(strings.NewReader(abiJSON))
	if err != nil {
		return fmt.Errorf("parse abi for %q: %w", name, err)
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.contracts[normalizeAddress(address)] = contractEntry{
		name: name,
		abi:  parsed,
	}
	return nil
}

// Known reports whether an interface is registered for the address.
func (r *Registry) Known(address string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.contracts[normalizeAddress(address)]
	return ok
}

// Decode resolves the payload's method selector against the address's
// registered interface and unpacks the call arguments in declaration order.
func (r *Registry) Decode(address string, payload []byte) (*DecodedCall, error) {
	r.mu.RLock()
	entry, ok := r.contracts[normalizeAddress(address)]
	r.mu.RUnlock()

	if !ok {
		return nil, ErrUnknownContract
	}
	if len(payload) < 4 {
		return nil, fmt.Errorf("%w: payload too short", ErrUndecodablePayload)
	}

	method, err := entry.abi.MethodById(payload[:4])
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrUndecodablePayload, err)
	}

	args, err := method.Inputs.UnpackValues(payload[4:])
	if err != nil {
		return nil, fmt.Errorf("unpack arguments of %q: %w", method.Name, err)
	}

	return &DecodedCall{
		Method: method.Name,
		Args:   args,
	}, nil
}

func normalizeAddress(address string) string {
	return strings.ToLower(address)
}
