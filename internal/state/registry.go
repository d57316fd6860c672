package state

import (
	"bytes"
	"errors"
	"fmt"

	"github.com/NilFoundation/energyctl/internal/types"
	"github.com/naoina/toml"
)

var (
	ErrNoContractDeployed = errors.New("no known contract, deploy first")
	ErrCorruptState       = errors.New("corrupt state record")
)

type record struct {
	ContractAddress string `toml:"contract_address"`
}

// Registry remembers which contract instance the client talks to.
type Registry struct {
	storage Storage
	address *types.Address
}

// Load reads the record from storage. A missing record yields an empty registry.
func Load(storage Storage) (*Registry, error) {
	r := &Registry{storage: storage}

	data, err := storage.Read()
	if errors.Is(err, ErrNotFound) {
		return r, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read state: %w", err)
	}

	if len(bytes.TrimSpace(data)) == 0 {
		return r, nil
	}

	var rec record
	if err := toml.Unmarshal(data, &rec); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrCorruptState, err)
	}
	if rec.ContractAddress != "" {
		addr, err := types.ParseAddress(rec.ContractAddress)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrCorruptState, err)
		}
		r.address = &addr
	}
	return r, nil
}

func (r *Registry) SetAddress(addr types.Address) {
	r.address = &addr
}

func (r *Registry) CurrentAddress() (types.Address, error) {
	if r.address == nil {
		return types.EmptyAddress, ErrNoContractDeployed
	}
	return *r.address, nil
}

func (r *Registry) HasAddress() bool {
	return r.address != nil
}

// Persist writes the full record, replacing whatever the storage held.
func (r *Registry) Persist() error {
	var data []byte
	if r.address != nil {
		var err error
		data, err = toml.Marshal(&record{ContractAddress: r.address.String()})
		if err != nil {
			return fmt.Errorf("failed to encode state: %w", err)
		}
	}
	if err := r.storage.Write(data); err != nil {
		return fmt.Errorf("failed to persist state: %w", err)
	}
	return nil
}

// Run loads the registry, runs fn and persists the registry on every exit path of fn,
// including a panic, which is re-raised after the record is written.
// The persist error, if any, is joined with the error returned by fn.
func Run(storage Storage, fn func(*Registry) error) (err error) {
	r, err := Load(storage)
	if err != nil {
		return err
	}

	defer func() {
		persistErr := r.Persist()
		if p := recover(); p != nil {
			panic(p)
		}
		err = errors.Join(err, persistErr)
	}()

	return fn(r)
}
