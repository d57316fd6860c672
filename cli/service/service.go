package service

import (
	"sync/atomic"
	"time"

	"github.com/NilFoundation/energyctl/client"
	"github.com/NilFoundation/energyctl/common/logging"
	"github.com/NilFoundation/energyctl/internal/contracts"
	"github.com/NilFoundation/energyctl/internal/state"
	"github.com/NilFoundation/energyctl/internal/types"
	"github.com/NilFoundation/energyctl/internal/wallet"
	"github.com/rs/zerolog"
)

const (
	ReceiptWaitFor  = 2 * time.Minute
	ReceiptWaitTick = time.Second
)

// State is the dispatcher lifecycle: Idle between commands, Executing while one runs.
type State uint32

const (
	StateIdle State = iota
	StateExecuting
)

func (s State) String() string {
	if s == StateExecuting {
		return "executing"
	}
	return "idle"
}

// CodeLoader provides the contract bytecode for deploy.
type CodeLoader func() (*contracts.Artifact, error)

type Service struct {
	client   client.Client
	wallet   *wallet.Wallet
	registry *state.Registry
	args     ArgSource
	code     CodeLoader
	metadata types.CodeMetadata
	gasPrice uint64
	gasLimit uint64
	waitFor  time.Duration
	waitTick time.Duration
	state    atomic.Uint32
	logger   zerolog.Logger
}

type Option func(*Service)

func WithCodeLoader(loader CodeLoader) Option {
	return func(s *Service) {
		s.code = loader
	}
}

func WithCodeMetadata(metadata types.CodeMetadata) Option {
	return func(s *Service) {
		s.metadata = metadata
	}
}

// WithGasPrice sets the gas price; the network minimum is used when it is lower.
func WithGasPrice(gasPrice uint64) Option {
	return func(s *Service) {
		s.gasPrice = gasPrice
	}
}

// WithGasLimit overrides the execution gas of every transaction.
func WithGasLimit(gasLimit uint64) Option {
	return func(s *Service) {
		s.gasLimit = gasLimit
	}
}

func WithReceiptWait(waitFor, tick time.Duration) Option {
	return func(s *Service) {
		s.waitFor = waitFor
		s.waitTick = tick
	}
}

// NewService initializes a new Service with the given client
func NewService(c client.Client, w *wallet.Wallet, registry *state.Registry, args ArgSource, opts ...Option) *Service {
	s := &Service{
		client:   c,
		wallet:   w,
		registry: registry,
		args:     args,
		code:     defaultCodeLoader,
		metadata: types.DefaultCodeMetadata,
		waitFor:  ReceiptWaitFor,
		waitTick: ReceiptWaitTick,
		logger:   logging.NewLogger("cliService"),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func defaultCodeLoader() (*contracts.Artifact, error) {
	return contracts.LoadArtifact(contracts.DefaultArtifactPath)
}

func (s *Service) State() State {
	return State(s.state.Load())
}

func (s *Service) Wallet() *wallet.Wallet {
	return s.wallet
}
