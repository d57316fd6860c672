package contracts

import (
	"fmt"

	"github.com/NilFoundation/energyctl/internal/abi"
)

type CallKind uint8

const (
	// KindDeploy creates a new contract instance.
	KindDeploy CallKind = iota
	// KindMutating is a signed transaction against the deployed contract.
	KindMutating
	// KindReadOnly is a query that is neither signed nor submitted as a transaction.
	KindReadOnly
)

func (k CallKind) String() string {
	switch k {
	case KindDeploy:
		return "deploy"
	case KindMutating:
		return "mutating"
	case KindReadOnly:
		return "read-only"
	}
	return fmt.Sprintf("CallKind(%d)", uint8(k))
}

// Multiplicity tells how many values an argument slot takes.
type Multiplicity uint8

const (
	One Multiplicity = iota
	// Optional slots are trailing and may be omitted.
	Optional
	// Variadic is a trailing multi-value slot taking zero or more values.
	Variadic
)

type PaymentRule uint8

const (
	PaymentNone PaymentRule = iota
	// PaymentToken requires exactly one fungible or non-fungible token transfer.
	PaymentToken
	// PaymentNative attaches a native-currency value to the call.
	PaymentNative
)

func (p PaymentRule) String() string {
	switch p {
	case PaymentNone:
		return "none"
	case PaymentToken:
		return "token"
	case PaymentNative:
		return "native"
	}
	return fmt.Sprintf("PaymentRule(%d)", uint8(p))
}

type ArgSlot struct {
	Name  string
	Type  abi.Type
	Multi Multiplicity
}

func (s ArgSlot) String() string {
	switch s.Multi {
	case Optional:
		return fmt.Sprintf("[%s: %s]", s.Name, s.Type)
	case Variadic:
		return fmt.Sprintf("%s: %s...", s.Name, s.Type)
	}
	return fmt.Sprintf("%s: %s", s.Name, s.Type)
}

// ResultShape is the type of the values a call returns.
// A zero ResultShape means the call returns nothing.
type ResultShape struct {
	Type abi.Type
	// Multi results are zero or more values of Type, one per returned item.
	Multi bool
}

func (r ResultShape) Empty() bool {
	return r.Type.Kind == 0
}

func (r ResultShape) String() string {
	switch {
	case r.Empty():
		return "()"
	case r.Multi:
		return r.Type.String() + "..."
	}
	return r.Type.String()
}

const (
	DeployGasLimit   uint64 = 100_000_000
	DefaultGasLimit  uint64 = 30_000_000
	IssueGasLimit    uint64 = 100_000_000
	ReadOnlyGasLimit uint64 = 0
)

type Descriptor struct {
	Endpoint Endpoint
	Kind     CallKind
	Args     []ArgSlot
	Payment  PaymentRule
	Result   ResultShape
	GasLimit uint64
}

// Function returns the on-chain function name. Deploy calls the contract constructor.
func (d Descriptor) Function() string {
	if d.Kind == KindDeploy {
		return "init"
	}
	return d.Endpoint.String()
}

// ArgBounds returns the minimal and maximal number of argument values accepted.
// max is negative when a variadic slot makes the count unbounded.
func (d Descriptor) ArgBounds() (int, int) {
	minArgs, maxArgs := 0, 0
	for _, s := range d.Args {
		switch s.Multi {
		case One:
			minArgs++
			maxArgs++
		case Optional:
			maxArgs++
		case Variadic:
			return minArgs, -1
		}
	}
	return minArgs, maxArgs
}

func one(name string, t abi.Type) ArgSlot {
	return ArgSlot{Name: name, Type: t}
}

func optional(name string, t abi.Type) ArgSlot {
	return ArgSlot{Name: name, Type: t, Multi: Optional}
}

func variadic(name string, t abi.Type) ArgSlot {
	return ArgSlot{Name: name, Type: t, Multi: Variadic}
}

func single(t abi.Type) ResultShape {
	return ResultShape{Type: t}
}

func multi(t abi.Type) ResultShape {
	return ResultShape{Type: t, Multi: true}
}

func mutating(e Endpoint, payment PaymentRule, result ResultShape, args ...ArgSlot) Descriptor {
	return Descriptor{Endpoint: e, Kind: KindMutating, Args: args, Payment: payment, Result: result, GasLimit: DefaultGasLimit}
}

func view(e Endpoint, result ResultShape, args ...ArgSlot) Descriptor {
	return Descriptor{Endpoint: e, Kind: KindReadOnly, Args: args, Result: result, GasLimit: ReadOnlyGasLimit}
}

// Descriptor returns the static description of the endpoint.
func (e Endpoint) Descriptor() Descriptor {
	tokenResult := single(EsdtTokenPaymentType)
	none := ResultShape{}

	switch e {
	case Deploy:
		return Descriptor{
			Endpoint: e,
			Kind:     KindDeploy,
			Args: []ArgSlot{
				one("baseAssetTokenId", abi.TypeTokenIdentifier),
				one("legacyTokenId", abi.TypeTokenIdentifier),
				one("oldLockedAssetFactoryAddress", abi.TypeAddress),
				one("minMigratedTokenLockedPeriod", abi.TypeU64),
				variadic("lockOptions", LockOptionArgType),
			},
			Result:   single(abi.TypeAddress),
			GasLimit: DeployGasLimit,
		}
	case LockTokens:
		return mutating(e, PaymentToken, tokenResult,
			one("lockEpochs", abi.TypeU64), optional("optDestination", abi.TypeAddress))
	case UnlockTokens:
		return mutating(e, PaymentToken, tokenResult)
	case ExtendLockPeriod:
		return mutating(e, PaymentToken, tokenResult,
			one("lockEpochs", abi.TypeU64), one("user", abi.TypeAddress))
	case IssueLockedToken:
		d := mutating(e, PaymentNative, none,
			one("tokenDisplayName", abi.TypeBuffer),
			one("tokenTicker", abi.TypeBuffer),
			one("numDecimals", abi.TypeU32))
		d.GasLimit = IssueGasLimit
		return d
	case GetLockedTokenId, GetBaseAssetTokenId, GetLegacyLockedTokenId:
		return view(e, single(abi.TypeTokenIdentifier))
	case GetEnergyEntryForUser:
		return view(e, single(EnergyType), one("user", abi.TypeAddress))
	case GetEnergyAmountForUser:
		return view(e, single(abi.TypeBigUint), one("user", abi.TypeAddress))
	case AddLockOptions:
		return mutating(e, PaymentNone, none, variadic("newLockOptions", LockOptionArgType))
	case GetLockOptions:
		return view(e, multi(LockOptionType))
	case UnlockEarly:
		return mutating(e, PaymentToken, none)
	case ReduceLockPeriod:
		return mutating(e, PaymentToken, tokenResult, one("newLockPeriod", abi.TypeU64))
	case GetPenaltyAmount:
		return view(e, single(abi.TypeBigUint),
			one("tokenAmount", abi.TypeBigUint),
			one("prevLockEpochs", abi.TypeU64),
			one("newLockEpochs", abi.TypeU64))
	case SetTokenUnstakeAddress:
		return mutating(e, PaymentNone, none, one("scAddress", abi.TypeAddress))
	case RevertUnstake:
		return mutating(e, PaymentToken, none,
			one("user", abi.TypeAddress), one("newEnergy", EnergyType))
	case GetTokenUnstakeScAddress:
		return view(e, single(abi.TypeAddress))
	case SetEnergyForOldTokens:
		return mutating(e, PaymentNone, none, variadic("usersEnergy", UserEnergyArgType))
	case UpdateEnergyAfterOldTokenUnlock:
		return mutating(e, PaymentNone, none,
			one("originalCaller", abi.TypeAddress),
			one("initialEpochAmountPairs", UnlockEpochAmountPairsType),
			one("finalEpochAmountPairs", UnlockEpochAmountPairsType))
	case MigrateOldTokens:
		return mutating(e, PaymentToken, multi(EsdtTokenPaymentType))
	case Pause, Unpause:
		return mutating(e, PaymentNone, none)
	case IsPaused:
		return view(e, single(abi.TypeBool))
	case SetTransferRoleLockedToken:
		return mutating(e, PaymentNone, none, optional("optAddress", abi.TypeAddress))
	case SetBurnRoleLockedToken:
		return mutating(e, PaymentNone, none, one("address", abi.TypeAddress))
	case MergeTokens:
		return mutating(e, PaymentToken, tokenResult, optional("optOriginalCaller", abi.TypeAddress))
	case LockVirtual:
		return mutating(e, PaymentNone, tokenResult,
			one("tokenId", abi.TypeTokenIdentifier),
			one("amount", abi.TypeBigUint),
			one("lockEpochs", abi.TypeU64),
			one("destAddress", abi.TypeAddress),
			one("energyAddress", abi.TypeAddress))
	case AddSCAddressToWhitelist, RemoveSCAddressFromWhitelist:
		return mutating(e, PaymentNone, none, one("address", abi.TypeAddress))
	case IsSCAddressWhitelisted:
		return view(e, single(abi.TypeBool), one("address", abi.TypeAddress))
	case AddToTokenTransferWhitelist, RemoveFromTokenTransferWhitelist:
		return mutating(e, PaymentNone, none, variadic("scAddresses", abi.TypeAddress))
	case SetUserEnergyAfterLockedTokenTransfer:
		return mutating(e, PaymentNone, none,
			one("user", abi.TypeAddress), one("energy", EnergyType))
	case endpointCount:
	}
	panic(fmt.Sprintf("no descriptor for %s", e))
}
