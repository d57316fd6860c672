package contracts

import "github.com/NilFoundation/energyctl/internal/abi"

// Contract-level struct types, field order as laid out on chain.
var (
	EnergyType = abi.StructOf("Energy",
		abi.Field{Name: "amount", Type: abi.TypeBigInt},
		abi.Field{Name: "last_update_epoch", Type: abi.TypeU64},
		abi.Field{Name: "total_locked_tokens", Type: abi.TypeBigUint},
	)

	EpochAmountPairType = abi.StructOf("EpochAmountPair",
		abi.Field{Name: "epoch", Type: abi.TypeU64},
		abi.Field{Name: "amount", Type: abi.TypeBigUint},
	)

	UnlockEpochAmountPairsType = abi.StructOf("UnlockEpochAmountPairs",
		abi.Field{Name: "pairs", Type: abi.ListOf(EpochAmountPairType)},
	)

	LockOptionType = abi.StructOf("LockOption",
		abi.Field{Name: "lock_epochs", Type: abi.TypeU64},
		abi.Field{Name: "penalty_start_percentage", Type: abi.TypeU64},
	)

	EsdtTokenPaymentType = abi.StructOf("EsdtTokenPayment",
		abi.Field{Name: "token_identifier", Type: abi.TypeTokenIdentifier},
		abi.Field{Name: "token_nonce", Type: abi.TypeU64},
		abi.Field{Name: "amount", Type: abi.TypeBigUint},
	)

	// LockOptionArgType is a (lock_epochs, penalty_start_percentage) multi-value argument.
	LockOptionArgType = abi.TupleOf(abi.TypeU64, abi.TypeU64)

	// UserEnergyArgType is a (user, total_locked_tokens, energy_amount) multi-value argument.
	UserEnergyArgType = abi.TupleOf(abi.TypeAddress, abi.TypeBigUint, abi.TypeBigInt)
)
