package contracts

import (
	"errors"
	"fmt"
)

var ErrUnknownCommand = errors.New("unknown command")

// Endpoint is one entry of the energy factory command catalog.
type Endpoint int

const (
	Deploy Endpoint = iota
	LockTokens
	UnlockTokens
	ExtendLockPeriod
	IssueLockedToken
	GetLockedTokenId
	GetBaseAssetTokenId
	GetLegacyLockedTokenId
	GetEnergyEntryForUser
	GetEnergyAmountForUser
	AddLockOptions
	GetLockOptions
	UnlockEarly
	ReduceLockPeriod
	GetPenaltyAmount
	SetTokenUnstakeAddress
	RevertUnstake
	GetTokenUnstakeScAddress
	SetEnergyForOldTokens
	UpdateEnergyAfterOldTokenUnlock
	MigrateOldTokens
	Pause
	Unpause
	IsPaused
	SetTransferRoleLockedToken
	SetBurnRoleLockedToken
	MergeTokens
	LockVirtual
	AddSCAddressToWhitelist
	RemoveSCAddressFromWhitelist
	IsSCAddressWhitelisted
	AddToTokenTransferWhitelist
	RemoveFromTokenTransferWhitelist
	SetUserEnergyAfterLockedTokenTransfer

	endpointCount
)

var endpointNames = [endpointCount]string{
	Deploy:                                "deploy",
	LockTokens:                            "lockTokens",
	UnlockTokens:                          "unlockTokens",
	ExtendLockPeriod:                      "extendLockPeriod",
	IssueLockedToken:                      "issueLockedToken",
	GetLockedTokenId:                      "getLockedTokenId",
	GetBaseAssetTokenId:                   "getBaseAssetTokenId",
	GetLegacyLockedTokenId:                "getLegacyLockedTokenId",
	GetEnergyEntryForUser:                 "getEnergyEntryForUser",
	GetEnergyAmountForUser:                "getEnergyAmountForUser",
	AddLockOptions:                        "addLockOptions",
	GetLockOptions:                        "getLockOptions",
	UnlockEarly:                           "unlockEarly",
	ReduceLockPeriod:                      "reduceLockPeriod",
	GetPenaltyAmount:                      "getPenaltyAmount",
	SetTokenUnstakeAddress:                "setTokenUnstakeAddress",
	RevertUnstake:                         "revertUnstake",
	GetTokenUnstakeScAddress:              "getTokenUnstakeScAddress",
	SetEnergyForOldTokens:                 "setEnergyForOldTokens",
	UpdateEnergyAfterOldTokenUnlock:       "updateEnergyAfterOldTokenUnlock",
	MigrateOldTokens:                      "migrateOldTokens",
	Pause:                                 "pause",
	Unpause:                               "unpause",
	IsPaused:                              "isPaused",
	SetTransferRoleLockedToken:            "setTransferRoleLockedToken",
	SetBurnRoleLockedToken:                "setBurnRoleLockedToken",
	MergeTokens:                           "mergeTokens",
	LockVirtual:                           "lockVirtual",
	AddSCAddressToWhitelist:               "addSCAddressToWhitelist",
	RemoveSCAddressFromWhitelist:          "removeSCAddressFromWhitelist",
	IsSCAddressWhitelisted:                "isSCAddressWhitelisted",
	AddToTokenTransferWhitelist:           "addToTokenTransferWhitelist",
	RemoveFromTokenTransferWhitelist:      "removeFromTokenTransferWhitelist",
	SetUserEnergyAfterLockedTokenTransfer: "setUserEnergyAfterLockedTokenTransfer",
}

var endpointsByName = func() map[string]Endpoint {
	res := make(map[string]Endpoint, endpointCount)
	for e, name := range endpointNames {
		res[name] = Endpoint(e)
	}
	return res
}()

// String returns the command name, which is also the on-chain function name
// for everything except deploy.
func (e Endpoint) String() string {
	if e < 0 || e >= endpointCount {
		return fmt.Sprintf("Endpoint(%d)", int(e))
	}
	return endpointNames[e]
}

// Endpoints lists the catalog in declaration order.
func Endpoints() []Endpoint {
	res := make([]Endpoint, 0, endpointCount)
	for e := range endpointCount {
		res = append(res, e)
	}
	return res
}

// Parse resolves a command name. Names are case-sensitive.
func Parse(name string) (Endpoint, error) {
	e, ok := endpointsByName[name]
	if !ok {
		return 0, fmt.Errorf("%w: %s", ErrUnknownCommand, name)
	}
	return e, nil
}

// Lookup returns the descriptor of the named command.
func Lookup(name string) (Descriptor, error) {
	e, err := Parse(name)
	if err != nil {
		return Descriptor{}, err
	}
	return e.Descriptor(), nil
}
