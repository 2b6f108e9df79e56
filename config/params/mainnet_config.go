package params

import "math"

// MainnetConfig returns the configuration to be used in the main network.
func MainnetConfig() *BeaconChainConfig {
	return mainnetBeaconConfig
}

var mainnetBeaconConfig = &BeaconChainConfig{
	// Constants (non-configurable).
	FarFutureEpoch:           math.MaxUint64,
	FarFutureSlot:            math.MaxUint64,
	DepositContractTreeDepth: 32,

	// Initial value constants.
	BLSWithdrawalPrefixByte: byte(0),
	ZeroHash:                [32]byte{},

	// Time parameter constants.
	GenesisSlot:    0,
	GenesisEpoch:   0,
	SecondsPerSlot: 12,
	SlotsPerEpoch:  32,

	// Gwei value constants.
	MinDepositAmount:          1 * 1e9,
	MaxEffectiveBalance:       32 * 1e9,
	EffectiveBalanceIncrement: 1 * 1e9,

	// Fork choice algorithm constants.
	GenesisForkVersion: []byte{0, 0, 0, 0},

	// Signature domains.
	DomainDeposit: [4]byte{3, 0, 0, 0},
}
