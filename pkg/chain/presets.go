package chain

import "github.com/ethereum/go-ethereum/common"

// CCTP v2 contracts share the same address on every EVM testnet.
var (
	testnetTokenMessengerV2     = common.HexToAddress("0x8FE6B999Dc680CcFDD5Bf7EB0974218be2542DAA")
	testnetMessageTransmitterV2 = common.HexToAddress("0xE737e5cEBEEBa77EFE34D4aa090756590b1CE275")
)

// Preset chain identifiers.
const (
	EthereumSepolia = "ethereum-sepolia"
	AvalancheFuji   = "avalanche-fuji"
	ArbitrumSepolia = "arbitrum-sepolia"
	BaseSepolia     = "base-sepolia"
)

// TestnetPresets returns the USDC testnet chains. RPC URLs are left empty and
// must come from configuration.
func TestnetPresets() []Config {
	return []Config{
		{
			ID:                   EthereumSepolia,
			Name:                 "Ethereum Sepolia",
			ChainID:              11155111,
			DomainID:             0,
			TokenAddress:         common.HexToAddress("0x1c7D4B196Cb0C7B01d743Fbc6116a902379C7238"),
			BurnMessengerAddress: testnetTokenMessengerV2,
			MintReceiverAddress:  testnetMessageTransmitterV2,
			NativeSymbol:         "ETH",
		},
		{
			ID:                   AvalancheFuji,
			Name:                 "Avalanche Fuji",
			ChainID:              43113,
			DomainID:             1,
			TokenAddress:         common.HexToAddress("0x5425890298aed601595a70AB815c96711a31Bc65"),
			BurnMessengerAddress: testnetTokenMessengerV2,
			MintReceiverAddress:  testnetMessageTransmitterV2,
			NativeSymbol:         "AVAX",
		},
		{
			ID:                   ArbitrumSepolia,
			Name:                 "Arbitrum Sepolia",
			ChainID:              421614,
			DomainID:             3,
			TokenAddress:         common.HexToAddress("0x75faf114eafb1BDbe2F0316DF893fd58CE46AA4d"),
			BurnMessengerAddress: testnetTokenMessengerV2,
			MintReceiverAddress:  testnetMessageTransmitterV2,
			NativeSymbol:         "ETH",
		},
		{
			ID:                   BaseSepolia,
			Name:                 "Base Sepolia",
			ChainID:              84532,
			DomainID:             6,
			TokenAddress:         common.HexToAddress("0x036CbD53842c5426634e7929541eC2318f3dCF7e"),
			BurnMessengerAddress: testnetTokenMessengerV2,
			MintReceiverAddress:  testnetMessageTransmitterV2,
			NativeSymbol:         "ETH",
		},
	}
}
