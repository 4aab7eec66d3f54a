// Package ethgas provides a live Ethereum gas fee estimate in USD,
// used to keep crypto transfer route fees current.
//
// Source: "EthGas"
// Interval: 5 minutes
//
// The estimate combines two upstream calls:
//
//   - an Etherscan-style gas oracle, for the proposed gas price in gwei
//   - the Coinbase spot API, for the current ETH/USD price
//
// The published snapshot is the USD cost of a single ERC-20 token
// transfer at the proposed gas price:
//
//	fee = gasPriceGwei * 1e-9 * transferGasLimit * ethUSD
//
// where transferGasLimit is 65,000 gas, a typical upper bound for
// ERC-20 transfers. The snapshot is stored as ETH/USD with the GAS
// kind, so spot price lookups never collide with it.
package ethgas
