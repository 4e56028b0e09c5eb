package domain

const (
	// Blockchain constants
	ETHEREUM_ZERO_ADDRESS = "0x0000000000000000000000000000000000000000"

	// WAD is the fixed-point unit used for share prices and fee rates
	WAD = "1000000000000000000"
)
