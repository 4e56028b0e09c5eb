package domain

import (
	"fmt"
	"math/big"
	"strings"
	"time"

	"github.com/ethereum/go-ethereum/common"
)

// Chain represents the blockchain network identifier using CAIP-2 format
type Chain string

const (
	ChainEthereumMainnet Chain = "eip155:1"
	ChainEthereumSepolia Chain = "eip155:11155111"
	ChainBaseMainnet     Chain = "eip155:8453"
)

// IsValidChain checks if a chain is valid
func IsValidChain(chain Chain) bool {
	return chain == ChainEthereumMainnet ||
		chain == ChainEthereumSepolia ||
		chain == ChainBaseMainnet
}

// Name returns the short chain name used in NATS subjects
func (c Chain) Name() string {
	switch c {
	case ChainEthereumMainnet:
		return "ethereum"
	case ChainEthereumSepolia:
		return "sepolia"
	case ChainBaseMainnet:
		return "base"
	default:
		return strings.ReplaceAll(string(c), ":", "-")
	}
}

// EventKind represents the type of vault event
type EventKind string

const (
	EventKindVaultCreated EventKind = "vault_created"

	EventKindSetOwner                   EventKind = "set_owner"
	EventKindSetCurator                 EventKind = "set_curator"
	EventKindSetName                    EventKind = "set_name"
	EventKindSetSymbol                  EventKind = "set_symbol"
	EventKindSetPerformanceFee          EventKind = "set_performance_fee"
	EventKindSetManagementFee           EventKind = "set_management_fee"
	EventKindSetPerformanceFeeRecipient EventKind = "set_performance_fee_recipient"
	EventKindSetManagementFeeRecipient  EventKind = "set_management_fee_recipient"
	EventKindSetMaxRate                 EventKind = "set_max_rate"
	EventKindSetSharesGate              EventKind = "set_shares_gate"
	EventKindSetReceiveSharesGate       EventKind = "set_receive_shares_gate"
	EventKindSetReceiveAssetsGate       EventKind = "set_receive_assets_gate"
	EventKindSetSendAssetsGate          EventKind = "set_send_assets_gate"
	EventKindSetLiquidityAdapter        EventKind = "set_liquidity_adapter"

	EventKindSetIsAllocator EventKind = "set_is_allocator"
	EventKindSetIsSentinel  EventKind = "set_is_sentinel"
	EventKindSetIsAdapter   EventKind = "set_is_adapter"

	EventKindAccrueInterest EventKind = "accrue_interest"
	EventKindDeposit        EventKind = "deposit"
	EventKindWithdraw       EventKind = "withdraw"
	EventKindTransfer       EventKind = "transfer"

	EventKindIncreaseAbsoluteCap EventKind = "increase_absolute_cap"
	EventKindDecreaseAbsoluteCap EventKind = "decrease_absolute_cap"
	EventKindIncreaseRelativeCap EventKind = "increase_relative_cap"
	EventKindDecreaseRelativeCap EventKind = "decrease_relative_cap"

	EventKindAllocate        EventKind = "allocate"
	EventKindDeallocate      EventKind = "deallocate"
	EventKindForceDeallocate EventKind = "force_deallocate"
)

// IsConfigKind reports whether the kind replaces a single vault configuration field
func (k EventKind) IsConfigKind() bool {
	switch k {
	case EventKindSetOwner, EventKindSetCurator, EventKindSetName, EventKindSetSymbol,
		EventKindSetPerformanceFee, EventKindSetManagementFee,
		EventKindSetPerformanceFeeRecipient, EventKindSetManagementFeeRecipient,
		EventKindSetMaxRate, EventKindSetSharesGate, EventKindSetReceiveSharesGate,
		EventKindSetReceiveAssetsGate, EventKindSetSendAssetsGate,
		EventKindSetLiquidityAdapter:
		return true
	}
	return false
}

// IsRoleKind reports whether the kind toggles membership in a vault role set
func (k EventKind) IsRoleKind() bool {
	return k == EventKindSetIsAllocator || k == EventKindSetIsSentinel || k == EventKindSetIsAdapter
}

// IsCapKind reports whether the kind replaces an identifier cap
func (k EventKind) IsCapKind() bool {
	switch k {
	case EventKindIncreaseAbsoluteCap, EventKindDecreaseAbsoluteCap,
		EventKindIncreaseRelativeCap, EventKindDecreaseRelativeCap:
		return true
	}
	return false
}

// IsAllocationKind reports whether the kind applies an allocation delta to identifiers
func (k EventKind) IsAllocationKind() bool {
	return k == EventKindAllocate || k == EventKindDeallocate || k == EventKindForceDeallocate
}

// Role represents a vault role set
type Role string

const (
	RoleAllocator Role = "allocator"
	RoleSentinel  Role = "sentinel"
	RoleAdapter   Role = "adapter"
)

// RoleForKind maps a role-toggle event kind to the role set it mutates
func RoleForKind(kind EventKind) (Role, bool) {
	switch kind {
	case EventKindSetIsAllocator:
		return RoleAllocator, true
	case EventKindSetIsSentinel:
		return RoleSentinel, true
	case EventKindSetIsAdapter:
		return RoleAdapter, true
	}
	return "", false
}

// VaultEvent represents a normalized vault event decoded from a chain log.
// This is the standard format published to NATS. All big integers are
// decimal strings; Change is signed for allocation kinds.
type VaultEvent struct {
	Chain        Chain     `json:"chain"`
	VaultAddress string    `json:"vault_address"`
	Kind         EventKind `json:"kind"`
	BlockNumber  uint64    `json:"block_number"`
	BlockTime    time.Time `json:"block_time"`
	TxHash       string    `json:"tx_hash"`
	TxIndex      uint64    `json:"tx_index"`
	LogIndex     uint64    `json:"log_index"`

	// vault_created
	Asset string `json:"asset,omitempty"`

	// address payloads: config targets, role accounts, gates, recipients
	Account string `json:"account,omitempty"`
	// role toggles
	Enabled bool `json:"enabled,omitempty"`
	// set_name / set_symbol
	Value string `json:"value,omitempty"`
	// fee rates, max rate, cap values
	Amount string `json:"amount,omitempty"`
	// opaque liquidity adapter data, hex encoded
	Data string `json:"data,omitempty"`

	// accrue_interest
	NewTotalAssets       string `json:"new_total_assets,omitempty"`
	PerformanceFeeShares string `json:"performance_fee_shares,omitempty"`
	ManagementFeeShares  string `json:"management_fee_shares,omitempty"`

	// deposit / withdraw
	Sender       string `json:"sender,omitempty"`
	Receiver     string `json:"receiver,omitempty"`
	OwnerAccount string `json:"owner_account,omitempty"`
	Assets       string `json:"assets,omitempty"`
	Shares       string `json:"shares,omitempty"`

	// transfer
	From string `json:"from,omitempty"`
	To   string `json:"to,omitempty"`

	// cap events
	IdentifierID string `json:"identifier_id,omitempty"`

	// allocation events
	Identifiers []string `json:"identifiers,omitempty"`
	Change      string   `json:"change,omitempty"`
	Penalty     string   `json:"penalty,omitempty"`
}

// CoordinateID returns the globally unique event coordinate used as the
// primary key of ledger, checkpoint and snapshot rows
func (e *VaultEvent) CoordinateID() string {
	return fmt.Sprintf("%s:%s:%d", e.Chain, strings.ToLower(e.TxHash), e.LogIndex)
}

// SubCoordinateID returns a derived coordinate for events touching multiple
// identifiers, suffixed by the identifier's position in the event payload
func (e *VaultEvent) SubCoordinateID(i int) string {
	return fmt.Sprintf("%s:%d", e.CoordinateID(), i)
}

// Valid checks the coordinate fields every event must carry
func (e *VaultEvent) Valid() bool {
	if !IsValidChain(e.Chain) {
		return false
	}
	if !common.IsHexAddress(e.VaultAddress) {
		return false
	}
	if e.Kind == "" || e.TxHash == "" || e.BlockTime.IsZero() {
		return false
	}
	if e.Kind.IsAllocationKind() && len(e.Identifiers) == 0 {
		return false
	}
	return true
}

// TransferClass classifies a transfer by its endpoints
type TransferClass int

const (
	TransferClassTransfer TransferClass = iota
	TransferClassMint
	TransferClassBurn
	// TransferClassNoop marks the ill-formed zero-to-zero transfer, which has
	// no sensible state effect and is ledgered but never applied
	TransferClassNoop
)

// ClassifyTransfer determines mint/burn purely structurally, by comparing
// the endpoints against the chain's canonical zero address
func ClassifyTransfer(from, to string) TransferClass {
	fromZero := IsZeroAddress(from)
	toZero := IsZeroAddress(to)
	switch {
	case fromZero && toZero:
		return TransferClassNoop
	case fromZero:
		return TransferClassMint
	case toZero:
		return TransferClassBurn
	default:
		return TransferClassTransfer
	}
}

// IsZeroAddress checks an address against the canonical zero address
func IsZeroAddress(address string) bool {
	return address == "" || NormalizeAddress(address) == ETHEREUM_ZERO_ADDRESS
}

// NormalizeAddresses normalizes a list of addresses in place
func NormalizeAddresses(addresses []string) []string {
	for i, address := range addresses {
		addresses[i] = NormalizeAddress(address)
	}
	return addresses
}

// NormalizeAddress normalizes an address to lowercase 0x-prefixed hex
func NormalizeAddress(address string) string {
	if address == "" {
		return ""
	}
	return strings.ToLower(common.HexToAddress(address).Hex())
}

// ParseAmount parses a decimal string into a big integer. Empty strings
// parse as zero so optional payload fields default to the zero state.
func ParseAmount(s string) (*big.Int, error) {
	if s == "" {
		return new(big.Int), nil
	}
	v, ok := new(big.Int).SetString(s, 10)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrInvalidAmount, s)
	}
	return v, nil
}

// VaultConfig is the full vault configuration read from the chain at a
// specific block, used by the backfill resolver
type VaultConfig struct {
	Owner                   string
	Curator                 string
	Asset                   string
	Name                    string
	Symbol                  string
	PerformanceFee          *big.Int
	ManagementFee           *big.Int
	PerformanceFeeRecipient string
	ManagementFeeRecipient  string
	MaxRate                 *big.Int
	SharesGate              string
	ReceiveSharesGate       string
	ReceiveAssetsGate       string
	SendAssetsGate          string
	LiquidityAdapter        string
	LiquidityData           string
	TotalAssets             *big.Int
	TotalSupply             *big.Int
}
