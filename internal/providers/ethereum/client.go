package ethereum

import (
	"context"
	"fmt"
	"math/big"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/crypto"
	"go.uber.org/zap"

	"github.com/openyield/vault-indexer/internal/adapter"
	"github.com/openyield/vault-indexer/internal/block"
	"github.com/openyield/vault-indexer/internal/domain"
	"github.com/openyield/vault-indexer/internal/logger"
)

// Event signatures emitted by the vault contract
var (
	createVaultSignature = crypto.Keccak256Hash([]byte("CreateVault(address,address)"))

	setOwnerSignature                   = crypto.Keccak256Hash([]byte("SetOwner(address)"))
	setCuratorSignature                 = crypto.Keccak256Hash([]byte("SetCurator(address)"))
	setNameSignature                    = crypto.Keccak256Hash([]byte("SetName(string)"))
	setSymbolSignature                  = crypto.Keccak256Hash([]byte("SetSymbol(string)"))
	setPerformanceFeeSignature          = crypto.Keccak256Hash([]byte("SetPerformanceFee(uint256)"))
	setManagementFeeSignature           = crypto.Keccak256Hash([]byte("SetManagementFee(uint256)"))
	setPerformanceFeeRecipientSignature = crypto.Keccak256Hash([]byte("SetPerformanceFeeRecipient(address)"))
	setManagementFeeRecipientSignature  = crypto.Keccak256Hash([]byte("SetManagementFeeRecipient(address)"))
	setMaxRateSignature                 = crypto.Keccak256Hash([]byte("SetMaxRate(uint256)"))
	setSharesGateSignature              = crypto.Keccak256Hash([]byte("SetSharesGate(address)"))
	setReceiveSharesGateSignature       = crypto.Keccak256Hash([]byte("SetReceiveSharesGate(address)"))
	setReceiveAssetsGateSignature       = crypto.Keccak256Hash([]byte("SetReceiveAssetsGate(address)"))
	setSendAssetsGateSignature          = crypto.Keccak256Hash([]byte("SetSendAssetsGate(address)"))
	setLiquidityAdapterSignature        = crypto.Keccak256Hash([]byte("SetLiquidityAdapter(address,bytes)"))

	setIsAllocatorSignature = crypto.Keccak256Hash([]byte("SetIsAllocator(address,bool)"))
	setIsSentinelSignature  = crypto.Keccak256Hash([]byte("SetIsSentinel(address,bool)"))
	setIsAdapterSignature   = crypto.Keccak256Hash([]byte("SetIsAdapter(address,bool)"))

	accrueInterestSignature = crypto.Keccak256Hash([]byte("AccrueInterest(uint256,uint256,uint256)"))
	depositSignature        = crypto.Keccak256Hash([]byte("Deposit(address,address,uint256,uint256)"))
	withdrawSignature       = crypto.Keccak256Hash([]byte("Withdraw(address,address,address,uint256,uint256)"))
	transferSignature       = crypto.Keccak256Hash([]byte("Transfer(address,address,uint256)"))

	increaseAbsoluteCapSignature = crypto.Keccak256Hash([]byte("IncreaseAbsoluteCap(bytes32,uint256)"))
	decreaseAbsoluteCapSignature = crypto.Keccak256Hash([]byte("DecreaseAbsoluteCap(bytes32,uint256)"))
	increaseRelativeCapSignature = crypto.Keccak256Hash([]byte("IncreaseRelativeCap(bytes32,uint256)"))
	decreaseRelativeCapSignature = crypto.Keccak256Hash([]byte("DecreaseRelativeCap(bytes32,uint256)"))

	allocateSignature        = crypto.Keccak256Hash([]byte("Allocate(uint256,bytes32[])"))
	deallocateSignature      = crypto.Keccak256Hash([]byte("Deallocate(uint256,bytes32[])"))
	forceDeallocateSignature = crypto.Keccak256Hash([]byte("ForceDeallocate(uint256,bytes32[],uint256)"))
)

// vaultEventSignatures is the full topic filter for one subscription
var vaultEventSignatures = []common.Hash{
	createVaultSignature,
	setOwnerSignature, setCuratorSignature, setNameSignature, setSymbolSignature,
	setPerformanceFeeSignature, setManagementFeeSignature,
	setPerformanceFeeRecipientSignature, setManagementFeeRecipientSignature,
	setMaxRateSignature,
	setSharesGateSignature, setReceiveSharesGateSignature,
	setReceiveAssetsGateSignature, setSendAssetsGateSignature,
	setLiquidityAdapterSignature,
	setIsAllocatorSignature, setIsSentinelSignature, setIsAdapterSignature,
	accrueInterestSignature, depositSignature, withdrawSignature, transferSignature,
	increaseAbsoluteCapSignature, decreaseAbsoluteCapSignature,
	increaseRelativeCapSignature, decreaseRelativeCapSignature,
	allocateSignature, deallocateSignature, forceDeallocateSignature,
}

// View functions read from the vault contract during backfill and snapshotting
const vaultViewABIJSON = `[
{"constant":true,"inputs":[],"name":"asset","outputs":[{"name":"","type":"address"}],"stateMutability":"view","type":"function"},
{"constant":true,"inputs":[],"name":"owner","outputs":[{"name":"","type":"address"}],"stateMutability":"view","type":"function"},
{"constant":true,"inputs":[],"name":"curator","outputs":[{"name":"","type":"address"}],"stateMutability":"view","type":"function"},
{"constant":true,"inputs":[],"name":"name","outputs":[{"name":"","type":"string"}],"stateMutability":"view","type":"function"},
{"constant":true,"inputs":[],"name":"symbol","outputs":[{"name":"","type":"string"}],"stateMutability":"view","type":"function"},
{"constant":true,"inputs":[],"name":"performanceFee","outputs":[{"name":"","type":"uint256"}],"stateMutability":"view","type":"function"},
{"constant":true,"inputs":[],"name":"managementFee","outputs":[{"name":"","type":"uint256"}],"stateMutability":"view","type":"function"},
{"constant":true,"inputs":[],"name":"performanceFeeRecipient","outputs":[{"name":"","type":"address"}],"stateMutability":"view","type":"function"},
{"constant":true,"inputs":[],"name":"managementFeeRecipient","outputs":[{"name":"","type":"address"}],"stateMutability":"view","type":"function"},
{"constant":true,"inputs":[],"name":"maxRate","outputs":[{"name":"","type":"uint256"}],"stateMutability":"view","type":"function"},
{"constant":true,"inputs":[],"name":"sharesGate","outputs":[{"name":"","type":"address"}],"stateMutability":"view","type":"function"},
{"constant":true,"inputs":[],"name":"receiveSharesGate","outputs":[{"name":"","type":"address"}],"stateMutability":"view","type":"function"},
{"constant":true,"inputs":[],"name":"receiveAssetsGate","outputs":[{"name":"","type":"address"}],"stateMutability":"view","type":"function"},
{"constant":true,"inputs":[],"name":"sendAssetsGate","outputs":[{"name":"","type":"address"}],"stateMutability":"view","type":"function"},
{"constant":true,"inputs":[],"name":"liquidityAdapter","outputs":[{"name":"","type":"address"}],"stateMutability":"view","type":"function"},
{"constant":true,"inputs":[],"name":"liquidityData","outputs":[{"name":"","type":"bytes"}],"stateMutability":"view","type":"function"},
{"constant":true,"inputs":[],"name":"totalAssets","outputs":[{"name":"","type":"uint256"}],"stateMutability":"view","type":"function"},
{"constant":true,"inputs":[],"name":"totalSupply","outputs":[{"name":"","type":"uint256"}],"stateMutability":"view","type":"function"},
{"constant":true,"inputs":[{"name":"shares","type":"uint256"}],"name":"convertToAssets","outputs":[{"name":"","type":"uint256"}],"stateMutability":"view","type":"function"}
]`

var vaultViewABI abi.ABI

func init() {
	parsed, err := abi.JSON(strings.NewReader(vaultViewABIJSON))
	if err != nil {
		panic(fmt.Sprintf("invalid vault view ABI: %v", err))
	}
	vaultViewABI = parsed
}

// ABI argument layouts for non-indexed event data
var (
	uint256Ty    = mustNewType("uint256")
	boolTy       = mustNewType("bool")
	stringTy     = mustNewType("string")
	bytesTy      = mustNewType("bytes")
	bytes32ArrTy = mustNewType("bytes32[]")

	uintArgs         = abi.Arguments{{Type: uint256Ty}}
	boolArgs         = abi.Arguments{{Type: boolTy}}
	stringArgs       = abi.Arguments{{Type: stringTy}}
	bytesArgs        = abi.Arguments{{Type: bytesTy}}
	twoUintArgs      = abi.Arguments{{Type: uint256Ty}, {Type: uint256Ty}}
	threeUintArgs    = abi.Arguments{{Type: uint256Ty}, {Type: uint256Ty}, {Type: uint256Ty}}
	allocationArgs   = abi.Arguments{{Type: uint256Ty}, {Type: bytes32ArrTy}}
	forceDeallocArgs = abi.Arguments{{Type: uint256Ty}, {Type: bytes32ArrTy}, {Type: uint256Ty}}
)

func mustNewType(t string) abi.Type {
	ty, err := abi.NewType(t, "", nil)
	if err != nil {
		panic(fmt.Sprintf("invalid ABI type %q: %v", t, err))
	}
	return ty
}

// VaultClient wraps the Ethereum RPC connection with vault-aware log
// decoding and view reads
type VaultClient interface {
	// ParseEventLog decodes a raw log into a normalized vault event.
	// Returns (nil, nil) for logs the indexer does not consume.
	ParseEventLog(ctx context.Context, vLog types.Log) (*domain.VaultEvent, error)

	// SubscribeFilterLogs subscribes to live vault logs
	SubscribeFilterLogs(ctx context.Context, query ethereum.FilterQuery, ch chan<- types.Log) (ethereum.Subscription, error)

	// FilterVaultLogs fetches all vault logs in a block range, paginating
	// around provider result limits
	FilterVaultLogs(ctx context.Context, fromBlock, toBlock uint64) ([]types.Log, error)

	// HeaderByNumber returns a header by number (nil = latest)
	HeaderByNumber(ctx context.Context, number *big.Int) (*types.Header, error)

	// VaultConfig reads the full vault configuration at an explicit block
	VaultConfig(ctx context.Context, vaultAddress string, atBlock uint64) (*domain.VaultConfig, error)

	// ConvertToAssets calls the vault's own share-to-asset conversion at an
	// explicit block
	ConvertToAssets(ctx context.Context, vaultAddress string, shares *big.Int, atBlock uint64) (*big.Int, error)

	// Close closes the connection
	Close()
}

type vaultClient struct {
	chainID domain.Chain
	client  adapter.EthClient
	blocks  block.BlockProvider
}

// NewClient creates a vault-aware Ethereum client. Block timestamps are
// resolved through the caching block provider to avoid one RPC per log.
func NewClient(chainID domain.Chain, client adapter.EthClient, blocks block.BlockProvider) VaultClient {
	return &vaultClient{chainID: chainID, client: client, blocks: blocks}
}

// SubscribeFilterLogs subscribes to filter logs
func (c *vaultClient) SubscribeFilterLogs(ctx context.Context, query ethereum.FilterQuery, ch chan<- types.Log) (ethereum.Subscription, error) {
	return c.client.SubscribeFilterLogs(ctx, query, ch)
}

// HeaderByNumber returns a header by number
func (c *vaultClient) HeaderByNumber(ctx context.Context, number *big.Int) (*types.Header, error) {
	return c.client.HeaderByNumber(ctx, number)
}

// FilterVaultLogs fetches all vault logs in a block range with pagination
// to work around provider result limits
func (c *vaultClient) FilterVaultLogs(ctx context.Context, fromBlock, toBlock uint64) ([]types.Log, error) {
	query := ethereum.FilterQuery{
		Topics: [][]common.Hash{vaultEventSignatures},
	}

	var allLogs []types.Log
	currentFrom := fromBlock
	stepSize := uint64(100000)

	for currentFrom <= toBlock {
		currentTo := currentFrom + stepSize - 1
		if currentTo > toBlock {
			currentTo = toBlock
		}

		rangeQuery := query
		rangeQuery.FromBlock = new(big.Int).SetUint64(currentFrom)
		rangeQuery.ToBlock = new(big.Int).SetUint64(currentTo)

		logs, err := c.client.FilterLogs(ctx, rangeQuery)
		if err != nil {
			if !isTooManyResultsError(err) {
				return nil, fmt.Errorf("failed to get logs for range %d-%d: %w", currentFrom, currentTo, err)
			}

			// Provider refused the range; halve the step and retry
			if stepSize <= 1 {
				return nil, fmt.Errorf("failed to get logs for single block %d: %w", currentFrom, err)
			}
			stepSize /= 2
			logger.WarnCtx(ctx, "Too many results, reducing step size",
				zap.Uint64("newStepSize", stepSize),
				zap.Uint64("fromBlock", currentFrom),
				zap.Uint64("toBlock", currentTo))
			continue
		}

		allLogs = append(allLogs, logs...)
		currentFrom = currentTo + 1
	}

	return allLogs, nil
}

// isTooManyResultsError checks if the error is related to too many results
func isTooManyResultsError(err error) bool {
	if err == nil {
		return false
	}

	errStr := err.Error()
	return strings.Contains(errStr, "query returned more than 10000 results") ||
		strings.Contains(errStr, "query timeout exceeded") ||
		strings.Contains(errStr, "too many results") ||
		strings.Contains(errStr, "exceeded maximum")
}

// callView executes a view call against the vault at an explicit block,
// retrying transient RPC failures with exponential backoff
func (c *vaultClient) callView(ctx context.Context, contract common.Address, atBlock *big.Int, method string, args ...interface{}) ([]interface{}, error) {
	data, err := vaultViewABI.Pack(method, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to pack %s call: %w", method, err)
	}

	var result []byte
	operation := func() error {
		var callErr error
		result, callErr = c.client.CallContract(ctx, ethereum.CallMsg{
			To:   &contract,
			Data: data,
		}, atBlock)
		return callErr
	}

	bo := backoff.NewExponentialBackOff()
	bo.MaxElapsedTime = 30 * time.Second
	if err := backoff.Retry(operation, backoff.WithContext(bo, ctx)); err != nil {
		return nil, fmt.Errorf("failed to call %s: %w", method, err)
	}

	values, err := vaultViewABI.Unpack(method, result)
	if err != nil {
		return nil, fmt.Errorf("failed to unpack %s result: %w", method, err)
	}

	return values, nil
}

func (c *vaultClient) viewAddress(ctx context.Context, contract common.Address, atBlock *big.Int, method string) (string, error) {
	values, err := c.callView(ctx, contract, atBlock, method)
	if err != nil {
		return "", err
	}
	addr, ok := values[0].(common.Address)
	if !ok {
		return "", fmt.Errorf("%s returned unexpected type %T", method, values[0])
	}
	return domain.NormalizeAddress(addr.Hex()), nil
}

func (c *vaultClient) viewString(ctx context.Context, contract common.Address, atBlock *big.Int, method string) (string, error) {
	values, err := c.callView(ctx, contract, atBlock, method)
	if err != nil {
		return "", err
	}
	s, ok := values[0].(string)
	if !ok {
		return "", fmt.Errorf("%s returned unexpected type %T", method, values[0])
	}
	return s, nil
}

func (c *vaultClient) viewBigInt(ctx context.Context, contract common.Address, atBlock *big.Int, method string, args ...interface{}) (*big.Int, error) {
	values, err := c.callView(ctx, contract, atBlock, method, args...)
	if err != nil {
		return nil, err
	}
	v, ok := values[0].(*big.Int)
	if !ok {
		return nil, fmt.Errorf("%s returned unexpected type %T", method, values[0])
	}
	return v, nil
}

func (c *vaultClient) viewBytes(ctx context.Context, contract common.Address, atBlock *big.Int, method string) (string, error) {
	values, err := c.callView(ctx, contract, atBlock, method)
	if err != nil {
		return "", err
	}
	b, ok := values[0].([]byte)
	if !ok {
		return "", fmt.Errorf("%s returned unexpected type %T", method, values[0])
	}
	if len(b) == 0 {
		return "", nil
	}
	return "0x" + common.Bytes2Hex(b), nil
}

// VaultConfig reads the full vault configuration at an explicit block
func (c *vaultClient) VaultConfig(ctx context.Context, vaultAddress string, atBlock uint64) (*domain.VaultConfig, error) {
	contract := common.HexToAddress(vaultAddress)
	blockNumber := new(big.Int).SetUint64(atBlock)

	cfg := &domain.VaultConfig{}
	var err error

	if cfg.Asset, err = c.viewAddress(ctx, contract, blockNumber, "asset"); err != nil {
		return nil, err
	}
	if cfg.Owner, err = c.viewAddress(ctx, contract, blockNumber, "owner"); err != nil {
		return nil, err
	}
	if cfg.Curator, err = c.viewAddress(ctx, contract, blockNumber, "curator"); err != nil {
		return nil, err
	}
	if cfg.Name, err = c.viewString(ctx, contract, blockNumber, "name"); err != nil {
		return nil, err
	}
	if cfg.Symbol, err = c.viewString(ctx, contract, blockNumber, "symbol"); err != nil {
		return nil, err
	}
	if cfg.PerformanceFee, err = c.viewBigInt(ctx, contract, blockNumber, "performanceFee"); err != nil {
		return nil, err
	}
	if cfg.ManagementFee, err = c.viewBigInt(ctx, contract, blockNumber, "managementFee"); err != nil {
		return nil, err
	}
	if cfg.PerformanceFeeRecipient, err = c.viewAddress(ctx, contract, blockNumber, "performanceFeeRecipient"); err != nil {
		return nil, err
	}
	if cfg.ManagementFeeRecipient, err = c.viewAddress(ctx, contract, blockNumber, "managementFeeRecipient"); err != nil {
		return nil, err
	}
	if cfg.MaxRate, err = c.viewBigInt(ctx, contract, blockNumber, "maxRate"); err != nil {
		return nil, err
	}
	if cfg.SharesGate, err = c.viewAddress(ctx, contract, blockNumber, "sharesGate"); err != nil {
		return nil, err
	}
	if cfg.ReceiveSharesGate, err = c.viewAddress(ctx, contract, blockNumber, "receiveSharesGate"); err != nil {
		return nil, err
	}
	if cfg.ReceiveAssetsGate, err = c.viewAddress(ctx, contract, blockNumber, "receiveAssetsGate"); err != nil {
		return nil, err
	}
	if cfg.SendAssetsGate, err = c.viewAddress(ctx, contract, blockNumber, "sendAssetsGate"); err != nil {
		return nil, err
	}
	if cfg.LiquidityAdapter, err = c.viewAddress(ctx, contract, blockNumber, "liquidityAdapter"); err != nil {
		return nil, err
	}
	if cfg.LiquidityData, err = c.viewBytes(ctx, contract, blockNumber, "liquidityData"); err != nil {
		return nil, err
	}
	if cfg.TotalAssets, err = c.viewBigInt(ctx, contract, blockNumber, "totalAssets"); err != nil {
		return nil, err
	}
	if cfg.TotalSupply, err = c.viewBigInt(ctx, contract, blockNumber, "totalSupply"); err != nil {
		return nil, err
	}

	return cfg, nil
}

// ConvertToAssets calls the vault's own share-to-asset conversion at an explicit block
func (c *vaultClient) ConvertToAssets(ctx context.Context, vaultAddress string, shares *big.Int, atBlock uint64) (*big.Int, error) {
	contract := common.HexToAddress(vaultAddress)
	return c.viewBigInt(ctx, contract, new(big.Int).SetUint64(atBlock), "convertToAssets", shares)
}

// ParseEventLog decodes a raw log into a normalized vault event
func (c *vaultClient) ParseEventLog(ctx context.Context, vLog types.Log) (*domain.VaultEvent, error) {
	if len(vLog.Topics) == 0 {
		return nil, nil
	}

	timestamp, err := c.blocks.GetBlockTimestamp(ctx, vLog.BlockNumber)
	if err != nil {
		return nil, fmt.Errorf("failed to get block timestamp: %w", err)
	}

	event := &domain.VaultEvent{
		Chain:        c.chainID,
		VaultAddress: domain.NormalizeAddress(vLog.Address.Hex()),
		BlockNumber:  vLog.BlockNumber,
		BlockTime:    timestamp,
		TxHash:       strings.ToLower(vLog.TxHash.Hex()),
		TxIndex:      uint64(vLog.TxIndex),
		LogIndex:     uint64(vLog.Index),
	}

	switch vLog.Topics[0] {
	case createVaultSignature:
		// CreateVault(address indexed asset, address indexed owner)
		if len(vLog.Topics) != 3 {
			return nil, fmt.Errorf("invalid CreateVault event: expected 3 topics, got %d", len(vLog.Topics))
		}
		event.Kind = domain.EventKindVaultCreated
		event.Asset = topicAddress(vLog.Topics[1])
		event.Account = topicAddress(vLog.Topics[2])

	case setOwnerSignature, setCuratorSignature,
		setPerformanceFeeRecipientSignature, setManagementFeeRecipientSignature,
		setSharesGateSignature, setReceiveSharesGateSignature,
		setReceiveAssetsGateSignature, setSendAssetsGateSignature:
		// Single indexed address payload
		if len(vLog.Topics) != 2 {
			return nil, fmt.Errorf("invalid config event: expected 2 topics, got %d", len(vLog.Topics))
		}
		event.Kind = addressConfigKind(vLog.Topics[0])
		event.Account = topicAddress(vLog.Topics[1])

	case setNameSignature, setSymbolSignature:
		values, err := stringArgs.Unpack(vLog.Data)
		if err != nil {
			return nil, fmt.Errorf("failed to unpack string config event: %w", err)
		}
		if vLog.Topics[0] == setNameSignature {
			event.Kind = domain.EventKindSetName
		} else {
			event.Kind = domain.EventKindSetSymbol
		}
		event.Value = values[0].(string)

	case setPerformanceFeeSignature, setManagementFeeSignature, setMaxRateSignature:
		values, err := uintArgs.Unpack(vLog.Data)
		if err != nil {
			return nil, fmt.Errorf("failed to unpack rate config event: %w", err)
		}
		switch vLog.Topics[0] {
		case setPerformanceFeeSignature:
			event.Kind = domain.EventKindSetPerformanceFee
		case setManagementFeeSignature:
			event.Kind = domain.EventKindSetManagementFee
		default:
			event.Kind = domain.EventKindSetMaxRate
		}
		event.Amount = values[0].(*big.Int).String()

	case setLiquidityAdapterSignature:
		// SetLiquidityAdapter(address indexed adapter, bytes data)
		if len(vLog.Topics) != 2 {
			return nil, fmt.Errorf("invalid SetLiquidityAdapter event: expected 2 topics, got %d", len(vLog.Topics))
		}
		values, err := bytesArgs.Unpack(vLog.Data)
		if err != nil {
			return nil, fmt.Errorf("failed to unpack SetLiquidityAdapter event: %w", err)
		}
		event.Kind = domain.EventKindSetLiquidityAdapter
		event.Account = topicAddress(vLog.Topics[1])
		if raw := values[0].([]byte); len(raw) > 0 {
			event.Data = "0x" + common.Bytes2Hex(raw)
		}

	case setIsAllocatorSignature, setIsSentinelSignature, setIsAdapterSignature:
		// SetIsX(address indexed account, bool enabled)
		if len(vLog.Topics) != 2 {
			return nil, fmt.Errorf("invalid role event: expected 2 topics, got %d", len(vLog.Topics))
		}
		values, err := boolArgs.Unpack(vLog.Data)
		if err != nil {
			return nil, fmt.Errorf("failed to unpack role event: %w", err)
		}
		switch vLog.Topics[0] {
		case setIsAllocatorSignature:
			event.Kind = domain.EventKindSetIsAllocator
		case setIsSentinelSignature:
			event.Kind = domain.EventKindSetIsSentinel
		default:
			event.Kind = domain.EventKindSetIsAdapter
		}
		event.Account = topicAddress(vLog.Topics[1])
		event.Enabled = values[0].(bool)

	case accrueInterestSignature:
		// AccrueInterest(uint256 newTotalAssets, uint256 performanceFeeShares, uint256 managementFeeShares)
		values, err := threeUintArgs.Unpack(vLog.Data)
		if err != nil {
			return nil, fmt.Errorf("failed to unpack AccrueInterest event: %w", err)
		}
		event.Kind = domain.EventKindAccrueInterest
		event.NewTotalAssets = values[0].(*big.Int).String()
		event.PerformanceFeeShares = values[1].(*big.Int).String()
		event.ManagementFeeShares = values[2].(*big.Int).String()

	case depositSignature:
		// Deposit(address indexed sender, address indexed owner, uint256 assets, uint256 shares)
		if len(vLog.Topics) != 3 {
			return nil, fmt.Errorf("invalid Deposit event: expected 3 topics, got %d", len(vLog.Topics))
		}
		values, err := twoUintArgs.Unpack(vLog.Data)
		if err != nil {
			return nil, fmt.Errorf("failed to unpack Deposit event: %w", err)
		}
		event.Kind = domain.EventKindDeposit
		event.Sender = topicAddress(vLog.Topics[1])
		event.OwnerAccount = topicAddress(vLog.Topics[2])
		event.Assets = values[0].(*big.Int).String()
		event.Shares = values[1].(*big.Int).String()

	case withdrawSignature:
		// Withdraw(address indexed sender, address indexed receiver, address indexed owner, uint256 assets, uint256 shares)
		if len(vLog.Topics) != 4 {
			return nil, fmt.Errorf("invalid Withdraw event: expected 4 topics, got %d", len(vLog.Topics))
		}
		values, err := twoUintArgs.Unpack(vLog.Data)
		if err != nil {
			return nil, fmt.Errorf("failed to unpack Withdraw event: %w", err)
		}
		event.Kind = domain.EventKindWithdraw
		event.Sender = topicAddress(vLog.Topics[1])
		event.Receiver = topicAddress(vLog.Topics[2])
		event.OwnerAccount = topicAddress(vLog.Topics[3])
		event.Assets = values[0].(*big.Int).String()
		event.Shares = values[1].(*big.Int).String()

	case transferSignature:
		// Transfer(address indexed from, address indexed to, uint256 value)
		// ERC20-shaped; 4 topics means an ERC721 transfer from an unrelated contract
		if len(vLog.Topics) != 3 {
			return nil, nil
		}
		values, err := uintArgs.Unpack(vLog.Data)
		if err != nil {
			return nil, fmt.Errorf("failed to unpack Transfer event: %w", err)
		}
		event.Kind = domain.EventKindTransfer
		event.From = topicAddress(vLog.Topics[1])
		event.To = topicAddress(vLog.Topics[2])
		event.Shares = values[0].(*big.Int).String()

	case increaseAbsoluteCapSignature, decreaseAbsoluteCapSignature,
		increaseRelativeCapSignature, decreaseRelativeCapSignature:
		// XCap(bytes32 indexed id, uint256 newCap)
		if len(vLog.Topics) != 2 {
			return nil, fmt.Errorf("invalid cap event: expected 2 topics, got %d", len(vLog.Topics))
		}
		values, err := uintArgs.Unpack(vLog.Data)
		if err != nil {
			return nil, fmt.Errorf("failed to unpack cap event: %w", err)
		}
		switch vLog.Topics[0] {
		case increaseAbsoluteCapSignature:
			event.Kind = domain.EventKindIncreaseAbsoluteCap
		case decreaseAbsoluteCapSignature:
			event.Kind = domain.EventKindDecreaseAbsoluteCap
		case increaseRelativeCapSignature:
			event.Kind = domain.EventKindIncreaseRelativeCap
		default:
			event.Kind = domain.EventKindDecreaseRelativeCap
		}
		event.IdentifierID = strings.ToLower(vLog.Topics[1].Hex())
		event.Amount = values[0].(*big.Int).String()

	case allocateSignature, deallocateSignature:
		// Allocate/Deallocate(uint256 assets, bytes32[] ids)
		values, err := allocationArgs.Unpack(vLog.Data)
		if err != nil {
			return nil, fmt.Errorf("failed to unpack allocation event: %w", err)
		}
		assets := values[0].(*big.Int)
		if vLog.Topics[0] == allocateSignature {
			event.Kind = domain.EventKindAllocate
			event.Change = assets.String()
		} else {
			event.Kind = domain.EventKindDeallocate
			event.Change = new(big.Int).Neg(assets).String()
		}
		event.Identifiers = identifierHashes(values[1].([][32]byte))

	case forceDeallocateSignature:
		// ForceDeallocate(uint256 assets, bytes32[] ids, uint256 penaltyShares)
		values, err := forceDeallocArgs.Unpack(vLog.Data)
		if err != nil {
			return nil, fmt.Errorf("failed to unpack ForceDeallocate event: %w", err)
		}
		event.Kind = domain.EventKindForceDeallocate
		event.Change = new(big.Int).Neg(values[0].(*big.Int)).String()
		event.Identifiers = identifierHashes(values[1].([][32]byte))
		event.Penalty = values[2].(*big.Int).String()

	default:
		return nil, fmt.Errorf("unknown event signature: %s", vLog.Topics[0].Hex())
	}

	return event, nil
}

// addressConfigKind maps a single-address config event signature to its kind
func addressConfigKind(signature common.Hash) domain.EventKind {
	switch signature {
	case setOwnerSignature:
		return domain.EventKindSetOwner
	case setCuratorSignature:
		return domain.EventKindSetCurator
	case setPerformanceFeeRecipientSignature:
		return domain.EventKindSetPerformanceFeeRecipient
	case setManagementFeeRecipientSignature:
		return domain.EventKindSetManagementFeeRecipient
	case setSharesGateSignature:
		return domain.EventKindSetSharesGate
	case setReceiveSharesGateSignature:
		return domain.EventKindSetReceiveSharesGate
	case setReceiveAssetsGateSignature:
		return domain.EventKindSetReceiveAssetsGate
	default:
		return domain.EventKindSetSendAssetsGate
	}
}

func topicAddress(topic common.Hash) string {
	return domain.NormalizeAddress(common.BytesToAddress(topic.Bytes()).Hex())
}

func identifierHashes(ids [][32]byte) []string {
	hashes := make([]string, 0, len(ids))
	for _, id := range ids {
		hashes = append(hashes, strings.ToLower(common.Hash(id).Hex()))
	}
	return hashes
}

// Close closes the connection
func (c *vaultClient) Close() {
	c.client.Close()
}
