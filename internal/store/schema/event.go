package schema

import (
	"time"
)

// EventCoordinate carries the globally unique chain coordinate shared by all
// event ledger tables. ID is derived from (chain, tx_hash, log_index), so an
// insert conflict on it identifies a re-delivered event. Rows are never
// mutated or deleted after insert; per-vault ordering is recoverable by
// sorting on (block_number, tx_index, log_index).
type EventCoordinate struct {
	// ID is the unique event coordinate: "<chain>:<tx_hash>:<log_index>"
	ID string `gorm:"column:id;primaryKey;type:text"`
	// Chain identifies the blockchain network (CAIP-2)
	Chain string `gorm:"column:chain;not null;type:text"`
	// VaultAddress is the vault the event belongs to
	VaultAddress string `gorm:"column:vault_address;not null;type:text;index:,composite:vault_block,priority:1"`
	// BlockNumber is the block the event was recorded in
	BlockNumber uint64 `gorm:"column:block_number;not null;type:bigint;index:,composite:vault_block,priority:2"`
	// BlockTime is the block timestamp
	BlockTime time.Time `gorm:"column:block_time;not null;type:timestamptz"`
	// TxHash is the transaction hash, lowercase hex
	TxHash string `gorm:"column:tx_hash;not null;type:text"`
	// TxIndex is the transaction's position within the block
	TxIndex uint64 `gorm:"column:tx_index;not null;type:bigint"`
	// LogIndex is the log's position within the block
	LogIndex uint64 `gorm:"column:log_index;not null;type:bigint"`
	// CreatedAt is the timestamp when this record was indexed
	CreatedAt time.Time `gorm:"column:created_at;not null;default:now();type:timestamptz"`
}
