package schema

// AccrueInterestEvent represents the accrue_interest_events table
type AccrueInterestEvent struct {
	EventCoordinate

	// NewTotalAssets is the vault's reported post-accrual total assets
	NewTotalAssets string `gorm:"column:new_total_assets;not null;default:0;type:numeric(78,0)"`
	// PerformanceFeeShares and ManagementFeeShares are the fee shares minted
	// alongside the accrual
	PerformanceFeeShares string `gorm:"column:performance_fee_shares;not null;default:0;type:numeric(78,0)"`
	ManagementFeeShares  string `gorm:"column:management_fee_shares;not null;default:0;type:numeric(78,0)"`
}

// TableName specifies the table name for the AccrueInterestEvent model
func (AccrueInterestEvent) TableName() string {
	return "accrue_interest_events"
}

// DepositEvent represents the deposit_events table
type DepositEvent struct {
	EventCoordinate

	// Sender is the caller that supplied the assets
	Sender string `gorm:"column:sender;not null;type:text"`
	// OwnerAccount is the account credited with the minted shares
	OwnerAccount string `gorm:"column:owner_account;not null;type:text"`
	Assets       string `gorm:"column:assets;not null;default:0;type:numeric(78,0)"`
	Shares       string `gorm:"column:shares;not null;default:0;type:numeric(78,0)"`
}

// TableName specifies the table name for the DepositEvent model
func (DepositEvent) TableName() string {
	return "deposit_events"
}

// WithdrawEvent represents the withdraw_events table
type WithdrawEvent struct {
	EventCoordinate

	// Sender is the caller, Receiver gets the assets, OwnerAccount is debited shares
	Sender       string `gorm:"column:sender;not null;type:text"`
	Receiver     string `gorm:"column:receiver;not null;type:text"`
	OwnerAccount string `gorm:"column:owner_account;not null;type:text"`
	Assets       string `gorm:"column:assets;not null;default:0;type:numeric(78,0)"`
	Shares       string `gorm:"column:shares;not null;default:0;type:numeric(78,0)"`
}

// TableName specifies the table name for the WithdrawEvent model
func (WithdrawEvent) TableName() string {
	return "withdraw_events"
}

// TransferEvent represents the transfer_events table - share transfers
// including mints (from = zero address) and burns (to = zero address)
type TransferEvent struct {
	EventCoordinate

	FromAddress string `gorm:"column:from_address;not null;type:text"`
	ToAddress   string `gorm:"column:to_address;not null;type:text"`
	Shares      string `gorm:"column:shares;not null;default:0;type:numeric(78,0)"`
}

// TableName specifies the table name for the TransferEvent model
func (TransferEvent) TableName() string {
	return "transfer_events"
}
