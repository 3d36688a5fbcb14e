package database

import "fmt"

// RewardSender is the sender recorded on every block reward transaction.
const RewardSender = "chain emissions"

// =============================================================================

// Tx is the transactional information between two parties. No validation is
// performed on the addresses or the amount.
type Tx struct {
	SenderAddress   string  `json:"sender_address"`   // Account sending the amount.
	ReceiverAddress string  `json:"receiver_address"` // Account receiving the amount.
	Amount          float64 `json:"amount"`           // Value being transferred.
}

// NewTx constructs a new transaction.
func NewTx(sender string, receiver string, amount float64) Tx {
	return Tx{
		SenderAddress:   sender,
		ReceiverAddress: receiver,
		Amount:          amount,
	}
}

// NewRewardTx constructs the transaction that pays the miner for sealing
// a block. It is always the first transaction in a block.
func NewRewardTx(minerAddress string, reward float64) Tx {
	return NewTx(RewardSender, minerAddress, reward)
}

// IsReward reports whether the transaction is a block reward.
func (tx Tx) IsReward() bool {
	return tx.SenderAddress == RewardSender
}

// String implements the fmt.Stringer interface for logging.
func (tx Tx) String() string {
	return fmt.Sprintf("%s->%s:%v", tx.SenderAddress, tx.ReceiverAddress, tx.Amount)
}
