package transferstore

import (
	"math/big"
	"time"

	"github.com/uptrace/bun"

	"github.com/chainsafe/settle-rebalancer/pkg/transfer"
)

// TransferDao is a data access object that maps directly to the 'transfers' table in PostgreSQL.
type TransferDao struct {
	bun.BaseModel        `bun:"table:transfers,alias:t"`
	ID                   string    `bun:"id,pk,type:uuid"`
	Kind                 string    `bun:"kind,notnull,type:varchar(16)"`
	Status               string    `bun:"status,notnull,type:varchar(16)"`
	SourceChain          string    `bun:"source_chain,notnull,type:varchar(64)"`
	DestinationChain     string    `bun:"destination_chain,notnull,type:varchar(64)"`
	Amount               string    `bun:"amount,notnull,type:numeric(78,0)"`
	DestinationAddress   string    `bun:"destination_address,notnull,type:varchar(42)"`
	SourceWalletRef      *string   `bun:"source_wallet_ref,type:varchar(255)"`
	DestinationWalletRef *string   `bun:"destination_wallet_ref,type:varchar(255)"`
	Speed                string    `bun:"speed,notnull,type:varchar(16)"`
	ApproveTxID          *string   `bun:"approve_tx_id,type:varchar(66)"`
	BurnTxID             *string   `bun:"burn_tx_id,type:varchar(66)"`
	MintTxID             *string   `bun:"mint_tx_id,type:varchar(66)"`
	TransferTxID         *string   `bun:"transfer_tx_id,type:varchar(66)"`
	MessageBytes         *string   `bun:"message_bytes,type:text"`
	MessageHash          *string   `bun:"message_hash,type:varchar(66)"`
	Attestation          *string   `bun:"attestation,type:text"`
	ErrorMessage         *string   `bun:"error_message,type:text"`
	ResumedFrom          *string   `bun:"resumed_from,type:uuid"`
	CreatedAt            time.Time `bun:"created_at,notnull,default:current_timestamp"`
	UpdatedAt            time.Time `bun:"updated_at,notnull,default:current_timestamp"`
}

func toTransferDao(rec *transfer.Record) *TransferDao {
	return &TransferDao{
		ID:                   rec.ID,
		Kind:                 string(rec.Kind),
		Status:               string(rec.Status),
		SourceChain:          rec.SourceChain,
		DestinationChain:     rec.DestinationChain,
		Amount:               rec.Amount.String(),
		DestinationAddress:   rec.DestinationAddress,
		SourceWalletRef:      nullable(rec.SourceWalletRef),
		DestinationWalletRef: nullable(rec.DestinationWalletRef),
		Speed:                string(rec.Speed),
		ApproveTxID:          nullable(rec.ApproveTxID),
		BurnTxID:             nullable(rec.BurnTxID),
		MintTxID:             nullable(rec.MintTxID),
		TransferTxID:         nullable(rec.TransferTxID),
		MessageBytes:         nullable(rec.MessageBytes),
		MessageHash:          nullable(rec.MessageHash),
		Attestation:          nullable(rec.Attestation),
		ErrorMessage:         nullable(rec.Error),
		ResumedFrom:          nullable(rec.ResumedFrom),
		CreatedAt:            rec.CreatedAt,
		UpdatedAt:            rec.UpdatedAt,
	}
}

func toRecord(dao *TransferDao) *transfer.Record {
	amount, ok := new(big.Int).SetString(dao.Amount, 10)
	if !ok {
		amount = new(big.Int)
	}
	return &transfer.Record{
		ID:                   dao.ID,
		Kind:                 transfer.Kind(dao.Kind),
		Status:               transfer.Status(dao.Status),
		SourceChain:          dao.SourceChain,
		DestinationChain:     dao.DestinationChain,
		Amount:               amount,
		DestinationAddress:   dao.DestinationAddress,
		SourceWalletRef:      deref(dao.SourceWalletRef),
		DestinationWalletRef: deref(dao.DestinationWalletRef),
		Speed:                transfer.Speed(dao.Speed),
		ApproveTxID:          deref(dao.ApproveTxID),
		BurnTxID:             deref(dao.BurnTxID),
		MintTxID:             deref(dao.MintTxID),
		TransferTxID:         deref(dao.TransferTxID),
		MessageBytes:         deref(dao.MessageBytes),
		MessageHash:          deref(dao.MessageHash),
		Attestation:          deref(dao.Attestation),
		Error:                deref(dao.ErrorMessage),
		ResumedFrom:          deref(dao.ResumedFrom),
		CreatedAt:            dao.CreatedAt.UTC(),
		UpdatedAt:            dao.UpdatedAt.UTC(),
	}
}

func nullable(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
