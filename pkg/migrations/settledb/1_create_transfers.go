package settledb

import (
	"context"
	"log"
	"time"

	"github.com/uptrace/bun"

	mghelper "github.com/chainsafe/settle-rebalancer/pkg/pgutil/migrations"
)

// transferV1 is the transfers table as first created. Later schema changes
// get their own migration instead of editing this model.
type transferV1 struct {
	bun.BaseModel        `bun:"table:transfers"`
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

func init() {
	Migrations.MustRegister(func(ctx context.Context, db *bun.DB) error {
		log.Println("creating transfers table...")
		return db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
			if err := mghelper.CreateSchema(ctx, tx, (*transferV1)(nil)); err != nil {
				return err
			}
			return mghelper.CreateModelIndexes(ctx, tx, (*transferV1)(nil),
				"status", "source_wallet_ref", "destination_wallet_ref", "burn_tx_id", "created_at")
		})
	}, func(ctx context.Context, db *bun.DB) error {
		log.Println("dropping transfers table...")
		return mghelper.DropTables(ctx, db, (*transferV1)(nil))
	})
}
