package models

import (
	"time"

	"github.com/google/uuid"
)

type TransferChannel string

const (
	TransferChannelBank   TransferChannel = "BANK"
	TransferChannelWallet TransferChannel = "WALLET"
)

// PaymentTransferMethod is a destination for prepaid bank/wallet transfers.
// Managed elsewhere; checkout only validates the selected code is active.
type PaymentTransferMethod struct {
	ID            uuid.UUID       `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	Code          string          `gorm:"type:varchar(32);uniqueIndex;not null" json:"code"`
	Channel       TransferChannel `gorm:"type:varchar(16);not null" json:"channel"`
	Name          string          `gorm:"type:varchar(128);not null" json:"name"`
	AccountName   string          `gorm:"type:varchar(128)" json:"account_name,omitempty"`
	AccountNumber string          `gorm:"type:varchar(64)" json:"account_number,omitempty"`
	IsActive      bool            `gorm:"not null;default:true" json:"is_active"`
	CreatedAt     time.Time       `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt     time.Time       `gorm:"autoUpdateTime" json:"updated_at"`
}
