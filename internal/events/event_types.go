package events

import "time"

// EventType identifies what happened.
type EventType string

const (
	// EventDepositRecorded fires when field staff credit a weighed drop-off.
	EventDepositRecorded EventType = "deposit.recorded"
	// EventVoucherPurchased fires when a resident spends points on a voucher.
	EventVoucherPurchased EventType = "voucher.purchased"
	// EventVoucherRedeemed fires when a merchant consumes a claim.
	EventVoucherRedeemed EventType = "voucher.redeemed"
)

// Event is the envelope handed to subscribers.
type Event struct {
	Type       EventType
	SubjectID  string
	Points     int
	Detail     string
	OccurredAt time.Time
}
