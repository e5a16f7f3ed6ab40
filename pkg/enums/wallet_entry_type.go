package enums

import "fmt"

// WalletEntryType labels one row in the append-only wallet transaction log.
type WalletEntryType string

const (
	WalletEntryOrderPayment   WalletEntryType = "order_payment"
	WalletEntryDepositPayment WalletEntryType = "deposit_payment"
	WalletEntryFinalPayment   WalletEntryType = "final_payment"
	WalletEntryRefund         WalletEntryType = "refund"
	WalletEntryAdjustment     WalletEntryType = "adjustment"
)

var validWalletEntryTypes = []WalletEntryType{
	WalletEntryOrderPayment,
	WalletEntryDepositPayment,
	WalletEntryFinalPayment,
	WalletEntryRefund,
	WalletEntryAdjustment,
}

// IsValid reports whether the value is a known WalletEntryType.
func (t WalletEntryType) IsValid() bool {
	for _, candidate := range validWalletEntryTypes {
		if candidate == t {
			return true
		}
	}
	return false
}

// ParseWalletEntryType converts raw input into a WalletEntryType.
func ParseWalletEntryType(value string) (WalletEntryType, error) {
	for _, candidate := range validWalletEntryTypes {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid wallet entry type %q", value)
}
