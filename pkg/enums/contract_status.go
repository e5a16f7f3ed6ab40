package enums

import "fmt"

// ContractStatus tracks the lifecycle of a pre-order contract.
type ContractStatus string

const (
	ContractStatusWaitingDeposit      ContractStatus = "waiting_deposit"
	ContractStatusDeposited           ContractStatus = "deposited"
	ContractStatusReadyForPayment     ContractStatus = "ready_for_payment"
	ContractStatusPendingFinalPayment ContractStatus = "pending_final_payment"
	ContractStatusCompleted           ContractStatus = "completed"
	ContractStatusCancelled           ContractStatus = "cancelled"
)

var validContractStatuses = []ContractStatus{
	ContractStatusWaitingDeposit,
	ContractStatusDeposited,
	ContractStatusReadyForPayment,
	ContractStatusPendingFinalPayment,
	ContractStatusCompleted,
	ContractStatusCancelled,
}

// String implements fmt.Stringer.
func (s ContractStatus) String() string {
	return string(s)
}

// IsValid reports whether the value is a known ContractStatus.
func (s ContractStatus) IsValid() bool {
	for _, candidate := range validContractStatuses {
		if candidate == s {
			return true
		}
	}
	return false
}

// IsTerminal reports whether the contract can no longer change state.
func (s ContractStatus) IsTerminal() bool {
	return s == ContractStatusCompleted || s == ContractStatusCancelled
}

// ParseContractStatus converts raw input into a ContractStatus.
func ParseContractStatus(value string) (ContractStatus, error) {
	for _, candidate := range validContractStatuses {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid contract status %q", value)
}
