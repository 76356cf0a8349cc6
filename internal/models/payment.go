package models

import (
	"fmt"
	"time"
)

type PaymentMethod string

const (
	MethodCreditCard PaymentMethod = "CREDIT_CARD"
	MethodDebitCard  PaymentMethod = "DEBIT_CARD"
)

func ParsePaymentMethod(s string) (PaymentMethod, error) {
	switch m := PaymentMethod(s); m {
	case MethodCreditCard, MethodDebitCard:
		return m, nil
	default:
		return "", fmt.Errorf("unknown payment method %q", s)
	}
}

type PaymentStatus string

const (
	PaymentPending   PaymentStatus = "PENDING"
	PaymentCompleted PaymentStatus = "COMPLETED"
	PaymentFailed    PaymentStatus = "FAILED"
	PaymentRefunded  PaymentStatus = "REFUNDED"
)

func ParsePaymentStatus(s string) (PaymentStatus, error) {
	switch st := PaymentStatus(s); st {
	case PaymentPending, PaymentCompleted, PaymentFailed, PaymentRefunded:
		return st, nil
	default:
		return "", fmt.Errorf("unknown payment status %q", s)
	}
}

// Refundable reports whether the payment may move to REFUNDED.
func (s PaymentStatus) Refundable() bool {
	return s == PaymentCompleted
}

type Payment struct {
	ID            uint          `json:"id"`
	BookingID     uint          `json:"bookingId"`
	Amount        float64       `json:"amount"`
	Method        PaymentMethod `json:"paymentMethod"`
	Status        PaymentStatus `json:"status"`
	TransactionID string        `json:"transactionId,omitempty"`
	PaymentDate   *time.Time    `json:"paymentDate,omitempty"`
}
