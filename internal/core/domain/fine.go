package domain

import (
	"fmt"
	"math"
)

// FineStatus represents the lifecycle state of a fine.
type FineStatus string

const (
	FineUnpaid        FineStatus = "UNPAID"
	FinePartiallyPaid FineStatus = "PARTIALLY_PAID"
	FinePaid          FineStatus = "PAID"
	FineWaived        FineStatus = "WAIVED"
)

// FineStatuses lists the statuses in display order.
var FineStatuses = []FineStatus{FineUnpaid, FinePartiallyPaid, FinePaid, FineWaived}

// Fine mirrors the backend's fine record.
type Fine struct {
	ID         int64      `json:"id,omitempty"`
	MemberID   int64      `json:"memberId"`
	Amount     float64    `json:"amount"`
	AmountPaid float64    `json:"amountPaid"`
	Status     FineStatus `json:"status"`
	Reason     string     `json:"reason"`
	IssueDate  string     `json:"issueDate,omitempty"`
	PaidDate   string     `json:"paidDate,omitempty"`
}

// Cents rounds a money value to whole cents.
func Cents(v float64) int64 { return int64(math.Round(v * 100)) }

// Outstanding is the amount still owed, computed in whole cents.
func (f Fine) Outstanding() float64 {
	return float64(f.outstandingCents()) / 100
}

func (f Fine) outstandingCents() int64 {
	if f.Status == FineWaived || f.Status == FinePaid {
		return 0
	}
	o := Cents(f.Amount) - Cents(f.AmountPaid)
	if o < 0 {
		return 0
	}
	return o
}

// Settled reports whether the fine accepts no further payments.
func (f Fine) Settled() bool { return f.Status == FinePaid || f.Status == FineWaived }

// ValidatePayment rejects payments that are not positive or exceed the outstanding balance.
func (f Fine) ValidatePayment(amount float64) error {
	if f.Settled() {
		return Invalid(fmt.Sprintf("fine is already %s", f.Status))
	}
	if Cents(amount) <= 0 {
		return Invalid("payment amount must be greater than zero")
	}
	if Cents(amount) > f.outstandingCents() {
		return Invalid(fmt.Sprintf("payment of %.2f exceeds outstanding balance of %.2f", amount, f.Outstanding()))
	}
	return nil
}
