// Package model defines the statement transactions submitted for analysis.
package model

import (
	"fmt"
	"strings"
	"time"
)

// Transaction represents a single entry read from a bank or card statement.
type Transaction struct {
	Date        time.Time
	ID          string
	AccountID   string
	Name        string // Raw transaction description
	Memo        string
	Payee       string
	Type        string // Transaction type (e.g., DEBIT, CHECK, PAYMENT, ATM)
	CheckNumber string
	Amount      float64 // Negative for money leaving the account
}

// Details renders the free text sent to the analysis backend.
func (t Transaction) Details() string {
	var b strings.Builder

	if t.Type != "" {
		b.WriteString(t.Type)
		b.WriteByte(' ')
	}
	if !t.Date.IsZero() {
		b.WriteString(t.Date.Format("2006-01-02"))
		b.WriteByte(' ')
	}
	fmt.Fprintf(&b, "%.2f", t.Amount)

	if name := strings.TrimSpace(t.Name); name != "" {
		b.WriteByte(' ')
		b.WriteString(name)
	}
	if t.CheckNumber != "" {
		fmt.Fprintf(&b, " check #%s", t.CheckNumber)
	}
	if memo := strings.TrimSpace(t.Memo); memo != "" {
		b.WriteString(" / ")
		b.WriteString(memo)
	}
	if payee := strings.TrimSpace(t.Payee); payee != "" && !strings.EqualFold(payee, strings.TrimSpace(t.Name)) {
		fmt.Fprintf(&b, " (payee %s)", payee)
	}

	return b.String()
}
