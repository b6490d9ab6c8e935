package model

import "time"

// FinancialAccount is a fund or designation contributions are posted to.
// ParentAccountID of zero means top level.
type FinancialAccount struct {
	ID              int32
	Name            string
	ParentAccountID int32
	IsTaxDeductible bool
	Campus          Campus
}

func (*FinancialAccount) FileName() string { return "financial-account.csv" }

func (*FinancialAccount) Header() []string {
	return []string{"Id", "Name", "ParentAccountId", "IsTaxDeductible", "CampusId"}
}

func (a *FinancialAccount) Row() []string {
	return []string{
		formatID(a.ID), a.Name, formatID(a.ParentAccountID),
		formatBool(a.IsTaxDeductible), formatID(a.Campus.CampusID),
	}
}

// FinancialBatch groups transactions the way the source system batched them
// (a Sunday's deposit, an online settlement day). It owns its transactions
// for writer fan-out; transactions in turn own their details.
type FinancialBatch struct {
	ID                 int32
	Name               string
	StartDate          *time.Time
	EndDate            *time.Time
	Status             BatchStatus
	CreatedByPersonID  int32
	CreatedDateTime    *time.Time
	ModifiedByPersonID int32
	ModifiedDateTime   *time.Time

	Transactions []FinancialTransaction
}

func (*FinancialBatch) FileName() string { return "financial-batch.csv" }

func (*FinancialBatch) Header() []string {
	return []string{
		"Id", "Name", "StartDate", "EndDate", "Status",
		"CreatedByPersonId", "CreatedDateTime", "ModifiedByPersonId", "ModifiedDateTime",
	}
}

func (b *FinancialBatch) Row() []string {
	return []string{
		formatID(b.ID), b.Name, formatDate(b.StartDate), formatDate(b.EndDate), b.Status.String(),
		formatID(b.CreatedByPersonID), formatDateTime(b.CreatedDateTime),
		formatID(b.ModifiedByPersonID), formatDateTime(b.ModifiedDateTime),
	}
}

func (b *FinancialBatch) Children() []Entity {
	children := make([]Entity, 0, len(b.Transactions))
	for i := range b.Transactions {
		children = append(children, &b.Transactions[i])
	}
	return children
}

// FinancialTransaction is one contribution. AuthorizedPersonID is the giver.
type FinancialTransaction struct {
	ID                 int32
	BatchID            int32
	AuthorizedPersonID int32
	TransactionDate    *time.Time
	TransactionType    TransactionType
	TransactionSource  TransactionSource
	CurrencyType       CurrencyType
	Summary            string
	TransactionCode    string

	Details []FinancialTransactionDetail
}

func (*FinancialTransaction) FileName() string { return "financial-transaction.csv" }

func (*FinancialTransaction) Header() []string {
	return []string{
		"Id", "BatchId", "AuthorizedPersonId", "TransactionDate",
		"TransactionType", "TransactionSource", "CurrencyType", "Summary", "TransactionCode",
	}
}

func (t *FinancialTransaction) Row() []string {
	return []string{
		formatID(t.ID), formatID(t.BatchID), formatID(t.AuthorizedPersonID),
		formatDate(t.TransactionDate),
		t.TransactionType.String(), t.TransactionSource.String(), t.CurrencyType.String(),
		t.Summary, t.TransactionCode,
	}
}

func (t *FinancialTransaction) Children() []Entity {
	children := make([]Entity, 0, len(t.Details))
	for i := range t.Details {
		children = append(children, &t.Details[i])
	}
	return children
}

// FinancialTransactionDetail splits a transaction's amount across accounts.
type FinancialTransactionDetail struct {
	TransactionID int32
	AccountID     int32
	Amount        Cents
	Summary       string
}

func (*FinancialTransactionDetail) FileName() string { return "financial-transactiondetail.csv" }

func (*FinancialTransactionDetail) Header() []string {
	return []string{"TransactionId", "AccountId", "Amount", "Summary"}
}

func (d *FinancialTransactionDetail) Row() []string {
	return []string{
		formatID(d.TransactionID), formatID(d.AccountID), d.Amount.String(), d.Summary,
	}
}
