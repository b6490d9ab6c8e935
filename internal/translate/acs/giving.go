package acs

import (
	"github.com/slingshot-dev/slingshot/internal/coerce"
	"github.com/slingshot-dev/slingshot/internal/model"
	"github.com/slingshot-dev/slingshot/internal/translate"
)

// TranslateContribution appends one contribution row to its batch. ACS
// funds carry real ids; batches are keyed by posting date because the
// converted database loses the original deposit grouping.
func TranslateContribution(ctx *translate.Context, bag coerce.Bag) bool {
	v := ctx.Table("contribution").Apply(bag)

	personID := v.ID("PersonId")
	amount := v.CentsPtr("Amount")
	if personID == 0 || amount == nil {
		return false
	}

	accountID := v.ID("FundId")
	fundName := v.String("FundName")
	if accountID == 0 {
		if fundName == "" {
			fundName = "General Fund"
		}
		accountID = model.SynthesizeID("acs-fund", fundName)
	}
	account := ctx.Acc.Account(accountID, fundName, !v.Bool("NonDeductible"))

	date := v.Date("Date")
	batchName := "ACS Import"
	if date != nil {
		batchName = "ACS " + date.Format("2006-01-02")
	}
	batch := ctx.Acc.Batch(model.SynthesizeID("acs-batch", batchName), batchName, date)

	txID := v.ID("Id")
	if txID == 0 {
		txID = model.SynthesizeID(
			"acs-contribution", v.String("PersonId"), v.String("Date"),
			v.String("FundId"), v.String("Amount"), v.String("CheckNumber"),
		)
	}
	tx := model.FinancialTransaction{
		ID:                 txID,
		BatchID:            batch.ID,
		AuthorizedPersonID: personID,
		TransactionDate:    date,
		TransactionType:    model.TransactionTypeContribution,
		TransactionSource:  v.TransactionSource("Source"),
		CurrencyType:       v.CurrencyType("PaymentType"),
		TransactionCode:    v.String("CheckNumber"),
		Details: []model.FinancialTransactionDetail{{
			TransactionID: txID,
			AccountID:     account.ID,
			Amount:        *amount,
			Summary:       v.String("Note"),
		}},
	}
	batch.Transactions = append(batch.Transactions, tx)
	return true
}
