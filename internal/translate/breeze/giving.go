package breeze

import (
	"github.com/slingshot-dev/slingshot/internal/coerce"
	"github.com/slingshot-dev/slingshot/internal/model"
	"github.com/slingshot-dev/slingshot/internal/translate"
)

// TranslateContribution folds one giving.csv row into the accumulator.
// Breeze exposes neither account nor batch ids, so both are synthesized:
// the account from the fund name, the batch from the gift date (one batch
// per day, matching how Breeze groups deposits). Returns false when the
// row lacks a transaction id or giver.
func TranslateContribution(ctx *translate.Context, bag coerce.Bag) bool {
	v := ctx.Table("contribution").Apply(bag)

	txID := v.ID("Id")
	personID := v.ID("PersonId")
	if txID == 0 || personID == 0 {
		return false
	}

	date := v.Date("Date")
	fund := v.String("Fund")
	if fund == "" {
		fund = "General Fund"
	}
	account := ctx.Acc.Account(model.SynthesizeID(fund), fund, true)

	batchName := "Breeze Import"
	if date != nil {
		batchName = "Breeze " + date.Format("2006-01-02")
	}
	batch := ctx.Acc.Batch(model.SynthesizeID(batchName), batchName, date)

	tx := model.FinancialTransaction{
		ID:                 txID,
		BatchID:            batch.ID,
		AuthorizedPersonID: personID,
		TransactionDate:    date,
		TransactionType:    model.TransactionTypeContribution,
		TransactionSource:  v.TransactionSource("Source"),
		CurrencyType:       v.CurrencyType("Method"),
		TransactionCode:    v.String("CheckNumber"),
		Details: []model.FinancialTransactionDetail{{
			TransactionID: txID,
			AccountID:     account.ID,
			Amount:        v.Cents("Amount"),
			Summary:       v.String("Note"),
		}},
	}
	batch.Transactions = append(batch.Transactions, tx)
	return true
}
