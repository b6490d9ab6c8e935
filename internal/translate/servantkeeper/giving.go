package servantkeeper

import (
	"github.com/slingshot-dev/slingshot/internal/coerce"
	"github.com/slingshot-dev/slingshot/internal/model"
	"github.com/slingshot-dev/slingshot/internal/translate"
)

// TranslateContribution appends one contribution row to its batch.
// ServantKeeper has no transaction or batch ids; both are synthesized,
// the batch from its posting date so contributions entered together land
// in the same batch. The amount column holds ciphertext (see cipher.go).
func TranslateContribution(ctx *translate.Context, bag coerce.Bag) bool {
	v := ctx.Table("contribution").Apply(bag)

	personID := v.ID("PersonId")
	if personID == 0 {
		return false
	}
	amount := DecodeAmount(v.String("EncodedAmount"))
	if amount == nil {
		return false
	}

	fund := v.String("Fund")
	if fund == "" {
		fund = "General Fund"
	}
	account := ctx.Acc.Account(model.SynthesizeID("sk-account", fund), fund, true)

	date := v.Date("Date")
	batchName := "ServantKeeper Import"
	if date != nil {
		batchName = "ServantKeeper " + date.Format("2006-01-02")
	}
	batch := ctx.Acc.Batch(model.SynthesizeID("sk-batch", batchName), batchName, date)

	txID := model.SynthesizeID(
		"sk-contribution", v.String("PersonId"), v.String("Date"),
		v.String("Fund"), v.String("EncodedAmount"), v.String("CheckNumber"),
	)
	tx := model.FinancialTransaction{
		ID:                 txID,
		BatchID:            batch.ID,
		AuthorizedPersonID: personID,
		TransactionDate:    date,
		TransactionType:    model.TransactionTypeContribution,
		TransactionSource:  model.TransactionSourceOnsiteCollection,
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
