package pco

import (
	"github.com/slingshot-dev/slingshot/internal/coerce"
	"github.com/slingshot-dev/slingshot/internal/model"
	"github.com/slingshot-dev/slingshot/internal/translate"
)

// TranslateFund registers one PCO fund as a financial account.
func TranslateFund(ctx *translate.Context, bag coerce.Bag) bool {
	v := ctx.Table("fund").Apply(bag)
	id := v.ID("Id")
	if id == 0 {
		return false
	}
	account := ctx.Acc.Account(id, v.String("Name"), !v.Bool("NonTaxDeductible"))
	account.Campus.CampusID = v.ID("CampusId")
	return true
}

// TranslateBatch registers one PCO batch. Donations reference it by id.
func TranslateBatch(ctx *translate.Context, bag coerce.Bag) bool {
	v := ctx.Table("batch").Apply(bag)
	id := v.ID("Id")
	if id == 0 {
		return false
	}
	batch := ctx.Acc.Batch(id, v.String("Description"), v.Date("CommittedAt"))
	if v.Date("CommittedAt") == nil {
		batch.Status = model.BatchStatusOpen
	}
	batch.CreatedDateTime = v.Date("CreatedAt")
	batch.ModifiedDateTime = v.Date("UpdatedAt")
	return true
}

// TranslateDonation appends one donation to its batch. A donation outside
// any batch lands in a synthesized "No Batch" bucket rather than being
// dropped. Each designation would be its own detail row; the dump
// flattens to one designation per donation, which is what PCO's export
// API emits.
func TranslateDonation(ctx *translate.Context, bag coerce.Bag) bool {
	v := ctx.Table("donation").Apply(bag)

	txID := v.ID("Id")
	personID := v.ID("PersonId")
	if txID == 0 || personID == 0 {
		return false
	}

	batchID := v.ID("BatchId")
	var batch *model.FinancialBatch
	if batchID != 0 {
		batch = ctx.Acc.Batch(batchID, "", nil)
	} else {
		batch = ctx.Acc.Batch(model.SynthesizeID("pco-no-batch"), "No Batch", nil)
	}

	accountID := v.ID("FundId")
	if accountID == 0 {
		accountID = ctx.Acc.Account(model.SynthesizeID("pco-general-fund"), "General Fund", true).ID
	}

	tx := model.FinancialTransaction{
		ID:                 txID,
		BatchID:            batch.ID,
		AuthorizedPersonID: personID,
		TransactionDate:    v.Date("ReceivedAt"),
		TransactionType:    model.TransactionTypeContribution,
		TransactionSource:  v.TransactionSource("Source"),
		CurrencyType:       v.CurrencyType("PaymentMethod"),
		TransactionCode:    v.String("PaymentCheckNumber"),
		Details: []model.FinancialTransactionDetail{{
			TransactionID: txID,
			AccountID:     accountID,
			Amount:        model.Cents(v.Int("Amount")),
		}},
	}
	batch.Transactions = append(batch.Transactions, tx)
	return true
}

// TranslateCheckIn maps one check-in to an attendance row. PCO does not
// expose a check-in id suitable for the destination, so one is
// synthesized from the person, event time and group.
func TranslateCheckIn(ctx *translate.Context, bag coerce.Bag) (*model.Attendance, bool) {
	v := ctx.Table("checkin").Apply(bag)

	personID := v.ID("PersonId")
	groupID := v.ID("GroupId")
	start := v.Date("StartedAt")
	if personID == 0 || groupID == 0 || start == nil {
		return nil, false
	}

	att := &model.Attendance{
		AttendanceID: model.SynthesizeID(
			v.String("PersonId"), v.String("GroupId"), start.Format("2006-01-02T15:04:05"),
		),
		PersonID:      personID,
		GroupID:       groupID,
		StartDateTime: start,
		EndDateTime:   v.Date("EndedAt"),
		Note:          v.String("Note"),
	}
	return att, true
}
