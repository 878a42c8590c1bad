package mapper

import (
	"context"

	"betterreads-backend/application/ports"
	"betterreads-backend/domain/model"
)

// MyLoans returns all of the caller's loans, returned or not
func (m *Mapper) MyLoans(ctx context.Context) ([]model.BookLoan, error) {
	sub, err := m.subject(ctx)
	if err != nil {
		return nil, err
	}

	items, err := m.store.Query(ctx, m.tables.BookLoans, ports.Query{
		PartitionName:  "userId",
		PartitionValue: sub,
	})
	if err != nil {
		return nil, err
	}
	return model.DecodeList[model.BookLoan](items)
}

// ActiveLoans returns the caller's loans that have not been returned,
// filtered on the absence of returnedAt.
func (m *Mapper) ActiveLoans(ctx context.Context) ([]model.BookLoan, error) {
	sub, err := m.subject(ctx)
	if err != nil {
		return nil, err
	}

	items, err := m.store.Query(ctx, m.tables.BookLoans, ports.Query{
		PartitionName:   "userId",
		PartitionValue:  sub,
		FilterNotExists: "returnedAt",
	})
	if err != nil {
		return nil, err
	}
	return model.DecodeList[model.BookLoan](items)
}

// LoansForBook returns every loan of one book by the caller, via the
// byBook index. Re-lending the same book mints a new loan, so this is the
// book's full lending history.
func (m *Mapper) LoansForBook(ctx context.Context, bookID string) ([]model.BookLoan, error) {
	sub, err := m.subject(ctx)
	if err != nil {
		return nil, err
	}

	items, err := m.store.Query(ctx, m.tables.BookLoans, ports.Query{
		Index:          ports.IndexByBook,
		PartitionName:  "userId",
		PartitionValue: sub,
		SortName:       "bookId",
		SortValue:      bookID,
	})
	if err != nil {
		return nil, err
	}
	return model.DecodeList[model.BookLoan](items)
}

// LendBook records a new loan under a freshly minted id
func (m *Mapper) LendBook(ctx context.Context, input model.LendBookInput) (*model.BookLoan, error) {
	sub, err := m.subject(ctx)
	if err != nil {
		return nil, err
	}

	item, err := m.store.Put(ctx, m.tables.BookLoans,
		ports.Key{"userId": sub, "loanId": m.newID()},
		ports.Item{
			"bookId":       input.BookID,
			"borrowerName": input.BorrowerName,
			"lentAt":       m.timestamp(),
		})
	if err != nil {
		return nil, err
	}
	return model.Decode[model.BookLoan](item)
}

// ReturnBook stamps a loan's return time. Returning an already-returned loan
// overwrites the stamp with the later time.
func (m *Mapper) ReturnBook(ctx context.Context, loanID string) (*model.BookLoan, error) {
	sub, err := m.subject(ctx)
	if err != nil {
		return nil, err
	}

	item, err := m.store.Update(ctx, m.tables.BookLoans,
		ports.Key{"userId": sub, "loanId": loanID},
		[]ports.Directive{ports.Set("returnedAt", m.timestamp())})
	if err != nil {
		return nil, err
	}
	return model.Decode[model.BookLoan](item)
}

// UpdateLoan corrects the borrower name on an existing loan
func (m *Mapper) UpdateLoan(ctx context.Context, input model.UpdateLoanInput) (*model.BookLoan, error) {
	sub, err := m.subject(ctx)
	if err != nil {
		return nil, err
	}

	item, err := m.store.Update(ctx, m.tables.BookLoans,
		ports.Key{"userId": sub, "loanId": input.LoanID},
		[]ports.Directive{ports.Set("borrowerName", input.BorrowerName)})
	if err != nil {
		return nil, err
	}
	return model.Decode[model.BookLoan](item)
}

// DeleteLoan removes a loan record entirely
func (m *Mapper) DeleteLoan(ctx context.Context, loanID string) error {
	sub, err := m.subject(ctx)
	if err != nil {
		return err
	}
	return m.store.Delete(ctx, m.tables.BookLoans,
		ports.Key{"userId": sub, "loanId": loanID})
}
