package resolver

import (
	"context"
	"encoding/json"

	"betterreads-backend/domain/model"
)

// Field argument shapes. Mutations taking an input object wrap it under
// "input"; everything else passes scalars at the top level.

type inputArgs[T any] struct {
	Input T `json:"input"`
}

type getUserArgs struct {
	UserID string `json:"userId" validate:"required"`
}

type getUserByEmailArgs struct {
	Email string `json:"email" validate:"required,email"`
}

type getBookArgs struct {
	ISBN string `json:"isbn" validate:"required"`
}

type getUserBooksArgs struct {
	UserID string `json:"userId" validate:"required"`
}

type booksOnShelfArgs struct {
	Shelf string `json:"shelf" validate:"required"`
}

type bookFeedArgs struct {
	BookID string `json:"bookId" validate:"required"`
	Limit  *int   `json:"limit,omitempty" validate:"omitempty,min=1,max=100"`
}

type feedArgs struct {
	Limit *int `json:"limit,omitempty" validate:"omitempty,min=1,max=100"`
}

type bookIDArgs struct {
	BookID string `json:"bookId" validate:"required"`
}

type friendIDArgs struct {
	FriendID string `json:"friendId" validate:"required"`
}

type shelfIDArgs struct {
	ShelfID string `json:"shelfId" validate:"required"`
}

type shelfBookRatingArgs struct {
	ShelfID string `json:"shelfId" validate:"required"`
	BookID  string `json:"bookId" validate:"required"`
	Rating  *int   `json:"rating,omitempty" validate:"omitempty,min=1,max=5"`
}

type loanIDArgs struct {
	LoanID string `json:"loanId" validate:"required"`
}

func (d *Dispatcher) buildBindings() map[binding]handlerFunc {
	return map[binding]handlerFunc{
		// Queries
		{TypeQuery, "getUser"}: func(ctx context.Context, raw json.RawMessage) (any, error) {
			args, err := decodeArgs[getUserArgs](d, raw)
			if err != nil {
				return nil, err
			}
			return d.mapper.GetUser(ctx, args.UserID)
		},
		{TypeQuery, "me"}: func(ctx context.Context, _ json.RawMessage) (any, error) {
			return d.mapper.Me(ctx)
		},
		{TypeQuery, "getUserByEmail"}: func(ctx context.Context, raw json.RawMessage) (any, error) {
			args, err := decodeArgs[getUserByEmailArgs](d, raw)
			if err != nil {
				return nil, err
			}
			return d.mapper.GetUserByEmail(ctx, args.Email)
		},
		{TypeQuery, "getBook"}: func(ctx context.Context, raw json.RawMessage) (any, error) {
			args, err := decodeArgs[getBookArgs](d, raw)
			if err != nil {
				return nil, err
			}
			return d.mapper.GetBook(ctx, args.ISBN)
		},
		{TypeQuery, "getUserBooks"}: func(ctx context.Context, raw json.RawMessage) (any, error) {
			args, err := decodeArgs[getUserBooksArgs](d, raw)
			if err != nil {
				return nil, err
			}
			return d.mapper.UserBooks(ctx, args.UserID)
		},
		{TypeQuery, "myBooks"}: func(ctx context.Context, _ json.RawMessage) (any, error) {
			return d.mapper.MyBooks(ctx)
		},
		{TypeQuery, "booksOnShelf"}: func(ctx context.Context, raw json.RawMessage) (any, error) {
			args, err := decodeArgs[booksOnShelfArgs](d, raw)
			if err != nil {
				return nil, err
			}
			return d.mapper.BooksOnShelf(ctx, args.Shelf)
		},
		{TypeQuery, "getBookReviews"}: func(ctx context.Context, raw json.RawMessage) (any, error) {
			args, err := decodeArgs[bookFeedArgs](d, raw)
			if err != nil {
				return nil, err
			}
			return d.mapper.BookReviews(ctx, args.BookID, args.Limit)
		},
		{TypeQuery, "myReviews"}: func(ctx context.Context, raw json.RawMessage) (any, error) {
			args, err := decodeArgs[feedArgs](d, raw)
			if err != nil {
				return nil, err
			}
			return d.mapper.MyReviews(ctx, args.Limit)
		},
		{TypeQuery, "getFriends"}: func(ctx context.Context, _ json.RawMessage) (any, error) {
			return d.mapper.Friends(ctx)
		},
		{TypeQuery, "getActivityFeed"}: func(ctx context.Context, raw json.RawMessage) (any, error) {
			args, err := decodeArgs[feedArgs](d, raw)
			if err != nil {
				return nil, err
			}
			return d.mapper.ActivityFeed(ctx, args.Limit)
		},
		{TypeQuery, "getReadingStats"}: func(ctx context.Context, _ json.RawMessage) (any, error) {
			return d.mapper.ReadingStats(ctx)
		},
		{TypeQuery, "myCustomShelves"}: func(ctx context.Context, _ json.RawMessage) (any, error) {
			return d.mapper.MyCustomShelves(ctx)
		},
		{TypeQuery, "myLoans"}: func(ctx context.Context, _ json.RawMessage) (any, error) {
			return d.mapper.MyLoans(ctx)
		},
		{TypeQuery, "activeLoans"}: func(ctx context.Context, _ json.RawMessage) (any, error) {
			return d.mapper.ActiveLoans(ctx)
		},
		{TypeQuery, "loansForBook"}: func(ctx context.Context, raw json.RawMessage) (any, error) {
			args, err := decodeArgs[bookIDArgs](d, raw)
			if err != nil {
				return nil, err
			}
			return d.mapper.LoansForBook(ctx, args.BookID)
		},

		// Mutations
		{TypeMutation, "createUser"}: func(ctx context.Context, raw json.RawMessage) (any, error) {
			args, err := decodeArgs[inputArgs[model.CreateUserInput]](d, raw)
			if err != nil {
				return nil, err
			}
			return d.mapper.CreateUser(ctx, args.Input)
		},
		{TypeMutation, "addBookToShelf"}: func(ctx context.Context, raw json.RawMessage) (any, error) {
			args, err := decodeArgs[inputArgs[model.AddBookToShelfInput]](d, raw)
			if err != nil {
				return nil, err
			}
			return d.mapper.AddBookToShelf(ctx, args.Input)
		},
		{TypeMutation, "updateBookShelf"}: func(ctx context.Context, raw json.RawMessage) (any, error) {
			args, err := decodeArgs[inputArgs[model.UpdateBookShelfInput]](d, raw)
			if err != nil {
				return nil, err
			}
			return d.mapper.UpdateBookShelf(ctx, args.Input)
		},
		{TypeMutation, "removeBookFromShelf"}: func(ctx context.Context, raw json.RawMessage) (any, error) {
			args, err := decodeArgs[bookIDArgs](d, raw)
			if err != nil {
				return nil, err
			}
			if err := d.mapper.RemoveBookFromShelf(ctx, args.BookID); err != nil {
				return nil, err
			}
			return map[string]any{"bookId": args.BookID}, nil
		},
		{TypeMutation, "createReview"}: func(ctx context.Context, raw json.RawMessage) (any, error) {
			args, err := decodeArgs[inputArgs[model.CreateReviewInput]](d, raw)
			if err != nil {
				return nil, err
			}
			return d.mapper.CreateReview(ctx, args.Input)
		},
		{TypeMutation, "addFriend"}: func(ctx context.Context, raw json.RawMessage) (any, error) {
			args, err := decodeArgs[friendIDArgs](d, raw)
			if err != nil {
				return nil, err
			}
			return d.mapper.AddFriend(ctx, args.FriendID)
		},
		{TypeMutation, "createCustomShelf"}: func(ctx context.Context, raw json.RawMessage) (any, error) {
			args, err := decodeArgs[inputArgs[model.CreateCustomShelfInput]](d, raw)
			if err != nil {
				return nil, err
			}
			return d.mapper.CreateCustomShelf(ctx, args.Input)
		},
		{TypeMutation, "updateCustomShelf"}: func(ctx context.Context, raw json.RawMessage) (any, error) {
			args, err := decodeArgs[inputArgs[model.UpdateCustomShelfInput]](d, raw)
			if err != nil {
				return nil, err
			}
			return d.mapper.UpdateCustomShelf(ctx, args.Input)
		},
		{TypeMutation, "deleteCustomShelf"}: func(ctx context.Context, raw json.RawMessage) (any, error) {
			args, err := decodeArgs[shelfIDArgs](d, raw)
			if err != nil {
				return nil, err
			}
			if err := d.mapper.DeleteCustomShelf(ctx, args.ShelfID); err != nil {
				return nil, err
			}
			return map[string]any{"shelfId": args.ShelfID}, nil
		},
		{TypeMutation, "updateShelfBookRating"}: func(ctx context.Context, raw json.RawMessage) (any, error) {
			args, err := decodeArgs[shelfBookRatingArgs](d, raw)
			if err != nil {
				return nil, err
			}
			return d.mapper.UpdateShelfBookRating(ctx, args.ShelfID, args.BookID, args.Rating)
		},
		{TypeMutation, "lendBook"}: func(ctx context.Context, raw json.RawMessage) (any, error) {
			args, err := decodeArgs[inputArgs[model.LendBookInput]](d, raw)
			if err != nil {
				return nil, err
			}
			return d.mapper.LendBook(ctx, args.Input)
		},
		{TypeMutation, "returnBook"}: func(ctx context.Context, raw json.RawMessage) (any, error) {
			args, err := decodeArgs[loanIDArgs](d, raw)
			if err != nil {
				return nil, err
			}
			return d.mapper.ReturnBook(ctx, args.LoanID)
		},
		{TypeMutation, "updateLoan"}: func(ctx context.Context, raw json.RawMessage) (any, error) {
			args, err := decodeArgs[inputArgs[model.UpdateLoanInput]](d, raw)
			if err != nil {
				return nil, err
			}
			return d.mapper.UpdateLoan(ctx, args.Input)
		},
		{TypeMutation, "deleteLoan"}: func(ctx context.Context, raw json.RawMessage) (any, error) {
			args, err := decodeArgs[loanIDArgs](d, raw)
			if err != nil {
				return nil, err
			}
			if err := d.mapper.DeleteLoan(ctx, args.LoanID); err != nil {
				return nil, err
			}
			return map[string]any{"loanId": args.LoanID}, nil
		},
		{TypeMutation, "cacheBook"}: func(ctx context.Context, raw json.RawMessage) (any, error) {
			args, err := decodeArgs[inputArgs[model.CacheBookInput]](d, raw)
			if err != nil {
				return nil, err
			}
			return d.mapper.CacheBook(ctx, args.Input)
		},
	}
}
