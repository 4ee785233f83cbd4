package ledger_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
	"golang.org/x/text/language"

	"github.com/frotaops/fleetledger/internal/ledger"
)

func TestService_Create(t *testing.T) {
	categoryID := uuid.New()
	partyID := uuid.New()
	tripID := uuid.New()
	due := time.Date(2024, 4, 10, 0, 0, 0, 0, time.UTC)

	type testCase struct {
		name      string
		params    ledger.CreateParams
		setupMock func(repo *ledger.MockRepository, cats *ledger.MockCategoryDirectory)
		wantLen   int
		wantErr   error
	}

	tests := []testCase{
		{
			name: "SingleEntry",
			params: ledger.CreateParams{
				Direction:   ledger.DirectionPayable,
				CategoryID:  categoryID,
				PartyID:     partyID,
				TotalAmount: decimal.RequireFromString("250.00"),
				DueDate:     due,
			},
			setupMock: func(repo *ledger.MockRepository, cats *ledger.MockCategoryDirectory) {
				cats.EXPECT().Direction(gomock.Any(), categoryID).Return("D", nil)
				repo.EXPECT().
					CreateEntries(gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, entries []*ledger.Entry) error {
						for _, e := range entries {
							e.ID = uuid.New()
							e.CreatedAt = time.Now()
						}
						return nil
					})
			},
			wantLen: 1,
		},
		{
			name: "ThreeInstallments",
			params: ledger.CreateParams{
				Direction:         ledger.DirectionReceivable,
				CategoryID:        categoryID,
				PartyID:           partyID,
				TotalAmount:       decimal.RequireFromString("1000.00"),
				TotalInstallments: 3,
				DueDate:           due,
			},
			setupMock: func(repo *ledger.MockRepository, cats *ledger.MockCategoryDirectory) {
				cats.EXPECT().Direction(gomock.Any(), categoryID).Return("R", nil)
				repo.EXPECT().CreateEntries(gomock.Any(), gomock.Len(3)).Return(nil)
			},
			wantLen: 3,
		},
		{
			name: "CategoryMismatch",
			params: ledger.CreateParams{
				Direction:   ledger.DirectionPayable,
				CategoryID:  categoryID,
				PartyID:     partyID,
				TotalAmount: decimal.RequireFromString("100.00"),
				DueDate:     due,
			},
			setupMock: func(repo *ledger.MockRepository, cats *ledger.MockCategoryDirectory) {
				cats.EXPECT().Direction(gomock.Any(), categoryID).Return("R", nil)
			},
			wantErr: ledger.ErrCategoryMismatch,
		},
		{
			name: "TripOriginWithoutOriginID",
			params: ledger.CreateParams{
				Direction:   ledger.DirectionPayable,
				CategoryID:  categoryID,
				PartyID:     partyID,
				TotalAmount: decimal.RequireFromString("100.00"),
				Origin:      ledger.OriginTrip,
				DueDate:     due,
			},
			wantErr: ledger.ErrMissingOrigin,
		},
		{
			name: "TripOriginWithOriginID",
			params: ledger.CreateParams{
				Direction:   ledger.DirectionPayable,
				CategoryID:  categoryID,
				PartyID:     partyID,
				TotalAmount: decimal.RequireFromString("100.00"),
				Origin:      ledger.OriginTrip,
				OriginID:    &tripID,
				DueDate:     due,
			},
			setupMock: func(repo *ledger.MockRepository, cats *ledger.MockCategoryDirectory) {
				cats.EXPECT().Direction(gomock.Any(), categoryID).Return("D", nil)
				repo.EXPECT().CreateEntries(gomock.Any(), gomock.Len(1)).Return(nil)
			},
			wantLen: 1,
		},
		{
			name: "UnknownDirection",
			params: ledger.CreateParams{
				Direction:   "sideways",
				TotalAmount: decimal.RequireFromString("100.00"),
			},
			wantErr: nil, // plain error, asserted below
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			repo := ledger.NewMockRepository(ctrl)
			cats := ledger.NewMockCategoryDirectory(ctrl)
			if tt.setupMock != nil {
				tt.setupMock(repo, cats)
			}

			svc := ledger.NewService(repo, cats, language.BrazilianPortuguese)
			got, err := svc.Create(context.Background(), tt.params)

			if tt.wantLen == 0 {
				assert.Error(t, err)
				if tt.wantErr != nil {
					assert.ErrorIs(t, err, tt.wantErr)
				}
				assert.Nil(t, got)

				return
			}

			require.NoError(t, err)
			require.Len(t, got, tt.wantLen)

			for i, e := range got {
				assert.Equal(t, i+1, e.InstallmentNumber)
				assert.Equal(t, tt.wantLen, e.TotalInstallments)
			}
		})
	}
}

func TestService_Create_ManualDropsOriginID(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := ledger.NewMockRepository(ctrl)
	cats := ledger.NewMockCategoryDirectory(ctrl)
	svc := ledger.NewService(repo, cats, language.BrazilianPortuguese)

	categoryID := uuid.New()
	stray := uuid.New()

	cats.EXPECT().Direction(gomock.Any(), categoryID).Return("D", nil)
	repo.EXPECT().CreateEntries(gomock.Any(), gomock.Any()).Return(nil)

	got, err := svc.Create(context.Background(), ledger.CreateParams{
		Direction:   ledger.DirectionPayable,
		CategoryID:  categoryID,
		PartyID:     uuid.New(),
		TotalAmount: decimal.RequireFromString("50.00"),
		Origin:      ledger.OriginManual,
		OriginID:    &stray,
		DueDate:     time.Date(2024, 4, 10, 0, 0, 0, 0, time.UTC),
	})

	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Nil(t, got[0].OriginID)
}

func TestService_Settle_Exact(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := ledger.NewMockRepository(ctrl)
	stx := ledger.NewMockSettleTx(ctrl)
	svc := ledger.NewService(repo, ledger.NewMockCategoryDirectory(ctrl), language.BrazilianPortuguese)

	id := uuid.New()
	methodID := uuid.New()
	date := time.Date(2024, 4, 5, 0, 0, 0, 0, time.UTC)

	entry := &ledger.Entry{
		ID:          id,
		Direction:   ledger.DirectionPayable,
		TotalAmount: decimal.RequireFromString("200.00"),
		DueDate:     time.Date(2024, 4, 10, 0, 0, 0, 0, time.UTC),
		Origin:      ledger.OriginManual,
	}

	repo.EXPECT().GetEntry(gomock.Any(), id).Return(entry, nil)
	repo.EXPECT().BeginSettle(gomock.Any()).Return(stx, nil)
	stx.EXPECT().UpdateSettlement(gomock.Any(), entry).Return(nil)
	stx.EXPECT().Commit().Return(nil)
	stx.EXPECT().Rollback().Return(nil)

	result, err := svc.Settle(context.Background(), id, ledger.SettleParams{
		Amount:          decimal.RequireFromString("200.00"),
		Date:            date,
		PaymentMethodID: methodID,
	})

	require.NoError(t, err)
	assert.Nil(t, result.Residual)
	require.NotNil(t, result.Entry.SettlementDate)
	assert.Equal(t, date, *result.Entry.SettlementDate)
	assert.True(t, result.Entry.SettledAmount.Equal(decimal.RequireFromString("200.00")))
	assert.Equal(t, methodID, *result.Entry.PaymentMethodID)
	assert.Empty(t, result.Entry.Note, "exact settlement leaves the note alone")
}

func TestService_Settle_PartialWithResidual(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := ledger.NewMockRepository(ctrl)
	stx := ledger.NewMockSettleTx(ctrl)
	svc := ledger.NewService(repo, ledger.NewMockCategoryDirectory(ctrl), language.BrazilianPortuguese)

	id := uuid.New()
	categoryID := uuid.New()
	partyID := uuid.New()
	date := time.Date(2024, 4, 5, 0, 0, 0, 0, time.UTC)
	due := time.Date(2024, 4, 10, 0, 0, 0, 0, time.UTC)

	entry := &ledger.Entry{
		ID:                id,
		Direction:         ledger.DirectionPayable,
		CategoryID:        categoryID,
		PartyID:           partyID,
		TotalAmount:       decimal.RequireFromString("500.00"),
		InstallmentNumber: 1,
		TotalInstallments: 1,
		DueDate:           due,
		Origin:            ledger.OriginManual,
	}

	repo.EXPECT().GetEntry(gomock.Any(), id).Return(entry, nil)
	repo.EXPECT().BeginSettle(gomock.Any()).Return(stx, nil)
	stx.EXPECT().UpdateSettlement(gomock.Any(), entry).Return(nil)
	stx.EXPECT().CreateEntry(gomock.Any(), gomock.Any()).Return(nil)
	stx.EXPECT().Commit().Return(nil)
	stx.EXPECT().Rollback().Return(nil)

	result, err := svc.Settle(context.Background(), id, ledger.SettleParams{
		Amount:          decimal.RequireFromString("300.00"),
		Date:            date,
		PaymentMethodID: uuid.New(),
		CreateResidual:  true,
	})

	require.NoError(t, err)
	assert.True(t, result.Entry.SettledAmount.Equal(decimal.RequireFromString("300.00")))
	assert.Contains(t, result.Entry.Note, "partial settlement")
	assert.Contains(t, result.Entry.Note, "R$ 500,00")

	residual := result.Residual
	require.NotNil(t, residual)
	assert.True(t, residual.TotalAmount.Equal(decimal.RequireFromString("200.00")))
	assert.Equal(t, ledger.OriginResidualBalance, residual.Origin)
	assert.Equal(t, id, *residual.OriginID)
	assert.Equal(t, categoryID, residual.CategoryID)
	assert.Equal(t, partyID, residual.PartyID)
	assert.Equal(t, date, residual.AccrualDate)
	assert.Equal(t, due, residual.DueDate)
	assert.Nil(t, residual.SettlementDate)
}

func TestService_Settle_ToleranceSettlesForFaceAmount(t *testing.T) {
	type testCase struct {
		name   string
		amount string
	}

	tests := []testCase{
		{name: "JustAbove", amount: "100.004"},
		{name: "JustBelow", amount: "99.996"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			repo := ledger.NewMockRepository(ctrl)
			stx := ledger.NewMockSettleTx(ctrl)
			svc := ledger.NewService(repo, ledger.NewMockCategoryDirectory(ctrl), language.BrazilianPortuguese)

			id := uuid.New()
			entry := &ledger.Entry{
				ID:          id,
				Direction:   ledger.DirectionPayable,
				TotalAmount: decimal.RequireFromString("100.00"),
				DueDate:     time.Date(2024, 4, 10, 0, 0, 0, 0, time.UTC),
				Origin:      ledger.OriginManual,
			}

			repo.EXPECT().GetEntry(gomock.Any(), id).Return(entry, nil)
			repo.EXPECT().BeginSettle(gomock.Any()).Return(stx, nil)
			stx.EXPECT().UpdateSettlement(gomock.Any(), entry).Return(nil)
			stx.EXPECT().Commit().Return(nil)
			stx.EXPECT().Rollback().Return(nil)

			result, err := svc.Settle(context.Background(), id, ledger.SettleParams{
				Amount:          decimal.RequireFromString(tt.amount),
				PaymentMethodID: uuid.New(),
			})

			require.NoError(t, err)
			assert.Nil(t, result.Residual)
			assert.Empty(t, result.Entry.Note)
			assert.True(t, result.Entry.SettledAmount.Equal(decimal.RequireFromString("100.00")),
				"settled amount must equal the face amount, got %s", result.Entry.SettledAmount)
		})
	}
}

func TestService_Settle_PartialWithoutResidual(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := ledger.NewMockRepository(ctrl)
	stx := ledger.NewMockSettleTx(ctrl)
	svc := ledger.NewService(repo, ledger.NewMockCategoryDirectory(ctrl), language.BrazilianPortuguese)

	id := uuid.New()
	entry := &ledger.Entry{
		ID:          id,
		Direction:   ledger.DirectionReceivable,
		TotalAmount: decimal.RequireFromString("500.00"),
		DueDate:     time.Date(2024, 4, 10, 0, 0, 0, 0, time.UTC),
		Origin:      ledger.OriginManual,
	}

	repo.EXPECT().GetEntry(gomock.Any(), id).Return(entry, nil)
	repo.EXPECT().BeginSettle(gomock.Any()).Return(stx, nil)
	stx.EXPECT().UpdateSettlement(gomock.Any(), entry).Return(nil)
	stx.EXPECT().Commit().Return(nil)
	stx.EXPECT().Rollback().Return(nil)

	result, err := svc.Settle(context.Background(), id, ledger.SettleParams{
		Amount:          decimal.RequireFromString("499.00"),
		PaymentMethodID: uuid.New(),
	})

	require.NoError(t, err)
	assert.Nil(t, result.Residual)
	assert.Contains(t, result.Entry.Note, "partial settlement")
}

func TestService_Settle_Errors(t *testing.T) {
	id := uuid.New()
	methodID := uuid.New()
	settled := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	paid := decimal.RequireFromString("100.00")

	type testCase struct {
		name      string
		params    ledger.SettleParams
		setupMock func(repo *ledger.MockRepository)
		wantErr   error
	}

	tests := []testCase{
		{
			name: "MissingPaymentMethod",
			params: ledger.SettleParams{
				Amount: decimal.RequireFromString("100.00"),
			},
			wantErr: ledger.ErrMissingPaymentMethod,
		},
		{
			name: "ZeroAmount",
			params: ledger.SettleParams{
				Amount:          decimal.Zero,
				PaymentMethodID: methodID,
			},
			wantErr: ledger.ErrInvalidPaymentAmount,
		},
		{
			name: "Overpayment",
			params: ledger.SettleParams{
				Amount:          decimal.RequireFromString("100.01"),
				PaymentMethodID: methodID,
			},
			setupMock: func(repo *ledger.MockRepository) {
				repo.EXPECT().GetEntry(gomock.Any(), id).Return(&ledger.Entry{
					ID:          id,
					TotalAmount: decimal.RequireFromString("100.00"),
				}, nil)
			},
			wantErr: ledger.ErrInvalidPaymentAmount,
		},
		{
			name: "AlreadySettled",
			params: ledger.SettleParams{
				Amount:          decimal.RequireFromString("100.00"),
				PaymentMethodID: methodID,
			},
			setupMock: func(repo *ledger.MockRepository) {
				repo.EXPECT().GetEntry(gomock.Any(), id).Return(&ledger.Entry{
					ID:             id,
					TotalAmount:    decimal.RequireFromString("100.00"),
					SettlementDate: &settled,
					SettledAmount:  &paid,
				}, nil)
			},
			wantErr: ledger.ErrAlreadySettled,
		},
		{
			name: "NotFound",
			params: ledger.SettleParams{
				Amount:          decimal.RequireFromString("100.00"),
				PaymentMethodID: methodID,
			},
			setupMock: func(repo *ledger.MockRepository) {
				repo.EXPECT().GetEntry(gomock.Any(), id).Return(nil, ledger.ErrNotFound)
			},
			wantErr: ledger.ErrNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			repo := ledger.NewMockRepository(ctrl)
			if tt.setupMock != nil {
				tt.setupMock(repo)
			}

			svc := ledger.NewService(repo, ledger.NewMockCategoryDirectory(ctrl), language.BrazilianPortuguese)
			result, err := svc.Settle(context.Background(), id, tt.params)

			assert.ErrorIs(t, err, tt.wantErr)
			assert.Nil(t, result)
		})
	}
}

func TestService_Settle_CommitError(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := ledger.NewMockRepository(ctrl)
	stx := ledger.NewMockSettleTx(ctrl)
	svc := ledger.NewService(repo, ledger.NewMockCategoryDirectory(ctrl), language.BrazilianPortuguese)

	id := uuid.New()
	entry := &ledger.Entry{
		ID:          id,
		TotalAmount: decimal.RequireFromString("100.00"),
	}

	repo.EXPECT().GetEntry(gomock.Any(), id).Return(entry, nil)
	repo.EXPECT().BeginSettle(gomock.Any()).Return(stx, nil)
	stx.EXPECT().UpdateSettlement(gomock.Any(), entry).Return(nil)
	stx.EXPECT().Commit().Return(errors.New("commit failed"))
	stx.EXPECT().Rollback().Return(nil)

	result, err := svc.Settle(context.Background(), id, ledger.SettleParams{
		Amount:          decimal.RequireFromString("100.00"),
		PaymentMethodID: uuid.New(),
	})

	assert.Error(t, err)
	assert.Nil(t, result)
}

func TestService_Update_SettledIsImmutable(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := ledger.NewMockRepository(ctrl)
	svc := ledger.NewService(repo, ledger.NewMockCategoryDirectory(ctrl), language.BrazilianPortuguese)

	id := uuid.New()
	settled := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	paid := decimal.RequireFromString("100.00")

	repo.EXPECT().GetEntry(gomock.Any(), id).Return(&ledger.Entry{
		ID:             id,
		TotalAmount:    paid,
		SettlementDate: &settled,
		SettledAmount:  &paid,
	}, nil)

	err := svc.Update(context.Background(), &ledger.Entry{
		ID:          id,
		Direction:   ledger.DirectionPayable,
		TotalAmount: decimal.RequireFromString("150.00"),
	})

	assert.ErrorIs(t, err, ledger.ErrAlreadySettled)
}

func TestService_Delete_SettledIsImmutable(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := ledger.NewMockRepository(ctrl)
	svc := ledger.NewService(repo, ledger.NewMockCategoryDirectory(ctrl), language.BrazilianPortuguese)

	id := uuid.New()
	settled := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	paid := decimal.RequireFromString("100.00")

	repo.EXPECT().GetEntry(gomock.Any(), id).Return(&ledger.Entry{
		ID:             id,
		TotalAmount:    paid,
		SettlementDate: &settled,
		SettledAmount:  &paid,
	}, nil)

	err := svc.Delete(context.Background(), id)
	assert.ErrorIs(t, err, ledger.ErrAlreadySettled)
}

func TestService_List_StatusFilter(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := ledger.NewMockRepository(ctrl)
	svc := ledger.NewService(repo, ledger.NewMockCategoryDirectory(ctrl), language.BrazilianPortuguese)

	asOf := time.Date(2024, 5, 15, 0, 0, 0, 0, time.UTC)
	settledDate := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)
	paid := decimal.RequireFromString("100.00")

	open := &ledger.Entry{ID: uuid.New(), DueDate: time.Date(2024, 5, 20, 0, 0, 0, 0, time.UTC)}
	overdue := &ledger.Entry{ID: uuid.New(), DueDate: time.Date(2024, 5, 10, 0, 0, 0, 0, time.UTC)}
	done := &ledger.Entry{
		ID:             uuid.New(),
		DueDate:        time.Date(2024, 5, 10, 0, 0, 0, 0, time.UTC),
		SettlementDate: &settledDate,
		SettledAmount:  &paid,
	}

	status := ledger.StatusOverdue
	filter := ledger.ListFilter{Status: &status, AsOf: asOf}

	repo.EXPECT().
		ListEntries(gomock.Any(), filter).
		Return([]*ledger.Entry{open, overdue, done}, nil)

	got, err := svc.List(context.Background(), filter)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, overdue.ID, got[0].ID)
}

func TestService_Summarize(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := ledger.NewMockRepository(ctrl)
	svc := ledger.NewService(repo, ledger.NewMockCategoryDirectory(ctrl), language.BrazilianPortuguese)

	asOf := time.Date(2024, 5, 15, 0, 0, 0, 0, time.UTC)
	settledDate := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)
	partial := decimal.RequireFromString("80.00")

	entries := []*ledger.Entry{
		{
			TotalAmount: decimal.RequireFromString("100.00"),
			DueDate:     time.Date(2024, 5, 20, 0, 0, 0, 0, time.UTC),
		},
		{
			TotalAmount: decimal.RequireFromString("40.00"),
			DueDate:     time.Date(2024, 5, 25, 0, 0, 0, 0, time.UTC),
		},
		{
			TotalAmount: decimal.RequireFromString("60.00"),
			DueDate:     time.Date(2024, 5, 10, 0, 0, 0, 0, time.UTC),
		},
		{
			// Partially settled: the summary counts what was actually paid.
			TotalAmount:    decimal.RequireFromString("100.00"),
			DueDate:        time.Date(2024, 5, 10, 0, 0, 0, 0, time.UTC),
			SettlementDate: &settledDate,
			SettledAmount:  &partial,
		},
	}

	repo.EXPECT().ListEntries(gomock.Any(), gomock.Any()).Return(entries, nil)

	sum, err := svc.Summarize(context.Background(), ledger.ListFilter{AsOf: asOf})
	require.NoError(t, err)

	assert.Equal(t, 4, sum.Count)
	assert.True(t, sum.Open.Equal(decimal.RequireFromString("140.00")))
	assert.True(t, sum.Overdue.Equal(decimal.RequireFromString("60.00")))
	assert.True(t, sum.Settled.Equal(decimal.RequireFromString("80.00")))
}

func TestService_Summarize_SettledAmountMissing(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := ledger.NewMockRepository(ctrl)
	svc := ledger.NewService(repo, ledger.NewMockCategoryDirectory(ctrl), language.BrazilianPortuguese)

	asOf := time.Date(2024, 5, 15, 0, 0, 0, 0, time.UTC)
	settledDate := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)

	// A settled row without a settled amount counts its face amount.
	repo.EXPECT().ListEntries(gomock.Any(), gomock.Any()).Return([]*ledger.Entry{
		{
			TotalAmount:    decimal.RequireFromString("75.00"),
			DueDate:        time.Date(2024, 4, 1, 0, 0, 0, 0, time.UTC),
			SettlementDate: &settledDate,
		},
	}, nil)

	sum, err := svc.Summarize(context.Background(), ledger.ListFilter{AsOf: asOf})
	require.NoError(t, err)

	assert.Equal(t, 1, sum.Count)
	assert.True(t, sum.Settled.Equal(decimal.RequireFromString("75.00")))
}

func TestService_PlanThenSettleLastInstallment(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := ledger.NewMockRepository(ctrl)
	stx := ledger.NewMockSettleTx(ctrl)
	cats := ledger.NewMockCategoryDirectory(ctrl)
	svc := ledger.NewService(repo, cats, language.BrazilianPortuguese)

	categoryID := uuid.New()

	cats.EXPECT().Direction(gomock.Any(), categoryID).Return("D", nil)

	var created []*ledger.Entry

	repo.EXPECT().
		CreateEntries(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, entries []*ledger.Entry) error {
			for _, e := range entries {
				e.ID = uuid.New()
			}
			created = entries
			return nil
		})

	entries, err := svc.Create(context.Background(), ledger.CreateParams{
		Direction:         ledger.DirectionPayable,
		CategoryID:        categoryID,
		PartyID:           uuid.New(),
		TotalAmount:       decimal.RequireFromString("1000.00"),
		TotalInstallments: 3,
		DueDate:           time.Date(2024, 4, 10, 0, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)
	require.Len(t, entries, 3)

	last := created[2]
	assert.Equal(t, "333.34", last.TotalAmount.StringFixed(2))

	repo.EXPECT().GetEntry(gomock.Any(), last.ID).Return(last, nil)
	repo.EXPECT().BeginSettle(gomock.Any()).Return(stx, nil)
	stx.EXPECT().UpdateSettlement(gomock.Any(), last).Return(nil)
	stx.EXPECT().Commit().Return(nil)
	stx.EXPECT().Rollback().Return(nil)

	result, err := svc.Settle(context.Background(), last.ID, ledger.SettleParams{
		Amount:          decimal.RequireFromString("333.34"),
		PaymentMethodID: uuid.New(),
	})
	require.NoError(t, err)
	assert.Nil(t, result.Residual)
	assert.Empty(t, result.Entry.Note)
}
