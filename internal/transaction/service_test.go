package transaction_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"github.com/tramitefacil/tramitefacil/internal/transaction"
)

func TestService_Create(t *testing.T) {
	type testCase struct {
		name      string
		params    transaction.CreateParams
		setupMock func(m *transaction.MockRepository)
		wantErr   bool
	}

	tests := []testCase{
		{
			name: "Success",
			params: transaction.CreateParams{
				Reference:   "TF-1",
				TramiteID:   "rut",
				TramiteName: "RUT",
				Amount:      32725,
				Currency:    "COP",
				FormData:    map[string]string{"numeroDocumento": "123456789"},
			},
			setupMock: func(m *transaction.MockRepository) {
				m.EXPECT().
					CreateTransaction(gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, rec *transaction.Record) error {
						assert.Equal(t, transaction.StatusPending, rec.Status)
						assert.Equal(t, "TF-1", rec.Reference)
						return nil
					})
			},
			wantErr: false,
		},
		{
			name:   "RepoError",
			params: transaction.CreateParams{Reference: "TF-2"},
			setupMock: func(m *transaction.MockRepository) {
				m.EXPECT().
					CreateTransaction(gomock.Any(), gomock.Any()).
					Return(errors.New("db error"))
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			repo := transaction.NewMockRepository(ctrl)
			if tt.setupMock != nil {
				tt.setupMock(repo)
			}

			svc := transaction.NewService(repo)
			got, err := svc.Create(context.Background(), tt.params)

			if tt.wantErr {
				assert.ErrorIs(t, err, transaction.ErrStore)
				assert.Nil(t, got)

				return
			}

			assert.NoError(t, err)
			assert.NotNil(t, got)
			assert.Equal(t, transaction.StatusPending, got.Status)
		})
	}
}

func TestService_Cancel(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := transaction.NewMockRepository(ctrl)
	repo.EXPECT().
		CancelTransaction(gomock.Any(), "TF-1", transaction.ReasonPaymentPending).
		Return(nil)

	svc := transaction.NewService(repo)
	assert.NoError(t, svc.Cancel(context.Background(), "TF-1", transaction.ReasonPaymentPending))
}

func TestService_Cancel_StoreError(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := transaction.NewMockRepository(ctrl)
	repo.EXPECT().
		CancelTransaction(gomock.Any(), "TF-1", transaction.ReasonCancelledByUser).
		Return(errors.New("connection refused"))

	svc := transaction.NewService(repo)

	err := svc.Cancel(context.Background(), "TF-1", transaction.ReasonCancelledByUser)
	assert.ErrorIs(t, err, transaction.ErrStore)
}

func TestService_LogPaymentEvent(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	event := transaction.PaymentEvent{
		Reference:             "TF-1",
		Outcome:               "declined",
		Provider:              "mock",
		ProviderTransactionID: "mock-1",
		Reason:                "fondos insuficientes",
	}

	repo := transaction.NewMockRepository(ctrl)
	repo.EXPECT().
		UpsertPaymentEvent(gomock.Any(), &event).
		Return(nil)

	svc := transaction.NewService(repo)
	assert.NoError(t, svc.LogPaymentEvent(context.Background(), event))
}

func TestService_MarkPaidAndDelivered(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := transaction.NewMockRepository(ctrl)
	repo.EXPECT().MarkPaid(gomock.Any(), "TF-1", "mp-42").Return(nil)
	repo.EXPECT().MarkDelivered(gomock.Any(), "TF-1").Return(nil)

	svc := transaction.NewService(repo)
	assert.NoError(t, svc.MarkPaid(context.Background(), "TF-1", "mp-42"))
	assert.NoError(t, svc.MarkDelivered(context.Background(), "TF-1"))
}
