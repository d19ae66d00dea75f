package scan

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/spec-kit/kclean/internal/api"
	"github.com/spec-kit/kclean/internal/api/dto"
	"github.com/spec-kit/kclean/internal/session"
)

// NewWeighingFlow assembles the field-staff flow: scan a resident's profile
// code, weigh their sorted waste, credit points.
func NewWeighingFlow(client *api.Client, camera Camera, successDelay time.Duration, onDone func(), logger *zap.Logger) *Flow {
	return NewFlow(Config{
		Camera: camera,
		Resolve: func(ctx context.Context, code string) (*Subject, error) {
			resident, err := client.Profile(ctx, code)
			if err != nil {
				return nil, err
			}
			return &Subject{Resident: resident}, nil
		},
		Validate: func(payload Payload) error {
			if payload.WeightKg <= 0 {
				return &session.ValidationError{Message: "Masukkan berat sampah yang valid"}
			}
			if !payload.Category.Valid() {
				return &session.ValidationError{Message: "Pilih kategori sampah"}
			}
			return nil
		},
		Submit: func(ctx context.Context, code string, payload Payload) (string, error) {
			resp, err := client.SubmitDeposit(ctx, code, dto.DepositRequest{
				TrashType:   string(payload.Category),
				TrashWeight: payload.WeightKg,
			})
			if err != nil {
				return "", err
			}
			if resp.Message != "" {
				return resp.Message, nil
			}
			return "Point terkirim", nil
		},
		SuccessDelay: successDelay,
		OnDone:       onDone,
		Logger:       logger,
	})
}

// NewRedemptionFlow assembles the merchant flow: scan a resident's voucher
// code, show the claim, consume it.
func NewRedemptionFlow(client *api.Client, camera Camera, successDelay time.Duration, onDone func(), logger *zap.Logger) *Flow {
	return NewFlow(Config{
		Camera: camera,
		Resolve: func(ctx context.Context, code string) (*Subject, error) {
			claim, err := client.VoucherCheck(ctx, code)
			if err != nil {
				return nil, err
			}
			return &Subject{Claim: claim}, nil
		},
		Submit: func(ctx context.Context, code string, _ Payload) (string, error) {
			resp, err := client.RedeemVoucher(ctx, code)
			if err != nil {
				return "", err
			}
			if resp.Message != "" {
				return resp.Message, nil
			}
			return "Voucher berhasil digunakan", nil
		},
		SuccessDelay: successDelay,
		OnDone:       onDone,
		Logger:       logger,
	})
}
