package impl

import (
	"context"
	"log/slog"
	"time"

	deliverycontext "storefront/internal/delivery/context"
	"storefront/internal/domain/entity"
	domainerrors "storefront/internal/domain/errors"
	"storefront/internal/domain/repository"
	"storefront/internal/domain/service"
	"storefront/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// addressService implements the AddressUsecase interface. Every operation is
// scoped to the owner: an address belonging to another user is treated as
// missing.
type addressService struct {
	txManager   repository.TransactionManager
	addressRepo repository.AddressRepository
	publisher   service.EventPublisher
	logger      *slog.Logger
}

// AddressServiceParams holds dependencies for AddressService, injected by Fx.
type AddressServiceParams struct {
	fx.In

	TxManager   repository.TransactionManager
	AddressRepo repository.AddressRepository
	Publisher   service.EventPublisher
	Logger      *slog.Logger
}

// NewAddressService is the constructor for addressService.
func NewAddressService(params AddressServiceParams) usecase.AddressUsecase {
	return &addressService{
		txManager:   params.TxManager,
		addressRepo: params.AddressRepo,
		publisher:   params.Publisher,
		logger:      params.Logger,
	}
}

func (srv *addressService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

func (srv *addressService) publishAudit(ctx context.Context, userID uuid.UUID, action, ip, requestID string) {
	event := &service.AuditEvent{
		RequestID:  requestID,
		UserID:     userID.String(),
		Action:     action,
		IPAddress:  ip,
		OccurredAt: time.Now().UTC(),
	}

	if err := srv.publisher.PublishAuditEvent(ctx, event); err != nil {
		srv.log(ctx).Warn("Failed to publish audit event",
			slog.String("action", action),
			slog.Any("userID", userID),
			slog.Any("error", err),
		)
	}
}

// ListAddresses returns the caller's addresses, default first.
func (srv *addressService) ListAddresses(ctx context.Context, userID uuid.UUID) ([]*entity.Address, error) {
	addresses, err := srv.addressRepo.FindByUserID(ctx, userID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list addresses")
	}

	return addresses, nil
}

// CreateAddress adds an address to the caller's collection. Creating with the
// default flag set clears the previous default in the same transaction.
func (srv *addressService) CreateAddress(ctx context.Context, input *usecase.CreateAddressInput) (*entity.Address, error) {
	address := &entity.Address{
		UserID:      input.UserID,
		FullName:    input.FullName,
		Phone:       input.Phone,
		AddressLine: input.AddressLine,
		City:        input.City,
		Province:    input.Province,
		PostalCode:  input.PostalCode,
		IsDefault:   input.IsDefault,
	}

	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		addressRepo := repoFactory.AddressRepo()

		if input.IsDefault {
			if err := addressRepo.ClearDefault(ctx, input.UserID); err != nil {
				return errors.Wrap(err, "failed to clear previous default address")
			}
		}

		if err := addressRepo.Create(ctx, address); err != nil {
			return errors.Wrap(err, "failed to create address")
		}

		return nil
	})
	if err != nil {
		srv.log(ctx).Warn("Address creation failed", slog.Any("userID", input.UserID), slog.Any("error", err))

		return nil, err
	}

	srv.publishAudit(ctx, input.UserID, entity.ActionAddressCreated, input.IPAddress, input.RequestID)

	return address, nil
}

// UpdateAddress edits an owned address. The default flag is untouchable here;
// it only changes through SetDefaultAddress.
func (srv *addressService) UpdateAddress(ctx context.Context, input *usecase.UpdateAddressInput) (*entity.Address, error) {
	address, err := srv.loadOwnedAddress(ctx, srv.addressRepo, input.UserID, input.AddressID)
	if err != nil {
		return nil, err
	}

	if input.FullName != nil {
		address.FullName = *input.FullName
	}
	if input.Phone != nil {
		address.Phone = *input.Phone
	}
	if input.AddressLine != nil {
		address.AddressLine = *input.AddressLine
	}
	if input.City != nil {
		address.City = *input.City
	}
	if input.Province != nil {
		address.Province = *input.Province
	}
	if input.PostalCode != nil {
		address.PostalCode = *input.PostalCode
	}

	if err := srv.addressRepo.Update(ctx, address); err != nil {
		return nil, errors.Wrap(err, "failed to update address")
	}

	srv.publishAudit(ctx, input.UserID, entity.ActionAddressUpdated, input.IPAddress, input.RequestID)

	return address, nil
}

// SetDefaultAddress atomically swaps the caller's default address: the
// previous default is cleared and the given address takes the flag, all
// within one transaction.
func (srv *addressService) SetDefaultAddress(ctx context.Context, input *usecase.SetDefaultAddressInput) (*entity.Address, error) {
	var address *entity.Address

	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		addressRepo := repoFactory.AddressRepo()

		loaded, loadErr := srv.loadOwnedAddress(ctx, addressRepo, input.UserID, input.AddressID)
		if loadErr != nil {
			return loadErr
		}

		if err := addressRepo.ClearDefault(ctx, input.UserID); err != nil {
			return errors.Wrap(err, "failed to clear previous default address")
		}

		loaded.IsDefault = true
		if err := addressRepo.Update(ctx, loaded); err != nil {
			return errors.Wrap(err, "failed to mark default address")
		}
		address = loaded

		return nil
	})
	if err != nil {
		srv.log(ctx).Warn("Default address swap failed",
			slog.Any("userID", input.UserID),
			slog.Any("addressID", input.AddressID),
			slog.Any("error", err),
		)

		return nil, err
	}

	srv.publishAudit(ctx, input.UserID, entity.ActionAddressUpdated, input.IPAddress, input.RequestID)

	return address, nil
}

// loadOwnedAddress fetches an address and verifies ownership. A hit on
// someone else's address is indistinguishable from a miss.
func (srv *addressService) loadOwnedAddress(ctx context.Context, addressRepo repository.AddressRepository, userID, addressID uuid.UUID) (*entity.Address, error) {
	address, err := addressRepo.FindByID(ctx, addressID)
	if err != nil {
		if errors.Is(err, repository.ErrAddressNotFound) {
			return nil, domainerrors.ErrNotFound.WrapMessage("address not found")
		}

		return nil, errors.Wrap(err, "failed to load address")
	}

	if address.UserID != userID {
		return nil, domainerrors.ErrNotFound.WrapMessage("address not found")
	}

	return address, nil
}
