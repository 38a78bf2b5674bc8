package booking

import (
	"errors"
	"time"

	"go.uber.org/zap"

	providerRepo "barkwise/database/repository/provider"
	"barkwise/models"
	"barkwise/utils"
)

func (s *DefaultBookingService) CreateProviderBlackout(providerID, actorID, date, slot, reason string) (*models.ProviderBlackout, error) {
	if _, err := parseSlotStart(date, slot); err != nil {
		return nil, err
	}
	p, err := s.Providers.GetByID(providerID)
	if err != nil {
		if errors.Is(err, providerRepo.ErrNotFound) {
			return nil, utils.NotFoundErr("Provider not found")
		}
		return nil, err
	}
	if p.OwnerID != actorID {
		return nil, utils.PermissionErr("Only provider owner can create blackout")
	}

	blackout := &models.ProviderBlackout{
		ID:         utils.NewID("blk"),
		ProviderID: providerID,
		Date:       date,
		Slot:       slot,
		Reason:     reason,
		CreatedAt:  s.now(),
	}
	if err := s.Providers.CreateBlackout(blackout); err != nil {
		if errors.Is(err, providerRepo.ErrBlackoutExists) {
			return nil, utils.ConflictErr("Blackout already exists")
		}
		utils.GetLogger().Error("CreateProviderBlackout: failed to persist blackout",
			zap.Error(err), zap.String("providerID", providerID))
		return nil, err
	}
	return blackout, nil
}

func (s *DefaultBookingService) ListProviderBlackouts(providerID, date string) ([]models.ProviderBlackout, error) {
	if date != "" {
		if _, err := time.Parse("2006-01-02", date); err != nil {
			return nil, utils.InvalidErr("Invalid date; expected YYYY-MM-DD")
		}
	}
	return s.Providers.ListBlackouts(providerID, date)
}
