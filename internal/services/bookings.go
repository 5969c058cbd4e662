package services

import (
	"fmt"

	"travelbooking/internal/domain"
	"travelbooking/internal/domain/models"
	"travelbooking/internal/repositories"
	"travelbooking/internal/utils"
)

// BookingWithParticipants is the detail view.
type BookingWithParticipants struct {
	models.Booking
	Participants []models.Participant `json:"participants"`
}

type BookingService struct {
	BookingRepo repositories.BookingRepository
	RequestID   string
}

func (s BookingService) GetByID(id int64) (BookingWithParticipants, error) {
	b, err := s.BookingRepo.GetByID(id)
	if err != nil {
		return BookingWithParticipants{}, err
	}
	parts, err := s.BookingRepo.GetParticipants(id)
	if err != nil {
		return BookingWithParticipants{}, err
	}
	return BookingWithParticipants{Booking: b, Participants: parts}, nil
}

// GetForUser is GetByID plus an ownership check, so one user cannot
// read another user's booking by guessing IDs.
func (s BookingService) GetForUser(id, userID int64) (BookingWithParticipants, error) {
	out, err := s.GetByID(id)
	if err != nil {
		return BookingWithParticipants{}, err
	}
	if out.UserID != userID {
		return BookingWithParticipants{}, domain.NotFoundError{Resource: "booking"}
	}
	return out, nil
}

func (s BookingService) ListByUser(userID int64) ([]models.Booking, error) {
	return s.BookingRepo.ListByUser(userID)
}

func (s BookingService) List(status models.BookingStatus, limit int) ([]models.Booking, error) {
	return s.BookingRepo.List(status, limit)
}

// UpdateStatus is the admin transition. Completed and cancelled are
// terminal.
func (s BookingService) UpdateStatus(id int64, status models.BookingStatus) error {
	switch status {
	case models.BookingStatusPending, models.BookingStatusConfirmed,
		models.BookingStatusCancelled, models.BookingStatusCompleted:
	default:
		return domain.ValidationError{Field: "status", Msg: "unknown status " + string(status)}
	}

	current, err := s.BookingRepo.GetByID(id)
	if err != nil {
		return err
	}
	if current.Status == models.BookingStatusCancelled || current.Status == models.BookingStatusCompleted {
		return domain.ConflictError{Resource: "booking", Msg: "status " + string(current.Status) + " is final"}
	}

	if err := s.BookingRepo.UpdateStatus(id, status); err != nil {
		return err
	}
	utils.LogEvent(s.RequestID, "bookings", "update_status",
		fmt.Sprintf("booking %d moved %s -> %s", id, current.Status, status))
	return nil
}

// Cancel lets a user withdraw their own booking while it is still
// pending. Anything past pending goes through support.
func (s BookingService) Cancel(id, userID int64) error {
	b, err := s.BookingRepo.GetByID(id)
	if err != nil {
		return err
	}
	if b.UserID != userID {
		return domain.NotFoundError{Resource: "booking"}
	}
	if b.Status != models.BookingStatusPending {
		return domain.ConflictError{Resource: "booking", Msg: "only pending bookings can be cancelled"}
	}
	if err := s.BookingRepo.UpdateStatus(id, models.BookingStatusCancelled); err != nil {
		return err
	}
	utils.LogEvent(s.RequestID, "bookings", "cancel", fmt.Sprintf("booking %d cancelled by user %d", id, userID))
	return nil
}

func (s BookingService) Stats() (models.BookingStats, error) {
	return s.BookingRepo.Stats()
}
