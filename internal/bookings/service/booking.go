package service

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"resourcebook/internal/bookings/events"
	bookingserrors "resourcebook/internal/bookings/errors"
	"resourcebook/internal/bookings/repository"
	"resourcebook/internal/bookings/validator"
	"resourcebook/pkg/config"
	apperrors "resourcebook/pkg/errors"
	"resourcebook/pkg/model"
	"resourcebook/pkg/sanitizer"

	"go.mongodb.org/mongo-driver/mongo"
)

type BookingService interface {
	Create(ctx context.Context, req *model.BookingRequest) (*model.Booking, error)
	List(ctx context.Context, filter model.BookingFilter) ([]*model.Booking, error)
	Delete(ctx context.Context, id string) (int64, error)
}

type bookingService struct {
	repo      repository.BookingRepository
	lockRepo  repository.BookingLockRepository
	validator *validator.BookingValidator
	overlap   *validator.OverlapChecker
	publisher events.Publisher
	cfg       *config.Config
}

func NewBookingService(
	repo repository.BookingRepository,
	lockRepo repository.BookingLockRepository,
	validator *validator.BookingValidator,
	overlap *validator.OverlapChecker,
	publisher events.Publisher,
	cfg *config.Config,
) BookingService {
	return &bookingService{
		repo:      repo,
		lockRepo:  lockRepo,
		validator: validator,
		overlap:   overlap,
		publisher: publisher,
		cfg:       cfg,
	}
}

func (s *bookingService) Create(ctx context.Context, req *model.BookingRequest) (*model.Booking, error) {
	s.sanitize(req)

	if missing := s.validator.MissingFields(req); len(missing) > 0 {
		s.cfg.Log.Warn("Booking request is missing fields", "fields", missing)
		return nil, apperrors.MissingFields(missing)
	}

	if err := s.validate(req); err != nil {
		return nil, err
	}

	lockID, err := s.acquireSlotLock(ctx, req.Resource, req.Date)
	if err != nil {
		return nil, err
	}
	defer func() {
		if releaseErr := s.releaseSlotLock(context.WithoutCancel(ctx), lockID); releaseErr != nil {
			s.cfg.Log.Warn("Failed to release booking lock", "lock_id", lockID, "error", releaseErr)
		}
	}()

	var booking *model.Booking
	err = s.repo.ExecuteTransaction(ctx, func(txCtx context.Context) error {
		existing, err := s.repo.FindByResourceAndDate(txCtx, req.Resource, req.Date)
		if err != nil {
			return apperrors.Internal("Failed to check existing bookings", err)
		}

		decision, err := s.overlap.Decide(existing, req.TimeFrom, req.TimeTo)
		if err != nil {
			return apperrors.InvalidInput(err.Error())
		}
		if !decision.Admitted() {
			return s.conflictError(decision)
		}

		candidate := &model.Booking{
			Date:        req.Date,
			Resource:    req.Resource,
			TimeFrom:    req.TimeFrom,
			TimeTo:      req.TimeTo,
			RequestedBy: req.RequestedBy,
			BufferFrom:  decision.BufferFrom.String(),
			BufferTo:    decision.BufferTo.String(),
		}
		if err := s.repo.Create(txCtx, candidate); err != nil {
			return apperrors.Internal("Failed to create booking", err)
		}

		booking = candidate
		return nil
	})
	if err != nil {
		s.logCreateFailure(req, err)
		return nil, err
	}

	s.cfg.Log.Info("Booking created successfully",
		"id", booking.ID,
		"resource", booking.Resource,
		"date", booking.Date,
		"buffer_from", booking.BufferFrom,
		"buffer_to", booking.BufferTo,
	)

	if err := s.publisher.BookingCreated(ctx, booking); err != nil {
		s.cfg.Log.Warn("Failed to publish booking created event", "id", booking.ID, "error", err)
	}

	return booking, nil
}

func (s *bookingService) List(ctx context.Context, filter model.BookingFilter) ([]*model.Booking, error) {
	filter.Resource = sanitizer.NormalizeName(filter.Resource)
	filter.Date = sanitizer.NormalizeDate(filter.Date)

	bookings, err := s.repo.Find(ctx, filter)
	if err != nil {
		s.cfg.Log.Error("Failed to list bookings",
			"resource", filter.Resource,
			"date", filter.Date,
			"error", err,
		)
		return nil, apperrors.Internal("Failed to retrieve bookings", err)
	}
	if bookings == nil {
		bookings = []*model.Booking{}
	}

	s.cfg.Log.Debug("Bookings listed",
		"resource", filter.Resource,
		"date", filter.Date,
		"count", len(bookings),
	)
	return bookings, nil
}

// Delete removes the booking with the given id and reports how many records
// were removed. Deleting an unknown id is not an error.
func (s *bookingService) Delete(ctx context.Context, id string) (int64, error) {
	if id == "" {
		return 0, apperrors.InvalidInput("Booking ID cannot be empty")
	}

	deleted, err := s.repo.Delete(ctx, id)
	if err != nil {
		if errors.Is(err, bookingserrors.ErrInvalidID) {
			return 0, apperrors.InvalidInput("Invalid booking ID format")
		}
		s.cfg.Log.Error("Failed to delete booking", "id", id, "error", err)
		return 0, apperrors.Internal("Failed to delete booking", err)
	}

	if deleted == 0 {
		s.cfg.Log.Info("No booking matched delete request", "id", id)
		return 0, nil
	}

	s.cfg.Log.Info("Booking deleted successfully", "id", id)
	if err := s.publisher.BookingDeleted(ctx, id); err != nil {
		s.cfg.Log.Warn("Failed to publish booking deleted event", "id", id, "error", err)
	}
	return deleted, nil
}

// --- Helpers ---

func (s *bookingService) sanitize(req *model.BookingRequest) {
	req.Date = sanitizer.NormalizeDate(req.Date)
	req.Resource = sanitizer.NormalizeName(req.Resource)
	req.TimeFrom = sanitizer.NormalizeClock(req.TimeFrom)
	req.TimeTo = sanitizer.NormalizeClock(req.TimeTo)
	req.RequestedBy = sanitizer.NormalizeName(req.RequestedBy)
}

func (s *bookingService) validate(req *model.BookingRequest) error {
	err := s.validator.Validate(req)
	if err == nil {
		return nil
	}

	s.cfg.Log.Warn("Booking validation failed", "error", err)
	var fieldErrs validator.ValidationErrors
	if errors.As(err, &fieldErrs) {
		return apperrors.Validation("Booking validation failed", fieldErrs.Fields())
	}
	return apperrors.Validation("Booking validation failed", map[string]any{"error": err.Error()})
}

func (s *bookingService) conflictError(d validator.Decision) error {
	appErr := apperrors.BookingConflict(
		fmt.Sprintf(
			"%s – %s is already booked. Please try a time at least %d minutes before or after this range.",
			d.ConflictFrom, d.ConflictTo, s.overlap.BufferMinutes(),
		),
		map[string]any{
			"bufferFrom": d.ConflictFrom,
			"bufferTo":   d.ConflictTo,
		},
	)
	appErr.Err = bookingserrors.ErrTimeConflict
	return appErr
}

func (s *bookingService) logCreateFailure(req *model.BookingRequest, err error) {
	attrs := []any{
		"resource", req.Resource,
		"date", req.Date,
		"time_from", req.TimeFrom,
		"time_to", req.TimeTo,
		"error", err,
	}
	if appErr := apperrors.AsAppError(err); appErr.Code == apperrors.CodeBookingConflict {
		s.cfg.Log.Info("Booking rejected by overlap check", attrs...)
		return
	}
	s.cfg.Log.Error("Failed to create booking", attrs...)
}

const (
	lockRetryInitialBackoff = 10 * time.Millisecond
	lockRetryMaxBackoff     = 200 * time.Millisecond
)

// acquireSlotLock serializes creates for one resource on one date. A held
// lock is waited on with backoff until the request deadline, or BookingLockTTL
// when that is sooner, since no holder can keep it longer. The lock document
// expires on its own after BookingLockTTL.
func (s *bookingService) acquireSlotLock(ctx context.Context, resource, date string) (string, error) {
	lockID := repository.LockID(resource, date)

	waitCtx, cancel := context.WithTimeout(ctx, s.cfg.BookingLockTTL)
	defer cancel()

	backoff := lockRetryInitialBackoff
	for attempt := 1; ; attempt++ {
		lock := &model.BookingLock{
			ID:        lockID,
			Resource:  resource,
			Date:      date,
			ExpiresAt: time.Now().UTC().Add(s.cfg.BookingLockTTL),
		}

		_, err := s.lockRepo.Create(waitCtx, lock)
		if err == nil {
			if attempt > 1 {
				s.cfg.Log.Debug("Booking lock acquired after waiting", "lock_id", lockID, "attempts", attempt)
			}
			return lockID, nil
		}
		if !mongo.IsDuplicateKeyError(err) {
			if waitCtx.Err() != nil {
				return "", s.slotLockedError(lockID, attempt)
			}
			return "", apperrors.Internal("Failed to acquire booking lock", err)
		}

		timer := time.NewTimer(backoff)
		select {
		case <-waitCtx.Done():
			timer.Stop()
			return "", s.slotLockedError(lockID, attempt)
		case <-timer.C:
		}
		backoff = min(backoff*2, lockRetryMaxBackoff)
	}
}

func (s *bookingService) slotLockedError(lockID string, attempts int) error {
	s.cfg.Log.Warn("Booking slot stayed locked", "lock_id", lockID, "attempts", attempts)
	return apperrors.Wrap(bookingserrors.ErrSlotLocked, apperrors.CodeConflict,
		"This resource is currently being booked by another request for the same date. Please try again.",
		http.StatusConflict)
}

func (s *bookingService) releaseSlotLock(ctx context.Context, lockID string) error {
	return s.lockRepo.Delete(ctx, lockID)
}
