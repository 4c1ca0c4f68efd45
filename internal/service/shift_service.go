package service

import (
	"fmt"
	"regexp"

	"kasir-backend/internal/model"
	"kasir-backend/internal/repository"

	"github.com/google/uuid"
)

type ShiftService interface {
	Create(req *ShiftRequest, actor Actor) (*model.Shift, error)
	Update(id uuid.UUID, req *ShiftRequest, actor Actor) (*model.Shift, error)
	Delete(id uuid.UUID, actor Actor) error
	GetByID(id uuid.UUID) (*model.Shift, error)
	List() ([]model.Shift, error)
}

type ShiftRequest struct {
	Name      string `json:"name" validate:"required"`
	StartTime string `json:"start_time" validate:"required"` // HH:MM
	EndTime   string `json:"end_time" validate:"required"`   // HH:MM
	Note      string `json:"note"`
}

var timePattern = regexp.MustCompile(`^([01][0-9]|2[0-3]):([0-5][0-9])$`)

// validateShiftTimes checks HH:MM format. StartTime > EndTime is legal and
// means an overnight shift.
func validateShiftTimes(start, end string) error {
	if !timePattern.MatchString(start) || !timePattern.MatchString(end) {
		return fmt.Errorf("%w: time must be HH:MM (e.g. 08:30, 17:59)", ErrInvalidInput)
	}
	if start == end {
		return fmt.Errorf("%w: start time and end time cannot be the same", ErrInvalidInput)
	}
	return nil
}

type shiftService struct {
	shiftRepo repository.ShiftRepository
}

func NewShiftService(shiftRepo repository.ShiftRepository) ShiftService {
	return &shiftService{shiftRepo: shiftRepo}
}

func (s *shiftService) Create(req *ShiftRequest, actor Actor) (*model.Shift, error) {
	if req.Name == "" {
		return nil, fmt.Errorf("%w: name is required", ErrInvalidInput)
	}
	if err := validateShiftTimes(req.StartTime, req.EndTime); err != nil {
		return nil, err
	}

	shift := &model.Shift{
		Name:      req.Name,
		StartTime: req.StartTime,
		EndTime:   req.EndTime,
		Note:      req.Note,
	}
	shift.CreatedBy = actor.ID
	shift.UpdatedBy = actor.ID

	if err := s.shiftRepo.Create(shift); err != nil {
		return nil, err
	}
	return shift, nil
}

func (s *shiftService) Update(id uuid.UUID, req *ShiftRequest, actor Actor) (*model.Shift, error) {
	shift, err := s.shiftRepo.FindByID(id)
	if err != nil {
		return nil, ErrShiftNotFound
	}

	if req.Name == "" {
		return nil, fmt.Errorf("%w: name is required", ErrInvalidInput)
	}
	if err := validateShiftTimes(req.StartTime, req.EndTime); err != nil {
		return nil, err
	}

	shift.Name = req.Name
	shift.StartTime = req.StartTime
	shift.EndTime = req.EndTime
	shift.Note = req.Note
	shift.UpdatedBy = actor.ID

	if err := s.shiftRepo.Update(shift); err != nil {
		return nil, err
	}
	return shift, nil
}

func (s *shiftService) Delete(id uuid.UUID, actor Actor) error {
	if _, err := s.shiftRepo.FindByID(id); err != nil {
		return ErrShiftNotFound
	}
	return s.shiftRepo.Delete(id, actor.ID)
}

func (s *shiftService) GetByID(id uuid.UUID) (*model.Shift, error) {
	shift, err := s.shiftRepo.FindByID(id)
	if err != nil {
		return nil, ErrShiftNotFound
	}
	return shift, nil
}

func (s *shiftService) List() ([]model.Shift, error) {
	return s.shiftRepo.FindAll()
}
