package shift

import (
	"context"
	"fmt"
	"time"

	"github.com/tablerota/rota-backend-go/internal/domain/account"
	"github.com/tablerota/rota-backend-go/internal/domain/employee"
	"github.com/tablerota/rota-backend-go/internal/domain/notification"
	"github.com/tablerota/rota-backend-go/internal/domain/shift"
	"github.com/tablerota/rota-backend-go/internal/pkg/tenant"
	"github.com/tablerota/rota-backend-go/internal/pkg/validator"
	"github.com/tablerota/rota-backend-go/internal/repository/postgresql"
)

// approverLevels receive a notification when a new shift request lands.
var approverLevels = []account.Level{account.LevelManager, account.LevelAM, account.LevelAdmin}

type shiftServiceImpl struct {
	shiftRepo           shift.Repository
	requestRepo         shift.RequestRepository
	employeeRepo        employee.Repository
	allocator           *IDAllocator
	notificationService notification.Service
	now                 func() time.Time
	runTx               func(ctx context.Context, fn func(ctx context.Context) error) error
}

func NewShiftService(
	reg *tenant.Registry,
	shiftRepo shift.Repository,
	requestRepo shift.RequestRepository,
	employeeRepo employee.Repository,
	notificationService notification.Service,
) shift.Service {
	return &shiftServiceImpl{
		shiftRepo:           shiftRepo,
		requestRepo:         requestRepo,
		employeeRepo:        employeeRepo,
		allocator:           NewIDAllocator(shiftRepo, requestRepo),
		notificationService: notificationService,
		now:                 time.Now,
		runTx: func(ctx context.Context, fn func(ctx context.Context) error) error {
			return postgresql.WithTenantTransaction(ctx, reg, fn)
		},
	}
}

// AddShift implements shift.Service.
func (s *shiftServiceImpl) AddShift(ctx context.Context, req shift.AddShiftRequest) (shift.ShiftResponse, error) {
	if err := req.Validate(); err != nil {
		return shift.ShiftResponse{}, err
	}

	day, _ := validator.ParseRotaDate(req.Day)
	interval, err := shift.ParseInterval(req.StartTime, req.EndTime)
	if err != nil {
		return shift.ShiftResponse{}, err
	}

	emp, err := s.employeeRepo.GetByID(ctx, req.EmployeeID)
	if err != nil {
		return shift.ShiftResponse{}, err
	}

	candidate := shift.Shift{
		EmployeeID:  emp.ID,
		Day:         day,
		Start:       interval.Start,
		End:         interval.End,
		Wage:        emp.Wage,
		Designation: emp.Designation,
	}

	created, err := s.insertShift(ctx, candidate)
	if postgresql.IsUniqueViolation(err) {
		// The advisory probe lost a race on the id; one fresh draw settles it.
		created, err = s.insertShift(ctx, candidate)
	}
	if err != nil {
		return shift.ShiftResponse{}, err
	}

	name := emp.FullName()
	created.EmployeeName = &name
	s.notifyShiftSaved(ctx, created)
	return shift.NewShiftResponse(created), nil
}

// insertShift runs the cap check, the overlap check and the insert in one
// transaction, holding row locks on the employee's shifts for the day so a
// concurrent insert for the same employee serializes behind it.
func (s *shiftServiceImpl) insertShift(ctx context.Context, candidate shift.Shift) (shift.Shift, error) {
	var created shift.Shift
	err := s.runTx(ctx, func(txCtx context.Context) error {
		existing, err := s.shiftRepo.GetByEmployeeAndDayForUpdate(txCtx, candidate.EmployeeID, candidate.Day)
		if err != nil {
			return err
		}
		if len(existing) >= shift.MaxShiftsPerDay {
			return shift.ErrMaxShiftsReached
		}
		if shift.Conflicts(candidate.Interval(), existing, 0) {
			return shift.ErrShiftOverlap
		}

		id, err := s.allocator.Allocate(txCtx)
		if err != nil {
			return err
		}
		candidate.ID = id

		created, err = s.shiftRepo.Create(txCtx, candidate)
		return err
	})
	return created, err
}

// UpdateShift implements shift.Service.
func (s *shiftServiceImpl) UpdateShift(ctx context.Context, req shift.UpdateShiftRequest) error {
	if err := req.Validate(); err != nil {
		return err
	}

	interval, err := shift.ParseInterval(req.StartTime, req.EndTime)
	if err != nil {
		return err
	}

	return s.runTx(ctx, func(txCtx context.Context) error {
		current, err := s.shiftRepo.GetByID(txCtx, req.ID)
		if err != nil {
			return err
		}

		siblings, err := s.shiftRepo.GetByEmployeeAndDayForUpdate(txCtx, current.EmployeeID, current.Day)
		if err != nil {
			return err
		}
		// The shift being edited never conflicts with itself.
		if shift.Conflicts(interval, siblings, current.ID) {
			return shift.ErrShiftOverlap
		}

		current.Start = interval.Start
		current.End = interval.End
		return s.shiftRepo.Update(txCtx, current)
	})
}

// DeleteShift implements shift.Service.
func (s *shiftServiceImpl) DeleteShift(ctx context.Context, id int64) error {
	return s.shiftRepo.Delete(ctx, id)
}

// ReplaceDayShifts implements shift.Service. The old set and the new set
// swap atomically: a failure anywhere leaves the day untouched.
func (s *shiftServiceImpl) ReplaceDayShifts(ctx context.Context, req shift.ReplaceDayRequest) ([]shift.ShiftResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	day, _ := validator.ParseRotaDate(req.Day)

	intervals := make([]shift.Interval, 0, len(req.Shifts))
	for _, body := range req.Shifts {
		iv, err := shift.ParseInterval(body.StartTime, body.EndTime)
		if err != nil {
			return nil, err
		}
		for _, prev := range intervals {
			if iv.Overlaps(prev) {
				return nil, shift.ErrShiftOverlap
			}
		}
		intervals = append(intervals, iv)
	}

	emp, err := s.employeeRepo.GetByID(ctx, req.EmployeeID)
	if err != nil {
		return nil, err
	}

	var created []shift.Shift
	err = s.runTx(ctx, func(txCtx context.Context) error {
		if err := s.shiftRepo.DeleteByEmployeeAndDay(txCtx, emp.ID, day); err != nil {
			return err
		}
		created = created[:0]
		for _, iv := range intervals {
			id, err := s.allocator.Allocate(txCtx)
			if err != nil {
				return err
			}
			row, err := s.shiftRepo.Create(txCtx, shift.Shift{
				ID:          id,
				EmployeeID:  emp.ID,
				Day:         day,
				Start:       iv.Start,
				End:         iv.End,
				Wage:        emp.Wage,
				Designation: emp.Designation,
			})
			if err != nil {
				return err
			}
			created = append(created, row)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	name := emp.FullName()
	for i := range created {
		created[i].EmployeeName = &name
	}
	s.notifyRotaUpdated(ctx, emp, day)
	return shift.NewShiftResponses(created), nil
}

// TodayShifts implements shift.Service.
func (s *shiftServiceImpl) TodayShifts(ctx context.Context) ([]shift.ShiftResponse, error) {
	today := s.now().UTC().Truncate(24 * time.Hour)
	return s.ConfirmedRotaForDay(ctx, today)
}

// RotaForEmployee implements shift.Service.
func (s *shiftServiceImpl) RotaForEmployee(ctx context.Context, employeeID string) ([]shift.ShiftResponse, error) {
	if _, err := s.employeeRepo.GetByID(ctx, employeeID); err != nil {
		return nil, err
	}
	shifts, err := s.shiftRepo.GetByEmployee(ctx, employeeID)
	if err != nil {
		return nil, err
	}
	return shift.NewShiftResponses(shifts), nil
}

// ConfirmedRotaForDay implements shift.Service.
func (s *shiftServiceImpl) ConfirmedRotaForDay(ctx context.Context, day time.Time) ([]shift.ShiftResponse, error) {
	shifts, err := s.shiftRepo.GetByDay(ctx, day)
	if err != nil {
		return nil, err
	}
	return shift.NewShiftResponses(shifts), nil
}

// AllRota implements shift.Service.
func (s *shiftServiceImpl) AllRota(ctx context.Context) ([]shift.ShiftResponse, error) {
	shifts, err := s.shiftRepo.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	return shift.NewShiftResponses(shifts), nil
}

// RequestShift implements shift.Service. The proposed shift is stored as a
// pending request; cap and overlap are enforced at acceptance time, against
// the rota as it stands then.
func (s *shiftServiceImpl) RequestShift(ctx context.Context, req shift.AddShiftRequest) (shift.RequestResponse, error) {
	if err := req.Validate(); err != nil {
		return shift.RequestResponse{}, err
	}

	day, _ := validator.ParseRotaDate(req.Day)
	interval, err := shift.ParseInterval(req.StartTime, req.EndTime)
	if err != nil {
		return shift.RequestResponse{}, err
	}

	emp, err := s.employeeRepo.GetByID(ctx, req.EmployeeID)
	if err != nil {
		return shift.RequestResponse{}, err
	}

	candidate := shift.Request{
		EmployeeID:  emp.ID,
		Day:         day,
		Start:       interval.Start,
		End:         interval.End,
		Wage:        emp.Wage,
		Designation: emp.Designation,
		Status:      shift.RequestStatusPending,
	}

	created, err := s.insertRequest(ctx, candidate)
	if postgresql.IsUniqueViolation(err) {
		created, err = s.insertRequest(ctx, candidate)
	}
	if err != nil {
		return shift.RequestResponse{}, err
	}

	name := emp.FullName()
	created.EmployeeName = &name
	s.notifyShiftRequested(ctx, emp, created)
	return shift.NewRequestResponse(created), nil
}

func (s *shiftServiceImpl) insertRequest(ctx context.Context, candidate shift.Request) (shift.Request, error) {
	var created shift.Request
	err := s.runTx(ctx, func(txCtx context.Context) error {
		id, err := s.allocator.Allocate(txCtx)
		if err != nil {
			return err
		}
		candidate.ID = id

		created, err = s.requestRepo.Create(txCtx, candidate)
		return err
	})
	return created, err
}

// PendingRequests implements shift.Service.
func (s *shiftServiceImpl) PendingRequests(ctx context.Context) ([]shift.RequestResponse, error) {
	requests, err := s.requestRepo.GetPending(ctx)
	if err != nil {
		return nil, err
	}
	resps := make([]shift.RequestResponse, 0, len(requests))
	for _, r := range requests {
		resps = append(resps, shift.NewRequestResponse(r))
	}
	return resps, nil
}

// AcceptShiftRequest implements shift.Service. The request row is locked so
// two approvers cannot both promote it; the promoted shift keeps the
// request's id.
func (s *shiftServiceImpl) AcceptShiftRequest(ctx context.Context, id int64, actorName string) error {
	var accepted shift.Shift
	err := s.runTx(ctx, func(txCtx context.Context) error {
		request, err := s.requestRepo.GetByIDForUpdate(txCtx, id)
		if err != nil {
			return err
		}
		if request.Status != shift.RequestStatusPending {
			return shift.ErrShiftRequestProcessed
		}

		existing, err := s.shiftRepo.GetByEmployeeAndDayForUpdate(txCtx, request.EmployeeID, request.Day)
		if err != nil {
			return err
		}
		if len(existing) >= shift.MaxShiftsPerDay {
			return shift.ErrMaxShiftsReached
		}
		if shift.Conflicts(request.Interval(), existing, 0) {
			return shift.ErrShiftOverlap
		}

		accepted, err = s.shiftRepo.Create(txCtx, request.Shift())
		if err != nil {
			return err
		}
		return s.requestRepo.MarkAccepted(txCtx, request.ID, actorName)
	})
	if err != nil {
		return err
	}

	s.notifyShiftAccepted(ctx, accepted)
	return nil
}

// DeclineShiftRequest implements shift.Service. Declined requests are not
// kept; the row is removed and its id returns to the free pool.
func (s *shiftServiceImpl) DeclineShiftRequest(ctx context.Context, id int64) error {
	var declined shift.Request
	err := s.runTx(ctx, func(txCtx context.Context) error {
		request, err := s.requestRepo.GetByIDForUpdate(txCtx, id)
		if err != nil {
			return err
		}
		if request.Status != shift.RequestStatusPending {
			return shift.ErrShiftRequestProcessed
		}
		if err := s.requestRepo.Delete(txCtx, request.ID); err != nil {
			return err
		}
		declined = request
		return nil
	})
	if err != nil {
		return err
	}

	s.notifyShiftDeclined(ctx, declined)
	return nil
}

func (s *shiftServiceImpl) notifyShiftSaved(ctx context.Context, sh shift.Shift) {
	slug, ok := tenant.FromContext(ctx)
	if !ok {
		return
	}
	s.notificationService.Notify(notification.CreateRequest{
		Tenant:      slug,
		RecipientID: &sh.EmployeeID,
		Type:        notification.TypeShiftSaved,
		Title:       "Shift saved",
		Message:     fmt.Sprintf("You are on the rota for %s, %s to %s", validator.FormatRotaDate(sh.Day), sh.Start, sh.End),
	})
}

func (s *shiftServiceImpl) notifyShiftRequested(ctx context.Context, emp employee.Employee, req shift.Request) {
	slug, ok := tenant.FromContext(ctx)
	if !ok {
		return
	}
	message := fmt.Sprintf("%s requested a shift on %s, %s to %s",
		emp.FullName(), validator.FormatRotaDate(req.Day), req.Start, req.End)
	for _, level := range approverLevels {
		level := level
		s.notificationService.Notify(notification.CreateRequest{
			Tenant:      slug,
			TargetLevel: &level,
			Type:        notification.TypeShiftRequested,
			Title:       "Shift requested",
			Message:     message,
		})
	}
}

func (s *shiftServiceImpl) notifyShiftDeclined(ctx context.Context, req shift.Request) {
	slug, ok := tenant.FromContext(ctx)
	if !ok {
		return
	}
	s.notificationService.Notify(notification.CreateRequest{
		Tenant:      slug,
		RecipientID: &req.EmployeeID,
		Type:        notification.TypeShiftDeclined,
		Title:       "Shift request declined",
		Message:     fmt.Sprintf("Your shift request for %s, %s to %s was declined", validator.FormatRotaDate(req.Day), req.Start, req.End),
	})
}

func (s *shiftServiceImpl) notifyShiftAccepted(ctx context.Context, sh shift.Shift) {
	slug, ok := tenant.FromContext(ctx)
	if !ok {
		return
	}
	s.notificationService.Notify(notification.CreateRequest{
		Tenant:      slug,
		RecipientID: &sh.EmployeeID,
		Type:        notification.TypeShiftAccepted,
		Title:       "Shift request accepted",
		Message:     fmt.Sprintf("Your shift on %s, %s to %s is confirmed", validator.FormatRotaDate(sh.Day), sh.Start, sh.End),
	})
}

func (s *shiftServiceImpl) notifyRotaUpdated(ctx context.Context, emp employee.Employee, day time.Time) {
	slug, ok := tenant.FromContext(ctx)
	if !ok {
		return
	}
	s.notificationService.Notify(notification.CreateRequest{
		Tenant:      slug,
		RecipientID: &emp.ID,
		Type:        notification.TypeRotaUpdated,
		Title:       "Rota updated",
		Message:     fmt.Sprintf("Your shifts on %s were updated", validator.FormatRotaDate(day)),
	})
}
