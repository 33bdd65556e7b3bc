package holiday

import (
	"context"
	"fmt"
	"time"

	"github.com/tablerota/rota-backend-go/internal/domain/account"
	"github.com/tablerota/rota-backend-go/internal/domain/employee"
	"github.com/tablerota/rota-backend-go/internal/domain/holiday"
	"github.com/tablerota/rota-backend-go/internal/domain/notification"
	"github.com/tablerota/rota-backend-go/internal/pkg/tenant"
	"github.com/tablerota/rota-backend-go/internal/pkg/validator"
	"github.com/tablerota/rota-backend-go/internal/repository/postgresql"
)

// approverLevels receive a notification when a new request lands.
var approverLevels = []account.Level{account.LevelManager, account.LevelAM, account.LevelAdmin}

type holidayServiceImpl struct {
	requestRepo         holiday.RequestRepository
	yearRepo            holiday.YearRepository
	employeeRepo        employee.Repository
	notificationService notification.Service
	now                 func() time.Time
	runTx               func(ctx context.Context, fn func(ctx context.Context) error) error
}

func NewHolidayService(
	reg *tenant.Registry,
	requestRepo holiday.RequestRepository,
	yearRepo holiday.YearRepository,
	employeeRepo employee.Repository,
	notificationService notification.Service,
) holiday.Service {
	return &holidayServiceImpl{
		requestRepo:         requestRepo,
		yearRepo:            yearRepo,
		employeeRepo:        employeeRepo,
		notificationService: notificationService,
		now:                 time.Now,
		runTx: func(ctx context.Context, fn func(ctx context.Context) error) error {
			return postgresql.WithTenantTransaction(ctx, reg, fn)
		},
	}
}

// RequestHoliday implements holiday.Service.
func (s *holidayServiceImpl) RequestHoliday(ctx context.Context, req holiday.CreateHolidayRequest) (holiday.RequestResponse, error) {
	if err := req.Validate(); err != nil {
		return holiday.RequestResponse{}, err
	}

	start, _ := validator.ParseRotaDate(req.StartDate)
	end, _ := validator.ParseRotaDate(req.EndDate)

	emp, err := s.employeeRepo.GetByID(ctx, req.EmployeeID)
	if err != nil {
		return holiday.RequestResponse{}, err
	}

	paymentType := holiday.PaymentType(req.PaymentType)
	if paymentType == "" {
		paymentType = holiday.PaymentPaid
	}

	record := holiday.Request{
		EmployeeID:  emp.ID,
		StartDate:   start,
		EndDate:     end,
		RequestDate: s.now().UTC(),
		Days:        req.Days,
		PaymentType: paymentType,
		Status:      holiday.StatusPending,
	}
	if req.Notes != "" {
		notes := req.Notes
		record.Notes = &notes
	}

	created, err := s.requestRepo.Create(ctx, record)
	if err != nil {
		return holiday.RequestResponse{}, err
	}

	name := emp.FullName()
	created.EmployeeName = &name
	s.notifyApprovers(ctx, emp, created)
	return holiday.NewRequestResponse(created), nil
}

// PendingRequests implements holiday.Service.
func (s *holidayServiceImpl) PendingRequests(ctx context.Context) ([]holiday.RequestResponse, error) {
	requests, err := s.requestRepo.GetPending(ctx)
	if err != nil {
		return nil, err
	}
	return holiday.NewRequestResponses(requests), nil
}

// DecideRequest implements holiday.Service. The request row is locked for
// the duration of the decision so two approvers cannot both decide it; the
// first decision wins and later attempts get holiday.ErrAlreadyDecided.
func (s *holidayServiceImpl) DecideRequest(ctx context.Context, req holiday.DecideHolidayRequest, actorName string) error {
	if err := req.Validate(); err != nil {
		return err
	}

	var decided holiday.Request
	err := s.runTx(ctx, func(txCtx context.Context) error {
		record, err := s.requestRepo.GetByIDForUpdate(txCtx, req.RequestID)
		if err != nil {
			return err
		}
		if record.Decided() {
			return holiday.ErrAlreadyDecided
		}

		now := s.now().UTC()
		record.DecidedBy = &actorName
		record.DecidedAt = &now
		switch req.Decision {
		case "approve":
			record.Status = holiday.StatusApproved
		case "decline":
			record.Status = holiday.StatusDeclined
			if req.Reason != "" {
				reason := req.Reason
				record.Notes = &reason
			}
		default:
			return holiday.ErrInvalidDecision
		}

		if err := s.requestRepo.UpdateDecision(txCtx, record); err != nil {
			return err
		}
		decided = record
		return nil
	})
	if err != nil {
		return err
	}

	s.notifyDecision(ctx, decided)
	return nil
}

// ComputeYears implements holiday.Service. The aggregate is derived on
// every call; nothing about accrual is persisted.
func (s *holidayServiceImpl) ComputeYears(ctx context.Context, employeeID string) (holiday.YearsResponse, error) {
	emp, err := s.employeeRepo.GetByID(ctx, employeeID)
	if err != nil {
		return holiday.YearsResponse{}, err
	}

	windows, err := s.yearRepo.GetAll(ctx)
	if err != nil {
		return holiday.YearsResponse{}, err
	}

	requests, err := s.requestRepo.GetByEmployee(ctx, emp.ID)
	if err != nil {
		return holiday.YearsResponse{}, err
	}

	today := s.now().UTC()
	buckets := BuildYearBuckets(windows, requests, emp.AllowanceDays, today)

	resp := holiday.YearsResponse{
		EmployeeID:   emp.ID,
		EmployeeName: emp.FullName(),
		Years:        make([]holiday.YearResponse, 0, len(buckets)),
	}
	for _, b := range buckets {
		if b.Window.Contains(today) {
			resp.CurrentYear = validator.FormatRotaDate(b.Window.StartDate)
		}
		resp.Years = append(resp.Years, holiday.NewYearResponse(b))
	}
	return resp, nil
}

func (s *holidayServiceImpl) notifyApprovers(ctx context.Context, emp employee.Employee, req holiday.Request) {
	slug, ok := tenant.FromContext(ctx)
	if !ok {
		return
	}
	message := fmt.Sprintf("%s requested %d day(s) off, %s to %s",
		emp.FullName(), req.Days, validator.FormatRotaDate(req.StartDate), validator.FormatRotaDate(req.EndDate))
	for _, level := range approverLevels {
		level := level
		s.notificationService.Notify(notification.CreateRequest{
			Tenant:      slug,
			TargetLevel: &level,
			Type:        notification.TypeHolidayRequested,
			Title:       "Holiday requested",
			Message:     message,
		})
	}
}

func (s *holidayServiceImpl) notifyDecision(ctx context.Context, req holiday.Request) {
	slug, ok := tenant.FromContext(ctx)
	if !ok {
		return
	}
	typ := notification.TypeHolidayApproved
	title := "Holiday approved"
	if req.Status == holiday.StatusDeclined {
		typ = notification.TypeHolidayDeclined
		title = "Holiday declined"
	}
	s.notificationService.Notify(notification.CreateRequest{
		Tenant:      slug,
		RecipientID: &req.EmployeeID,
		Type:        typ,
		Title:       title,
		Message: fmt.Sprintf("Your holiday %s to %s was %s",
			validator.FormatRotaDate(req.StartDate), validator.FormatRotaDate(req.EndDate), req.Status),
	})
}
