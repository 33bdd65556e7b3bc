package shift

import (
	"context"
	"strconv"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tablerota/rota-backend-go/internal/domain/employee"
	"github.com/tablerota/rota-backend-go/internal/domain/notification"
	"github.com/tablerota/rota-backend-go/internal/domain/shift"
)

// In-memory fakes. Row locks are meaningless here; the fakes only exercise
// the orchestration logic.

type fakeShiftRepo struct {
	shifts map[int64]shift.Shift
}

func newFakeShiftRepo() *fakeShiftRepo {
	return &fakeShiftRepo{shifts: make(map[int64]shift.Shift)}
}

func (r *fakeShiftRepo) Create(ctx context.Context, s shift.Shift) (shift.Shift, error) {
	s.CreatedAt = time.Now()
	s.UpdatedAt = s.CreatedAt
	r.shifts[s.ID] = s
	return s, nil
}

func (r *fakeShiftRepo) GetByID(ctx context.Context, id int64) (shift.Shift, error) {
	s, ok := r.shifts[id]
	if !ok {
		return shift.Shift{}, shift.ErrShiftNotFound
	}
	return s, nil
}

func (r *fakeShiftRepo) GetByEmployeeAndDay(ctx context.Context, employeeID string, day time.Time) ([]shift.Shift, error) {
	var out []shift.Shift
	for _, s := range r.shifts {
		if s.EmployeeID == employeeID && s.Day.Equal(day) {
			out = append(out, s)
		}
	}
	return out, nil
}

func (r *fakeShiftRepo) GetByEmployeeAndDayForUpdate(ctx context.Context, employeeID string, day time.Time) ([]shift.Shift, error) {
	return r.GetByEmployeeAndDay(ctx, employeeID, day)
}

func (r *fakeShiftRepo) GetByEmployee(ctx context.Context, employeeID string) ([]shift.Shift, error) {
	var out []shift.Shift
	for _, s := range r.shifts {
		if s.EmployeeID == employeeID {
			out = append(out, s)
		}
	}
	return out, nil
}

func (r *fakeShiftRepo) GetByDay(ctx context.Context, day time.Time) ([]shift.Shift, error) {
	var out []shift.Shift
	for _, s := range r.shifts {
		if s.Day.Equal(day) {
			out = append(out, s)
		}
	}
	return out, nil
}

func (r *fakeShiftRepo) GetAll(ctx context.Context) ([]shift.Shift, error) {
	var out []shift.Shift
	for _, s := range r.shifts {
		out = append(out, s)
	}
	return out, nil
}

func (r *fakeShiftRepo) Update(ctx context.Context, s shift.Shift) error {
	if _, ok := r.shifts[s.ID]; !ok {
		return shift.ErrShiftNotFound
	}
	r.shifts[s.ID] = s
	return nil
}

func (r *fakeShiftRepo) Delete(ctx context.Context, id int64) error {
	if _, ok := r.shifts[id]; !ok {
		return shift.ErrShiftNotFound
	}
	delete(r.shifts, id)
	return nil
}

func (r *fakeShiftRepo) DeleteByEmployeeAndDay(ctx context.Context, employeeID string, day time.Time) error {
	for id, s := range r.shifts {
		if s.EmployeeID == employeeID && s.Day.Equal(day) {
			delete(r.shifts, id)
		}
	}
	return nil
}

func (r *fakeShiftRepo) IDExists(ctx context.Context, id int64) (bool, error) {
	_, ok := r.shifts[id]
	return ok, nil
}

type fakeRequestRepo struct {
	requests map[int64]shift.Request
}

func newFakeRequestRepo() *fakeRequestRepo {
	return &fakeRequestRepo{requests: make(map[int64]shift.Request)}
}

func (r *fakeRequestRepo) Create(ctx context.Context, req shift.Request) (shift.Request, error) {
	r.requests[req.ID] = req
	return req, nil
}

func (r *fakeRequestRepo) GetByID(ctx context.Context, id int64) (shift.Request, error) {
	req, ok := r.requests[id]
	if !ok {
		return shift.Request{}, shift.ErrShiftRequestNotFound
	}
	return req, nil
}

func (r *fakeRequestRepo) GetByIDForUpdate(ctx context.Context, id int64) (shift.Request, error) {
	return r.GetByID(ctx, id)
}

func (r *fakeRequestRepo) GetPending(ctx context.Context) ([]shift.Request, error) {
	var out []shift.Request
	for _, req := range r.requests {
		if req.Status == shift.RequestStatusPending {
			out = append(out, req)
		}
	}
	return out, nil
}

func (r *fakeRequestRepo) MarkAccepted(ctx context.Context, id int64, acceptedBy string) error {
	req, ok := r.requests[id]
	if !ok {
		return shift.ErrShiftRequestNotFound
	}
	req.Status = shift.RequestStatusAccepted
	req.AcceptedBy = &acceptedBy
	r.requests[id] = req
	return nil
}

func (r *fakeRequestRepo) Delete(ctx context.Context, id int64) error {
	delete(r.requests, id)
	return nil
}

func (r *fakeRequestRepo) IDExists(ctx context.Context, id int64) (bool, error) {
	_, ok := r.requests[id]
	return ok, nil
}

type fakeEmployeeRepo struct {
	employees map[string]employee.Employee
}

func newFakeEmployeeRepo(employees ...employee.Employee) *fakeEmployeeRepo {
	r := &fakeEmployeeRepo{employees: make(map[string]employee.Employee)}
	for _, e := range employees {
		r.employees[e.ID] = e
	}
	return r
}

func (r *fakeEmployeeRepo) GetByID(ctx context.Context, id string) (employee.Employee, error) {
	e, ok := r.employees[id]
	if !ok {
		return employee.Employee{}, employee.ErrEmployeeNotFound
	}
	return e, nil
}

func (r *fakeEmployeeRepo) GetByEmail(ctx context.Context, email string) (employee.Employee, error) {
	for _, e := range r.employees {
		if e.Email == email {
			return e, nil
		}
	}
	return employee.Employee{}, employee.ErrEmployeeNotFound
}

func (r *fakeEmployeeRepo) GetByName(ctx context.Context, firstName, lastName string) (employee.Employee, error) {
	for _, e := range r.employees {
		if e.FirstName == firstName && e.LastName == lastName {
			return e, nil
		}
	}
	return employee.Employee{}, employee.ErrEmployeeNotFound
}

func (r *fakeEmployeeRepo) List(ctx context.Context) ([]employee.Employee, error) {
	var out []employee.Employee
	for _, e := range r.employees {
		out = append(out, e)
	}
	return out, nil
}

func (r *fakeEmployeeRepo) Search(ctx context.Context, query string) ([]employee.Employee, error) {
	return r.List(ctx)
}

type fakeNotifier struct {
	sent []notification.CreateRequest
}

func (n *fakeNotifier) Notify(req notification.CreateRequest) { n.sent = append(n.sent, req) }
func (n *fakeNotifier) ListForRecipient(ctx context.Context, recipientID string, level string) ([]notification.Response, error) {
	return nil, nil
}
func (n *fakeNotifier) MarkRead(ctx context.Context, id string, recipientID string) error {
	return nil
}
func (n *fakeNotifier) Shutdown() {}

var testEmployee = employee.Employee{
	ID:            "0198d0f2-7b8c-7b4a-8a2b-6b8b8b8b8b8b",
	FirstName:     "Dana",
	LastName:      "Reeve",
	Email:         "dana@example.com",
	Wage:          decimal.NewFromFloat(12.50),
	Designation:   "Chef",
	AllowanceDays: decimal.NewFromInt(28),
}

func newTestService(t *testing.T) (*shiftServiceImpl, *fakeShiftRepo, *fakeRequestRepo, *fakeNotifier) {
	t.Helper()
	shiftRepo := newFakeShiftRepo()
	requestRepo := newFakeRequestRepo()
	notifier := &fakeNotifier{}

	svc := &shiftServiceImpl{
		shiftRepo:           shiftRepo,
		requestRepo:         requestRepo,
		employeeRepo:        newFakeEmployeeRepo(testEmployee),
		allocator:           NewIDAllocator(shiftRepo, requestRepo),
		notificationService: notifier,
		now:                 time.Now,
		runTx: func(ctx context.Context, fn func(ctx context.Context) error) error {
			return fn(ctx)
		},
	}
	return svc, shiftRepo, requestRepo, notifier
}

func TestAddShift(t *testing.T) {
	ctx := context.Background()

	t.Run("adds a shift and denormalizes wage and designation", func(t *testing.T) {
		svc, shiftRepo, _, _ := newTestService(t)

		resp, err := svc.AddShift(ctx, shift.AddShiftRequest{
			EmployeeID: testEmployee.ID,
			Day:        "14/07/2025 (Mon)",
			StartTime:  "09:00",
			EndTime:    "17:00",
		})
		require.NoError(t, err)

		assert.Len(t, resp.ID, 16)
		assert.Equal(t, "14/07/2025", resp.Day)
		assert.Equal(t, "Chef", resp.Designation)
		assert.True(t, resp.Wage.Equal(testEmployee.Wage))
		assert.Len(t, shiftRepo.shifts, 1)
	})

	t.Run("rejects an overlapping shift", func(t *testing.T) {
		svc, _, _, _ := newTestService(t)

		_, err := svc.AddShift(ctx, shift.AddShiftRequest{
			EmployeeID: testEmployee.ID, Day: "14/07/2025", StartTime: "09:00", EndTime: "17:00",
		})
		require.NoError(t, err)

		_, err = svc.AddShift(ctx, shift.AddShiftRequest{
			EmployeeID: testEmployee.ID, Day: "14/07/2025", StartTime: "16:00", EndTime: "20:00",
		})
		assert.ErrorIs(t, err, shift.ErrShiftOverlap)
	})

	t.Run("allows a touching second shift then enforces the cap", func(t *testing.T) {
		svc, _, _, _ := newTestService(t)

		_, err := svc.AddShift(ctx, shift.AddShiftRequest{
			EmployeeID: testEmployee.ID, Day: "14/07/2025", StartTime: "09:00", EndTime: "17:00",
		})
		require.NoError(t, err)

		_, err = svc.AddShift(ctx, shift.AddShiftRequest{
			EmployeeID: testEmployee.ID, Day: "14/07/2025", StartTime: "17:00", EndTime: "22:00",
		})
		require.NoError(t, err)

		_, err = svc.AddShift(ctx, shift.AddShiftRequest{
			EmployeeID: testEmployee.ID, Day: "14/07/2025", StartTime: "22:30", EndTime: "23:30",
		})
		assert.ErrorIs(t, err, shift.ErrMaxShiftsReached)
	})

	t.Run("detects overlap against an overnight shift", func(t *testing.T) {
		svc, _, _, _ := newTestService(t)

		_, err := svc.AddShift(ctx, shift.AddShiftRequest{
			EmployeeID: testEmployee.ID, Day: "14/07/2025", StartTime: "22:55", EndTime: "00:55",
		})
		require.NoError(t, err)

		_, err = svc.AddShift(ctx, shift.AddShiftRequest{
			EmployeeID: testEmployee.ID, Day: "14/07/2025", StartTime: "22:00", EndTime: "23:00",
		})
		assert.ErrorIs(t, err, shift.ErrShiftOverlap)
	})

	t.Run("unknown employee", func(t *testing.T) {
		svc, _, _, _ := newTestService(t)

		_, err := svc.AddShift(ctx, shift.AddShiftRequest{
			EmployeeID: "0198d0f2-7b8c-7b4a-8a2b-000000000000", Day: "14/07/2025", StartTime: "09:00", EndTime: "17:00",
		})
		assert.ErrorIs(t, err, employee.ErrEmployeeNotFound)
	})
}

func TestUpdateShift(t *testing.T) {
	ctx := context.Background()
	svc, shiftRepo, _, _ := newTestService(t)

	first, err := svc.AddShift(ctx, shift.AddShiftRequest{
		EmployeeID: testEmployee.ID, Day: "14/07/2025", StartTime: "09:00", EndTime: "12:00",
	})
	require.NoError(t, err)
	_, err = svc.AddShift(ctx, shift.AddShiftRequest{
		EmployeeID: testEmployee.ID, Day: "14/07/2025", StartTime: "13:00", EndTime: "17:00",
	})
	require.NoError(t, err)

	var firstID int64
	for id, s := range shiftRepo.shifts {
		if s.Start.String() == "09:00" {
			firstID = id
		}
	}
	require.NotZero(t, firstID)
	assert.Equal(t, resolveID(t, first), firstID)

	// the edited shift does not conflict with itself
	err = svc.UpdateShift(ctx, shift.UpdateShiftRequest{ID: firstID, StartTime: "08:00", EndTime: "12:30"})
	require.NoError(t, err)
	assert.Equal(t, "08:00", shiftRepo.shifts[firstID].Start.String())

	// but it still conflicts with its sibling
	err = svc.UpdateShift(ctx, shift.UpdateShiftRequest{ID: firstID, StartTime: "08:00", EndTime: "14:00"})
	assert.ErrorIs(t, err, shift.ErrShiftOverlap)
}

func TestReplaceDayShifts(t *testing.T) {
	ctx := context.Background()
	svc, shiftRepo, _, _ := newTestService(t)

	_, err := svc.AddShift(ctx, shift.AddShiftRequest{
		EmployeeID: testEmployee.ID, Day: "14/07/2025", StartTime: "09:00", EndTime: "17:00",
	})
	require.NoError(t, err)

	resps, err := svc.ReplaceDayShifts(ctx, shift.ReplaceDayRequest{
		EmployeeID: testEmployee.ID,
		Day:        "14/07/2025",
		Shifts: []shift.IntervalBody{
			{StartTime: "08:00", EndTime: "12:00"},
			{StartTime: "18:00", EndTime: "23:00"},
		},
	})
	require.NoError(t, err)
	require.Len(t, resps, 2)
	assert.Len(t, shiftRepo.shifts, 2)

	// the replacement set must itself be conflict free
	_, err = svc.ReplaceDayShifts(ctx, shift.ReplaceDayRequest{
		EmployeeID: testEmployee.ID,
		Day:        "14/07/2025",
		Shifts: []shift.IntervalBody{
			{StartTime: "08:00", EndTime: "12:00"},
			{StartTime: "11:00", EndTime: "15:00"},
		},
	})
	assert.ErrorIs(t, err, shift.ErrShiftOverlap)
	// failed replace left the previous set alone
	assert.Len(t, shiftRepo.shifts, 2)
}

func TestRequestShift(t *testing.T) {
	ctx := context.Background()

	t.Run("files a pending request with a fresh id", func(t *testing.T) {
		svc, shiftRepo, requestRepo, _ := newTestService(t)

		resp, err := svc.RequestShift(ctx, shift.AddShiftRequest{
			EmployeeID: testEmployee.ID,
			Day:        "14/07/2025 (Mon)",
			StartTime:  "18:00",
			EndTime:    "23:00",
		})
		require.NoError(t, err)

		assert.Len(t, resp.ID, 16)
		assert.Equal(t, "14/07/2025", resp.Day)
		assert.Equal(t, shift.RequestStatusPending, resp.Status)
		assert.Equal(t, testEmployee.FullName(), resp.EmployeeName)

		// only the request table gained a row
		assert.Len(t, requestRepo.requests, 1)
		assert.Empty(t, shiftRepo.shifts)

		stored, err := requestRepo.GetByID(ctx, resolveID(t, resp.ShiftResponse))
		require.NoError(t, err)
		assert.Equal(t, shift.RequestStatusPending, stored.Status)
		assert.True(t, stored.Wage.Equal(testEmployee.Wage))
	})

	t.Run("unknown employee", func(t *testing.T) {
		svc, _, _, _ := newTestService(t)

		_, err := svc.RequestShift(ctx, shift.AddShiftRequest{
			EmployeeID: "0198d0f2-7b8c-7b4a-8a2b-000000000000",
			Day:        "14/07/2025",
			StartTime:  "18:00",
			EndTime:    "23:00",
		})
		assert.ErrorIs(t, err, employee.ErrEmployeeNotFound)
	})
}

func TestDeclineShiftRequest(t *testing.T) {
	ctx := context.Background()
	svc, _, requestRepo, _ := newTestService(t)

	resp, err := svc.RequestShift(ctx, shift.AddShiftRequest{
		EmployeeID: testEmployee.ID, Day: "14/07/2025", StartTime: "18:00", EndTime: "23:00",
	})
	require.NoError(t, err)
	id := resolveID(t, resp.ShiftResponse)

	err = svc.DeclineShiftRequest(ctx, id)
	require.NoError(t, err)

	// declined requests are removed outright
	_, err = requestRepo.GetByID(ctx, id)
	assert.ErrorIs(t, err, shift.ErrShiftRequestNotFound)

	err = svc.DeclineShiftRequest(ctx, id)
	assert.ErrorIs(t, err, shift.ErrShiftRequestNotFound)
}

func TestDeclineAcceptedShiftRequest(t *testing.T) {
	ctx := context.Background()
	svc, _, _, _ := newTestService(t)

	resp, err := svc.RequestShift(ctx, shift.AddShiftRequest{
		EmployeeID: testEmployee.ID, Day: "14/07/2025", StartTime: "18:00", EndTime: "23:00",
	})
	require.NoError(t, err)
	id := resolveID(t, resp.ShiftResponse)

	err = svc.AcceptShiftRequest(ctx, id, "manager@example.com")
	require.NoError(t, err)

	err = svc.DeclineShiftRequest(ctx, id)
	assert.ErrorIs(t, err, shift.ErrShiftRequestProcessed)
}

func TestAcceptShiftRequest(t *testing.T) {
	ctx := context.Background()
	svc, shiftRepo, requestRepo, notifier := newTestService(t)

	day, err := time.Parse("02/01/2006", "14/07/2025")
	require.NoError(t, err)

	req := shift.Request{
		ID:          1234567890123456,
		EmployeeID:  testEmployee.ID,
		Day:         day,
		Start:       mustTimeOfDay(t, "09:00"),
		End:         mustTimeOfDay(t, "17:00"),
		Wage:        testEmployee.Wage,
		Designation: testEmployee.Designation,
		Status:      shift.RequestStatusPending,
	}
	_, err = requestRepo.Create(ctx, req)
	require.NoError(t, err)

	err = svc.AcceptShiftRequest(ctx, req.ID, "manager@example.com")
	require.NoError(t, err)

	// the promoted shift keeps the request id
	promoted, ok := shiftRepo.shifts[req.ID]
	require.True(t, ok)
	assert.Equal(t, testEmployee.ID, promoted.EmployeeID)

	stored, err := requestRepo.GetByID(ctx, req.ID)
	require.NoError(t, err)
	assert.Equal(t, shift.RequestStatusAccepted, stored.Status)
	require.NotNil(t, stored.AcceptedBy)
	assert.Equal(t, "manager@example.com", *stored.AcceptedBy)

	// second accept is rejected
	err = svc.AcceptShiftRequest(ctx, req.ID, "am@example.com")
	assert.ErrorIs(t, err, shift.ErrShiftRequestProcessed)

	// no tenant in context, so no notification was queued; the accept
	// itself must still have succeeded
	assert.Empty(t, notifier.sent)
}

func mustTimeOfDay(t *testing.T, s string) shift.TimeOfDay {
	t.Helper()
	tod, err := shift.ParseTimeOfDay(s)
	require.NoError(t, err)
	return tod
}

func resolveID(t *testing.T, resp shift.ShiftResponse) int64 {
	t.Helper()
	id, err := strconv.ParseInt(resp.ID, 10, 64)
	require.NoError(t, err)
	return id
}
