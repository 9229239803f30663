// Package servicetest provides in-memory repository implementations for
// service-layer tests, so business rules can be exercised without a database.
package servicetest

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/digihr/attendance-backend-go/internal/domain/attendance"
	"github.com/digihr/attendance-backend-go/internal/domain/employee"
	"github.com/digihr/attendance-backend-go/internal/domain/holiday"
	"github.com/digihr/attendance-backend-go/internal/domain/leave"
)

// NoopUnitOfWork runs the function directly. The in-memory stores have no
// transactions to join.
type NoopUnitOfWork struct{}

func (NoopUnitOfWork) RunInTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

func sameDay(a, b time.Time) bool {
	return a.Format("2006-01-02") == b.Format("2006-01-02")
}

func inRange(d, start, end time.Time) bool {
	return !d.Before(start) && !d.After(end)
}

// MemoryAttendanceRepository implements attendance.AttendanceRepository.
type MemoryAttendanceRepository struct {
	mu      sync.Mutex
	records map[string]attendance.Attendance
}

func NewMemoryAttendanceRepository() *MemoryAttendanceRepository {
	return &MemoryAttendanceRepository{records: make(map[string]attendance.Attendance)}
}

func cloneAttendance(a attendance.Attendance) attendance.Attendance {
	out := a
	out.PreviousAttendance = append([]attendance.Snapshot(nil), a.PreviousAttendance...)
	return out
}

// Seed inserts a record directly, bypassing Create.
func (r *MemoryAttendanceRepository) Seed(a attendance.Attendance) attendance.Attendance {
	r.mu.Lock()
	defer r.mu.Unlock()
	if a.ID == "" {
		a.ID = uuid.NewString()
	}
	r.records[a.ID] = cloneAttendance(a)
	return a
}

func (r *MemoryAttendanceRepository) Create(ctx context.Context, a attendance.Attendance) (attendance.Attendance, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.records {
		if existing.EmployeeID == a.EmployeeID && sameDay(existing.Date, a.Date) {
			return attendance.Attendance{}, attendance.ErrAlreadyMarked
		}
	}
	a.ID = uuid.NewString()
	now := time.Now()
	a.CreatedAt = now
	a.UpdatedAt = now
	r.records[a.ID] = cloneAttendance(a)
	return a, nil
}

func (r *MemoryAttendanceRepository) GetByID(ctx context.Context, id string) (attendance.Attendance, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	a, ok := r.records[id]
	if !ok {
		return attendance.Attendance{}, attendance.ErrAttendanceNotFound
	}
	return cloneAttendance(a), nil
}

func (r *MemoryAttendanceRepository) GetByEmployeeAndDate(ctx context.Context, employeeID string, date time.Time) (*attendance.Attendance, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, a := range r.records {
		if a.EmployeeID == employeeID && sameDay(a.Date, date) {
			out := cloneAttendance(a)
			return &out, nil
		}
	}
	return nil, nil
}

func (r *MemoryAttendanceRepository) Update(ctx context.Context, a attendance.Attendance) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.records[a.ID]; !ok {
		return attendance.ErrAttendanceNotFound
	}
	r.records[a.ID] = cloneAttendance(a)
	return nil
}

func (r *MemoryAttendanceRepository) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.records[id]; !ok {
		return attendance.ErrAttendanceNotFound
	}
	delete(r.records, id)
	return nil
}

func (r *MemoryAttendanceRepository) ListByEmployee(ctx context.Context, employeeID string) ([]attendance.Attendance, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []attendance.Attendance
	for _, a := range r.records {
		if a.EmployeeID == employeeID {
			out = append(out, cloneAttendance(a))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date.After(out[j].Date) })
	return out, nil
}

func (r *MemoryAttendanceRepository) ListByEmployeeAndRange(ctx context.Context, employeeID string, start, end time.Time) ([]attendance.Attendance, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []attendance.Attendance
	for _, a := range r.records {
		if a.EmployeeID == employeeID && inRange(a.Date, start, end) {
			out = append(out, cloneAttendance(a))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date.Before(out[j].Date) })
	return out, nil
}

func (r *MemoryAttendanceRepository) ListByIDs(ctx context.Context, ids []string) ([]attendance.Attendance, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []attendance.Attendance
	for _, id := range ids {
		if a, ok := r.records[id]; ok {
			out = append(out, cloneAttendance(a))
		}
	}
	return out, nil
}

func (r *MemoryAttendanceRepository) List(ctx context.Context) ([]attendance.Attendance, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []attendance.Attendance
	for _, a := range r.records {
		out = append(out, cloneAttendance(a))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date.After(out[j].Date) })
	return out, nil
}

// Count returns the number of stored records.
func (r *MemoryAttendanceRepository) Count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.records)
}

// MemoryEmployeeRepository implements employee.EmployeeRepository.
type MemoryEmployeeRepository struct {
	mu        sync.Mutex
	employees map[string]employee.Employee
	balances  map[string]employee.LeaveBalance // employeeID + "|" + leaveTypeID
}

func NewMemoryEmployeeRepository() *MemoryEmployeeRepository {
	return &MemoryEmployeeRepository{
		employees: make(map[string]employee.Employee),
		balances:  make(map[string]employee.LeaveBalance),
	}
}

func balanceKey(employeeID, leaveTypeID string) string {
	return employeeID + "|" + leaveTypeID
}

// SeedEmployee inserts an employee, assigning an id when absent.
func (r *MemoryEmployeeRepository) SeedEmployee(e employee.Employee) employee.Employee {
	r.mu.Lock()
	defer r.mu.Unlock()
	if e.ID == "" {
		e.ID = uuid.NewString()
	}
	r.employees[e.ID] = e
	return e
}

// SeedBalance inserts a balance row directly.
func (r *MemoryEmployeeRepository) SeedBalance(b employee.LeaveBalance) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.balances[balanceKey(b.EmployeeID, b.LeaveTypeID)] = b
}

func (r *MemoryEmployeeRepository) loadBalances(employeeID string) []employee.LeaveBalance {
	var out []employee.LeaveBalance
	for _, b := range r.balances {
		if b.EmployeeID == employeeID {
			out = append(out, b)
		}
	}
	return out
}

func (r *MemoryEmployeeRepository) GetByID(ctx context.Context, id string) (employee.Employee, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	e, ok := r.employees[id]
	if !ok {
		return employee.Employee{}, employee.ErrEmployeeNotFound
	}
	e.Balances = r.loadBalances(id)
	return e, nil
}

func (r *MemoryEmployeeRepository) List(ctx context.Context) ([]employee.Employee, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []employee.Employee
	for _, e := range r.employees {
		e.Balances = r.loadBalances(e.ID)
		out = append(out, e)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *MemoryEmployeeRepository) GetBalance(ctx context.Context, employeeID, leaveTypeID string) (employee.LeaveBalance, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	b, ok := r.balances[balanceKey(employeeID, leaveTypeID)]
	if !ok {
		return employee.LeaveBalance{}, employee.ErrBalanceNotFound
	}
	return b, nil
}

func (r *MemoryEmployeeRepository) CreateBalance(ctx context.Context, b employee.LeaveBalance) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	key := balanceKey(b.EmployeeID, b.LeaveTypeID)
	if _, ok := r.balances[key]; ok {
		return nil
	}
	r.balances[key] = b
	return nil
}

func (r *MemoryEmployeeRepository) UpdateBalance(ctx context.Context, b employee.LeaveBalance) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	key := balanceKey(b.EmployeeID, b.LeaveTypeID)
	if _, ok := r.balances[key]; !ok {
		return employee.ErrBalanceNotFound
	}
	r.balances[key] = b
	return nil
}

func (r *MemoryEmployeeRepository) DeleteBalancesForType(ctx context.Context, leaveTypeID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for key, b := range r.balances {
		if b.LeaveTypeID == leaveTypeID {
			delete(r.balances, key)
		}
	}
	return nil
}

// BalanceCount returns the number of stored balance rows.
func (r *MemoryEmployeeRepository) BalanceCount() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.balances)
}

// MemoryLeaveRequestRepository implements leave.LeaveRequestRepository.
type MemoryLeaveRequestRepository struct {
	mu       sync.Mutex
	requests map[string]leave.LeaveRequest
}

func NewMemoryLeaveRequestRepository() *MemoryLeaveRequestRepository {
	return &MemoryLeaveRequestRepository{requests: make(map[string]leave.LeaveRequest)}
}

func cloneLeaveRequest(l leave.LeaveRequest) leave.LeaveRequest {
	out := l
	out.Weekends = append([]time.Time(nil), l.Weekends...)
	out.Holidays = append([]string(nil), l.Holidays...)
	out.SkippedDates = append([]time.Time(nil), l.SkippedDates...)
	out.AffectedAttendance = append([]string(nil), l.AffectedAttendance...)
	return out
}

// Seed inserts a request directly, bypassing Create.
func (r *MemoryLeaveRequestRepository) Seed(l leave.LeaveRequest) leave.LeaveRequest {
	r.mu.Lock()
	defer r.mu.Unlock()
	if l.ID == "" {
		l.ID = uuid.NewString()
	}
	r.requests[l.ID] = cloneLeaveRequest(l)
	return l
}

func (r *MemoryLeaveRequestRepository) Create(ctx context.Context, l leave.LeaveRequest) (leave.LeaveRequest, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	l.ID = uuid.NewString()
	now := time.Now()
	l.CreatedAt = now
	l.UpdatedAt = now
	r.requests[l.ID] = cloneLeaveRequest(l)
	return l, nil
}

func (r *MemoryLeaveRequestRepository) GetByID(ctx context.Context, id string) (leave.LeaveRequest, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	l, ok := r.requests[id]
	if !ok {
		return leave.LeaveRequest{}, leave.ErrLeaveRequestNotFound
	}
	return cloneLeaveRequest(l), nil
}

func (r *MemoryLeaveRequestRepository) Update(ctx context.Context, l leave.LeaveRequest) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.requests[l.ID]; !ok {
		return leave.ErrLeaveRequestNotFound
	}
	r.requests[l.ID] = cloneLeaveRequest(l)
	return nil
}

func (r *MemoryLeaveRequestRepository) ListByEmployee(ctx context.Context, employeeID string) ([]leave.LeaveRequest, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []leave.LeaveRequest
	for _, l := range r.requests {
		if l.EmployeeID == employeeID {
			out = append(out, cloneLeaveRequest(l))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].StartDate.After(out[j].StartDate) })
	return out, nil
}

func (r *MemoryLeaveRequestRepository) List(ctx context.Context) ([]leave.LeaveRequest, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []leave.LeaveRequest
	for _, l := range r.requests {
		out = append(out, cloneLeaveRequest(l))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].StartDate.After(out[j].StartDate) })
	return out, nil
}

func (r *MemoryLeaveRequestRepository) ListApprovedOverlapping(ctx context.Context, employeeID string, start, end time.Time) ([]leave.LeaveRequest, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []leave.LeaveRequest
	for _, l := range r.requests {
		if l.EmployeeID == employeeID && l.Status == leave.StatusApproved &&
			!l.StartDate.After(end) && !l.EndDate.Before(start) {
			out = append(out, cloneLeaveRequest(l))
		}
	}
	return out, nil
}

func (r *MemoryLeaveRequestRepository) HasApprovedLeaveOn(ctx context.Context, employeeID string, date time.Time) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, l := range r.requests {
		if l.EmployeeID == employeeID && l.Status == leave.StatusApproved && inRange(date, l.StartDate, l.EndDate) {
			return true, nil
		}
	}
	return false, nil
}

func (r *MemoryLeaveRequestRepository) FindApprovedCovering(ctx context.Context, employeeID string, date time.Time, attendanceID string) (*leave.LeaveRequest, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, l := range r.requests {
		if l.EmployeeID != employeeID || l.Status != leave.StatusApproved || !inRange(date, l.StartDate, l.EndDate) {
			continue
		}
		for _, id := range l.AffectedAttendance {
			if id == attendanceID {
				out := cloneLeaveRequest(l)
				return &out, nil
			}
		}
	}
	return nil, nil
}

func (r *MemoryLeaveRequestRepository) SnapshotTypeName(ctx context.Context, leaveTypeID, name string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for id, l := range r.requests {
		if l.LeaveTypeID == leaveTypeID {
			l.LeaveTypeName = name
			r.requests[id] = l
		}
	}
	return nil
}

// MemoryLeaveTypeRepository implements leave.LeaveTypeRepository.
type MemoryLeaveTypeRepository struct {
	mu    sync.Mutex
	types map[string]leave.LeaveType
}

func NewMemoryLeaveTypeRepository() *MemoryLeaveTypeRepository {
	return &MemoryLeaveTypeRepository{types: make(map[string]leave.LeaveType)}
}

// Seed inserts a leave type directly, bypassing Create.
func (r *MemoryLeaveTypeRepository) Seed(t leave.LeaveType) leave.LeaveType {
	r.mu.Lock()
	defer r.mu.Unlock()
	if t.ID == "" {
		t.ID = uuid.NewString()
	}
	r.types[t.ID] = t
	return t
}

func (r *MemoryLeaveTypeRepository) Create(ctx context.Context, t leave.LeaveType) (leave.LeaveType, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.types {
		if existing.Name == t.Name {
			return leave.LeaveType{}, leave.ErrLeaveTypeExists
		}
	}
	t.ID = uuid.NewString()
	now := time.Now()
	t.CreatedAt = now
	t.UpdatedAt = now
	r.types[t.ID] = t
	return t, nil
}

func (r *MemoryLeaveTypeRepository) GetByID(ctx context.Context, id string) (leave.LeaveType, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	t, ok := r.types[id]
	if !ok {
		return leave.LeaveType{}, leave.ErrLeaveTypeNotFound
	}
	return t, nil
}

func (r *MemoryLeaveTypeRepository) GetByName(ctx context.Context, name string) (*leave.LeaveType, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, t := range r.types {
		if t.Name == name {
			out := t
			return &out, nil
		}
	}
	return nil, nil
}

func (r *MemoryLeaveTypeRepository) Update(ctx context.Context, t leave.LeaveType) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.types[t.ID]; !ok {
		return leave.ErrLeaveTypeNotFound
	}
	r.types[t.ID] = t
	return nil
}

func (r *MemoryLeaveTypeRepository) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.types[id]; !ok {
		return leave.ErrLeaveTypeNotFound
	}
	delete(r.types, id)
	return nil
}

func (r *MemoryLeaveTypeRepository) List(ctx context.Context) ([]leave.LeaveType, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []leave.LeaveType
	for _, t := range r.types {
		out = append(out, t)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

// MemoryHolidayRepository implements holiday.HolidayRepository.
type MemoryHolidayRepository struct {
	mu       sync.Mutex
	holidays map[string]holiday.Holiday
}

func NewMemoryHolidayRepository() *MemoryHolidayRepository {
	return &MemoryHolidayRepository{holidays: make(map[string]holiday.Holiday)}
}

func cloneHoliday(h holiday.Holiday) holiday.Holiday {
	out := h
	out.AffectedAttendance = append([]string(nil), h.AffectedAttendance...)
	return out
}

// Seed inserts a holiday directly, bypassing Create.
func (r *MemoryHolidayRepository) Seed(h holiday.Holiday) holiday.Holiday {
	r.mu.Lock()
	defer r.mu.Unlock()
	if h.ID == "" {
		h.ID = uuid.NewString()
	}
	r.holidays[h.ID] = cloneHoliday(h)
	return h
}

func (r *MemoryHolidayRepository) Create(ctx context.Context, h holiday.Holiday) (holiday.Holiday, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.holidays {
		if sameDay(existing.Date, h.Date) {
			return holiday.Holiday{}, holiday.ErrDuplicateDate
		}
	}
	h.ID = uuid.NewString()
	now := time.Now()
	h.CreatedAt = now
	h.UpdatedAt = now
	r.holidays[h.ID] = cloneHoliday(h)
	return h, nil
}

func (r *MemoryHolidayRepository) GetByID(ctx context.Context, id string) (holiday.Holiday, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	h, ok := r.holidays[id]
	if !ok {
		return holiday.Holiday{}, holiday.ErrHolidayNotFound
	}
	return cloneHoliday(h), nil
}

func (r *MemoryHolidayRepository) GetByDate(ctx context.Context, date time.Time) (*holiday.Holiday, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, h := range r.holidays {
		if sameDay(h.Date, date) {
			out := cloneHoliday(h)
			return &out, nil
		}
	}
	return nil, nil
}

func (r *MemoryHolidayRepository) ListByDateRange(ctx context.Context, start, end time.Time) ([]holiday.Holiday, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []holiday.Holiday
	for _, h := range r.holidays {
		if inRange(h.Date, start, end) {
			out = append(out, cloneHoliday(h))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date.Before(out[j].Date) })
	return out, nil
}

func (r *MemoryHolidayRepository) List(ctx context.Context) ([]holiday.Holiday, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []holiday.Holiday
	for _, h := range r.holidays {
		out = append(out, cloneHoliday(h))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date.Before(out[j].Date) })
	return out, nil
}

func (r *MemoryHolidayRepository) Update(ctx context.Context, h holiday.Holiday) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.holidays[h.ID]; !ok {
		return holiday.ErrHolidayNotFound
	}
	r.holidays[h.ID] = cloneHoliday(h)
	return nil
}

func (r *MemoryHolidayRepository) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.holidays[id]; !ok {
		return holiday.ErrHolidayNotFound
	}
	delete(r.holidays, id)
	return nil
}
