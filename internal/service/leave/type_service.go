package leave

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/digihr/attendance-backend-go/internal/domain/employee"
	"github.com/digihr/attendance-backend-go/internal/domain/leave"
	"github.com/digihr/attendance-backend-go/internal/pkg/database"
)

type LeaveTypeServiceImpl struct {
	uow database.UnitOfWork
	log *slog.Logger
	leave.LeaveTypeRepository
	leave.LeaveRequestRepository
	employee.EmployeeRepository
}

func NewLeaveTypeService(
	uow database.UnitOfWork,
	log *slog.Logger,
	typeRepo leave.LeaveTypeRepository,
	leaveRepo leave.LeaveRequestRepository,
	employeeRepo employee.EmployeeRepository,
) *LeaveTypeServiceImpl {
	return &LeaveTypeServiceImpl{
		uow:                    uow,
		log:                    log,
		LeaveTypeRepository:    typeRepo,
		LeaveRequestRepository: leaveRepo,
		EmployeeRepository:     employeeRepo,
	}
}

// CreateType implements leave.LeaveTypeService. Every employee gets a full
// balance for the new type in the same transaction.
func (s *LeaveTypeServiceImpl) CreateType(ctx context.Context, req leave.CreateLeaveTypeRequest) (leave.LeaveTypeResponse, error) {
	if err := req.Validate(); err != nil {
		return leave.LeaveTypeResponse{}, err
	}

	existing, err := s.LeaveTypeRepository.GetByName(ctx, req.Name)
	if err != nil {
		return leave.LeaveTypeResponse{}, fmt.Errorf("check leave type name: %w", err)
	}
	if existing != nil {
		return leave.LeaveTypeResponse{}, leave.ErrLeaveTypeExists
	}

	var created leave.LeaveType
	err = s.uow.RunInTransaction(ctx, func(ctx context.Context) error {
		created, err = s.LeaveTypeRepository.Create(ctx, leave.LeaveType{
			Name:          req.Name,
			AllowedLeaves: req.AllowedLeaves,
			Status:        leave.TypeActive,
		})
		if err != nil {
			return fmt.Errorf("create leave type: %w", err)
		}

		employees, err := s.EmployeeRepository.List(ctx)
		if err != nil {
			return fmt.Errorf("list employees: %w", err)
		}
		for _, emp := range employees {
			if err := s.EmployeeRepository.CreateBalance(ctx, employee.LeaveBalance{
				EmployeeID:     emp.ID,
				LeaveTypeID:    created.ID,
				AllowedLeaves:  req.AllowedLeaves,
				CurrentBalance: req.AllowedLeaves,
			}); err != nil {
				return fmt.Errorf("seed balance for %s: %w", emp.ID, err)
			}
		}
		return nil
	})
	if err != nil {
		return leave.LeaveTypeResponse{}, err
	}

	s.log.Info("leave type created",
		slog.String("leave_type_id", created.ID),
		slog.String("name", created.Name),
	)
	return leave.ToTypeResponse(created), nil
}

// UpdateType implements leave.LeaveTypeService. A change to allowed_leaves
// propagates its delta into every employee's balance, re-clamped to the new
// range.
func (s *LeaveTypeServiceImpl) UpdateType(ctx context.Context, req leave.UpdateLeaveTypeRequest) (leave.LeaveTypeResponse, error) {
	if err := req.Validate(); err != nil {
		return leave.LeaveTypeResponse{}, err
	}

	leaveType, err := s.LeaveTypeRepository.GetByID(ctx, req.ID)
	if err != nil {
		return leave.LeaveTypeResponse{}, err
	}

	delta := 0
	if req.AllowedLeaves != nil {
		delta = *req.AllowedLeaves - leaveType.AllowedLeaves
		leaveType.AllowedLeaves = *req.AllowedLeaves
	}
	if req.Name != nil {
		leaveType.Name = *req.Name
	}
	if req.Status != nil {
		leaveType.Status = *req.Status
	}

	err = s.uow.RunInTransaction(ctx, func(ctx context.Context) error {
		if err := s.LeaveTypeRepository.Update(ctx, leaveType); err != nil {
			return fmt.Errorf("update leave type: %w", err)
		}

		if delta == 0 {
			return nil
		}

		employees, err := s.EmployeeRepository.List(ctx)
		if err != nil {
			return fmt.Errorf("list employees: %w", err)
		}
		for _, emp := range employees {
			balance, err := s.EmployeeRepository.GetBalance(ctx, emp.ID, leaveType.ID)
			if err != nil {
				if errors.Is(err, employee.ErrBalanceNotFound) {
					continue
				}
				return fmt.Errorf("get balance for %s: %w", emp.ID, err)
			}
			balance.ApplyAllowedDelta(delta)
			if err := s.EmployeeRepository.UpdateBalance(ctx, balance); err != nil {
				return fmt.Errorf("update balance for %s: %w", emp.ID, err)
			}
		}
		return nil
	})
	if err != nil {
		return leave.LeaveTypeResponse{}, err
	}

	return leave.ToTypeResponse(leaveType), nil
}

// DeleteType implements leave.LeaveTypeService. Historical requests keep the
// type's name as a snapshot; balance rows are removed.
func (s *LeaveTypeServiceImpl) DeleteType(ctx context.Context, id string) error {
	leaveType, err := s.LeaveTypeRepository.GetByID(ctx, id)
	if err != nil {
		return err
	}

	return s.uow.RunInTransaction(ctx, func(ctx context.Context) error {
		if err := s.LeaveRequestRepository.SnapshotTypeName(ctx, leaveType.ID, leaveType.Name); err != nil {
			return fmt.Errorf("snapshot type name: %w", err)
		}
		if err := s.EmployeeRepository.DeleteBalancesForType(ctx, leaveType.ID); err != nil {
			return fmt.Errorf("delete balances: %w", err)
		}
		if err := s.LeaveTypeRepository.Delete(ctx, leaveType.ID); err != nil {
			return fmt.Errorf("delete leave type: %w", err)
		}
		return nil
	})
}

// GetType implements leave.LeaveTypeService.
func (s *LeaveTypeServiceImpl) GetType(ctx context.Context, id string) (leave.LeaveTypeResponse, error) {
	leaveType, err := s.LeaveTypeRepository.GetByID(ctx, id)
	if err != nil {
		return leave.LeaveTypeResponse{}, err
	}
	return leave.ToTypeResponse(leaveType), nil
}

// ListTypes implements leave.LeaveTypeService.
func (s *LeaveTypeServiceImpl) ListTypes(ctx context.Context) ([]leave.LeaveTypeResponse, error) {
	types, err := s.LeaveTypeRepository.List(ctx)
	if err != nil {
		return nil, err
	}

	out := make([]leave.LeaveTypeResponse, 0, len(types))
	for _, t := range types {
		out = append(out, leave.ToTypeResponse(t))
	}
	return out, nil
}
