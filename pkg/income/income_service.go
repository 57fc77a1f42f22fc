package income

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/smartspend/smartspend/pkg/user"
)

type IncomeService interface {
	Create(ctx context.Context, income Income) (Income, error)
	Get(ctx context.Context, id int) (Income, error)
	Find(ctx context.Context, from, to time.Time) ([]Income, error)
	Delete(ctx context.Context, id int) error
}

type IncomeServiceImpl struct {
	repo IncomeRepo
}

func NewIncomeService(repo IncomeRepo) *IncomeServiceImpl {
	return &IncomeServiceImpl{repo: repo}
}

func (s *IncomeServiceImpl) Create(ctx context.Context, income Income) (Income, error) {
	userId, err := user.CurrentId(ctx)
	if err != nil {
		return Income{}, err
	}

	income.Source = strings.TrimSpace(income.Source)
	if income.Source == "" {
		return Income{}, fmt.Errorf("source is required")
	}
	if income.Amount <= 0 {
		return Income{}, fmt.Errorf("amount must be positive")
	}
	if income.Date.IsZero() {
		return Income{}, fmt.Errorf("date is required")
	}

	id, err := s.repo.Store(ctx, userId, income)
	if err != nil {
		return Income{}, err
	}
	income.ID = id
	return income, nil
}

func (s *IncomeServiceImpl) Get(ctx context.Context, id int) (Income, error) {
	userId, err := user.CurrentId(ctx)
	if err != nil {
		return Income{}, err
	}
	return s.repo.Get(ctx, userId, id)
}

func (s *IncomeServiceImpl) Find(ctx context.Context, from, to time.Time) ([]Income, error) {
	userId, err := user.CurrentId(ctx)
	if err != nil {
		return nil, err
	}
	return s.repo.Find(ctx, userId, from, to)
}

func (s *IncomeServiceImpl) Delete(ctx context.Context, id int) error {
	userId, err := user.CurrentId(ctx)
	if err != nil {
		return err
	}
	deleted, err := s.repo.Delete(ctx, userId, id)
	if err != nil {
		return err
	}
	if !deleted {
		return ErrIncomeNotFound
	}
	return nil
}
