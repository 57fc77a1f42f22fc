package expense

import (
	"context"
	"fmt"
	"strings"

	log "github.com/sirupsen/logrus"
	"github.com/smartspend/smartspend/internal/event_bus"
	"github.com/smartspend/smartspend/pkg/user"
)

type ExpenseService interface {
	Create(ctx context.Context, expense Expense, receipt *Receipt) (Expense, error)
	Get(ctx context.Context, id int) (Expense, error)
	Find(ctx context.Context, filter Filter) ([]Expense, error)
	Delete(ctx context.Context, id int) error
	Categories(ctx context.Context) ([]string, error)
	GetReceipt(ctx context.Context, id int) (Receipt, error)
}

type ExpenseServiceImpl struct {
	repo ExpenseRepo
	bus  *event_bus.EventBus
}

func NewExpenseService(repo ExpenseRepo, bus *event_bus.EventBus) *ExpenseServiceImpl {
	return &ExpenseServiceImpl{repo: repo, bus: bus}
}

func (s *ExpenseServiceImpl) Create(ctx context.Context, expense Expense, receipt *Receipt) (Expense, error) {
	userId, err := user.CurrentId(ctx)
	if err != nil {
		return Expense{}, err
	}

	expense.Category = strings.TrimSpace(expense.Category)
	if expense.Category == "" {
		return Expense{}, fmt.Errorf("category is required")
	}
	if expense.Amount <= 0 {
		return Expense{}, fmt.Errorf("amount must be positive")
	}
	if expense.Date.IsZero() {
		return Expense{}, fmt.Errorf("date is required")
	}

	id, err := s.repo.Store(ctx, userId, expense, receipt)
	if err != nil {
		return Expense{}, err
	}
	expense.ID = id
	expense.HasReceipt = receipt != nil

	event := event_bus.NewEvent(ctx, event_bus.ExpenseCreated, event_bus.ExpenseCreatedData{
		Id:       expense.ID,
		Date:     expense.Date,
		Category: expense.Category,
		Amount:   expense.Amount,
	})
	if err := s.bus.Publish(event); err != nil {
		log.Warnf("Failed to publish expense created event: %v", err)
	}
	return expense, nil
}

func (s *ExpenseServiceImpl) Get(ctx context.Context, id int) (Expense, error) {
	userId, err := user.CurrentId(ctx)
	if err != nil {
		return Expense{}, err
	}
	return s.repo.Get(ctx, userId, id)
}

func (s *ExpenseServiceImpl) Find(ctx context.Context, filter Filter) ([]Expense, error) {
	userId, err := user.CurrentId(ctx)
	if err != nil {
		return nil, err
	}
	return s.repo.Find(ctx, userId, filter)
}

func (s *ExpenseServiceImpl) Delete(ctx context.Context, id int) error {
	userId, err := user.CurrentId(ctx)
	if err != nil {
		return err
	}
	deleted, err := s.repo.Delete(ctx, userId, id)
	if err != nil {
		return err
	}
	if !deleted {
		return ErrExpenseNotFound
	}
	return nil
}

func (s *ExpenseServiceImpl) Categories(ctx context.Context) ([]string, error) {
	userId, err := user.CurrentId(ctx)
	if err != nil {
		return nil, err
	}
	return s.repo.DistinctCategories(ctx, userId)
}

func (s *ExpenseServiceImpl) GetReceipt(ctx context.Context, id int) (Receipt, error) {
	userId, err := user.CurrentId(ctx)
	if err != nil {
		return Receipt{}, err
	}
	return s.repo.GetReceipt(ctx, userId, id)
}
