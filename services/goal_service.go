package services

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"mindmetrics/internal/goal"
	"mindmetrics/internal/session"
)

type GoalService struct {
	store GoalStore
	log   *zap.Logger
}

func NewGoalService(store GoalStore, log *zap.Logger) *GoalService {
	return &GoalService{store: store, log: log}
}

func (s *GoalService) List(ctx context.Context, p session.Principal) ([]goal.Goal, error) {
	goals, err := s.store.ListGoals(ctx, p)
	if err != nil {
		return nil, err
	}
	if goals == nil {
		goals = []goal.Goal{}
	}
	return goals, nil
}

func (s *GoalService) Get(ctx context.Context, p session.Principal, id string) (*goal.Goal, error) {
	return s.store.GetGoal(ctx, p, id)
}

// Create fills in the default status and metric before storing the goal.
func (s *GoalService) Create(ctx context.Context, p session.Principal, in *goal.Input) (*goal.Goal, error) {
	withDefaults := in.WithDefaults()
	created, err := s.store.CreateGoal(ctx, p, &withDefaults)
	if err != nil {
		return nil, err
	}
	s.log.Info("goal created",
		zap.String("user_id", p.UserID),
		zap.String("goal_id", created.ID),
		zap.String("metric", created.TargetMetric))
	return created, nil
}

func (s *GoalService) Update(ctx context.Context, p session.Principal, id string, in *goal.Input) (*goal.Goal, error) {
	withDefaults := in.WithDefaults()
	return s.store.UpdateGoal(ctx, p, id, &withDefaults)
}

func (s *GoalService) Delete(ctx context.Context, p session.Principal, id string) error {
	if err := s.store.DeleteGoal(ctx, p, id); err != nil {
		return fmt.Errorf("delete goal %s: %w", id, err)
	}
	return nil
}
