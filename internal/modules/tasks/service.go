package tasks

import (
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/dylbow/clawdgod/internal/cache"
	"github.com/dylbow/clawdgod/internal/clients/monday"
)

const (
	tasksTTL = 2 * time.Minute
	tasksKey = "monday"

	statusColumn   = "project_status"
	priorityColumn = "priority_1"
	dueColumn      = "date"

	doneStatus = "Done"
	// Completed tasks stay visible for a week past their due date.
	doneRetention = 7 * 24 * time.Hour
)

// Task is one board item mapped to the dashboard's shape
type Task struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Status   string `json:"status"`
	Priority string `json:"priority"`
	Due      string `json:"due"`
}

// BoardAPI is the slice of the Monday client the service needs
type BoardAPI interface {
	Query(query string) (*monday.QueryResponse, error)
}

// Service fetches and filters the task board
type Service struct {
	api     BoardAPI
	cache   *cache.Cache
	boardID int64
	now     func() time.Time
	log     zerolog.Logger
}

// NewService creates a new tasks service for a fixed board. A nil clock
// defaults to time.Now.
func NewService(api BoardAPI, c *cache.Cache, boardID int64, now func() time.Time, log zerolog.Logger) *Service {
	if now == nil {
		now = time.Now
	}
	return &Service{
		api:     api,
		cache:   c,
		boardID: boardID,
		now:     now,
		log:     log.With().Str("service", "tasks").Logger(),
	}
}

// List returns the board's tasks with the done-task retention filter
// applied. The board response is cached for two minutes.
func (s *Service) List() ([]Task, error) {
	resp, err := cache.GetOrCompute(s.cache, tasksKey, tasksTTL, func() (*monday.QueryResponse, error) {
		return s.api.Query(s.boardQuery())
	})
	if err != nil {
		return nil, err
	}

	var items []monday.Item
	if len(resp.Data.Boards) > 0 {
		items = resp.Data.Boards[0].ItemsPage.Items
	}

	now := s.now()
	tasks := make([]Task, 0, len(items))
	for _, item := range items {
		task := Task{
			ID:       item.ID,
			Name:     item.Name,
			Status:   item.ColumnText(statusColumn),
			Priority: item.ColumnText(priorityColumn),
			Due:      item.ColumnText(dueColumn),
		}
		if s.keep(task, now) {
			tasks = append(tasks, task)
		}
	}

	return tasks, nil
}

// keep decides whether a task is still worth showing. Open tasks always
// are; a Done task is kept only while its due date is less than a week in
// the past. A Done task with no parseable due date is dropped.
func (s *Service) keep(t Task, now time.Time) bool {
	if t.Status != doneStatus {
		return true
	}

	due, err := time.Parse("2006-01-02", t.Due)
	if err != nil {
		return false
	}
	return now.Sub(due) < doneRetention
}

func (s *Service) boardQuery() string {
	return fmt.Sprintf(
		`{ boards(ids: %d) { items_page(limit: 20) { items { id name column_values(ids: [%q, %q, %q]) { id text } } } } }`,
		s.boardID, statusColumn, priorityColumn, dueColumn,
	)
}
