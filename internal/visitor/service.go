package visitor

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"time"
)

// Notifier sends the administrative notification for one check-in.
// Implementations live in internal/notify.
type Notifier interface {
	Send(ctx context.Context, v *Visitor) error
}

// notifyTimeout bounds the notification call so a slow mail provider
// cannot stall a check-in response. The record is already committed by
// the time the notifier runs.
const notifyTimeout = 5 * time.Second

// Service provides visitor business logic: check-in orchestration and
// read-side queries over the repository.
type Service struct {
	repo     *Repository
	notifier Notifier
}

// NewService creates a visitor service.
func NewService(repo *Repository, notifier Notifier) *Service {
	return &Service{repo: repo, notifier: notifier}
}

// CheckIn persists a new visitor record and attempts the administrative
// notification. Persistence is the core contract: a notification failure
// is logged, leaves notified = false, and never fails the check-in.
func (s *Service) CheckIn(ctx context.Context, req CreateVisitorRequest) (*Visitor, error) {
	v, err := s.repo.Create(req)
	if err != nil {
		return nil, err
	}

	notifyCtx, cancel := context.WithTimeout(ctx, notifyTimeout)
	defer cancel()

	if err := s.notifier.Send(notifyCtx, v); err != nil {
		slog.Warn("visitor notification failed",
			"visitor_id", v.ID,
			"apartment", v.ApartmentNumber,
			"error", err,
		)
		return v, nil
	}

	if err := s.repo.MarkNotified(v.ID); err != nil {
		if errors.Is(err, ErrNotFound) {
			// Record deleted while the mail was in flight; the deleter wins.
			slog.Info("visitor deleted before notified flag was set", "visitor_id", v.ID)
			return v, nil
		}
		return nil, fmt.Errorf("marking visitor notified: %w", err)
	}

	v.Notified = true
	return v, nil
}

// GetAll returns one page of visitors, newest first, plus the total count.
func (s *Service) GetAll(opts ListOptions) ([]*Visitor, int64, error) {
	visitors, err := s.repo.List(opts)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.repo.Count()
	if err != nil {
		return nil, 0, err
	}
	return visitors, total, nil
}

// Get returns one visitor by ID.
func (s *Service) Get(id int64) (*Visitor, error) {
	return s.repo.Get(id)
}

// Search returns visitors matching the query, newest first.
func (s *Service) Search(query string) ([]*Visitor, error) {
	return s.repo.Search(query)
}

// Update replaces the mutable fields of an existing record.
func (s *Service) Update(id int64, req UpdateVisitorRequest) (*Visitor, error) {
	return s.repo.Update(id, req)
}

// Remove deletes a visitor record permanently.
func (s *Service) Remove(id int64) error {
	return s.repo.Delete(id)
}

// ApartmentCount is one entry of the most-visited apartment ranking.
type ApartmentCount struct {
	Apartment string `json:"apartment"`
	Visits    int64  `json:"visits"`
}

// DayCount is the number of check-ins on one calendar day.
type DayCount struct {
	Date  string `json:"date"` // YYYY-MM-DD
	Count int64  `json:"count"`
}

// Stats aggregates the stored visitor records.
type Stats struct {
	TotalVisitors    int64            `json:"total_visitors"`
	NotifiedVisitors int64            `json:"notified_visitors"`
	TodayVisitors    int64            `json:"today_visitors"`
	TopApartments    []ApartmentCount `json:"top_apartments"`
	DailyVisitors    []DayCount       `json:"daily_visitors"`
}

// Stats computes aggregate counts by scanning all records in memory.
// Fine for single-building visitor logs; this is not an analytics store.
func (s *Service) Stats() (*Stats, error) {
	visitors, err := s.repo.List(ListOptions{})
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	today := now.Format("2006-01-02")
	weekAgo := now.AddDate(0, 0, -7)

	st := &Stats{TotalVisitors: int64(len(visitors))}
	byApartment := make(map[string]int64)
	byDay := make(map[string]int64)

	for _, v := range visitors {
		if v.Notified {
			st.NotifiedVisitors++
		}
		day := v.CheckInTime.UTC().Format("2006-01-02")
		if day == today {
			st.TodayVisitors++
		}
		byApartment[v.ApartmentNumber]++
		if v.CheckInTime.After(weekAgo) {
			byDay[day]++
		}
	}

	for apt, n := range byApartment {
		st.TopApartments = append(st.TopApartments, ApartmentCount{Apartment: apt, Visits: n})
	}
	sort.Slice(st.TopApartments, func(i, j int) bool {
		if st.TopApartments[i].Visits != st.TopApartments[j].Visits {
			return st.TopApartments[i].Visits > st.TopApartments[j].Visits
		}
		return st.TopApartments[i].Apartment < st.TopApartments[j].Apartment
	})
	if len(st.TopApartments) > 5 {
		st.TopApartments = st.TopApartments[:5]
	}

	for day, n := range byDay {
		st.DailyVisitors = append(st.DailyVisitors, DayCount{Date: day, Count: n})
	}
	sort.Slice(st.DailyVisitors, func(i, j int) bool {
		return st.DailyVisitors[i].Date < st.DailyVisitors[j].Date
	})

	return st, nil
}
