package admin

import (
	"context"
	"fmt"

	"petrescue/internal/domain/adoptions"
	"petrescue/internal/domain/notifications"
	"petrescue/internal/domain/pets"
	"petrescue/internal/domain/reports"
	"petrescue/internal/domain/reviews"
	"petrescue/internal/domain/users"
)

type Stats struct {
	Users         UserStats     `json:"users"`
	Pets          PetStats      `json:"pets"`
	Adoptions     AdoptionStats `json:"adoption_requests"`
	Reports       ReportStats   `json:"reports"`
	Reviews       int           `json:"reviews"`
	Notifications int           `json:"notifications"`
}

type UserStats struct {
	Total    int `json:"total"`
	Active   int `json:"active"`
	Inactive int `json:"inactive"`
}

type PetStats struct {
	Total    int `json:"total"`
	Approved int `json:"approved"`
	Pending  int `json:"pending"`
}

type AdoptionStats struct {
	Total    int `json:"total"`
	Pending  int `json:"pending"`
	Approved int `json:"approved"`
}

type ReportStats struct {
	Total    int `json:"total"`
	Pending  int `json:"pending"`
	Approved int `json:"approved"`
	Rejected int `json:"rejected"`
}

type Deps struct {
	Users         users.Repository
	Pets          pets.Repository
	Adoptions     adoptions.Repository
	Reports       reports.Repository
	Reviews       reviews.Repository
	Notifications notifications.Repository
}

// Service arma las métricas del dashboard. Cuenta en memoria sobre List:
// alcanza para el volumen de un refugio.
type Service struct {
	d Deps
}

func NewService(d Deps) *Service {
	return &Service{d: d}
}

func (s *Service) Dashboard(ctx context.Context) (Stats, error) {
	var st Stats

	us, err := s.d.Users.List(ctx, users.ListFilter{})
	if err != nil {
		return Stats{}, fmt.Errorf("users: %w", err)
	}
	st.Users.Total = len(us)
	for _, u := range us {
		if u.IsActive {
			st.Users.Active++
		}
	}
	st.Users.Inactive = st.Users.Total - st.Users.Active

	ps, err := s.d.Pets.List(ctx, pets.ListFilter{})
	if err != nil {
		return Stats{}, fmt.Errorf("pets: %w", err)
	}
	st.Pets.Total = len(ps)
	for _, p := range ps {
		if p.IsApproved {
			st.Pets.Approved++
		}
	}
	st.Pets.Pending = st.Pets.Total - st.Pets.Approved

	as, err := s.d.Adoptions.List(ctx, adoptions.ListFilter{})
	if err != nil {
		return Stats{}, fmt.Errorf("adoptions: %w", err)
	}
	st.Adoptions.Total = len(as)
	for _, a := range as {
		switch a.Status {
		case adoptions.StatusPending:
			st.Adoptions.Pending++
		case adoptions.StatusApproved:
			st.Adoptions.Approved++
		}
	}

	rs, err := s.d.Reports.List(ctx, reports.ListFilter{})
	if err != nil {
		return Stats{}, fmt.Errorf("reports: %w", err)
	}
	st.Reports.Total = len(rs)
	for _, r := range rs {
		switch r.Status {
		case reports.StatusPending:
			st.Reports.Pending++
		case reports.StatusApproved:
			st.Reports.Approved++
		case reports.StatusRejected:
			st.Reports.Rejected++
		}
	}

	rv, err := s.d.Reviews.List(ctx, reviews.ListFilter{})
	if err != nil {
		return Stats{}, fmt.Errorf("reviews: %w", err)
	}
	st.Reviews = len(rv)

	ns, err := s.d.Notifications.List(ctx, notifications.ListFilter{})
	if err != nil {
		return Stats{}, fmt.Errorf("notifications: %w", err)
	}
	st.Notifications = len(ns)

	return st, nil
}
