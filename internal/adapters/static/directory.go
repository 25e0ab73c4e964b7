// Package static serves the supervisor table from memory: either the
// built-in default list or one supplied through configuration.
package static

import (
	"context"

	"github.com/csg33k/approval-form/internal/domain"
)

// Directory is an immutable in-memory ports.SupervisorDirectory.
type Directory struct {
	list []domain.Supervisor
	byID map[int64]int
}

// New copies list; later changes to the caller's slice are not observed.
func New(list []domain.Supervisor) *Directory {
	d := &Directory{
		list: make([]domain.Supervisor, len(list)),
		byID: make(map[int64]int, len(list)),
	}
	for i, s := range list {
		s.Supervisees = append([]string(nil), s.Supervisees...)
		d.list[i] = s
		d.byID[s.ID] = i
	}
	return d
}

// Default returns the built-in supervisor table.
func Default() *Directory { return New(DefaultSupervisors()) }

func (d *Directory) ListSupervisors(_ context.Context) ([]domain.Supervisor, error) {
	out := make([]domain.Supervisor, len(d.list))
	copy(out, d.list)
	return out, nil
}

func (d *Directory) GetSupervisor(_ context.Context, id int64) (*domain.Supervisor, error) {
	i, ok := d.byID[id]
	if !ok {
		return nil, domain.ErrSupervisorNotFound
	}
	s := d.list[i]
	return &s, nil
}

// DefaultSupervisors is the reference table the form ships with.
func DefaultSupervisors() []domain.Supervisor {
	return []domain.Supervisor{
		{
			ID:           1,
			Name:         "دکتر احمد محمدی",
			Email:        "ahmad.mohammadi@example.com",
			ProjectTitle: "پروژه هوش مصنوعی و یادگیری ماشین",
			Supervisees:  []string{"علی رضایی", "فاطمه احمدی", "محمد کریمی"},
		},
		{
			ID:           2,
			Name:         "دکتر سارا نوری",
			Email:        "sara.nouri@example.com",
			ProjectTitle: "پروژه پردازش زبان طبیعی",
			Supervisees:  []string{"حسین زارعی", "زهرا موسوی"},
		},
		{
			ID:           3,
			Name:         "دکتر رضا حسینی",
			Email:        "reza.hosseini@example.com",
			ProjectTitle: "پروژه بینایی کامپیوتر",
			Supervisees:  []string{"مریم رضایی", "امیر علیزاده", "نرگس کاظمی", "حسن محمودی"},
		},
		{
			ID:           4,
			Name:         "دکتر مریم صادقی",
			Email:        "maryam.sadeghi@example.com",
			ProjectTitle: "پروژه شبکه‌های عصبی عمیق",
			Supervisees:  []string{"محمد رضایی", "فاطمه کریمی"},
		},
	}
}
