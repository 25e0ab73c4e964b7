package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"go.uber.org/zap"

	"github.com/csg33k/approval-form/internal/domain"
	"github.com/csg33k/approval-form/internal/templates"
	"github.com/csg33k/approval-form/internal/webform"
)

func (h *Handler) index(w http.ResponseWriter, r *http.Request) {
	list, err := h.dir.ListSupervisors(r.Context())
	if err != nil {
		http.Error(w, err.Error(), 500)
		return
	}
	var f webform.Form
	render(w, r, templates.Page(f.View(list, h.monthYear())))
}

func (h *Handler) selectSupervisor(w http.ResponseWriter, r *http.Request) {
	h.interact(w, r, func(f *webform.Form, sel *domain.Supervisor) {
		f.SelectSupervisor(sel)
	})
}

func (h *Handler) selectSupervisee(w http.ResponseWriter, r *http.Request) {
	h.interact(w, r, func(f *webform.Form, _ *domain.Supervisor) {
		f.SelectSupervisee(r.FormValue("supervisee"))
	})
}

func (h *Handler) setDecision(w http.ResponseWriter, r *http.Request) {
	h.interact(w, r, func(f *webform.Form, _ *domain.Supervisor) {
		f.SetDecision(domain.Decision(r.FormValue("choose")))
	})
}

func (h *Handler) setEmail(w http.ResponseWriter, r *http.Request) {
	h.interact(w, r, func(f *webform.Form, _ *domain.Supervisor) {
		f.SetEmail(r.FormValue("email"))
	})
}

func (h *Handler) submitForm(w http.ResponseWriter, r *http.Request) {
	h.interact(w, r, func(f *webform.Form, _ *domain.Supervisor) {
		err := f.Submit(r.Context(), h.client, h.calendar.Current(), h.now())
		if err != nil && !errors.Is(err, webform.ErrIncomplete) {
			h.Log.Warn("form submit failed", zap.Error(err))
		}
	})
}

func (h *Handler) month(w http.ResponseWriter, r *http.Request) {
	render(w, r, templates.Month(h.monthYear()))
}

// interact rebuilds the form from the request's inputs, applies one action
// and re-renders the form fragment.
func (h *Handler) interact(w http.ResponseWriter, r *http.Request, action func(*webform.Form, *domain.Supervisor)) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, err.Error(), 400)
		return
	}
	list, err := h.dir.ListSupervisors(r.Context())
	if err != nil {
		http.Error(w, err.Error(), 500)
		return
	}
	sel, err := h.lookup(r)
	if err != nil {
		http.Error(w, err.Error(), 500)
		return
	}

	f := restore(r, sel)
	action(f, sel)
	render(w, r, templates.Form(f.View(list, h.monthYear())))
}

// lookup resolves the supervisor input. Empty, malformed and unknown ids
// all mean no supervisor.
func (h *Handler) lookup(r *http.Request) (*domain.Supervisor, error) {
	id, err := strconv.ParseInt(r.FormValue("supervisor"), 10, 64)
	if err != nil {
		return nil, nil
	}
	s, err := h.dir.GetSupervisor(r.Context(), id)
	if errors.Is(err, domain.ErrSupervisorNotFound) {
		return nil, nil
	}
	return s, err
}

// restore rebuilds the current state without the resets the setters apply.
func restore(r *http.Request, sel *domain.Supervisor) *webform.Form {
	f := &webform.Form{Supervisor: sel}
	if sel == nil {
		return f
	}
	f.Email = r.FormValue("email")
	if name := r.FormValue("supervisee"); sel.HasSupervisee(name) {
		f.Supervisee = name
	}
	switch d := domain.Decision(r.FormValue("decision")); d {
	case domain.DecisionApproved, domain.DecisionRejected:
		f.Decision = d
	}
	return f
}

func (h *Handler) monthYear() string {
	return h.calendar.Current().MonthYear()
}
