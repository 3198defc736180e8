package engine

import (
	"fmt"

	"github.com/iwvelando/proforma/internal/deal"
	"go.uber.org/zap"
)

// Session is one editing session over a single deal. Every edit is followed
// by a full recalculation, so the deal it hands out is always coherent.
// A Session is not safe for concurrent use.
type Session struct {
	engine *Engine
	deal   *deal.Deal
}

// NewSession starts a session on a fresh deal shaped by opts.
func (e *Engine) NewSession(opts deal.Options) *Session {
	s := &Session{engine: e, deal: e.NewDeal(opts)}
	e.Calculate(s.deal)
	return s
}

// Restore starts a session on a previously saved deal, upgrading it first.
// The session works on its own copy.
func (e *Engine) Restore(d *deal.Deal) *Session {
	restored := d.Clone()
	for _, note := range deal.Upgrade(e.ds, restored) {
		e.logger.Debug("upgraded restored deal",
			zap.String("op", "engine.Restore"),
			zap.String("repair", note),
		)
	}
	s := &Session{engine: e, deal: restored}
	e.Calculate(s.deal)
	return s
}

// Apply performs one edit or session action and recalculates.
func (s *Session) Apply(edit deal.Edit) error {
	e := s.engine
	switch edit.Field {
	case deal.ActionReset:
		switch edit.Key {
		case deal.SectionHard:
			e.ResetHardCosts(s.deal)
		case deal.SectionSoft:
			e.ResetSoftCosts(s.deal)
		case deal.SectionMunicipal:
			e.ResetMunicipalFees(s.deal)
		default:
			return fmt.Errorf("cannot reset unknown section %q", edit.Key)
		}
	case deal.ActionNew:
		s.deal = e.NewDeal(deal.Options{})
	case deal.ActionMunicipalDefaults:
		s.deal = e.MunicipalDefaults(s.deal, edit.Text)
	default:
		if err := s.deal.Apply(e.ds, edit); err != nil {
			return fmt.Errorf("failed to apply %s edit: %w", edit.Field, err)
		}
	}
	e.Calculate(s.deal)
	return nil
}

// ApplyAll applies edits in order, stopping at the first failure.
func (s *Session) ApplyAll(edits []deal.Edit) error {
	for i, edit := range edits {
		if err := s.Apply(edit); err != nil {
			return fmt.Errorf("edit %d: %w", i, err)
		}
	}
	return nil
}

// Deal returns a copy of the session's current deal.
func (s *Session) Deal() *deal.Deal {
	return s.deal.Clone()
}

// Results returns the results of the last calculation.
func (s *Session) Results() deal.Results {
	return s.deal.Results
}
