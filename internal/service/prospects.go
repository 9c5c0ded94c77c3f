package service

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/hotprospects/hotprospects/internal/database/repository"
	"github.com/hotprospects/hotprospects/internal/prospect"
)

// Sample is the record the scan action inserts when no scanner input is given.
var Sample = repository.Prospect{Name: "Paul Hudson", EmailAddress: "paul@hackingwithswift.com"}

// ProspectService owns the prospect collection. Lists are always read back
// from the store, so every derived view reflects the latest mutation.
type ProspectService struct {
	Prospects *repository.ProspectRepo
	Log       logrus.FieldLogger
}

// Add inserts a new, uncontacted prospect exactly as given. Duplicates are
// allowed.
func (s *ProspectService) Add(ctx context.Context, name, email string) (repository.Prospect, error) {
	p, err := s.Prospects.Insert(ctx, repository.Prospect{Name: name, EmailAddress: email})
	if err != nil {
		return repository.Prospect{}, fmt.Errorf("insert prospect: %w", err)
	}
	s.Log.WithFields(logrus.Fields{"prospect_id": p.ID, "name": p.Name}).Info("prospect added")
	return p, nil
}

// Scan adds the prospect encoded in a QR payload.
func (s *ProspectService) Scan(ctx context.Context, payload string) (repository.Prospect, error) {
	name, email, err := prospect.ParsePayload(payload)
	if err != nil {
		s.Log.WithField("payload_len", len(payload)).Warn("scan rejected")
		return repository.Prospect{}, err
	}
	return s.Add(ctx, name, email)
}

// AddSample inserts the built-in sample prospect.
func (s *ProspectService) AddSample(ctx context.Context) (repository.Prospect, error) {
	return s.Add(ctx, Sample.Name, Sample.EmailAddress)
}

// All returns every prospect by name, insertion order breaking ties.
func (s *ProspectService) All(ctx context.Context) ([]repository.Prospect, error) {
	list, err := s.Prospects.List(ctx, repository.ProspectFilters{})
	if err != nil {
		return nil, fmt.Errorf("list prospects: %w", err)
	}
	return list, nil
}

// Filtered returns the prospects matching pred, in All order.
func (s *ProspectService) Filtered(ctx context.Context, pred prospect.Predicate) ([]repository.Prospect, error) {
	list, err := s.All(ctx)
	if err != nil {
		return nil, err
	}
	return prospect.Apply(list, pred), nil
}

// ByFilter returns the rows a filtered tab shows.
func (s *ProspectService) ByFilter(ctx context.Context, f prospect.Filter) ([]repository.Prospect, error) {
	return s.Filtered(ctx, f.Predicate())
}

// Delete removes every id, or none of them if any is missing.
func (s *ProspectService) Delete(ctx context.Context, ids ...string) error {
	if err := s.Prospects.DeleteMany(ctx, ids...); err != nil {
		return fmt.Errorf("delete prospect: %w", err)
	}
	for _, id := range ids {
		s.Log.WithField("prospect_id", id).Info("prospect deleted")
	}
	return nil
}

// SetContacted marks every id contacted or not, or none of them if any is
// missing.
func (s *ProspectService) SetContacted(ctx context.Context, contacted bool, ids ...string) error {
	if err := s.Prospects.SetContactedMany(ctx, contacted, ids...); err != nil {
		return fmt.Errorf("update prospect: %w", err)
	}
	for _, id := range ids {
		s.Log.WithFields(logrus.Fields{"prospect_id": id, "contacted": contacted}).Info("prospect updated")
	}
	return nil
}

// ToggleContacted flips the contacted flag of p.
func (s *ProspectService) ToggleContacted(ctx context.Context, p repository.Prospect) error {
	return s.SetContacted(ctx, !p.IsContacted, p.ID)
}

// TogglePinned flips the pinned flag of p.
func (s *ProspectService) TogglePinned(ctx context.Context, p repository.Prospect) error {
	if err := s.Prospects.SetPinned(ctx, p.ID, !p.IsPinned); err != nil {
		return fmt.Errorf("pin prospect: %w", err)
	}
	s.Log.WithFields(logrus.Fields{"prospect_id": p.ID, "pinned": !p.IsPinned}).Info("prospect updated")
	return nil
}
