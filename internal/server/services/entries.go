package services

import (
	"context"
	"fmt"
	"slices"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/dmitrijs2005/mywallet/internal/common"
	"github.com/dmitrijs2005/mywallet/internal/logging"
	"github.com/dmitrijs2005/mywallet/internal/server/models"
	"github.com/dmitrijs2005/mywallet/internal/server/repositories/repomanager"
	"github.com/google/uuid"
)

const maxDescriptionLen = 200

type EntryService struct {
	repomanager repomanager.RepositoryManager
	log         logging.Logger
	now         func() time.Time
}

func NewEntryService(m repomanager.RepositoryManager, log logging.Logger) *EntryService {
	return &EntryService{
		repomanager: m,
		log:         log.With("service", "entries"),
		now:         time.Now,
	}
}

// Add validates and stores entry, assigning a UUID when ID is empty.
func (s *EntryService) Add(ctx context.Context, entry models.LedgerEntry) (*models.LedgerEntry, error) {
	entry = normalizeEntry(entry)
	if entry.ID == "" {
		entry.ID = uuid.NewString()
	}
	if err := s.validate(entry); err != nil {
		return nil, err
	}

	ok, err := s.repomanager.Entries().Add(ctx, entry)
	if err != nil {
		return nil, fmt.Errorf("error adding entry: %w", err)
	}
	if !ok {
		return nil, fmt.Errorf("%w: entry was not stored", common.ErrorInternal)
	}

	s.log.Info(ctx, "entry added", "entry_id", entry.ID, "categories", len(entry.Categories))
	return &entry, nil
}

// Update replaces the fields and categories of an existing entry. It returns
// nil when no entry with that id exists.
func (s *EntryService) Update(ctx context.Context, entry models.LedgerEntry) (*models.LedgerEntry, error) {
	entry = normalizeEntry(entry)
	if entry.ID == "" {
		return nil, fmt.Errorf("%w: id is required", common.ErrorValidation)
	}
	if err := s.validate(entry); err != nil {
		return nil, err
	}

	ok, err := s.repomanager.Entries().Update(ctx, entry)
	if err != nil {
		return nil, fmt.Errorf("error updating entry: %w", err)
	}
	if !ok {
		return nil, nil
	}

	s.log.Info(ctx, "entry updated", "entry_id", entry.ID)
	return &entry, nil
}

// Delete removes an entry together with its categories.
func (s *EntryService) Delete(ctx context.Context, id string) error {
	ok, err := s.repomanager.Entries().Delete(ctx, id)
	if err != nil {
		return fmt.Errorf("error deleting entry: %w", err)
	}
	if !ok {
		return common.ErrorNotFound
	}

	s.log.Info(ctx, "entry deleted", "entry_id", id)
	return nil
}

// Get returns the entry with id, or nil if there is none.
func (s *EntryService) Get(ctx context.Context, id string) (*models.LedgerEntry, error) {
	return s.repomanager.Entries().GetByID(ctx, id)
}

// List returns all entries, newest first.
func (s *EntryService) List(ctx context.Context) ([]models.LedgerEntry, error) {
	return s.repomanager.Entries().GetAll(ctx)
}

func (s *EntryService) validate(e models.LedgerEntry) error {
	if e.Description == "" {
		return fmt.Errorf("%w: description is required", common.ErrorValidation)
	}
	if utf8.RuneCountInString(e.Description) > maxDescriptionLen {
		return fmt.Errorf("%w: description exceeds %d characters", common.ErrorValidation, maxDescriptionLen)
	}
	if e.Value.IsZero() {
		return fmt.Errorf("%w: value must be non-zero", common.ErrorValidation)
	}
	if e.Date.IsZero() {
		return fmt.Errorf("%w: date is required", common.ErrorValidation)
	}
	if e.Date.After(s.now()) {
		return fmt.Errorf("%w: date %s is in the future", common.ErrorValidation, e.Date.Format(time.DateOnly))
	}
	return nil
}

// normalizeEntry trims text fields and drops blank or repeated category labels.
func normalizeEntry(e models.LedgerEntry) models.LedgerEntry {
	e.ID = strings.TrimSpace(e.ID)
	e.Description = strings.TrimSpace(e.Description)

	labels := make([]string, 0, len(e.Categories))
	for _, c := range e.Categories {
		c = strings.TrimSpace(c)
		if c == "" || slices.Contains(labels, c) {
			continue
		}
		labels = append(labels, c)
	}
	e.Categories = labels
	return e
}
