package store

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"sync"

	"github.com/jonathan/jobhunt/internal/types"
)

// Memory is a process-local Store. Records are copied in and out so callers
// never share state with the store.
type Memory struct {
	mu           sync.RWMutex
	resumes      map[string]*types.ResumeRecord
	applications map[string]*types.Application
}

// NewMemory creates an empty Memory store.
func NewMemory() *Memory {
	return &Memory{
		resumes:      make(map[string]*types.ResumeRecord),
		applications: make(map[string]*types.Application),
	}
}

// Close is a no-op.
func (m *Memory) Close() {}

func (m *Memory) PutResume(_ context.Context, r *types.ResumeRecord) error {
	cp, err := copyResume(r)
	if err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.resumes[r.ID] = cp
	return nil
}

func (m *Memory) GetResume(_ context.Context, id string) (*types.ResumeRecord, error) {
	m.mu.RLock()
	r, ok := m.resumes[id]
	m.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("resume %s: %w", id, ErrNotFound)
	}
	return copyResume(r)
}

func (m *Memory) ListResumes(_ context.Context, limit int) ([]*types.ResumeRecord, error) {
	m.mu.RLock()
	all := make([]*types.ResumeRecord, 0, len(m.resumes))
	for _, r := range m.resumes {
		all = append(all, r)
	}
	m.mu.RUnlock()

	sort.SliceStable(all, func(i, j int) bool {
		return all[i].UploadedAt.After(all[j].UploadedAt)
	})
	if limit > 0 && len(all) > limit {
		all = all[:limit]
	}

	out := make([]*types.ResumeRecord, len(all))
	for i, r := range all {
		cp, err := copyResume(r)
		if err != nil {
			return nil, err
		}
		out[i] = cp
	}
	return out, nil
}

func (m *Memory) DeleteResume(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.resumes[id]; !ok {
		return fmt.Errorf("resume %s: %w", id, ErrNotFound)
	}
	delete(m.resumes, id)
	return nil
}

func (m *Memory) PutApplication(_ context.Context, a *types.Application) error {
	cp, err := clone(a)
	if err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.applications[a.ID] = cp
	return nil
}

func (m *Memory) GetApplication(_ context.Context, id string) (*types.Application, error) {
	m.mu.RLock()
	a, ok := m.applications[id]
	m.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("application %s: %w", id, ErrNotFound)
	}
	return clone(a)
}

func (m *Memory) FindApplicationByExternalID(_ context.Context, externalID string) (*types.Application, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, a := range m.applications {
		if a.Listing.ExternalID == externalID {
			return clone(a)
		}
	}
	return nil, fmt.Errorf("application for listing %s: %w", externalID, ErrNotFound)
}

func (m *Memory) ListApplications(_ context.Context, status string) ([]*types.Application, error) {
	m.mu.RLock()
	var all []*types.Application
	for _, a := range m.applications {
		if status == "" || a.Status == status {
			all = append(all, a)
		}
	}
	m.mu.RUnlock()

	sort.SliceStable(all, func(i, j int) bool {
		return all[i].CreatedAt.After(all[j].CreatedAt)
	})

	out := make([]*types.Application, len(all))
	for i, a := range all {
		cp, err := clone(a)
		if err != nil {
			return nil, err
		}
		out[i] = cp
	}
	return out, nil
}

func (m *Memory) DeleteApplication(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.applications[id]; !ok {
		return fmt.Errorf("application %s: %w", id, ErrNotFound)
	}
	delete(m.applications, id)
	return nil
}

// copyResume deep-copies r including RawText, which is not serialized.
func copyResume(r *types.ResumeRecord) (*types.ResumeRecord, error) {
	cp, err := clone(r)
	if err != nil {
		return nil, err
	}
	cp.RawText = r.RawText
	return cp, nil
}

func clone[T any](v *T) (*T, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("failed to copy record: %w", err)
	}
	var out T
	if err := json.Unmarshal(data, &out); err != nil {
		return nil, fmt.Errorf("failed to copy record: %w", err)
	}
	return &out, nil
}
