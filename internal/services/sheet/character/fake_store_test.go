package character

import (
	"context"
	"sort"

	"github.com/louisbranch/poolsheet/internal/services/sheet/storage"
)

type fakeStore struct {
	characters map[string]storage.CharacterRecord
	resources  map[string][]storage.ResourceRecord
	rolls      map[string]storage.RollRecord
	putRollErr error
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		characters: map[string]storage.CharacterRecord{},
		resources:  map[string][]storage.ResourceRecord{},
		rolls:      map[string]storage.RollRecord{},
	}
}

func (f *fakeStore) PutCharacter(_ context.Context, record storage.CharacterRecord) error {
	f.characters[record.ID] = record
	return nil
}

func (f *fakeStore) GetCharacter(_ context.Context, characterID string) (storage.CharacterRecord, error) {
	rec, ok := f.characters[characterID]
	if !ok {
		return storage.CharacterRecord{}, storage.ErrNotFound
	}
	return rec, nil
}

func (f *fakeStore) PutResource(_ context.Context, record storage.ResourceRecord) error {
	list := f.resources[record.CharacterID]
	for i, rec := range list {
		if rec.Resource.ID == record.Resource.ID {
			list[i] = record
			f.resources[record.CharacterID] = list
			return nil
		}
	}
	f.resources[record.CharacterID] = append(list, record)
	return nil
}

func (f *fakeStore) ListResources(_ context.Context, characterID string) ([]storage.ResourceRecord, error) {
	out := append([]storage.ResourceRecord(nil), f.resources[characterID]...)
	sort.SliceStable(out, func(i, j int) bool { return out[i].Position < out[j].Position })
	return out, nil
}

func (f *fakeStore) DeleteResource(_ context.Context, characterID, resourceID string) error {
	list := f.resources[characterID]
	for i, rec := range list {
		if rec.Resource.ID == resourceID {
			f.resources[characterID] = append(list[:i:i], list[i+1:]...)
			return nil
		}
	}
	return storage.ErrNotFound
}

func (f *fakeStore) UpdateResourceValues(_ context.Context, characterID string, values map[string]int) error {
	list := f.resources[characterID]
	for resourceID, value := range values {
		found := false
		for i := range list {
			if list[i].Resource.ID == resourceID {
				list[i].Resource.Value = value
				found = true
			}
		}
		if !found {
			return storage.ErrNotFound
		}
	}
	return nil
}

func (f *fakeStore) PutRoll(_ context.Context, record storage.RollRecord) error {
	if f.putRollErr != nil {
		return f.putRollErr
	}
	f.rolls[record.ID] = record
	return nil
}

func (f *fakeStore) GetRoll(_ context.Context, rollID string) (storage.RollRecord, error) {
	rec, ok := f.rolls[rollID]
	if !ok {
		return storage.RollRecord{}, storage.ErrNotFound
	}
	return rec, nil
}

// WithinTx restores a snapshot of every map when fn fails.
func (f *fakeStore) WithinTx(_ context.Context, fn func(storage.Store) error) error {
	characters := make(map[string]storage.CharacterRecord, len(f.characters))
	for k, v := range f.characters {
		characters[k] = v
	}
	resources := make(map[string][]storage.ResourceRecord, len(f.resources))
	for k, v := range f.resources {
		resources[k] = append([]storage.ResourceRecord(nil), v...)
	}
	rolls := make(map[string]storage.RollRecord, len(f.rolls))
	for k, v := range f.rolls {
		rolls[k] = v
	}
	if err := fn(f); err != nil {
		f.characters = characters
		f.resources = resources
		f.rolls = rolls
		return err
	}
	return nil
}
