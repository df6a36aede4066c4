package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"sync"
	"time"

	"roombook/core/logger"
	"roombook/modules/reservation/entity"
)

// JSONFileRepository stores the full reservation set as a single JSON
// blob. Writes go to a temp file in the same directory followed by an
// atomic rename, so a crash mid-write never leaves a partial store.
type JSONFileRepository struct {
	path   string
	mu     sync.Mutex
	nextID int
}

type fileSnapshot struct {
	Reservations []entity.Reservation `json:"reservations"`
}

func NewJSONFileRepository(path string) *JSONFileRepository {
	return &JSONFileRepository{path: path}
}

// read loads the snapshot from disk. A missing file is an empty store;
// anything unreadable or unparsable is a storage failure.
func (r *JSONFileRepository) read() (*fileSnapshot, error) {
	raw, err := os.ReadFile(r.path)
	if err != nil {
		if os.IsNotExist(err) {
			return &fileSnapshot{Reservations: []entity.Reservation{}}, nil
		}
		return nil, fmt.Errorf("read reservation store: %w", err)
	}

	var snap fileSnapshot
	if err := json.Unmarshal(raw, &snap); err != nil {
		return nil, fmt.Errorf("corrupt reservation store %s: %w", r.path, err)
	}
	if snap.Reservations == nil {
		snap.Reservations = []entity.Reservation{}
	}
	return &snap, nil
}

// write replaces the snapshot atomically.
func (r *JSONFileRepository) write(snap *fileSnapshot) error {
	raw, err := json.MarshalIndent(snap, "", "  ")
	if err != nil {
		return fmt.Errorf("encode reservation store: %w", err)
	}

	tmp := r.path + ".tmp"
	if err := os.WriteFile(tmp, raw, 0o644); err != nil {
		return fmt.Errorf("write reservation store: %w", err)
	}
	if err := os.Rename(tmp, r.path); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("replace reservation store: %w", err)
	}
	return nil
}

func sortReservations(rs []entity.Reservation) {
	sort.SliceStable(rs, func(i, j int) bool {
		if rs[i].EventDate != rs[j].EventDate {
			return rs[i].EventDate < rs[j].EventDate
		}
		return rs[i].StartTime < rs[j].StartTime
	})
}

func (r *JSONFileRepository) Load(ctx context.Context) ([]entity.Reservation, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	snap, err := r.read()
	if err != nil {
		return nil, err
	}
	out := make([]entity.Reservation, len(snap.Reservations))
	copy(out, snap.Reservations)
	sortReservations(out)
	return out, nil
}

func (r *JSONFileRepository) Append(ctx context.Context, res *entity.Reservation) (*entity.Reservation, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	snap, err := r.read()
	if err != nil {
		return nil, err
	}

	// The counter survives deletions, so ids are never reused within a
	// store lifetime.
	if r.nextID == 0 {
		maxID := 0
		for _, ev := range snap.Reservations {
			if ev.ID > maxID {
				maxID = ev.ID
			}
		}
		r.nextID = maxID + 1
	}

	created := *res
	created.ID = r.nextID
	if created.CreatedAt.IsZero() {
		created.CreatedAt = time.Now().UTC()
	}

	snap.Reservations = append(snap.Reservations, created)
	if err := r.write(snap); err != nil {
		return nil, err
	}
	r.nextID++

	logger.Info("JSONFileRepository:Append", "id", created.ID, "event_date", created.EventDate)
	return &created, nil
}

func (r *JSONFileRepository) Update(ctx context.Context, id int, eventDate, startTime, endTime string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	snap, err := r.read()
	if err != nil {
		return err
	}

	for i := range snap.Reservations {
		if snap.Reservations[i].ID == id {
			snap.Reservations[i].EventDate = eventDate
			snap.Reservations[i].StartTime = startTime
			snap.Reservations[i].EndTime = endTime
			return r.write(snap)
		}
	}
	return ErrNotFound
}

func (r *JSONFileRepository) Delete(ctx context.Context, id int) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	snap, err := r.read()
	if err != nil {
		return err
	}

	kept := snap.Reservations[:0]
	found := false
	for _, ev := range snap.Reservations {
		if ev.ID == id {
			found = true
			continue
		}
		kept = append(kept, ev)
	}
	if !found {
		return ErrNotFound
	}
	snap.Reservations = kept
	return r.write(snap)
}

func (r *JSONFileRepository) QueryRange(ctx context.Context, startDate, endDate string) ([]entity.Reservation, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	snap, err := r.read()
	if err != nil {
		return nil, err
	}

	out := make([]entity.Reservation, 0)
	for _, ev := range snap.Reservations {
		if ev.EventDate >= startDate && ev.EventDate < endDate {
			out = append(out, ev)
		}
	}
	sortReservations(out)
	return out, nil
}
