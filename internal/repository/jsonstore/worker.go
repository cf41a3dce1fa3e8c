package jsonstore

import (
	"context"
	"strings"

	"github.com/cmlabs-hris/timeclock-backend-go/internal/domain/worker"
)

type workerRepositoryImpl struct {
	store *Store
}

func NewWorkerRepository(store *Store) worker.WorkerRepository {
	return &workerRepositoryImpl{store: store}
}

// Create implements worker.WorkerRepository.
func (r *workerRepositoryImpl) Create(ctx context.Context, w worker.Worker) (worker.Worker, error) {
	err := mutate(r.store, workersFile, func(items []worker.Worker) ([]worker.Worker, error) {
		for _, existing := range items {
			if strings.EqualFold(existing.Email, w.Email) {
				return nil, worker.ErrEmailExists
			}
			if w.NationalID != "" && strings.EqualFold(existing.NationalID, w.NationalID) {
				return nil, worker.ErrNationalIDExists
			}
		}
		return append(items, w), nil
	})
	if err != nil {
		return worker.Worker{}, err
	}
	return w, nil
}

// GetByID implements worker.WorkerRepository.
func (r *workerRepositoryImpl) GetByID(ctx context.Context, id string) (worker.Worker, error) {
	return r.find(func(w worker.Worker) bool { return w.ID == id })
}

// GetByEmail implements worker.WorkerRepository.
func (r *workerRepositoryImpl) GetByEmail(ctx context.Context, email string) (worker.Worker, error) {
	return r.find(func(w worker.Worker) bool { return strings.EqualFold(w.Email, email) })
}

// ExistsByNationalID implements worker.WorkerRepository.
func (r *workerRepositoryImpl) ExistsByNationalID(ctx context.Context, nationalID string) (bool, error) {
	_, err := r.find(func(w worker.Worker) bool { return strings.EqualFold(w.NationalID, nationalID) })
	if err == worker.ErrWorkerNotFound {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// List implements worker.WorkerRepository.
func (r *workerRepositoryImpl) List(ctx context.Context) ([]worker.Worker, error) {
	return load[worker.Worker](r.store, workersFile)
}

// ListByRole implements worker.WorkerRepository.
func (r *workerRepositoryImpl) ListByRole(ctx context.Context, role worker.Role) ([]worker.Worker, error) {
	items, err := load[worker.Worker](r.store, workersFile)
	if err != nil {
		return nil, err
	}
	out := make([]worker.Worker, 0)
	for _, w := range items {
		if w.Role == role {
			out = append(out, w)
		}
	}
	return out, nil
}

// Count implements worker.WorkerRepository.
func (r *workerRepositoryImpl) Count(ctx context.Context) (int64, error) {
	items, err := load[worker.Worker](r.store, workersFile)
	if err != nil {
		return 0, err
	}
	return int64(len(items)), nil
}

// Update implements worker.WorkerRepository.
func (r *workerRepositoryImpl) Update(ctx context.Context, w worker.Worker) error {
	return mutate(r.store, workersFile, func(items []worker.Worker) ([]worker.Worker, error) {
		for i := range items {
			if items[i].ID == w.ID {
				items[i] = w
				return items, nil
			}
		}
		return nil, worker.ErrWorkerNotFound
	})
}

// Delete implements worker.WorkerRepository.
func (r *workerRepositoryImpl) Delete(ctx context.Context, id string) error {
	return mutate(r.store, workersFile, func(items []worker.Worker) ([]worker.Worker, error) {
		for i := range items {
			if items[i].ID == id {
				return append(items[:i], items[i+1:]...), nil
			}
		}
		return nil, worker.ErrWorkerNotFound
	})
}

func (r *workerRepositoryImpl) find(match func(worker.Worker) bool) (worker.Worker, error) {
	items, err := load[worker.Worker](r.store, workersFile)
	if err != nil {
		return worker.Worker{}, err
	}
	for _, w := range items {
		if match(w) {
			return w, nil
		}
	}
	return worker.Worker{}, worker.ErrWorkerNotFound
}
