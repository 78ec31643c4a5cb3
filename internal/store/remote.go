package store

import (
	"context"
	"errors"

	"matrixdesk/internal/api"
	"matrixdesk/internal/matrix"
)

// Remote asks the matrix service for each record.
type Remote struct {
	client *api.Client
}

// NewRemote wraps client.
func NewRemote(client *api.Client) *Remote {
	return &Remote{client: client}
}

// Get implements Store. A success=false answer counts as not found;
// transport failures are returned as they are.
func (r *Remote) Get(ctx context.Context, id string) (matrix.Record, error) {
	rec, err := r.client.GetMatrix(ctx, id)
	var se *api.ServiceError
	if errors.As(err, &se) {
		return matrix.Record{}, errors.Join(ErrNotFound, err)
	}
	return rec, err
}

// Close implements Store.
func (r *Remote) Close() error { return nil }
