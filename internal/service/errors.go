package service

import (
	"errors"

	"github.com/mr1hm/go-drone-fleet/internal/apperr"
	"github.com/mr1hm/go-drone-fleet/internal/repository"
)

// fromStore maps a repository failure onto the outward taxonomy. The
// driver's text stays in the wrapped cause and is never shown to callers.
func fromStore(err error, action string) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, repository.ErrNotFound):
		return apperr.Wrap(apperr.NotFound, action+": record not found", err)
	case errors.Is(err, repository.ErrConflict):
		return apperr.Wrap(apperr.Conflict, action+": duplicate id or reference to a missing record", err)
	case errors.Is(err, repository.ErrUnavailable):
		return apperr.Wrap(apperr.Unavailable, action+": database unavailable", err)
	default:
		return apperr.Wrap(apperr.Internal, "failed to "+action, err)
	}
}
