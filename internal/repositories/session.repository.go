package repositories

import (
	"context"
	"fmt"

	"lightsout/internal/campaign"
	"lightsout/internal/constants"
	"lightsout/internal/database"

	logger "github.com/Bparsons0904/goLogger"
)

// SessionRepository parks checklist session state between HTTP requests. The
// state machine itself is pure; this is the only place it touches a store.
type SessionRepository interface {
	Get(ctx context.Context, id string) (*campaign.Session, bool, error)
	Save(ctx context.Context, session *campaign.Session) error
	Delete(ctx context.Context, id string) error
}

type sessionRepository struct {
	db  database.DB
	log logger.Logger
}

func NewSessionRepository(db database.DB) SessionRepository {
	return &sessionRepository{
		db:  db,
		log: logger.New("sessionRepository"),
	}
}

func sessionCacheKey(id string) string {
	return fmt.Sprintf("%s:%s", constants.ChecklistSessionPrefix, id)
}

func (r *sessionRepository) Get(ctx context.Context, id string) (*campaign.Session, bool, error) {
	log := r.log.Function("Get")

	var session campaign.Session
	found, err := r.db.Cache.Sessions.Get(ctx, sessionCacheKey(id), &session)
	if err != nil {
		return nil, false, log.Err("failed to read session", err, "id", id)
	}
	if !found {
		return nil, false, nil
	}

	return &session, true, nil
}

func (r *sessionRepository) Save(ctx context.Context, session *campaign.Session) error {
	log := r.log.Function("Save")

	if err := r.db.Cache.Sessions.Set(
		ctx,
		sessionCacheKey(session.ID),
		session,
		constants.SessionTTL,
	); err != nil {
		return log.Err("failed to save session", err, "id", session.ID)
	}

	return nil
}

func (r *sessionRepository) Delete(ctx context.Context, id string) error {
	log := r.log.Function("Delete")

	if err := r.db.Cache.Sessions.Delete(ctx, sessionCacheKey(id)); err != nil {
		return log.Err("failed to delete session", err, "id", id)
	}

	return nil
}
