package repositories

import (
	"context"
	"errors"
	"time"

	"github.com/shreyas-k21/passvault/internal/models"
	"github.com/shreyas-k21/passvault/internal/session"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Compile-time interface check
var _ session.Store = (*SessionRepository)(nil)

// SessionRepository keeps sessions in Postgres so logins survive server
// restarts. Expired rows linger until the sweeper removes them; the session
// manager never honors them regardless.
type SessionRepository struct {
	db *gorm.DB
}

func NewSessionRepository(db *gorm.DB) *SessionRepository {
	return &SessionRepository{db: db}
}

func (r *SessionRepository) Save(ctx context.Context, s *models.Session) error {
	// Upsert: Save is also used to slide the expiry of an existing session.
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "id"}},
			DoUpdates: clause.AssignmentColumns([]string{"expires_at"}),
		}).
		Create(s).Error
}

func (r *SessionRepository) Get(ctx context.Context, id string) (*models.Session, error) {
	var s models.Session
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&s).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, session.ErrNotFound
		}
		return nil, err
	}
	return &s, nil
}

func (r *SessionRepository) Delete(ctx context.Context, id string) error {
	// Deleting an absent session is fine; RowsAffected is not checked.
	return r.db.WithContext(ctx).Where("id = ?", id).Delete(&models.Session{}).Error
}

func (r *SessionRepository) DeleteExpired(ctx context.Context) error {
	return r.db.WithContext(ctx).
		Where("expires_at < ?", time.Now()).
		Delete(&models.Session{}).Error
}

func (r *SessionRepository) Close() error {
	return nil
}
