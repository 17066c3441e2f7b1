package store

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"termbingo/models"
)

type GormStore struct {
	db *gorm.DB
}

func NewGormStore(db *gorm.DB) *GormStore {
	return &GormStore{db: db}
}

func (s *GormStore) CreateSession(ctx context.Context, session *models.Session) error {
	return s.db.WithContext(ctx).Create(session).Error
}

func (s *GormStore) SessionByCode(ctx context.Context, code string) (*models.Session, error) {
	var session models.Session
	err := s.db.WithContext(ctx).Where("code = ?", code).First(&session).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &session, nil
}

func (s *GormStore) UpdateSessionStatus(ctx context.Context, sessionID uint, status string) error {
	return s.db.WithContext(ctx).Model(&models.Session{}).
		Where("id = ?", sessionID).
		Update("status", status).Error
}

func (s *GormStore) CreatePlayer(ctx context.Context, player *models.Player) error {
	return s.db.WithContext(ctx).Create(player).Error
}

func (s *GormStore) PlayerByPublicID(ctx context.Context, publicID string) (*models.Player, error) {
	var player models.Player
	err := s.db.WithContext(ctx).Where("public_id = ?", publicID).First(&player).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &player, nil
}

func (s *GormStore) PlayersBySession(ctx context.Context, sessionID uint) ([]models.Player, error) {
	var players []models.Player
	err := s.db.WithContext(ctx).Where("session_id = ?", sessionID).
		Order("id ASC").
		Find(&players).Error
	return players, err
}

func (s *GormStore) CreateDraw(ctx context.Context, draw *models.Draw) error {
	return s.db.WithContext(ctx).Create(draw).Error
}

func (s *GormStore) DrawsBySession(ctx context.Context, sessionID uint) ([]models.Draw, error) {
	var draws []models.Draw
	err := s.db.WithContext(ctx).Where("session_id = ?", sessionID).
		Order("draw_index ASC").
		Find(&draws).Error
	return draws, err
}

func (s *GormStore) DeleteLastDraw(ctx context.Context, sessionID uint) error {
	var draw models.Draw
	err := s.db.WithContext(ctx).Where("session_id = ?", sessionID).
		Order("draw_index DESC").
		First(&draw).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil // undo on an empty draw list is a no-op
	}
	if err != nil {
		return err
	}
	return s.db.WithContext(ctx).Delete(&draw).Error
}

func (s *GormStore) StartRound(ctx context.Context, sessionID uint, rule string) (*models.Round, error) {
	var round models.Round
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		now := time.Now()

		var active models.Round
		err := tx.Where("session_id = ? AND is_active = ?", sessionID, true).First(&active).Error
		if err == nil {
			if err := tx.Model(&active).Updates(map[string]interface{}{
				"is_active": false,
				"ended_at":  now,
			}).Error; err != nil {
				return err
			}
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}

		var maxNumber int
		if err := tx.Model(&models.Round{}).Where("session_id = ?", sessionID).
			Select("COALESCE(MAX(number), 0)").
			Scan(&maxNumber).Error; err != nil {
			return err
		}

		round = models.Round{
			SessionID: sessionID,
			Number:    maxNumber + 1,
			Rule:      rule,
			IsActive:  true,
			StartedAt: now,
		}
		return tx.Create(&round).Error
	})
	if err != nil {
		return nil, err
	}
	return &round, nil
}

func (s *GormStore) SetActiveRoundRule(ctx context.Context, sessionID uint, rule string) (*models.Round, error) {
	var round models.Round
	err := s.db.WithContext(ctx).Where("session_id = ? AND is_active = ?", sessionID, true).
		First(&round).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	if err := s.db.WithContext(ctx).Model(&round).Update("rule", rule).Error; err != nil {
		return nil, err
	}
	round.Rule = rule
	return &round, nil
}

func (s *GormStore) ActiveRound(ctx context.Context, sessionID uint) (*models.Round, error) {
	var round models.Round
	err := s.db.WithContext(ctx).Where("session_id = ? AND is_active = ?", sessionID, true).
		First(&round).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &round, nil
}

func (s *GormStore) CreateClaim(ctx context.Context, claim *models.Claim) error {
	return s.db.WithContext(ctx).Create(claim).Error
}

func (s *GormStore) ClaimsBySession(ctx context.Context, sessionID uint, round *int) ([]models.Claim, error) {
	query := s.db.WithContext(ctx).Where("session_id = ?", sessionID)
	if round != nil {
		query = query.Where("round_number = ?", *round)
	}
	var claims []models.Claim
	err := query.Order("declared_at ASC, id ASC").Find(&claims).Error
	return claims, err
}
