package postgres

import (
	"context"
	"time"

	"finsync/internal/domain/entity"
	domainerrors "finsync/internal/domain/errors"
	"finsync/internal/domain/repository"
	"finsync/internal/infra/persistence/model"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gorm.io/gorm"
	"gorm.io/plugin/dbresolver"
)

// refreshTokenRepository implements the repository.RefreshTokenRepository interface.
type refreshTokenRepository struct {
	db *gorm.DB
}

// NewRefreshTokenRepository is the constructor for refreshTokenRepository.
func NewRefreshTokenRepository(db *gorm.DB) repository.RefreshTokenRepository {
	return &refreshTokenRepository{db: db}
}

// Create persists a new refresh token, representing an account session.
func (repo *refreshTokenRepository) Create(ctx context.Context, token *entity.RefreshToken) error {
	if token.ID == uuid.Nil {
		id, err := uuid.NewV7()
		if err != nil {
			return errors.Wrap(err, "failed to generate refresh token id")
		}
		token.ID = id
	}

	tokenM := fromRefreshTokenDomain(token)
	if err := repo.db.WithContext(ctx).Create(tokenM).Error; err != nil {
		if isUniqueConstraintViolation(err) {
			return domainerrors.ErrTokenGenerationFailed.WrapMessage("refresh token collision")
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to create refresh token")
	}

	token.CreatedAt = tokenM.CreatedAt

	return nil
}

// FindByHash returns the record as stored, revoked and expired ones included.
func (repo *refreshTokenRepository) FindByHash(ctx context.Context, tokenHash string) (*entity.RefreshToken, error) {
	var tokenM model.RefreshTokenModel
	err := repo.db.WithContext(ctx).
		Clauses(dbresolver.Write).
		Where("token_hash = ?", tokenHash).
		First(&tokenM).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrRefreshTokenNotFound
		}

		return nil, errors.Wrap(err, "failed to find refresh token by hash")
	}

	return toRefreshTokenDomain(&tokenM), nil
}

// FindActiveByAccountID returns the account's live sessions, newest first.
func (repo *refreshTokenRepository) FindActiveByAccountID(ctx context.Context, accountID uuid.UUID, now time.Time) ([]*entity.RefreshToken, error) {
	var tokenModels []*model.RefreshTokenModel
	err := repo.db.WithContext(ctx).
		Clauses(dbresolver.Write).
		Where("account_id = ? AND revoked_at IS NULL AND expires_at > ?", accountID, now).
		Order("created_at DESC").
		Order("id DESC").
		Find(&tokenModels).Error
	if err != nil {
		return nil, errors.Wrap(err, "failed to find active refresh tokens")
	}

	tokens := make([]*entity.RefreshToken, 0, len(tokenModels))
	for _, tokenM := range tokenModels {
		tokens = append(tokens, toRefreshTokenDomain(tokenM))
	}

	return tokens, nil
}

// Revoke only touches an unrevoked row, so two concurrent rotations of the same token cannot both win.
func (repo *refreshTokenRepository) Revoke(ctx context.Context, id uuid.UUID, revokedAt time.Time, replacedBy *uuid.UUID) (bool, error) {
	updates := map[string]any{"revoked_at": revokedAt}
	if replacedBy != nil {
		updates["replaced_by_id"] = *replacedBy
	}

	result := repo.db.WithContext(ctx).
		Model(&model.RefreshTokenModel{}).
		Where("id = ? AND revoked_at IS NULL", id).
		Updates(updates)
	if result.Error != nil {
		return false, domainerrors.NewDatabaseExecuteError(result.Error, "failed to revoke refresh token")
	}

	return result.RowsAffected == 1, nil
}

// RevokeAllByAccountID revokes every unrevoked session of the account.
func (repo *refreshTokenRepository) RevokeAllByAccountID(ctx context.Context, accountID uuid.UUID, revokedAt time.Time) (int64, error) {
	result := repo.db.WithContext(ctx).
		Model(&model.RefreshTokenModel{}).
		Where("account_id = ? AND revoked_at IS NULL", accountID).
		Update("revoked_at", revokedAt)
	if result.Error != nil {
		return 0, domainerrors.NewDatabaseExecuteError(result.Error, "failed to revoke account sessions")
	}

	return result.RowsAffected, nil
}

// DeleteStale removes tokens that expired or were revoked before cutoff.
func (repo *refreshTokenRepository) DeleteStale(ctx context.Context, cutoff time.Time) (int64, error) {
	result := repo.db.WithContext(ctx).
		Where("expires_at < ? OR (revoked_at IS NOT NULL AND revoked_at < ?)", cutoff, cutoff).
		Delete(&model.RefreshTokenModel{})
	if result.Error != nil {
		return 0, domainerrors.NewDatabaseExecuteError(result.Error, "failed to delete stale refresh tokens")
	}

	return result.RowsAffected, nil
}

// --- Mapper Functions ---

// toRefreshTokenDomain converts a GORM RefreshTokenModel to a domain RefreshToken entity.
func toRefreshTokenDomain(data *model.RefreshTokenModel) *entity.RefreshToken {
	if data == nil {
		return nil
	}

	return &entity.RefreshToken{
		ID:           data.ID,
		AccountID:    data.AccountID,
		TokenHash:    data.TokenHash,
		ExpiresAt:    data.ExpiresAt,
		RevokedAt:    data.RevokedAt,
		ReplacedByID: data.ReplacedByID,
		CreatedAt:    data.CreatedAt,
	}
}

// fromRefreshTokenDomain converts a domain RefreshToken entity to a GORM RefreshTokenModel.
func fromRefreshTokenDomain(data *entity.RefreshToken) *model.RefreshTokenModel {
	if data == nil {
		return nil
	}

	return &model.RefreshTokenModel{
		ID:           data.ID,
		AccountID:    data.AccountID,
		TokenHash:    data.TokenHash,
		ExpiresAt:    data.ExpiresAt,
		RevokedAt:    data.RevokedAt,
		ReplacedByID: data.ReplacedByID,
		CreatedAt:    data.CreatedAt,
	}
}
