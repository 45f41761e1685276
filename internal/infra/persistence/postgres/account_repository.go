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

// registrationLockKey identifies the advisory lock that serializes registrations.
const registrationLockKey int64 = 0x66696e73796e63

// accountUpdateColumns are the columns Update writes, zero values included.
var accountUpdateColumns = []string{
	"name", "email", "password_hash", "role",
	"email_verified", "verified_at",
	"verification_token_hash", "verification_token_issued_at", "consumed_verification_token_hash",
	"updated_at",
}

// accountRepository implements the repository.AccountRepository interface using GORM.
type accountRepository struct {
	db *gorm.DB
}

// NewAccountRepository is the constructor for accountRepository.
func NewAccountRepository(db *gorm.DB) repository.AccountRepository {
	return &accountRepository{db: db}
}

// FindByID retrieves a single account by its unique ID.
func (repo *accountRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Account, error) {
	return repo.first(ctx, repo.db.WithContext(ctx).Where("id = ?", id), "failed to find account by id")
}

// FindByEmail retrieves an account by its normalized email.
func (repo *accountRepository) FindByEmail(ctx context.Context, email string) (*entity.Account, error) {
	return repo.first(ctx, repo.db.WithContext(ctx).Where("email = ?", email), "failed to find account by email")
}

// FindByVerificationTokenHash reads from the primary so a link clicked right after registration is found.
func (repo *accountRepository) FindByVerificationTokenHash(ctx context.Context, tokenHash string) (*entity.Account, error) {
	query := repo.db.WithContext(ctx).Clauses(dbresolver.Write).Where("verification_token_hash = ?", tokenHash)

	return repo.first(ctx, query, "failed to find account by verification token")
}

// FindByConsumedVerificationTokenHash finds the account a replayed verification link belongs to.
func (repo *accountRepository) FindByConsumedVerificationTokenHash(ctx context.Context, tokenHash string) (*entity.Account, error) {
	query := repo.db.WithContext(ctx).Clauses(dbresolver.Write).Where("consumed_verification_token_hash = ?", tokenHash)

	return repo.first(ctx, query, "failed to find account by consumed verification token")
}

func (repo *accountRepository) first(_ context.Context, query *gorm.DB, msg string) (*entity.Account, error) {
	var accountM model.AccountModel
	if err := query.First(&accountM).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrAccountNotFound
		}

		return nil, errors.Wrap(err, msg)
	}

	return toAccountDomain(&accountM), nil
}

// Create persists a new account. The caller assigns the ID.
func (repo *accountRepository) Create(ctx context.Context, account *entity.Account) error {
	if account.ID == uuid.Nil {
		id, err := uuid.NewV7()
		if err != nil {
			return errors.Wrap(err, "failed to generate account id")
		}
		account.ID = id
	}

	accountM := fromAccountDomain(account)
	if err := repo.db.WithContext(ctx).Create(accountM).Error; err != nil {
		if isUniqueConstraintViolation(err) {
			return repository.ErrAccountAlreadyExists
		}
		if isForeignKeyConstraintViolation(err) {
			return domainerrors.ErrInvalidRole.WrapMessage("role is not registered")
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to create account")
	}

	account.CreatedAt = accountM.CreatedAt
	account.UpdatedAt = accountM.UpdatedAt

	return nil
}

// Update writes every mutable column of the account.
func (repo *accountRepository) Update(ctx context.Context, account *entity.Account) error {
	accountM := fromAccountDomain(account)
	accountM.UpdatedAt = time.Now().UTC()

	result := repo.db.WithContext(ctx).
		Model(&model.AccountModel{}).
		Where("id = ?", account.ID).
		Select(accountUpdateColumns).
		Updates(accountM)
	if result.Error != nil {
		if isUniqueConstraintViolation(result.Error) {
			return repository.ErrAccountAlreadyExists
		}
		if isForeignKeyConstraintViolation(result.Error) {
			return domainerrors.ErrInvalidRole.WrapMessage("role is not registered")
		}

		return domainerrors.NewDatabaseExecuteError(result.Error, "failed to update account")
	}
	if result.RowsAffected == 0 {
		return repository.ErrAccountNotFound
	}

	account.UpdatedAt = accountM.UpdatedAt

	return nil
}

// ConfirmVerification is a compare-and-set on the outstanding token hash.
func (repo *accountRepository) ConfirmVerification(ctx context.Context, id uuid.UUID, tokenHash string, verifiedAt time.Time) error {
	result := repo.db.WithContext(ctx).
		Model(&model.AccountModel{}).
		Where("id = ? AND verification_token_hash = ?", id, tokenHash).
		Updates(map[string]any{
			"email_verified":                   true,
			"verified_at":                      verifiedAt,
			"verification_token_hash":          nil,
			"consumed_verification_token_hash": tokenHash,
			"updated_at":                       verifiedAt,
		})
	if result.Error != nil {
		return domainerrors.NewDatabaseExecuteError(result.Error, "failed to confirm verification")
	}
	if result.RowsAffected == 0 {
		return repository.ErrAccountNotFound
	}

	return nil
}

// Count returns the number of accounts in the system.
func (repo *accountRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := repo.db.WithContext(ctx).Clauses(dbresolver.Write).Model(&model.AccountModel{}).Count(&count).Error; err != nil {
		return 0, errors.Wrap(err, "failed to count accounts")
	}

	return count, nil
}

// CountByRole returns the number of accounts holding role.
func (repo *accountRepository) CountByRole(ctx context.Context, role entity.Role) (int64, error) {
	var count int64
	if err := repo.db.WithContext(ctx).Clauses(dbresolver.Write).Model(&model.AccountModel{}).
		Where("role = ?", string(role)).
		Count(&count).Error; err != nil {
		return 0, errors.Wrap(err, "failed to count accounts by role")
	}

	return count, nil
}

// List returns a page of accounts, oldest first, and the total number of accounts.
func (repo *accountRepository) List(ctx context.Context, offset, limit int) ([]*entity.Account, int64, error) {
	var total int64
	if err := repo.db.WithContext(ctx).Model(&model.AccountModel{}).Count(&total).Error; err != nil {
		return nil, 0, errors.Wrap(err, "failed to count accounts")
	}

	var accountModels []*model.AccountModel
	if err := repo.db.WithContext(ctx).
		Order("created_at ASC").
		Order("id ASC").
		Offset(offset).
		Limit(limit).
		Find(&accountModels).Error; err != nil {
		return nil, 0, errors.Wrap(err, "failed to list accounts")
	}

	accounts := make([]*entity.Account, 0, len(accountModels))
	for _, accountM := range accountModels {
		accounts = append(accounts, toAccountDomain(accountM))
	}

	return accounts, total, nil
}

// LockRegistration takes a transaction-scoped advisory lock on PostgreSQL.
// SQLite runs on a single connection, so registrations are already serialized.
func (repo *accountRepository) LockRegistration(ctx context.Context) error {
	if repo.db.Name() != "postgres" {
		return nil
	}

	if err := repo.db.WithContext(ctx).Exec("SELECT pg_advisory_xact_lock(?)", registrationLockKey).Error; err != nil {
		return domainerrors.NewDatabaseExecuteError(err, "failed to lock registrations")
	}

	return nil
}

// --- Mapper Functions ---

func toAccountDomain(data *model.AccountModel) *entity.Account {
	if data == nil {
		return nil
	}

	return &entity.Account{
		ID:                            data.ID,
		Email:                         data.Email,
		Name:                          data.Name,
		PasswordHash:                  data.PasswordHash,
		Role:                          entity.Role(data.Role),
		EmailVerified:                 data.EmailVerified,
		VerifiedAt:                    data.VerifiedAt,
		VerificationTokenHash:         derefString(data.VerificationTokenHash),
		VerificationTokenIssuedAt:     data.VerificationTokenIssuedAt,
		ConsumedVerificationTokenHash: derefString(data.ConsumedVerificationTokenHash),
		CreatedAt:                     data.CreatedAt,
		UpdatedAt:                     data.UpdatedAt,
	}
}

func fromAccountDomain(data *entity.Account) *model.AccountModel {
	if data == nil {
		return nil
	}

	return &model.AccountModel{
		ID:                            data.ID,
		Name:                          data.Name,
		Email:                         data.Email,
		PasswordHash:                  data.PasswordHash,
		Role:                          string(data.Role),
		EmailVerified:                 data.EmailVerified,
		VerifiedAt:                    data.VerifiedAt,
		VerificationTokenHash:         nullableString(data.VerificationTokenHash),
		VerificationTokenIssuedAt:     data.VerificationTokenIssuedAt,
		ConsumedVerificationTokenHash: nullableString(data.ConsumedVerificationTokenHash),
		CreatedAt:                     data.CreatedAt,
		UpdatedAt:                     data.UpdatedAt,
	}
}

func nullableString(s string) *string {
	if s == "" {
		return nil
	}

	return &s
}

func derefString(s *string) string {
	if s == nil {
		return ""
	}

	return *s
}
