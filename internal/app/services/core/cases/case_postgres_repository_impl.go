package cases

import (
	"context"
	"database/sql"
	"errors"
	"medtour-service/internal/app/contracts"
	"medtour-service/internal/app/models"
	"medtour-service/internal/app/services/core/stages"
	"medtour-service/internal/pkg/constvars"
	"medtour-service/internal/pkg/exceptions"
	"medtour-service/internal/pkg/queries"
	"sync"
	"time"

	"github.com/goccy/go-json"
	"github.com/lib/pq"
	"go.uber.org/zap"
)

const pqUniqueViolation = "23505"

type casePostgresRepository struct {
	DB  *sql.DB
	Log *zap.Logger
}

var (
	casePostgresRepositoryInstance contracts.CaseRepository
	onceCasePostgresRepository     sync.Once
)

func NewCasePostgresRepository(db *sql.DB, logger *zap.Logger) contracts.CaseRepository {
	onceCasePostgresRepository.Do(func() {
		instance := &casePostgresRepository{
			DB:  db,
			Log: logger,
		}
		casePostgresRepositoryInstance = instance
	})
	return casePostgresRepositoryInstance
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanCase(row rowScanner) (*models.Case, error) {
	var (
		model              models.Case
		stage2AuthID       sql.NullString
		stage2AuthorizedAt sql.NullTime
		companionRaw       []byte
		reportsRaw         []byte
	)
	err := row.Scan(
		&model.ID,
		&model.UserEmail,
		&model.PatientName,
		&model.Symptoms,
		&model.TargetCity,
		&model.TargetHospital,
		&model.PassportURL,
		&model.Status,
		&model.Stage1Paid,
		&model.Stage2Status,
		&stage2AuthID,
		&stage2AuthorizedAt,
		&model.Stage3Status,
		&companionRaw,
		&reportsRaw,
		&model.CreatedAt,
		&model.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	model.Stage2AuthID = stage2AuthID.String
	if stage2AuthorizedAt.Valid {
		authorizedAt := stage2AuthorizedAt.Time
		model.Stage2AuthorizedAt = &authorizedAt
	}
	if len(companionRaw) > 0 && string(companionRaw) != "null" {
		var companion models.CompanionRequest
		if err := json.Unmarshal(companionRaw, &companion); err != nil {
			return nil, exceptions.ErrCannotParseJSON(err)
		}
		model.CompanionRequest = &companion
	}
	model.PaymentReports = []models.PaymentReport{}
	if len(reportsRaw) > 0 {
		if err := json.Unmarshal(reportsRaw, &model.PaymentReports); err != nil {
			return nil, exceptions.ErrCannotParseJSON(err)
		}
	}
	return &model, nil
}

func caseArgs(c *models.Case) ([]interface{}, error) {
	companionRaw := sql.NullString{}
	if c.CompanionRequest != nil {
		raw, err := json.Marshal(c.CompanionRequest)
		if err != nil {
			return nil, exceptions.ErrCannotMarshalJSON(err)
		}
		companionRaw = sql.NullString{String: string(raw), Valid: true}
	}
	reports := c.PaymentReports
	if reports == nil {
		reports = []models.PaymentReport{}
	}
	reportsRaw, err := json.Marshal(reports)
	if err != nil {
		return nil, exceptions.ErrCannotMarshalJSON(err)
	}

	authorizedAt := sql.NullTime{}
	if c.Stage2AuthorizedAt != nil {
		authorizedAt = sql.NullTime{Time: *c.Stage2AuthorizedAt, Valid: true}
	}

	return []interface{}{
		c.ID,
		c.UserEmail,
		c.PatientName,
		c.Symptoms,
		c.TargetCity,
		c.TargetHospital,
		c.PassportURL,
		c.Status,
		c.Stage1Paid,
		c.Stage2Status,
		sql.NullString{String: c.Stage2AuthID, Valid: c.Stage2AuthID != ""},
		authorizedAt,
		c.Stage3Status,
		companionRaw,
		string(reportsRaw),
		c.CreatedAt,
		c.UpdatedAt,
	}, nil
}

func (r *casePostgresRepository) insert(ctx context.Context, tx *sql.Tx, c *models.Case) error {
	args, err := caseArgs(c)
	if err != nil {
		return err
	}
	_, err = tx.ExecContext(ctx, queries.InsertCase, args...)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == pqUniqueViolation {
			return &exceptions.GuardRejectedError{
				Transition:   stages.TransitionCreateDraft,
				Precondition: stages.PreconditionNoUnpaidDraft,
			}
		}
		return exceptions.ErrPostgresDBInsertData(err)
	}
	return nil
}

func (r *casePostgresRepository) update(ctx context.Context, tx *sql.Tx, c *models.Case) error {
	args, err := caseArgs(c)
	if err != nil {
		return err
	}
	// user_email and created_at are immutable.
	_, err = tx.ExecContext(ctx, queries.UpdateCase,
		args[0], args[2], args[3], args[4], args[5], args[6], args[7], args[8],
		args[9], args[10], args[11], args[12], args[13], args[14], args[16],
	)
	if err != nil {
		return exceptions.ErrPostgresDBUpdateData(err)
	}
	return nil
}

func (r *casePostgresRepository) CreateOrReuseDraft(ctx context.Context, email string, fn contracts.CaseMutation) (*models.Case, bool, error) {
	email = models.NormalizeEmail(email)
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return nil, false, exceptions.ErrPostgresDBBeginTransaction(err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, queries.LockDraftsForEmail, email); err != nil {
		return nil, false, exceptions.ErrPostgresDBFindData(err)
	}

	current, err := scanCase(tx.QueryRowContext(ctx, queries.GetLatestUnpaidDraftByEmailForUpdate, email))
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return nil, false, exceptions.ErrPostgresDBFindData(err)
	}

	next, err := fn(current)
	if err != nil {
		return nil, false, err
	}

	created := current == nil || current.ID != next.ID
	if created {
		err = r.insert(ctx, tx, next)
	} else {
		err = r.update(ctx, tx, next)
	}
	if err != nil {
		return nil, false, err
	}

	if err := tx.Commit(); err != nil {
		return nil, false, exceptions.ErrPostgresDBCommitTransaction(err)
	}

	r.Log.Debug("casePostgresRepository.CreateOrReuseDraft committed",
		zap.String(constvars.LoggingCaseIDKey, next.ID),
		zap.Bool(constvars.LoggingCreatedKey, created),
	)
	return next, created, nil
}

func (r *casePostgresRepository) ApplyTransition(ctx context.Context, caseID string, fn contracts.CaseMutation) (*models.Case, error) {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return nil, exceptions.ErrPostgresDBBeginTransaction(err)
	}
	defer tx.Rollback()

	current, err := scanCase(tx.QueryRowContext(ctx, queries.GetCaseByIDForUpdate, caseID))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, exceptions.ErrCaseNotFound(err, caseID)
	} else if err != nil {
		return nil, exceptions.ErrPostgresDBFindData(err)
	}

	next, err := fn(current)
	if err != nil {
		return nil, err
	}

	if err := r.update(ctx, tx, next); err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, exceptions.ErrPostgresDBCommitTransaction(err)
	}
	return next, nil
}

func (r *casePostgresRepository) findOne(ctx context.Context, query string, args ...interface{}) (*models.Case, error) {
	model, err := scanCase(r.DB.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	} else if err != nil {
		return nil, exceptions.ErrPostgresDBFindData(err)
	}
	return model, nil
}

func (r *casePostgresRepository) findMany(ctx context.Context, query string, args ...interface{}) ([]models.Case, error) {
	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, exceptions.ErrPostgresDBFindData(err)
	}
	defer rows.Close()

	result := []models.Case{}
	for rows.Next() {
		model, err := scanCase(rows)
		if err != nil {
			return nil, exceptions.ErrPostgresDBIterateDataset(err)
		}
		result = append(result, *model)
	}

	if err := rows.Err(); err != nil {
		return nil, exceptions.ErrPostgresDBIterateDataset(err)
	}
	return result, nil
}

func (r *casePostgresRepository) FindByID(ctx context.Context, caseID string) (*models.Case, error) {
	return r.findOne(ctx, queries.GetCaseByID, caseID)
}

func (r *casePostgresRepository) FindLatestUnpaidDraft(ctx context.Context, email string) (*models.Case, error) {
	return r.findOne(ctx, queries.GetLatestUnpaidDraftByEmail, models.NormalizeEmail(email))
}

func (r *casePostgresRepository) FindLatestByEmail(ctx context.Context, email string) (*models.Case, error) {
	return r.findOne(ctx, queries.GetLatestCaseByEmail, models.NormalizeEmail(email))
}

func (r *casePostgresRepository) FindAll(ctx context.Context) ([]models.Case, error) {
	return r.findMany(ctx, queries.GetAllCases)
}

func (r *casePostgresRepository) FindAuthorizedBefore(ctx context.Context, cutoff time.Time) ([]models.Case, error) {
	return r.findMany(ctx, queries.GetCasesAuthorizedBefore, cutoff)
}
