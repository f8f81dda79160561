package postgresadapter

import (
	"context"
	"errors"
	"log/slog"
	"math"
	"strings"
	"time"

	"launchpad/contexts/community-growth/progression-service/domain/classify"
	domainerrors "launchpad/contexts/community-growth/progression-service/domain/errors"
	"launchpad/contexts/community-growth/progression-service/ports"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const paperQualityContribution = 90

type Repository struct {
	db     *gorm.DB
	logger *slog.Logger
}

func NewRepository(db *gorm.DB, logger *slog.Logger) *Repository {
	if logger == nil {
		logger = slog.Default()
	}
	return &Repository{
		db:     db,
		logger: logger,
	}
}

// Migrate creates the adapter's tables. Called from bootstrap on startup.
func (r *Repository) Migrate() error {
	return r.db.AutoMigrate(&metricsModel{}, &appliedActivityModel{}, &notificationGuardModel{})
}

func (r *Repository) GetOrCreate(ctx context.Context, projectID string) (ports.CommunityMetrics, error) {
	projectID = strings.TrimSpace(projectID)
	row := metricsModel{
		ProjectID: projectID,
		Level:     1,
		UpdatedAt: time.Now().UTC(),
	}
	err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "project_id"}},
			DoNothing: true,
		}).
		Create(&row).
		Error
	if err != nil {
		return ports.CommunityMetrics{}, err
	}
	return r.get(ctx, projectID)
}

// ApplyActivity registers the activity id and bumps counters in one
// transaction. The unique insert on (project_id, activity_id) is the
// idempotency mechanism: when the row already exists the counters are left
// untouched and current state is returned.
func (r *Repository) ApplyActivity(
	ctx context.Context,
	projectID string,
	activityID string,
	result classify.Result,
) (ports.CommunityMetrics, error) {
	projectID = strings.TrimSpace(projectID)
	activityID = strings.TrimSpace(activityID)
	if activityID == "" {
		return ports.CommunityMetrics{}, domainerrors.ErrInvalidRequest
	}

	var out metricsModel
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		marker := appliedActivityModel{
			ProjectID:  projectID,
			ActivityID: activityID,
			Category:   string(result.Category),
			AppliedAt:  time.Now().UTC(),
		}
		insert := tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "project_id"}, {Name: "activity_id"}},
			DoNothing: true,
		}).Create(&marker)
		if insert.Error != nil {
			return insert.Error
		}

		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("project_id = ?", projectID).
			First(&out).
			Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return domainerrors.ErrProjectNotFound
			}
			return err
		}

		if insert.RowsAffected == 0 {
			// Already applied by another trigger; no-op.
			return nil
		}

		contribution := 0
		switch result.Category {
		case classify.CategoryOrdinary:
			out.MessagesCount++
			contribution = result.QualityContribution
		case classify.CategoryPaper:
			out.PapersShared++
			contribution = paperQualityContribution
		}
		out.QualityScore = nextQualityScore(out.QualityScore, contribution)
		out.UpdatedAt = time.Now().UTC()

		return tx.Model(&metricsModel{}).
			Where("project_id = ?", projectID).
			Updates(map[string]any{
				"messages_count": out.MessagesCount,
				"papers_shared":  out.PapersShared,
				"quality_score":  out.QualityScore,
				"updated_at":     out.UpdatedAt,
			}).Error
	})
	if err != nil {
		return ports.CommunityMetrics{}, err
	}
	return out.toPort(), nil
}

// RefreshMemberCount never regresses the stored count: a stale live read
// racing a fresher one loses by the max-merge condition in the WHERE clause.
func (r *Repository) RefreshMemberCount(ctx context.Context, projectID string, liveCount int) (ports.CommunityMetrics, error) {
	projectID = strings.TrimSpace(projectID)
	err := r.db.WithContext(ctx).
		Model(&metricsModel{}).
		Where("project_id = ? AND member_count < ?", projectID, liveCount).
		Updates(map[string]any{
			"member_count": liveCount,
			"updated_at":   time.Now().UTC(),
		}).Error
	if err != nil {
		return ports.CommunityMetrics{}, err
	}
	return r.get(ctx, projectID)
}

// CompareAndSetLevel succeeds only if the stored level still equals the
// expectation at write time, which linearizes transitions per project.
func (r *Repository) CompareAndSetLevel(ctx context.Context, projectID string, expectedLevel int, newLevel int) (bool, error) {
	result := r.db.WithContext(ctx).
		Model(&metricsModel{}).
		Where("project_id = ? AND level = ?", strings.TrimSpace(projectID), expectedLevel).
		Updates(map[string]any{
			"level":      newLevel,
			"updated_at": time.Now().UTC(),
		})
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

func (r *Repository) MarkNotified(ctx context.Context, projectID string, level int) (bool, error) {
	row := notificationGuardModel{
		ProjectID:  strings.TrimSpace(projectID),
		Level:      level,
		NotifiedAt: time.Now().UTC(),
	}
	result := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "project_id"}, {Name: "level"}},
			DoNothing: true,
		}).
		Create(&row)
	if result.Error != nil {
		if isUniqueViolation(result.Error) {
			return false, nil
		}
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

func (r *Repository) LinkCommunity(
	ctx context.Context,
	projectID string,
	community ports.Community,
	now time.Time,
) (ports.CommunityMetrics, error) {
	projectID = strings.TrimSpace(projectID)
	result := r.db.WithContext(ctx).
		Model(&metricsModel{}).
		Where("project_id = ? AND bot_linked = ?", projectID, false).
		Updates(map[string]any{
			"bot_linked":     true,
			"community_id":   community.ID,
			"community_name": community.Name,
			"updated_at":     now.UTC(),
		})
	if result.Error != nil {
		return ports.CommunityMetrics{}, result.Error
	}
	if result.RowsAffected == 0 {
		current, err := r.get(ctx, projectID)
		if err != nil {
			return ports.CommunityMetrics{}, err
		}
		if current.BotLinked {
			return current, domainerrors.ErrCommunityLinked
		}
		return ports.CommunityMetrics{}, domainerrors.ErrProjectNotFound
	}
	return r.get(ctx, projectID)
}

func (r *Repository) ListProjectIDs(ctx context.Context) ([]string, error) {
	var ids []string
	err := r.db.WithContext(ctx).
		Model(&metricsModel{}).
		Order("project_id ASC").
		Pluck("project_id", &ids).
		Error
	if err != nil {
		return nil, err
	}
	return ids, nil
}

func (r *Repository) get(ctx context.Context, projectID string) (ports.CommunityMetrics, error) {
	var row metricsModel
	err := r.db.WithContext(ctx).
		Where("project_id = ?", projectID).
		First(&row).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ports.CommunityMetrics{}, domainerrors.ErrProjectNotFound
		}
		return ports.CommunityMetrics{}, err
	}
	return row.toPort(), nil
}

type metricsModel struct {
	ProjectID     string    `gorm:"column:project_id;primaryKey"`
	Level         int       `gorm:"column:level"`
	MemberCount   int       `gorm:"column:member_count"`
	MessagesCount int       `gorm:"column:messages_count"`
	PapersShared  int       `gorm:"column:papers_shared"`
	QualityScore  int       `gorm:"column:quality_score"`
	BotLinked     bool      `gorm:"column:bot_linked"`
	Verified      bool      `gorm:"column:verified"`
	CommunityID   string    `gorm:"column:community_id"`
	CommunityName string    `gorm:"column:community_name"`
	UpdatedAt     time.Time `gorm:"column:updated_at"`
}

func (metricsModel) TableName() string {
	return "community_metrics"
}

func (m metricsModel) toPort() ports.CommunityMetrics {
	return ports.CommunityMetrics{
		ProjectID:     m.ProjectID,
		Level:         m.Level,
		MemberCount:   m.MemberCount,
		MessagesCount: m.MessagesCount,
		PapersShared:  m.PapersShared,
		QualityScore:  m.QualityScore,
		BotLinked:     m.BotLinked,
		Verified:      m.Verified,
		CommunityID:   m.CommunityID,
		CommunityName: m.CommunityName,
		UpdatedAt:     m.UpdatedAt,
	}
}

type appliedActivityModel struct {
	ProjectID  string    `gorm:"column:project_id;primaryKey"`
	ActivityID string    `gorm:"column:activity_id;primaryKey"`
	Category   string    `gorm:"column:category"`
	AppliedAt  time.Time `gorm:"column:applied_at"`
}

func (appliedActivityModel) TableName() string {
	return "applied_activities"
}

type notificationGuardModel struct {
	ProjectID  string    `gorm:"column:project_id;primaryKey"`
	Level      int       `gorm:"column:level;primaryKey"`
	NotifiedAt time.Time `gorm:"column:notified_at"`
}

func (notificationGuardModel) TableName() string {
	return "level_notifications"
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}

func nextQualityScore(current int, contribution int) int {
	next := int(math.Round(float64(current)*0.9 + float64(contribution)*0.1))
	if next < 0 {
		return 0
	}
	if next > 100 {
		return 100
	}
	return next
}
