package postgresadapter

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"time"

	"venuenouveau/contexts/pricing-catalog/pricing-package-service/domain/entities"
	domainerrors "venuenouveau/contexts/pricing-catalog/pricing-package-service/domain/errors"
	"venuenouveau/contexts/pricing-catalog/pricing-package-service/ports"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const (
	outboxStatusPending = "pending"
	outboxStatusSent    = "sent"

	constraintYearUnique    = "pricing_years_year_key"
	constraintVersionUnique = "pricing_package_versions_package_version_key"
)

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

// Models lists the tables owned by the pricing catalog, in dependency order.
func Models() []any {
	return []any{&yearModel{}, &packageModel{}, &versionModel{}, &outboxModel{}}
}

func (r *Repository) CreateYear(ctx context.Context, year entities.Year) error {
	row := yearModel{YearID: year.YearID, Year: year.Year}
	if err := r.db.WithContext(ctx).Create(&row).Error; err != nil {
		if isUniqueViolation(err) {
			if constraintName(err) == constraintYearUnique {
				return domainerrors.ErrYearTaken
			}
			return domainerrors.ErrRepositoryInvariantBroke
		}
		return err
	}
	return nil
}

func (r *Repository) GetYear(ctx context.Context, yearID string) (entities.Year, error) {
	var row yearModel
	err := r.db.WithContext(ctx).
		Where("year_id = ?", yearID).
		First(&row).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return entities.Year{}, domainerrors.ErrYearNotFound
		}
		return entities.Year{}, err
	}
	return row.toEntity(), nil
}

func (r *Repository) GetYearByValue(ctx context.Context, value int) (entities.Year, error) {
	var row yearModel
	err := r.db.WithContext(ctx).
		Where("year = ?", value).
		First(&row).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return entities.Year{}, domainerrors.ErrYearNotFound
		}
		return entities.Year{}, err
	}
	return row.toEntity(), nil
}

func (r *Repository) ListYears(ctx context.Context) ([]entities.Year, error) {
	var rows []yearModel
	if err := r.db.WithContext(ctx).Order("year ASC").Find(&rows).Error; err != nil {
		return nil, err
	}
	items := make([]entities.Year, 0, len(rows))
	for _, row := range rows {
		items = append(items, row.toEntity())
	}
	return items, nil
}

func (r *Repository) DeleteYear(ctx context.Context, yearID string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		packages := tx.Model(&packageModel{}).Select("package_id").Where("year_id = ?", yearID)
		if err := tx.Where("package_id IN (?)", packages).Delete(&versionModel{}).Error; err != nil {
			return err
		}
		if err := tx.Where("year_id = ?", yearID).Delete(&packageModel{}).Error; err != nil {
			return err
		}
		result := tx.Where("year_id = ?", yearID).Delete(&yearModel{})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return domainerrors.ErrYearNotFound
		}
		return nil
	})
}

func (r *Repository) GetPackage(ctx context.Context, packageID string) (entities.PricingPackage, error) {
	var row packageModel
	err := r.db.WithContext(ctx).
		Where("package_id = ?", packageID).
		First(&row).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return entities.PricingPackage{}, domainerrors.ErrPackageNotFound
		}
		return entities.PricingPackage{}, err
	}
	return row.toEntity(), nil
}

func (r *Repository) ListPackages(ctx context.Context, filter ports.PackageFilter) ([]entities.PricingPackage, error) {
	tx := r.db.WithContext(ctx).
		Model(&packageModel{}).
		Joins("JOIN pricing_years ON pricing_years.year_id = pricing_packages.year_id")
	if filter.Segment != "" {
		tx = tx.Where("pricing_packages.segment = ?", string(filter.Segment))
	}
	if filter.YearID != "" {
		tx = tx.Where("pricing_packages.year_id = ?", filter.YearID)
	}
	if filter.ApprovedOnly {
		tx = tx.Where("pricing_packages.approved = ?", true)
	}

	var rows []packageModel
	if err := tx.
		Order(clause.OrderByColumn{Column: clause.Column{Table: "pricing_years", Name: "year"}, Desc: true}).
		Order(clause.OrderByColumn{Column: clause.Column{Table: "pricing_packages", Name: "segment"}}).
		Order(clause.OrderByColumn{Column: clause.Column{Table: "pricing_packages", Name: "package_id"}}).
		Find(&rows).
		Error; err != nil {
		return nil, err
	}
	items := make([]entities.PricingPackage, 0, len(rows))
	for _, row := range rows {
		items = append(items, row.toEntity())
	}
	return items, nil
}

func (r *Repository) ListVersions(ctx context.Context, packageID string) ([]entities.PricingPackageVersion, error) {
	var rows []versionModel
	if err := r.db.WithContext(ctx).
		Where("package_id = ?", packageID).
		Order("version DESC").
		Find(&rows).
		Error; err != nil {
		return nil, err
	}
	items := make([]entities.PricingPackageVersion, 0, len(rows))
	for _, row := range rows {
		items = append(items, row.toEntity())
	}
	return items, nil
}

func (r *Repository) GetVersion(ctx context.Context, packageID string, versionID string) (entities.PricingPackageVersion, error) {
	var row versionModel
	err := r.db.WithContext(ctx).
		Where("version_id = ? AND package_id = ?", versionID, packageID).
		First(&row).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return entities.PricingPackageVersion{}, domainerrors.ErrVersionNotFound
		}
		return entities.PricingPackageVersion{}, err
	}
	return row.toEntity(), nil
}

func (r *Repository) CreatePackage(
	ctx context.Context,
	pkg entities.PricingPackage,
	first entities.PricingPackageVersion,
	event ports.PackageEvent,
) error {
	outboxRow, err := outboxRowFromEvent(event)
	if err != nil {
		return err
	}

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		packageRow := packageModelFromEntity(pkg)
		if err := tx.Create(&packageRow).Error; err != nil {
			return mapWriteError(err)
		}
		versionRow := versionModelFromEntity(first)
		if err := tx.Create(&versionRow).Error; err != nil {
			return mapWriteError(err)
		}
		if err := tx.Create(&outboxRow).Error; err != nil {
			return mapWriteError(err)
		}
		return nil
	})
}

func (r *Repository) UpdatePackageFields(ctx context.Context, pkg entities.PricingPackage) (entities.PricingPackage, error) {
	var stored entities.PricingPackage
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Model(&packageModel{}).
			Where("package_id = ?", pkg.PackageID).
			Updates(map[string]any{
				"segment":      string(pkg.Segment),
				"year_id":      pkg.YearID,
				"package_name": pkg.PackageName,
				"updated_at":   pkg.UpdatedAt.UTC(),
			})
		if result.Error != nil {
			return mapWriteError(result.Error)
		}
		if result.RowsAffected == 0 {
			return domainerrors.ErrPackageNotFound
		}
		current, err := r.getPackageTx(tx, pkg.PackageID)
		if err != nil {
			return err
		}
		stored = current
		return nil
	})
	return stored, err
}

func (r *Repository) SavePackage(
	ctx context.Context,
	pkg entities.PricingPackage,
	version *entities.PricingPackageVersion,
	event *ports.PackageEvent,
) error {
	var outboxRow *outboxModel
	if event != nil {
		row, err := outboxRowFromEvent(*event)
		if err != nil {
			return err
		}
		outboxRow = &row
	}

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		row := packageModelFromEntity(pkg)
		// current_version only moves forward; a stale writer matches no row.
		result := tx.Model(&packageModel{}).
			Where("package_id = ? AND current_version <= ?", pkg.PackageID, pkg.CurrentVersion).
			Select("segment", "year_id", "package_name", "file", "current_version",
				"approved", "approved_by", "approved_at", "updated_at").
			Updates(&row)
		if result.Error != nil {
			return mapWriteError(result.Error)
		}
		if result.RowsAffected == 0 {
			if _, err := r.getPackageTx(tx, pkg.PackageID); err != nil {
				return err
			}
			return domainerrors.ErrRepositoryInvariantBroke
		}
		if version != nil {
			versionRow := versionModelFromEntity(*version)
			if err := tx.Create(&versionRow).Error; err != nil {
				return mapWriteError(err)
			}
		}
		if outboxRow != nil {
			if err := tx.Create(outboxRow).Error; err != nil {
				return mapWriteError(err)
			}
		}
		return nil
	})
}

func (r *Repository) ApprovePackage(ctx context.Context, pkg entities.PricingPackage, event ports.PackageEvent) error {
	outboxRow, err := outboxRowFromEvent(event)
	if err != nil {
		return err
	}

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		stamp := approvalColumns(pkg.Approval)
		stamp["updated_at"] = pkg.UpdatedAt.UTC()
		result := tx.Model(&packageModel{}).
			Where("package_id = ?", pkg.PackageID).
			Updates(stamp)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return domainerrors.ErrPackageNotFound
		}

		// The current version is read inside the transaction so a concurrent
		// file replacement cannot leave the stamp on an older row.
		current, err := r.getPackageTx(tx, pkg.PackageID)
		if err != nil {
			return err
		}
		if err := tx.Model(&versionModel{}).
			Where("package_id = ? AND version = ?", pkg.PackageID, current.CurrentVersion).
			Updates(approvalColumns(pkg.Approval)).
			Error; err != nil {
			return err
		}
		return tx.Create(&outboxRow).Error
	})
}

func (r *Repository) ApproveVersion(ctx context.Context, version entities.PricingPackageVersion, event ports.PackageEvent) error {
	outboxRow, err := outboxRowFromEvent(event)
	if err != nil {
		return err
	}

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Model(&versionModel{}).
			Where("version_id = ? AND package_id = ?", version.VersionID, version.PackageID).
			Updates(approvalColumns(version.Approval))
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return domainerrors.ErrVersionNotFound
		}
		return tx.Create(&outboxRow).Error
	})
}

func (r *Repository) DeletePackage(ctx context.Context, packageID string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("package_id = ?", packageID).Delete(&versionModel{}).Error; err != nil {
			return err
		}
		result := tx.Where("package_id = ?", packageID).Delete(&packageModel{})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return domainerrors.ErrPackageNotFound
		}
		return nil
	})
}

func (r *Repository) ListPendingOutbox(ctx context.Context, limit int) ([]ports.OutboxMessage, error) {
	if limit <= 0 {
		limit = 100
	}

	var rows []outboxModel
	if err := r.db.WithContext(ctx).
		Where("status = ?", outboxStatusPending).
		Order("created_at ASC").
		Limit(limit).
		Find(&rows).
		Error; err != nil {
		return nil, err
	}

	items := make([]ports.OutboxMessage, 0, len(rows))
	for _, row := range rows {
		items = append(items, row.toPort())
	}
	return items, nil
}

func (r *Repository) MarkOutboxSent(ctx context.Context, outboxID string, sentAt time.Time) error {
	result := r.db.WithContext(ctx).
		Model(&outboxModel{}).
		Where("outbox_id = ?", outboxID).
		Updates(map[string]any{
			"status":  outboxStatusSent,
			"sent_at": sentAt.UTC(),
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrRepositoryInvariantBroke
	}
	return nil
}

func (r *Repository) getPackageTx(tx *gorm.DB, packageID string) (entities.PricingPackage, error) {
	var row packageModel
	if err := tx.Where("package_id = ?", packageID).First(&row).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return entities.PricingPackage{}, domainerrors.ErrPackageNotFound
		}
		return entities.PricingPackage{}, err
	}
	return row.toEntity(), nil
}

func approvalColumns(approval entities.Approval) map[string]any {
	return map[string]any{
		"approved":    approval.Approved,
		"approved_by": approval.ApprovedBy,
		"approved_at": utcPtr(approval.ApprovedAt),
	}
}

func outboxRowFromEvent(event ports.PackageEvent) (outboxModel, error) {
	envelope, err := event.Envelope()
	if err != nil {
		return outboxModel{}, err
	}
	payload, err := json.Marshal(envelope)
	if err != nil {
		return outboxModel{}, err
	}
	return outboxModel{
		OutboxID:     event.EventID,
		EventType:    event.EventType,
		PartitionKey: event.PartitionKey,
		Payload:      payload,
		Status:       outboxStatusPending,
		CreatedAt:    event.OccurredAt.UTC(),
	}, nil
}

func mapWriteError(err error) error {
	if !isUniqueViolation(err) {
		return err
	}
	switch constraintName(err) {
	case constraintVersionUnique:
		return domainerrors.ErrDuplicateVersion
	case constraintYearUnique:
		return domainerrors.ErrYearTaken
	default:
		return domainerrors.ErrRepositoryInvariantBroke
	}
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}

func constraintName(err error) string {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.ConstraintName
	}
	return ""
}

func utcPtr(value *time.Time) *time.Time {
	if value == nil {
		return nil
	}
	utc := value.UTC()
	return &utc
}
