package postgresadapter

import (
	"time"

	"venuenouveau/contexts/pricing-catalog/pricing-package-service/domain/entities"
	"venuenouveau/contexts/pricing-catalog/pricing-package-service/ports"
)

type yearModel struct {
	YearID string `gorm:"column:year_id;primaryKey"`
	Year   int    `gorm:"column:year;not null;uniqueIndex:pricing_years_year_key"`
}

func (yearModel) TableName() string {
	return "pricing_years"
}

func (m yearModel) toEntity() entities.Year {
	return entities.Year{YearID: m.YearID, Year: m.Year}
}

type packageModel struct {
	PackageID      string     `gorm:"column:package_id;primaryKey"`
	Segment        string     `gorm:"column:segment;size:20;not null"`
	YearID         string     `gorm:"column:year_id;index"`
	PackageName    string     `gorm:"column:package_name;size:255;not null"`
	File           string     `gorm:"column:file;not null"`
	CurrentVersion int        `gorm:"column:current_version;not null;default:1"`
	Approved       bool       `gorm:"column:approved;not null;default:false"`
	ApprovedBy     *string    `gorm:"column:approved_by;size:100"`
	ApprovedAt     *time.Time `gorm:"column:approved_at"`
	UpdatedAt      time.Time  `gorm:"column:updated_at;autoUpdateTime:false"`
}

func (packageModel) TableName() string {
	return "pricing_packages"
}

func packageModelFromEntity(pkg entities.PricingPackage) packageModel {
	return packageModel{
		PackageID:      pkg.PackageID,
		Segment:        string(pkg.Segment),
		YearID:         pkg.YearID,
		PackageName:    pkg.PackageName,
		File:           pkg.File,
		CurrentVersion: pkg.CurrentVersion,
		Approved:       pkg.Approved,
		ApprovedBy:     pkg.ApprovedBy,
		ApprovedAt:     utcPtr(pkg.ApprovedAt),
		UpdatedAt:      pkg.UpdatedAt.UTC(),
	}
}

func (m packageModel) toEntity() entities.PricingPackage {
	return entities.PricingPackage{
		PackageID:      m.PackageID,
		Segment:        entities.Segment(m.Segment),
		YearID:         m.YearID,
		PackageName:    m.PackageName,
		File:           m.File,
		CurrentVersion: m.CurrentVersion,
		Approval: entities.Approval{
			Approved:   m.Approved,
			ApprovedBy: m.ApprovedBy,
			ApprovedAt: utcPtr(m.ApprovedAt),
		},
		UpdatedAt: m.UpdatedAt.UTC(),
	}
}

type versionModel struct {
	VersionID   string     `gorm:"column:version_id;primaryKey"`
	PackageID   string     `gorm:"column:package_id;not null;uniqueIndex:pricing_package_versions_package_version_key,priority:1"`
	Version     int        `gorm:"column:version;not null;uniqueIndex:pricing_package_versions_package_version_key,priority:2"`
	PackageName string     `gorm:"column:package_name;size:255;not null"`
	File        string     `gorm:"column:file;not null"`
	Uploader    string     `gorm:"column:uploader;size:100;not null"`
	UploadedAt  time.Time  `gorm:"column:uploaded_at;autoCreateTime:false"`
	Approved    bool       `gorm:"column:approved;not null;default:false"`
	ApprovedBy  *string    `gorm:"column:approved_by;size:100"`
	ApprovedAt  *time.Time `gorm:"column:approved_at"`
}

func (versionModel) TableName() string {
	return "pricing_package_versions"
}

func versionModelFromEntity(version entities.PricingPackageVersion) versionModel {
	return versionModel{
		VersionID:   version.VersionID,
		PackageID:   version.PackageID,
		Version:     version.Version,
		PackageName: version.PackageName,
		File:        version.File,
		Uploader:    version.Uploader,
		UploadedAt:  version.UploadedAt.UTC(),
		Approved:    version.Approved,
		ApprovedBy:  version.ApprovedBy,
		ApprovedAt:  utcPtr(version.ApprovedAt),
	}
}

func (m versionModel) toEntity() entities.PricingPackageVersion {
	return entities.PricingPackageVersion{
		VersionID:   m.VersionID,
		PackageID:   m.PackageID,
		Version:     m.Version,
		PackageName: m.PackageName,
		File:        m.File,
		Uploader:    m.Uploader,
		UploadedAt:  m.UploadedAt.UTC(),
		Approval: entities.Approval{
			Approved:   m.Approved,
			ApprovedBy: m.ApprovedBy,
			ApprovedAt: utcPtr(m.ApprovedAt),
		},
	}
}

type outboxModel struct {
	OutboxID     string     `gorm:"column:outbox_id;primaryKey"`
	EventType    string     `gorm:"column:event_type"`
	PartitionKey string     `gorm:"column:partition_key"`
	Payload      []byte     `gorm:"column:payload"`
	Status       string     `gorm:"column:status;index"`
	CreatedAt    time.Time  `gorm:"column:created_at"`
	SentAt       *time.Time `gorm:"column:sent_at"`
}

func (outboxModel) TableName() string {
	return "pricing_package_outbox"
}

func (m outboxModel) toPort() ports.OutboxMessage {
	return ports.OutboxMessage{
		OutboxID:     m.OutboxID,
		EventType:    m.EventType,
		PartitionKey: m.PartitionKey,
		Payload:      append([]byte(nil), m.Payload...),
		CreatedAt:    m.CreatedAt.UTC(),
	}
}
