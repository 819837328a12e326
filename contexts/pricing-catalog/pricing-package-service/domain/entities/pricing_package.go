package entities

import (
	"strings"
	"time"
	"unicode/utf8"

	domainerrors "venuenouveau/contexts/pricing-catalog/pricing-package-service/domain/errors"
)

type Segment string

const (
	SegmentAllInclusive   Segment = "all_inclusive"
	SegmentVenueInclusive Segment = "venue_inclusive"
	SegmentWeekday        Segment = "weekday"
)

const (
	MaxPackageNameLength = 255
	MaxIdentityLength    = 100
)

var segmentLabels = map[Segment]string{
	SegmentAllInclusive:   "All Inclusive Wedding Package",
	SegmentVenueInclusive: "Venue Inclusive Package",
	SegmentWeekday:        "Weekday Package",
}

// Segments returns the selectable segments in display order.
func Segments() []Segment {
	return []Segment{SegmentAllInclusive, SegmentVenueInclusive, SegmentWeekday}
}

func (s Segment) Valid() bool {
	_, ok := segmentLabels[s]
	return ok
}

// Label is the human readable segment name shown in listings.
func (s Segment) Label() string {
	if label, ok := segmentLabels[s]; ok {
		return label
	}
	return string(s)
}

// Approval is the approver stamp shared by packages and versions.
type Approval struct {
	Approved   bool
	ApprovedBy *string
	ApprovedAt *time.Time
}

func approvedBy(approver string, at time.Time) Approval {
	who := approver
	when := at.UTC()
	return Approval{Approved: true, ApprovedBy: &who, ApprovedAt: &when}
}

type PricingPackage struct {
	PackageID      string
	Segment        Segment
	YearID         string
	PackageName    string
	File           string
	CurrentVersion int
	Approval
	UpdatedAt time.Time
}

// NewPricingPackage builds a package at version 1, unapproved.
func NewPricingPackage(
	packageID string,
	segment Segment,
	yearID string,
	packageName string,
	file string,
	now time.Time,
) (PricingPackage, error) {
	pkg := PricingPackage{
		PackageID:      strings.TrimSpace(packageID),
		Segment:        segment,
		YearID:         strings.TrimSpace(yearID),
		PackageName:    strings.TrimSpace(packageName),
		File:           strings.TrimSpace(file),
		CurrentVersion: 1,
		UpdatedAt:      now.UTC(),
	}
	if pkg.PackageID == "" {
		return PricingPackage{}, domainerrors.ErrInvalidPackage
	}
	if err := pkg.Validate(); err != nil {
		return PricingPackage{}, err
	}
	return pkg, nil
}

func (p PricingPackage) Validate() error {
	if !p.Segment.Valid() {
		return domainerrors.ErrInvalidSegment
	}
	if p.YearID == "" {
		return domainerrors.ErrInvalidPackage
	}
	if p.PackageName == "" || utf8.RuneCountInString(p.PackageName) > MaxPackageNameLength {
		return domainerrors.ErrInvalidPackage
	}
	if p.File == "" {
		return domainerrors.ErrFileRequired
	}
	if p.CurrentVersion < 1 {
		return domainerrors.ErrRepositoryInvariantBroke
	}
	return nil
}

// ReplaceFile moves the package to the next version and clears approval.
// The counter only ever moves forward.
func (p PricingPackage) ReplaceFile(file string, now time.Time) (PricingPackage, error) {
	file = strings.TrimSpace(file)
	if file == "" {
		return PricingPackage{}, domainerrors.ErrFileRequired
	}
	next := p
	next.File = file
	next.CurrentVersion = p.CurrentVersion + 1
	next.Approval = Approval{}
	next.UpdatedAt = now.UTC()
	return next, nil
}

// Approve stamps the package as approved by approver at now.
func (p PricingPackage) Approve(approver string, now time.Time) (PricingPackage, error) {
	approver, err := normalizeIdentity(approver, domainerrors.ErrApproverRequired)
	if err != nil {
		return PricingPackage{}, err
	}
	next := p
	next.Approval = approvedBy(approver, now)
	next.UpdatedAt = now.UTC()
	return next, nil
}

// Display mirrors the admin label: "<segment label> - <year>".
func (p PricingPackage) Display(year Year) string {
	return p.Segment.Label() + " - " + year.String()
}

func normalizeIdentity(value string, missing error) (string, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return "", missing
	}
	if utf8.RuneCountInString(value) > MaxIdentityLength {
		return "", domainerrors.ErrInvalidPackage
	}
	return value, nil
}
