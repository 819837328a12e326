package http

type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type CreateYearRequest struct {
	Year int `json:"year"`
}

type YearDTO struct {
	YearID  string `json:"year_id"`
	Year    int    `json:"year"`
	Display string `json:"display"`
}

type ListYearsResponse struct {
	Items []YearDTO `json:"items"`
}

// CreatePackageRequest carries the multipart form fields sent with the document.
type CreatePackageRequest struct {
	Segment     string `json:"segment"`
	YearID      string `json:"year_id"`
	PackageName string `json:"package_name"`
}

// UpdatePackageRequest carries optional form fields; absent fields keep their value.
type UpdatePackageRequest struct {
	Segment     *string `json:"segment"`
	YearID      *string `json:"year_id"`
	PackageName *string `json:"package_name"`
}

type PackageDTO struct {
	PackageID      string  `json:"package_id"`
	Segment        string  `json:"segment"`
	SegmentLabel   string  `json:"segment_label"`
	YearID         string  `json:"year_id"`
	Year           int     `json:"year"`
	PackageName    string  `json:"package_name"`
	FileURL        string  `json:"file_url"`
	CurrentVersion int     `json:"current_version"`
	Approved       bool    `json:"approved"`
	ApprovedBy     *string `json:"approved_by,omitempty"`
	ApprovedAt     *string `json:"approved_at,omitempty"`
	UpdatedAt      string  `json:"updated_at"`
	Display        string  `json:"display"`
}

type VersionDTO struct {
	VersionID   string  `json:"version_id"`
	PackageID   string  `json:"package_id"`
	Version     int     `json:"version"`
	PackageName string  `json:"package_name"`
	FileURL     string  `json:"file_url"`
	Uploader    string  `json:"uploader"`
	UploadedAt  string  `json:"uploaded_at"`
	Approved    bool    `json:"approved"`
	ApprovedBy  *string `json:"approved_by,omitempty"`
	ApprovedAt  *string `json:"approved_at,omitempty"`
	Display     string  `json:"display,omitempty"`
}

type CreatePackageResponse struct {
	Package PackageDTO `json:"package"`
	Version VersionDTO `json:"version"`
}

type UpdatePackageResponse struct {
	Package    PackageDTO  `json:"package"`
	NewVersion *VersionDTO `json:"new_version,omitempty"`
}

type GetPackageResponse struct {
	Package  PackageDTO   `json:"package"`
	Versions []VersionDTO `json:"versions"`
}

type ListPackagesResponse struct {
	Items []PackageDTO `json:"items"`
}

type ApprovePackageResponse struct {
	Package PackageDTO `json:"package"`
}

type ApproveVersionResponse struct {
	Version VersionDTO `json:"version"`
}

type SegmentDTO struct {
	Segment string `json:"segment"`
	Label   string `json:"label"`
}

type ListSegmentsResponse struct {
	Items []SegmentDTO `json:"items"`
}
