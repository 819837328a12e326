package http

type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type CreatePageRequest struct {
	Title    string `json:"title"`
	Slug     string `json:"slug"`
	Content  string `json:"content"`
	IsPublic *bool  `json:"is_public"`
}

type UpdatePageRequest struct {
	Title    *string `json:"title"`
	Slug     *string `json:"slug"`
	Content  *string `json:"content"`
	IsPublic *bool   `json:"is_public"`
}

type PageDTO struct {
	PageID      string `json:"page_id"`
	Title       string `json:"title"`
	Slug        string `json:"slug"`
	Content     string `json:"content"`
	IsPublic    bool   `json:"is_public"`
	LastUpdated string `json:"last_updated"`
	URL         string `json:"url"`
}

type NavigationLinkDTO struct {
	Title string `json:"title"`
	Slug  string `json:"slug"`
	URL   string `json:"url"`
}

type GalleryItemDTO struct {
	ItemID     string `json:"item_id"`
	PageID     string `json:"page_id"`
	MediaURL   string `json:"media_url"`
	Caption    string `json:"caption"`
	UploadedAt string `json:"uploaded_at"`
	Display    string `json:"display"`
}

type ListPagesResponse struct {
	Items []PageDTO `json:"items"`
}

type NavigationResponse struct {
	Items []NavigationLinkDTO `json:"items"`
}

type ListGalleryResponse struct {
	Items []GalleryItemDTO `json:"items"`
}

// PageDetailResponse backs both the JSON detail endpoint and the HTML view.
type PageDetailResponse struct {
	Page       PageDTO             `json:"page"`
	Gallery    []GalleryItemDTO    `json:"gallery"`
	Navigation []NavigationLinkDTO `json:"navigation"`
}
