package domain

import (
	"fmt"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ProjectStatus is the backend review lifecycle of a project.
type ProjectStatus string

const (
	StatusDraft       ProjectStatus = "draft"
	StatusPending     ProjectStatus = "pending"
	StatusApproved    ProjectStatus = "approved"
	StatusRejected    ProjectStatus = "rejected"
	StatusMarketplace ProjectStatus = "marketplace"
)

// ParseProjectStatus accepts the listing tabs case-insensitively.
func ParseProjectStatus(s string) (ProjectStatus, error) {
	st := ProjectStatus(strings.ToLower(strings.TrimSpace(s)))
	switch st {
	case StatusDraft, StatusPending, StatusApproved, StatusRejected, StatusMarketplace:
		return st, nil
	}
	return "", NewValidationError(map[string]string{"status": fmt.Sprintf("unknown project status %q", s)})
}

// ParseProjectID checks that id is a backend object id (24 hex chars) and
// returns its canonical lower-case form.
func ParseProjectID(id string) (string, error) {
	oid, err := primitive.ObjectIDFromHex(strings.TrimSpace(id))
	if err != nil {
		return "", NewValidationError(map[string]string{"id": "project id must be a 24 character hex string"})
	}
	return oid.Hex(), nil
}

// Platform types offered by the submission form.
const (
	PlatformWeb    = "Web"
	PlatformMobile = "Mobile"
)

// Categories offered by the submission form. DefaultCategory preselects the first.
var Categories = []string{"AI Tools", "Productivity", "Social", "Entertainment", "Education"}

const DefaultCategory = "AI Tools"

type BasicInfo struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Category    string   `json:"category"`
	Tags        []string `json:"tags"`
}

type PlatformURLs struct {
	Website   string `json:"website,omitempty"`
	AppStore  string `json:"appStore,omitempty"`
	PlayStore string `json:"playStore,omitempty"`
}

type Platform struct {
	Type string       `json:"type"`
	URLs PlatformURLs `json:"urls"`
}

type Contact struct {
	Email    string `json:"email"`
	WhatsApp string `json:"whatsapp,omitempty"`
}

type Marketplace struct {
	IsForSale bool    `json:"isForSale"`
	Price     float64 `json:"price"`
	Contact   Contact `json:"contact"`
}

type Media struct {
	Thumbnail   string   `json:"thumbnail,omitempty"`
	Screenshots []string `json:"screenshots"`
}

// HasAssets reports whether at least one image is attached.
func (m Media) HasAssets() bool {
	return m.Thumbnail != "" || len(m.Screenshots) > 0
}

// DraftProject is the record built by the submission wizard. ID stays empty
// until the first successful persist.
type DraftProject struct {
	ID          string      `json:"id,omitempty"`
	BasicInfo   BasicInfo   `json:"basicInfo"`
	Platform    Platform    `json:"platform"`
	Marketplace Marketplace `json:"marketplace"`
	Media       Media       `json:"media"`
}

// NewDraftProject returns the empty draft a wizard opens with.
func NewDraftProject() DraftProject {
	return DraftProject{
		BasicInfo: BasicInfo{Category: DefaultCategory, Tags: []string{}},
		Platform:  Platform{Type: PlatformWeb},
		Media:     Media{Screenshots: []string{}},
	}
}

// Clone deep-copies the slices so callers can't mutate wizard state.
func (d DraftProject) Clone() DraftProject {
	c := d
	c.BasicInfo.Tags = append([]string{}, d.BasicInfo.Tags...)
	c.Media.Screenshots = append([]string{}, d.Media.Screenshots...)
	return c
}

// ProjectOwner is the public slice of the owning account.
type ProjectOwner struct {
	ID     string `json:"_id"`
	Name   string `json:"name"`
	Email  string `json:"email"`
	Avatar string `json:"avatar,omitempty"`
}

type ProjectMetadata struct {
	SubmissionDate  *time.Time    `json:"submissionDate,omitempty"`
	Status          ProjectStatus `json:"status"`
	RejectionReason string        `json:"rejectionReason,omitempty"`
	ReviewedAt      *time.Time    `json:"reviewedAt,omitempty"`
	Version         string        `json:"version,omitempty"`
}

// Project is the read model used by listings and the detail view.
type Project struct {
	ID          string          `json:"_id"`
	BasicInfo   BasicInfo       `json:"basicInfo"`
	Platform    Platform        `json:"platform"`
	Marketplace Marketplace     `json:"marketplace"`
	Metadata    ProjectMetadata `json:"metadata"`
	Media       Media           `json:"media"`
	Owner       ProjectOwner    `json:"owner"`
	CreatedAt   time.Time       `json:"createdAt"`
	UpdatedAt   time.Time       `json:"updatedAt"`
}

// MarketplaceItem is the flattened card shown on the marketplace grid.
type MarketplaceItem struct {
	ID             string       `json:"_id"`
	Title          string       `json:"title"`
	Description    string       `json:"description"`
	Category       string       `json:"category"`
	Price          float64      `json:"price"`
	DeliveryTime   int          `json:"deliveryTime,omitempty"`
	Owner          ProjectOwner `json:"owner"`
	Status         string       `json:"status"`
	Media          []string     `json:"media"`
	IsForSale      bool         `json:"isForSale"`
	SellerVerified bool         `json:"sellerVerified,omitempty"`
	CreatedAt      time.Time    `json:"createdAt"`
	UpdatedAt      time.Time    `json:"updatedAt"`
}

// Page is one page of a paginated listing.
type Page[T any] struct {
	Items       []T `json:"items"`
	Count       int `json:"count"`
	Total       int `json:"total"`
	TotalPages  int `json:"totalPages"`
	CurrentPage int `json:"currentPage"`
}
