package entity

import (
	"bytes"
	"encoding/json"
	"strings"
	"time"
)

// Design is user-authored artwork. CanvasJSON is opaque editor state and is
// stored verbatim.
type Design struct {
	ID          int64           `json:"id"`
	UserID      int64           `json:"userId"`
	Title       string          `json:"title"`
	Description *string         `json:"description,omitempty"`
	ImageURL    string          `json:"imageUrl"`
	Categories  []string        `json:"categories"`
	IsPublic    bool            `json:"isPublic"`
	IsApproved  bool            `json:"isApproved"`
	CanvasJSON  json.RawMessage `json:"canvasJson,omitempty"`
	CreatedAt   time.Time       `json:"createdAt"`
}

// IsListed reports whether the design is eligible for the storefront.
// A private design is never listed, whatever IsApproved says.
func (d *Design) IsListed() bool {
	return d.IsPublic && d.IsApproved
}

// DesignFilter narrows a design listing. Nil fields match everything.
type DesignFilter struct {
	UserID   *int64
	Public   *bool
	Approved *bool
}

// Match reports whether d satisfies the filter.
func (f DesignFilter) Match(d *Design) bool {
	if f.UserID != nil && d.UserID != *f.UserID {
		return false
	}
	if f.Public != nil && d.IsPublic != *f.Public {
		return false
	}
	if f.Approved != nil {
		// approval only counts for public designs
		if d.IsListed() != *f.Approved {
			return false
		}
	}

	return true
}

// DesignUpdate holds the owner-editable fields of a design. Nil fields are
// left untouched.
type DesignUpdate struct {
	Title       *string
	Description *string
	ImageURL    *string
	Categories  []string
	IsPublic    *bool
	CanvasJSON  json.RawMessage
}

// Apply merges update into d. Approval is withdrawn when the design goes
// private or when its image or canvas changes.
func (d *Design) Apply(update DesignUpdate) {
	if update.Title != nil {
		d.Title = strings.TrimSpace(*update.Title)
	}
	if update.Description != nil {
		d.Description = update.Description
	}
	if update.ImageURL != nil && *update.ImageURL != d.ImageURL {
		d.ImageURL = *update.ImageURL
		d.IsApproved = false
	}
	if update.Categories != nil {
		d.Categories = update.Categories
	}
	if update.CanvasJSON != nil && !bytes.Equal(update.CanvasJSON, d.CanvasJSON) {
		d.CanvasJSON = update.CanvasJSON
		d.IsApproved = false
	}
	if update.IsPublic != nil {
		d.IsPublic = *update.IsPublic
	}
	if !d.IsPublic {
		d.IsApproved = false
	}
}

// IsEmpty reports whether the update changes nothing.
func (u DesignUpdate) IsEmpty() bool {
	return u.Title == nil && u.Description == nil && u.ImageURL == nil &&
		u.Categories == nil && u.IsPublic == nil && u.CanvasJSON == nil
}
