package entity

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDesignFilter_Match(t *testing.T) {
	yes, no := true, false
	owner := int64(3)

	private := &Design{UserID: 3, IsPublic: false, IsApproved: true}
	pending := &Design{UserID: 3, IsPublic: true, IsApproved: false}
	listed := &Design{UserID: 4, IsPublic: true, IsApproved: true}

	approvedPublic := DesignFilter{Public: &yes, Approved: &yes}
	assert.False(t, approvedPublic.Match(private))
	assert.False(t, approvedPublic.Match(pending))
	assert.True(t, approvedPublic.Match(listed))

	// a private design never counts as approved
	assert.False(t, DesignFilter{Approved: &yes}.Match(private))
	assert.True(t, DesignFilter{Approved: &no}.Match(private))

	byOwner := DesignFilter{UserID: &owner}
	assert.True(t, byOwner.Match(private))
	assert.False(t, byOwner.Match(listed))

	assert.True(t, DesignFilter{}.Match(pending))
}

func TestDesign_Apply(t *testing.T) {
	title := "  Sunset  "
	sameImage := "https://img.example.com/wave.png"
	newImage := "https://img.example.com/other.png"
	private := false

	tests := []struct {
		name         string
		update       DesignUpdate
		wantApproved bool
	}{
		{"title edit keeps approval", DesignUpdate{Title: &title}, true},
		{"categories edit keeps approval", DesignUpdate{Categories: []string{"retro"}}, true},
		{"same image keeps approval", DesignUpdate{ImageURL: &sameImage}, true},
		{"same canvas keeps approval", DesignUpdate{CanvasJSON: json.RawMessage(`{"v":1}`)}, true},
		{"new image withdraws approval", DesignUpdate{ImageURL: &newImage}, false},
		{"new canvas withdraws approval", DesignUpdate{CanvasJSON: json.RawMessage(`{"v":2}`)}, false},
		{"going private withdraws approval", DesignUpdate{IsPublic: &private}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := &Design{
				Title:      "Wave",
				ImageURL:   sameImage,
				Categories: []string{"nature"},
				IsPublic:   true,
				IsApproved: true,
				CanvasJSON: json.RawMessage(`{"v":1}`),
			}

			d.Apply(tt.update)
			assert.Equal(t, tt.wantApproved, d.IsApproved)
		})
	}

	d := &Design{Title: "Wave"}
	d.Apply(DesignUpdate{Title: &title})
	assert.Equal(t, "Sunset", d.Title)

	assert.True(t, DesignUpdate{}.IsEmpty())
	assert.False(t, DesignUpdate{Title: &title}.IsEmpty())
}
