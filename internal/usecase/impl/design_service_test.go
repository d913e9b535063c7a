package impl

import (
	"context"
	"encoding/json"
	"testing"

	"teeshop/internal/domain/entity"
	domainerrors "teeshop/internal/domain/errors"
	"teeshop/internal/domain/service"
	"teeshop/internal/usecase"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func designInput(userID int64, public bool) usecase.SubmitDesignInput {
	return usecase.SubmitDesignInput{
		UserID:     userID,
		Title:      " Sunset ",
		ImageURL:   "https://img.example.com/sunset.png",
		Categories: []string{"nature", " nature ", "retro"},
		IsPublic:   public,
		CanvasJSON: json.RawMessage(`{"objects":[]}`),
	}
}

func TestDesignService_SubmitDesign(t *testing.T) {
	f := newMemoryFixture()
	owner := f.createUser(t, "artist", entity.RoleCreator)
	srv := f.designService()
	ctx := context.Background()

	design, err := srv.SubmitDesign(ctx, designInput(owner.ID, true))
	require.NoError(t, err)
	assert.Equal(t, "Sunset", design.Title)
	assert.Equal(t, []string{"nature", "retro"}, design.Categories)
	assert.True(t, design.IsPublic)
	assert.False(t, design.IsApproved)
	assert.JSONEq(t, `{"objects":[]}`, string(design.CanvasJSON))

	empty := designInput(owner.ID, true)
	empty.Categories = []string{" "}
	_, err = srv.SubmitDesign(ctx, empty)
	assert.True(t, errors.Is(err, domainerrors.ErrInvalidArgument))

	badCanvas := designInput(owner.ID, true)
	badCanvas.CanvasJSON = json.RawMessage(`{"objects":`)
	_, err = srv.SubmitDesign(ctx, badCanvas)
	assert.True(t, errors.Is(err, domainerrors.ErrInvalidArgument))

	_, err = srv.SubmitDesign(ctx, designInput(404, true))
	assert.True(t, errors.Is(err, domainerrors.ErrUserNotFound))
}

func TestDesignService_DecideDesign(t *testing.T) {
	f := newMemoryFixture()
	owner := f.createUser(t, "artist", entity.RoleCreator)
	srv := f.designService()
	ctx := context.Background()

	private, err := srv.SubmitDesign(ctx, designInput(owner.ID, false))
	require.NoError(t, err)
	public, err := srv.SubmitDesign(ctx, designInput(owner.ID, true))
	require.NoError(t, err)

	_, err = srv.DecideDesign(ctx, private.ID, true)
	assert.True(t, errors.Is(err, domainerrors.ErrDesignNotPublic))

	approved, err := srv.DecideDesign(ctx, public.ID, true)
	require.NoError(t, err)
	assert.True(t, approved.IsListed())

	_, err = srv.DecideDesign(ctx, 404, true)
	assert.True(t, errors.Is(err, domainerrors.ErrDesignNotFound))

	yes := true
	listed, err := srv.ListDesigns(ctx, entity.DesignFilter{Public: &yes, Approved: &yes})
	require.NoError(t, err)
	require.Len(t, listed, 1)
	assert.Equal(t, public.ID, listed[0].ID)

	// rejecting a private design is allowed and keeps it unapproved
	rejected, err := srv.DecideDesign(ctx, private.ID, false)
	require.NoError(t, err)
	assert.False(t, rejected.IsApproved)

	assert.Equal(t, 1, f.metrics.decisions["design:approved"])
	assert.Equal(t, 1, f.metrics.decisions["design:rejected"])
}

func TestDesignService_UpdateDesign(t *testing.T) {
	f := newMemoryFixture()
	owner := f.createUser(t, "artist", entity.RoleCreator)
	srv := f.designService()
	ctx := context.Background()

	design, err := srv.SubmitDesign(ctx, designInput(owner.ID, true))
	require.NoError(t, err)
	_, err = srv.DecideDesign(ctx, design.ID, true)
	require.NoError(t, err)

	title := "Sunrise"
	updated, err := srv.UpdateDesign(ctx, design.ID, entity.DesignUpdate{Title: &title})
	require.NoError(t, err)
	assert.Equal(t, "Sunrise", updated.Title)
	assert.True(t, updated.IsApproved)

	private := false
	hidden, err := srv.UpdateDesign(ctx, design.ID, entity.DesignUpdate{IsPublic: &private})
	require.NoError(t, err)
	assert.False(t, hidden.IsPublic)
	assert.False(t, hidden.IsApproved)

	// going public again needs a fresh approval
	public := true
	shown, err := srv.UpdateDesign(ctx, design.ID, entity.DesignUpdate{IsPublic: &public})
	require.NoError(t, err)
	assert.False(t, shown.IsListed())

	_, err = srv.UpdateDesign(ctx, design.ID, entity.DesignUpdate{Categories: []string{}})
	assert.True(t, errors.Is(err, domainerrors.ErrInvalidArgument))

	_, err = srv.UpdateDesign(ctx, 404, entity.DesignUpdate{Title: &title})
	assert.True(t, errors.Is(err, domainerrors.ErrDesignNotFound))
}

func TestDesignService_ReviseDesign(t *testing.T) {
	f := newMemoryFixture()
	owner := f.createUser(t, "artist", entity.RoleCreator)
	srv := f.designService()
	ctx := context.Background()

	design, err := srv.SubmitDesign(ctx, designInput(owner.ID, true))
	require.NoError(t, err)
	_, err = srv.DecideDesign(ctx, design.ID, true)
	require.NoError(t, err)

	t.Run("failed decision discards the edits", func(t *testing.T) {
		title, private, approve := "Changed", false, true

		_, err := srv.ReviseDesign(ctx, design.ID, entity.DesignUpdate{Title: &title, IsPublic: &private}, &approve)
		assert.True(t, errors.Is(err, domainerrors.ErrDesignNotPublic))

		stored, err := srv.GetDesign(ctx, design.ID)
		require.NoError(t, err)
		assert.Equal(t, design.Title, stored.Title)
		assert.True(t, stored.IsListed())
	})

	t.Run("new artwork needs a fresh approval", func(t *testing.T) {
		image := "https://img.example.com/other.png"

		updated, err := srv.UpdateDesign(ctx, design.ID, entity.DesignUpdate{ImageURL: &image})
		require.NoError(t, err)
		assert.Equal(t, image, updated.ImageURL)
		assert.False(t, updated.IsApproved)
	})

	t.Run("edit and approval together", func(t *testing.T) {
		canvas, approve := json.RawMessage(`{"objects":[{"type":"text"}]}`), true

		revised, err := srv.ReviseDesign(ctx, design.ID, entity.DesignUpdate{CanvasJSON: canvas}, &approve)
		require.NoError(t, err)
		assert.JSONEq(t, string(canvas), string(revised.CanvasJSON))
		assert.True(t, revised.IsListed())
	})

	assert.Equal(t, 2, f.metrics.decisions["design:approved"])
	assert.Len(t, f.publisher.ofType(service.EventDesignDecided), 2)
}
