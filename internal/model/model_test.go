package model

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestBlog_SetTags(t *testing.T) {
	b := &Blog{}
	b.SetTags([]string{" Go ", "go", "", "Backend"})

	assert.Equal(t, "go,backend", b.Tags)
	assert.Equal(t, []string{"go", "backend"}, b.TagList())
}

func TestBlog_TagListEmpty(t *testing.T) {
	b := &Blog{}
	assert.Empty(t, b.TagList())
}

func TestOwnedBy(t *testing.T) {
	owner := uuid.New()
	other := uuid.New()

	assert.True(t, (&Blog{AuthorID: owner}).OwnedBy(owner))
	assert.False(t, (&Blog{AuthorID: owner}).OwnedBy(other))
	assert.True(t, (&Comment{AuthorID: owner}).OwnedBy(owner))
	assert.False(t, (&Photo{OwnerID: owner}).OwnedBy(other))
}

func TestProfilePatch_Apply(t *testing.T) {
	u := &User{UserName: "Fido", Description: "dog"}
	name := "Rex"

	changed := ProfilePatch{UserName: &name}.Apply(u)

	assert.True(t, changed)
	assert.Equal(t, "Rex", u.UserName)
	assert.Equal(t, "dog", u.Description)
	assert.False(t, ProfilePatch{}.Apply(u))
}

func TestBeforeCreate_AssignsID(t *testing.T) {
	u := &User{}
	assert.NoError(t, u.BeforeCreate(nil))
	assert.NotEqual(t, uuid.Nil, u.ID)

	fixed := uuid.New()
	p := &Photo{ID: fixed}
	assert.NoError(t, p.BeforeCreate(nil))
	assert.Equal(t, fixed, p.ID)
}

func TestPhotoObjectKey(t *testing.T) {
	owner := uuid.MustParse("11111111-1111-1111-1111-111111111111")
	photo := uuid.MustParse("22222222-2222-2222-2222-222222222222")
	assert.Equal(t, "photos/11111111-1111-1111-1111-111111111111/22222222-2222-2222-2222-222222222222", PhotoObjectKey(owner, photo))
}
