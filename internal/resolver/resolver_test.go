package resolver

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bl4ck0w1/seclynx/internal/platform"
	"github.com/bl4ck0w1/seclynx/pkg/models"
)

const testGUID = "a1b2c3d4-e5f6-7890-abcd-ef0123456789"

type fakeDirectory struct {
	searchResults []models.Application
	searchErr     error
	app           *models.Application
	getErr        error

	searchCalls int
	getCalls    int
}

func (d *fakeDirectory) SearchApplications(ctx context.Context, name string, page, size int) ([]models.Application, error) {
	d.searchCalls++
	return d.searchResults, d.searchErr
}

func (d *fakeDirectory) GetApplication(ctx context.Context, guid string) (*models.Application, error) {
	d.getCalls++
	return d.app, d.getErr
}

func TestResolveGUID(t *testing.T) {
	dir := &fakeDirectory{app: &models.Application{GUID: testGUID, Name: "Metamail"}}
	r := New(dir, nil)

	res, err := r.Resolve(context.Background(), testGUID)
	require.NoError(t, err)

	assert.Equal(t, testGUID, res.GUID)
	assert.Equal(t, "Metamail", res.Name)
	assert.False(t, res.WasNameLookup)
	assert.True(t, res.ExactMatch)
	assert.Equal(t, 1, dir.getCalls)
	assert.Equal(t, 0, dir.searchCalls, "GUID-shaped identifiers skip the name search")
}

func TestResolveGUIDNotFound(t *testing.T) {
	dir := &fakeDirectory{getErr: platform.ErrNotFound}
	r := New(dir, nil)

	_, err := r.Resolve(context.Background(), testGUID)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestResolveGUIDBackendError(t *testing.T) {
	dir := &fakeDirectory{getErr: errors.New("backend down")}
	r := New(dir, nil)

	_, err := r.Resolve(context.Background(), testGUID)
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrNotFound, "transport failures are not a miss")
}

func TestResolveNameExactMatch(t *testing.T) {
	dir := &fakeDirectory{searchResults: []models.Application{
		{GUID: "guid-bar", Name: "FooBar"},
		{GUID: "guid-foo", Name: "Foo"},
	}}
	r := New(dir, nil)

	res, err := r.Resolve(context.Background(), "foo")
	require.NoError(t, err)

	assert.Equal(t, "guid-foo", res.GUID, "case-insensitive exact match wins over ranking order")
	assert.True(t, res.WasNameLookup)
	assert.True(t, res.ExactMatch)
}

func TestResolveNameFallsBackToFirstResult(t *testing.T) {
	dir := &fakeDirectory{searchResults: []models.Application{
		{GUID: "guid-bar", Name: "FooBar"},
		{GUID: "guid-baz", Name: "FooBaz"},
	}}
	r := New(dir, nil)

	res, err := r.Resolve(context.Background(), "foo")
	require.NoError(t, err)

	assert.Equal(t, "guid-bar", res.GUID)
	assert.Equal(t, "FooBar", res.Name)
	assert.True(t, res.WasNameLookup)
	assert.False(t, res.ExactMatch)
}

func TestResolveNameNoResults(t *testing.T) {
	dir := &fakeDirectory{}
	r := New(dir, nil)

	_, err := r.Resolve(context.Background(), "nope")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestResolveEmptyIdentifier(t *testing.T) {
	r := New(&fakeDirectory{}, nil)

	for _, identifier := range []string{"", "   "} {
		_, err := r.Resolve(context.Background(), identifier)
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrNotFound)
	}
}

func TestResolveNonGUIDShapesUseNameSearch(t *testing.T) {
	tests := []string{
		"Metamail",
		"a1b2c3d4",                                   // too short
		"a1b2c3d4-e5f6-7890-abcd-ef0123456789-extra", // too long
		"g1b2c3d4-e5f6-7890-abcd-ef0123456789",       // non-hex
	}

	for _, identifier := range tests {
		dir := &fakeDirectory{searchResults: []models.Application{{GUID: "guid", Name: identifier}}}
		r := New(dir, nil)

		res, err := r.Resolve(context.Background(), identifier)
		require.NoError(t, err, identifier)
		assert.True(t, res.WasNameLookup, identifier)
		assert.Equal(t, 0, dir.getCalls, identifier)
	}
}
