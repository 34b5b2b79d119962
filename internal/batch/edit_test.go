package batch

import (
	"bytes"
	"context"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/handiism/tagcat/internal/audio"
	"github.com/handiism/tagcat/internal/model"
)

func readTags(t *testing.T, path string) model.TagMapping {
	t.Helper()
	tags, err := audio.ReadTags(path)
	require.NoError(t, err)
	return tags
}

func TestWrite(t *testing.T) {
	runner, _, _ := newTestRunner(t)
	dir := t.TempDir()
	a := writeTrack(t, dir, "a.mp3", coreTags("Hunter", "1"))
	b := writeTrack(t, dir, "b.mp3", nil)

	summary, err := runner.Write(context.Background(), []string{a, b}, model.TagMapping{
		model.TagAlbum: {"Post"},
		model.TagLabel: {"One Little Indian"},
	}, nil)
	require.NoError(t, err)
	assert.Equal(t, 2, summary.Count(StatusOK))

	tags := readTags(t, a)
	assert.Equal(t, []string{"Post"}, tags[model.TagAlbum])
	assert.Equal(t, []string{"One Little Indian"}, tags[model.TagLabel])
	assert.Equal(t, []string{"Hunter"}, tags[model.TagTitle])

	assert.Equal(t, model.TagMapping{
		model.TagAlbum: {"Post"},
		model.TagLabel: {"One Little Indian"},
	}, readTags(t, b))
}

func TestWriteNothingSkips(t *testing.T) {
	runner, _, _ := newTestRunner(t)
	a := writeTrack(t, t.TempDir(), "a.mp3", coreTags("Hunter", "1"))

	summary, err := runner.Write(context.Background(), []string{a}, model.TagMapping{}, nil)
	require.NoError(t, err)
	assert.Equal(t, 1, summary.Count(StatusSkipped))
}

func TestWriteCover(t *testing.T) {
	runner, settings, _ := newTestRunner(t)
	settings.CoverArtMaxSize = 10
	dir := t.TempDir()
	a := writeTrack(t, dir, "a.mp3", coreTags("Hunter", "1"))

	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, image.NewRGBA(image.Rect(0, 0, 40, 20))))
	coverPath := filepath.Join(dir, "cover.png")
	require.NoError(t, os.WriteFile(coverPath, buf.Bytes(), 0o644))

	cover, err := runner.LoadCover(context.Background(), coverPath)
	require.NoError(t, err)
	assert.Equal(t, "image/jpeg", cover.MIME)

	summary, err := runner.Write(context.Background(), []string{a}, nil, cover)
	require.NoError(t, err)
	assert.Equal(t, 1, summary.Count(StatusOK))
}

func TestLoadCoverMissingFile(t *testing.T) {
	runner, _, _ := newTestRunner(t)

	_, err := runner.LoadCover(context.Background(), filepath.Join(t.TempDir(), "nope.png"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestDelete(t *testing.T) {
	runner, _, _ := newTestRunner(t)
	dir := t.TempDir()
	a := writeTrack(t, dir, "a.mp3", coreTags("Hunter", "1"))
	b := writeTrack(t, dir, "b.mp3", model.TagMapping{model.TagLabel: {"L"}})

	summary, err := runner.Delete(context.Background(), []string{a, b}, []string{"title", model.TagTrackNumber})
	require.NoError(t, err)

	require.Len(t, summary.Results, 2)
	assert.Equal(t, StatusOK, summary.Results[0].Status)
	assert.Equal(t, StatusSkipped, summary.Results[1].Status)

	tags := readTags(t, a)
	assert.False(t, tags.Has(model.TagTitle))
	assert.False(t, tags.Has(model.TagTrackNumber))
	assert.True(t, tags.Has(model.TagArtist))
}

func TestWipeout(t *testing.T) {
	runner, _, _ := newTestRunner(t)
	a := writeTrack(t, t.TempDir(), "a.mp3", coreTags("Hunter", "1"))

	summary, err := runner.Wipeout(context.Background(), []string{a})
	require.NoError(t, err)
	assert.Equal(t, 1, summary.Count(StatusOK))
	assert.Empty(t, readTags(t, a))
}

func TestClear(t *testing.T) {
	runner, settings, _ := newTestRunner(t)
	settings.CleanupStripParentheses = true
	dir := t.TempDir()

	a := writeTrack(t, dir, "a.mp3", model.TagMapping{
		model.TagArtist:  {"  Björk   Guðmundsdóttir ", "Other"},
		model.TagTitle:   {"Jóga (Radio Edit)"},
		model.TagComment: {"ripped by somebody"},
		"ENCODER":        {"LAME"},
		model.TagLabel:   {"One Little Indian"},
	})
	clean := writeTrack(t, dir, "b.mp3", model.TagMapping{model.TagTitle: {"Jóga"}})

	summary, err := runner.Clear(context.Background(), []string{a, clean})
	require.NoError(t, err)
	require.Len(t, summary.Results, 2)
	assert.Equal(t, StatusOK, summary.Results[0].Status)
	assert.Equal(t, StatusSkipped, summary.Results[1].Status)

	assert.Equal(t, model.TagMapping{
		model.TagArtist: {"Björk Guðmundsdóttir"},
		model.TagTitle:  {"Jóga"},
		model.TagLabel:  {"One Little Indian"},
	}, readTags(t, a))
}

func TestEditFailuresDoNotStopBatch(t *testing.T) {
	runner, _, rec := newTestRunner(t)
	dir := t.TempDir()
	broken := filepath.Join(dir, "broken.flac")
	require.NoError(t, os.WriteFile(broken, []byte("fLaC"), 0o644))
	a := writeTrack(t, dir, "a.mp3", nil)

	summary, err := runner.Write(context.Background(), []string{broken, a}, model.TagMapping{model.TagBPM: {"120"}}, nil)
	require.NoError(t, err)

	assert.True(t, summary.Failed())
	assert.ErrorIs(t, summary.Err(), model.ErrCodecRead)
	assert.Equal(t, StatusOK, summary.Results[1].Status)
	assert.Equal(t, 1, rec.count(LevelError))
	assert.Equal(t, []string{"120"}, readTags(t, a)[model.TagBPM])
}

func TestEditCancelled(t *testing.T) {
	runner, _, _ := newTestRunner(t)
	a := writeTrack(t, t.TempDir(), "a.mp3", nil)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	summary, err := runner.Wipeout(ctx, []string{a})
	assert.ErrorIs(t, err, context.Canceled)
	assert.Empty(t, summary.Results)
}
