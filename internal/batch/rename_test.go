package batch

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	ioutils "github.com/handiism/tagcat/internal/io"
	"github.com/handiism/tagcat/internal/model"
)

func TestRename(t *testing.T) {
	runner, settings, _ := newTestRunner(t)
	src := t.TempDir()
	root := settings.MusicRoot

	hunter := writeTrack(t, src, "x.mp3", coreTags("Hunter", "1/10"))
	joga := coreTags("Jóga", "2")
	joga.Set(model.TagDiscNumber, "1")
	jogaPath := writeTrack(t, src, "y.mp3", joga)
	untagged := writeTrack(t, src, "z.mp3", model.TagMapping{model.TagTitle: {"?"}})

	summary, err := runner.Rename(context.Background(), []string{hunter, jogaPath, untagged}, root, false)
	require.NoError(t, err)
	require.Len(t, summary.Results, 3)

	byPath := make(map[string]Result)
	for _, r := range summary.Results {
		byPath[r.Path] = r
	}

	wantHunter := filepath.Join(root, "bjoerk", "homogenic", "1-bjoerk-hunter.mp3")
	assert.Equal(t, StatusOK, byPath[hunter].Status)
	assert.Equal(t, wantHunter, byPath[hunter].Destination)
	assert.FileExists(t, wantHunter)
	assert.NoFileExists(t, hunter)

	wantJoga := filepath.Join(root, "bjoerk", "homogenic", "1", "2-bjoerk-joga.mp3")
	assert.Equal(t, StatusOK, byPath[jogaPath].Status)
	assert.FileExists(t, wantJoga)

	assert.Equal(t, StatusFailed, byPath[untagged].Status)
	assert.ErrorIs(t, byPath[untagged].Err, model.ErrMissingTags)
	assert.FileExists(t, untagged)
}

func TestRenameDryRun(t *testing.T) {
	runner, settings, rec := newTestRunner(t)
	src := writeTrack(t, t.TempDir(), "x.mp3", coreTags("Hunter", "1"))

	summary, err := runner.Rename(context.Background(), []string{src}, settings.MusicRoot, true)
	require.NoError(t, err)

	require.Len(t, summary.Results, 1)
	assert.Equal(t, filepath.Join(settings.MusicRoot, "bjoerk", "homogenic", "1-bjoerk-hunter.mp3"), summary.Results[0].Destination)
	assert.FileExists(t, src)
	assert.NoDirExists(t, filepath.Join(settings.MusicRoot, "bjoerk"))
	assert.Equal(t, 1, rec.count(LevelInfo))
}

func TestRenameCollisionLeavesBothFiles(t *testing.T) {
	runner, settings, _ := newTestRunner(t)
	src := t.TempDir()

	first := writeTrack(t, src, "a.mp3", coreTags("Hunter", "1"))
	second := writeTrack(t, src, "b.mp3", coreTags("Hunter", "1"))

	summary, err := runner.Rename(context.Background(), []string{first, second}, settings.MusicRoot, false)
	require.NoError(t, err)

	require.Len(t, summary.Results, 2)
	byPath := make(map[string]Result)
	for _, r := range summary.Results {
		byPath[r.Path] = r
	}
	assert.Equal(t, StatusOK, byPath[first].Status)
	assert.Equal(t, StatusFailed, byPath[second].Status)
	assert.ErrorIs(t, byPath[second].Err, model.ErrDestinationExists)
	assert.FileExists(t, second)
	assert.FileExists(t, byPath[first].Destination)
}

func TestRenameDryRunReportsCollisions(t *testing.T) {
	runner, settings, rec := newTestRunner(t)
	src := t.TempDir()
	root := settings.MusicRoot

	first := writeTrack(t, src, "a.mp3", coreTags("Hunter", "1"))
	second := writeTrack(t, src, "b.mp3", coreTags("Hunter", "1"))
	blocked := writeTrack(t, src, "c.mp3", coreTags("Jóga", "2"))

	occupant := filepath.Join(root, "bjoerk", "homogenic", "2-bjoerk-joga.mp3")
	require.NoError(t, os.MkdirAll(filepath.Dir(occupant), 0o755))
	require.NoError(t, os.WriteFile(occupant, []byte("existing"), 0o644))

	summary, err := runner.Rename(context.Background(), []string{first, second, blocked}, root, true)
	require.NoError(t, err)

	require.Len(t, summary.Results, 3)
	byPath := make(map[string]Result)
	for _, r := range summary.Results {
		byPath[r.Path] = r
	}

	assert.Equal(t, StatusOK, byPath[first].Status)
	for _, path := range []string{second, blocked} {
		assert.Equal(t, StatusFailed, byPath[path].Status, path)
		assert.ErrorIs(t, byPath[path].Err, model.ErrDestinationExists, path)
		var collision *ioutils.CollisionError
		assert.ErrorAs(t, byPath[path].Err, &collision, path)
	}
	assert.Equal(t, occupant, byPath[blocked].Destination)

	assert.Equal(t, 1, rec.count(LevelInfo))
	assert.Equal(t, 2, rec.count(LevelError))
	assert.FileExists(t, first)
	assert.FileExists(t, second)
	assert.FileExists(t, blocked)
	assert.NoFileExists(t, filepath.Join(root, "bjoerk", "homogenic", "1-bjoerk-hunter.mp3"))

	data, err := os.ReadFile(occupant)
	require.NoError(t, err)
	assert.Equal(t, "existing", string(data))
}

func TestApplyRenameDestinationTakenAfterPlan(t *testing.T) {
	runner, settings, _ := newTestRunner(t)
	src := writeTrack(t, t.TempDir(), "x.mp3", coreTags("Hunter", "1"))

	plan, err := runner.PlanRename(context.Background(), []string{src}, settings.MusicRoot)
	require.NoError(t, err)
	require.Len(t, plan.Moves, 1)

	dst := plan.Moves[0].Destination.Path()
	require.NoError(t, os.MkdirAll(filepath.Dir(dst), 0o755))
	require.NoError(t, os.WriteFile(dst, []byte("existing"), 0o644))

	summary, err := runner.ApplyRename(context.Background(), plan)
	require.NoError(t, err)

	require.Len(t, summary.Results, 1)
	assert.Equal(t, StatusFailed, summary.Results[0].Status)
	assert.ErrorIs(t, summary.Results[0].Err, model.ErrDestinationExists)
	assert.FileExists(t, src)
}

func TestRenameAlreadyInPlace(t *testing.T) {
	runner, settings, _ := newTestRunner(t)
	root := settings.MusicRoot
	dir := filepath.Join(root, "bjoerk", "homogenic")
	placed := writeTrack(t, dir, "1-bjoerk-hunter.mp3", coreTags("Hunter", "1"))

	summary, err := runner.Rename(context.Background(), []string{placed}, root, false)
	require.NoError(t, err)

	require.Len(t, summary.Results, 1)
	assert.Equal(t, StatusSkipped, summary.Results[0].Status)
	assert.ErrorIs(t, summary.Results[0].Err, ioutils.ErrAlreadyInPlace)
	assert.FileExists(t, placed)
}

func TestRenameWritesPlaylist(t *testing.T) {
	runner, settings, _ := newTestRunner(t)
	settings.CreatePlaylist = true
	src := t.TempDir()

	a := writeTrack(t, src, "a.mp3", coreTags("Hunter", "1"))
	b := writeTrack(t, src, "b.mp3", coreTags("Jóga", "2"))

	_, err := runner.Rename(context.Background(), []string{a, b}, settings.MusicRoot, false)
	require.NoError(t, err)

	data, err := os.ReadFile(filepath.Join(settings.MusicRoot, "bjoerk", "homogenic", "homogenic.m3u"))
	require.NoError(t, err)
	assert.Equal(t, "#EXTM3U\n"+
		"#EXTINF:-1,Björk - Hunter\n1-bjoerk-hunter.mp3\n"+
		"#EXTINF:-1,Björk - Jóga\n2-bjoerk-joga.mp3\n", string(data))
}

func TestPlanRenameRejectsEmptyRoot(t *testing.T) {
	runner, _, _ := newTestRunner(t)

	_, err := runner.PlanRename(context.Background(), nil, "")
	assert.ErrorIs(t, err, model.ErrInvalidArgument)
}

func TestApplyRenameCancelled(t *testing.T) {
	runner, settings, _ := newTestRunner(t)
	src := writeTrack(t, t.TempDir(), "x.mp3", coreTags("Hunter", "1"))

	plan, err := runner.PlanRename(context.Background(), []string{src}, settings.MusicRoot)
	require.NoError(t, err)
	require.Len(t, plan.Moves, 1)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err = runner.ApplyRename(ctx, plan)
	assert.ErrorIs(t, err, context.Canceled)
	assert.FileExists(t, src)
}
