package main

import (
	"bytes"
	"context"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/handiism/tagcat/internal/audio"
	"github.com/handiism/tagcat/internal/model"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	a := newApp(&out, io.Discard)

	cmd := newRootCommand(a)
	cmd.SetArgs(append([]string{"--config", filepath.Join(t.TempDir(), "config.json")}, args...))
	err := cmd.ExecuteContext(context.Background())
	return out.String(), err
}

func writeTrack(t *testing.T, dir, name string, tags model.TagMapping) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, bytes.Repeat([]byte{0xff, 0xfb, 0x90, 0x64}, 64), 0o644))

	h, err := audio.Open(path)
	require.NoError(t, err)
	for _, n := range tags.Names() {
		h.Set(n, tags[n])
	}
	require.NoError(t, h.Save())
	require.NoError(t, h.Close())
	return path
}

func TestList(t *testing.T) {
	dir := t.TempDir()
	a := writeTrack(t, dir, "a.mp3", model.TagMapping{model.TagAlbum: {"Homogenic"}, model.TagTitle: {"Hunter"}})
	b := writeTrack(t, dir, "b.mp3", model.TagMapping{model.TagAlbum: {"Homogenic"}, model.TagTitle: {"Jóga"}})

	out, err := execute(t, "list", a, b)
	require.NoError(t, err)
	assert.Equal(t, "ALBUM: Homogenic\nTITLE: ~\n", out)
}

func TestListRecursiveAlias(t *testing.T) {
	dir := t.TempDir()
	writeTrack(t, dir, filepath.Join("cd1", "a.mp3"), model.TagMapping{model.TagAlbum: {"Homogenic"}})
	writeTrack(t, dir, filepath.Join("cd2", "b.mp3"), model.TagMapping{model.TagAlbum: {"Homogenic"}})

	tests := []struct {
		name string
		args []string
	}{
		{"short", []string{"-r", "ls", dir}},
		{"recursiv", []string{"--recursiv", "ls", dir}},
		{"recursive before command", []string{"--recursive", "ls", dir}},
		{"recursive after command", []string{"ls", "--recursive", dir}},
		{"recursiv after command", []string{"list", "--recursiv", dir}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := execute(t, tt.args...)
			require.NoError(t, err)
			assert.Equal(t, "ALBUM: Homogenic\n", out)
		})
	}
}

func TestListWithoutRecursionFindsNothing(t *testing.T) {
	dir := t.TempDir()
	writeTrack(t, dir, filepath.Join("cd1", "a.mp3"), model.TagMapping{model.TagAlbum: {"Homogenic"}})

	_, err := execute(t, "list", dir)
	assert.EqualError(t, err, "no audio files found")
}

func TestWriteOnlyChangedFlags(t *testing.T) {
	a := writeTrack(t, t.TempDir(), "a.mp3", model.TagMapping{model.TagArtist: {"Björk"}, model.TagTitle: {"Hunter"}})

	_, err := execute(t, "write", "--album", "Homogenic", "--genre", "Electronic", "--genre", "Pop", a)
	require.NoError(t, err)

	tags, err := audio.ReadTags(a)
	require.NoError(t, err)
	assert.Equal(t, model.TagMapping{
		model.TagArtist: {"Björk"},
		model.TagTitle:  {"Hunter"},
		model.TagAlbum:  {"Homogenic"},
		model.TagGenre:  {"Electronic", "Pop"},
	}, tags)
}

func TestWriteRequiresAFlag(t *testing.T) {
	a := writeTrack(t, t.TempDir(), "a.mp3", model.TagMapping{model.TagTitle: {"Hunter"}})

	_, err := execute(t, "wr", a)
	assert.Error(t, err)
}

func TestDeleteAndWipeout(t *testing.T) {
	a := writeTrack(t, t.TempDir(), "a.mp3", model.TagMapping{
		model.TagArtist: {"Björk"},
		model.TagTitle:  {"Hunter"},
		model.TagLabel:  {"One Little Indian"},
	})

	_, err := execute(t, "del", "--tag", "label", "-t", "TITLE", a)
	require.NoError(t, err)
	tags, err := audio.ReadTags(a)
	require.NoError(t, err)
	assert.Equal(t, model.TagMapping{model.TagArtist: {"Björk"}}, tags)

	_, err = execute(t, "wo", a)
	require.NoError(t, err)
	tags, err = audio.ReadTags(a)
	require.NoError(t, err)
	assert.Empty(t, tags)
}

func TestRenameDryRunAndApply(t *testing.T) {
	src := t.TempDir()
	root := t.TempDir()
	a := writeTrack(t, src, "a.mp3", model.TagMapping{
		model.TagArtist:      {"Björk"},
		model.TagAlbumArtist: {"Björk"},
		model.TagAlbum:       {"Homogenic"},
		model.TagTitle:       {"Hunter"},
		model.TagTrackNumber: {"1"},
	})
	want := filepath.Join(root, "bjoerk", "homogenic", "1-bjoerk-hunter.mp3")

	out, err := execute(t, "-v", "mv", "--dry-run", "--root", root, a)
	require.NoError(t, err)
	assert.Contains(t, out, want)
	assert.FileExists(t, a)

	_, err = execute(t, "rename", "--root", root, a)
	require.NoError(t, err)
	assert.FileExists(t, want)
	assert.NoFileExists(t, a)
}

func TestRenameFailureExitStatus(t *testing.T) {
	a := writeTrack(t, t.TempDir(), "a.mp3", model.TagMapping{model.TagTitle: {"Hunter"}})

	out, err := execute(t, "rename", "--root", t.TempDir(), a)
	assert.ErrorIs(t, err, errBatchFailed)
	assert.Contains(t, out, "1 failed")
}
