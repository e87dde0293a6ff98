package git

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func initRepo(t *testing.T) string {
	t.Helper()
	root, err := filepath.EvalSymlinks(t.TempDir())
	require.NoError(t, err)

	repo, err := git.PlainInit(root, false)
	require.NoError(t, err)

	_, err = repo.CreateRemote(&config.RemoteConfig{
		Name: "origin",
		URLs: []string{"https://github.com/example/shop.git"},
	})
	require.NoError(t, err)
	return root
}

func TestCollectRepositoryMetadataFromSubfolder(t *testing.T) {
	root := initRepo(t)
	sub := filepath.Join(root, "src", "Web")
	require.NoError(t, os.MkdirAll(sub, 0o755))

	md, err := CollectRepositoryMetadata(sub)
	require.NoError(t, err)

	assert.Equal(t, root, md.RepoRootFolder)
	assert.Equal(t, "src/Web", md.Subfolder)
	require.NotNil(t, md.RepositoryFullName)
	assert.Equal(t, "https://github.com/example/shop", *md.RepositoryFullName)
	// no commits yet, so HEAD does not resolve
	assert.Nil(t, md.CommitHash)
}

func TestCollectRepositoryMetadataErrors(t *testing.T) {
	_, err := CollectRepositoryMetadata("")
	assert.True(t, errors.Is(err, ErrSourceFolderNotSet))
}

func TestRepositoryRoot(t *testing.T) {
	root := initRepo(t)
	sub := filepath.Join(root, "app")
	require.NoError(t, os.MkdirAll(sub, 0o755))

	assert.Equal(t, root, RepositoryRoot(sub, nil))
	assert.Equal(t, root, RepositoryRoot(root, nil))
}
