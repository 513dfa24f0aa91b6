package git

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	gogit "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// testRepo wraps a temporary repository with commit helpers.
type testRepo struct {
	t    *testing.T
	dir  string
	repo *gogit.Repository
}

func initRepo(t *testing.T) *testRepo {
	t.Helper()
	dir := t.TempDir()

	repo, err := gogit.PlainInit(dir, false)
	require.NoError(t, err)

	return &testRepo{t: t, dir: dir, repo: repo}
}

func (r *testRepo) write(relPath, content string) {
	r.t.Helper()
	path := filepath.Join(r.dir, filepath.FromSlash(relPath))
	require.NoError(r.t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(r.t, os.WriteFile(path, []byte(content), 0o644))
}

func (r *testRepo) commit(message string, relPaths ...string) {
	r.t.Helper()
	wt, err := r.repo.Worktree()
	require.NoError(r.t, err)

	for _, p := range relPaths {
		_, err := wt.Add(filepath.FromSlash(p))
		require.NoError(r.t, err)
	}

	_, err = wt.Commit(message, &gogit.CommitOptions{
		Author: &object.Signature{
			Name:  "test",
			Email: "test@example.com",
			When:  time.Now(),
		},
	})
	require.NoError(r.t, err)
}

func (r *testRepo) checkoutNew(branch string) {
	r.t.Helper()
	wt, err := r.repo.Worktree()
	require.NoError(r.t, err)

	err = wt.Checkout(&gogit.CheckoutOptions{
		Branch: plumbing.NewBranchReferenceName(branch),
		Create: true,
	})
	require.NoError(r.t, err)
}

func TestRepoRoot(t *testing.T) {
	r := initRepo(t)
	r.write("prdoc/.gitkeep", "")
	r.commit("init", "prdoc/.gitkeep")

	root, err := RepoRoot(filepath.Join(r.dir, "prdoc"))
	require.NoError(t, err)

	// Roots may differ by symlink resolution (e.g. /tmp vs /private/tmp).
	expected, err := filepath.EvalSymlinks(r.dir)
	require.NoError(t, err)
	actual, err := filepath.EvalSymlinks(root)
	require.NoError(t, err)
	assert.Equal(t, expected, actual)
}

func TestRepoRoot_NotARepository(t *testing.T) {
	_, err := RepoRoot(t.TempDir())
	assert.Error(t, err)
}

func TestIsRepository(t *testing.T) {
	r := initRepo(t)
	assert.True(t, IsRepository(r.dir))
	assert.False(t, IsRepository(t.TempDir()))
}

func TestChangedRecordFiles(t *testing.T) {
	r := initRepo(t)
	r.write("prdoc/pr_1.prdoc", "title: base\ncrates: []\n")
	r.write("README.md", "readme")
	r.commit("base commit", "prdoc/pr_1.prdoc", "README.md")

	r.checkoutNew("feature")
	r.write("prdoc/pr_2.prdoc", "title: feature\ncrates: []\n")
	r.write("README.md", "readme updated")
	r.commit("feature commit", "prdoc/pr_2.prdoc", "README.md")

	files, err := ChangedRecordFiles(r.dir, "master", "prdoc", "*.prdoc")
	require.NoError(t, err)

	// Only the record added on the branch; README and the base record are out.
	assert.Equal(t, []string{"prdoc/pr_2.prdoc"}, files)
}

func TestChangedRecordFiles_IgnoresBaseOnlyCommits(t *testing.T) {
	r := initRepo(t)
	r.write("prdoc/pr_1.prdoc", "title: base\ncrates: []\n")
	r.commit("base commit", "prdoc/pr_1.prdoc")

	r.checkoutNew("feature")
	r.write("prdoc/pr_2.prdoc", "title: feature\ncrates: []\n")
	r.commit("feature commit", "prdoc/pr_2.prdoc")

	// Advance master past the branch point.
	wt, err := r.repo.Worktree()
	require.NoError(t, err)
	require.NoError(t, wt.Checkout(&gogit.CheckoutOptions{
		Branch: plumbing.NewBranchReferenceName("master"),
	}))
	r.write("prdoc/pr_3.prdoc", "title: later on master\ncrates: []\n")
	r.commit("master moves on", "prdoc/pr_3.prdoc")

	require.NoError(t, wt.Checkout(&gogit.CheckoutOptions{
		Branch: plumbing.NewBranchReferenceName("feature"),
	}))

	files, err := ChangedRecordFiles(r.dir, "master", "prdoc", "*.prdoc")
	require.NoError(t, err)

	// Diff is against the merge base, so pr_3 on master is not reported.
	assert.Equal(t, []string{"prdoc/pr_2.prdoc"}, files)
}

func TestChangedRecordFiles_ExcludesDeletions(t *testing.T) {
	r := initRepo(t)
	r.write("prdoc/pr_1.prdoc", "title: base\ncrates: []\n")
	r.write("prdoc/pr_2.prdoc", "title: doomed\ncrates: []\n")
	r.commit("base commit", "prdoc/pr_1.prdoc", "prdoc/pr_2.prdoc")

	r.checkoutNew("feature")
	wt, err := r.repo.Worktree()
	require.NoError(t, err)
	_, err = wt.Remove("prdoc/pr_2.prdoc")
	require.NoError(t, err)
	r.write("prdoc/pr_1.prdoc", "title: base, edited\ncrates: []\n")
	r.commit("edit and delete", "prdoc/pr_1.prdoc")

	files, err := ChangedRecordFiles(r.dir, "master", "prdoc", "*.prdoc")
	require.NoError(t, err)

	// Modified files are reported; deleted ones have nothing to validate.
	assert.Equal(t, []string{"prdoc/pr_1.prdoc"}, files)
}

func TestChangedRecordFiles_UnknownBranch(t *testing.T) {
	r := initRepo(t)
	r.write("prdoc/pr_1.prdoc", "title: base\ncrates: []\n")
	r.commit("base commit", "prdoc/pr_1.prdoc")

	_, err := ChangedRecordFiles(r.dir, "no-such-branch", "prdoc", "*.prdoc")
	assert.Error(t, err)
}
