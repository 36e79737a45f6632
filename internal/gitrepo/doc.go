// Package gitrepo answers the questions the rename workflow asks about the
// repository before it changes anything: where the worktree root is, which
// branch (or detached commit) HEAD points at, and which remotes exist.
//
// Read-only discovery of the repository root uses go-git; everything else is
// delegated to the git executable through execshell.
package gitrepo
