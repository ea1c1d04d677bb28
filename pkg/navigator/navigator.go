// Package navigator tracks where the user is: a stack of folders below a
// registered root, plus at most one stashed listing while a virtual group
// is open. It does no I/O.
package navigator

import (
	"errors"

	"github.com/filetug/foldertug/pkg/listing"
)

var (
	ErrNotUnderRoot          = errors.New("path is not under a registered root")
	ErrAlreadyInVirtualGroup = errors.New("already in a virtual group")
	ErrNotInVirtualGroup     = errors.New("not in a virtual group")
	ErrNoSuchGroup           = errors.New("no such group")
)

type stash struct {
	group   string
	listing listing.Listing
}

// Navigator is not safe for concurrent use.
type Navigator struct {
	stack []string
	stash *stash
}

func New() *Navigator {
	return &Navigator{}
}

// Reset returns to the root view.
func (n *Navigator) Reset() {
	n.stack = nil
	n.stash = nil
}

// Push makes path the current folder unless it already is.
// Leaving a virtual group this way discards its stash.
func (n *Navigator) Push(path string) bool {
	n.stash = nil
	if top, ok := n.Current(); ok && top == path {
		return false
	}
	n.stack = append(n.stack, path)
	return true
}

// Pop drops the current folder and returns the new one.
// ok is false when the stack became empty, i.e. back at the root view.
func (n *Navigator) Pop() (current string, ok bool) {
	n.stash = nil
	if len(n.stack) > 0 {
		n.stack = n.stack[:len(n.stack)-1]
	}
	return n.Current()
}

// Current returns the top of the stack.
func (n *Navigator) Current() (string, bool) {
	if len(n.stack) == 0 {
		return "", false
	}
	return n.stack[len(n.stack)-1], true
}

func (n *Navigator) Depth() int {
	return len(n.stack)
}

func (n *Navigator) IsRootView() bool {
	return len(n.stack) == 0
}

// CanGoBack reports whether there is a parent folder on the stack.
func (n *Navigator) CanGoBack() bool {
	return len(n.stack) >= 2
}

// Stack returns a copy of the folder stack, bottom first.
func (n *Navigator) Stack() []string {
	return append([]string(nil), n.stack...)
}

// EnterVirtual stashes the listing being shown and marks group as open.
func (n *Navigator) EnterVirtual(group string, current listing.Listing) error {
	if n.stash != nil {
		return ErrAlreadyInVirtualGroup
	}
	n.stash = &stash{group: group, listing: current.Clone()}
	return nil
}

// ExitVirtual returns the stashed listing and clears it.
func (n *Navigator) ExitVirtual() (listing.Listing, error) {
	if n.stash == nil {
		return listing.Listing{}, ErrNotInVirtualGroup
	}
	stashed := n.stash.listing
	n.stash = nil
	return stashed, nil
}

func (n *Navigator) InVirtual() bool {
	return n.stash != nil
}

// VirtualGroup names the open group, or "".
func (n *Navigator) VirtualGroup() string {
	if n.stash == nil {
		return ""
	}
	return n.stash.group
}
