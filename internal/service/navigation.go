package service

import (
	"strings"
	"sync"

	"papelog/internal/domain"
)

// anchorIndex answers whether an in-page hash belongs to the current
// document. The session implements it.
type anchorIndex interface {
	KnownAnchor(hash string) bool
}

// NavigationTracker decides when the back-to-top shortcut is visible. It
// mirrors in-page navigation: jumping to a block anchor, the reference list,
// the save area or any section heading shows the shortcut; navigating
// anywhere else, or using the shortcut, hides it.
type NavigationTracker struct {
	anchors anchorIndex
	logger  domain.Logger

	mu      sync.Mutex
	visible bool
}

func NewNavigationTracker(anchors anchorIndex, logger domain.Logger) *NavigationTracker {
	return &NavigationTracker{anchors: anchors, logger: logger}
}

// ApplyHash records a hash navigation and returns whether the shortcut is
// visible afterwards: a jump to a content target shows it, anything else
// hides it.
func (n *NavigationTracker) ApplyHash(hash string) bool {
	show := n.targetsContent(hash)
	n.mu.Lock()
	defer n.mu.Unlock()
	n.visible = show
	return n.visible
}

// GoBack consumes the shortcut: it hides it and reports whether it was
// visible, so the caller knows whether to jump.
func (n *NavigationTracker) GoBack() bool {
	n.mu.Lock()
	defer n.mu.Unlock()
	was := n.visible
	n.visible = false
	return was
}

// Visible reports the current shortcut state.
func (n *NavigationTracker) Visible() bool {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.visible
}

// Reset hides the shortcut, for a fresh document.
func (n *NavigationTracker) Reset() {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.visible = false
}

func (n *NavigationTracker) targetsContent(hash string) bool {
	if hash == "" || hash == "#" {
		return false
	}
	// Block anchors from the parser carry a "b" prefix.
	if strings.HasPrefix(hash, "#b") {
		return true
	}
	switch hash {
	case "#references_list_title", "#save_area":
		return true
	}
	return n.anchors.KnownAnchor(hash)
}
