package bough

import (
	"github.com/sirupsen/logrus"
)

// globalDebug mirrors the most recently set Scene debug flag so that node
// operations (which lack a Scene pointer) can check it cheaply. Only valid
// with a single Scene; multiple Scenes with differing debug modes will
// reflect whichever called SetDebugMode last.
var globalDebug bool

// logFrameStats writes per-frame timing and counters at debug level.
func logFrameStats(st FrameStats, bs BatchStats) {
	logger.WithFields(logrus.Fields{
		"update":        st.UpdateTime,
		"render":        st.RenderTime,
		"total":         st.UpdateTime + st.RenderTime,
		"nodes_updated": st.NodesUpdated,
		"nodes_drawn":   st.NodesDrawn,
		"effect_scopes": st.EffectScopes,
		"max_effects":   st.MaxEffects,
		"batches":       bs.Batches,
		"quads":         bs.Quads,
	}).Debug("frame")
}

// debugCheckTreeDepth warns if tree depth exceeds the threshold.
const debugMaxTreeDepth = 32

func debugCheckTreeDepth(n *Node) {
	depth := 0
	for p := n; p != nil; p = p.parent {
		depth++
	}
	if depth > debugMaxTreeDepth {
		logger.WithFields(logrus.Fields{
			"node":  n.Name,
			"depth": depth,
			"limit": debugMaxTreeDepth,
		}).Warn("tree depth exceeds threshold")
	}
}

// debugCheckChildCount warns if a node has more than 1000 children.
const debugMaxChildCount = 1000

func debugCheckChildCount(n *Node) {
	if len(n.children) > debugMaxChildCount {
		logger.WithFields(logrus.Fields{
			"node":     n.Name,
			"children": len(n.children),
			"limit":    debugMaxChildCount,
		}).Warn("child count exceeds threshold")
	}
}
