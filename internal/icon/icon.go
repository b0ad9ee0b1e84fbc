// Package icon is the static glyph catalog used by every renderer. Names are
// resolved to an ID once, when a document is normalized; renderers only ever
// see IDs.
package icon

import (
	"strings"
	"unicode"
)

// ID identifies a glyph. The zero value is Unknown, drawn with the default glyph.
type ID int

const (
	Unknown ID = iota
	Activity
	Check
	Target
	Layers
	Users
	Settings
	Zap
	Shield
	Sparkles
	ChevronRight
	ArrowRight
	Star
	Clock
	Search
	TrendingUp
	Calendar
	Lightbulb
	Flag
	MessageSquare
	Globe

	numIDs
)

var names = [numIDs]string{
	Unknown:       "CircleDot",
	Activity:      "Activity",
	Check:         "Check",
	Target:        "Target",
	Layers:        "Layers",
	Users:         "Users",
	Settings:      "Settings",
	Zap:           "Zap",
	Shield:        "Shield",
	Sparkles:      "Sparkles",
	ChevronRight:  "ChevronRight",
	ArrowRight:    "ArrowRight",
	Star:          "Star",
	Clock:         "Clock",
	Search:        "Search",
	TrendingUp:    "TrendingUp",
	Calendar:      "Calendar",
	Lightbulb:     "Lightbulb",
	Flag:          "Flag",
	MessageSquare: "MessageSquare",
	Globe:         "Globe",
}

// String returns the catalog name. Unknown reports the default glyph's name.
func (id ID) String() string {
	if id < 0 || id >= numIDs {
		return names[Unknown]
	}
	return names[id]
}

// Known reports whether id names a catalog entry rather than the fallback.
func (id ID) Known() bool {
	return id > Unknown && id < numIDs
}

var aliases = map[string]ID{
	"pulse":        Activity,
	"heartbeat":    Activity,
	"checkcircle":  Check,
	"circlecheck":  Check,
	"checkmark":    Check,
	"done":         Check,
	"goal":         Target,
	"bullseye":     Target,
	"stack":        Layers,
	"user":         Users,
	"people":       Users,
	"team":         Users,
	"gear":         Settings,
	"cog":          Settings,
	"bolt":         Zap,
	"lightning":    Zap,
	"flash":        Zap,
	"lock":         Shield,
	"security":     Shield,
	"shieldcheck":  Shield,
	"sparkle":      Sparkles,
	"magic":        Sparkles,
	"chevron":      ChevronRight,
	"arrow":        ArrowRight,
	"next":         ArrowRight,
	"time":         Clock,
	"timer":        Clock,
	"magnifier":    Search,
	"find":         Search,
	"chart":        TrendingUp,
	"growth":       TrendingUp,
	"barchart":     TrendingUp,
	"linechart":    TrendingUp,
	"date":         Calendar,
	"schedule":     Calendar,
	"idea":         Lightbulb,
	"bulb":         Lightbulb,
	"milestone":    Flag,
	"chat":         MessageSquare,
	"message":      MessageSquare,
	"comment":      MessageSquare,
	"world":        Globe,
	"earth":        Globe,
}

var byKey map[string]ID

func init() {
	byKey = make(map[string]ID, int(numIDs)+len(aliases))
	for id := Activity; id < numIDs; id++ {
		byKey[key(names[id])] = id
	}
	for k, id := range aliases {
		byKey[k] = id
	}
}

// key folds case and drops separators so "trending-up", "trending_up" and
// "TrendingUp" collide.
func key(name string) string {
	var sb strings.Builder
	for _, r := range name {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			sb.WriteRune(unicode.ToLower(r))
		}
	}
	return sb.String()
}

// Resolve maps a free-text icon name to a catalog ID. Unresolvable names
// yield Unknown.
func Resolve(name string) ID {
	if id, ok := byKey[key(name)]; ok {
		return id
	}
	return Unknown
}

// Catalog lists every known icon in declaration order.
func Catalog() []ID {
	out := make([]ID, 0, int(numIDs)-1)
	for id := Activity; id < numIDs; id++ {
		out = append(out, id)
	}
	return out
}

// Names lists the catalog names of every known icon.
func Names() []string {
	ids := Catalog()
	out := make([]string, len(ids))
	for i, id := range ids {
		out[i] = id.String()
	}
	return out
}
