package domain

import "time"

// Revision is the latest revision of a page as returned by the document store.
type Revision struct {
	Title     string
	RevID     int64
	Timestamp time.Time
	User      string
	Content   string
	// Redirect is set when the store flags the page as a redirect.
	Redirect bool
}

// Edit is a write request for a single page.
type Edit struct {
	Title   string
	Content string
	Summary string
	// BaseRevID is the revision the new content was computed from. The store rejects the edit
	// with ErrEditConflict when the page moved past it. Zero disables conflict detection.
	BaseRevID int64
	// BaseTimestamp accompanies BaseRevID for stores that detect conflicts by timestamp.
	BaseTimestamp time.Time
	// Create allows the edit to create a missing page.
	Create bool
}

// ProtectionType is the action restricted by a protection entry.
type ProtectionType string

// Protection types.
const (
	ProtectEdit   ProtectionType = "edit"
	ProtectMove   ProtectionType = "move"
	ProtectUpload ProtectionType = "upload"
	ProtectCreate ProtectionType = "create"
)

// ProtectionLevel is the group allowed to perform a protected action, ordered from the
// weakest to the strongest tier.
type ProtectionLevel int

// Protection levels.
const (
	LevelNone ProtectionLevel = iota
	LevelAutoconfirmed
	// LevelExtended is extended semi-protection, granted to autopatrolled users.
	LevelExtended
	LevelSysop
)

// ParseProtectionLevel maps a wiki protection level name to a ProtectionLevel.
func ParseProtectionLevel(name string) ProtectionLevel {
	switch name {
	case "autoconfirmed":
		return LevelAutoconfirmed
	case "autopatrolled", "editextendedsemiprotected", "extendedconfirmed":
		return LevelExtended
	case "sysop":
		return LevelSysop
	default:
		return LevelNone
	}
}

// String returns the wiki name of the level.
func (l ProtectionLevel) String() string {
	switch l {
	case LevelAutoconfirmed:
		return "autoconfirmed"
	case LevelExtended:
		return "autopatrolled"
	case LevelSysop:
		return "sysop"
	default:
		return ""
	}
}

// Protection is one protection entry of a page. A zero Expiry means the protection is indefinite.
type Protection struct {
	Type   ProtectionType
	Level  ProtectionLevel
	Expiry time.Time
}

// ProtectionSafetyMarginDays is the minimum remaining lifetime of a stylesheet protection.
const ProtectionSafetyMarginDays = 3

// EventType is the kind of change reported by the change feed.
type EventType string

// Event types.
const (
	EventEdit   EventType = "edit"
	EventNew    EventType = "new"
	EventMove   EventType = "move"
	EventDelete EventType = "delete"
	EventLog    EventType = "log"
)

// ChangeEvent is one entry of the change feed.
type ChangeEvent struct {
	ID        int64
	Type      EventType
	Title     string
	NewTitle  string // destination of a move
	User      string
	Timestamp time.Time
}

// Titles returns the titles affected by the event.
func (e ChangeEvent) Titles() []string {
	if e.NewTitle != "" {
		return []string{e.Title, e.NewTitle}
	}
	return []string{e.Title}
}

// FeedRequest addresses a position in the change feed. A non-empty Token takes precedence
// over Since. An empty token with a zero Since returns no events and a token at the head of
// the feed.
type FeedRequest struct {
	Token string
	Since time.Time
}

// FeedPage is the result of a change feed fetch.
type FeedPage struct {
	Events    []ChangeEvent
	NextToken string
}
