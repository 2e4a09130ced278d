package models

// SnapshotVersion is bumped whenever the on-disk layout changes shape.
const SnapshotVersion = 1

// Snapshot is the persistence envelope for all collections. It is
// serialized to JSON, compressed and written atomically by the file
// manager, and restored on boot.
type Snapshot struct {
	Version int                     `json:"version"`
	Stats   map[string]*UserStat    `json:"stats"`
	Plans   map[string]*Plan        `json:"plans"`
	Content map[string]*ContentItem `json:"content"`
	Users   map[string]*User        `json:"users"`
}

// Stores bundles the four collections the engagement engine works on.
type Stores struct {
	Stats   *UserStatStore
	Plans   *PlanStore
	Content *ContentStore
	Users   *UserStore
}

func NewStores() *Stores {
	return &Stores{
		Stats:   NewUserStatStore(),
		Plans:   NewPlanStore(),
		Content: NewContentStore(),
		Users:   NewUserStore(),
	}
}

// Export dumps every collection into a versioned snapshot.
func (s *Stores) Export() *Snapshot {
	return &Snapshot{
		Version: SnapshotVersion,
		Stats:   s.Stats.Export(),
		Plans:   s.Plans.Export(),
		Content: s.Content.Export(),
		Users:   s.Users.Export(),
	}
}

// Load replaces every collection from a snapshot. Nil maps load as empty
// collections so partially-written older files still restore.
func (s *Stores) Load(snap *Snapshot) {
	s.Stats.Load(snap.Stats)
	s.Plans.Load(snap.Plans)
	s.Content.Load(snap.Content)
	s.Users.Load(snap.Users)
}
