package paint

// MaterialSnapshot holds the properties of every material slot of a mesh,
// in slot order, at capture time.
type MaterialSnapshot []MaterialProperties

// SnapshotStore maps avatars to their baseline material snapshot.
type SnapshotStore struct {
	byID map[ObjectID]MaterialSnapshot
}

func NewSnapshotStore() *SnapshotStore {
	return &SnapshotStore{byID: make(map[ObjectID]MaterialSnapshot)}
}

// Capture stores a copy of slots for id. The first capture wins: it
// returns false and keeps the stored snapshot when id is already known.
func (s *SnapshotStore) Capture(id ObjectID, slots []MaterialProperties) bool {
	if s == nil {
		return false
	}
	if _, ok := s.byID[id]; ok {
		return false
	}
	if s.byID == nil {
		s.byID = make(map[ObjectID]MaterialSnapshot)
	}
	snap := make(MaterialSnapshot, len(slots))
	copy(snap, slots)
	s.byID[id] = snap
	return true
}

// Lookup returns a copy of the snapshot for id.
func (s *SnapshotStore) Lookup(id ObjectID) (MaterialSnapshot, bool) {
	if s == nil {
		return nil, false
	}
	snap, ok := s.byID[id]
	if !ok {
		return nil, false
	}
	out := make(MaterialSnapshot, len(snap))
	copy(out, snap)
	return out, true
}

// Evict forgets the snapshot for id.
func (s *SnapshotStore) Evict(id ObjectID) bool {
	if s == nil {
		return false
	}
	if _, ok := s.byID[id]; !ok {
		return false
	}
	delete(s.byID, id)
	return true
}

func (s *SnapshotStore) Len() int {
	if s == nil {
		return 0
	}
	return len(s.byID)
}

// captureMesh reads the current properties of every slot on m.
func captureMesh(m Mesh) []MaterialProperties {
	mats := m.Materials()
	slots := make([]MaterialProperties, 0, len(mats))
	for _, mat := range mats {
		slots = append(slots, mat.Properties())
	}
	return slots
}
