package player

// State is everything a run mutates. It is owned by one session and is not
// safe for concurrent use.
type State struct {
	Stats *Stats

	Inventory       []string
	ActiveMysteries []string // first entry is the current mystery
	MysteryProgress map[string]int
	EventQueue      []string
}

func NewState(maxStamina, maxReason int) *State {
	return &State{
		Stats:           NewStats(maxStamina, maxReason),
		MysteryProgress: make(map[string]int),
	}
}

// Reset returns the state to a fresh run. Subscribers on Stats stay
// registered.
func (s *State) Reset() {
	s.Stats.Reset()
	s.Inventory = nil
	s.ActiveMysteries = nil
	s.MysteryProgress = make(map[string]int)
	s.EventQueue = nil
}

func (s *State) AddItem(id string) {
	s.Inventory = append(s.Inventory, id)
}

// QueueEvent appends a chained event to be drained after the current one
// closes.
func (s *State) QueueEvent(id string) {
	s.EventQueue = append(s.EventQueue, id)
}

// NextEvent pops the oldest queued event id.
func (s *State) NextEvent() (string, bool) {
	if len(s.EventQueue) == 0 {
		return "", false
	}
	id := s.EventQueue[0]
	s.EventQueue = s.EventQueue[1:]
	return id, true
}

// BeginMystery activates a mystery. The first one begun stays current.
func (s *State) BeginMystery(id string) {
	for _, m := range s.ActiveMysteries {
		if m == id {
			return
		}
	}
	s.ActiveMysteries = append(s.ActiveMysteries, id)
}

// CurrentMystery returns the first active mystery, if any.
func (s *State) CurrentMystery() (string, bool) {
	if len(s.ActiveMysteries) == 0 {
		return "", false
	}
	return s.ActiveMysteries[0], true
}

// AdvanceMystery adds amount to the current mystery's progress. It does
// nothing while no mystery is active.
func (s *State) AdvanceMystery(amount int) {
	current, ok := s.CurrentMystery()
	if !ok {
		return
	}
	s.MysteryProgress[current] += amount
}
