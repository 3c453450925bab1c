package engine

import (
	"github.com/tatianab/dread/internal/models"
	"github.com/tatianab/dread/internal/player"
)

// Apply performs one consequence against the state. It never fails;
// unknown kinds are ignored. Triggered events are only queued.
func Apply(c models.Consequence, st *player.State) {
	switch c.Kind {
	case models.ConsequenceStatChange:
		st.Stats.Modify(c.Stat, c.Value)
	case models.ConsequenceItemGain:
		st.AddItem(c.ItemID)
	case models.ConsequenceTriggerEvent:
		st.QueueEvent(c.NextEventID)
	case models.ConsequenceAdvanceMystery:
		st.AdvanceMystery(c.MysteryProgress)
	}
}
