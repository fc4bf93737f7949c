package model

// NodeStatus is a point-in-time view of a node's sync state.
type NodeStatus struct {
	Head         uint64 `json:"head"`
	Peers        uint64 `json:"peers"`
	Syncing      bool   `json:"syncing"`
	CurrentBlock uint64 `json:"current_block,omitempty"`
	HighestBlock uint64 `json:"highest_block,omitempty"`
	// Snap sync counters, zero when the node does not report them.
	SyncedAccounts  uint64 `json:"synced_accounts,omitempty"`
	SyncedStorage   uint64 `json:"synced_storage,omitempty"`
	SyncedBytecodes uint64 `json:"synced_bytecodes,omitempty"`
	HealedTrienodes uint64 `json:"healed_trienodes,omitempty"`
}

// HeaderProgress returns header sync progress in percent.
func (s NodeStatus) HeaderProgress() float64 {
	if !s.Syncing {
		return 100
	}
	if s.HighestBlock == 0 {
		return 0
	}
	return float64(s.CurrentBlock) / float64(s.HighestBlock) * 100
}
