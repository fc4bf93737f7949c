package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/KAY53N/bsc-node/internal/model"
)

// WriteStatus renders a node status to w.
func WriteStatus(w io.Writer, status model.NodeStatus, format Format) error {
	if format == FormatJSON {
		return writeJSON(w, status)
	}

	lines := []string{
		fmt.Sprintf("Head:     %d", status.Head),
		fmt.Sprintf("Peers:    %d", status.Peers),
	}
	if !status.Syncing {
		lines = append(lines, "Sync:     synced")
	} else {
		lines = append(lines, fmt.Sprintf("Sync:     headers %.2f%% (%d / %d)",
			status.HeaderProgress(), status.CurrentBlock, status.HighestBlock))
		if status.SyncedAccounts > 0 || status.SyncedStorage > 0 || status.SyncedBytecodes > 0 {
			lines = append(lines, fmt.Sprintf("State:    %d accounts, %d slots, %d bytecodes",
				status.SyncedAccounts, status.SyncedStorage, status.SyncedBytecodes))
		}
		if status.HealedTrienodes > 0 {
			lines = append(lines, fmt.Sprintf("Healing:  %d trie nodes", status.HealedTrienodes))
		}
		lines = append(lines, "Note:     state reads may return no data until the node is synced")
	}

	_, err := io.WriteString(w, strings.Join(lines, "\n")+"\n")
	return err
}
