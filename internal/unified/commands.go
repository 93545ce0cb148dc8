package unified

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/blackwell-systems/optibridge/internal/backend"
	"github.com/blackwell-systems/optibridge/internal/ingest"
)

// Backend calls run as tea.Cmds off the event loop. Each completion
// message carries the sequence token its request was issued under, so
// the workflow machine and history manager can discard stale responses.

func processCmd(client *backend.Client, token uint64, cand ingest.Candidate) tea.Cmd {
	return func() tea.Msg {
		var img *backend.ProcessedImage
		var err error
		if cand.Source == ingest.SourceClipboard {
			img, err = client.ProcessFromClipboard()
		} else {
			img, err = client.ProcessFromPath(cand.Path)
		}
		if img != nil && img.OriginalName == "" {
			img.OriginalName = cand.DisplayName
		}
		return processDoneMsg{token: token, img: img, err: err}
	}
}

func uploadCmd(client *backend.Client, token uint64, tempID string, provider backend.Provider) tea.Cmd {
	return func() tea.Msg {
		res, err := client.Upload(tempID, provider)
		return uploadDoneMsg{token: token, res: res, err: err}
	}
}

func loadHistoryCmd(client *backend.Client, token uint64) tea.Cmd {
	return func() tea.Msg {
		items, err := client.History()
		return historyLoadedMsg{token: token, items: items, err: err}
	}
}

func deleteCmd(client *backend.Client, item backend.HistoryItem) tea.Cmd {
	return func() tea.Msg {
		err := client.DeleteHistoryItem(item.ID, item.URL, item.Provider)
		return deleteDoneMsg{item: item, err: err}
	}
}

func loadConfigCmd(client *backend.Client) tea.Cmd {
	return func() tea.Msg {
		cfg, err := client.GetConfig()
		return configLoadedMsg{cfg: cfg, err: err}
	}
}

func saveConfigCmd(client *backend.Client, cfg *backend.Config) tea.Cmd {
	return func() tea.Msg {
		return configSavedMsg{err: client.SaveConfig(cfg)}
	}
}
