package fsjson

import (
	"fmt"
	"path/filepath"
)

// Layout derives every on-disk path from the data root. The naming scheme is
// shared with older tooling that reads the same files, so it must not change.
type Layout struct {
	root string
}

func NewLayout(dataDir string) Layout {
	if dataDir == "" {
		dataDir = "."
	}
	return Layout{root: dataDir}
}

func (l Layout) Root() string {
	return l.root
}

func (l Layout) BootstrapPath() string {
	return filepath.Join(l.root, "bootstrap-static.json")
}

func (l Layout) GamePath() string {
	return filepath.Join(l.root, "game.json")
}

func (l Layout) GlobalDir() string {
	return filepath.Join(l.root, "global")
}

func (l Layout) LivePath(gw int) string {
	return filepath.Join(l.GlobalDir(), fmt.Sprintf("gw_%d.json", gw))
}

func (l Layout) LeagueDir(leagueID string) string {
	return filepath.Join(l.root, leagueID+"_data")
}

func (l Layout) DetailsPath(leagueID string) string {
	return filepath.Join(l.LeagueDir(leagueID), fmt.Sprintf("league-%s-details.json", leagueID))
}

func (l Layout) ElementStatusPath(leagueID string) string {
	return filepath.Join(l.LeagueDir(leagueID), fmt.Sprintf("league-%s-element-status.json", leagueID))
}

func (l Layout) TransactionsPath(leagueID string) string {
	return filepath.Join(l.LeagueDir(leagueID), fmt.Sprintf("league-%s-transactions.json", leagueID))
}

func (l Layout) TradesPath(leagueID string) string {
	return filepath.Join(l.LeagueDir(leagueID), fmt.Sprintf("league-%s-trades.json", leagueID))
}

func (l Layout) TeamDir(leagueID string, teamID int64) string {
	return filepath.Join(l.LeagueDir(leagueID), fmt.Sprintf("%d", teamID))
}

func (l Layout) PicksPath(leagueID string, teamID int64, gw int) string {
	return filepath.Join(l.TeamDir(leagueID, teamID), fmt.Sprintf("gw_%d_complete.json", gw))
}

func (l Layout) AdjustedPath(leagueID string, teamID int64, gw int) string {
	return filepath.Join(l.TeamDir(leagueID, teamID), fmt.Sprintf("gw_%d_adjusted.json", gw))
}

func (l Layout) WaiverTrackerPath(leagueID string) string {
	return filepath.Join(l.LeagueDir(leagueID), "waiver_tracker.json")
}

func (l Layout) TradeTrackerPath(leagueID string) string {
	return filepath.Join(l.LeagueDir(leagueID), "trade_tracker.json")
}

func (l Layout) SentUpdatesPath(leagueID string) string {
	return filepath.Join(l.LeagueDir(leagueID), "sent_updates.json")
}

func (l Layout) DiscordConfigPath(leagueID string) string {
	return filepath.Join(l.LeagueDir(leagueID), "discord_config.json")
}

func (l Layout) ProgressionHTMLPath(leagueID string) string {
	return filepath.Join(l.LeagueDir(leagueID), "league_positions_progression.html")
}

func (l Layout) TradePerformanceHTMLPath(leagueID string) string {
	return filepath.Join(l.LeagueDir(leagueID), "trade_performance.html")
}
