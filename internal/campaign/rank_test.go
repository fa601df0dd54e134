package campaign_test

import (
	"testing"

	"lightsout/internal/campaign"
	"lightsout/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func rankFixture() []models.InspectionRecord {
	return []models.InspectionRecord{
		makeRecord("2026-03-02", "building-1", "Building 1", "b1-101", "101",
			models.DeviceStates{Lights: true, Computer: true, Aircon: true, Fan: true}),
		makeRecord("2026-03-03", "building-1", "Building 1", "b1-101", "101",
			models.DeviceStates{Lights: true, Computer: true}),
		makeRecord("2026-03-02", "building-1", "Building 1", "b1-102", "102",
			models.DeviceStates{Lights: true}),
		makeRecord("2026-03-02", "building-3", "Building 3", "b3-301", "301",
			models.DeviceStates{Lights: true, Computer: true, Aircon: true, Fan: true}),
	}
}

func TestRank_GroupsAndSorts(t *testing.T) {
	entries := campaign.Rank(rankFixture())

	require.Len(t, entries, 3)
	assert.Equal(t, "101", entries[0].Room)
	assert.Equal(t, 6, entries[0].TotalScore)
	assert.Equal(t, 2, entries[0].TotalChecks)
	assert.Equal(t, 1, entries[0].TotalPassed)

	assert.Equal(t, "301", entries[1].Room)
	assert.Equal(t, 4, entries[1].TotalScore)

	assert.Equal(t, "102", entries[2].Room)
	assert.Equal(t, 1, entries[2].TotalScore)
}

func TestRank_TotalScorePreserved(t *testing.T) {
	records := rankFixture()

	recordSum := 0
	for _, record := range records {
		recordSum += record.Score
	}

	rankSum := 0
	for _, entry := range campaign.Rank(records) {
		rankSum += entry.TotalScore
	}

	assert.Equal(t, recordSum, rankSum)
}

func TestRank_TieBreaksAlphabetically(t *testing.T) {
	records := []models.InspectionRecord{
		makeRecord("2026-03-02", "building-3", "Building 3", "b3-301", "301",
			models.DeviceStates{Lights: true, Computer: true}),
		makeRecord("2026-03-02", "building-1", "Building 1", "b1-102", "102",
			models.DeviceStates{Lights: true, Computer: true}),
		makeRecord("2026-03-02", "building-1", "Building 1", "b1-101", "101",
			models.DeviceStates{Lights: true, Computer: true}),
	}

	entries := campaign.Rank(records)

	require.Len(t, entries, 3)
	assert.Equal(t, "Building 1", entries[0].Building)
	assert.Equal(t, "101", entries[0].Room)
	assert.Equal(t, "Building 1", entries[1].Building)
	assert.Equal(t, "102", entries[1].Room)
	assert.Equal(t, "Building 3", entries[2].Building)
}

func TestRank_EmptyInput(t *testing.T) {
	assert.Empty(t, campaign.Rank(nil))
}

func TestPassRate(t *testing.T) {
	tests := []struct {
		name     string
		entry    campaign.RankEntry
		expected int
	}{
		{"no checks", campaign.RankEntry{}, 0},
		{"all passed", campaign.RankEntry{TotalChecks: 4, TotalPassed: 4}, 100},
		{"one of three", campaign.RankEntry{TotalChecks: 3, TotalPassed: 1}, 33},
		{"two of three", campaign.RankEntry{TotalChecks: 3, TotalPassed: 2}, 67},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.entry.PassRate())
		})
	}
}
