package constants

// Campaign milestones, surfaced to clients through the master-data payload.
const (
	InspectionStartDate = "2026-02-23"
	CampaignStartDate   = "2026-03-01"
	CampaignYearEnd     = "2026-12-31"
)
