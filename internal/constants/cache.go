package constants

import "time"

const (
	MasterDataCacheKey     = "master_data"   // Buildings, rooms, inspectors, roster as one blob
	RecordsByDatePrefix    = "records_date"  // Inspection records by date (CacheBuilder adds colon)
	ChecklistSessionPrefix = "checklist"     // Checklist session state by session ID
	DataCacheTTL           = 2 * time.Minute // Read-through TTL for master data and records
	SessionTTL             = 12 * time.Hour  // Sessions survive a working day, not longer
)
