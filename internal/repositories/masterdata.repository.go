package repositories

import (
	"context"

	"lightsout/internal/constants"
	"lightsout/internal/database"
	. "lightsout/internal/models"

	logger "github.com/Bparsons0904/goLogger"
	"golang.org/x/sync/errgroup"
)

// MasterData is the single payload clients need before any checklist or
// dashboard interaction. Cached as one blob so the three reads stay
// consistent with each other.
type MasterData struct {
	Buildings  []Building    `json:"buildings"`
	Inspectors []Inspector   `json:"inspectors"`
	Roster     []RosterEntry `json:"roster"`
	Campaign   CampaignDates `json:"campaign"`
}

type CampaignDates struct {
	InspectionStart string `json:"inspectionStart"`
	CampaignStart   string `json:"campaignStart"`
	YearEnd         string `json:"yearEnd"`
}

type MasterDataRepository interface {
	Get(ctx context.Context) (*MasterData, error)
}

type masterDataRepository struct {
	db         database.DB
	buildings  BuildingRepository
	inspectors InspectorRepository
	roster     RosterRepository
	log        logger.Logger
}

func NewMasterDataRepository(
	db database.DB,
	buildings BuildingRepository,
	inspectors InspectorRepository,
	roster RosterRepository,
) MasterDataRepository {
	return &masterDataRepository{
		db:         db,
		buildings:  buildings,
		inspectors: inspectors,
		roster:     roster,
		log:        logger.New("masterDataRepository"),
	}
}

// Get serves the cached blob when fresh, otherwise fans out the three reads
// concurrently. Any failing read fails the whole fetch, a partial master-data
// payload is worse than an error.
func (r *masterDataRepository) Get(ctx context.Context) (*MasterData, error) {
	log := r.log.Function("Get")

	var cached MasterData
	found, err := r.db.Cache.MasterData.Get(ctx, constants.MasterDataCacheKey, &cached)
	if err != nil {
		log.Er("failed to read master data cache", err)
	}
	if found {
		return &cached, nil
	}

	data := MasterData{
		Campaign: CampaignDates{
			InspectionStart: constants.InspectionStartDate,
			CampaignStart:   constants.CampaignStartDate,
			YearEnd:         constants.CampaignYearEnd,
		},
	}

	group, groupCtx := errgroup.WithContext(ctx)

	group.Go(func() error {
		buildings, err := r.buildings.List(groupCtx)
		if err != nil {
			return err
		}
		data.Buildings = buildings
		return nil
	})

	group.Go(func() error {
		inspectors, err := r.inspectors.List(groupCtx)
		if err != nil {
			return err
		}
		data.Inspectors = inspectors
		return nil
	})

	group.Go(func() error {
		roster, err := r.roster.List(groupCtx)
		if err != nil {
			return err
		}
		data.Roster = roster
		return nil
	})

	if err := group.Wait(); err != nil {
		return nil, log.Err("failed to load master data", err)
	}

	if err := r.db.Cache.MasterData.Set(ctx, constants.MasterDataCacheKey, data, constants.DataCacheTTL); err != nil {
		log.Er("failed to cache master data", err)
	}

	return &data, nil
}
