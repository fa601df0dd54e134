package dashboardController

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"sort"
	"time"

	"lightsout/config"
	"lightsout/internal/campaign"
	"lightsout/internal/database"
	. "lightsout/internal/models"
	"lightsout/internal/repositories"
	"lightsout/internal/utils"

	logger "github.com/Bparsons0904/goLogger"
	"github.com/xuri/excelize/v2"
)

type DashboardController struct {
	masterDataRepo repositories.MasterDataRepository
	recordRepo     repositories.RecordRepository
	db             database.DB
	Config         config.Config
	log            logger.Logger
}

type RoomStatusRow struct {
	Building  string `json:"building"`
	Room      string `json:"room"`
	Inspector string `json:"inspector"`
	Lights     bool   `json:"lights"`
	Computer   bool   `json:"computer"`
	Aircon     bool   `json:"aircon"`
	Fan        bool   `json:"fan"`
	AllPassed  bool   `json:"allPassed"`
	Score      int    `json:"score"`
}

type SummaryResponse struct {
	Date              string          `json:"date"`
	DayName           string          `json:"dayName"`
	DateThai          string          `json:"dateThai"`
	Passed            int             `json:"passed"`
	Partial           int             `json:"partial"`
	Unchecked         int             `json:"unchecked"`
	TotalRooms        int             `json:"totalRooms"`
	CompletionPercent int             `json:"completionPercent"`
	TotalScore        int             `json:"totalScore"`
	EnergySavedKWh    string          `json:"energySavedKWh"`
	CO2SavedKg        string          `json:"co2SavedKg"`
	Rooms             []RoomStatusRow `json:"rooms"`
}

type RankingRow struct {
	Building    string `json:"building"`
	Room        string `json:"room"`
	TotalScore  int    `json:"totalScore"`
	TotalChecks int    `json:"totalChecks"`
	TotalPassed int    `json:"totalPassed"`
	PassRate    int    `json:"passRate"`
}

type RecordFilter struct {
	Date     string
	Building string
}

type RecordRow struct {
	Date           string `json:"date"`
	DayName        string `json:"dayName"`
	Inspector      string `json:"inspector"`
	BuildingID     string `json:"buildingId"`
	BuildingName   string `json:"buildingName"`
	RoomID         string `json:"roomId"`
	RoomName       string `json:"roomName"`
	Lights         bool   `json:"lights"`
	Computer       bool   `json:"computer"`
	Aircon         bool   `json:"aircon"`
	Fan            bool   `json:"fan"`
	Score          int    `json:"score"`
	Status         string `json:"status"`
	EnergySavedKWh string `json:"energySavedKWh"`
	CO2SavedKg     string `json:"co2SavedKg"`
	RecordedAt     string `json:"recordedAt"`
}

type DashboardControllerInterface interface {
	Summary(ctx context.Context, date string) (*SummaryResponse, error)
	Rankings(ctx context.Context) ([]RankingRow, error)
	Records(ctx context.Context, filter RecordFilter) ([]RecordRow, error)
	ExportCSV(ctx context.Context, filter RecordFilter) ([]byte, error)
	ExportXLSX(ctx context.Context, filter RecordFilter) ([]byte, error)
}

func New(
	repos repositories.Repository,
	config config.Config,
	db database.DB,
) DashboardControllerInterface {
	return &DashboardController{
		masterDataRepo: repos.MasterData,
		recordRepo:     repos.Record,
		db:             db,
		Config:         config,
		log:            logger.New("dashboardController"),
	}
}

// Summary aggregates one day of inspections. Store read failures degrade to
// zero state: the dashboard renders an empty day rather than an error page.
func (c *DashboardController) Summary(ctx context.Context, date string) (*SummaryResponse, error) {
	log := c.log.Function("Summary")

	day, err := utils.ParseDate(date)
	if err != nil {
		return nil, err
	}

	var buildings []Building
	if masterData, err := c.masterDataRepo.Get(ctx); err != nil {
		log.Er("master data unavailable, serving zero state", err, "date", date)
	} else {
		buildings = masterData.Buildings
	}

	records, err := c.recordRepo.ListForDate(ctx, date)
	if err != nil {
		log.Er("records unavailable, serving zero state", err, "date", date)
		records = nil
	}

	status := campaign.StatusFor(records, date)
	counts := campaign.CountsFor(buildings, status)
	savings := campaign.SumSavings(status)

	response := &SummaryResponse{
		Date:              date,
		DayName:           utils.ThaiDayName(day),
		DateThai:          utils.FormatDateThai(day),
		Passed:            counts.Passed,
		Partial:           counts.Partial,
		Unchecked:         counts.Unchecked,
		TotalRooms:        counts.TotalRooms,
		CompletionPercent: counts.CompletionPercent(),
		TotalScore:        campaign.TotalScore(status),
		EnergySavedKWh:    savings.EnergyKWh.StringFixed(1),
		CO2SavedKg:        savings.CO2Kg.StringFixed(1),
		Rooms:             statusRows(status),
	}

	return response, nil
}

func statusRows(status map[campaign.RoomKey]campaign.RoomStatus) []RoomStatusRow {
	rows := make([]RoomStatusRow, 0, len(status))
	for key, room := range status {
		rows = append(rows, RoomStatusRow{
			Building:  key.Building,
			Room:      key.Room,
			Inspector: room.Inspector,
			Lights:    room.Lights,
			Computer:  room.Computer,
			Aircon:    room.Aircon,
			Fan:       room.Fan,
			AllPassed: room.AllPassed,
			Score:     room.Score,
		})
	}
	sort.Slice(rows, func(i, j int) bool {
		if rows[i].Building != rows[j].Building {
			return rows[i].Building < rows[j].Building
		}
		return rows[i].Room < rows[j].Room
	})
	return rows
}

func (c *DashboardController) Rankings(ctx context.Context) ([]RankingRow, error) {
	log := c.log.Function("Rankings")

	records, err := c.recordRepo.ListAscending(ctx)
	if err != nil {
		log.Er("records unavailable, serving empty rankings", err)
		records = nil
	}

	entries := campaign.Rank(records)
	rows := make([]RankingRow, 0, len(entries))
	for _, entry := range entries {
		rows = append(rows, RankingRow{
			Building:    entry.Building,
			Room:        entry.Room,
			TotalScore:  entry.TotalScore,
			TotalChecks: entry.TotalChecks,
			TotalPassed: entry.TotalPassed,
			PassRate:    entry.PassRate(),
		})
	}

	return rows, nil
}

// Records lists persisted inspections for the sheet view, newest date first,
// building name breaking ties.
func (c *DashboardController) Records(ctx context.Context, filter RecordFilter) ([]RecordRow, error) {
	records, err := c.filteredRecords(ctx, filter)
	if err != nil {
		return nil, err
	}

	rows := make([]RecordRow, 0, len(records))
	for _, record := range records {
		savings := campaign.Estimate(record.DeviceStates)
		rows = append(rows, RecordRow{
			Date:           record.DateString(),
			DayName:        record.DayName,
			Inspector:      record.Inspector,
			BuildingID:     record.BuildingID,
			BuildingName:   record.BuildingName,
			RoomID:         record.RoomID,
			RoomName:       record.RoomName,
			Lights:         record.Lights,
			Computer:       record.Computer,
			Aircon:         record.Aircon,
			Fan:            record.Fan,
			Score:          record.Score,
			Status:         record.Status,
			EnergySavedKWh: savings.EnergyKWh.StringFixed(1),
			CO2SavedKg:     savings.CO2Kg.StringFixed(2),
			RecordedAt:     record.UpdatedAt.Format(time.DateTime),
		})
	}

	return rows, nil
}

func (c *DashboardController) filteredRecords(
	ctx context.Context,
	filter RecordFilter,
) ([]InspectionRecord, error) {
	log := c.log.Function("filteredRecords")

	records, err := c.recordRepo.ListAscending(ctx)
	if err != nil {
		return nil, log.Err("failed to load records", err)
	}

	filtered := make([]InspectionRecord, 0, len(records))
	for _, record := range records {
		if filter.Date != "" && record.DateString() != filter.Date {
			continue
		}
		if filter.Building != "" && record.BuildingID != filter.Building {
			continue
		}
		filtered = append(filtered, record)
	}

	sort.SliceStable(filtered, func(i, j int) bool {
		if filtered[i].DateString() != filtered[j].DateString() {
			return filtered[i].DateString() > filtered[j].DateString()
		}
		return filtered[i].BuildingName < filtered[j].BuildingName
	})

	return filtered, nil
}

// Export column headers, matching the report the campaign team circulates.
var exportHeaders = []string{
	"วันที่", "ผู้ตรวจ", "อาคาร", "ห้อง",
	"ปิดไฟ(ช่วงพักเที่ยง)", "ปิดคอม/หน้าจอ", "ปิดแอร์", "ปิดพัดลม",
	"สถานะ", "คะแนน", "ประหยัดไฟ (kWh)", "ลด CO2 (kg)", "เวลาบันทึก",
}

func passLabel(on bool) string {
	if on {
		return "ผ่าน"
	}
	return "ไม่ผ่าน"
}

func exportRow(record InspectionRecord) []string {
	savings := campaign.Estimate(record.DeviceStates)
	return []string{
		record.DateString(),
		record.Inspector,
		record.BuildingName,
		record.RoomName,
		passLabel(record.Lights),
		passLabel(record.Computer),
		passLabel(record.Aircon),
		passLabel(record.Fan),
		record.Status,
		fmt.Sprintf("%d", record.Score),
		savings.EnergyKWh.StringFixed(1),
		savings.CO2Kg.StringFixed(2),
		record.UpdatedAt.Format(time.DateTime),
	}
}

// ExportCSV renders the filtered records as UTF-8 CSV with a byte order mark
// so spreadsheet imports keep the Thai text intact.
func (c *DashboardController) ExportCSV(ctx context.Context, filter RecordFilter) ([]byte, error) {
	log := c.log.Function("ExportCSV")

	records, err := c.filteredRecords(ctx, filter)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	buf.WriteString("\uFEFF")

	writer := csv.NewWriter(&buf)
	if err := writer.Write(exportHeaders); err != nil {
		return nil, log.Err("failed to write csv header", err)
	}
	for _, record := range records {
		if err := writer.Write(exportRow(record)); err != nil {
			return nil, log.Err("failed to write csv row", err)
		}
	}
	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, log.Err("failed to flush csv", err)
	}

	return buf.Bytes(), nil
}

func (c *DashboardController) ExportXLSX(ctx context.Context, filter RecordFilter) ([]byte, error) {
	log := c.log.Function("ExportXLSX")

	records, err := c.filteredRecords(ctx, filter)
	if err != nil {
		return nil, err
	}

	file := excelize.NewFile()
	defer func() {
		if err := file.Close(); err != nil {
			log.Er("failed to close workbook", err)
		}
	}()

	const sheet = "Records"
	index, err := file.NewSheet(sheet)
	if err != nil {
		return nil, log.Err("failed to create sheet", err)
	}
	file.SetActiveSheet(index)
	if err := file.DeleteSheet("Sheet1"); err != nil {
		log.Er("failed to drop default sheet", err)
	}

	for col, header := range exportHeaders {
		cell, err := excelize.CoordinatesToCellName(col+1, 1)
		if err != nil {
			return nil, log.Err("failed to resolve header cell", err)
		}
		if err := file.SetCellValue(sheet, cell, header); err != nil {
			return nil, log.Err("failed to write header cell", err)
		}
	}

	for rowIdx, record := range records {
		for col, value := range exportRow(record) {
			cell, err := excelize.CoordinatesToCellName(col+1, rowIdx+2)
			if err != nil {
				return nil, log.Err("failed to resolve cell", err)
			}
			if err := file.SetCellValue(sheet, cell, value); err != nil {
				return nil, log.Err("failed to write cell", err)
			}
		}
	}

	var buf bytes.Buffer
	if err := file.Write(&buf); err != nil {
		return nil, log.Err("failed to serialize workbook", err)
	}

	return buf.Bytes(), nil
}
