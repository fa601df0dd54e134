// Package campaign holds the aggregation and scoring engine for the
// energy-saving campaign: duty roster resolution, per-date status maps,
// cumulative score rankings, savings estimates, and the checklist session
// state machine. Everything here is a pure computation over already-fetched
// data; fetching and caching live in the repositories.
package campaign

import (
	"lightsout/internal/models"

	"github.com/shopspring/decimal"
)

// Per-device savings for one midday break, in kWh and kg CO2eq. These are the
// single source of truth: the dashboard rollup and the record exports must all
// go through Estimate so the numbers can never drift apart.
var (
	lightsEnergy   = decimal.RequireFromString("0.1")
	lightsCO2      = decimal.RequireFromString("0.05")
	computerEnergy = decimal.RequireFromString("0.2")
	computerCO2    = decimal.RequireFromString("0.1")
	airconEnergy   = decimal.RequireFromString("1.5")
	airconCO2      = decimal.RequireFromString("0.8")
	fanEnergy      = decimal.RequireFromString("0.1")
	fanCO2         = decimal.RequireFromString("0.05")
)

type Savings struct {
	EnergyKWh decimal.Decimal `json:"energyKWh"`
	CO2Kg     decimal.Decimal `json:"co2Kg"`
}

func (s Savings) Add(other Savings) Savings {
	return Savings{
		EnergyKWh: s.EnergyKWh.Add(other.EnergyKWh),
		CO2Kg:     s.CO2Kg.Add(other.CO2Kg),
	}
}

// Estimate maps a set of device states to an energy/CO2 delta. Contributions
// are independent and additive; a false state contributes zero.
func Estimate(d models.DeviceStates) Savings {
	s := Savings{EnergyKWh: decimal.Zero, CO2Kg: decimal.Zero}
	if d.Lights {
		s.EnergyKWh = s.EnergyKWh.Add(lightsEnergy)
		s.CO2Kg = s.CO2Kg.Add(lightsCO2)
	}
	if d.Computer {
		s.EnergyKWh = s.EnergyKWh.Add(computerEnergy)
		s.CO2Kg = s.CO2Kg.Add(computerCO2)
	}
	if d.Aircon {
		s.EnergyKWh = s.EnergyKWh.Add(airconEnergy)
		s.CO2Kg = s.CO2Kg.Add(airconCO2)
	}
	if d.Fan {
		s.EnergyKWh = s.EnergyKWh.Add(fanEnergy)
		s.CO2Kg = s.CO2Kg.Add(fanCO2)
	}
	return s
}

// SumSavings totals the estimate over every room status for a date.
func SumSavings(status map[RoomKey]RoomStatus) Savings {
	total := Savings{EnergyKWh: decimal.Zero, CO2Kg: decimal.Zero}
	for _, entry := range status {
		total = total.Add(Estimate(entry.DeviceStates))
	}
	return total
}
