// Package importer reads the community pro-settings spreadsheet and turns a
// single car's row into a profile.
package importer

import (
	"fmt"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/protunedev/protune/internal/profile"
)

// validCategories are the vehicle sheets worth scanning; everything else in
// the workbook is welcome pages and notes.
var validCategories = []string{
	"STREET TIER 1", "STREET TIER 2", "RACING", "DRIFT",
	"RALLY", "RALLY RAID", "HYPERCAR", "DRAGSTER", "ALPHA",
	"DEMOLITION DERBY", "MONSTER TRUCK", "MOTO",
}

// settingColumns maps column header fragments to canonical setting names.
var settingColumns = map[string]string{
	"Final Drive":         "final_drive",
	"Front Power Distrib": "front_power_distrib",
	"Front Brake Balance": "front_brake_balance",
	"Brake Power":         "brake_power",
	"Grip Front":          "grip_front",
	"Grip Rear":           "grip_rear",
	"Load Front":          "load_front",
	"Load Rear":           "load_rear",
	"Spring Front":        "spring_front",
	"Spring Rear":         "spring_rear",
	"Compression Front":   "compression_front",
	"Compression Rear":    "compression_rear",
	"Rebound Front":       "rebound_front",
	"Rebound Rear":        "rebound_rear",
	"ARB Front":           "arb_front",
	"ARB Rear":            "arb_rear",
	"Camber Front":        "camber_front",
	"Camber Rear":         "camber_rear",
}

// manufacturers are the known name prefixes that mark a car row.
var manufacturers = map[string]bool{
	"BMW": true, "AUDI": true, "MERCEDES": true, "PORSCHE": true, "FORD": true,
	"CHEVROLET": true, "DODGE": true, "VOLKSWAGEN": true, "MAZDA": true,
	"NISSAN": true, "HONDA": true, "PLYMOUTH": true, "MITSUBISHI": true,
	"PROTO": true, "JAGUAR": true, "ALFA ROMEO": true, "DELOREAN": true,
	"BUICK": true, "CADILLAC": true, "FERRARI": true, "HUMMER": true,
	"JEEP": true, "MASERATI": true, "MINI": true, "PONTIAC": true,
	"RENAULT": true, "SHELBY": true, "TOYOTA": true, "ABARTH": true,
	"ASTON MARTIN": true, "BUGATTI": true, "CHRYSLER": true, "LANCIA": true,
	"LAND ROVER": true,
}

// skipValues are cell contents that are never car names or settings.
var skipValues = map[string]bool{
	"nan": true, "NaN": true, "--": true, "": true,
	"WELCOME": true, "SETTINGS": true, "CAR NAME": true,
}

// Workbook is the parsed spreadsheet: category -> manufacturer -> model ->
// setting values.
type Workbook struct {
	data map[string]map[string]map[string]map[string]float64
}

// Open reads and parses a spreadsheet file. Only .xlsx is supported.
func Open(path string) (*Workbook, error) {
	if !strings.EqualFold(filepath.Ext(path), ".xlsx") {
		return nil, fmt.Errorf("settings file must be .xlsx format: %s", path)
	}

	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open spreadsheet: %w", err)
	}
	defer f.Close() //nolint:errcheck

	wb := &Workbook{data: make(map[string]map[string]map[string]map[string]float64)}
	sheets := f.GetSheetList()
	for _, category := range validCategories {
		if !contains(sheets, category) {
			continue
		}
		rows, err := f.GetRows(category)
		if err != nil {
			return nil, fmt.Errorf("failed to read sheet %s: %w", category, err)
		}
		cars := parseSheet(rows)
		if len(cars) > 0 {
			wb.data[category] = cars
		}
	}

	if len(wb.data) == 0 {
		return nil, fmt.Errorf("no valid vehicle data found in %s", filepath.Base(path))
	}
	return wb, nil
}

// parseSheet walks a category sheet. A row cell starting with a known
// manufacturer opens a new car; setting-column cells on that and following
// rows accumulate into it until the next car name.
func parseSheet(rows [][]string) map[string]map[string]map[string]float64 {
	out := make(map[string]map[string]map[string]float64)
	if len(rows) == 0 {
		return out
	}

	// Resolve setting columns from the header row.
	colSetting := make(map[int]string)
	for i, header := range rows[0] {
		for fragment, name := range settingColumns {
			if strings.Contains(header, fragment) {
				colSetting[i] = name
				break
			}
		}
	}

	flush := func(car string, settings map[string]float64) {
		if car == "" || len(settings) == 0 {
			return
		}
		mfr := manufacturerOf(car)
		if out[mfr] == nil {
			out[mfr] = make(map[string]map[string]float64)
		}
		out[mfr][car] = settings
	}

	var currentCar string
	var currentSettings map[string]float64

	for _, row := range rows[1:] {
		for col, cell := range row {
			value := strings.TrimSpace(cell)
			if skipValues[value] {
				continue
			}

			if mfr := manufacturerOf(value); mfr != "" {
				// Manufacturer grouping headers contain "/"; not cars.
				if !strings.Contains(value, "/") {
					flush(currentCar, currentSettings)
					currentCar = value
					currentSettings = make(map[string]float64)
				}
				continue
			}

			name, ok := colSetting[col]
			if !ok || currentCar == "" {
				continue
			}
			if v, err := strconv.ParseFloat(value, 64); err == nil {
				currentSettings[name] = v
			}
		}
	}
	flush(currentCar, currentSettings)

	return out
}

func manufacturerOf(name string) string {
	for mfr := range manufacturers {
		if strings.HasPrefix(name, mfr) {
			return mfr
		}
	}
	return ""
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}

// Categories lists the categories present in the workbook, sorted.
func (wb *Workbook) Categories() []string {
	out := make([]string, 0, len(wb.data))
	for c := range wb.data {
		out = append(out, c)
	}
	sort.Strings(out)
	return out
}

// Cars lists the cars in a category grouped by manufacturer, both sorted.
func (wb *Workbook) Cars(category string) (map[string][]string, error) {
	cat, ok := wb.data[category]
	if !ok {
		return nil, fmt.Errorf("category %q not found", category)
	}
	out := make(map[string][]string, len(cat))
	for mfr, models := range cat {
		for model := range models {
			out[mfr] = append(out[mfr], model)
		}
		sort.Strings(out[mfr])
	}
	return out, nil
}

// Setup builds a profile for one car. Menu entries the spreadsheet has no
// value for are recorded as skipped.
func (wb *Workbook) Setup(category, manufacturer, model string) (*profile.Profile, error) {
	cat, ok := wb.data[category]
	if !ok {
		return nil, fmt.Errorf("category %q not found", category)
	}
	mfr, ok := cat[manufacturer]
	if !ok {
		return nil, fmt.Errorf("manufacturer %q not found in category %q", manufacturer, category)
	}
	values, ok := mfr[model]
	if !ok {
		return nil, fmt.Errorf("model %q not found for manufacturer %q in category %q", model, manufacturer, category)
	}

	p := profile.New(values)
	p.Category = category
	p.Manufacturer = manufacturer
	p.Model = model
	return p, nil
}
