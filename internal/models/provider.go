package models

import "strconv"

// Provider represents a single healthcare provider row as loaded from the input spreadsheet.
type Provider struct {
	ID       *int64 `json:"id"`
	Province string `json:"province"`
	City     string `json:"city"`
	Name     string `json:"name"`
	Address  string `json:"address"`
}

// QueryText is the first-choice lookup text for a provider: name, address and city joined by ", ".
func (p Provider) QueryText() string {
	return p.Name + ", " + p.Address + ", " + p.City
}

// EnrichedRow is a provider augmented with the place lookup results. Unresolved fields stay empty.
type EnrichedRow struct {
	Provider

	// Working columns, dropped before the table is persisted.
	QueryText string `json:"alamat_parameter"`
	PlaceID   string `json:"place_id"`

	MapURL    string `json:"map_url"`
	Latitude  string `json:"latitude"`
	Longitude string `json:"longitude"`
	ImageURL  string `json:"image_url"`
}

// NewEnrichedRow starts an enriched row for p with every lookup field empty.
func NewEnrichedRow(p Provider) EnrichedRow {
	return EnrichedRow{Provider: p, QueryText: p.QueryText()}
}

// Column names shared by the spreadsheet snapshots and the list_rumah_sakit table.
const (
	ColumnID        = "id"
	ColumnProvince  = "province"
	ColumnCity      = "city"
	ColumnName      = "name"
	ColumnAddress   = "address"
	ColumnQueryText = "alamat_parameter"
	ColumnPlaceID   = "place_id"
	ColumnMapURL    = "map_url"
	ColumnLatitude  = "latitude"
	ColumnLongitude = "longitude"
	ColumnImageURL  = "image_url"
)

// InputColumns must all be present in the input spreadsheet header.
var InputColumns = []string{ColumnName, ColumnAddress, ColumnCity, ColumnProvince, ColumnID}

// SnapshotColumns is the shape of the intermediate snapshot, written before the working columns are dropped.
var SnapshotColumns = []string{
	ColumnID, ColumnProvince, ColumnCity, ColumnName, ColumnAddress,
	ColumnQueryText, ColumnPlaceID,
	ColumnMapURL, ColumnLatitude, ColumnLongitude, ColumnImageURL,
}

// TableColumns is the persisted shape, matching the list_rumah_sakit schema.
var TableColumns = []string{
	ColumnID, ColumnProvince, ColumnCity, ColumnName, ColumnAddress,
	ColumnMapURL, ColumnLatitude, ColumnLongitude, ColumnImageURL,
}

// Values projects the row onto columns. The id is returned as a nil interface when absent so that it maps to NULL.
func (r EnrichedRow) Values(columns []string) []any {
	values := make([]any, len(columns))
	for i, col := range columns {
		values[i] = r.value(col)
	}
	return values
}

func (r EnrichedRow) value(column string) any {
	switch column {
	case ColumnID:
		if r.ID == nil {
			return nil
		}
		return *r.ID
	case ColumnProvince:
		return r.Province
	case ColumnCity:
		return r.City
	case ColumnName:
		return r.Name
	case ColumnAddress:
		return r.Address
	case ColumnQueryText:
		return r.QueryText
	case ColumnPlaceID:
		return r.PlaceID
	case ColumnMapURL:
		return r.MapURL
	case ColumnLatitude:
		return r.Latitude
	case ColumnLongitude:
		return r.Longitude
	case ColumnImageURL:
		return r.ImageURL
	default:
		return nil
	}
}

// FormatCoordinate renders a coordinate in its shortest decimal form, e.g. -6.2.
func FormatCoordinate(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
