// Package importer turns externally sourced register rows into client
// records. Rows arrive as column-name/value maps already decoded from
// whatever spreadsheet or CSV the facility keeps; this package only maps,
// validates, and backfills derived dates.
package importer

import (
	"strconv"
	"strings"
	"time"

	"github.com/caretrack/caretrack/internal/domain/adherence"
	"github.com/caretrack/caretrack/internal/domain/client"
)

// Row is one external register row, keyed by the source column names.
type Row map[string]string

// Column names recognized in import rows. Matching is case-insensitive on
// the trimmed header.
const (
	ColARTNumber       = "ART Number"
	ColName            = "Name"
	ColAge             = "Age"
	ColAddress         = "Address"
	ColContact         = "Contact"
	ColLastDrugPickup  = "Last Drug Pickup"
	ColLastVL          = "Last VL Collection"
	ColNextPharmacyDue = "Next Pharmacy Due"
	ColNextVLDue       = "Next VL Due"
)

// Warning flags a row-level data problem that does not stop the import.
type Warning struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

var dateLayouts = []string{"2006-01-02", "02/01/2006"}

// Reconcile maps one external row onto a client record. Explicit due dates
// in the row are used verbatim; otherwise due dates are derived from the
// event dates. Unparseable ages and dates become nil with a warning rather
// than failing the row, and a row missing both its ART number and its last
// pickup date is flagged incomplete but still produced. Imported clients
// always start Active, whatever the source register says.
func Reconcile(row Row) (*client.Client, []Warning) {
	var warnings []Warning
	get := lookup(row)

	c := &client.Client{
		Name:   get(ColName),
		Status: client.StatusActive,
	}
	if v := get(ColARTNumber); v != "" {
		c.ARTNumber = &v
	}
	if v := get(ColAddress); v != "" {
		c.Address = &v
	}
	if v := get(ColContact); v != "" {
		c.Contact = &v
	}
	if v := get(ColAge); v != "" {
		if age, err := strconv.Atoi(v); err == nil {
			c.Age = &age
		} else {
			warnings = append(warnings, Warning{Field: ColAge, Message: "unreadable age: " + v})
		}
	}

	c.LastDrugPickup = parseDate(get(ColLastDrugPickup), ColLastDrugPickup, &warnings)
	c.LastVLCollection = parseDate(get(ColLastVL), ColLastVL, &warnings)
	c.NextPharmacyDue = parseDate(get(ColNextPharmacyDue), ColNextPharmacyDue, &warnings)
	c.NextViralLoadDue = parseDate(get(ColNextVLDue), ColNextVLDue, &warnings)

	if c.NextPharmacyDue == nil {
		c.NextPharmacyDue = adherence.NextPharmacyDue(c.LastDrugPickup)
	}
	if c.NextViralLoadDue == nil {
		c.NextViralLoadDue = adherence.NextViralLoadDue(c.LastVLCollection)
	}

	if c.ARTNumber == nil && c.LastDrugPickup == nil {
		warnings = append(warnings, Warning{
			Field:   ColARTNumber,
			Message: "missing both program identifier and last pickup date; record is incomplete",
		})
	} else if c.ARTNumber == nil {
		warnings = append(warnings, Warning{Field: ColARTNumber, Message: "missing program identifier"})
	}

	return c, warnings
}

// lookup matches column names case-insensitively and ignores surrounding
// whitespace in both headers and values.
func lookup(row Row) func(string) string {
	norm := make(map[string]string, len(row))
	for k, v := range row {
		norm[strings.ToLower(strings.TrimSpace(k))] = strings.TrimSpace(v)
	}
	return func(col string) string {
		return norm[strings.ToLower(col)]
	}
}

func parseDate(v, col string, warnings *[]Warning) *time.Time {
	if v == "" {
		return nil
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, v); err == nil {
			return &t
		}
	}
	*warnings = append(*warnings, Warning{Field: col, Message: "unreadable date: " + v})
	return nil
}
