// Package exporter persists report documents. The XLSX sink is the
// primary output since the reports are handed to chairmen as
// spreadsheets; the CSV sink exists for quick diffing and scripting.
package exporter
