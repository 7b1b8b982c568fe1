package vdem

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// writePanelCSV writes a panel file with the given lines into a temp dir.
func writePanelCSV(t *testing.T, lines ...string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "panel.csv")
	if err := os.WriteFile(path, []byte(strings.Join(lines, "\n")+"\n"), 0644); err != nil {
		t.Fatalf("failed to write panel file: %v", err)
	}
	return path
}

func TestLoad_ProjectsRequiredColumns(t *testing.T) {
	path := writePanelCSV(t,
		"country_name,country_text_id,year,v2x_regime,v2elmulpar_ord,v2csreprss_ord,v2xcs_ccsi,extra_a,extra_b",
		"Freedonia,FRD,2001,1,2,3,0.41,x,y",
		"Freedonia,FRD,2002,2,3,4,0.62,x,y",
	)

	panel, err := NewLoader(path, nil).Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if panel.Shape.Rows != 2 || panel.Shape.Columns != 9 {
		t.Errorf("Shape: got %dx%d, want 2x9", panel.Shape.Rows, panel.Shape.Columns)
	}
	if len(panel.Records) != 2 {
		t.Fatalf("Records: got %d, want 2", len(panel.Records))
	}

	first := panel.Records[0]
	if first.CountryName != "Freedonia" || first.CountryCode != "FRD" || first.Year != 2001 {
		t.Errorf("first record identity: got %q %q %d", first.CountryName, first.CountryCode, first.Year)
	}
	if !first.RegimeOrdinal.Valid || first.RegimeOrdinal.Value != 1 {
		t.Errorf("regime: got %+v, want 1", first.RegimeOrdinal)
	}
	if !first.CivilSocietyIndex.Valid || first.CivilSocietyIndex.Value != 0.41 {
		t.Errorf("civil society index: got %+v, want 0.41", first.CivilSocietyIndex)
	}
}

func TestLoad_MissingValues(t *testing.T) {
	path := writePanelCSV(t,
		"country_name,country_text_id,year,v2x_regime,v2elmulpar_ord,v2csreprss_ord,v2xcs_ccsi",
		"Freedonia,FRD,2001,NA,,2,NA",
	)

	panel, err := NewLoader(path, nil).Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	record := panel.Records[0]
	if record.RegimeOrdinal.Valid {
		t.Error("regime NA: got valid, want missing")
	}
	if record.MultipartyOrdinal.Valid {
		t.Error("multiparty empty cell: got valid, want missing")
	}
	if !record.CSORepressionOrdinal.Valid || record.CSORepressionOrdinal.Value != 2 {
		t.Errorf("repression: got %+v, want 2", record.CSORepressionOrdinal)
	}
	if record.CivilSocietyIndex.Valid {
		t.Error("index NA: got valid, want missing")
	}
}

func TestLoad_FloatRenderedOrdinals(t *testing.T) {
	path := writePanelCSV(t,
		"country_name,country_text_id,year,v2x_regime,v2elmulpar_ord,v2csreprss_ord,v2xcs_ccsi",
		"Freedonia,FRD,2001,2.0,4.0,0.0,0.9",
	)

	panel, err := NewLoader(path, nil).Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	record := panel.Records[0]
	if record.RegimeOrdinal.Value != 2 || record.MultipartyOrdinal.Value != 4 || record.CSORepressionOrdinal.Value != 0 {
		t.Errorf("float ordinals: got %d %d %d, want 2 4 0",
			record.RegimeOrdinal.Value, record.MultipartyOrdinal.Value, record.CSORepressionOrdinal.Value)
	}
}

func TestLoad_SkipsUnkeyableRows(t *testing.T) {
	path := writePanelCSV(t,
		"country_name,country_text_id,year,v2x_regime,v2elmulpar_ord,v2csreprss_ord,v2xcs_ccsi",
		"Freedonia,FRD,not-a-year,1,1,1,0.5",
		"Sylvania,,2001,1,1,1,0.5",
		"Sylvania,SYL,2001,1,1,1,0.5",
	)

	panel, err := NewLoader(path, nil).Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if panel.Shape.Rows != 3 {
		t.Errorf("Shape.Rows: got %d, want 3 (skipped rows still count)", panel.Shape.Rows)
	}
	if panel.SkippedRows != 2 {
		t.Errorf("SkippedRows: got %d, want 2", panel.SkippedRows)
	}
	if len(panel.Records) != 1 {
		t.Errorf("Records: got %d, want 1", len(panel.Records))
	}
}

func TestLoad_MissingRequiredColumn(t *testing.T) {
	path := writePanelCSV(t,
		"country_name,country_text_id,year,v2elmulpar_ord",
		"Freedonia,FRD,2001,2",
	)

	panel, err := NewLoader(path, nil).Load()
	if err != nil {
		t.Fatalf("Load should not fail on missing columns (gates report them): %v", err)
	}

	if panel.Header.Occurrences(ColRegime) != 0 {
		t.Errorf("Occurrences(%s): got %d, want 0", ColRegime, panel.Header.Occurrences(ColRegime))
	}
	record := panel.Records[0]
	if record.RegimeOrdinal.Valid {
		t.Error("regime from absent column: got valid, want missing")
	}
	if !record.MultipartyOrdinal.Valid || record.MultipartyOrdinal.Value != 2 {
		t.Errorf("multiparty: got %+v, want 2", record.MultipartyOrdinal)
	}
}

func TestLoad_DuplicateColumnUsesFirst(t *testing.T) {
	path := writePanelCSV(t,
		"country_name,country_text_id,year,v2x_regime,v2x_regime,v2elmulpar_ord,v2csreprss_ord,v2xcs_ccsi",
		"Freedonia,FRD,2001,1,3,2,2,0.5",
	)

	panel, err := NewLoader(path, nil).Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if panel.Header.Occurrences(ColRegime) != 2 {
		t.Errorf("Occurrences(%s): got %d, want 2", ColRegime, panel.Header.Occurrences(ColRegime))
	}
	if panel.Records[0].RegimeOrdinal.Value != 1 {
		t.Errorf("duplicate column projection: got %d, want first occurrence 1", panel.Records[0].RegimeOrdinal.Value)
	}
}

func TestLoad_RaggedRowFails(t *testing.T) {
	path := writePanelCSV(t,
		"country_name,country_text_id,year,v2x_regime,v2elmulpar_ord,v2csreprss_ord,v2xcs_ccsi",
		"Freedonia,FRD,2001",
	)

	if _, err := NewLoader(path, nil).Load(); err == nil {
		t.Error("ragged row: expected error")
	}
}

func TestLoad_MissingFile(t *testing.T) {
	if _, err := NewLoader(filepath.Join(t.TempDir(), "absent.csv"), nil).Load(); err == nil {
		t.Error("missing file: expected error")
	}
}
