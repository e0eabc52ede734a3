package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// Row is one record keyed by column name. Keys outside the column list are ignored.
type Row map[string]string

var (
	BaseKeys = []string{
		"region", "contentid", "title", "addr1", "start_date", "end_date", "tel", "image",
		"progresstype", "festivaltype",
		"acmpyPsblCpam", "relaRntlPrdlst", "relaFrnshPrdlst", "acmpyNeedMtr", "etcAcmpyInfo",
		"relaPurcPrdlst", "relaAcdntRiskMtr", "acmpyTypeCd", "relaPosesFclty",
	}
	CommonKeys = []string{
		"contentid", "title", "createdtime", "modifiedtime", "tel", "telname",
		"homepage", "firstimage", "firstimage2", "addr1", "addr2",
		"mapx", "mapy", "mlevel", "overview",
	}
	IntroKeys = []string{
		"contentid", "sponsor1", "sponsor1tel", "sponsor2", "eventenddate",
		"playtime", "eventplace", "eventstartdate", "usetimefestival",
		"progresstype", "festivaltype",
	}
)

const (
	BaseFile   = "honam_festivals_base.csv"
	CommonFile = "honam_festivals_common.csv"
	IntroFile  = "honam_festivals_intro.csv"
)

// utf8BOM keeps Excel from guessing a legacy encoding for Hangul.
var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

func Write(w io.Writer, keys []string, rows []Row) error {
	if _, err := w.Write(utf8BOM); err != nil {
		return err
	}

	writer := csv.NewWriter(w)
	if err := writer.Write(keys); err != nil {
		return fmt.Errorf("failed to write headers: %w", err)
	}

	record := make([]string, len(keys))
	for _, row := range rows {
		for i, key := range keys {
			record[i] = row[key]
		}
		if err := writer.Write(record); err != nil {
			return fmt.Errorf("failed to write record: %w", err)
		}
	}

	writer.Flush()
	return writer.Error()
}

// WriteFile writes rows to dir/name. An empty row set writes nothing and
// reports false.
func WriteFile(dir, name string, keys []string, rows []Row) (bool, error) {
	if len(rows) == 0 {
		return false, nil
	}

	if err := os.MkdirAll(dir, 0755); err != nil {
		return false, fmt.Errorf("failed to create output directory: %w", err)
	}

	f, err := os.Create(filepath.Join(dir, name))
	if err != nil {
		return false, fmt.Errorf("failed to create output file: %w", err)
	}
	defer f.Close()

	if err := Write(f, keys, rows); err != nil {
		return false, err
	}
	return true, nil
}
