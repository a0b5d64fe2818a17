package normalize

import (
	"encoding/csv"
	"io"
	"strconv"
)

// WritePixelCSV writes a pixel result as one row per retained time step with
// the columns step, one column per run, and forced_response.
func WritePixelCSV(w io.Writer, r *PixelResult) error {
	writer := csv.NewWriter(w)

	header := make([]string, 0, len(r.Runs)+2)
	header = append(header, "step")
	header = append(header, r.Runs...)
	header = append(header, "forced_response")
	if err := writer.Write(header); err != nil {
		return err
	}

	record := make([]string, len(header))
	for t := 0; t < r.Steps(); t++ {
		record[0] = strconv.Itoa(t)
		for i, row := range r.Normalized {
			record[i+1] = formatFloat(row[t])
		}
		record[len(record)-1] = formatFloat(r.ForcedResponse[t])
		if err := writer.Write(record); err != nil {
			return err
		}
	}

	writer.Flush()
	return writer.Error()
}

// WriteGridCSV writes the forced response of a grid result in long format
// with the columns step, lat, lon and forced_response.
func WriteGridCSV(w io.Writer, r *GridResult) error {
	writer := csv.NewWriter(w)
	if err := writer.Write([]string{"step", "lat", "lon", "forced_response"}); err != nil {
		return err
	}

	fr := r.ForcedResponse
	for t := 0; t < fr.Steps; t++ {
		for i := 0; i < fr.Lat; i++ {
			for j := 0; j < fr.Lon; j++ {
				record := []string{
					strconv.Itoa(t),
					strconv.Itoa(i),
					strconv.Itoa(j),
					formatFloat(fr.At(t, i, j)),
				}
				if err := writer.Write(record); err != nil {
					return err
				}
			}
		}
	}

	writer.Flush()
	return writer.Error()
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
