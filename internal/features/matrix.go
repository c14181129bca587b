package features

// Matrix is a row-major feature matrix with named columns.
type Matrix struct {
	Columns []string
	Rows    [][]float64
}

// Len returns the number of rows.
func (m Matrix) Len() int {
	return len(m.Rows)
}

// Width returns the number of columns.
func (m Matrix) Width() int {
	return len(m.Columns)
}

// Column copies out column j.
func (m Matrix) Column(j int) []float64 {
	column := make([]float64, len(m.Rows))
	for i, row := range m.Rows {
		column[i] = row[j]
	}

	return column
}

// Last returns the newest row, or nil for an empty matrix.
func (m Matrix) Last() []float64 {
	if len(m.Rows) == 0 {
		return nil
	}

	return m.Rows[len(m.Rows)-1]
}

func fromColumns(names []string, columns [][]float64, n int) Matrix {
	rows := make([][]float64, n)
	for i := range rows {
		row := make([]float64, len(columns))
		for j := range columns {
			row[j] = columns[j][i]
		}

		rows[i] = row
	}

	return Matrix{Columns: names, Rows: rows}
}
