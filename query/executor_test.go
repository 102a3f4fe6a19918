package query

import "testing"

func TestViewSQL(t *testing.T) {
	tests := []struct {
		name     string
		path     string
		format   DatasetFormat
		rowStart int
		rowEnd   int
		want     string
	}{
		{
			name:   "parquet",
			path:   "data/events.parquet",
			format: FormatParquet,
			want:   "CREATE OR REPLACE VIEW dataset AS SELECT * FROM read_parquet('data/events.parquet')",
		},
		{
			name:   "csv",
			path:   "data/events.csv",
			format: FormatCSV,
			want:   "CREATE OR REPLACE VIEW dataset AS SELECT * FROM read_csv_auto('data/events.csv')",
		},
		{
			name:   "jsonl",
			path:   "data/events.jsonl",
			format: FormatJSONL,
			want:   "CREATE OR REPLACE VIEW dataset AS SELECT * FROM read_json_auto('data/events.jsonl')",
		},
		{
			name:   "quoted path",
			path:   "data/it's.parquet",
			format: FormatParquet,
			want:   "CREATE OR REPLACE VIEW dataset AS SELECT * FROM read_parquet('data/it''s.parquet')",
		},
		{
			name:     "row window",
			path:     "data/events.parquet",
			format:   FormatParquet,
			rowStart: 100,
			rowEnd:   250,
			want:     "CREATE OR REPLACE VIEW dataset AS SELECT * FROM read_parquet('data/events.parquet') LIMIT 150 OFFSET 100",
		},
		{
			name:   "upper bound only",
			path:   "data/events.parquet",
			format: FormatParquet,
			rowEnd: 50,
			want:   "CREATE OR REPLACE VIEW dataset AS SELECT * FROM read_parquet('data/events.parquet') LIMIT 50",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := viewSQL(tt.path, tt.format, tt.rowStart, tt.rowEnd)
			if got != tt.want {
				t.Errorf("viewSQL() = %q, want %q", got, tt.want)
			}
		})
	}
}
