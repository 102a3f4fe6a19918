package query

import (
	"crypto/md5"
	"encoding/hex"
	"errors"
	"fmt"
	"net/url"
	"path"
	"strings"
)

// DatasetFormat identifies the on-disk format of a dataset.
type DatasetFormat string

const (
	FormatCSV     DatasetFormat = "csv"
	FormatJSONL   DatasetFormat = "jsonl"
	FormatParquet DatasetFormat = "parquet"
)

// ErrUnsupportedFormat indicates a dataset path whose extension maps to no
// known format.
var ErrUnsupportedFormat = errors.New("unsupported dataset format")

// DatasetName derives a display name from a dataset path or URL.
// Glob segments ("data/*.parquet") fall back to the parent directory name,
// and a file extension is stripped.
func DatasetName(datasetPath string) string {
	p := rawPath(datasetPath)
	base := path.Base(p)
	if strings.ContainsAny(base, "*?[]") {
		p = path.Dir(p)
		base = path.Base(p)
	}
	if ext := path.Ext(base); ext != "" {
		return strings.TrimSuffix(base, ext)
	}
	return base
}

// InferFormat infers the dataset format from the file extension.
func InferFormat(datasetPath string) (DatasetFormat, error) {
	switch path.Ext(rawPath(datasetPath)) {
	case ".csv", ".tsv":
		return FormatCSV, nil
	case ".json", ".jsonl":
		return FormatJSONL, nil
	case ".parquet":
		return FormatParquet, nil
	}
	return "", fmt.Errorf("%w: %s", ErrUnsupportedFormat, datasetPath)
}

// DatasetHash returns a stable identifier for a dataset, derived from its
// name and format. Used as the cache key prefix for that dataset.
func DatasetHash(datasetPath string) (string, error) {
	format, err := InferFormat(datasetPath)
	if err != nil {
		return "", err
	}
	sum := md5.Sum([]byte(DatasetName(datasetPath) + "_" + string(format)))
	return hex.EncodeToString(sum[:]), nil
}

// rawPath strips a URL scheme from the dataset path when one is present,
// so "s3://bucket/data.parquet" and "/local/data.parquet" name the same way.
func rawPath(datasetPath string) string {
	if u, err := url.Parse(datasetPath); err == nil && u.Scheme != "" {
		return u.Path
	}
	return datasetPath
}
